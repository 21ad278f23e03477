package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smith3v/fitness-ai/pkg/config"
	"github.com/smith3v/fitness-ai/pkg/dataset"
	"github.com/smith3v/fitness-ai/pkg/db"
	"github.com/smith3v/fitness-ai/pkg/storage"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func (a *app) datasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Clean and summarise the nutrition dataset",
	}
	cmd.AddCommand(a.datasetCleanCmd(), a.datasetStatsCmd(), a.datasetImportsCmd())
	return cmd
}

func (a *app) datasetCleanCmd() *cobra.Command {
	var in, out string
	var record, upload bool
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Normalise categories, coerce numbers and drop implausible rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in = orDefault(in, config.AppConfig.Dataset.RawPath)
			out = orDefault(out, config.AppConfig.Dataset.CleanedPath)

			table, err := readTable(in)
			if err != nil {
				return err
			}
			cleaned, report := dataset.Clean(dataset.TitleCaseCategories(table))
			if err := writeTable(out, cleaned); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleaned %d -> %d rows, saved to %s\n", report.RowsIn, report.RowsOut, out)

			if upload {
				m, err := storage.NewManager(cmd.Context(), config.AppConfig.Storage)
				if err != nil {
					return err
				}
				key := config.AppConfig.Storage.ProcessedPrefix + filepath.Base(out)
				if err := m.Upload(cmd.Context(), out, key); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "uploaded to s3://%s/%s\n", m.Bucket(), key)
			}

			if !record {
				return nil
			}
			return a.withDB(func(gdb *gorm.DB) error {
				if err := db.CreateSchemaIfAbsent(gdb); err != nil {
					return err
				}
				imp, err := db.RecordDatasetImport(cmd.Context(), gdb, in, report.RowsIn, report.RowsOut, report)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "recorded run %s\n", imp.RunID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "Raw CSV (default from config)")
	cmd.Flags().StringVar(&out, "out", "", "Cleaned CSV (default from config)")
	cmd.Flags().BoolVar(&record, "record", true, "Record the run in dataset_imports")
	cmd.Flags().BoolVar(&upload, "upload", false, "Upload the cleaned CSV under the processed prefix")
	return cmd
}

func (a *app) datasetStatsCmd() *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Write descriptive statistics and print category counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in = orDefault(in, config.AppConfig.Dataset.CleanedPath)
			out = orDefault(out, config.AppConfig.Dataset.StatsPath)

			table, err := readTable(in)
			if err != nil {
				return err
			}
			var columns []string
			for _, name := range dataset.NumericColumns {
				if table.Column(name) >= 0 {
					columns = append(columns, name)
				}
			}
			stats, err := dataset.Describe(table, columns)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := dataset.WriteStats(f, stats); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "statistics saved to %s\n", out)
			for _, s := range stats {
				fmt.Fprintln(w, s)
			}
			for _, name := range dataset.CategoricalColumns {
				counts, err := dataset.ValueCounts(table, name)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "\n%s\n", name)
				for _, c := range counts {
					fmt.Fprintf(w, "  %s: %d\n", c.Value, c.Count)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "Cleaned CSV (default from config)")
	cmd.Flags().StringVar(&out, "out", "", "Statistics CSV (default from config)")
	return cmd
}

func (a *app) datasetImportsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "imports",
		Short: "List recorded clean runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDB(func(gdb *gorm.DB) error {
				records, err := db.LatestDatasetImports(cmd.Context(), gdb, limit)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of runs to show")
	return cmd
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func readTable(path string) (*dataset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	table, err := dataset.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return table, nil
}

func writeTable(path string, table *dataset.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dataset.WriteCSV(f, table); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
