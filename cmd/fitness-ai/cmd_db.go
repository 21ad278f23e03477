package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/smith3v/fitness-ai/pkg/dataset"
	"github.com/smith3v/fitness-ai/pkg/db"
	"github.com/smith3v/fitness-ai/pkg/profile"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create every table that does not exist yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDB(func(gdb *gorm.DB) error {
				if err := db.CreateSchemaIfAbsent(gdb); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			})
		},
	}
}

func (a *app) resetCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop all tables and recreate an empty schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return errors.New("reset deletes all data; pass --force to confirm")
			}
			return a.withDB(func(gdb *gorm.DB) error {
				if err := db.ResetSchema(gdb); err != nil {
					return err
				}
				if err := db.CreateSchemaIfAbsent(gdb); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema reset")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Confirm that all data should be dropped")
	return cmd
}

func (a *app) seedCmd() *cobra.Command {
	var datasetPath string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the default reference labels, optionally extended from a dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := profile.DefaultReferenceData()
			if datasetPath != "" {
				extra, err := datasetLabels(datasetPath)
				if err != nil {
					return err
				}
				for table, labels := range extra {
					data[table] = append(data[table], labels...)
				}
			}

			return a.withDB(func(gdb *gorm.DB) error {
				if err := db.CreateSchemaIfAbsent(gdb); err != nil {
					return err
				}
				inserted, err := profile.Seed(cmd.Context(), gdb, data)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, table := range profile.ReferenceTables() {
					fmt.Fprintf(out, "%s: %d inserted\n", table, inserted[table])
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&datasetPath, "dataset", "", "CSV whose categorical columns add reference labels")
	return cmd
}

func datasetLabels(path string) (profile.ReferenceData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table, err := dataset.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	data := profile.ReferenceData{}
	for name, labels := range dataset.Labels(dataset.TitleCaseCategories(table)) {
		refTable, err := profile.ParseReferenceTable(name)
		if err != nil {
			return nil, err
		}
		data[refTable] = labels
	}
	return data, nil
}
