package main

import (
	"fmt"
	"path/filepath"

	"github.com/smith3v/fitness-ai/pkg/config"
	"github.com/smith3v/fitness-ai/pkg/storage"
	"github.com/spf13/cobra"
)

func (a *app) s3Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "s3",
		Short: "Move dataset files to and from the configured bucket",
	}

	upload := &cobra.Command{
		Use:   "upload <local_path> [key]",
		Short: "Upload a file; the key defaults to the raw prefix plus the file name",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := config.AppConfig.Storage.RawPrefix + filepath.Base(args[0])
			if len(args) == 2 {
				key = args[1]
			}
			m, err := storage.NewManager(cmd.Context(), config.AppConfig.Storage)
			if err != nil {
				return err
			}
			if err := m.Upload(cmd.Context(), args[0], key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s to s3://%s/%s\n", args[0], m.Bucket(), key)
			return nil
		},
	}

	download := &cobra.Command{
		Use:   "download <key> <local_path>",
		Short: "Download an object to a local file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := storage.NewManager(cmd.Context(), config.AppConfig.Storage)
			if err != nil {
				return err
			}
			if err := m.Download(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "downloaded s3://%s/%s to %s\n", m.Bucket(), args[0], args[1])
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list [prefix]",
		Short: "List object keys under a prefix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			m, err := storage.NewManager(cmd.Context(), config.AppConfig.Storage)
			if err != nil {
				return err
			}
			keys, err := m.List(cmd.Context(), prefix)
			if err != nil {
				return err
			}
			for _, key := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <key>...",
		Short: "Delete one or more objects",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := storage.NewManager(cmd.Context(), config.AppConfig.Storage)
			if err != nil {
				return err
			}
			return m.Delete(cmd.Context(), args...)
		},
	}

	cmd.AddCommand(upload, download, list, del)
	return cmd
}
