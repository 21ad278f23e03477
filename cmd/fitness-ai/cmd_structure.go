package main

import (
	"fmt"
	"os"

	"github.com/smith3v/fitness-ai/pkg/structure"
	"github.com/spf13/cobra"
)

func (a *app) structureCmd() *cobra.Command {
	var root, out string
	cmd := &cobra.Command{
		Use:   "structure",
		Short: "Snapshot the project tree as markdown and report changes since the last snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := &structure.Generator{OutDir: out}
			snap, err := gen.Generate(os.DirFS(root))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "project structure saved to %s\n", snap.TreePath)
			if snap.ChangesPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "changes saved to %s\n", snap.ChangesPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", ".", "Project directory to describe")
	cmd.Flags().StringVar(&out, "out", "docs/structure", "Directory holding versions/ and changes/")
	return cmd
}
