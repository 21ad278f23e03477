package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/smith3v/fitness-ai/pkg/profile"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func (a *app) resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <table> <label>",
		Short: "Print the id of a reference label, creating it when unseen",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := profile.ParseReferenceTable(args[0])
			if err != nil {
				return err
			}
			return a.withDB(func(gdb *gorm.DB) error {
				id, err := profile.NewResolver(gdb).Resolve(cmd.Context(), table, args[1])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			})
		},
	}
}

func (a *app) registerCmd() *cobra.Command {
	var p profile.Profile
	var goals []string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Insert a user with its reference labels and goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDB(func(gdb *gorm.DB) error {
				userID, err := profile.NewWriter(gdb).InsertUser(cmd.Context(), p, goals)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), userID)
				return nil
			})
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&p.Age, "age", 0, "Age in years")
	flags.Float64Var(&p.Height, "height", 0, "Height in cm")
	flags.Float64Var(&p.Weight, "weight", 0, "Current weight in kg")
	flags.Float64Var(&p.TargetWeight, "target-weight", 0, "Target weight in kg")
	flags.StringVar(&p.Gender, "gender", "", "Gender label")
	flags.StringVar(&p.DietType, "diet", "", "Diet type label")
	flags.StringVar(&p.FitnessLevel, "fitness-level", "", "Fitness level label")
	flags.StringArrayVar(&goals, "goal", nil, "Goal label, repeatable")
	return cmd
}

func (a *app) progressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <user_id>",
		Short: "Print current weight, target weight and the difference as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseUint(args[0], 10, 0)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			return a.withDB(func(gdb *gorm.DB) error {
				progress, err := profile.NewReader(gdb).GetUserProgress(cmd.Context(), uint(userID))
				if err != nil {
					return err
				}
				if progress == nil {
					return fmt.Errorf("user %d not found", userID)
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(progress)
			})
		},
	}
}
