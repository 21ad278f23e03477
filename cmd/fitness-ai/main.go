package main

import (
	"fmt"
	"os"

	"github.com/smith3v/fitness-ai/pkg/config"
	"github.com/smith3v/fitness-ai/pkg/db"
	"github.com/smith3v/fitness-ai/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// app holds the global flags shared by every command.
type app struct {
	configPath string
	envFiles   []string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "fitness-ai",
		Short: "Fitness and nutrition data backend",
		Long: `fitness-ai manages user profiles and their reference labels
(genders, diet types, fitness levels, goals) on PostgreSQL or SQLite,
prepares the nutrition dataset and serves a Telegram front-end.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "config.json", "Path to the JSON config file")
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", []string{".env"}, "Optional .env files loaded before reading the environment")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override the configured log level")

	root.AddCommand(
		a.migrateCmd(),
		a.resetCmd(),
		a.seedCmd(),
		a.resolveCmd(),
		a.registerCmd(),
		a.progressCmd(),
		a.datasetCmd(),
		a.s3Cmd(),
		a.structureCmd(),
		a.botCmd(),
	)
	return root
}

func (a *app) setup() error {
	if err := config.LoadConfig(a.configPath, a.envFiles...); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	level := config.AppConfig.Logging.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	if err := logger.Configure(logger.Options{
		Level:  level,
		File:   config.AppConfig.Logging.File,
		Format: config.AppConfig.Logging.Format,
	}); err != nil {
		logger.Error("failed to configure logger", "error", err)
	}
	return nil
}

// withDB opens the configured database for the duration of fn.
func (a *app) withDB(fn func(gdb *gorm.DB) error) error {
	gdb, err := db.Open(config.AppConfig.Database, config.AppConfig.Logging.GormLevel)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()
	return fn(gdb)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
