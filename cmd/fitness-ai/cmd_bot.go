package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/go-telegram/bot"
	"github.com/smith3v/fitness-ai/pkg/bot/handlers"
	"github.com/smith3v/fitness-ai/pkg/config"
	"github.com/smith3v/fitness-ai/pkg/db"
	"github.com/smith3v/fitness-ai/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func (a *app) botCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram front-end until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token := config.AppConfig.Telegram.Token
			if token == "" {
				return errors.New("telegram token is not configured")
			}

			return a.withDB(func(gdb *gorm.DB) error {
				if err := db.CreateSchemaIfAbsent(gdb); err != nil {
					return err
				}

				ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
				defer cancel()

				h := handlers.New(gdb)
				b, err := bot.New(token, bot.WithDefaultHandler(h.DefaultHandler))
				if err != nil {
					return err
				}
				h.Register(b)

				logger.Info("Starting bot...")
				b.Start(ctx)
				return nil
			})
		},
	}
}
