package main

import (
	"fmt"
	"todo/internal/config"
	"todo/internal/logger"
	"todo/internal/repository/task/postgres"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Миграции схемы PostgreSQL",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("загрузка конфигурации: %w", err)
		}
		if cfg.Database.URL == "" {
			return fmt.Errorf("database.url не задан")
		}

		if err := logger.Init(cfg.Logging.Development); err != nil {
			return fmt.Errorf("инициализация логгера: %w", err)
		}
		defer logger.Sync()

		storage, err := postgres.New(cmd.Context(), cfg.Database)
		if err != nil {
			return err
		}
		defer storage.Close()

		if args[0] == "down" {
			return storage.Down(cmd.Context())
		}
		return storage.Migrate(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
