package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запуск HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		// .env необязателен, переменные окружения могут прийти снаружи
		_ = godotenv.Load()

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("загрузка конфигурации: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		application := app.New(cfg)
		if err := application.Init(ctx); err != nil {
			return fmt.Errorf("инициализация приложения: %w", err)
		}

		if err := application.Run(ctx); err != nil {
			return err
		}

		logger.Info("Сервер остановлен")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	// без подкоманды root ведёт себя как serve
	rootCmd.RunE = serveCmd.RunE
}
