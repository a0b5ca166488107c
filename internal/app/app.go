package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"todo/internal/config"
	"todo/internal/handlers"
	"todo/internal/logger"
	"todo/internal/middleware"
	"todo/internal/repository/task/inmemory"
	"todo/internal/repository/task/postgres"
	"todo/internal/repository/task/sqlite"
	"todo/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config     *config.Config
	server     *http.Server
	router     *chi.Mux
	repository service.TaskRepository
	service    handlers.Service
	shutdowns  []func() // выполняются в обратном порядке
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

// Init собирает логгер, хранилище, сервис и роутер. После ошибки
// уже открытые ресурсы закрываются через Shutdown.
func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	if err := a.initRepository(ctx); err != nil {
		a.Shutdown()
		return err
	}

	a.service = service.NewTaskService(a.repository)
	a.initRouter()

	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      otelhttp.NewHandler(a.router, "todo"),
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}

	logger.Info("Приложение инициализировано",
		zap.String("repository", a.config.Repository.Type),
		zap.String("addr", a.server.Addr))
	return nil
}

func (a *App) initRepository(ctx context.Context) error {
	switch a.config.Repository.Type {
	case config.RepositoryPostgres:
		storage, err := postgres.New(ctx, a.config.Database)
		if err != nil {
			return fmt.Errorf("подключение к postgres: %w", err)
		}
		a.shutdowns = append(a.shutdowns, storage.Close)

		if err := storage.Migrate(ctx); err != nil {
			return fmt.Errorf("миграции postgres: %w", err)
		}
		a.repository = storage

	case config.RepositorySQLite:
		storage, err := sqlite.New(ctx, a.config.SQLite.DSN)
		if err != nil {
			return fmt.Errorf("открытие sqlite: %w", err)
		}
		a.shutdowns = append(a.shutdowns, storage.Close)
		a.repository = storage

	case config.RepositoryInMemory:
		a.repository = inmemory.NewTaskStorage()

	default:
		return fmt.Errorf("неизвестный тип хранилища: %q", a.config.Repository.Type)
	}
	return nil
}

func (a *App) initRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(a.config.Server.RequestTimeout))
	if a.config.RateLimit.Enabled {
		r.Use(middleware.RateLimit(a.config.RateLimit.RequestsPerSecond, a.config.RateLimit.Burst))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.config.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	handlers.NewTaskHandler(a.service).RegisterRoutes(r)
	a.router = r
}

// Handler отдаёт собранный роутер без http.Server, удобно для httptest
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run слушает порт до отмены ctx, затем останавливает сервер
// с таймаутом server.shutdown_timeout и освобождает ресурсы.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ошибка сервера: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Остановка сервера...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("остановка сервера: %w", err)
		}
		return nil
	})

	err := g.Wait()
	a.Shutdown()
	return err
}

func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = a.shutdowns[:0]
}
