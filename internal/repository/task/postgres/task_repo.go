package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"
	"todo/internal/config"
	"todo/internal/logger"
	"todo/internal/migrations"
	"todo/internal/models/task"
	repo "todo/internal/repository"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

const slowQuery = 100 * time.Millisecond

const taskColumns = `id, name, description, created_at, updated_at, status, priority`

type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, cfg config.DatabaseConfig) (*Storage, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		logger.Error("Repository: Ошибка загрузки конфига", err)
		return nil, fmt.Errorf("загрузка конфига: %w", err)
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConnections)
	}
	if cfg.MinConnections > 0 {
		poolConfig.MinConns = int32(cfg.MinConnections)
	}
	if cfg.IdleTimeout > 0 {
		poolConfig.MaxConnIdleTime = cfg.IdleTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("Repository: Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	// база может подниматься одновременно с сервисом
	retries := cfg.ConnectRetries
	if retries < 0 {
		retries = 0
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(retries)), ctx)

	err = backoff.RetryNotify(func() error {
		return pool.Ping(ctx)
	}, policy, func(err error, wait time.Duration) {
		logger.Warn("Repository: PostgreSQL недоступен, повтор",
			zap.Error(err),
			zap.Duration("wait", wait))
	})
	if err != nil {
		pool.Close()
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное создание подключения к PostgreSQL")
	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: Закрытие всех соединений PostgreSQL")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func (s *Storage) Create(ctx context.Context, taskToCreate *task.Task) error {
	start := time.Now()

	query := `INSERT INTO tasks
				(name, description, status, priority)
				VALUES ($1, $2, $3, $4)
				RETURNING id, created_at`

	err := s.pool.QueryRow(ctx, query,
		taskToCreate.Name,
		taskToCreate.Description,
		taskToCreate.Status,
		taskToCreate.Priority,
	).Scan(&taskToCreate.ID, &taskToCreate.CreatedAt)

	if err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление задачи: %w", err)
	}
	taskToCreate.UpdatedAt = nil

	warnIfSlow(start, slowQuery)
	return nil
}

func (s *Storage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	start := time.Now()

	query := `UPDATE tasks
			SET name = $1,
				description = $2,
				status = $3,
				priority = $4,
				updated_at = NOW()
			WHERE id = $5
			RETURNING updated_at`

	err := s.pool.QueryRow(ctx, query,
		taskToUpdate.Name,
		taskToUpdate.Description,
		taskToUpdate.Status,
		taskToUpdate.Priority,
		taskToUpdate.ID,
	).Scan(&taskToUpdate.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn("Repository: Задача исчезла до обновления", zap.Int64("task_id", taskToUpdate.ID))
			return repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить задачу", err)
		return fmt.Errorf("обновление задачи: %w", err)
	}

	warnIfSlow(start, slowQuery)
	return nil
}

// удаление из БД; отсутствие строки не ошибка
func (s *Storage) Delete(ctx context.Context, id int64) error {
	start := time.Now()

	query := `DELETE FROM tasks
				WHERE id = $1`

	if _, err := s.pool.Exec(ctx, query, id); err != nil {
		logger.Error("Repository: Удаление задачи", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("удаление задачи: %w", err)
	}

	warnIfSlow(start, slowQuery)
	return nil
}

func (s *Storage) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	query := `SELECT ` + taskColumns + `
				FROM tasks
				WHERE id = $1`

	return s.getOne(ctx, query, id)
}

// при дубликатах имени берётся наименьший id
func (s *Storage) GetByName(ctx context.Context, name string) (*task.Task, error) {
	query := `SELECT ` + taskColumns + `
				FROM tasks
				WHERE name = $1
				ORDER BY id
				LIMIT 1`

	return s.getOne(ctx, query, name)
}

// GetPage: page - номер страницы с нуля, size - размер страницы
func (s *Storage) GetPage(ctx context.Context, page, size int) ([]*task.Task, error) {
	start := time.Now()
	offset := page * size

	query := `SELECT ` + taskColumns + `
				FROM tasks
				ORDER BY id
				LIMIT $1 OFFSET $2`

	rows, err := s.pool.Query(ctx, query, size, offset)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			logger.Error("Repository: Ошибка сканирования задачи", err)
			return nil, fmt.Errorf("сканирование задачи: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	warnIfSlow(start, slowQuery+time.Millisecond*time.Duration(size))
	return tasks, nil
}

func (s *Storage) getOne(ctx context.Context, query string, arg any) (*task.Task, error) {
	start := time.Now()

	t, err := scanTask(s.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	warnIfSlow(start, slowQuery)
	return t, nil
}

func scanTask(row pgx.Row) (*task.Task, error) {
	t := &task.Task{}
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.Status,
		&t.Priority,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func warnIfSlow(start time.Time, threshold time.Duration) {
	if elapsed := time.Since(start); elapsed > threshold {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", elapsed))
	}
}

func (s *Storage) migrator() (*migrate.Migrate, error) {
	src, err := migrations.Source()
	if err != nil {
		return nil, err
	}

	// закрытие *sql.DB не закрывает пул
	db := stdlib.OpenDBFromPool(s.pool)
	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		_ = src.Close()
		db.Close()
		return nil, fmt.Errorf("драйвер миграций: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		_ = src.Close()
		_ = driver.Close()
		return nil, fmt.Errorf("инициализация миграций: %w", err)
	}
	return m, nil
}

func (s *Storage) Migrate(ctx context.Context) error {
	logger.Info("Repository: Применение миграций")

	m, err := s.migrator()
	if err != nil {
		logger.Error("Repository: Не удалось подготовить миграции", err)
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Repository: Не удалось применить миграции", err)
		return fmt.Errorf("применение миграций: %w", err)
	}

	version, _, _ := m.Version()
	logger.Info("Repository: Миграции применены", zap.Uint("version", version))
	return nil
}

func (s *Storage) Down(ctx context.Context) error {
	logger.Info("Repository: Откат миграций")

	m, err := s.migrator()
	if err != nil {
		logger.Error("Repository: Не удалось подготовить миграции", err)
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Repository: Не удалось откатить миграции", err)
		return fmt.Errorf("откат миграций: %w", err)
	}

	logger.Info("Repository: Миграции откачены")
	return nil
}
