// Package sqlite - хранилище задач в SQLite через gorm.
// Подходит для локального запуска без PostgreSQL.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"
	"todo/internal/logger"
	"todo/internal/models/task"
	repo "todo/internal/repository"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Storage struct {
	db *gorm.DB
}

func New(ctx context.Context, dsn string) (*Storage, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Error("Repository: Не удалось открыть SQLite", err, zap.String("dsn", dsn))
		return nil, fmt.Errorf("открытие sqlite: %w", err)
	}

	// у :memory: каждое соединение - отдельная база
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("получение sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.WithContext(ctx).AutoMigrate(&task.Task{}); err != nil {
		logger.Error("Repository: Ошибка миграции SQLite", err)
		return nil, fmt.Errorf("миграция sqlite: %w", err)
	}

	logger.Info("Repository: SQLite готов", zap.String("dsn", dsn))
	return &Storage{db: db}, nil
}

func (s *Storage) Close() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("Repository: Закрытие SQLite")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("получение sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func (s *Storage) Create(ctx context.Context, taskToCreate *task.Task) error {
	taskToCreate.ID = 0
	taskToCreate.CreatedAt = time.Now().UTC()
	taskToCreate.UpdatedAt = nil

	if err := s.db.WithContext(ctx).Create(taskToCreate).Error; err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err)
		return fmt.Errorf("добавление задачи: %w", err)
	}
	return nil
}

func (s *Storage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	now := time.Now().UTC()

	res := s.db.WithContext(ctx).Model(&task.Task{}).
		Where("id = ?", taskToUpdate.ID).
		Updates(map[string]interface{}{
			"name":        taskToUpdate.Name,
			"description": taskToUpdate.Description,
			"status":      taskToUpdate.Status,
			"priority":    taskToUpdate.Priority,
			"updated_at":  now,
		})

	if res.Error != nil {
		logger.Error("Repository: Не удалось обновить задачу", res.Error)
		return fmt.Errorf("обновление задачи: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}

	taskToUpdate.UpdatedAt = &now
	return nil
}

func (s *Storage) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	var t task.Task
	err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return s.found(&t, err)
}

// при дубликатах имени берётся наименьший id
func (s *Storage) GetByName(ctx context.Context, name string) (*task.Task, error) {
	var t task.Task
	err := s.db.WithContext(ctx).Where("name = ?", name).Order("id asc").First(&t).Error
	return s.found(&t, err)
}

// удаление отсутствующей задачи не ошибка
func (s *Storage) Delete(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Delete(&task.Task{}, id).Error; err != nil {
		logger.Error("Repository: Удаление задачи", err)
		return fmt.Errorf("удаление задачи: %w", err)
	}
	return nil
}

func (s *Storage) GetPage(ctx context.Context, page, size int) ([]*task.Task, error) {
	tasks := []*task.Task{}
	err := s.db.WithContext(ctx).
		Order("id asc").
		Offset(page * size).
		Limit(size).
		Find(&tasks).Error
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err)
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return tasks, nil
}

func (s *Storage) found(t *task.Task, err error) (*task.Task, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err)
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return t, nil
}
