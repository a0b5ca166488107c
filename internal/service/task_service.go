package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"todo/internal/dto"
	"todo/internal/logger"
	"todo/internal/models/task"
	rep "todo/internal/repository"

	"go.uber.org/zap"
)

// здесь происходит проверка ошибок бизнес-логики.
// Инфраструктурные ошибки хранилища возвращаются как есть.

type TaskService struct {
	repo TaskRepository
}

func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{
		repo: repo,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return fmt.Errorf("проверка здоровья сервиса: %w", err)
	}
	return nil
}

func (s *TaskService) CreateTask(ctx context.Context, input dto.Task) (*dto.Task, error) {
	record := dto.ToRecord(input)
	record.ID = 0
	record.UpdatedAt = nil
	if record.Status == "" {
		record.Status = task.DefaultStatus
	}
	if record.Priority == "" {
		record.Priority = task.DefaultPriority
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	created := dto.FromRecord(record)
	logger.Info("Service: Задача создана",
		zap.Int64("task_id", created.ID),
		zap.String("name", created.Name))
	return &created, nil
}

func (s *TaskService) GetTask(ctx context.Context, id int64) (*dto.Task, error) {
	record, err := s.getTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	found := dto.FromRecord(record)
	return &found, nil
}

func (s *TaskService) GetTaskByName(ctx context.Context, name string) (*dto.Task, error) {
	record, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Warn("Service: Задача не найдена", zap.String("target_name", name))
			return nil, NewNotFound("name", name, err)
		}
		return nil, err
	}

	found := dto.FromRecord(record)
	return &found, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id int64, input dto.Task) error {
	record, err := s.getTaskByID(ctx, id)
	if err != nil {
		return err
	}

	dto.MergeInto(input, record)

	if err := s.repo.Update(ctx, record); err != nil {
		// запись могли удалить между чтением и записью
		if errors.Is(err, rep.ErrNotFound) {
			return NewNotFound("id", id, err)
		}
		return err
	}

	logger.Info("Service: Задача обновлена", zap.Int64("task_id", id))
	return nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Service: Задача удалена", zap.Int64("task_id", id))
	return nil
}

// GetAllTasks возвращает страницу задач: page - номер страницы с нуля, limit - её размер
func (s *TaskService) GetAllTasks(ctx context.Context, page, limit int) ([]dto.Task, error) {
	if page < 0 {
		return nil, NewValidationError("offset", "номер страницы не может быть отрицательным")
	}
	if limit <= 0 {
		return nil, NewValidationError("limit", "размер страницы должен быть больше нуля")
	}
	// смещение page*limit не помещается в int: такая страница заведомо за концом таблицы
	if page > math.MaxInt/limit {
		logger.Warn("Service: Страница за пределами диапазона",
			zap.Int("page", page),
			zap.Int("limit", limit))
		return []dto.Task{}, nil
	}

	tasks, err := s.repo.GetPage(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	return dto.FromRecordList(tasks), nil
}

func (s *TaskService) getTaskByID(ctx context.Context, id int64) (*task.Task, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Warn("Service: Задача не найдена", zap.Int64("target_id", id))
			return nil, NewNotFound("id", id, err)
		}
		return nil, err
	}
	return record, nil
}
