package service

import (
	"context"
	"todo/internal/models/task"
)

// TaskRepository - хранилище задач. Промахи по ключу возвращают repository.ErrNotFound.
type TaskRepository interface {
	HealthCheck(context.Context) error
	Create(context.Context, *task.Task) error
	GetByID(context.Context, int64) (*task.Task, error)
	GetByName(context.Context, string) (*task.Task, error)
	Update(context.Context, *task.Task) error
	Delete(context.Context, int64) error
	GetPage(ctx context.Context, page, size int) ([]*task.Task, error)
}
