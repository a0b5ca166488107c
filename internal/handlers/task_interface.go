package handlers

import (
	"context"
	"todo/internal/dto"
)

type Service interface {
	HealthCheck(context.Context) error
	CreateTask(context.Context, dto.Task) (*dto.Task, error)
	GetTask(context.Context, int64) (*dto.Task, error)
	GetTaskByName(context.Context, string) (*dto.Task, error)
	UpdateTask(context.Context, int64, dto.Task) error
	DeleteTask(context.Context, int64) error
	GetAllTasks(ctx context.Context, page, limit int) ([]dto.Task, error)
}
