package dto

import (
	"time"
	"todo/internal/models/task"
)

// Task - внешнее представление задачи, то что клиент отправляет и получает.
// id, createdAt и updatedAt только для чтения: на входе они игнорируются.
type Task struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name" validate:"required"`
	Description *string       `json:"description"`
	CreatedAt   *time.Time    `json:"createdAt"`
	UpdatedAt   *time.Time    `json:"updatedAt"`
	Status      task.Status   `json:"status,omitempty" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	Priority    task.Priority `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
}
