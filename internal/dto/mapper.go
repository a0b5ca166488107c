package dto

import (
	"time"
	"todo/internal/models/task"
)

func FromRecord(t *task.Task) Task {
	createdAt := t.CreatedAt
	return Task{
		ID:          t.ID,
		Name:        t.Name,
		Description: copyString(t.Description),
		CreatedAt:   &createdAt,
		UpdatedAt:   copyTime(t.UpdatedAt),
		Status:      t.Status,
		Priority:    t.Priority,
	}
}

func FromRecordList(tasks []*task.Task) []Task {
	result := make([]Task, len(tasks))
	for i, t := range tasks {
		result[i] = FromRecord(t)
	}
	return result
}

// ToRecord копирует все поля как есть. При создании id и отметки времени
// обнуляет вызывающий код.
func ToRecord(t Task) *task.Task {
	record := &task.Task{
		ID:          t.ID,
		Name:        t.Name,
		Description: copyString(t.Description),
		UpdatedAt:   copyTime(t.UpdatedAt),
		Status:      t.Status,
		Priority:    t.Priority,
	}
	if t.CreatedAt != nil {
		record.CreatedAt = *t.CreatedAt
	}
	return record
}

// MergeInto переносит изменяемые поля в существующую запись.
// ID, CreatedAt и UpdatedAt не трогаются; пустые статус и приоритет
// оставляют сохранённое значение.
func MergeInto(t Task, record *task.Task) {
	record.Name = t.Name
	record.Description = copyString(t.Description)
	if t.Status != "" {
		record.Status = t.Status
	}
	if t.Priority != "" {
		record.Priority = t.Priority
	}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
