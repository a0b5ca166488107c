package task

import (
	"time"
)

// Task - запись задачи в хранилище
type Task struct {
	ID          int64      `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name        string     `json:"name" db:"name" gorm:"not null;index"`
	Description *string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime:false"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at" gorm:"autoUpdateTime:false"`
	Status      Status     `json:"status" db:"status" gorm:"type:varchar(32);not null"`
	Priority    Priority   `json:"priority" db:"priority" gorm:"type:varchar(32);not null"`
}

type Status string
type Priority string

const StatusPending Status = "PENDING"
const StatusInProgress Status = "IN_PROGRESS"
const StatusCompleted Status = "COMPLETED"

const PriorityLow Priority = "LOW"
const PriorityMedium Priority = "MEDIUM"
const PriorityHigh Priority = "HIGH"

const DefaultStatus = StatusPending
const DefaultPriority = PriorityMedium

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
