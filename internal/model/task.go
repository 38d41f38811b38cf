package model

import "time"

// Title and description bounds enforced both here and by the column sizes.
const (
	TaskTitleMaxLen       = 100
	TaskDescriptionMaxLen = 500
	TaskCommentMaxLen     = 500
)

// Task is a unit of work owned by exactly one user. Completion and deletion
// are independent flags: a completed task can still be soft-deleted, but a
// deleted task can no longer be completed. Both transitions require an audit
// comment and stamp their timestamp.
type Task struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	UserID            uint       `json:"-" gorm:"not null;index"`
	Title             string     `json:"title" gorm:"size:100;not null"`
	Description       string     `json:"description" gorm:"size:500;not null"`
	Completed         bool       `json:"completed" gorm:"default:false"`
	Deleted           bool       `json:"deleted" gorm:"default:false"`
	CompletedAt       *time.Time `json:"completed_at"`
	DeletedAt         *time.Time `json:"deleted_at"`
	CompletionComment *string    `json:"completion_comment" gorm:"size:500"`
	DeletionComment   *string    `json:"deletion_comment" gorm:"size:500"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
