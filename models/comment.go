package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a comment on a project. Replies point at a top-level comment
// through ParentID; replies to replies are rejected.
type Comment struct {
	ID        uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID uuid.UUID  `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_comments_project_id"`
	UserID    string     `json:"user_id" db:"user_id" gorm:"type:text;not null"`
	ParentID  *uuid.UUID `json:"parent_id" db:"parent_id" gorm:"type:uuid;index:idx_comments_parent_id"`
	Content   string     `json:"content" db:"content" gorm:"type:text;not null"`
	CreatedAt time.Time  `json:"created_at" db:"created_at" gorm:"not null"`

	Replies []Comment `json:"replies" gorm:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CommentPage is one page of top-level comments with their replies.
type CommentPage struct {
	Comments   []Comment `json:"comments"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
}
