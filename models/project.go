package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Valid reports whether d is one of the three known levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

type Status string

const (
	StatusIdea       Status = "idea"
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on_hold"
)

// Project is a saved project idea. Only its owner may change or delete it.
type Project struct {
	ID                uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID            string                      `json:"user_id" db:"user_id" gorm:"type:text;not null;index:idx_projects_user_id"`
	Name              string                      `json:"name" db:"name" gorm:"type:varchar(100);not null"`
	Description       string                      `json:"description" db:"description" gorm:"type:text;not null"`
	Category          string                      `json:"category" db:"category" gorm:"type:text;not null;index:idx_projects_category"`
	Difficulty        Difficulty                  `json:"difficulty" db:"difficulty" gorm:"type:text;not null"`
	EstimatedDuration string                      `json:"estimated_duration" db:"estimated_duration" gorm:"type:text;not null"`
	TechStack         datatypes.JSONSlice[string] `json:"tech_stack" db:"tech_stack"`
	Features          datatypes.JSONSlice[string] `json:"features" db:"features"`
	Requirements      datatypes.JSONSlice[string] `json:"requirements" db:"requirements"`
	IsPublic          bool                        `json:"is_public" db:"is_public" gorm:"not null;default:false;index:idx_projects_is_public"`
	Status            Status                      `json:"status" db:"status" gorm:"type:text;not null"`
	CreatedAt         time.Time                   `json:"created_at" db:"created_at" gorm:"not null;index:idx_projects_created_at"`
	UpdatedAt         time.Time                   `json:"updated_at" db:"updated_at" gorm:"not null"`
}

// BeforeCreate fills the id and the list columns so rows never hold JSON null.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.TechStack == nil {
		p.TechStack = datatypes.JSONSlice[string]{}
	}
	if p.Features == nil {
		p.Features = datatypes.JSONSlice[string]{}
	}
	if p.Requirements == nil {
		p.Requirements = datatypes.JSONSlice[string]{}
	}
	if p.Status == "" {
		p.Status = StatusIdea
	}
	if p.Difficulty == "" {
		p.Difficulty = DifficultyIntermediate
	}
	return nil
}

// ProjectDetails is a project together with its vote aggregates and, when
// the caller is known, the caller's own vote.
type ProjectDetails struct {
	Project   `gorm:"embedded"`
	Upvotes   int64 `json:"upvotes" gorm:"column:upvotes"`
	Downvotes int64 `json:"downvotes" gorm:"column:downvotes"`
	UserVote  *int  `json:"user_vote" gorm:"-"`
}

// ProjectPage is one page of a project listing.
type ProjectPage struct {
	Projects   []ProjectDetails `json:"projects"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}
