package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	Upvote   = 1
	Downvote = -1
)

// Vote is one user's vote on a project. A user has at most one vote per project.
type Vote struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_votes_project_id;uniqueIndex:idx_votes_project_user"`
	UserID    string    `json:"user_id" db:"user_id" gorm:"type:text;not null;uniqueIndex:idx_votes_project_user"`
	VoteType  int       `json:"vote_type" db:"vote_type" gorm:"type:smallint;not null"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// VoteAction tells the caller what a vote request did to the stored vote.
type VoteAction string

const (
	VoteCreated VoteAction = "created"
	VoteUpdated VoteAction = "updated"
	VoteRemoved VoteAction = "removed"
)

// VoteResult is returned by the vote endpoint.
type VoteResult struct {
	Action    VoteAction `json:"action"`
	VoteType  int        `json:"voteType"`
	Upvotes   int64      `json:"upvotes"`
	Downvotes int64      `json:"downvotes"`
	UserVote  *int       `json:"userVote"`
}
