package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/buildsy/buildsy-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VoteRepo struct {
	db *gorm.DB
}

func NewVoteRepo(db *gorm.DB) *VoteRepo {
	return &VoteRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *VoteRepo) GetDB() *gorm.DB {
	return r.db
}

// Find returns a user's vote on a project, or nil when there is none.
func (r *VoteRepo) Find(ctx context.Context, projectID uuid.UUID, userID string) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// Counts returns the number of up and down votes on a project.
func (r *VoteRepo) Counts(ctx context.Context, projectID uuid.UUID) (up, down int64, err error) {
	return countVotes(r.db.WithContext(ctx), projectID)
}

// Cast records a vote and toggles it: voting the same way twice removes the
// vote, voting the other way flips it.
func (r *VoteRepo) Cast(ctx context.Context, projectID uuid.UUID, userID string, voteType int) (models.VoteResult, error) {
	result := models.VoteResult{VoteType: voteType}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		err := tx.Where("project_id = ? AND user_id = ?", projectID, userID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.Vote{ProjectID: projectID, UserID: userID, VoteType: voteType}
			if err := tx.Create(&vote).Error; err != nil {
				return fmt.Errorf("create vote: %w", err)
			}
			result.Action = models.VoteCreated
		case err != nil:
			return fmt.Errorf("find vote: %w", err)
		case existing.VoteType == voteType:
			if err := tx.Delete(&models.Vote{}, "id = ?", existing.ID).Error; err != nil {
				return fmt.Errorf("remove vote: %w", err)
			}
			result.Action = models.VoteRemoved
		default:
			err := tx.Model(&models.Vote{}).
				Where("id = ?", existing.ID).
				Update("vote_type", voteType).Error
			if err != nil {
				return fmt.Errorf("update vote: %w", err)
			}
			result.Action = models.VoteUpdated
		}

		up, down, err := countVotes(tx, projectID)
		if err != nil {
			return err
		}
		result.Upvotes, result.Downvotes = up, down
		return nil
	})
	if err != nil {
		return models.VoteResult{}, err
	}

	if result.Action != models.VoteRemoved {
		vt := voteType
		result.UserVote = &vt
	}
	return result, nil
}

func countVotes(db *gorm.DB, projectID uuid.UUID) (up, down int64, err error) {
	var rows []struct {
		VoteType int
		Total    int64
	}
	err = db.Model(&models.Vote{}).
		Select("vote_type, COUNT(*) AS total").
		Where("project_id = ?", projectID).
		Group("vote_type").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, fmt.Errorf("count votes: %w", err)
	}
	for _, row := range rows {
		switch row.VoteType {
		case models.Upvote:
			up = row.Total
		case models.Downvote:
			down = row.Total
		}
	}
	return up, down, nil
}
