package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/buildsy/buildsy-backend/errs"
	"github.com/buildsy/buildsy-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *CommentRepo) GetDB() *gorm.DB {
	return r.db
}

// FindByID returns a comment by its ID, or nil when there is none.
func (r *CommentRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Add inserts a comment. A reply must point at a top-level comment on the
// same project.
func (r *CommentRepo) Add(ctx context.Context, comment *models.Comment) error {
	if comment.ParentID != nil {
		parent, err := r.FindByID(ctx, *comment.ParentID)
		if err != nil {
			return fmt.Errorf("find parent comment: %w", err)
		}
		if parent == nil || parent.ProjectID != comment.ProjectID {
			return errs.NewValidationError("Parent comment not found on this project")
		}
		if parent.ParentID != nil {
			return errs.NewValidationError("Replies can only be added to top-level comments")
		}
	}
	return r.db.WithContext(ctx).Create(comment).Error
}

// ListByProject returns a page of top-level comments, newest first, each
// with its replies in chronological order.
func (r *CommentRepo) ListByProject(ctx context.Context, projectID uuid.UUID, page Pagination) (models.CommentPage, error) {
	result := models.CommentPage{Page: page.Page, Comments: []models.Comment{}}

	topLevel := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("project_id = ? AND parent_id IS NULL", projectID)
	if err := topLevel.Count(&result.Total).Error; err != nil {
		return result, fmt.Errorf("count comments: %w", err)
	}
	result.TotalPages = page.TotalPages(result.Total)

	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND parent_id IS NULL", projectID).
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&comments).Error
	if err != nil {
		return result, fmt.Errorf("list comments: %w", err)
	}
	if len(comments) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, len(comments))
	for i := range comments {
		ids[i] = comments[i].ID
	}
	var replies []models.Comment
	err = r.db.WithContext(ctx).
		Where("parent_id IN ?", ids).
		Order("created_at ASC").
		Find(&replies).Error
	if err != nil {
		return result, fmt.Errorf("list replies: %w", err)
	}

	byParent := make(map[uuid.UUID][]models.Comment, len(comments))
	for _, reply := range replies {
		reply.Replies = []models.Comment{}
		byParent[*reply.ParentID] = append(byParent[*reply.ParentID], reply)
	}
	for i := range comments {
		comments[i].Replies = byParent[comments[i].ID]
		if comments[i].Replies == nil {
			comments[i].Replies = []models.Comment{}
		}
	}
	result.Comments = comments
	return result, nil
}
