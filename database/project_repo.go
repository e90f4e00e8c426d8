package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/buildsy/buildsy-backend/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	upvotesColumn   = "(SELECT COUNT(*) FROM votes WHERE votes.project_id = projects.id AND votes.vote_type = 1) AS upvotes"
	downvotesColumn = "(SELECT COUNT(*) FROM votes WHERE votes.project_id = projects.id AND votes.vote_type = -1) AS downvotes"
)

// sortColumns maps accepted sortBy values to ORDER BY expressions.
var sortColumns = map[string]string{
	"created_at": "projects.created_at",
	"updated_at": "projects.updated_at",
	"name":       "projects.name",
	"upvotes":    "upvotes",
	"downvotes":  "downvotes",
}

// ProjectFilter narrows a project listing. Zero values mean "no filter".
type ProjectFilter struct {
	OwnerID    string   // only projects owned by this user
	PublicOnly bool     // only public projects
	VisibleTo  string   // public projects plus the ones this user owns
	Category   string
	Difficulty string
	Search     string   // case-insensitive match on name or description
	TechStack  []string // every entry must be present
	SortBy     string
	SortOrder  string
}

// ProjectUpdate is a partial update; nil fields are left untouched.
type ProjectUpdate struct {
	Name              *string
	Description       *string
	Category          *string
	Difficulty        *models.Difficulty
	EstimatedDuration *string
	TechStack         *[]string
	Features          *[]string
	Requirements      *[]string
	Status            *models.Status
	IsPublic          *bool
}

func (u ProjectUpdate) columns() map[string]any {
	cols := map[string]any{"updated_at": time.Now().UTC()}
	if u.Name != nil {
		cols["name"] = *u.Name
	}
	if u.Description != nil {
		cols["description"] = *u.Description
	}
	if u.Category != nil {
		cols["category"] = *u.Category
	}
	if u.Difficulty != nil {
		cols["difficulty"] = *u.Difficulty
	}
	if u.EstimatedDuration != nil {
		cols["estimated_duration"] = *u.EstimatedDuration
	}
	if u.TechStack != nil {
		cols["tech_stack"] = datatypes.NewJSONSlice(nonNil(*u.TechStack))
	}
	if u.Features != nil {
		cols["features"] = datatypes.NewJSONSlice(nonNil(*u.Features))
	}
	if u.Requirements != nil {
		cols["requirements"] = datatypes.NewJSONSlice(nonNil(*u.Requirements))
	}
	if u.Status != nil {
		cols["status"] = *u.Status
	}
	if u.IsPublic != nil {
		cols["is_public"] = *u.IsPublic
	}
	return cols
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

// Add inserts a new project. New projects are always private ideas.
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	project.IsPublic = false
	project.Status = models.StatusIdea
	return r.db.WithContext(ctx).Create(project).Error
}

// FindByID returns a project by its ID, or nil when there is none.
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindDetails returns a project with its vote counts, or nil when there is
// none. When viewerID is set the viewer's own vote is filled in.
func (r *ProjectRepo) FindDetails(ctx context.Context, id uuid.UUID, viewerID string) (*models.ProjectDetails, error) {
	var rows []models.ProjectDetails
	err := r.detailsQuery(ctx).
		Where("projects.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if err := r.attachUserVotes(ctx, rows, viewerID); err != nil {
		return nil, err
	}
	return &rows[0], nil
}

// FindByOwner lists a user's projects, newest first.
func (r *ProjectRepo) FindByOwner(ctx context.Context, userID string, page Pagination) (models.ProjectPage, error) {
	return r.List(ctx, ProjectFilter{OwnerID: userID}, page, userID)
}

// FindPublic lists public projects for the community feed.
func (r *ProjectRepo) FindPublic(ctx context.Context, filter ProjectFilter, page Pagination, viewerID string) (models.ProjectPage, error) {
	filter.PublicOnly = true
	return r.List(ctx, filter, page, viewerID)
}

// List runs a filtered, sorted and paginated project query. The count and
// the page are fetched concurrently.
func (r *ProjectRepo) List(ctx context.Context, filter ProjectFilter, page Pagination, viewerID string) (models.ProjectPage, error) {
	result := models.ProjectPage{Page: page.Page, Projects: []models.ProjectDetails{}}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q := applyFilter(r.db.WithContext(gctx).Model(&models.Project{}), filter)
		if err := q.Count(&result.Total).Error; err != nil {
			return fmt.Errorf("count projects: %w", err)
		}
		return nil
	})

	var rows []models.ProjectDetails
	g.Go(func() error {
		q := applyFilter(r.detailsQuery(gctx), filter)
		q = q.Order(orderClause(filter.SortBy, filter.SortOrder)).
			Limit(page.Limit).
			Offset(page.Offset())
		if err := q.Scan(&rows).Error; err != nil {
			return fmt.Errorf("list projects: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return result, err
	}

	if err := r.attachUserVotes(ctx, rows, viewerID); err != nil {
		return result, err
	}
	if rows != nil {
		result.Projects = rows
	}
	result.TotalPages = page.TotalPages(result.Total)
	return result, nil
}

// UpdateOwned applies a partial update to a project owned by userID. It
// returns nil when no such project exists for that owner.
func (r *ProjectRepo) UpdateOwned(ctx context.Context, id uuid.UUID, userID string, update ProjectUpdate) (*models.Project, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(update.columns())
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

// DeleteOwned removes a project owned by userID together with its votes and
// comments. It reports false when no such project exists for that owner.
func (r *ProjectRepo) DeleteOwned(ctx context.Context, id uuid.UUID, userID string) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Project{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

func (r *ProjectRepo) detailsQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Project{}).
		Select("projects.*, " + upvotesColumn + ", " + downvotesColumn)
}

func (r *ProjectRepo) attachUserVotes(ctx context.Context, rows []models.ProjectDetails, viewerID string) error {
	if viewerID == "" || len(rows) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}

	var votes []models.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND project_id IN ?", viewerID, ids).
		Find(&votes).Error
	if err != nil {
		return fmt.Errorf("load user votes: %w", err)
	}

	byProject := make(map[uuid.UUID]int, len(votes))
	for _, v := range votes {
		byProject[v.ProjectID] = v.VoteType
	}
	for i := range rows {
		if vt, ok := byProject[rows[i].ID]; ok {
			vt := vt
			rows[i].UserVote = &vt
		}
	}
	return nil
}

func applyFilter(q *gorm.DB, f ProjectFilter) *gorm.DB {
	if f.OwnerID != "" {
		q = q.Where("projects.user_id = ?", f.OwnerID)
	}
	if f.PublicOnly {
		q = q.Where("projects.is_public = ?", true)
	}
	if f.VisibleTo != "" {
		q = q.Where("(projects.is_public = ? OR projects.user_id = ?)", true, f.VisibleTo)
	} else if !f.PublicOnly && f.OwnerID == "" {
		q = q.Where("projects.is_public = ?", true)
	}
	if f.Category != "" {
		q = q.Where("projects.category = ?", f.Category)
	}
	if f.Difficulty != "" {
		q = q.Where("projects.difficulty = ?", f.Difficulty)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := containsPattern(strings.ToLower(search))
		q = q.Where(`(LOWER(projects.name) LIKE ? ESCAPE '\' OR LOWER(projects.description) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	for _, tech := range f.TechStack {
		if tech = strings.TrimSpace(tech); tech == "" {
			continue
		}
		q = q.Where(`CAST(projects.tech_stack AS TEXT) LIKE ? ESCAPE '\'`, containsPattern(`"`+tech+`"`))
	}
	return q
}

func orderClause(sortBy, sortOrder string) string {
	col, ok := sortColumns[sortBy]
	if !ok {
		col = sortColumns["created_at"]
	}
	dir := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "ASC"
	}
	if col == "projects.created_at" {
		return col + " " + dir + ", projects.id " + dir
	}
	return col + " " + dir + ", projects.created_at DESC"
}
