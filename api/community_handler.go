package api

import (
	"net/http"

	"github.com/buildsy/buildsy-backend/database"
	"github.com/buildsy/buildsy-backend/errs"
	"github.com/buildsy/buildsy-backend/metrics"
	"github.com/buildsy/buildsy-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	communityPageLimit = 12
	commentsPageLimit  = 20
)

type communityHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	voteRepo    *database.VoteRepo
	commentRepo *database.CommentRepo
	metrics     *metrics.Metrics
}

func newCommunityHandler(db database.Database, m *metrics.Metrics) communityHandler {
	logger := log.With().Str("handlerName", "communityHandler").Logger()

	return communityHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: db.ProjectRepo(),
		voteRepo:    db.VoteRepo(),
		commentRepo: db.CommentRepo(),
		metrics:     m,
	}
}

// getPublicProjects lists the community feed
// @Summary List public projects
// @Tags Community
// @Produce json
// @Param sortBy query string false "created_at, updated_at, name, upvotes or downvotes"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} models.ProjectPage
// @Router /api/community/projects [get]
func (h communityHandler) getPublicProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := database.ProjectFilter{
			Category:   q.Get("category"),
			Difficulty: q.Get("difficulty"),
			Search:     q.Get("search"),
			SortBy:     q.Get("sortBy"),
			SortOrder:  q.Get("sortOrder"),
		}

		page := paginationFromQuery(r, communityPageLimit)
		result, err := h.projectRepo.FindPublic(r.Context(), filter, page, ctxViewerID(r.Context()))
		if err != nil {
			h.responder.WriteFailure(w, "Failed to retrieve public projects", wrapDatabaseError("find", "public projects", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "Public projects retrieved successfully", result)
	}
}

// getProjectDetails returns a project with its first page of comments
// @Summary Get project with comments
// @Tags Community
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} projectDetailsResponse
// @Router /api/community/projects/{id} [get]
func (h communityHandler) getProjectDetails() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := findVisibleProject(r, h.projectRepo, projectID)
		if err != nil {
			h.responder.WriteFailure(w, "Failed to retrieve project details", err)
			return
		}

		comments, err := h.commentRepo.ListByProject(r.Context(), projectID, database.NewPagination(1, commentsPageLimit, commentsPageLimit))
		if err != nil {
			h.responder.WriteFailure(w, "Failed to retrieve project details", wrapDatabaseError("find", "comments", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "Project details retrieved successfully", projectDetailsResponse{
			Project:  project,
			Comments: comments.Comments,
		})
	}
}

// voteProject toggles the caller's vote on a project
// @Summary Vote on project
// @Tags Community
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} models.VoteResult
// @Router /api/community/projects/{id}/vote [post]
func (h communityHandler) voteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req voteRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if req.VoteType != models.Upvote && req.VoteType != models.Downvote {
			h.responder.WriteError(w, errs.NewBadRequestError("Vote type must be -1 (downvote) or 1 (upvote)"))
			return
		}

		if _, err := findVisibleProject(r, h.projectRepo, projectID); err != nil {
			h.responder.WriteFailure(w, "Failed to record vote", err)
			return
		}

		result, err := h.voteRepo.Cast(r.Context(), projectID, userID, req.VoteType)
		if err != nil {
			h.responder.WriteFailure(w, "Failed to record vote", wrapDatabaseError("record", "vote", err))
			return
		}
		h.metrics.RecordVote(string(result.Action))

		h.responder.WriteSuccess(w, http.StatusOK, "Vote recorded successfully", result)
	}
}

// addComment posts a comment or a reply to a top-level comment
// @Summary Add comment
// @Tags Community
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 201 {object} models.Comment
// @Router /api/community/projects/{id}/comments [post]
func (h communityHandler) addComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req commentRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := findVisibleProject(r, h.projectRepo, projectID); err != nil {
			h.responder.WriteFailure(w, "Failed to add comment", err)
			return
		}

		comment := &models.Comment{
			ProjectID: projectID,
			UserID:    userID,
			ParentID:  req.ParentID,
			Content:   req.Content,
			Replies:   []models.Comment{},
		}
		if err := h.commentRepo.Add(r.Context(), comment); err != nil {
			h.responder.WriteFailure(w, "Failed to add comment", wrapDatabaseError("create", "comment", err))
			return
		}
		h.metrics.RecordComment()

		h.responder.WriteSuccess(w, http.StatusCreated, "Comment added successfully", comment)
	}
}

// getProjectComments pages through a project's top-level comments
// @Summary List comments
// @Tags Community
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} models.CommentPage
// @Router /api/community/projects/{id}/comments [get]
func (h communityHandler) getProjectComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := findVisibleProject(r, h.projectRepo, projectID); err != nil {
			h.responder.WriteFailure(w, "Failed to retrieve comments", err)
			return
		}

		result, err := h.commentRepo.ListByProject(r.Context(), projectID, paginationFromQuery(r, commentsPageLimit))
		if err != nil {
			h.responder.WriteFailure(w, "Failed to retrieve comments", wrapDatabaseError("find", "comments", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "Comments retrieved successfully", result)
	}
}
