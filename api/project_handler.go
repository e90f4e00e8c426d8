package api

import (
	"net/http"
	"strconv"

	"github.com/buildsy/buildsy-backend/database"
	"github.com/buildsy/buildsy-backend/errs"
	"github.com/buildsy/buildsy-backend/metrics"
	"github.com/buildsy/buildsy-backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	metrics     *metrics.Metrics
}

func newProjectHandler(projectRepo *database.ProjectRepo, m *metrics.Metrics) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		metrics:     m,
	}
}

// createProject saves a new private project for the caller
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body createProjectRequest true "Project data"
// @Success 201 {object} models.Project
// @Failure 400 {object} Envelope "Validation error"
// @Router /api/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		var req createProjectRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := req.project(userID)
		if err := h.projectRepo.Add(r.Context(), project); err != nil {
			h.responder.WriteFailure(w, "Failed to create project", wrapDatabaseError("create", "project", err))
			return
		}
		h.metrics.RecordProjectCreated()

		h.logger.Info().Str("projectID", project.ID.String()).Str("userID", userID).Msg("Project created")
		h.responder.WriteSuccess(w, http.StatusCreated, "Project created successfully", project)
	}
}

// getUserProjects lists the caller's projects, newest first
// @Summary List own projects
// @Tags Projects
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} models.ProjectPage
// @Router /api/projects [get]
func (h projectHandler) getUserProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		page := paginationFromQuery(r, database.DefaultLimit)
		result, err := h.projectRepo.FindByOwner(r.Context(), userID, page)
		if err != nil {
			h.responder.WriteFailure(w, "Failed to retrieve projects", wrapDatabaseError("find", "projects", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "Projects retrieved successfully", result)
	}
}

// searchProjects filters the projects visible to the caller
// @Summary Search projects
// @Tags Projects
// @Produce json
// @Param category query string false "Category"
// @Param difficulty query string false "Difficulty"
// @Param search query string false "Text in name or description"
// @Param techStack query string false "Comma separated technologies"
// @Success 200 {object} models.ProjectPage
// @Router /api/projects/search [get]
func (h projectHandler) searchProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		viewerID := ctxViewerID(r.Context())
		filter := database.ProjectFilter{
			VisibleTo:  viewerID,
			Category:   q.Get("category"),
			Difficulty: q.Get("difficulty"),
			Search:     q.Get("search"),
			TechStack:  splitCSV(q.Get("techStack")),
		}

		page := paginationFromQuery(r, database.DefaultLimit)
		result, err := h.projectRepo.List(r.Context(), filter, page, viewerID)
		if err != nil {
			h.responder.WriteFailure(w, "Failed to search projects", wrapDatabaseError("search", "projects", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "Projects searched successfully", result)
	}
}

// getProject retrieves a project with its votes. Private projects are only
// visible to their owner.
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} models.ProjectDetails
// @Failure 404 {object} Envelope "Project not found"
// @Router /api/projects/{id} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := findVisibleProject(r, h.projectRepo, projectID)
		if err != nil {
			h.responder.WriteFailure(w, "Failed to retrieve project", err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "Project retrieved successfully", project)
	}
}

// updateProject applies a partial update to one of the caller's projects
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project
// @Failure 404 {object} Envelope "Not found or not the owner"
// @Router /api/projects/{id} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
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

		var req updateProjectRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.UpdateOwned(r.Context(), projectID, userID, req.update())
		if err != nil {
			h.responder.WriteFailure(w, "Failed to update project", wrapDatabaseError("update", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Project not found or you do not have permission to update it"))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "Project updated successfully", project)
	}
}

// deleteProject removes one of the caller's projects with its votes and comments
// @Summary Delete project
// @Tags Projects
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope "Not found or not the owner"
// @Router /api/projects/{id} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
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

		deleted, err := h.projectRepo.DeleteOwned(r.Context(), projectID, userID)
		if err != nil {
			h.responder.WriteFailure(w, "Failed to delete project", wrapDatabaseError("delete", "project", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFoundError("Project not found or you do not have permission to delete it"))
			return
		}

		h.logger.Info().Str("projectID", projectID.String()).Str("userID", userID).Msg("Project deleted")
		h.responder.WriteSuccess(w, http.StatusOK, "Project deleted successfully", nil)
	}
}

// findVisibleProject loads a project for the caller, returning a 404 when it
// does not exist or is private to someone else.
func findVisibleProject(r *http.Request, repo *database.ProjectRepo, projectID uuid.UUID) (*models.ProjectDetails, error) {
	viewerID := ctxViewerID(r.Context())
	project, err := repo.FindDetails(r.Context(), projectID, viewerID)
	if err != nil {
		return nil, wrapDatabaseError("find", "project", err)
	}
	if project == nil || !project.IsPublic && project.UserID != viewerID {
		return nil, errs.NewNotFoundError("Project not found")
	}
	return project, nil
}

// projectIDParam parses the {id} URL parameter. Malformed ids cannot match
// any project and are reported as not found.
func projectIDParam(r *http.Request) (uuid.UUID, error) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, errs.NewNotFoundError("Project not found")
	}
	return projectID, nil
}

// paginationFromQuery reads page and limit; bad values fall back to the defaults.
func paginationFromQuery(r *http.Request, defaultLimit int) database.Pagination {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return database.NewPagination(page, limit, defaultLimit)
}
