package api

import (
	"strings"

	"github.com/buildsy/buildsy-backend/database"
	"github.com/buildsy/buildsy-backend/models"
	"github.com/buildsy/buildsy-backend/prompts"
	"github.com/google/uuid"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	healthHandler    healthHandler
	chatHandler      chatHandler
	projectHandler   projectHandler
	communityHandler communityHandler
}

type chatMessageRequest struct {
	Message          string         `json:"message" validate:"required,min=1,max=1000"`
	SessionID        string         `json:"sessionId"`
	UserID           string         `json:"userId"`
	Context          string         `json:"context" validate:"max=200"`
	AdditionalParams prompts.Params `json:"additionalParams"`
}

type conversationRequest struct {
	Messages         []prompts.Message `json:"messages"`
	SessionID        string            `json:"sessionId"`
	UserID           string            `json:"userId"`
	Context          string            `json:"context" validate:"max=200"`
	AdditionalParams prompts.Params    `json:"additionalParams"`
}

type extractRequest struct {
	Text string `json:"text" validate:"required"`
}

type contextsResponse struct {
	Contexts []prompts.ContextInfo `json:"contexts"`
}

type createProjectRequest struct {
	Name              string   `json:"name" validate:"required,min=1,max=100"`
	Description       string   `json:"description" validate:"required,min=10,max=1000"`
	TechStack         []string `json:"techStack"`
	Category          string   `json:"category" validate:"required"`
	Difficulty        string   `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	EstimatedDuration string   `json:"estimatedDuration" validate:"required"`
	Features          []string `json:"features"`
	Requirements      []string `json:"requirements"`
}

func (req createProjectRequest) project(userID string) *models.Project {
	return &models.Project{
		UserID:            userID,
		Name:              req.Name,
		Description:       req.Description,
		Category:          req.Category,
		Difficulty:        models.Difficulty(req.Difficulty),
		EstimatedDuration: req.EstimatedDuration,
		TechStack:         orEmpty(req.TechStack),
		Features:          orEmpty(req.Features),
		Requirements:      orEmpty(req.Requirements),
	}
}

type updateProjectRequest struct {
	Name              *string   `json:"name" validate:"omitnil,min=1,max=100"`
	Description       *string   `json:"description" validate:"omitnil,min=10,max=1000"`
	TechStack         *[]string `json:"techStack"`
	Category          *string   `json:"category" validate:"omitnil,min=1"`
	Difficulty        *string   `json:"difficulty" validate:"omitnil,oneof=beginner intermediate advanced"`
	EstimatedDuration *string   `json:"estimatedDuration" validate:"omitnil,min=1"`
	Features          *[]string `json:"features"`
	Requirements      *[]string `json:"requirements"`
	Status            *string   `json:"status" validate:"omitnil,oneof=idea planning in_progress completed on_hold"`
	IsPublic          *bool     `json:"isPublic"`
	IsPublicSnake     *bool     `json:"is_public"`
}

func (req updateProjectRequest) update() database.ProjectUpdate {
	u := database.ProjectUpdate{
		Name:              req.Name,
		Description:       req.Description,
		Category:          req.Category,
		EstimatedDuration: req.EstimatedDuration,
		TechStack:         req.TechStack,
		Features:          req.Features,
		Requirements:      req.Requirements,
		IsPublic:          req.IsPublic,
	}
	if u.IsPublic == nil {
		u.IsPublic = req.IsPublicSnake
	}
	if req.Difficulty != nil {
		d := models.Difficulty(*req.Difficulty)
		u.Difficulty = &d
	}
	if req.Status != nil {
		s := models.Status(*req.Status)
		u.Status = &s
	}
	return u
}

type voteRequest struct {
	VoteType int `json:"voteType"`
}

type commentRequest struct {
	Content  string     `json:"content" validate:"required,max=1000"`
	ParentID *uuid.UUID `json:"parentId"`
}

func (c *commentRequest) normalize() {
	c.Content = strings.TrimSpace(c.Content)
}

type projectDetailsResponse struct {
	Project  *models.ProjectDetails `json:"project"`
	Comments []models.Comment       `json:"comments"`
}

type healthResponse struct {
	Status    string  `json:"status"`
	Message   string  `json:"message"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// splitCSV splits a comma separated query value, dropping empty entries.
func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
