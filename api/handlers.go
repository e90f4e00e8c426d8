package api

import (
	"time"

	"github.com/buildsy/buildsy-backend/auth"
	"github.com/buildsy/buildsy-backend/database"
	"github.com/buildsy/buildsy-backend/metrics"
	"github.com/buildsy/buildsy-backend/services"
)

// Dependencies are the long-lived clients the API is built from. They are
// constructed once at startup.
type Dependencies struct {
	Database database.Database
	Verifier auth.Verifier
	Chat     *services.ChatService
	Metrics  *metrics.Metrics
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		healthHandler:    newHealthHandler(startupTime),
		chatHandler:      newChatHandler(deps.Chat),
		projectHandler:   newProjectHandler(deps.Database.ProjectRepo(), deps.Metrics),
		communityHandler: newCommunityHandler(deps.Database, deps.Metrics),
	}
}
