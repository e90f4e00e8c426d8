package api

import (
	"net/http"
	"time"

	"github.com/buildsy/buildsy-backend/llm"
	"github.com/rs/zerolog/log"
)

type healthHandler struct {
	responder   Responder
	startupTime time.Time
}

func newHealthHandler(startupTime time.Time) healthHandler {
	return healthHandler{
		responder:   NewResponder(log.With().Str("handlerName", "healthHandler").Logger()),
		startupTime: startupTime,
	}
}

func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		h.responder.WriteJSON(w, http.StatusOK, healthResponse{
			Status:    "OK",
			Message:   "Buildsy API is running",
			Timestamp: now.UTC().Format(llm.TimestampLayout),
			Uptime:    now.Sub(h.startupTime).Seconds(),
		})
	}
}
