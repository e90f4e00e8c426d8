package api

import (
	"net/http"

	"github.com/buildsy/buildsy-backend/errs"
	"github.com/buildsy/buildsy-backend/ideas"
	"github.com/buildsy/buildsy-backend/prompts"
	"github.com/buildsy/buildsy-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type chatHandler struct {
	responder Responder
	logger    zerolog.Logger
	chat      *services.ChatService
}

func newChatHandler(chat *services.ChatService) chatHandler {
	logger := log.With().Str("handlerName", "chatHandler").Logger()

	return chatHandler{
		responder: NewResponder(logger),
		logger:    logger,
		chat:      chat,
	}
}

// sendMessage answers a single user message
// @Summary Send chat message
// @Tags Chat
// @Accept json
// @Produce json
// @Success 200 {object} services.ChatReply
// @Router /api/chat/message [post]
func (h chatHandler) sendMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatMessageRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		reply, err := h.chat.Reply(r.Context(), services.ChatRequest{
			Messages:  []prompts.Message{{Role: prompts.RoleUser, Content: req.Message}},
			SessionID: req.SessionID,
			Context:   req.Context,
			Params:    req.AdditionalParams,
		})
		if err != nil {
			h.responder.WriteFailure(w, "Failed to process chat message", err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "Chat response generated successfully", reply)
	}
}

// sendConversation answers the last message of a conversation history
// @Summary Send conversation
// @Tags Chat
// @Accept json
// @Produce json
// @Success 200 {object} services.ChatReply
// @Router /api/chat/conversation [post]
func (h chatHandler) sendConversation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req conversationRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if len(req.Messages) == 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("Messages array is required and cannot be empty"))
			return
		}
		for _, msg := range req.Messages {
			if msg.Role == "" || msg.Content == "" {
				h.responder.WriteError(w, errs.NewBadRequestError("Each message must have role and content properties"))
				return
			}
		}

		reply, err := h.chat.Reply(r.Context(), services.ChatRequest{
			Messages:  req.Messages,
			SessionID: req.SessionID,
			Context:   req.Context,
			Params:    req.AdditionalParams,
		})
		if err != nil {
			h.responder.WriteFailure(w, "Failed to process conversation", err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "Conversation processed successfully", reply)
	}
}

// getContexts lists the supported conversation contexts
// @Summary List chat contexts
// @Tags Chat
// @Produce json
// @Router /api/chat/contexts [get]
func (h chatHandler) getContexts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteSuccess(w, http.StatusOK, "Available chat contexts", contextsResponse{
			Contexts: h.chat.Contexts(),
		})
	}
}

// extractDraft turns an assistant reply into a project draft.
func (h chatHandler) extractDraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req extractRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		draft := ideas.Sanitize(ideas.Extract(req.Text))
		h.logger.Debug().Str("name", draft.Name).Str("category", draft.Category).Msg("Extracted project draft")
		h.responder.WriteSuccess(w, http.StatusOK, "Project draft extracted successfully", draft)
	}
}
