package services

import (
	"context"
	"errors"
	"time"

	"github.com/buildsy/buildsy-backend/errs"
	"github.com/buildsy/buildsy-backend/llm"
	"github.com/buildsy/buildsy-backend/metrics"
	"github.com/buildsy/buildsy-backend/prompts"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
)

const DefaultLLMTimeout = 60 * time.Second

// Generator produces one model response for a formatted conversation.
type Generator interface {
	Generate(ctx context.Context, messages []llms.MessageContent) (llm.Generation, error)
}

// ChatRequest is one turn of a brainstorming conversation.
type ChatRequest struct {
	Messages  []prompts.Message
	SessionID string
	Context   string
	Params    prompts.Params
}

// ChatReply is what the chat routes return in data.
type ChatReply struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
	Timestamp string `json:"timestamp"`
}

// ChatService runs the chat pipeline: resolve the context template, format
// the history and call the model.
type ChatService struct {
	registry *prompts.Registry
	gen      Generator
	timeout  time.Duration
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

func NewChatService(registry *prompts.Registry, gen Generator, timeout time.Duration, m *metrics.Metrics) *ChatService {
	if timeout <= 0 {
		timeout = DefaultLLMTimeout
	}
	return &ChatService{
		registry: registry,
		gen:      gen,
		timeout:  timeout,
		metrics:  m,
		logger:   log.With().Str("serviceName", "chatService").Logger(),
	}
}

// Contexts lists the supported conversation contexts.
func (s *ChatService) Contexts() []prompts.ContextInfo {
	return s.registry.Catalog()
}

// Reply generates the assistant's next message. A missing session id is
// replaced by a fresh one. Any model failure is reported as
// errs.ErrLLMGeneration; the cause is only logged.
func (s *ChatService) Reply(ctx context.Context, req ChatRequest) (ChatReply, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	label := req.Context
	if label == "" {
		label = prompts.DefaultContext
	}

	messages, err := s.registry.Format(label, req.Params, req.Messages)
	if errors.Is(err, prompts.ErrNoMessages) {
		return ChatReply{}, errs.NewBadRequestError("Messages array is required and cannot be empty")
	}
	if err != nil {
		return ChatReply{}, errs.NewLLMError("Failed to generate AI response", err)
	}

	tpl := s.registry.Lookup(label)
	s.logger.Debug().
		Str("context", tpl.Name).
		Str("sessionId", sessionID).
		Int("messages", len(messages)).
		Msg("Generating chat response")

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	gen, err := s.gen.Generate(genCtx, messages)
	s.metrics.RecordLLMRequest(tpl.Name, err, time.Since(start))
	if err != nil {
		s.logger.Error().Err(err).Str("context", tpl.Name).Str("sessionId", sessionID).Msg("LLM generation failed")
		return ChatReply{}, errs.NewLLMError("Failed to generate AI response", err)
	}

	return ChatReply{
		Response:  gen.Text,
		SessionID: sessionID,
		Timestamp: gen.Timestamp,
	}, nil
}
