// Package llm wraps the chat model behind a single Generate call.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/buildsy/buildsy-backend/config"
	"github.com/buildsy/buildsy-backend/errs"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

const DefaultModel = "gpt-4o-mini"

// Generation is the text of one model response and when it was received.
type Generation struct {
	Text      string
	Timestamp string
}

// Gateway sends formatted conversations to a model. It is safe for
// concurrent use when the model is.
type Gateway struct {
	model       llms.Model
	temperature float64
	now         func() time.Time
}

type Option func(*Gateway)

func WithTemperature(t float64) Option {
	return func(g *Gateway) { g.temperature = t }
}

func withClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

// New wraps model. Generations run at temperature 0 unless overridden.
func New(model llms.Model, opts ...Option) *Gateway {
	g := &Gateway{model: model, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewOpenAI builds a gateway over the OpenAI chat API using OPENAI_API_KEY,
// OPENAI_MODEL and the optional OPENAI_BASE_URL.
func NewOpenAI(cfg map[string]string) (*Gateway, error) {
	token := config.GetString(cfg, "OPENAI_API_KEY", "")
	if token == "" {
		return nil, errs.NewConfigMissingError("OPENAI_API_KEY")
	}
	modelName := config.GetString(cfg, "OPENAI_MODEL", DefaultModel)

	opts := []openai.Option{openai.WithToken(token), openai.WithModel(modelName)}
	if baseURL := config.GetString(cfg, "OPENAI_BASE_URL", ""); baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	log.Info().Str("model", modelName).Msg("LLM gateway ready")
	return New(model), nil
}

// Generate runs one completion. There is no retry and no streaming.
func (g *Gateway) Generate(ctx context.Context, messages []llms.MessageContent) (Generation, error) {
	resp, err := g.model.GenerateContent(ctx, messages, llms.WithTemperature(g.temperature))
	if err != nil {
		return Generation{}, err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return Generation{}, errs.ErrEmptyResponse
	}

	text := resp.Choices[0].Content
	if strings.TrimSpace(text) == "" {
		return Generation{}, errs.ErrEmptyResponse
	}
	return Generation{
		Text:      text,
		Timestamp: g.now().UTC().Format(TimestampLayout),
	}, nil
}
