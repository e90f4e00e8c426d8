package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/buildsy/buildsy-backend/errs"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

type fakeModel struct {
	reply    *llms.ContentResponse
	err      error
	received []llms.MessageContent
	opts     llms.CallOptions
}

func (f *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.received = messages
	for _, opt := range options {
		opt(&f.opts)
	}
	return f.reply, f.err
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestGenerate(t *testing.T) {
	model := &fakeModel{reply: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "Build a habit tracker."}}}}
	at := time.Date(2024, 3, 9, 14, 5, 7, 123456789, time.FixedZone("X", 3600))
	g := New(model, WithTemperature(0.3), withClock(func() time.Time { return at }))

	msgs := []llms.MessageContent{llms.TextParts(schema.ChatMessageTypeHuman, "hi")}
	gen, err := g.Generate(context.Background(), msgs)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if gen.Text != "Build a habit tracker." {
		t.Errorf("text = %q", gen.Text)
	}
	if gen.Timestamp != "2024-03-09T13:05:07.123Z" {
		t.Errorf("timestamp = %q", gen.Timestamp)
	}
	if len(model.received) != 1 {
		t.Errorf("model got %d messages", len(model.received))
	}
	if model.opts.Temperature != 0.3 {
		t.Errorf("temperature = %v", model.opts.Temperature)
	}
}

func TestGenerateErrors(t *testing.T) {
	boom := errors.New("rate limited")
	g := New(&fakeModel{err: boom})
	if _, err := g.Generate(context.Background(), nil); !errors.Is(err, boom) {
		t.Errorf("model error not returned: %v", err)
	}

	g = New(&fakeModel{reply: &llms.ContentResponse{}})
	if _, err := g.Generate(context.Background(), nil); !errors.Is(err, errs.ErrEmptyResponse) {
		t.Errorf("empty choices: %v", err)
	}

	g = New(&fakeModel{reply: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "  "}}}})
	if _, err := g.Generate(context.Background(), nil); !errors.Is(err, errs.ErrEmptyResponse) {
		t.Errorf("blank content: %v", err)
	}
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	if _, err := NewOpenAI(map[string]string{}); err == nil {
		t.Error("missing OPENAI_API_KEY should fail")
	}
	g, err := NewOpenAI(map[string]string{"OPENAI_API_KEY": "sk-test", "OPENAI_BASE_URL": "http://localhost:9999/v1"})
	if err != nil {
		t.Fatalf("NewOpenAI: %v", err)
	}
	if g.model == nil {
		t.Error("model not set")
	}
}
