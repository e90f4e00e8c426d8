package prompts

import (
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ErrNoMessages is returned when there is nothing to send to the model.
var ErrNoMessages = errors.New("no messages to format")

// Message is one entry of a conversation. It only lives in request and
// response payloads.
type Message struct {
	Role      string `json:"role" validate:"required"`
	Content   string `json:"content" validate:"required"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Format builds the model input for a conversation.
//
// A history of exactly one user message renders the full chat template:
// the system prompt followed by the message. Any other history renders the
// system prompt on its own, then every earlier message mapped by role
// (assistant to ai, everything else to human), then the last message as a
// human turn.
func (r *Registry) Format(label string, params Params, history []Message) ([]llms.MessageContent, error) {
	if len(history) == 0 {
		return nil, ErrNoMessages
	}
	tpl, values := r.Values(label, params)

	if len(history) == 1 && history[0].Role == RoleUser {
		values[userMessageVar] = history[0].Content
		chatMessages, err := tpl.chat.FormatMessages(values)
		if err != nil {
			return nil, fmt.Errorf("format %s prompt: %w", tpl.Name, err)
		}
		out := make([]llms.MessageContent, 0, len(chatMessages))
		for _, m := range chatMessages {
			out = append(out, llms.TextParts(m.GetType(), m.GetContent()))
		}
		return out, nil
	}

	system, err := tpl.system.Prompt.Format(values)
	if err != nil {
		return nil, fmt.Errorf("format %s system prompt: %w", tpl.Name, err)
	}
	out := make([]llms.MessageContent, 0, len(history)+1)
	out = append(out, llms.TextParts(schema.ChatMessageTypeSystem, system))
	for _, m := range history[:len(history)-1] {
		out = append(out, llms.TextParts(roleType(m.Role), m.Content))
	}
	last := history[len(history)-1]
	out = append(out, llms.TextParts(schema.ChatMessageTypeHuman, last.Content))
	return out, nil
}

func roleType(role string) schema.ChatMessageType {
	if role == RoleAssistant {
		return schema.ChatMessageTypeAI
	}
	return schema.ChatMessageTypeHuman
}
