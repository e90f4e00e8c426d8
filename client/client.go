// Package client talks to the Buildsy HTTP API and turns failures into
// messages that can be shown to a user as-is.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/buildsy/buildsy-backend/ideas"
	"github.com/buildsy/buildsy-backend/models"
	"github.com/buildsy/buildsy-backend/prompts"
	"github.com/buildsy/buildsy-backend/services"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	MsgUnauthorized = "Authentication required. Please log in."
	MsgNotFound     = "Service not found. Please try again later."
	MsgServerError  = "Server error. Please try again later."
	MsgNetwork      = "Network error. Please check your connection."
)

const defaultTimeout = 90 * time.Second

// Error is a failed API call. Message is safe to show to the user.
type Error struct {
	StatusCode int
	Message    string
	Details    []string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether err is a rejected or missing credential.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden)
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(cl *Client) {
		cl.token = token
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     log.With().Str("component", "apiClient").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
	Error   string          `json:"error"`
}

type chatMessageBody struct {
	Message          string         `json:"message"`
	SessionID        string         `json:"sessionId,omitempty"`
	Context          string         `json:"context,omitempty"`
	AdditionalParams prompts.Params `json:"additionalParams"`
}

type conversationBody struct {
	Messages         []prompts.Message `json:"messages"`
	SessionID        string            `json:"sessionId,omitempty"`
	Context          string            `json:"context,omitempty"`
	AdditionalParams prompts.Params    `json:"additionalParams"`
}

// SendMessage starts or continues a session with a single user message.
func (c *Client) SendMessage(ctx context.Context, message, contextLabel string, params prompts.Params, sessionID string) (services.ChatReply, error) {
	var reply services.ChatReply
	err := c.do(ctx, http.MethodPost, "/api/chat/message", chatMessageBody{
		Message:          message,
		SessionID:        sessionID,
		Context:          contextLabel,
		AdditionalParams: params,
	}, &reply)
	return reply, err
}

// SendConversation sends a whole history and returns the next assistant turn.
func (c *Client) SendConversation(ctx context.Context, messages []prompts.Message, contextLabel string, params prompts.Params, sessionID string) (services.ChatReply, error) {
	var reply services.ChatReply
	err := c.do(ctx, http.MethodPost, "/api/chat/conversation", conversationBody{
		Messages:         messages,
		SessionID:        sessionID,
		Context:          contextLabel,
		AdditionalParams: params,
	}, &reply)
	return reply, err
}

func (c *Client) Contexts(ctx context.Context) ([]prompts.ContextInfo, error) {
	var out struct {
		Contexts []prompts.ContextInfo `json:"contexts"`
	}
	err := c.do(ctx, http.MethodGet, "/api/chat/contexts", nil, &out)
	return out.Contexts, err
}

// Extract asks the server to turn assistant text into a project draft.
func (c *Client) Extract(ctx context.Context, text string) (ideas.Draft, error) {
	var draft ideas.Draft
	err := c.do(ctx, http.MethodPost, "/api/chat/extract", map[string]string{"text": text}, &draft)
	return draft, err
}

// CreateProject saves a draft as a new private project.
func (c *Client) CreateProject(ctx context.Context, draft ideas.Draft) (models.Project, error) {
	var project models.Project
	err := c.do(ctx, http.MethodPost, "/api/projects", draft, &project)
	return project, err
}

// SetVisibility publishes or hides one of the caller's projects.
func (c *Client) SetVisibility(ctx context.Context, id uuid.UUID, public bool) (models.Project, error) {
	var project models.Project
	err := c.do(ctx, http.MethodPut, "/api/projects/"+id.String(), map[string]bool{"isPublic": public}, &project)
	return project, err
}

func (c *Client) ListProjects(ctx context.Context, page, limit int) (models.ProjectPage, error) {
	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("limit", fmt.Sprint(limit))
	var out models.ProjectPage
	err := c.do(ctx, http.MethodGet, "/api/projects?"+q.Encode(), nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return &Error{Message: MsgNetwork, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{StatusCode: resp.StatusCode, Message: MsgNetwork, Err: err}
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(resp.StatusCode, env)
	}
	if decodeErr != nil {
		return &Error{StatusCode: resp.StatusCode, Message: MsgServerError, Err: fmt.Errorf("decode response: %w", decodeErr)}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &Error{StatusCode: resp.StatusCode, Message: MsgServerError, Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}

// statusError maps a failed response to its user-facing message.
func statusError(status int, env envelope) *Error {
	e := &Error{StatusCode: status, Details: env.Errors}
	if env.Error != "" {
		e.Err = errors.New(env.Error)
	}
	switch {
	case status == http.StatusUnauthorized:
		e.Message = MsgUnauthorized
	case status == http.StatusNotFound:
		e.Message = MsgNotFound
	case status >= http.StatusInternalServerError:
		e.Message = MsgServerError
	case env.Message != "":
		e.Message = env.Message
	default:
		e.Message = http.StatusText(status)
	}
	return e
}
