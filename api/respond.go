package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/buildsy/buildsy-backend/errs"
	"github.com/rs/zerolog"
)

// Envelope is the body of every API response except /health and /metrics.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// WriteJSON writes data as the response body with the given status.
func (r Responder) WriteJSON(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteSuccess wraps data in a success envelope.
func (r Responder) WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	r.WriteJSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// WriteError is the terminal error handler. Known shapes keep their status
// and message; anything else is a 500 echoing the raw error text.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	if messages := errs.ValidationMessages(err); messages != nil {
		r.WriteJSON(w, http.StatusBadRequest, Envelope{
			Message: "Validation error",
			Errors:  messages,
		})
		return
	}

	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteJSON(w, http.StatusInternalServerError, Envelope{
			Message: "Internal Server Error",
			Error:   err.Error(),
		})
		return
	}

	body := Envelope{Message: apiErr.Message()}
	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Str("error", apiErr.GetFullError()).Msg("request failed")
		body.Error = errorText(apiErr)
	} else if apiErr.Details != "" {
		body.Error = apiErr.Details
	}
	r.WriteJSON(w, apiErr.StatusCode, body)
}

// WriteFailure reports a failed operation under an operation-specific
// message. Client errors (4xx) are passed through unchanged.
func (r Responder) WriteFailure(w http.ResponseWriter, message string, err error) {
	if status := errs.StatusCode(err); status < http.StatusInternalServerError {
		r.WriteError(w, err)
		return
	}

	r.logger.Error().Err(err).Msg(message)
	r.WriteJSON(w, http.StatusInternalServerError, Envelope{
		Message: message,
		Error:   errorText(err),
	})
}

// errorText is the text echoed in the error field. Model failures only
// expose their fixed message.
func errorText(err error) string {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	if errs.IsLLMError(err) {
		return apiErr.Message()
	}
	return apiErr.GetFullError()
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
