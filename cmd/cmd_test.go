package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/buildsy/buildsy-backend/client"
	"github.com/buildsy/buildsy-backend/prompts"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"targetAudience=students", "projectScope = small=ish"})
	if err != nil {
		t.Fatalf("parseParams: %v", err)
	}
	if params.Get(prompts.Slot("targetAudience")) != "students" {
		t.Errorf("targetAudience = %q", params.TargetAudience)
	}
	if params.ProjectScope != " small=ish" {
		t.Errorf("projectScope = %q", params.ProjectScope)
	}

	if _, err := parseParams([]string{"nope"}); err == nil {
		t.Error("missing '=' should fail")
	}
	if _, err := parseParams([]string{"favoriteColor=blue"}); err == nil {
		t.Error("unknown key should fail")
	}
}

func TestSetupLogging(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	setupLogging(map[string]string{"LOG_LEVEL": "DEBUG"})
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("level = %v", zerolog.GlobalLevel())
	}
	setupLogging(map[string]string{"LOG_LEVEL": "loud"})
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("bad level should fall back to info, got %v", zerolog.GlobalLevel())
	}
}

const assistantReply = "### Recipe Share\n\n" +
	"**Description:** A web app where families share and rate their favorite recipes.\n\n" +
	"**Tech Stack:** React, Node.js\n\n" +
	"**Difficulty:** beginner\n"

func TestRunAskSavesAndPublishes(t *testing.T) {
	projectID := uuid.New()
	var created map[string]any
	var published bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/chat/message":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    map[string]string{"response": assistantReply, "sessionId": "s", "timestamp": "t"},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/api/projects":
			_ = json.NewDecoder(r.Body).Decode(&created)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    map[string]any{"id": projectID.String(), "name": created["name"]},
			})
		case r.Method == http.MethodPut && r.URL.Path == "/api/projects/"+projectID.String():
			var body map[string]bool
			_ = json.NewDecoder(r.Body).Decode(&body)
			published = body["isPublic"]
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    map[string]any{"id": projectID.String(), "is_public": true},
			})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := runAsk(context.Background(), &out, client.New(srv.URL, client.WithToken("t")), askOptions{
		Message: "A weekend project for families",
		Save:    true,
		Public:  true,
	})
	if err != nil {
		t.Fatalf("runAsk: %v", err)
	}

	if created["name"] != "Recipe Share" || created["difficulty"] != "beginner" {
		t.Errorf("created draft = %v", created)
	}
	if !published {
		t.Error("project was not published")
	}
	for _, want := range []string{"Name:       Recipe Share", "Tech stack: React, Node.js", "Saved project " + projectID.String()} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunAskReportsUserFacingErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := runAsk(context.Background(), &bytes.Buffer{}, client.New(srv.URL), askOptions{Message: "hi"})
	if err == nil || err.Error() != client.MsgServerError {
		t.Errorf("err = %v", err)
	}
}
