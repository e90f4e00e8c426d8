package prompts

import (
	"strings"
	"testing"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

func mustDefault(t *testing.T) *Registry {
	t.Helper()
	r, err := Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return r
}

func text(t *testing.T, m llms.MessageContent) string {
	t.Helper()
	if len(m.Parts) != 1 {
		t.Fatalf("want one part, got %d", len(m.Parts))
	}
	part, ok := m.Parts[0].(llms.TextContent)
	if !ok {
		t.Fatalf("part is %T", m.Parts[0])
	}
	return part.Text
}

func TestLookup(t *testing.T) {
	r := mustDefault(t)
	tests := map[string]string{
		"technology":            "technology",
		"Tech Recommendation":   "technology",
		"  refinement ":         "refinement",
		"project refinement":    "refinement",
		"feature brainstorming": "features",
		"project timeline":      "timeline",
		"debugging":             "problem solving",
		"problem-solving":       "problem solving",
		"problemsolving":        "problem solving",
		"general":               "general",
		"something else":        "general",
		"":                      "general",
	}
	for label, want := range tests {
		if got := r.Lookup(label).Name; got != want {
			t.Errorf("Lookup(%q) = %q, want %q", label, got, want)
		}
	}
}

func TestValuesDefaults(t *testing.T) {
	r := mustDefault(t)

	tpl, values := r.Values("technology", Params{ProjectType: "web app", Requirements: "   "})
	if tpl.Name != "technology" {
		t.Fatalf("template = %q", tpl.Name)
	}
	want := map[string]any{
		"aiName":          "Buildsy AI",
		"projectType":     "web app",
		"experienceLevel": NotSpecified,
		"requirements":    NotSpecified,
		"learningStyle":   NotSpecified,
	}
	if len(values) != len(want) {
		t.Errorf("values = %v", values)
	}
	for k, v := range want {
		if values[k] != v {
			t.Errorf("%s = %v, want %v", k, values[k], v)
		}
	}

	_, values = r.Values("pirate mode", Params{SkillLevel: "ignored"})
	if values["context"] != "pirate mode" || len(values) != 2 {
		t.Errorf("fallback values = %v", values)
	}
	_, values = r.Values("", Params{})
	if values["context"] != DefaultContext {
		t.Errorf("empty label context = %v", values["context"])
	}
}

func TestFormatSingleTurn(t *testing.T) {
	r := mustDefault(t)
	msgs, err := r.Format("technology", Params{ProjectType: "web app"}, []Message{{Role: RoleUser, Content: "What stack?"}})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages", len(msgs))
	}
	if msgs[0].Role != schema.ChatMessageTypeSystem || msgs[1].Role != schema.ChatMessageTypeHuman {
		t.Errorf("roles = %s, %s", msgs[0].Role, msgs[1].Role)
	}
	system := text(t, msgs[0])
	if !strings.HasPrefix(system, "\nYou are Buildsy AI, a technology consultant") {
		t.Errorf("system prompt should open with a blank line:\n%q", system[:min(len(system), 60)])
	}
	for _, want := range []string{"Buildsy AI", "Project type: web app", "User's experience level: Not specified", "Preferred learning style: Not specified"} {
		if !strings.Contains(system, want) {
			t.Errorf("system prompt missing %q:\n%s", want, system)
		}
	}
	if got := text(t, msgs[1]); got != "What stack?" {
		t.Errorf("user message = %q", got)
	}
}

func TestFormatUserMessageIsNotATemplate(t *testing.T) {
	r := mustDefault(t)
	msgs, err := r.Format("general", Params{}, []Message{{Role: RoleUser, Content: "print {{.aiName}} please"}})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got := text(t, msgs[1]); got != "print {{.aiName}} please" {
		t.Errorf("user message rewritten: %q", got)
	}
}

func TestFormatMultiTurn(t *testing.T) {
	r := mustDefault(t)
	history := []Message{
		{Role: RoleUser, Content: "I want a game"},
		{Role: RoleAssistant, Content: "What kind?"},
		{Role: "tool", Content: "odd role"},
		{Role: RoleAssistant, Content: "last one"},
	}
	msgs, err := r.Format("unknown context", Params{}, history)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if len(msgs) != len(history)+1 {
		t.Fatalf("got %d messages, want %d", len(msgs), len(history)+1)
	}
	wantRoles := []schema.ChatMessageType{
		schema.ChatMessageTypeSystem,
		schema.ChatMessageTypeHuman,
		schema.ChatMessageTypeAI,
		schema.ChatMessageTypeHuman,
		schema.ChatMessageTypeHuman,
	}
	for i, want := range wantRoles {
		if msgs[i].Role != want {
			t.Errorf("message %d role = %s, want %s", i, msgs[i].Role, want)
		}
	}
	if got := text(t, msgs[0]); !strings.Contains(got, "Current context: unknown context") {
		t.Errorf("fallback system prompt:\n%s", got)
	}
	if got := text(t, msgs[4]); got != "last one" {
		t.Errorf("last message = %q", got)
	}
}

func TestFormatSingleNonUserMessage(t *testing.T) {
	r := mustDefault(t)
	msgs, err := r.Format("refinement", Params{}, []Message{{Role: RoleAssistant, Content: "Hello"}})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if len(msgs) != 2 || msgs[1].Role != schema.ChatMessageTypeHuman {
		t.Fatalf("messages = %+v", msgs)
	}
	if got := text(t, msgs[0]); !strings.Contains(got, "Available time: Not specified") {
		t.Errorf("system prompt:\n%s", got)
	}
}

func TestFormatEmptyHistory(t *testing.T) {
	r := mustDefault(t)
	if _, err := r.Format("general", Params{}, nil); err != ErrNoMessages {
		t.Errorf("err = %v", err)
	}
}

func TestCatalog(t *testing.T) {
	r := mustDefault(t)
	catalog := r.Catalog()
	if len(catalog) != 6 {
		t.Fatalf("got %d contexts", len(catalog))
	}
	if catalog[0].Name != "general" || len(catalog[0].Parameters) != 0 {
		t.Errorf("general entry = %+v", catalog[0])
	}
	last := catalog[len(catalog)-1]
	if last.Name != "problem solving" || strings.Join(last.Parameters, ",") != "currentIssue,techStack,errorDetails,attemptedSolutions" {
		t.Errorf("problem solving entry = %+v", last)
	}
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	tests := map[string]string{
		"no fallback": `
persona: X
templates:
  - name: a
    system: hi {{.aiName}}
`,
		"unknown slot": `
persona: X
templates:
  - name: a
    fallback: true
    slots: [mood]
    system: hi
`,
		"duplicate label": `
persona: X
templates:
  - name: a
    fallback: true
    system: hi
  - name: b
    aliases: [a]
    system: hi
`,
		"broken template": `
persona: X
templates:
  - name: a
    fallback: true
    system: "hi {{.aiName"
`,
	}
	for name, doc := range tests {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestParamsSetGet(t *testing.T) {
	var p Params
	if !p.Set(SlotTimePerWeek, "10 hours") || p.Get(SlotTimePerWeek) != "10 hours" {
		t.Errorf("set/get timePerWeek failed: %+v", p)
	}
	if p.Set(Slot("mood"), "x") {
		t.Error("unknown slot accepted")
	}
	if p.Get(SlotContext) != "" {
		t.Error("context is not a params field")
	}
}
