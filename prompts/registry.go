// Package prompts holds the system prompt catalog and turns a chat history
// into the message list sent to the model.
package prompts

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/prompts"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultCatalog []byte

// DefaultContext is used when a request names no context.
const DefaultContext = "general project brainstorming"

const personaVar = "aiName"
const userMessageVar = "userMessage"

type catalogFile struct {
	Persona   string          `yaml:"persona"`
	Templates []templateEntry `yaml:"templates"`
}

type templateEntry struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Aliases     []string `yaml:"aliases"`
	Fallback    bool     `yaml:"fallback"`
	Slots       []Slot   `yaml:"slots"`
	System      string   `yaml:"system"`
}

// Template is one conversation context.
type Template struct {
	Name        string
	Description string
	Slots       []Slot
	Fallback    bool

	system prompts.SystemMessagePromptTemplate
	chat   prompts.ChatPromptTemplate
}

// ContextInfo describes a context for GET /api/chat/contexts.
type ContextInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Parameters  []string `json:"parameters"`
}

// Registry maps context labels to templates.
type Registry struct {
	persona   string
	templates []*Template
	byLabel   map[string]*Template
	fallback  *Template
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the registry built from the embedded catalog.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = Parse(defaultCatalog)
	})
	return defaultRegistry, defaultErr
}

// Parse builds a registry from a YAML catalog and checks it: labels must be
// unique, slots must be known and exactly one template is the fallback.
func Parse(data []byte) (*Registry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse prompt catalog: %w", err)
	}
	if file.Persona == "" {
		return nil, fmt.Errorf("prompt catalog: persona is required")
	}

	r := &Registry{persona: file.Persona, byLabel: make(map[string]*Template)}
	for _, entry := range file.Templates {
		tpl, err := newTemplate(entry)
		if err != nil {
			return nil, err
		}
		if tpl.Fallback {
			if r.fallback != nil {
				return nil, fmt.Errorf("prompt catalog: both %q and %q are marked fallback", r.fallback.Name, tpl.Name)
			}
			r.fallback = tpl
		}
		for _, alias := range append([]string{entry.Name}, entry.Aliases...) {
			label := normalizeLabel(alias)
			if other, ok := r.byLabel[label]; ok && other != tpl {
				return nil, fmt.Errorf("prompt catalog: label %q used by %q and %q", alias, other.Name, tpl.Name)
			}
			r.byLabel[label] = tpl
		}
		r.templates = append(r.templates, tpl)
	}
	if r.fallback == nil {
		return nil, fmt.Errorf("prompt catalog: no fallback template")
	}
	return r, nil
}

func newTemplate(entry templateEntry) (*Template, error) {
	if entry.Name == "" || strings.TrimSpace(entry.System) == "" {
		return nil, fmt.Errorf("prompt catalog: template needs a name and a system prompt")
	}
	vars := []string{personaVar}
	for _, s := range entry.Slots {
		if !knownSlot(s) {
			return nil, fmt.Errorf("prompt catalog: template %q uses unknown slot %q", entry.Name, s)
		}
		if s == SlotContext && !entry.Fallback {
			return nil, fmt.Errorf("prompt catalog: only the fallback template may use the %q slot", s)
		}
		vars = append(vars, string(s))
	}

	system := prompts.NewSystemMessagePromptTemplate(entry.System, vars)
	human := prompts.NewHumanMessagePromptTemplate("{{."+userMessageVar+"}}", []string{userMessageVar})
	tpl := &Template{
		Name:        entry.Name,
		Description: entry.Description,
		Slots:       entry.Slots,
		Fallback:    entry.Fallback,
		system:      system,
		chat:        prompts.NewChatPromptTemplate([]prompts.MessageFormatter{system, human}),
	}

	probe := map[string]any{personaVar: "probe"}
	for _, s := range entry.Slots {
		probe[string(s)] = "probe"
	}
	if _, err := system.Prompt.Format(probe); err != nil {
		return nil, fmt.Errorf("prompt catalog: template %q: %w", entry.Name, err)
	}
	return tpl, nil
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Persona is the assistant name rendered into every prompt.
func (r *Registry) Persona() string {
	return r.persona
}

// Lookup returns the template for a context label, falling back to the
// general template for anything unknown.
func (r *Registry) Lookup(label string) *Template {
	if tpl, ok := r.byLabel[normalizeLabel(label)]; ok {
		return tpl
	}
	return r.fallback
}

// Values returns the template variables for a context label: the persona,
// then every slot of the resolved template. Empty slots become NotSpecified;
// the fallback template receives the raw label as its context.
func (r *Registry) Values(label string, params Params) (*Template, map[string]any) {
	if strings.TrimSpace(label) == "" {
		label = DefaultContext
	}
	tpl := r.Lookup(label)
	values := map[string]any{personaVar: r.persona}
	for _, s := range tpl.Slots {
		if s == SlotContext {
			values[string(s)] = label
			continue
		}
		v := strings.TrimSpace(params.Get(s))
		if v == "" {
			v = NotSpecified
		}
		values[string(s)] = v
	}
	return tpl, values
}

// Catalog lists the supported contexts in catalog order. The fallback's
// context slot is not a client parameter and is left out.
func (r *Registry) Catalog() []ContextInfo {
	out := make([]ContextInfo, 0, len(r.templates))
	for _, tpl := range r.templates {
		params := []string{}
		for _, s := range tpl.Slots {
			if s != SlotContext {
				params = append(params, string(s))
			}
		}
		out = append(out, ContextInfo{Name: tpl.Name, Description: tpl.Description, Parameters: params})
	}
	return out
}
