package ideas

import (
	"reflect"
	"strings"
	"testing"

	"github.com/buildsy/buildsy-backend/models"
)

func TestExtractLabeledResponse(t *testing.T) {
	text := "Project: Todo Tracker\nDescription: A simple app to track todos.\nTechnologies: React, Node.js\nFeatures:\n- Add tasks\n- Mark complete\nDifficulty: beginner\nDuration: 2 weeks"

	d := Extract(text)
	if !strings.Contains(d.Name, "Todo Tracker") {
		t.Errorf("name = %q", d.Name)
	}
	if d.Description != "A simple app to track todos." {
		t.Errorf("description = %q", d.Description)
	}
	if !reflect.DeepEqual(d.TechStack, []string{"React", "Node.js"}) {
		t.Errorf("tech stack = %#v", d.TechStack)
	}
	if len(d.Features) != 2 {
		t.Errorf("features = %#v", d.Features)
	}
	if d.Difficulty != models.DifficultyBeginner {
		t.Errorf("difficulty = %q", d.Difficulty)
	}
	if d.EstimatedDuration != "2 weeks" {
		t.Errorf("duration = %q", d.EstimatedDuration)
	}
	if d.Category != CategoryWeb {
		t.Errorf("category = %q", d.Category)
	}
}

func TestExtractEmptyInput(t *testing.T) {
	d := Extract("")
	if d.Name != UntitledProject {
		t.Errorf("name = %q", d.Name)
	}
	if d.Description != "A Software Development project at the intermediate level." {
		t.Errorf("description = %q", d.Description)
	}
	if d.TechStack == nil || d.Features == nil {
		t.Error("lists must be empty, not nil")
	}
	if d.Difficulty != models.DifficultyIntermediate || d.EstimatedDuration != UnknownDuration || d.Category != CategorySoftware {
		t.Errorf("defaults = %+v", d)
	}
}

func TestExtractMarkdownResponse(t *testing.T) {
	text := strings.Join([]string{
		"Here's an idea for you!",
		"",
		"## Recipe Finder",
		"",
		"**Description:** Here's a web app that suggests recipes from the ingredients you already have.",
		"",
		"**Tech Stack:** React + TypeScript, Node.js & Express, PostgreSQL, C++, react",
		"",
		"**Key Features:**",
		"- Ingredient-based recipe search",
		"- Save favourite recipes",
		"- Ok",
		"* Weekly meal planner with shopping list",
		"",
		"**Difficulty:** intermediate",
		"**Duration:** 3-4 weeks.",
		"",
		"Happy coding! Let me know if you want more ideas.",
	}, "\r\n")

	d := Extract(text)
	if d.Name != "Recipe Finder" {
		t.Errorf("name = %q", d.Name)
	}
	if d.Description != "A web app that suggests recipes from the ingredients you already have." {
		t.Errorf("description = %q", d.Description)
	}
	wantTech := []string{"React", "TypeScript", "Node.js", "Express", "PostgreSQL", "C++"}
	if !reflect.DeepEqual(d.TechStack, wantTech) {
		t.Errorf("tech stack = %#v", d.TechStack)
	}
	wantFeatures := []string{"Ingredient-based recipe search", "Save favourite recipes", "Weekly meal planner with shopping list"}
	if !reflect.DeepEqual(d.Features, wantFeatures) {
		t.Errorf("features = %#v", d.Features)
	}
	if d.Difficulty != models.DifficultyIntermediate {
		t.Errorf("difficulty = %q", d.Difficulty)
	}
	if d.EstimatedDuration != "3-4 weeks" {
		t.Errorf("duration = %q", d.EstimatedDuration)
	}
	if d.Category != CategoryWeb {
		t.Errorf("category = %q", d.Category)
	}
}

func TestExtractNameFallbacks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"quoted", `I'd call it "Budget Buddy" and it helps you save money every month, week after week, with reminders.`, "Budget Buddy"},
		{"build phrase", "You should build a Habit Tracker for students who struggle with routines and want daily nudges from friends.", "Habit Tracker"},
		{"first sentence", "A React Native app for iOS and Android that tracks workouts. It syncs with wearables.", "A React Native app for iOS and Android that tracks workouts"},
		{"too long", strings.Repeat("word ", 30), UntitledProject},
		{"heading skips section titles", "## Features\n- one thing\n## Pixel Painter\nDraw things.", "Pixel Painter"},
		{"first sentence skips section heading", "## Features:\n- offline mode\nA journaling app for hikers. Works offline.", "A journaling app for hikers"},
		{"first sentence skips labelled line", "Tech stack: C++ + Qt & SQLite\nA desktop synth for live looping.", "A desktop synth for live looping"},
		{"only section lines", "Features:\nTech stack: Go", UntitledProject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extract(tt.text).Name; got != tt.want {
				t.Errorf("name = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractCategory(t *testing.T) {
	tests := map[string]string{
		"A React Native app for iOS":                CategoryMobile,
		"A React dashboard plus a React Native app": CategoryWeb,
		"A Vue frontend":                            CategoryWeb,
		"a unity platformer":                        CategoryGame,
		"a machine learning model for tweets":       CategoryAIML,
		"an AI chatbot":                             CategoryAIML,
		"an analytics pipeline":                     CategoryData,
		"an email sorter for the terminal":          CategorySoftware,
	}
	for text, want := range tests {
		if got := extractCategory(text); got != want {
			t.Errorf("extractCategory(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestExtractDifficultyKeywords(t *testing.T) {
	tests := map[string]models.Difficulty{
		"This is a complex distributed system.":      models.DifficultyAdvanced,
		"An easy starter project.":                   models.DifficultyBeginner,
		"Good for expert and beginner alike.":        models.DifficultyAdvanced,
		"Nothing about level here.":                  models.DifficultyIntermediate,
		"Difficulty: beginner\nThe sync is complex.": models.DifficultyBeginner,
	}
	for text, want := range tests {
		if got := Extract(text).Difficulty; got != want {
			t.Errorf("difficulty(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestExtractDuration(t *testing.T) {
	tests := map[string]string{
		"You can complete it in about 6 weeks.": "6 weeks",
		"This usually takes about two months":   "two months",
		"**Timeline:** 1 month":                 "1 month",
		"No estimate given.":                    UnknownDuration,
	}
	for text, want := range tests {
		if got := Extract(text).EstimatedDuration; got != want {
			t.Errorf("duration(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestExtractDescriptionSkipsFiller(t *testing.T) {
	text := "Sure! Let me know what you think about this.\nA collaborative whiteboard tool for remote teams to sketch ideas together"
	if got := Extract(text).Description; got != "A collaborative whiteboard tool for remote teams to sketch ideas together" {
		t.Errorf("description = %q", got)
	}
}

func TestExtractCaps(t *testing.T) {
	long := "Description: " + strings.Repeat("é", 1200)
	d := Extract(long)
	if n := runeLen(d.Description); n != MaxDescriptionLength {
		t.Errorf("description has %d runes", n)
	}

	var techs []string
	for i := 0; i < 15; i++ {
		techs = append(techs, "Tech"+string(rune('A'+i)))
	}
	d = Extract("Technologies: " + strings.Join(techs, ", ") + ", X, " + strings.Repeat("z", 31))
	if len(d.TechStack) != MaxTechStack {
		t.Errorf("tech stack has %d entries", len(d.TechStack))
	}
	for _, tech := range d.TechStack {
		if n := runeLen(tech); n < 2 || n > 30 {
			t.Errorf("tech %q out of bounds", tech)
		}
	}
}

func TestExtractNeverPanics(t *testing.T) {
	inputs := []string{
		"\n\n\n",
		"#",
		"- \n- \n",
		"Features:",
		"Description:",
		`""`,
		"build a ",
		"Project:   ",
		string([]byte{0xff, 0xfe, 0xfd}),
	}
	for _, in := range inputs {
		d := Extract(in)
		if d.Name == "" || d.Description == "" {
			t.Errorf("Extract(%q) left required fields empty: %+v", in, d)
		}
	}
}
