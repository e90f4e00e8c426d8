package ideas

import (
	"testing"

	"github.com/buildsy/buildsy-backend/models"
)

func TestSanitizeFillsRequiredFields(t *testing.T) {
	d := Sanitize(Draft{
		Name:        "  ",
		Description: "Here's a cool app. Let me know if you like it!",
		Difficulty:  "EXPERT",
	})
	if d.Name != UntitledProject {
		t.Errorf("name = %q", d.Name)
	}
	if d.Description != "A Software Development project at the intermediate level." {
		t.Errorf("description = %q", d.Description)
	}
	if d.Difficulty != models.DifficultyIntermediate {
		t.Errorf("difficulty = %q", d.Difficulty)
	}
	if d.Category != DefaultCategory || d.EstimatedDuration != UnknownDuration {
		t.Errorf("defaults = %+v", d)
	}
	if d.TechStack == nil || d.Features == nil {
		t.Error("lists must not be nil")
	}
}

func TestSanitizeStripsOpenersAndFiller(t *testing.T) {
	d := Sanitize(Draft{
		Name:              "**Here's** Recipe Share",
		Description:       "**Great!** A platform for sharing recipes with friends. Happy coding!",
		Difficulty:        "Advanced",
		Category:          "Web Development",
		EstimatedDuration: " 3 weeks ",
		TechStack:         []string{"Go", "go", " ", "Postgres"},
		Features:          []string{"Tiny", "Share recipes with friends"},
	})
	if d.Name != "Recipe Share" {
		t.Errorf("name = %q", d.Name)
	}
	if d.Description != "A platform for sharing recipes with friends." {
		t.Errorf("description = %q", d.Description)
	}
	if d.Difficulty != models.DifficultyAdvanced {
		t.Errorf("difficulty = %q", d.Difficulty)
	}
	if d.EstimatedDuration != "3 weeks" {
		t.Errorf("duration = %q", d.EstimatedDuration)
	}
	if len(d.TechStack) != 2 || len(d.Features) != 1 {
		t.Errorf("lists = %#v %#v", d.TechStack, d.Features)
	}
}

func TestSanitizeIsStable(t *testing.T) {
	once := Sanitize(Extract("Project: Todo Tracker\nDescription: A simple app to track todos.\nTechnologies: React, Node.js"))
	twice := Sanitize(once)
	if once.Name != twice.Name || once.Description != twice.Description || once.Difficulty != twice.Difficulty {
		t.Errorf("second pass changed the draft: %+v vs %+v", once, twice)
	}
}
