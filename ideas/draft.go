// Package ideas turns free-form assistant text into a project draft that can
// be submitted to the project store.
package ideas

import "github.com/buildsy/buildsy-backend/models"

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 1000
	MaxTechStack         = 10
	MaxFeatures          = 10

	UntitledProject   = "Untitled Project"
	UnknownDuration   = "To be determined"
	DefaultCategory   = "Software Development"
	DefaultDifficulty = models.DifficultyIntermediate
)

// Category names assigned by the keyword scan.
const (
	CategoryWeb      = "Web Development"
	CategoryMobile   = "Mobile Development"
	CategoryGame     = "Game Development"
	CategoryAIML     = "AI/ML"
	CategoryData     = "Data Science"
	CategorySoftware = DefaultCategory
)

// Draft is an extracted, not yet saved project. Its JSON form matches the
// create project request.
type Draft struct {
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	TechStack         []string          `json:"techStack"`
	Features          []string          `json:"features"`
	Difficulty        models.Difficulty `json:"difficulty"`
	EstimatedDuration string            `json:"estimatedDuration"`
	Category          string            `json:"category"`
}
