package prompts

// Slot names a substitution slot in a system prompt.
type Slot string

const (
	SlotContext Slot = "context"

	SlotProjectContext Slot = "projectContext"
	SlotSkillLevel     Slot = "skillLevel"
	SlotTimeframe      Slot = "timeframe"

	SlotProjectType     Slot = "projectType"
	SlotExperienceLevel Slot = "experienceLevel"
	SlotRequirements    Slot = "requirements"
	SlotLearningStyle   Slot = "learningStyle"

	SlotProjectConcept    Slot = "projectConcept"
	SlotTargetAudience    Slot = "targetAudience"
	SlotCoreFunctionality Slot = "coreFunctionality"
	SlotProjectScope      Slot = "projectScope"

	SlotProjectDetails      Slot = "projectDetails"
	SlotDeveloperExperience Slot = "developerExperience"
	SlotTimePerWeek         Slot = "timePerWeek"
	SlotComplexity          Slot = "complexity"

	SlotCurrentIssue       Slot = "currentIssue"
	SlotTechStack          Slot = "techStack"
	SlotErrorDetails       Slot = "errorDetails"
	SlotAttemptedSolutions Slot = "attemptedSolutions"
)

// NotSpecified is rendered for any slot the caller leaves empty.
const NotSpecified = "Not specified"

// Params carries the optional per-context slot values sent by clients as
// additionalParams. Unknown keys in the request are ignored.
type Params struct {
	ProjectContext string `json:"projectContext,omitempty"`
	SkillLevel     string `json:"skillLevel,omitempty"`
	Timeframe      string `json:"timeframe,omitempty"`

	ProjectType     string `json:"projectType,omitempty"`
	ExperienceLevel string `json:"experienceLevel,omitempty"`
	Requirements    string `json:"requirements,omitempty"`
	LearningStyle   string `json:"learningStyle,omitempty"`

	ProjectConcept    string `json:"projectConcept,omitempty"`
	TargetAudience    string `json:"targetAudience,omitempty"`
	CoreFunctionality string `json:"coreFunctionality,omitempty"`
	ProjectScope      string `json:"projectScope,omitempty"`

	ProjectDetails      string `json:"projectDetails,omitempty"`
	DeveloperExperience string `json:"developerExperience,omitempty"`
	TimePerWeek         string `json:"timePerWeek,omitempty"`
	Complexity          string `json:"complexity,omitempty"`

	CurrentIssue       string `json:"currentIssue,omitempty"`
	TechStack          string `json:"techStack,omitempty"`
	ErrorDetails       string `json:"errorDetails,omitempty"`
	AttemptedSolutions string `json:"attemptedSolutions,omitempty"`
}

// Get returns the value for a slot, "" when unset or unknown.
func (p Params) Get(s Slot) string {
	if ptr := p.field(s); ptr != nil {
		return *ptr
	}
	return ""
}

// Set assigns a slot value. It reports false for an unknown slot.
func (p *Params) Set(s Slot, value string) bool {
	ptr := p.field(s)
	if ptr == nil {
		return false
	}
	*ptr = value
	return true
}

func (p *Params) field(s Slot) *string {
	switch s {
	case SlotProjectContext:
		return &p.ProjectContext
	case SlotSkillLevel:
		return &p.SkillLevel
	case SlotTimeframe:
		return &p.Timeframe
	case SlotProjectType:
		return &p.ProjectType
	case SlotExperienceLevel:
		return &p.ExperienceLevel
	case SlotRequirements:
		return &p.Requirements
	case SlotLearningStyle:
		return &p.LearningStyle
	case SlotProjectConcept:
		return &p.ProjectConcept
	case SlotTargetAudience:
		return &p.TargetAudience
	case SlotCoreFunctionality:
		return &p.CoreFunctionality
	case SlotProjectScope:
		return &p.ProjectScope
	case SlotProjectDetails:
		return &p.ProjectDetails
	case SlotDeveloperExperience:
		return &p.DeveloperExperience
	case SlotTimePerWeek:
		return &p.TimePerWeek
	case SlotComplexity:
		return &p.Complexity
	case SlotCurrentIssue:
		return &p.CurrentIssue
	case SlotTechStack:
		return &p.TechStack
	case SlotErrorDetails:
		return &p.ErrorDetails
	case SlotAttemptedSolutions:
		return &p.AttemptedSolutions
	}
	return nil
}

// knownSlot reports whether s may appear in a template.
func knownSlot(s Slot) bool {
	if s == SlotContext {
		return true
	}
	var p Params
	return p.field(s) != nil
}
