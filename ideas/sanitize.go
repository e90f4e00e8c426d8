package ideas

import (
	"regexp"
	"strings"

	"github.com/buildsy/buildsy-backend/models"
)

var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]*`)

// Sanitize is the second pass applied to a draft right before it is saved.
// It strips openers again, drops filler sentences from the description and
// guarantees every required field holds a valid value.
func Sanitize(d Draft) Draft {
	out := Draft{
		Name:              stripOpeners(stripEmphasis(trimValue(d.Name))),
		Difficulty:        models.Difficulty(strings.ToLower(strings.TrimSpace(string(d.Difficulty)))),
		EstimatedDuration: strings.TrimSpace(d.EstimatedDuration),
		Category:          strings.TrimSpace(d.Category),
		TechStack:         cleanList(d.TechStack, 2, 30, MaxTechStack, strings.TrimSpace),
		Features:          cleanList(d.Features, 5, 100, MaxFeatures, strings.TrimSpace),
	}
	if out.Name == "" {
		out.Name = UntitledProject
	}
	if !out.Difficulty.Valid() {
		out.Difficulty = DefaultDifficulty
	}
	if out.EstimatedDuration == "" {
		out.EstimatedDuration = UnknownDuration
	}
	if out.Category == "" {
		out.Category = DefaultCategory
	}

	desc := stripOpeners(stripEmphasis(d.Description))
	if hasFiller(desc) {
		var kept []string
		for _, sentence := range sentenceRe.FindAllString(desc, -1) {
			if sentence = strings.TrimSpace(sentence); sentence != "" && !hasFiller(sentence) {
				kept = append(kept, sentence)
			}
		}
		desc = stripOpeners(strings.Join(kept, " "))
	}
	if runeLen(desc) < 20 {
		desc = fallbackDescription(out.Category, string(out.Difficulty))
	}

	out.Name = truncate(out.Name, MaxNameLength)
	out.Description = truncate(desc, MaxDescriptionLength)
	out.EstimatedDuration = truncate(out.EstimatedDuration, 100)
	return out
}
