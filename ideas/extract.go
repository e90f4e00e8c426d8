package ideas

import (
	"regexp"
	"strings"

	"github.com/buildsy/buildsy-backend/models"
)

var (
	nameLabelRe    = regexp.MustCompile(`(?i)^(?:project|idea|app|application)(?:\s+(?:name|title|idea))?\s*:\s*(.+)$`)
	quotedRe       = regexp.MustCompile(`"([^"\n]{2,})"|“([^”\n]{2,})”`)
	buildPhraseRe  = regexp.MustCompile(`\b[Bb]uild(?:ing)?\s+an?\s+([A-Z][\w'-]*(?:\s+[A-Z][\w'-]*)*)`)
	sectionTitleRe = regexp.MustCompile(`(?i)^(?:(?:key|core|main)\s+)?(?:features?|description|overview|summary|about|technologies|technology|tech stack|tools|difficulty|duration|timeline|category|requirements|next steps|conclusion|functionality|capabilities)\b`)

	descLabelRe   = regexp.MustCompile(`(?i)^(?:description|about|overview|summary)\s*:\s*(.*)$`)
	descKeywordRe = regexp.MustCompile(`(?i)[^.!?\n]*\b(?:app|application|platform|system|tool|website|service)s?\b[^.!?\n]*[.!?]`)

	techLabelRe = regexp.MustCompile(`(?i)\b(?:technologies|technology|tech stack|using|built with|tools|frontend|backend|database)\s*:\s*(.*)$`)
	techSplitRe = regexp.MustCompile(`\s*(?:,|&|\n|\s\+\s)\s*`)

	featureHeaderRe = regexp.MustCompile(`(?i)^(?:(?:key|core|main)\s+)?(?:features|functionality|capabilities|includes|will have)\s*(?::\s*(.*))?$`)

	difficultyLabelRe = regexp.MustCompile(`(?i)^difficulty(?:\s+level)?\s*:\s*(beginner|intermediate|advanced)\b`)
	advancedRe        = regexp.MustCompile(`(?i)\b(?:advanced|complex|expert)\b`)
	beginnerRe        = regexp.MustCompile(`(?i)\b(?:beginner|simple|easy)\b`)

	durationLabelRe = regexp.MustCompile(`(?i)\b(?:estimated duration|duration|timeline|estimated time|time|takes)\s*:\s*(.+)$`)
	completeInRe    = regexp.MustCompile(`(?i)\b(?:complete|build|built|finish)\s+(?:it\s+|this\s+)?in\s+(?:about\s+|around\s+|roughly\s+|approximately\s+)?([^.,;\n]+)`)
	takesAboutRe    = regexp.MustCompile(`(?i)\btakes?\s+(?:about|around|roughly|approximately)\s+([^.,;\n]+)`)

	webRe         = regexp.MustCompile(`\bweb|\bwebsite\b|\bvue\b`)
	reactRe       = regexp.MustCompile(`\breact\b`)
	reactNativeRe = regexp.MustCompile(`\breact native\b`)
	mobileRe      = regexp.MustCompile(`\bmobile\b|\bios\b|\bandroid\b|\breact native\b`)
	gameRe        = regexp.MustCompile(`\bgame|\bunity\b|\bgaming\b`)
	aiRe          = regexp.MustCompile(`\bai\b|machine learning|\bml\b`)
	dataRe        = regexp.MustCompile(`\bdata\b|analytics|dashboard`)
)

// Extract reads a project draft out of assistant text. It is best effort:
// every field falls back to a usable default and it never fails.
func Extract(text string) Draft {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	labels := make([]string, len(lines))
	for i, l := range lines {
		labels[i] = labelLine(l)
	}

	d := Draft{
		Name:              extractName(text, lines, labels),
		TechStack:         extractTechStack(lines, labels),
		Features:          extractFeatures(lines, labels),
		Difficulty:        extractDifficulty(text, labels),
		EstimatedDuration: extractDuration(text, labels),
		Category:          extractCategory(text),
	}
	d.Description = extractDescription(lines, labels, d.Category, d.Difficulty)

	d.Name = truncate(d.Name, MaxNameLength)
	d.Description = truncate(d.Description, MaxDescriptionLength)
	return d
}

func extractName(text string, lines, labels []string) string {
	for _, l := range labels {
		if m := nameLabelRe.FindStringSubmatch(l); m != nil {
			if name := trimValue(m[1]); name != "" && runeLen(name) < 80 {
				return name
			}
		}
	}

	for i, l := range lines {
		if !isHeading(l) {
			continue
		}
		title := strings.TrimSuffix(labels[i], ":")
		if title == "" || sectionTitleRe.MatchString(title) {
			continue
		}
		if runeLen(title) < 80 {
			return title
		}
	}

	if m := quotedRe.FindStringSubmatch(text); m != nil {
		quoted := m[1]
		if quoted == "" {
			quoted = m[2]
		}
		if quoted = trimValue(quoted); quoted != "" && runeLen(quoted) < 80 {
			return quoted
		}
	}

	if m := buildPhraseRe.FindStringSubmatch(text); m != nil {
		if phrase := trimValue(m[1]); runeLen(phrase) < 80 {
			return phrase
		}
	}

	for i, l := range labels {
		if l == "" || isBullet(lines[i]) || sectionTitleRe.MatchString(l) || sectionLabelRe.MatchString(l) {
			continue
		}
		first := l
		if j := strings.IndexAny(first, ".!?"); j >= 0 {
			first = strings.TrimSpace(first[:j])
		}
		if first != "" && runeLen(first) < 100 {
			return first
		}
		break
	}
	return UntitledProject
}

func extractDescription(lines, labels []string, category string, difficulty models.Difficulty) string {
	desc := ""
	for i, l := range labels {
		m := descLabelRe.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		parts := []string{}
		if v := strings.TrimSpace(m[1]); v != "" {
			parts = append(parts, v)
		}
		for j := i + 1; j < len(lines); j++ {
			next := labels[j]
			if next == "" {
				if len(parts) > 0 {
					break
				}
				continue
			}
			if isHeading(lines[j]) || isBullet(lines[j]) || sectionLabelRe.MatchString(next) {
				break
			}
			parts = append(parts, next)
		}
		desc = strings.Join(parts, " ")
		break
	}

	if desc == "" {
		cleaned := strings.Join(labels, "\n")
		if m := descKeywordRe.FindString(cleaned); m != "" {
			desc = m
		}
	}
	desc = stripOpeners(stripEmphasis(desc))

	if runeLen(desc) < 20 {
		desc = ""
		for _, l := range labels {
			if runeLen(l) > 30 && !hasFiller(l) {
				desc = stripOpeners(l)
				break
			}
		}
	}
	if runeLen(desc) < 20 {
		desc = fallbackDescription(category, string(difficulty))
	}
	return desc
}

func extractTechStack(lines, labels []string) []string {
	var raw []string
	for i, l := range labels {
		m := techLabelRe.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		if v := strings.TrimSpace(m[1]); v != "" {
			raw = append(raw, techSplitRe.Split(v, -1)...)
			continue
		}
		// "Technologies:" on its own line introduces a bullet list.
		for j := i + 1; j < len(lines); j++ {
			if strings.TrimSpace(lines[j]) == "" {
				continue
			}
			if !isBullet(lines[j]) {
				break
			}
			raw = append(raw, techSplitRe.Split(bulletItem(lines[j]), -1)...)
		}
	}
	return cleanList(raw, 2, 30, MaxTechStack, func(s string) string {
		return strings.Trim(s, " .;:()")
	})
}

func extractFeatures(lines, labels []string) []string {
	var raw []string
	for i, l := range labels {
		m := featureHeaderRe.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		found := false
		for j := i + 1; j < len(lines); j++ {
			if strings.TrimSpace(lines[j]) == "" {
				if found {
					break
				}
				continue
			}
			if !isBullet(lines[j]) {
				break
			}
			raw = append(raw, bulletItem(lines[j]))
			found = true
		}
		if !found && strings.TrimSpace(m[1]) != "" {
			raw = append(raw, strings.Split(m[1], ",")...)
		}
	}
	return cleanList(raw, 5, 100, MaxFeatures, func(s string) string {
		return strings.TrimSpace(s)
	})
}

func extractDifficulty(text string, labels []string) models.Difficulty {
	for _, l := range labels {
		if m := difficultyLabelRe.FindStringSubmatch(l); m != nil {
			return models.Difficulty(strings.ToLower(m[1]))
		}
	}
	switch {
	case advancedRe.MatchString(text):
		return models.DifficultyAdvanced
	case beginnerRe.MatchString(text):
		return models.DifficultyBeginner
	}
	return DefaultDifficulty
}

func extractDuration(text string, labels []string) string {
	for _, l := range labels {
		if m := durationLabelRe.FindStringSubmatch(l); m != nil {
			if v := trimDuration(m[1]); v != "" {
				return v
			}
		}
	}
	for _, re := range []*regexp.Regexp{completeInRe, takesAboutRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			if v := trimDuration(m[1]); v != "" {
				return v
			}
		}
	}
	return UnknownDuration
}

func trimDuration(s string) string {
	return truncate(strings.Trim(stripEmphasis(s), " \t.,;:!\"'()"), 100)
}

func extractCategory(text string) string {
	lower := strings.ToLower(text)
	reactOutsideNative := len(reactRe.FindAllStringIndex(lower, -1)) > len(reactNativeRe.FindAllStringIndex(lower, -1))
	switch {
	case webRe.MatchString(lower) || reactOutsideNative:
		return CategoryWeb
	case mobileRe.MatchString(lower):
		return CategoryMobile
	case gameRe.MatchString(lower):
		return CategoryGame
	case aiRe.MatchString(lower):
		return CategoryAIML
	case dataRe.MatchString(lower):
		return CategoryData
	}
	return CategorySoftware
}

// cleanList trims, length-filters, dedupes case-insensitively and caps items.
func cleanList(items []string, minLen, maxLen, limit int, trim func(string) string) []string {
	out := []string{}
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = trim(stripEmphasis(item))
		n := runeLen(item)
		if n < minLen || n > maxLen {
			continue
		}
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out
}
