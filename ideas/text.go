package ideas

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	headingRe  = regexp.MustCompile(`^#{1,6}\s*`)
	bulletRe   = regexp.MustCompile(`^\s*(?:[-*•+]|\d{1,2}[.)])\s+`)
	emphasisRe = regexp.MustCompile("\\*\\*|__|`")

	// A line that opens a new "Label: value" section.
	sectionLabelRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 /&()'-]{0,40}:(?:\s|$)`)

	openerRe = regexp.MustCompile(`(?i)^(?:(?:here(?:'|’)s|here is|here are|i suggest|i'd suggest|i would suggest|i recommend|i'd recommend|you could|how about|what about)\b|(?:sure|great|absolutely|certainly|okay|ok)[!,.:])\s*[,:-]?\s*`)

	fillerPhrases = []string{
		"happy coding",
		"feel free",
		"let me know",
		"hope this helps",
		"good luck",
		"would you like",
		"don't hesitate",
		"do you want",
	}
)

// stripEmphasis removes markdown emphasis and inline code markers.
func stripEmphasis(s string) string {
	s = emphasisRe.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, "*", "")
}

// labelLine normalises a line for label matching: no heading marks, no
// bullet, no emphasis.
func labelLine(line string) string {
	line = strings.TrimSpace(line)
	line = headingRe.ReplaceAllString(line, "")
	line = bulletRe.ReplaceAllString(line, "")
	return strings.TrimSpace(stripEmphasis(line))
}

func isBullet(line string) bool {
	return bulletRe.MatchString(line)
}

func bulletItem(line string) string {
	return strings.TrimSpace(stripEmphasis(bulletRe.ReplaceAllString(line, "")))
}

func isHeading(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

// stripOpeners drops leading conversational openers such as "Here's" and
// capitalises what is left.
func stripOpeners(s string) string {
	s = strings.TrimSpace(s)
	for i := 0; i < 3; i++ {
		next := strings.TrimSpace(openerRe.ReplaceAllString(s, ""))
		if next == s {
			break
		}
		s = next
	}
	return capitalize(s)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func hasFiller(s string) bool {
	lower := strings.ToLower(s)
	for _, phrase := range fillerPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// truncate caps s at n runes.
func truncate(s string, n int) string {
	if runeLen(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n]))
}

func trimValue(s string) string {
	return strings.Trim(strings.TrimSpace(s), " \t\"'“”‘’")
}

func fallbackDescription(category, difficulty string) string {
	return fmt.Sprintf("A %s project at the %s level.", category, difficulty)
}
