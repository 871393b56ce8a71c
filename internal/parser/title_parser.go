package parser

import (
	"regexp"
	"strings"

	"github.com/balkashynov/ceoplan/internal/models"
)

// ParsedTask represents a task parsed from natural language
type ParsedTask struct {
	Text    string
	Pillar  models.Pillar // empty when no #pillar was given
	IsMIT   bool
	GoalRef string
	Errors  []string
}

var (
	pillarRegex = regexp.MustCompile(`#([a-zA-Z]+)`)
	mitRegex    = regexp.MustCompile(`(?i)(^|\s)(!mit|\*)(\s|$)`)
	goalRegex   = regexp.MustCompile(`(?i)\bgoal:(\S+)`)
)

// ParseTitle extracts metadata from a task title using natural syntax
// Syntax: "Call Acme #sales !mit goal:2"
func ParseTitle(input string) ParsedTask {
	result := ParsedTask{
		Text:   input,
		Errors: []string{},
	}

	// Extract pillar (#sales, #frog, or an alias like #work)
	for _, match := range pillarRegex.FindAllStringSubmatch(input, -1) {
		pillar, ok := models.ParsePillar(match[1])
		if !ok {
			result.Errors = append(result.Errors, "Unknown pillar '"+match[1]+"'. Use: "+pillarNames())
			continue
		}
		if result.Pillar != "" && result.Pillar != pillar {
			result.Errors = append(result.Errors, "Only one pillar per task, keeping #"+string(result.Pillar))
			continue
		}
		result.Pillar = pillar
	}
	// Remove from text
	input = pillarRegex.ReplaceAllString(input, "")

	// Extract MIT flag (!mit or a lone *)
	if mitRegex.MatchString(input) {
		result.IsMIT = true
		input = mitRegex.ReplaceAllString(input, " ")
		// a second pass catches adjacent markers like "* !mit"
		input = mitRegex.ReplaceAllString(input, " ")
	}

	// Extract goal reference (goal:2 or goal:<id>)
	if goalMatches := goalRegex.FindStringSubmatch(input); len(goalMatches) > 1 {
		result.GoalRef = goalMatches[1]
		input = goalRegex.ReplaceAllString(input, "")
	}

	// Clean up the text (remove extra spaces)
	result.Text = strings.Join(strings.Fields(input), " ")

	return result
}

func pillarNames() string {
	names := make([]string, len(models.Pillars))
	for i, p := range models.Pillars {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
