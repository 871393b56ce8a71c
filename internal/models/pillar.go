package models

import "strings"

// Pillar classifies tasks and goals into one of five fixed areas
type Pillar string

const (
	PillarSales      Pillar = "sales"
	PillarAutomation Pillar = "automation"
	PillarStrategy   Pillar = "strategy"
	PillarFrog       Pillar = "frog"
	PillarLife       Pillar = "life"
)

// DefaultPillar is used when a task carries no usable classification
const DefaultPillar = PillarLife

// Pillars lists every pillar in display order
var Pillars = []Pillar{PillarSales, PillarAutomation, PillarStrategy, PillarFrog, PillarLife}

// PillarInfo holds display metadata for a pillar
type PillarInfo struct {
	ID          Pillar
	Name        string
	Emoji       string
	Description string
}

var pillarInfo = map[Pillar]PillarInfo{
	PillarSales:      {ID: PillarSales, Name: "Sales", Emoji: "💰", Description: "Sales and customer acquisition"},
	PillarAutomation: {ID: PillarAutomation, Name: "Automation", Emoji: "⚙️", Description: "Processes and automation"},
	PillarStrategy:   {ID: PillarStrategy, Name: "Strategy", Emoji: "🎯", Description: "Strategy and planning"},
	PillarFrog:       {ID: PillarFrog, Name: "Frogs", Emoji: "🐸", Description: "Hard tasks first"},
	PillarLife:       {ID: PillarLife, Name: "Life", Emoji: "🏠", Description: "Everyday and personal"},
}

// IsValid reports whether p is one of the known pillars
func (p Pillar) IsValid() bool {
	_, ok := pillarInfo[p]
	return ok
}

// Info returns display metadata, falling back to the default pillar
func (p Pillar) Info() PillarInfo {
	if info, ok := pillarInfo[p]; ok {
		return info
	}
	return pillarInfo[DefaultPillar]
}

// ParsePillar parses user input to a Pillar. Old category names are accepted
// as aliases. The second return value is false for unrecognized input.
func ParsePillar(input string) (Pillar, bool) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "sales", "sale", "project":
		return PillarSales, true
	case "automation", "auto", "work":
		return PillarAutomation, true
	case "strategy", "strat":
		return PillarStrategy, true
	case "frog", "frogs":
		return PillarFrog, true
	case "life", "personal":
		return PillarLife, true
	default:
		return DefaultPillar, false
	}
}
