package tui

import "github.com/balkashynov/ceoplan/internal/models"

// Color constants for the ceoplan TUI theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (task text, titles)
	ColorSecondaryText = "#B1B8C7" // Secondary text - subtle purple-tinted grey
	ColorDisabledText  = "#6D7383" // Completed tasks, muted text
	ColorPlaceholder   = "#B1B8C7"
	ColorHelpText      = "240" // Dark grey for help text

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED" // Logo, active borders, progress bar
	ColorAccentBright = "#A78BFA" // Highlights, level name

	// State Colors
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
	ColorWarning = "#F59E0B" // MIT star, streak
	ColorGold    = "#FACC15" // Points
)

// pillarColors tints the pillar badge of each task row
var pillarColors = map[models.Pillar]string{
	models.PillarSales:      "#22C55E",
	models.PillarAutomation: "#38BDF8",
	models.PillarStrategy:   "#A78BFA",
	models.PillarFrog:       "#84CC16",
	models.PillarLife:       "#F472B6",
}
