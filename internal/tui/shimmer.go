package tui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type shimmerTickMsg struct{}

// ShimmerConfig holds configuration for shimmer effects
type ShimmerConfig struct {
	Enabled    bool    // animations: on|off
	SpeedMs    int     // tick interval (default 100)
	WidthRatio float64 // highlight width relative to the text (default 0.25)
	CycleMs    int     // time for one sweep across the text (default 1800)
	PauseMs    int     // pause between sweeps (default 500)
}

// DefaultShimmerConfig returns default shimmer configuration
func DefaultShimmerConfig() ShimmerConfig {
	return ShimmerConfig{
		Enabled:    os.Getenv("CEOPLAN_NO_ANIMATION") == "",
		SpeedMs:    100,
		WidthRatio: 0.25,
		CycleMs:    1800,
		PauseMs:    500,
	}
}

// ShimmerState sweeps a highlight across a line of text
type ShimmerState struct {
	Config    ShimmerConfig
	Center    float64
	TrueColor bool

	active     bool
	lastUpdate time.Time
	pausedAt   time.Time
}

// NewShimmerState creates a new shimmer state
func NewShimmerState(config ShimmerConfig) *ShimmerState {
	return &ShimmerState{
		Config:     config,
		TrueColor:  os.Getenv("COLORTERM") == "truecolor",
		active:     config.Enabled,
		lastUpdate: time.Now(),
	}
}

// Advance moves the highlight one step for text of n glyphs
func (s *ShimmerState) Advance(n int, now time.Time) {
	if !s.active || n <= 0 {
		return
	}
	if now.Sub(s.lastUpdate) < time.Duration(s.Config.SpeedMs)*time.Millisecond {
		return
	}
	s.lastUpdate = now

	if !s.pausedAt.IsZero() {
		if now.Sub(s.pausedAt) >= time.Duration(s.Config.PauseMs)*time.Millisecond {
			s.pausedAt = time.Time{}
			s.Center = -float64(n) * s.Config.WidthRatio
		}
		return
	}

	// the highlight starts before the text and leaves past its end
	ticks := float64(s.Config.CycleMs) / float64(s.Config.SpeedMs)
	distance := float64(n) * (1 + 2*s.Config.WidthRatio)
	s.Center += distance / ticks

	if end := float64(n) * (1 + s.Config.WidthRatio); s.Center >= end {
		s.Center = end
		s.pausedAt = now
	}
}

// Reset restarts the sweep (call when the selection changes)
func (s *ShimmerState) Reset() {
	s.Center = 0
	s.pausedAt = time.Time{}
	s.lastUpdate = time.Now()
}

// SetActive enables/disables shimmer
func (s *ShimmerState) SetActive(active bool) {
	s.active = active && s.Config.Enabled
}

// Active reports whether the animation is running
func (s *ShimmerState) Active() bool {
	return s.active
}

// Tick schedules the next animation frame, or nothing when inactive
func (s *ShimmerState) Tick() tea.Cmd {
	if !s.active {
		return nil
	}
	return tea.Tick(time.Duration(s.Config.SpeedMs)*time.Millisecond, func(time.Time) tea.Msg {
		return shimmerTickMsg{}
	})
}

// Render draws text with the highlight at its current position
func (s *ShimmerState) Render(text string, base, highlight [3]int) string {
	glyphs := []rune(text)
	if len(glyphs) == 0 {
		return ""
	}
	s.Advance(len(glyphs), time.Now())

	if !s.active {
		return colorize(text, highlight)
	}
	if !s.TrueColor {
		return renderFallback(glyphs, s.Center, s.Config.WidthRatio)
	}

	sigma := math.Max(1, s.Config.WidthRatio*float64(len(glyphs))/2)
	var b strings.Builder
	for i, g := range glyphs {
		dx := float64(i) - s.Center
		w := math.Exp(-(dx * dx) / (2 * sigma * sigma))
		b.WriteString(fmt.Sprintf("\033[38;2;%d;%d;%dm%c",
			blend(base[0], highlight[0], w),
			blend(base[1], highlight[1], w),
			blend(base[2], highlight[2], w),
			g))
	}
	b.WriteString("\033[0m")
	return b.String()
}

func blend(from, to int, w float64) int {
	return int(float64(from)*(1-w) + float64(to)*w)
}

func colorize(text string, rgb [3]int) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm%s\033[0m", rgb[0], rgb[1], rgb[2], text)
}

// renderFallback highlights a window of glyphs using the 256-color palette
func renderFallback(glyphs []rune, center, widthRatio float64) string {
	width := int(math.Max(1, widthRatio*float64(len(glyphs))))
	start := int(center) - width/2
	end := start + width

	var b strings.Builder
	for i, g := range glyphs {
		if i >= start && i < end {
			b.WriteString(fmt.Sprintf("\033[38;5;229m%c", g)) // light gold
		} else {
			b.WriteString(fmt.Sprintf("\033[38;5;250m%c", g)) // light grey
		}
	}
	b.WriteString("\033[0m")
	return b.String()
}

// Shimmer palettes
var (
	goldBase      = [3]int{245, 158, 11}  // #F59E0B
	goldHighlight = [3]int{254, 240, 138} // #FEF08A
)
