package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/balkashynov/ceoplan/internal/debounce"
	"github.com/balkashynov/ceoplan/internal/game"
	"github.com/balkashynov/ceoplan/internal/gamify"
	"github.com/balkashynov/ceoplan/internal/logger"
	"github.com/balkashynov/ceoplan/internal/models"
	"github.com/balkashynov/ceoplan/internal/parser"
	"github.com/balkashynov/ceoplan/internal/planner"
)

const progressBarWidth = 24

// DashboardModel is the interactive view of one day: tasks, habits and the
// player's progress. Plan edits are held in memory and written through a
// debouncer; habit toggles are written immediately.
type DashboardModel struct {
	ctx  context.Context
	svc  *planner.Service
	game *game.Holder
	date string
	day  time.Time

	plan        models.DailyPlan
	completions models.HabitCompletion
	order       []int
	cursor      int

	adding bool
	input  textinput.Model

	saves   *debounce.Debouncer
	shimmer *ShimmerState

	status string
	err    error
	width  int
}

// NewDashboardModel loads the plan and habit record for date. The game
// holder is taken from ctx.
func NewDashboardModel(ctx context.Context, svc *planner.Service, date string, saveDelay time.Duration) (*DashboardModel, error) {
	day, err := time.ParseInLocation(gamify.DateLayout, date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	plan, err := svc.LoadDailyPlan(ctx, date)
	if err != nil {
		return nil, err
	}
	completions, err := svc.LoadHabitCompletions(ctx, date)
	if err != nil {
		return nil, err
	}

	input := textinput.New()
	input.Placeholder = "Call Acme #sales !mit goal:1"
	input.CharLimit = 200
	input.Width = 50
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
	input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	m := &DashboardModel{
		ctx:         ctx,
		svc:         svc,
		game:        game.FromContext(ctx),
		date:        date,
		day:         day,
		plan:        plan,
		completions: completions,
		input:       input,
		saves:       debounce.New(saveDelay),
		shimmer:     NewShimmerState(DefaultShimmerConfig()),
		width:       80,
	}
	m.reorder()
	m.shimmer.SetActive(allDone(m.plan))
	return m, nil
}

// Init starts the banner animation when the day is already complete
func (m *DashboardModel) Init() tea.Cmd {
	return m.shimmer.Tick()
}

// Close writes any pending plan save
func (m *DashboardModel) Close() {
	m.saves.Flush()
}

// Update handles messages
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shimmerTickMsg:
		return m, m.shimmer.Tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m *DashboardModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	m.status = ""

	switch key := msg.String(); key {
	case "ctrl+c", "q", "esc":
		m.saves.Flush()
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.order)-1 {
			m.cursor++
		}

	case " ", "x", "enter":
		if t := m.selected(); t != nil {
			t.Completed = !t.Completed
			if t.Completed {
				m.status = "✓ " + t.Text
			}
			return m, m.planChanged()
		}

	case "m":
		if t := m.selected(); t != nil {
			t.IsMIT = !t.IsMIT
			return m, m.planChanged()
		}

	case "d", "backspace", "delete":
		if len(m.order) == 0 {
			break
		}
		i := m.order[m.cursor]
		m.status = "Removed " + m.plan.Tasks[i].Text
		m.plan.Tasks = append(m.plan.Tasks[:i], m.plan.Tasks[i+1:]...)
		return m, m.planChanged()

	case "e":
		m.plan.Energy = nextEnergy(m.plan.Energy)
		m.status = "Energy: " + string(m.plan.Energy)
		return m, m.planChanged()

	case "a", "n":
		m.adding = true
		m.input.Reset()
		return m, tea.Batch(m.input.Focus(), textinput.Blink)

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.toggleHabit(int(key[0] - '1'))
	}
	return m, nil
}

func (m *DashboardModel) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.saves.Flush()
		return m, tea.Quit

	case "esc":
		m.adding = false
		m.input.Blur()
		m.err = nil
		return m, nil

	case "enter":
		task, err := m.taskFromInput(m.input.Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.plan.Tasks = append(m.plan.Tasks, task)
		m.adding = false
		m.input.Blur()
		m.err = nil
		m.status = "Added " + task.Text
		cmd := m.planChanged()
		m.cursor = indexOf(m.order, len(m.plan.Tasks)-1)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// taskFromInput parses quick-add syntax into a new task
func (m *DashboardModel) taskFromInput(value string) (models.Task, error) {
	parsed := parser.ParseTitle(value)
	if len(parsed.Errors) > 0 {
		return models.Task{}, errors.New(parsed.Errors[0])
	}
	if parsed.Text == "" {
		return models.Task{}, planner.ErrEmptyText
	}

	task := models.Task{
		ID:     uuid.NewString(),
		Text:   parsed.Text,
		Pillar: parsed.Pillar,
		IsMIT:  parsed.IsMIT,
	}
	if !task.Pillar.IsValid() {
		task.Pillar = models.DefaultPillar
	}
	if parsed.GoalRef != "" {
		week, err := m.svc.LoadWeekPlan(m.ctx, planner.WeekKey(m.day, 0))
		if err != nil {
			return models.Task{}, err
		}
		i, err := planner.ResolveGoal(week, parsed.GoalRef)
		if err != nil {
			return models.Task{}, err
		}
		task.GoalID = week.Goals[i].ID
	}
	return task, nil
}

func (m *DashboardModel) selected() *models.Task {
	if m.cursor < 0 || m.cursor >= len(m.order) {
		return nil
	}
	return &m.plan.Tasks[m.order[m.cursor]]
}

// planChanged schedules a save of the current plan, re-scores the day and
// starts the banner when the last task is ticked off
func (m *DashboardModel) planChanged() tea.Cmd {
	snapshot := m.plan
	snapshot.Tasks = append([]models.Task{}, m.plan.Tasks...)
	m.saves.Trigger(func() {
		if err := m.svc.SaveDailyPlan(m.ctx, snapshot); err != nil {
			logger.Error("saving %s: %v", snapshot.DateKey, err)
		}
	})

	// the order is stale here, so look the row up defensively
	var selectedID string
	if m.cursor < len(m.order) && m.order[m.cursor] < len(m.plan.Tasks) {
		selectedID = m.plan.Tasks[m.order[m.cursor]].ID
	}
	m.reorder()
	m.cursor = 0
	for pos, i := range m.order {
		if m.plan.Tasks[i].ID == selectedID {
			m.cursor = pos
		}
	}
	if m.cursor >= len(m.order) && len(m.order) > 0 {
		m.cursor = len(m.order) - 1
	}

	m.rescore()

	wasActive := m.shimmer.Active()
	m.shimmer.SetActive(allDone(m.plan))
	if m.shimmer.Active() && !wasActive {
		m.shimmer.Reset()
		return m.shimmer.Tick()
	}
	return nil
}

func (m *DashboardModel) rescore() {
	if breakdown, ok := m.game.AwardDay(m.date, m.plan, m.completions); ok {
		logger.Debug("scored %s: %d points", m.date, breakdown.Total)
	}
}

func (m *DashboardModel) toggleHabit(i int) {
	habits := m.scheduledHabits()
	if i < 0 || i >= len(habits) {
		return
	}
	hc, done, err := m.svc.ToggleHabit(m.ctx, m.date, habits[i].ID)
	if err != nil {
		m.err = err
		return
	}
	m.completions = hc
	if done {
		m.status = fmt.Sprintf("%s %s done", habits[i].Emoji, habits[i].Name)
	}
	m.rescore()
}

func (m *DashboardModel) scheduledHabits() []models.Habit {
	return gamify.HabitsForWeekday(m.game.State().Habits, int(m.day.Weekday()))
}

func (m *DashboardModel) reorder() {
	m.order = taskOrder(m.plan.Tasks)
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

	b.WriteString(titleStyle.Render("🚀 CEO Plan · " + parser.FormatDay(m.date, planner.DateString(time.Now()))))
	if m.plan.Energy != "" {
		b.WriteString(mutedStyle.Render("   energy: " + string(m.plan.Energy)))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderProgress())
	b.WriteString("\n\n")

	if allDone(m.plan) {
		b.WriteString(m.shimmer.Render("🏆 All tasks done. Great day!", goldBase, goldHighlight))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderTasks())
	b.WriteString("\n")
	b.WriteString(m.renderHabits())

	if m.adding {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("New task: "))
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("❌ " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		MarginTop(1)
	help := "↑/↓ navigate • space toggle • m MIT • a add • d delete • e energy • 1-9 habits • q quit"
	if m.adding {
		help = "enter save • esc cancel • syntax: text #pillar !mit goal:N"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func (m *DashboardModel) renderProgress() string {
	state := m.game.State()
	level := gamify.CalculateLevelInfo(state.LifetimePoints)

	levelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain))
	goldStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGold)).Bold(true)
	streakStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

	var b strings.Builder
	b.WriteString(levelStyle.Render(fmt.Sprintf("Lv %d %s", level.Level, level.Name)))
	b.WriteString(" ")
	b.WriteString(barStyle.Render(progressBar(level.Progress, progressBarWidth)))
	b.WriteString(mutedStyle.Render(fmt.Sprintf(" %d/%d XP", level.CurrentXP, level.RequiredXP)))
	b.WriteString("\n")

	b.WriteString(goldStyle.Render(fmt.Sprintf("⭐ %d pts", state.CurrentPoints)))
	if state.CurrentStreak > 0 {
		b.WriteString("  ")
		b.WriteString(streakStyle.Render(fmt.Sprintf("🔥 %d-day streak (x%.1f)", state.CurrentStreak, gamify.StreakMultiplier(state.CurrentStreak))))
	}
	if next := gamify.NextReward(state.CurrentPoints, state.Rewards); next != nil {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  next: %s %s (%d more)", next.Emoji, next.Name, next.PointCost-state.CurrentPoints)))
	}
	if entry, ok := state.PointsEntry(m.date); ok {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  today: +%d", entry.Points)))
	}
	return b.String()
}

func (m *DashboardModel) renderTasks() string {
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true)
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Strikethrough(true)
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	mitStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Tasks %d/%d", m.plan.CompletedCount(), len(m.plan.Tasks))))
	b.WriteString("\n")

	if len(m.order) == 0 {
		b.WriteString(mutedStyle.Render("  No tasks yet. Press a to add one."))
		b.WriteString("\n")
		return b.String()
	}

	for pos, i := range m.order {
		t := m.plan.Tasks[i]

		cursor := "  "
		if pos == m.cursor && !m.adding {
			cursor = "▶ "
		}
		check := "[ ]"
		if t.Completed {
			check = "[✓]"
		}
		star := "  "
		if t.IsMIT {
			star = mitStyle.Render("★ ")
		}

		info := t.Pillar.Info()
		pillarStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(pillarColors[info.ID]))
		badge := pillarStyle.Render(fmt.Sprintf("%s %-10s", info.Emoji, info.Name))

		var text string
		switch {
		case t.Completed:
			text = doneStyle.Render(t.Text)
		case pos == m.cursor && !m.adding:
			text = selectedStyle.Render(t.Text)
		default:
			text = textStyle.Render(t.Text)
		}
		b.WriteString(fmt.Sprintf("%s%s %s%s %s\n", cursor, check, star, badge, text))
	}
	return b.String()
}

func (m *DashboardModel) renderHabits() string {
	habits := m.scheduledHabits()
	if len(habits) == 0 {
		return ""
	}
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true)
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

	var b strings.Builder
	b.WriteString(headerStyle.Render("Habits"))
	b.WriteString("\n")
	for i, h := range habits {
		line := fmt.Sprintf("  %d %s %s (+%d)", i+1, h.Emoji, h.Name, h.Points)
		if m.completions.Has(h.ID) {
			b.WriteString(doneStyle.Render(line + " ✓"))
		} else {
			b.WriteString(mutedStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// taskOrder returns plan indexes with MIT tasks first, otherwise keeping
// insertion order
func taskOrder(tasks []models.Task) []int {
	order := make([]int, len(tasks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return tasks[order[a]].IsMIT && !tasks[order[b]].IsMIT
	})
	return order
}

// progressBar draws a fixed-width bar for progress in [0,1]
func progressBar(progress float64, width int) string {
	if width <= 0 {
		return ""
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// allDone reports whether the plan has tasks and every one is completed
func allDone(plan models.DailyPlan) bool {
	return len(plan.Tasks) > 0 && plan.CompletedCount() == len(plan.Tasks)
}

func nextEnergy(e models.Energy) models.Energy {
	switch e {
	case models.EnergyHigh:
		return models.EnergyNormal
	case models.EnergyNormal:
		return models.EnergyLow
	default:
		return models.EnergyHigh
	}
}

func indexOf(order []int, i int) int {
	for pos, v := range order {
		if v == i {
			return pos
		}
	}
	return 0
}
