package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/ceoplan/internal/planner"
)

// RunDashboard starts the interactive daily dashboard for date. The game
// holder must be attached to ctx.
func RunDashboard(ctx context.Context, svc *planner.Service, date string, saveDelay time.Duration) error {
	model, err := NewDashboardModel(ctx, svc, date, saveDelay)
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	// Handle exit messages after TUI closes
	if m, ok := finalModel.(*DashboardModel); ok {
		done, total := m.plan.CompletedCount(), len(m.plan.Tasks)
		switch {
		case total == 0:
			fmt.Println("📋 No tasks planned.")
		case done == total:
			fmt.Printf("🏆 All %d tasks done!\n", total)
		default:
			fmt.Printf("✅ %d/%d tasks done.\n", done, total)
		}
	}
	return nil
}
