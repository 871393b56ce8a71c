package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/ceoplan/internal/config"
	"github.com/balkashynov/ceoplan/internal/db"
	"github.com/balkashynov/ceoplan/internal/game"
	"github.com/balkashynov/ceoplan/internal/gamify"
	"github.com/balkashynov/ceoplan/internal/logger"
	"github.com/balkashynov/ceoplan/internal/parser"
	"github.com/balkashynov/ceoplan/internal/planner"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// NewRootCmd builds the full command tree. Each call returns fresh flag
// state.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ceoplan",
		Short: "A daily planner that turns finished work into points",
		Long: `ceoplan plans your day around five pillars, tracks weekly goals and
daily habits, and rewards completed work with points, levels and streaks.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("home", "", "Data directory (overrides CEOPLAN_HOME)")
	rootCmd.PersistentFlags().String("store", "", "Store backend: sqlite|bolt|memory (overrides CEOPLAN_STORE)")
	rootCmd.PersistentFlags().String("date", "", "Day to work on: today, yesterday, dd/mm/yyyy, yyyy-mm-dd, 'N days ago'")

	rootCmd.AddCommand(
		newAddCmd(),
		newListCmd(),
		newDoneCmd(),
		newUndoneCmd(),
		newMITCmd(),
		newRemoveCmd(),
		newEditCmd(),
		newEnergyCmd(),
		newHabitCmd(),
		newGoalCmd(),
		newRewardCmd(),
		newStatusCmd(),
		newWeekCmd(),
		newSearchCmd(),
		newMigrateCmd(),
		newExportCmd(),
		newDashCmd(),
		newHelpCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// app is the per-invocation state shared by commands
type app struct {
	cfg     config.Config
	store   db.Store
	planner *planner.Service
	game    *game.Holder
	date    string
	out     io.Writer
}

// openApp loads configuration, applies flag overrides and opens the store
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if home, _ := cmd.Flags().GetString("home"); home != "" {
		cfg.Home = home
	}
	if store, _ := cmd.Flags().GetString("store"); store != "" {
		cfg.Store = store
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}

	if level, err := logger.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("%v, keeping the default level", err)
	}

	store, err := db.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	svc := planner.New(store)
	day := svc.Today()
	if input, _ := cmd.Flags().GetString("date"); input != "" {
		if day, err = parser.ParseDate(input, svc.Now()); err != nil {
			store.Close()
			return nil, err
		}
	}

	state, err := svc.LoadGameState(cmd.Context())
	if err != nil {
		store.Close()
		return nil, err
	}

	return &app{
		cfg:     cfg,
		store:   store,
		planner: svc,
		game:    game.NewHolder(state, svc, game.WithDebounce(cfg.SaveDebounce)),
		date:    day,
		out:     cmd.OutOrStdout(),
	}, nil
}

// close flushes pending game saves before the store goes away
func (a *app) close() {
	if err := a.game.Close(); err != nil {
		logger.Error("saving game state: %v", err)
	}
	if err := a.store.Close(); err != nil {
		logger.Error("closing store: %v", err)
	}
}

func (a *app) printf(format string, v ...any) {
	fmt.Fprintf(a.out, format, v...)
}

func (a *app) isToday() bool {
	return a.date == a.planner.Today()
}

// rescore re-awards today's points after a task or habit change
func (a *app) rescore(ctx context.Context) {
	plan, err := a.planner.LoadDailyPlan(ctx, a.date)
	if err != nil {
		logger.Error("rescoring %s: %v", a.date, err)
		return
	}
	completions, err := a.planner.LoadHabitCompletions(ctx, a.date)
	if err != nil {
		logger.Error("rescoring %s: %v", a.date, err)
		return
	}
	before := a.game.State()
	breakdown, ok := a.game.AwardDay(a.date, plan, completions)
	if !ok {
		return
	}
	if diff := a.game.State().CurrentPoints - before.CurrentPoints; diff != 0 {
		a.printf("⭐ Today: %d pts (%+d), balance %d\n", breakdown.Total, diff, a.game.State().CurrentPoints)
	}
}

// withApp wraps a command function to open the store first. Store-open
// failures abort; command errors are printed and the process continues.
func withApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if cmd.Context() == nil {
			cmd.SetContext(context.Background())
		}
		a, err := openApp(cmd)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			os.Exit(1)
		}
		defer a.close()

		cmd.SetContext(game.NewContext(cmd.Context(), a.game))
		if err := fn(cmd, args, a); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
		}
	}
}

// dayLabel formats the working date relative to today
func (a *app) dayLabel() string {
	return parser.FormatDay(a.date, a.planner.Today())
}

func (a *app) day() time.Time {
	t, err := time.ParseInLocation(gamify.DateLayout, a.date, time.Local)
	if err != nil {
		return a.planner.Now()
	}
	return t
}
