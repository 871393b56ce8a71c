package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Show comprehensive help for ceoplan",
		Long:  `Display detailed help for all ceoplan commands and flags.`,
		Run: func(cmd *cobra.Command, args []string) {
			showCustomHelp(cmd.OutOrStdout())
		},
	}
}

func showCustomHelp(w io.Writer) {
	fmt.Fprint(w, `
 ██████╗███████╗ ██████╗ ██████╗ ██╗      █████╗ ███╗   ██╗
██╔════╝██╔════╝██╔═══██╗██╔══██╗██║     ██╔══██╗████╗  ██║
██║     █████╗  ██║   ██║██████╔╝██║     ███████║██╔██╗ ██║
██║     ██╔══╝  ██║   ██║██╔═══╝ ██║     ██╔══██║██║╚██╗██║
╚██████╗███████╗╚██████╔╝██║     ███████╗██║  ██║██║ ╚████║
 ╚═════╝╚══════╝ ╚═════╝ ╚═╝     ╚══════╝╚═╝  ╚═╝╚═╝  ╚═══╝

ceoplan - Daily planner with points, levels and streaks

GLOBAL FLAGS:
  --date <day>            Work on another day: yesterday, 14/05/2024, 2024-05-14, '3 days ago'
  --home <dir>            Data directory (default ~/.ceoplan)
  --store <backend>       sqlite|bolt|memory

DAY:

  add <task>              Add a task with smart parsing
    -p, --pillar          sales|automation|strategy|frog|life
    --mit                 Most important task
    -g, --goal            Weekly goal number or id

    Smart syntax:
      #pillar       Pillar (aliases: #project, #work, #personal)
      !mit or *     Most important task
      goal:2        Link to this week's goal 2

    Example:
      ceoplan add "Call Acme about renewal #sales !mit goal:1"

  ls                      List the day's tasks
    --json                JSON output
  done <n>                Mark task n as completed
  undone <n>              Mark task n as open
  mit <n>                 Toggle most-important flag
  rm <n>                  Remove task n
  edit <n> [text]         Edit text, --pillar or --goal
  energy [level]          Show or set energy: high|normal|low
  dash                    Interactive dashboard

    Dashboard keys:
      ↑/↓ or j/k    Navigate tasks
      space/x       Toggle done
      m             Toggle MIT
      a             Add task (smart syntax)
      d             Delete task
      e             Cycle energy
      1-9           Toggle habit
      q/esc         Quit

HABITS:

  habit ls                Habits scheduled on the day (--all for every habit)
  habit add <name>        Add a habit (--days mon-fri, --points, --emoji)
  habit rm <habit>        Remove a habit
  habit done <habit>      Mark a habit done for the day
  habit undone <habit>    Clear a habit for the day

WEEK:

  goal ls                 The week's goals with linked task progress
  goal add <text>         Add a goal (--pillar)
  goal rm <n>             Remove goal n
  goal edit <n> <text>    Rename goal n
    -o, --offset          Weeks from the working date (-1 = last week)
    -w, --week            ISO week, e.g. 2026-W07

  week                    Completed tasks, habits and points by day

POINTS:

  status                  Level, balance, streak and today's score
  reward ls               Rewards and milestones
  reward add <name>       Add a reward (--cost, --emoji, --milestone)
  reward rm <reward>      Remove a reward
  reward claim <reward>   Spend points on a reward or claim a milestone
  reward history          Claimed rewards, newest first

    Scoring:
      10 per task, +15 per MIT, +10 per frog, 5 per habit,
      +50 when everything is done, multiplied by your streak

DATA:

  search <query>          Search tasks across all days
  migrate                 Upgrade all stored records
  export [-o file]        Dump every record as JSON
  version                 Print version information
  help                    Show this help

`)
}
