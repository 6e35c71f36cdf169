package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/musliminonesmart/Gasspoll-Matika/internal/engine"
	"github.com/musliminonesmart/Gasspoll-Matika/internal/ui"
)

func today() string {
	return time.Now().Format(engine.DateLayout)
}

// resolveDate accepts "today", "yesterday", "tomorrow" or YYYY-MM-DD.
func resolveDate(arg string) (string, error) {
	switch arg {
	case "", "today":
		return today(), nil
	case "yesterday":
		return time.Now().AddDate(0, 0, -1).Format(engine.DateLayout), nil
	case "tomorrow":
		return time.Now().AddDate(0, 0, 1).Format(engine.DateLayout), nil
	}
	if _, err := time.Parse(engine.DateLayout, arg); err != nil {
		return "", fmt.Errorf("tanggal harus YYYY-MM-DD (atau today/yesterday/tomorrow)")
	}
	return arg, nil
}

func newDayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day [date]",
		Short: "Show a day's checklist (seeds the default plan on first visit)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			date, err := resolveDate(arg)
			if err != nil {
				return err
			}

			svc, cleanup, err := openGatedService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks, st, unlocks, err := svc.Day(ctx, date)
			if err != nil {
				return err
			}
			cfg, err := svc.Config(ctx)
			if err != nil {
				return err
			}

			heading := "To-Do Ramadan — " + date
			if n := engine.DayNumber(date, cfg); n > 0 {
				heading += fmt.Sprintf(" (Ramadan ke-%d)", n)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconMoon, heading))
			for i, t := range tasks {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s %s\n", i+1, ui.Checkbox(t.Completed), t.Text)
			}

			stat := st.DailyStats[date]
			fmt.Fprintln(cmd.OutOrStdout(), "")
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Poin hari ini", fmt.Sprintf("+%d", stat.DailyPoints+stat.BonusPoints)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", fmt.Sprintf("%d hari", st.CurrentStreak)))

			printUnlocks(cmd, unlocks)
			return nil
		},
	}
	return cmd
}

// printUnlocks prints every queued unlock; nothing is dropped.
func printUnlocks(cmd *cobra.Command, unlocks []engine.Unlock) {
	for _, u := range unlocks {
		icon := ui.IconTrophy
		if u.Kind == engine.UnlockLevel {
			icon = ui.IconStar
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Gold.Render(icon+" "+u.Title)+" "+ui.Muted.Render(u.Desc))
	}
}
