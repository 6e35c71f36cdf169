package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/musliminonesmart/Gasspoll-Matika/internal/engine"
	"github.com/musliminonesmart/Gasspoll-Matika/internal/ui"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show points, streak, level and badges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openGatedService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := svc.State(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			level := engine.LevelForPoints(st.TotalPoints)

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "GassPoll Matika"))
			fmt.Fprintln(out, ui.LabelValue("Total poin", st.TotalPoints))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d hari (rekor %d)", ui.IconFlame, st.CurrentStreak, st.BestStreak)))
			fmt.Fprintln(out, ui.LabelValue("Level", level.Name))
			if next, ok := engine.NextLevel(level); ok {
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("  %d poin lagi menuju %s", next.MinPoints-st.TotalPoints, next.Name)))
			} else {
				fmt.Fprintln(out, ui.Gold.Render("  Level tertinggi tercapai!"))
			}

			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render(ui.IconTrophy+" Badge"))
			if len(st.Badges) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("  Belum ada badge — semangat terus!"))
			}
			for _, b := range st.Badges {
				line := fmt.Sprintf("  %s %s", b.Icon, b.Title)
				if b.EarnedAtDate != "" {
					line += " " + ui.Muted.Render("("+b.EarnedAtDate+")")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
