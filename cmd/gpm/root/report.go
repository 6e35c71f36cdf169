package root

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/musliminonesmart/Gasspoll-Matika/internal/engine"
	"github.com/musliminonesmart/Gasspoll-Matika/internal/report"
	"github.com/musliminonesmart/Gasspoll-Matika/internal/ui"
)

func newReportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the 30-day progress report (use -o to write printable HTML)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openGatedService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			rows, st, cfg, err := svc.Report(ctx)
			if err != nil {
				return err
			}

			if outPath != "" {
				profile, err := svc.Profile(ctx)
				if err != nil {
					return err
				}
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outPath, err)
				}
				defer f.Close()
				data := report.ReportData{
					Student:   profile,
					Points:    st.TotalPoints,
					Streak:    st.CurrentStreak,
					LevelName: engine.LevelForPoints(st.TotalPoints).Name,
					StartDate: cfg.StartDate,
					Rows:      rows,
				}
				if err := report.RenderReport(f, data); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s Laporan tersimpan: %s\n", ui.IconPrint, outPath)
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCal, "Laporan Progres Ramadan"))
			fmt.Fprintln(out, ui.LabelValue("1 Ramadan", cfg.StartDate))
			fmt.Fprintln(out, "")
			for _, r := range rows {
				label := fmt.Sprintf("Ramadan %2d  %s", r.DayNum, r.Date)
				if !r.HasStat {
					fmt.Fprintf(out, "%s  %s\n", label, ui.Muted.Render("---"))
					continue
				}
				line := fmt.Sprintf("%s  wajib %d/%d  target %d/%d  +%d",
					label,
					r.Stat.WajibDone, r.Stat.WajibTotal,
					r.Stat.TargetDone, r.Stat.TargetTotal,
					r.Stat.DailyPoints+r.Stat.BonusPoints)
				if r.Stat.IsWajibPerfect {
					line += " " + ui.IconDone
				}
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.LabelValue("Total poin", st.TotalPoints))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%d hari", st.CurrentStreak)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write printable HTML to this file")
	return cmd
}
