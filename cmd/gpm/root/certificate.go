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

func newCertificateCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "certificate",
		Short: "Write the printable achievement card (KARTU PRESTASI RAMADAN)",
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
			profile, err := svc.Profile(ctx)
			if err != nil {
				return err
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", outPath, err)
			}
			defer f.Close()

			data := report.CertificateData{
				Student:    profile,
				Points:     st.TotalPoints,
				LevelName:  engine.LevelForPoints(st.TotalPoints).Name,
				Streak:     st.CurrentStreak,
				BestStreak: st.BestStreak,
				Badges:     st.Badges,
				Motivation: engine.MotivationForGrade(profile.Grade),
			}
			if err := report.RenderCertificate(f, data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Kartu prestasi tersimpan: %s\n", ui.IconPrint, outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "kartu-prestasi.html", "Output HTML file")
	return cmd
}
