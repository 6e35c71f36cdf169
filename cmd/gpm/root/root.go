package root

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/musliminonesmart/Gasspoll-Matika/internal/logger"
	"github.com/musliminonesmart/Gasspoll-Matika/internal/ui"
)

const Version = "1.0.0"

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "gpm",
	Short:         "GassPoll Matika — Ramadan habit tracker with points, streaks and badges",
	Long:          "GassPoll Matika is a local-first companion for elementary-school students:\na daily Ramadan checklist that earns points, streaks, levels and badges.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newDayCmd(),
		newCheckCmd(),
		newUncheckCmd(),
		newAddCmd(),
		newDelCmd(),
		newStatusCmd(),
		newReportCmd(),
		newCertificateCmd(),
		newConfigCmd(),
		newLicenseCmd(),
		newBoardCmd(),
		newAskCmd(),
	)

	cobra.OnInitialize(func() {
		cfg := logger.DefaultConfig()
		if verbose {
			cfg.Level = slog.LevelDebug
		}
		log, _ := logger.New(cfg)
		slog.SetDefault(log)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
