package root

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/musliminonesmart/Gasspoll-Matika/internal/tutor"
	"github.com/musliminonesmart/Gasspoll-Matika/internal/ui"
)

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask Kak Chat Matika a math question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openGatedService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			profile, err := svc.Profile(ctx)
			if err != nil {
				return err
			}

			question := strings.Join(args, " ")
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconChat, "Kak Chat Matika"))

			client, err := tutor.NewFromEnv(string(profile.Grade), slog.Default())
			if err != nil {
				// No endpoint configured: degrade the same way a network
				// failure would.
				slog.Warn("tutor not configured", slog.String("error", err.Error()))
				fmt.Fprintln(out, tutor.FallbackMessage)
				return nil
			}
			fmt.Fprintln(out, tutor.AskWithFallback(ctx, client, question, slog.Default()))
			return nil
		},
	}
}
