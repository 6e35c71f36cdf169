package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/musliminonesmart/Gasspoll-Matika/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board [date]",
		Short: "Open the interactive daily checklist board",
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

			return tui.RunBoard(ctx, svc, date, cmd.OutOrStdout())
		},
	}
	return cmd
}
