package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/musliminonesmart/Gasspoll-Matika/internal/ui"
)

func newAddCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a personal task to a day's checklist",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("teks kegiatan diperlukan")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			svc, cleanup, err := openGatedService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			// Seed the day first so the new task lands at the end of the
			// default plan, same as in the app.
			if _, _, _, err := svc.Day(ctx, date); err != nil {
				return err
			}
			res, err := svc.AddTask(ctx, date, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Ditambahkan: %s\n", ui.Good.Render(ui.IconDone), res.Task.Text)
			printUnlocks(cmd, res.Unlocks)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateFlag, "date", "d", "today", "Date (YYYY-MM-DD, today, yesterday)")
	return cmd
}
