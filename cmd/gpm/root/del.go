package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/musliminonesmart/Gasspoll-Matika/internal/ui"
)

func newDelCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "del <n>",
		Short: "Remove a task from a day's checklist",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("nomor tugas diperlukan (lihat 'gpm day')")
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return errors.New("nomor tugas harus angka")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}
			n, _ := strconv.Atoi(args[0])

			svc, cleanup, err := openGatedService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks, _, _, err := svc.Day(ctx, date)
			if err != nil {
				return err
			}
			if n < 1 || n > len(tasks) {
				return fmt.Errorf("nomor tugas di luar daftar (1-%d)", len(tasks))
			}

			res, err := svc.RemoveTask(ctx, date, tasks[n-1].ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Dihapus: %s\n", ui.Warn.Render("✗"), res.Task.Text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateFlag, "date", "d", "today", "Date (YYYY-MM-DD, today, yesterday)")
	return cmd
}
