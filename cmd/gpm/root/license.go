package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/musliminonesmart/Gasspoll-Matika/internal/license"
	"github.com/musliminonesmart/Gasspoll-Matika/internal/ui"
)

func newLicenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "license",
		Short: "Activate and inspect the app license",
	}
	cmd.AddCommand(newLicenseActivateCmd(), newLicenseStatusCmd(), newLicenseDeactivateCmd())
	return cmd
}

func newLicenseActivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate <code>",
		Short: "Activate the app with an offline code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			db, cleanup, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			mgr := license.NewManager(db)
			st, err := mgr.Activate(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Aktivasi berhasil!\n", ui.Good.Render(ui.IconKey))
			if st.Plan != "" {
				fmt.Fprintln(out, ui.LabelValue("Paket", st.Plan))
			}
			if st.ExpiresAt > 0 {
				fmt.Fprintln(out, ui.LabelValue("Berlaku sampai", time.UnixMilli(st.ExpiresAt).Format("2006-01-02")))
			} else {
				fmt.Fprintln(out, ui.LabelValue("Masa berlaku", "selamanya"))
			}
			return nil
		},
	}
}

func newLicenseStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the license state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			db, cleanup, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			mgr := license.NewManager(db)
			out := cmd.OutOrStdout()
			if !license.Enabled() {
				fmt.Fprintln(out, ui.Muted.Render("Gerbang lisensi dimatikan (GPM_LICENSE_DISABLED=1)."))
				return nil
			}
			st, err := mgr.Load(ctx)
			if err != nil {
				return err
			}
			if !st.IsActive {
				fmt.Fprintf(out, "%s Belum aktif. Jalankan 'gpm license activate <kode>'.\n", ui.Warn.Render(ui.IconLock))
				return nil
			}
			ok, err := mgr.Verify(ctx)
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintf(out, "%s Aktif\n", ui.Good.Render(ui.IconKey))
			} else {
				fmt.Fprintf(out, "%s Tidak berlaku di perangkat ini\n", ui.Bad.Render(ui.IconLock))
			}
			if st.Plan != "" {
				fmt.Fprintln(out, ui.LabelValue("Paket", st.Plan))
			}
			if st.ActivatedAt > 0 {
				fmt.Fprintln(out, ui.LabelValue("Diaktifkan", time.UnixMilli(st.ActivatedAt).Format("2006-01-02")))
			}
			if st.ExpiresAt > 0 {
				fmt.Fprintln(out, ui.LabelValue("Berlaku sampai", time.UnixMilli(st.ExpiresAt).Format("2006-01-02")))
			}
			return nil
		},
	}
}

func newLicenseDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate",
		Short: "Clear the stored license on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			db, cleanup, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := license.NewManager(db).Deactivate(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Lisensi dihapus dari perangkat ini.\n", ui.IconLock)
			return nil
		},
	}
}
