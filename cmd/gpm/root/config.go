package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/musliminonesmart/Gasspoll-Matika/internal/engine"
	"github.com/musliminonesmart/Gasspoll-Matika/internal/ui"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the Ramadan settings and student profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			cfg, err := svc.Config(ctx)
			if err != nil {
				return err
			}
			profile, err := svc.Profile(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconMoon, "Pengaturan"))
			fmt.Fprintln(out, ui.LabelValue("1 Ramadan", cfg.StartDate))
			fmt.Fprintln(out, ui.LabelValue("Penetapan", string(cfg.StartMode)))
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render("Profil"))
			name := profile.Name
			if name == "" {
				name = ui.Muted.Render("(belum diisi)")
			}
			fmt.Fprintln(out, ui.LabelValue("Nama", name))
			fmt.Fprintln(out, ui.LabelValue("Kelas", string(profile.Grade)))
			if profile.School != "" {
				fmt.Fprintln(out, ui.LabelValue("Sekolah", profile.School))
			}
			if profile.City != "" {
				fmt.Fprintln(out, ui.LabelValue("Kota", profile.City))
			}
			return nil
		},
	}

	cmd.AddCommand(newConfigStartCmd(), newConfigProfileCmd())
	return cmd
}

func newConfigStartCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "start <YYYY-MM-DD>",
		Short: "Set the first day of Ramadan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			cfg := engine.RamadanConfig{
				StartDate: args[0],
				StartMode: engine.StartMode(mode),
			}
			if err := svc.SetConfig(ctx, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s 1 Ramadan: %s (%s)\n", ui.IconMoon, cfg.StartDate, cfg.StartMode)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", string(engine.StartModePemerintah), "Pemerintah, Ortu or Custom")
	return cmd
}

func newConfigProfileCmd() *cobra.Command {
	var (
		name   string
		grade  string
		school string
		city   string
	)

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Set the student profile printed on certificates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := svc.Profile(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("grade") {
				p.Grade = engine.Grade(grade)
			}
			if cmd.Flags().Changed("school") {
				p.School = school
			}
			if cmd.Flags().Changed("city") {
				p.City = city
			}
			if err := svc.SetProfile(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Profil tersimpan: %s (kelas %s)\n", ui.IconDone, p.Name, p.Grade)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Student name")
	cmd.Flags().StringVar(&grade, "grade", "", "Grade (4, 5 or 6)")
	cmd.Flags().StringVar(&school, "school", "", "School name")
	cmd.Flags().StringVar(&city, "city", "", "City")
	return cmd
}
