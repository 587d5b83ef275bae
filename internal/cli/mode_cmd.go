package cli

import (
	"fmt"

	"github.com/alexanderramin/harbor/internal/cli/formatter"
	"github.com/alexanderramin/harbor/internal/domain"
	"github.com/spf13/cobra"
)

func newModeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "mode <caregiver|patient>",
		Short:     "Switch between the caregiver and the simple patient view",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.ModeCaregiver), string(domain.ModePatient)},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := domain.ParseMode(args[0])
			if err != nil {
				return err
			}
			p, err := app.Plans.SetMode(cmd.Context(), m)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatModeView(p))
			return nil
		},
	}
}

func newViewCmd(app *App) *cobra.Command {
	valid := make([]string, 0, len(domain.ValidViews))
	for _, v := range domain.ValidViews {
		valid = append(valid, string(v))
	}

	return &cobra.Command{
		Use:       "view <today|week|routines|handoff>",
		Short:     "Select the view shown by `harbor show`",
		Args:      cobra.ExactArgs(1),
		ValidArgs: valid,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := domain.ParseView(args[0])
			if err != nil {
				return err
			}
			p, err := app.Plans.SetView(cmd.Context(), v)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatModeView(p))
			if p.View != v {
				fmt.Fprintln(out, formatter.Dim("Patient mode always shows today."))
			}
			return nil
		},
	}
}
