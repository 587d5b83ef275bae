package cli

import (
	"fmt"

	"github.com/alexanderramin/harbor/internal/cli/formatter"
	"github.com/alexanderramin/harbor/internal/domain"
	"github.com/spf13/cobra"
)

const resetQuestion = "Start a new day? This clears today’s plan."

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the plan with a fresh default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			confirmed := yes
			if !confirmed {
				if !app.interactive() {
					return fmt.Errorf("pass --yes to reset without a terminal: %w", domain.ErrResetNotConfirmed)
				}
				ok, err := app.confirm(resetQuestion)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Reset cancelled."))
					return nil
				}
				confirmed = true
			}
			if _, err := app.Plans.Reset(cmd.Context(), confirmed); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("✔")+" Started a fresh plan.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")
	return cmd
}
