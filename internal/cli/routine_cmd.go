package cli

import (
	"fmt"

	"github.com/alexanderramin/harbor/internal/cli/formatter"
	"github.com/alexanderramin/harbor/internal/domain"
	"github.com/spf13/cobra"
)

func newRoutineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "routine",
		Aliases: []string{"routines"},
		Short:   "Browse and apply preset routines",
	}

	cmd.AddCommand(
		newRoutineListCmd(app),
		newRoutineApplyCmd(app),
	)

	return cmd
}

func newRoutineListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the preset routines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRoutines(app.Plans.Routines()))
			return nil
		},
	}
}

func newRoutineApplyCmd(app *App) *cobra.Command {
	var day dayValue

	cmd := &cobra.Command{
		Use:   "apply <routine-id>",
		Short: "Add every item of a routine to one day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := day.Or(app.Plans.Today())
			added, err := app.Plans.ApplyRoutine(cmd.Context(), args[0], target)
			if err != nil {
				return err
			}
			r, ok := domain.LookupRoutine(args[0])
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(fmt.Sprintf("No routine named %q; nothing added.", args[0])))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRoutineApplied(r, target, added))
			return nil
		},
	}

	addDayFlag(cmd.Flags(), &day)
	return cmd
}
