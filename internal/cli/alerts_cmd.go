package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/harbor/internal/cli/formatter"
	"github.com/alexanderramin/harbor/internal/notify"
	"github.com/alexanderramin/harbor/internal/service"
	"github.com/spf13/cobra"
)

func newAlertsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Local alerts for the rest of today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printAlertStatus(cmd, app.Alerts.Status)
		},
	}

	cmd.AddCommand(
		newAlertsEnableCmd(app),
		&cobra.Command{
			Use:   "refresh",
			Short: "Re-arm alerts from the current plan",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return printAlertStatus(cmd, app.Alerts.Refresh)
			},
		},
		&cobra.Command{
			Use:   "disable",
			Short: "Turn alerts off",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return printAlertStatus(cmd, app.Alerts.Disable)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show whether alerts are on and what is armed",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return printAlertStatus(cmd, app.Alerts.Status)
			},
		},
		&cobra.Command{
			Use:   "forget",
			Short: "Forget the remembered permission so enable asks again",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Alerts.ForgetPermission(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Alert permission cleared."))
				return nil
			},
		},
	)

	return cmd
}

func newAlertsEnableCmd(app *App) *cobra.Command {
	var grant bool

	cmd := &cobra.Command{
		Use:   "enable",
		Short: "Ask for permission once and arm today's alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if grant {
				ctx = notify.WithAnswer(ctx, true)
			}
			st, err := app.Alerts.Enable(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAlertStatus(st))
			if st.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Keep `harbor watch` open to receive them."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&grant, "grant", false, "Answer yes to the permission question")
	return cmd
}

func printAlertStatus(cmd *cobra.Command, fn func(context.Context) (service.AlertStatus, error)) error {
	st, err := fn(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAlertStatus(st))
	return nil
}
