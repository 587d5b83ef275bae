package cli

import (
	"fmt"

	"github.com/alexanderramin/harbor/internal/cli/formatter"
	"github.com/alexanderramin/harbor/internal/derive"
	"github.com/alexanderramin/harbor/internal/domain"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// renderView renders p the way the active mode and view ask for.
func renderView(p *domain.PlanState, today int) string {
	if p.Mode == domain.ModePatient {
		return formatter.FormatPatientToday(derive.TodayEntries(p, today), today)
	}
	switch p.View {
	case domain.ViewWeek:
		return formatter.FormatWeek(derive.WeeklyView(p), today)
	case domain.ViewRoutines:
		return formatter.FormatRoutines(domain.Routines())
	case domain.ViewHandoff:
		return derive.BuildHandoff(p, today)
	default:
		return formatter.FormatTodayTable(derive.TodayEntries(p, today), today) + "\n" +
			formatter.FormatSummary(derive.SummaryCounts(p))
	}
}

func runShow(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	p, err := app.Plans.Load(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	status := formatter.FormatModeView(p)
	if app.Alerts != nil {
		st, err := app.Alerts.Status(ctx)
		if err != nil {
			return err
		}
		status += "  " + formatter.AlertsPill(st.Enabled, st.Permission)
	}
	fmt.Fprintln(out, status)
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderView(p, app.Plans.Today()))
	return nil
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Render the active view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, app)
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	var title, clock, notes, dosage, tone string
	var day dayValue

	cmd := &cobra.Command{
		Use:   "add <meal|activity|reminder|med>",
		Short: "Add an item to the plan",
		Example: `  harbor add meal --title "Lunch: soup" --time 12:30 --notes "Soft textures"
  harbor add med --title Aspirin --time 9:00 --dosage 81mg --day mon
  harbor add reminder --title "Call Sam" --time 15:00 --tone upbeat`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseCollectionArg(args[0])
			if err != nil {
				return err
			}
			item, err := app.Plans.AddItem(cmd.Context(), c, domain.NewItem{
				Title:  title,
				Time:   clock,
				Day:    day.Ptr(),
				Notes:  notes,
				Dosage: dosage,
				Tone:   tone,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAdded(c, item))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "What is planned")
	cmd.Flags().StringVar(&clock, "time", "", "Time of day, HH:MM (24h)")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	cmd.Flags().StringVar(&dosage, "dosage", "", "Dosage (medication only)")
	cmd.Flags().StringVar(&tone, "tone", "", "Tone, e.g. gentle (reminders only)")
	addDayFlag(cmd.Flags(), &day)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <collection> <id>",
		Aliases: []string{"rm"},
		Short:   "Remove an item by ID or unique ID prefix",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := parseCollectionArg(args[0])
			if err != nil {
				return err
			}
			p, err := app.Plans.Load(ctx)
			if err != nil {
				return err
			}
			id, err := resolveItemID(p, c, args[1])
			if err != nil {
				return err
			}
			if _, err := app.Plans.RemoveItem(ctx, c, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %s %s\n",
				formatter.StyleGreen.Render("✔"), formatter.KindBadge(c), formatter.TruncID(id))
			return nil
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list [collection]",
		Short: "List every item, or one collection, across the week",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Plans.Load(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 0 {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLists(p))
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			}
			c, err := parseCollectionArg(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCollection(c, p.Items(c)))
			return nil
		},
	}
}

func newSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Count the items in each collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Plans.Load(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSummary(derive.SummaryCounts(p)))
			return nil
		},
	}
}

func newWeekCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show the plan for each day of the week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Plans.Load(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeek(derive.WeeklyView(p), app.Plans.Today()))
			return nil
		},
	}
}

func newHandoffCmd(app *App) *cobra.Command {
	var copyText bool
	var day dayValue

	cmd := &cobra.Command{
		Use:   "handoff",
		Short: "Print the plain-text handoff for today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Plans.Load(cmd.Context())
			if err != nil {
				return err
			}
			text := derive.BuildHandoff(p, day.Or(app.Plans.Today()))
			fmt.Fprintln(cmd.OutOrStdout(), text)
			if !copyText {
				return nil
			}
			write := app.CopyText
			if write == nil {
				write = clipboard.WriteAll
			}
			if err := write(text); err != nil {
				return fmt.Errorf("unable to copy, select and copy manually: %w", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), formatter.StyleGreen.Render("Copied!"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyText, "copy", false, "Also copy the handoff to the clipboard")
	addDayFlag(cmd.Flags(), &day)
	return cmd
}
