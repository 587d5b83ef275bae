package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/harbor/internal/cli/formatter"
	"github.com/alexanderramin/harbor/internal/service"
	"github.com/spf13/cobra"
)

func newNotesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Care notes and the safety quick check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNotesShow(cmd, app)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show care notes and safety details",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runNotesShow(cmd, app)
			},
		},
		newNotesSetCmd(app),
	)

	return cmd
}

func runNotesShow(cmd *cobra.Command, app *App) error {
	p, err := app.Plans.Load(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNotes(p))
	return nil
}

func newNotesSetCmd(app *App) *cobra.Command {
	var prefFoods, avoidFoods, mobility, contact string

	cmd := &cobra.Command{
		Use:   "set [notes...]",
		Short: "Overwrite care notes and any given safety field",
		Example: `  harbor notes set "Likes jazz in the afternoon"
  harbor notes set --avoid-foods shellfish --emergency-contact "Dana 555-0100"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var u service.NotesUpdate
			if len(args) > 0 {
				text := strings.Join(args, " ")
				u.Notes = &text
			}
			flags := cmd.Flags()
			set := func(name string, v *string, dst **string) {
				if flags.Changed(name) {
					*dst = v
				}
			}
			set("pref-foods", &prefFoods, &u.PrefFoods)
			set("avoid-foods", &avoidFoods, &u.AvoidFoods)
			set("mobility", &mobility, &u.MobilityNotes)
			set("emergency-contact", &contact, &u.EmergencyContact)

			if u == (service.NotesUpdate{}) {
				return fmt.Errorf("nothing to set: pass notes text or a safety flag")
			}
			p, err := app.Plans.UpdateNotes(cmd.Context(), u)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNotes(p))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Saved at "+app.now().Format("3:04 PM")))
			return nil
		},
	}

	cmd.Flags().StringVar(&prefFoods, "pref-foods", "", "Preferred foods")
	cmd.Flags().StringVar(&avoidFoods, "avoid-foods", "", "Foods to avoid")
	cmd.Flags().StringVar(&mobility, "mobility", "", "Mobility notes")
	cmd.Flags().StringVar(&contact, "emergency-contact", "", "Emergency contact")

	return cmd
}
