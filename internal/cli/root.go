package cli

import (
	"time"

	"github.com/alexanderramin/harbor/internal/domain"
	"github.com/alexanderramin/harbor/internal/notify"
	"github.com/alexanderramin/harbor/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plans  service.PlanService
	Alerts service.AlertService

	// Display routes fired alerts. The watch screen swaps itself in while
	// it runs. Nil disables routing.
	Display *notify.SwitchDisplay

	// IsInteractive reports whether prompts may be shown. Nil means never.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil uses a huh confirm.
	Confirm func(title string) (bool, error)
	// CopyText writes to the system clipboard. Nil uses atotto/clipboard.
	CopyText func(text string) error

	// WatchPoll is how often the watch screen reloads the plan.
	WatchPoll time.Duration
	// Clock stamps status lines. Nil uses the system clock.
	Clock domain.Clock
}

func (a *App) now() time.Time {
	if a.Clock == nil {
		return time.Now()
	}
	return a.Clock.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) confirm(title string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title)
	}
	return huhConfirm(title)
}

// NewRootCmd creates the top-level "harbor" command and registers all
// subcommands against the provided App. With no subcommand it renders the
// active view.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "harbor",
		Short:         "Shared daily care plan for caregivers and the people they support",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, app)
		},
	}

	root.AddCommand(
		newShowCmd(app),
		newAddCmd(app),
		newRemoveCmd(app),
		newListCmd(app),
		newSummaryCmd(app),
		newWeekCmd(app),
		newHandoffCmd(app),
		newRoutineCmd(app),
		newNotesCmd(app),
		newModeCmd(app),
		newViewCmd(app),
		newResetCmd(app),
		newAlertsCmd(app),
		newWatchCmd(app),
	)

	return root
}
