package cli

import (
	"github.com/alexanderramin/harbor/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// harborHuhTheme returns a huh theme matching the formatter palette.
func harborHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(harborHuhTheme()).WithShowHelp(false)
}

func huhConfirm(title string) (bool, error) {
	var ok bool
	if err := confirmForm(title, &ok).Run(); err != nil {
		return false, err
	}
	return ok, nil
}

// PermissionPrompt is the huh question shown before alerts are first armed.
func PermissionPrompt() (bool, error) {
	return huhConfirm("Allow Harbor to show alerts for today's plan?")
}
