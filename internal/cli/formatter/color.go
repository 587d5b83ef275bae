package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/harbor/internal/alerts"
	"github.com/alexanderramin/harbor/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// CollectionStyle returns the accent used for a collection's label.
func CollectionStyle(c domain.Collection) lipgloss.Style {
	switch c {
	case domain.CollectionMeals:
		return StyleYellow
	case domain.CollectionExercises:
		return StyleGreen
	case domain.CollectionReminders:
		return StyleBlue
	case domain.CollectionMeds:
		return StylePurple
	default:
		return StyleDim
	}
}

// KindBadge renders the collection label in its accent, e.g. "Meal".
func KindBadge(c domain.Collection) string {
	return CollectionStyle(c).Render(c.Label())
}

// ModeBadge returns a styled indicator for the active mode.
func ModeBadge(m domain.Mode) string {
	if m == domain.ModePatient {
		return StylePurple.Render("◆ PATIENT") + Dim(" (simple today view)")
	}
	return StyleGreen.Render("● CAREGIVER")
}

// AlertsPill shows whether alerts are on, following the permission state.
func AlertsPill(enabled bool, perm alerts.Permission) string {
	switch {
	case perm == alerts.PermissionUnsupported:
		return StyleDim.Render("⊘ Alerts unsupported")
	case enabled:
		return StyleGreen.Render("● Alerts on")
	case perm == alerts.PermissionDenied:
		return StyleRed.Render("✖ Alerts blocked")
	default:
		return StyleDim.Render("○ Alerts off")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
