package formatter

import (
	"strings"

	"github.com/alexanderramin/harbor/internal/derive"
	"github.com/alexanderramin/harbor/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	content = strings.TrimRight(content, "\n")
	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TruncID returns the first 8 characters of an ID, dimmed. `harbor remove`
// accepts any unique prefix.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Clock renders "HH:MM" as a 12-hour time in the foreground color.
func Clock(hhmm string) string {
	return StyleFg.Render(derive.FormatTime(hhmm))
}

// WhenLabel is the "8:00 AM · Wednesday" line shown under each list item.
func WhenLabel(it domain.Item) string {
	return derive.FormatTime(it.Time) + " · " + domain.DayName(it.Day)
}

// Details renders the item's optional fields dimmed, or "" when none.
func Details(it domain.Item) string {
	d := it.Details()
	if d == "" {
		return ""
	}
	return Dim(d)
}
