package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/harbor/internal/alerts"
	"github.com/alexanderramin/harbor/internal/service"
)

// FormatAlertStatus shows the alert flag, the permission and what is armed
// for the rest of today.
func FormatAlertStatus(st service.AlertStatus) string {
	var b strings.Builder
	b.WriteString(AlertsPill(st.Enabled, st.Permission))
	b.WriteString("  " + Dim("permission: "+string(st.Permission)) + "\n")

	switch {
	case st.Permission == alerts.PermissionDenied && !st.Enabled:
		b.WriteString(Dim("Alerts were declined. Run `harbor alerts forget` to be asked again.") + "\n")
	case st.Permission == alerts.PermissionUnsupported:
		b.WriteString(Dim("This terminal cannot show alerts.") + "\n")
		if st.Enabled {
			b.WriteString(Dim("Alerts stay on for `harbor watch` in a terminal.") + "\n")
		}
		return b.String()
	}
	if !st.Enabled {
		return b.String()
	}

	b.WriteString("\n")
	rows := make([][]string, 0, len(st.Armed))
	for _, f := range st.Armed {
		rows = append(rows, []string{
			Clock(f.Entry.Time),
			Bold(f.Title),
			Dim(f.Body),
		})
	}
	b.WriteString(RenderTable([]string{"AT", "ALERT", "NOTE"}, rows, "Nothing left to alert today."))
	return b.String()
}

// FormatFired renders an alert as it pops up in the watch view.
func FormatFired(at time.Time, title, body string) string {
	line := fmt.Sprintf("%s %s", StyleYellow.Render("⏰ "+at.Format("3:04 PM")), Bold(title))
	if body != "" {
		line += "  " + Dim(body)
	}
	return line
}
