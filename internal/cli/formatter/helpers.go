package formatter

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/shutterflow/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Flow renders an airflow in m³/h with thousands separators.
func Flow(v float64) string {
	return humanize.CommafWithDigits(v, 1) + " m³/h"
}

// Rate renders a compliance rate in percent.
func Rate(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 1, 64) + "%"
}

// Date renders an optional date, or "--".
func Date(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return t.Format("2006-01-02")
}

// Timestamp renders t relative to now: a clock time today, a date otherwise.
func Timestamp(t, now time.Time) string {
	t = t.In(now.Location())
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return t.Format("15:04")
	}
	return t.Format("2006-01-02 15:04")
}

// TruncID shortens an id for display.
func TruncID(id string) string {
	return domain.ShortID(id)
}

// KeyValues renders aligned "key  value" lines.
func KeyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}
	var b strings.Builder
	for _, p := range pairs {
		b.WriteString(Dim(p[0]))
		b.WriteString(strings.Repeat(" ", width-lipgloss.Width(p[0])+2))
		b.WriteString(p[1])
		b.WriteString("\n")
	}
	return b.String()
}
