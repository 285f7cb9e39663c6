package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of a tree display.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	// Badge is pre-styled text right-aligned after the title.
	Badge string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderTree renders items as an indented tree with box-drawing connectors.
// Badges are aligned in a column after the widest title.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	width := 0
	// open[l] is true while the ancestor at level l still has siblings below.
	open := map[int]bool{}
	for idx, item := range items {
		var prefix strings.Builder
		if item.Level > 0 {
			for l := 1; l < item.Level; l++ {
				if open[l] {
					prefix.WriteString(treePipe)
				} else {
					prefix.WriteString(treeBlank)
				}
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
			open[item.Level] = !item.IsLast
		}
		contents[idx] = prefix.String() + item.Title
		width = max(width, lipgloss.Width(contents[idx]))
	}

	var b strings.Builder
	for idx, item := range items {
		b.WriteString(contents[idx])
		if item.Badge != "" {
			b.WriteString(strings.Repeat(" ", width-lipgloss.Width(contents[idx])+2))
			b.WriteString(item.Badge)
		}
		b.WriteString("\n")
	}
	return b.String()
}
