package formatter

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/shutterflow/internal/domain"
	"github.com/dustin/go-humanize"
)

func FormatNoteList(notes []*domain.Note, now time.Time) string {
	if len(notes) == 0 {
		return Dim("No notes yet.") + "\n"
	}
	rows := make([][]string, 0, len(notes))
	for _, n := range notes {
		rows = append(rows, []string{
			TruncID(n.ID),
			Bold(n.Title),
			n.Location,
			strings.Join(n.Tags, ", "),
			strconv.Itoa(len(n.Images)),
			Timestamp(n.UpdatedAt, now),
		})
	}
	return RenderTable([]string{"ID", "TITLE", "LOCATION", "TAGS", "IMAGES", "UPDATED"}, rows)
}

func FormatNote(n *domain.Note, now time.Time) string {
	pairs := [][2]string{{"ID", n.ID}}
	if n.Description != "" {
		pairs = append(pairs, [2]string{"Description", n.Description})
	}
	if n.Location != "" {
		pairs = append(pairs, [2]string{"Location", n.Location})
	}
	if len(n.Tags) > 0 {
		pairs = append(pairs, [2]string{"Tags", strings.Join(n.Tags, ", ")})
	}
	pairs = append(pairs,
		[2]string{"Created", Timestamp(n.CreatedAt, now)},
		[2]string{"Updated", Timestamp(n.UpdatedAt, now)},
	)
	for i, img := range n.Images {
		pairs = append(pairs, [2]string{"Image " + strconv.Itoa(i), humanize.Bytes(uint64(len(img)))})
	}
	body := KeyValues(pairs)
	if n.Content != "" {
		body += "\n" + n.Content
	}
	return RenderBox(n.Title, body)
}
