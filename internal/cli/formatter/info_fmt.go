package formatter

import (
	"strconv"

	"github.com/alexanderramin/shutterflow/internal/store"
)

func FormatStorageInfo(info store.Info, driver, location string) string {
	return RenderBox("Storage", KeyValues([][2]string{
		{"Driver", driver},
		{"Location", location},
		{"Projects", strconv.Itoa(info.ProjectCount)},
		{"Shutters", strconv.Itoa(info.ShutterCount)},
		{"Notes", strconv.Itoa(info.NoteCount)},
		{"Size", info.Size},
	}))
}
