package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns a process-generated identifier: the base36 creation time in
// milliseconds followed by a random suffix.
func NewID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return strconv.FormatInt(now.UnixMilli(), 36) + suffix
}

// ShortID truncates an identifier for display. Twelve characters keep a few
// random digits after the timestamp so the prefix stays unique in practice.
func ShortID(id string) string {
	if len(id) >= 12 {
		return id[:12]
	}
	return id
}
