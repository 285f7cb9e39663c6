package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/shutterflow/internal/domain"
)

// Persisted bucket keys.
const (
	KeyProjects          = "projects"
	KeyFavoriteProjects  = "favoriteProjects"
	KeyFavoriteBuildings = "favoriteBuildings"
	KeyFavoriteZones     = "favoriteZones"
	KeyFavoriteShutters  = "favoriteShutters"
	KeyQuickCalcHistory  = "quickCalcHistory"
	KeyNotes             = "notes"
)

// AllKeys lists every key the store writes.
var AllKeys = []string{
	KeyProjects,
	KeyFavoriteProjects, KeyFavoriteBuildings, KeyFavoriteZones, KeyFavoriteShutters,
	KeyQuickCalcHistory,
	KeyNotes,
}

var favoriteKeys = map[domain.FavoriteKind]string{
	domain.FavoriteProject:  KeyFavoriteProjects,
	domain.FavoriteBuilding: KeyFavoriteBuildings,
	domain.FavoriteZone:     KeyFavoriteZones,
	domain.FavoriteShutter:  KeyFavoriteShutters,
}

// bucketVersion is written into every envelope. Version 1 is the bare JSON
// value written before envelopes existed.
const bucketVersion = 2

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

func encodeBucket(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(envelope{Version: bucketVersion, Data: data})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// decodeBucket reads raw as a T, dispatching on the envelope version. On
// error the zero T is returned, never a partially decoded value.
func decodeBucket[T any](raw string) (T, error) {
	var zero T
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 {
		return zero, fmt.Errorf("empty payload")
	}

	var data []byte
	switch trimmed[0] {
	case '[':
		// v1: a bare array.
		data = trimmed
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return zero, fmt.Errorf("decoding envelope: %w", err)
		}
		if env.Version != bucketVersion {
			return zero, fmt.Errorf("unsupported bucket version %d", env.Version)
		}
		data = env.Data
	default:
		return zero, fmt.Errorf("unrecognized payload")
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, err
	}
	return out, nil
}
