package domain

import "fmt"

type ShutterType string

const (
	ShutterHigh ShutterType = "high"
	ShutterLow  ShutterType = "low"
)

// ParseShutterType accepts "high" or "low" (case-sensitive, as persisted).
func ParseShutterType(s string) (ShutterType, error) {
	switch ShutterType(s) {
	case ShutterHigh, ShutterLow:
		return ShutterType(s), nil
	default:
		return "", fmt.Errorf("invalid shutter type %q (expected high|low)", s)
	}
}

// FavoriteKind selects one of the four favorites buckets.
type FavoriteKind string

const (
	FavoriteProject  FavoriteKind = "project"
	FavoriteBuilding FavoriteKind = "building"
	FavoriteZone     FavoriteKind = "zone"
	FavoriteShutter  FavoriteKind = "shutter"
)

// FavoriteKinds lists every bucket in a stable order.
var FavoriteKinds = []FavoriteKind{FavoriteProject, FavoriteBuilding, FavoriteZone, FavoriteShutter}

func ParseFavoriteKind(s string) (FavoriteKind, error) {
	for _, k := range FavoriteKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid favorite kind %q (expected project|building|zone|shutter)", s)
}
