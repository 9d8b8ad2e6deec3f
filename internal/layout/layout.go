// Package layout builds the bare wall and floor maps that the feature
// pipeline decorates.
package layout

import (
	"errors"
	"fmt"

	"dconn.dev/undercroft/internal/generation"
)

var ErrUnknownLayout = errors.New("unknown layout")

const (
	NameRooms   = "rooms"
	NameCaverns = "caverns"
)

// Names lists every registered layout
func Names() []string {
	return []string{NameRooms, NameCaverns}
}

// Lookup returns the provider registered under name
func Lookup(name string) (generation.LayoutProvider, error) {
	switch name {
	case NameRooms, "":
		return DefaultRooms(), nil
	case NameCaverns:
		return DefaultCaverns(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
}
