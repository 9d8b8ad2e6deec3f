package models

import "dconn.dev/undercroft/internal/generation"

// Position represents a coordinate on a dungeon map
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Tile describes how a client draws one map symbol
type Tile struct {
	Character string `json:"char"`
	Color     string `json:"color"`
	Type      string `json:"type"` // wall, floor, deep_water, door, etc.
	Walkable  bool   `json:"walkable"`
}

// FeatureOverrides replaces individual fields of a theme's feature request.
// Nil fields keep the theme's value.
type FeatureOverrides struct {
	Water     *int  `json:"water,omitempty"`
	Islands   *int  `json:"islands,omitempty"`
	Grass     *int  `json:"grass,omitempty"`
	Boulders  *int  `json:"boulders,omitempty"`
	Doors     *int  `json:"doors,omitempty"`
	WideDoors *bool `json:"wide_doors,omitempty"`
	Traps     *int  `json:"traps,omitempty"`
}

// GenerateRequest asks for one dungeon. Zero values fall back to the
// configured defaults and the theme's own layout and features.
type GenerateRequest struct {
	Width     int              `json:"width,omitempty"`
	Height    int              `json:"height,omitempty"`
	Theme     string           `json:"theme,omitempty"`
	Layout    string           `json:"layout,omitempty"`
	Overrides FeatureOverrides `json:"overrides"`
	Seed      string           `json:"seed,omitempty"` // decimal rebuild seed from an earlier response
}

// DungeonResponse is a generated dungeon as sent to the client
type DungeonResponse struct {
	Width           int                      `json:"width"`
	Height          int                      `json:"height"`
	Theme           string                   `json:"theme"`
	Layout          string                   `json:"layout"`
	Tiles           []string                 `json:"tiles"`
	StairsUp        *Position                `json:"stairs_up,omitempty"`
	StairsDown      *Position                `json:"stairs_down,omitempty"`
	RebuildSeed     string                   `json:"rebuild_seed"`
	Features        generation.FeatureConfig `json:"features"`
	Stats           generation.Stats         `json:"stats"`
	TileDefinitions map[string]Tile          `json:"tile_definitions"`
}
