package generation

import "dconn.dev/undercroft/internal/grid"

// TileStyle describes how a client should draw one cell kind
type TileStyle struct {
	Char     string `json:"char"`
	Color    string `json:"color"`
	Type     string `json:"type"`
	Walkable bool   `json:"walkable"`
}

// DefaultPalette returns the standard style for every cell kind
func DefaultPalette() map[grid.Cell]TileStyle {
	return map[grid.Cell]TileStyle{
		grid.Wall:           {Char: "#", Color: "#5a5a6e", Type: "wall", Walkable: false},
		grid.Floor:          {Char: ".", Color: "#8a8478", Type: "floor", Walkable: true},
		grid.DeepWater:      {Char: "~", Color: "#1f4e8c", Type: "deep_water", Walkable: false},
		grid.ShallowWater:   {Char: ",", Color: "#4f8fd6", Type: "shallow_water", Walkable: true},
		grid.Grass:          {Char: "\"", Color: "#4c9a2a", Type: "grass", Walkable: true},
		grid.Trap:           {Char: "^", Color: "#c0392b", Type: "trap", Walkable: true},
		grid.DoorHorizontal: {Char: "+", Color: "#a0703c", Type: "door", Walkable: true},
		grid.DoorVertical:   {Char: "/", Color: "#a0703c", Type: "door", Walkable: true},
		grid.StairUp:        {Char: "<", Color: "#f1c40f", Type: "stairs_up", Walkable: true},
		grid.StairDown:      {Char: ">", Color: "#f1c40f", Type: "stairs_down", Walkable: true},
	}
}

// Theme is a named preset pairing a base layout with a feature request
type Theme struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Layout      string        `json:"layout"`
	Features    FeatureConfig `json:"features"`
}

const (
	ThemeDungeon   = "dungeon"
	ThemeFlooded   = "flooded"
	ThemeOvergrown = "overgrown"
	ThemeCavern    = "cavern"
	ThemeBare      = "bare"
)

// Themes returns every preset, in display order
func Themes() []Theme {
	names := []string{ThemeDungeon, ThemeFlooded, ThemeOvergrown, ThemeCavern, ThemeBare}
	out := make([]Theme, len(names))
	for i, n := range names {
		out[i] = GetTheme(n)
	}
	return out
}

// GetTheme returns the preset with the given name, falling back to the
// dungeon preset for unknown names
func GetTheme(name string) Theme {
	var f FeatureConfig
	switch name {
	case ThemeFlooded:
		f.AddWater(70, 5).AddGrass(10).AddDoors(20, false)
		return Theme{
			Name:        ThemeFlooded,
			Description: "Halls drowned in dark water, with a few dry islands.",
			Layout:      "rooms",
			Features:    f,
		}

	case ThemeOvergrown:
		f.AddGrass(80).AddWater(10).AddBoulders(4).AddDoors(10, true)
		return Theme{
			Name:        ThemeOvergrown,
			Description: "Moss and grass have reclaimed the rooms.",
			Layout:      "rooms",
			Features:    f,
		}

	case ThemeCavern:
		f.AddWater(25).AddGrass(20).AddBoulders(8).AddTraps(2)
		return Theme{
			Name:        ThemeCavern,
			Description: "Natural caves with pools and rubble.",
			Layout:      "caverns",
			Features:    f,
		}

	case ThemeBare:
		return Theme{
			Name:        ThemeBare,
			Description: "Walls, floor and stairs only.",
			Layout:      "rooms",
		}

	default:
		f.AddDoors(60, true).AddTraps(4).AddWater(15).AddGrass(10).AddBoulders(2)
		return Theme{
			Name:        ThemeDungeon,
			Description: "Classic rooms and corridors with doors and the odd trap.",
			Layout:      "rooms",
			Features:    f,
		}
	}
}
