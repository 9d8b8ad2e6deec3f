package generation

import (
	"fmt"
)

// Percentage ceilings per effect. Water and grass go past 100 because
// they are measured against the floor they compete for.
const (
	MaxTerrainPercent = 150
	MaxFeaturePercent = 100
)

// FeatureConfig is the pending request for one generation run. A zero
// field means the effect is off. Each Add call replaces the previous
// request for that effect.
type FeatureConfig struct {
	Water         int  `json:"water,omitempty"`
	IslandSpacing int  `json:"island_spacing,omitempty"`
	Grass         int  `json:"grass,omitempty"`
	Boulders      int  `json:"boulders,omitempty"`
	Doors         int  `json:"doors,omitempty"`
	WideDoors     bool `json:"wide_doors,omitempty"`
	Traps         int  `json:"traps,omitempty"`
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// AddWater requests deep/shallow water on pct percent of the floor.
// An island spacing greater than 1 also carves dry islands that far apart;
// leaving it out, or passing 1 or less, disables islands.
func (c *FeatureConfig) AddWater(pct int, islandSpacing ...int) *FeatureConfig {
	c.Water = clamp(pct, 0, MaxTerrainPercent)
	c.IslandSpacing = 0
	if len(islandSpacing) > 0 && islandSpacing[0] > 1 {
		c.IslandSpacing = islandSpacing[0]
	}
	return c
}

// AddGrass requests grass on pct percent of the floor
func (c *FeatureConfig) AddGrass(pct int) *FeatureConfig {
	c.Grass = clamp(pct, 0, MaxTerrainPercent)
	return c
}

// AddBoulders requests boulders on pct percent of the open interior
func (c *FeatureConfig) AddBoulders(pct int) *FeatureConfig {
	c.Boulders = clamp(pct, 0, MaxFeaturePercent)
	return c
}

// AddDoors requests doors in pct percent of viable doorways. wide allows
// two-cell doorways to be detected.
func (c *FeatureConfig) AddDoors(pct int, wide bool) *FeatureConfig {
	c.Doors = clamp(pct, 0, MaxFeaturePercent)
	c.WideDoors = wide
	return c
}

// AddTraps requests traps on pct percent of open-area floor
func (c *FeatureConfig) AddTraps(pct int) *FeatureConfig {
	c.Traps = clamp(pct, 0, MaxFeaturePercent)
	return c
}

// Clear drops every pending request
func (c *FeatureConfig) Clear() *FeatureConfig {
	*c = FeatureConfig{}
	return c
}

// Empty reports whether no effect is requested
func (c FeatureConfig) Empty() bool {
	return c.Water == 0 && c.Grass == 0 && c.Boulders == 0 && c.Doors == 0 && c.Traps == 0
}

// Normalized returns a copy clamped the same way the Add methods clamp.
func (c FeatureConfig) Normalized() FeatureConfig {
	out := FeatureConfig{}
	out.AddWater(c.Water, c.IslandSpacing)
	out.AddGrass(c.Grass)
	out.AddBoulders(c.Boulders)
	out.AddDoors(c.Doors, c.WideDoors)
	out.AddTraps(c.Traps)
	return out
}

// Validate reports the first out-of-range field. Configs built through the
// Add methods are always valid; this is for values decoded from outside.
func (c FeatureConfig) Validate() error {
	checks := []struct {
		name  string
		value int
		max   int
	}{
		{"water", c.Water, MaxTerrainPercent},
		{"grass", c.Grass, MaxTerrainPercent},
		{"boulders", c.Boulders, MaxFeaturePercent},
		{"doors", c.Doors, MaxFeaturePercent},
		{"traps", c.Traps, MaxFeaturePercent},
	}
	for _, ch := range checks {
		if ch.value < 0 || ch.value > ch.max {
			return fmt.Errorf("%s percentage %d outside 0..%d", ch.name, ch.value, ch.max)
		}
	}
	if c.IslandSpacing < 0 {
		return fmt.Errorf("island spacing %d is negative", c.IslandSpacing)
	}
	return nil
}
