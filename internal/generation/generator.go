package generation

import (
	"errors"
	"fmt"
	"time"

	"github.com/zyedidia/generic/mapset"

	"dconn.dev/undercroft/internal/grid"
	"dconn.dev/undercroft/internal/rng"
)

var (
	ErrInvalidSize = errors.New("width and height must be positive")
	ErrNilLayout   = errors.New("base layout is nil")
	ErrLayoutSize  = errors.New("base layout size does not match generator")
)

// LayoutProvider supplies the bare wall/floor map that features are
// layered onto. It must draw all randomness from r.
type LayoutProvider interface {
	Layout(width, height int, r *rng.RNG) (*grid.Grid, error)
}

// Stats counts what one run placed
type Stats struct {
	Doors        int `json:"doors"`
	Boulders     int `json:"boulders"`
	Traps        int `json:"traps"`
	DeepWater    int `json:"deep_water"`
	ShallowWater int `json:"shallow_water"`
	Grass        int `json:"grass"`
	Islands      int `json:"islands"`
	Sealed       int `json:"sealed"` // unreachable cells turned to wall
}

// Dungeon is the output of one run
type Dungeon struct {
	Grid        *grid.Grid
	StairsUp    *grid.Point
	StairsDown  *grid.Point
	RebuildSeed uint64
	Stats       Stats
}

// Bare returns the map with every non-wall cell flattened to floor
func (d *Dungeon) Bare() *grid.Grid {
	return d.Grid.Simplify()
}

func (d *Dungeon) String() string {
	return d.Grid.String()
}

// Generator runs the feature pipeline over base layouts. It is not safe
// for concurrent use: a run consumes the shared random source in a fixed
// order.
type Generator struct {
	width, height int
	rng           *rng.RNG
	layout        LayoutProvider
	features      FeatureConfig
	last          *Dungeon
}

// New creates a generator for width x height maps. A nil r is seeded from
// the clock. layout may be nil when only GenerateFrom is used.
func New(width, height int, r *rng.RNG, layout LayoutProvider) (*Generator, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, width, height)
	}
	if r == nil {
		r = rng.New(uint64(time.Now().UnixNano()))
	}
	return &Generator{width: width, height: height, rng: r, layout: layout}, nil
}

func (g *Generator) Width() int  { return g.width }
func (g *Generator) Height() int { return g.height }

// RNG exposes the random source so callers can capture or restore its state
func (g *Generator) RNG() *rng.RNG { return g.rng }

// Features returns a copy of the pending request
func (g *Generator) Features() FeatureConfig { return g.features }

// SetFeatures replaces the pending request, clamping every field
func (g *Generator) SetFeatures(cfg FeatureConfig) *Generator {
	g.features = cfg.Normalized()
	return g
}

func (g *Generator) AddWater(pct int, islandSpacing ...int) *Generator {
	g.features.AddWater(pct, islandSpacing...)
	return g
}

func (g *Generator) AddGrass(pct int) *Generator {
	g.features.AddGrass(pct)
	return g
}

func (g *Generator) AddBoulders(pct int) *Generator {
	g.features.AddBoulders(pct)
	return g
}

func (g *Generator) AddDoors(pct int, wide bool) *Generator {
	g.features.AddDoors(pct, wide)
	return g
}

func (g *Generator) AddTraps(pct int) *Generator {
	g.features.AddTraps(pct)
	return g
}

// ClearEffects drops every pending feature request
func (g *Generator) ClearEffects() *Generator {
	g.features.Clear()
	return g
}

// Generate captures the rebuild seed, asks the layout provider for a base
// map and runs the feature pipeline on it. Restoring the random source to
// RebuildSeed() and calling Generate again reproduces the same dungeon.
func (g *Generator) Generate() (*Dungeon, error) {
	if g.layout == nil {
		return nil, fmt.Errorf("no layout provider: %w", ErrNilLayout)
	}
	seed := g.rng.State()
	base, err := g.layout.Layout(g.width, g.height, g.rng)
	if err != nil {
		return nil, fmt.Errorf("building base layout: %w", err)
	}
	return g.generate(base, seed, false)
}

// GenerateFrom runs the feature pipeline on a caller-supplied layout,
// discovering stair positions itself. The base is not modified.
func (g *Generator) GenerateFrom(base *grid.Grid) (*Dungeon, error) {
	return g.generate(base, g.rng.State(), false)
}

// GenerateRespectingStairs is GenerateFrom for layouts that already hold
// stair symbols: connectivity is pruned around the existing stairs
// instead of placing new ones.
func (g *Generator) GenerateRespectingStairs(base *grid.Grid) (*Dungeon, error) {
	return g.generate(base, g.rng.State(), true)
}

func (g *Generator) generate(base *grid.Grid, seed uint64, respectStairs bool) (*Dungeon, error) {
	if base == nil {
		return nil, ErrNilLayout
	}
	if base.Width != g.width || base.Height != g.height {
		return nil, fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrLayoutSize, base.Width, base.Height, g.width, g.height)
	}

	r := newRun(base.Clone(), g.rng, g.features)

	// 1. Border the map so every stage can read neighbours freely
	r.grid.WallWrap()

	// 2. Fix stairs and seal everything they cannot reach
	if respectStairs {
		r.respectStairs()
	} else {
		r.placeStairs()
	}

	// 3. Doors
	if r.cfg.Doors > 0 {
		r.placeDoors(detectDoorways(r.grid, r.cfg.WideDoors))
	}

	// 4. Boulders
	if r.cfg.Boulders > 0 {
		r.placeBoulders()
	}

	// 5. Trap candidates, before terrain claims any floor
	if r.cfg.Traps > 0 {
		r.traps = scanTrapCandidates(r.grid, r.obstacles)
	}

	// 6. Water, grass and islands
	if r.cfg.Water > 0 || r.cfg.Grass > 0 {
		r.fillTerrain()
	}

	// 7. Traps on whatever open floor terrain left behind
	if r.cfg.Traps > 0 {
		r.carveTraps()
	}

	d := r.dungeon(seed)
	g.last = d
	return d, nil
}

// SetDungeon installs a finished map so the accessors report it, as if a
// run had produced it. The map is copied. Stairs are the first '<' and '>'
// found, stats are counted from the cells, and the rebuild seed is zero.
func (g *Generator) SetDungeon(m *grid.Grid) (*Dungeon, error) {
	if m == nil {
		return nil, ErrNilLayout
	}
	if m.Width != g.width || m.Height != g.height {
		return nil, fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrLayoutSize, m.Width, m.Height, g.width, g.height)
	}

	r := newRun(m.Clone(), g.rng, g.features)
	if ups := r.grid.Find(grid.StairUp); len(ups) > 0 {
		r.stairsUp = &ups[0]
	}
	if downs := r.grid.Find(grid.StairDown); len(downs) > 0 {
		r.stairsDown = &downs[0]
	}
	r.stats.Doors = r.grid.Count(grid.DoorHorizontal) + r.grid.Count(grid.DoorVertical)
	r.stats.Traps = r.grid.Count(grid.Trap)

	g.last = r.dungeon(0)
	return g.last, nil
}

// Last returns the most recent dungeon, or nil before the first run
func (g *Generator) Last() *Dungeon { return g.last }

// Dungeon returns the most recent map, or nil before the first run
func (g *Generator) Dungeon() *grid.Grid {
	if g.last == nil {
		return nil
	}
	return g.last.Grid
}

// BareDungeon returns the most recent map reduced to walls and floor
func (g *Generator) BareDungeon() *grid.Grid {
	if g.last == nil {
		return nil
	}
	return g.last.Bare()
}

func (g *Generator) StairsUp() *grid.Point {
	if g.last == nil {
		return nil
	}
	return g.last.StairsUp
}

func (g *Generator) StairsDown() *grid.Point {
	if g.last == nil {
		return nil
	}
	return g.last.StairsDown
}

// RebuildSeed is the random state captured just before the last run
func (g *Generator) RebuildSeed() uint64 {
	if g.last == nil {
		return 0
	}
	return g.last.RebuildSeed
}

func (g *Generator) String() string {
	if g.last == nil {
		return ""
	}
	return g.last.String()
}

// run holds everything one pass of the pipeline mutates. Nothing in it
// outlives the pass.
type run struct {
	grid       *grid.Grid
	rng        *rng.RNG
	cfg        FeatureConfig
	obstacles  mapset.Set[grid.Point]
	traps      *PointSet
	stairsUp   *grid.Point
	stairsDown *grid.Point
	stats      Stats
}

func newRun(g *grid.Grid, r *rng.RNG, cfg FeatureConfig) *run {
	return &run{
		grid:      g,
		rng:       r,
		cfg:       cfg,
		obstacles: mapset.New[grid.Point](),
		traps:     NewPointSet(),
	}
}

func (r *run) dungeon(seed uint64) *Dungeon {
	r.stats.DeepWater = r.grid.Count(grid.DeepWater)
	r.stats.ShallowWater = r.grid.Count(grid.ShallowWater)
	r.stats.Grass = r.grid.Count(grid.Grass)
	return &Dungeon{
		Grid:        r.grid,
		StairsUp:    r.stairsUp,
		StairsDown:  r.stairsDown,
		RebuildSeed: seed,
		Stats:       r.stats,
	}
}
