package generation

import (
	"testing"

	"github.com/zyedidia/generic/mapset"

	"dconn.dev/undercroft/internal/grid"
	"dconn.dev/undercroft/internal/rng"
)

// openRoom returns a w x h map of floor inside a one-cell wall border
func openRoom(w, h int) *grid.Grid {
	g := grid.New(w, h, grid.Floor)
	g.WallWrap()
	return g
}

func TestPlaceStairsOnOpenRoom(t *testing.T) {
	g := openRoom(20, 12)
	r := newRun(g, rng.New(3), FeatureConfig{})
	r.placeStairs()

	if r.stairsUp == nil || r.stairsDown == nil {
		t.Fatal("Expected both stairs to be placed")
	}
	if *r.stairsUp == *r.stairsDown {
		t.Fatal("Expected distinct stairs")
	}
	if g.Get(*r.stairsUp) != grid.StairUp || g.Get(*r.stairsDown) != grid.StairDown {
		t.Error("Expected stair symbols on the grid")
	}
	if !r.obstacles.Has(*r.stairsUp) || !r.obstacles.Has(*r.stairsDown) {
		t.Error("Expected stairs in the obstacle set")
	}
	if !r.stairsConnected() {
		t.Error("Expected stairs to be connected")
	}
	if r.stats.Sealed != 0 {
		t.Errorf("Expected nothing sealed in an open room, sealed %d", r.stats.Sealed)
	}
}

func TestPlaceStairsSealsPockets(t *testing.T) {
	g := openRoom(40, 20)
	// wall off a 2x2 pocket in the corner
	pocket := []grid.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}}
	for _, p := range []grid.Point{{X: 3, Y: 1}, {X: 3, Y: 2}, {X: 3, Y: 3}, {X: 1, Y: 3}, {X: 2, Y: 3}} {
		g.Set(p, grid.Wall)
	}

	r := newRun(g, rng.New(11), FeatureConfig{})
	r.placeStairs()

	for _, p := range pocket {
		if g.Get(p) != grid.Wall {
			t.Errorf("Expected pocket cell %v sealed, got %q", p, g.Get(p))
		}
	}
	if r.stats.Sealed != len(pocket) {
		t.Errorf("Expected %d sealed cells, got %d", len(pocket), r.stats.Sealed)
	}
}

func TestPlaceStairsTinyMaps(t *testing.T) {
	t.Run("corridor falls back to farthest cell", func(t *testing.T) {
		for seed := uint64(1); seed <= 6; seed++ {
			g := parse(t, "#####", "#...#", "#####")
			r := newRun(g, rng.New(seed), FeatureConfig{})
			r.placeStairs()
			if r.stairsUp == nil || r.stairsDown == nil || *r.stairsUp == *r.stairsDown {
				t.Fatalf("seed %d: expected two distinct stairs, got %v %v", seed, r.stairsUp, r.stairsDown)
			}
		}
	})

	t.Run("single cell has no down-stair", func(t *testing.T) {
		g := parse(t, "###", "#.#", "###")
		r := newRun(g, rng.New(1), FeatureConfig{})
		r.placeStairs()
		if r.stairsUp == nil || r.stairsDown != nil {
			t.Fatalf("Expected only an up-stair, got %v %v", r.stairsUp, r.stairsDown)
		}
	})

	t.Run("solid rock has no stairs", func(t *testing.T) {
		g := parse(t, "###", "###", "###")
		r := newRun(g, rng.New(1), FeatureConfig{})
		r.placeStairs()
		if r.stairsUp != nil || r.stairsDown != nil {
			t.Fatal("Expected no stairs without floor")
		}
	})
}

func TestRespectStairsKeepsExisting(t *testing.T) {
	g := parse(t,
		"##########",
		"#<...#..>#",
		"#....#...#",
		"#....#####",
		"#........#",
		"#..#######",
		"#..#.....#",
		"##########",
	)
	r := newRun(g, rng.New(1), FeatureConfig{})
	r.respectStairs()

	if r.stairsUp == nil || *r.stairsUp != (grid.Point{X: 1, Y: 1}) {
		t.Errorf("Expected up-stair at (1,1), got %v", r.stairsUp)
	}
	if r.stairsDown == nil || *r.stairsDown != (grid.Point{X: 8, Y: 1}) {
		t.Errorf("Expected down-stair at (8,1), got %v", r.stairsDown)
	}
	if g.Get(grid.Point{X: 1, Y: 1}) != grid.StairUp || g.Get(grid.Point{X: 8, Y: 1}) != grid.StairDown {
		t.Error("Expected stair symbols to stay in place")
	}
	// the area beside the down-stair is cut off from the up-stair but still
	// reached; the bottom-right room is reached by neither
	if g.Get(grid.Point{X: 6, Y: 2}) != grid.Floor {
		t.Error("Expected cells reachable from the down-stair to survive")
	}
	if g.Get(grid.Point{X: 5, Y: 6}) != grid.Wall {
		t.Error("Expected the unreachable room to be sealed")
	}
	if r.stats.Sealed != 5 {
		t.Errorf("Expected 5 sealed cells, got %d", r.stats.Sealed)
	}
}

func TestRespectStairsFallsBack(t *testing.T) {
	g := openRoom(12, 10)
	r := newRun(g, rng.New(9), FeatureConfig{})
	r.respectStairs()
	if r.stairsUp == nil || r.stairsDown == nil {
		t.Fatal("Expected fresh stairs when the layout has none")
	}
}

func TestPlaceBouldersFullRoom(t *testing.T) {
	g := openRoom(9, 9)
	r := newRun(g, rng.New(5), FeatureConfig{Boulders: 100})
	r.placeBoulders()

	// cells within one step of the border walls stay open, leaving a 5x5
	// core
	if r.stats.Boulders != 25 {
		t.Fatalf("Expected 25 boulders, got %d", r.stats.Boulders)
	}
	for y := 2; y <= 6; y++ {
		for x := 2; x <= 6; x++ {
			p := grid.Point{X: x, Y: y}
			if g.Get(p) != grid.Wall || !r.obstacles.Has(p) {
				t.Errorf("Expected boulder at %v", p)
			}
		}
	}
	for x := 1; x <= 7; x++ {
		if g.Get(grid.Point{X: x, Y: 1}) != grid.Floor {
			t.Errorf("Expected (%d,1) to stay floor", x)
		}
	}
}

func TestPlaceBouldersKeepsStairsConnected(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		g := openRoom(24, 16)
		base := g.Clone()
		r := newRun(g, rng.New(seed), FeatureConfig{Boulders: 60})
		r.placeStairs()
		r.placeBoulders()

		if !r.stairsConnected() {
			t.Fatalf("seed %d: boulders cut the stairs apart", seed)
		}
		for _, p := range g.Find(grid.Wall) {
			if base.Get(p) == grid.Wall || !r.obstacles.Has(p) {
				continue
			}
			for _, n := range p.Neighbors() {
				if base.Get(n) == grid.Wall || g.Get(n).IsStair() {
					t.Errorf("seed %d: boulder %v touches wall or stair at %v", seed, p, n)
				}
			}
		}
	}
}

func TestPlaceBouldersZeroViable(t *testing.T) {
	g := parse(t, "#####", "#...#", "#####")
	r := newRun(g, rng.New(1), FeatureConfig{Boulders: 100})
	r.placeBoulders()
	if r.stats.Boulders != 0 || g.Count(grid.Floor) != 3 {
		t.Error("Expected a corridor to receive no boulders")
	}
}

func TestScanTrapCandidates(t *testing.T) {
	g := parse(t,
		"#######",
		"#.....#",
		"#.....#",
		"#.....#",
		"#######",
	)
	got := scanTrapCandidates(g, mapset.New[grid.Point]())
	// every interior cell but the four corners has 5 or more open neighbours
	if got.Len() != 11 {
		t.Fatalf("Expected 11 candidates, got %d: %v", got.Len(), got.Items())
	}
	if got.Has(grid.Point{X: 1, Y: 1}) {
		t.Error("Expected corner to be rejected")
	}

	obstacles := mapset.New[grid.Point]()
	obstacles.Put(grid.Point{X: 3, Y: 2})
	if n := scanTrapCandidates(g, obstacles).Len(); n != 10 {
		t.Errorf("Expected obstacles to be skipped, got %d", n)
	}
}

func TestScanTrapCandidatesSkipsCorridors(t *testing.T) {
	g := parse(t,
		"#########",
		"#.......#",
		"#########",
	)
	if n := scanTrapCandidates(g, mapset.New[grid.Point]()).Len(); n != 0 {
		t.Errorf("Expected no candidates in a corridor, got %d", n)
	}
}

func TestCarveTraps(t *testing.T) {
	g := openRoom(12, 12)
	r := newRun(g, rng.New(2), FeatureConfig{Traps: 10})
	r.traps = scanTrapCandidates(g, r.obstacles)
	want := r.traps.Len() * 10 / 100
	r.carveTraps()

	if r.stats.Traps != want || g.Count(grid.Trap) != want {
		t.Errorf("Expected %d traps, stats %d grid %d", want, r.stats.Traps, g.Count(grid.Trap))
	}
}

func TestTerrainRates(t *testing.T) {
	tests := []struct {
		water, grass        int
		floor, wRate, gRate float64
	}{
		{0, 0, 1, 0, 0},
		{75, 0, 0.5, 0.5, 0},
		{150, 0, 0, 1, 0},
		{30, 45, 0.5, 0.2, 0.3},
		{150, 150, 0, 0.5, 0.5},
		{120, 60, 0, 2.0 / 3, 1.0 / 3},
		{8, 144, 0, 8.0 / 152, 144.0 / 152},
	}
	const eps = 1e-9
	near := func(a, b float64) bool { return a-b < eps && b-a < eps }
	for _, tt := range tests {
		f, w, g := terrainRates(tt.water, tt.grass)
		if !near(f, tt.floor) || !near(w, tt.wRate) || !near(g, tt.gRate) {
			t.Errorf("terrainRates(%d, %d) = %v %v %v, want %v %v %v",
				tt.water, tt.grass, f, w, g, tt.floor, tt.wRate, tt.gRate)
		}
	}
}

func TestTerrainRatesNoFloorPastCeiling(t *testing.T) {
	for water := 0; water <= MaxTerrainPercent; water++ {
		for grass := 0; grass <= MaxTerrainPercent; grass++ {
			if water+grass <= MaxTerrainPercent {
				continue
			}
			if f, _, _ := terrainRates(water, grass); f != 0 {
				t.Fatalf("terrainRates(%d, %d): floor rate %v, want exactly 0", water, grass, f)
			}
		}
	}
}
