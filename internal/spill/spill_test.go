package spill

import (
	"testing"
	"time"

	"github.com/zyedidia/generic/mapset"

	"dconn.dev/undercroft/internal/grid"
	"dconn.dev/undercroft/internal/rng"
)

func openRoom(w, h int) *grid.Grid {
	g := grid.New(w, h, grid.Floor)
	g.WallWrap()
	return g
}

func TestFillCoversReachableArea(t *testing.T) {
	g := openRoom(12, 10)
	seeds := []Seed{
		{Point: grid.Point{X: 2, Y: 2}, Weight: 1},
		{Point: grid.Point{X: 9, Y: 7}, Weight: 0.5},
	}
	res := Fill(g, seeds, mapset.New[grid.Point](), Unlimited, rng.New(5))

	want := g.Count(grid.Floor)
	if res.Claimed() != want {
		t.Fatalf("Expected %d claimed cells, got %d", want, res.Claimed())
	}
	for i, part := range res.Partitions {
		if len(part) == 0 {
			t.Fatalf("Seed %d claimed nothing", i)
		}
		if part[0] != seeds[i].Point {
			t.Errorf("Seed %d: expected first claim at its seed, got %v", i, part[0])
		}
		for _, p := range part {
			if res.OwnerAt(p) != i {
				t.Errorf("Cell %v in partition %d has owner %d", p, i, res.OwnerAt(p))
			}
		}
	}
	if res.OwnerAt(grid.Point{X: 0, Y: 0}) != -1 {
		t.Error("Expected wall to stay unclaimed")
	}
}

func TestHeavierSeedClaimsMore(t *testing.T) {
	g := openRoom(30, 30)
	seeds := []Seed{
		{Point: grid.Point{X: 10, Y: 15}, Weight: 1},
		{Point: grid.Point{X: 19, Y: 15}, Weight: 0.1},
	}
	res := Fill(g, seeds, mapset.New[grid.Point](), Unlimited, rng.New(11))
	if len(res.Partitions[0]) <= len(res.Partitions[1]) {
		t.Errorf("Expected heavier seed to dominate, got %d vs %d",
			len(res.Partitions[0]), len(res.Partitions[1]))
	}
}

func TestZeroWeightClaimsNothing(t *testing.T) {
	g := openRoom(8, 8)
	seeds := []Seed{
		{Point: grid.Point{X: 2, Y: 2}, Weight: 0},
		{Point: grid.Point{X: 5, Y: 5}, Weight: 0.4},
	}
	res := Fill(g, seeds, mapset.New[grid.Point](), Unlimited, rng.New(1))
	if len(res.Partitions[0]) != 0 {
		t.Errorf("Expected zero-weight seed to claim nothing, got %d", len(res.Partitions[0]))
	}
	if res.OwnerAt(grid.Point{X: 2, Y: 2}) != 1 {
		t.Error("Expected the weighted seed to take the idle seed's point")
	}

	none := Fill(g, []Seed{{Point: grid.Point{X: 3, Y: 3}}}, mapset.New[grid.Point](), Unlimited, rng.New(1))
	if none.Claimed() != 0 {
		t.Errorf("Expected no claims when every weight is zero, got %d", none.Claimed())
	}
}

func TestObstaclesAreImpassable(t *testing.T) {
	g, _ := grid.Parse([]string{
		"#######",
		"#..+..#",
		"#######",
	})
	obstacles := mapset.New[grid.Point]()
	obstacles.Put(grid.Point{X: 3, Y: 1})

	res := Fill(g, []Seed{{Point: grid.Point{X: 1, Y: 1}, Weight: 1}}, obstacles, Unlimited, rng.New(2))
	if res.Claimed() != 2 {
		t.Errorf("Expected spill to stop at the obstacle, claimed %d", res.Claimed())
	}
	if res.OwnerAt(grid.Point{X: 3, Y: 1}) != -1 {
		t.Error("Obstacle was claimed")
	}
}

func TestLimitAndDeterminism(t *testing.T) {
	g := openRoom(20, 20)
	seeds := []Seed{
		{Point: grid.Point{X: 3, Y: 3}, Weight: 0.7},
		{Point: grid.Point{X: 15, Y: 15}, Weight: 0.3},
	}
	limited := Fill(g, seeds, mapset.New[grid.Point](), 50, rng.New(8))
	if limited.Claimed() != 50 {
		t.Errorf("Expected exactly 50 claims under the limit, got %d", limited.Claimed())
	}

	a := Fill(g, seeds, mapset.New[grid.Point](), Unlimited, rng.New(8))
	b := Fill(g, seeds, mapset.New[grid.Point](), Unlimited, rng.New(8))
	for i := range a.Owner {
		if a.Owner[i] != b.Owner[i] {
			t.Fatalf("Owner mismatch at index %d", i)
		}
	}
}

func TestTinyWeightStillFinishes(t *testing.T) {
	g := openRoom(20, 20)
	// a wall splits the room so the tiny seed owns its half alone
	for y := 0; y < g.Height; y++ {
		g.Set(grid.Point{X: 10, Y: y}, grid.Wall)
	}
	seeds := []Seed{
		{Point: grid.Point{X: 3, Y: 3}, Weight: 1},
		{Point: grid.Point{X: 15, Y: 15}, Weight: 1.1e-16},
		{Point: grid.Point{X: 16, Y: 3}, Weight: 1e-300},
	}

	done := make(chan *Result, 1)
	go func() {
		done <- Fill(g, seeds, mapset.New[grid.Point](), Unlimited, rng.New(3))
	}()
	select {
	case res := <-done:
		if res.Claimed() != g.Count(grid.Floor) {
			t.Errorf("Expected every floor cell claimed, got %d of %d", res.Claimed(), g.Count(grid.Floor))
		}
		if len(res.Partitions[1])+len(res.Partitions[2]) != 8*18 {
			t.Errorf("Expected the tiny seeds to split their half, got %d and %d",
				len(res.Partitions[1]), len(res.Partitions[2]))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Fill did not finish with a tiny seed weight")
	}
}
