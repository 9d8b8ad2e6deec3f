package generation

import (
	"dconn.dev/undercroft/internal/grid"
	"dconn.dev/undercroft/internal/poisson"
	"dconn.dev/undercroft/internal/spill"
)

// Seed roles, assigned round-robin in sample order
const (
	roleFloor = iota
	roleWater
	roleGrass
	roleCount
)

// terrainRates turns the water and grass percentages into the three spill
// weights. Requests summing past 150 are scaled to share the whole floor.
func terrainRates(water, grass int) (floorRate, waterRate, grassRate float64) {
	waterRate = float64(water) / MaxTerrainPercent
	grassRate = float64(grass) / MaxTerrainPercent
	if waterRate+grassRate > 1 {
		total := float64(water + grass)
		waterRate = float64(water) / total
		grassRate = float64(grass) / total
		return 0, waterRate, grassRate
	}
	floorRate = max(0, 1-waterRate-grassRate)
	return floorRate, waterRate, grassRate
}

// fillTerrain partitions the floor among Poisson-spread seeds and paints
// the water and grass partitions.
//
// Painting keeps three properties: grass never touches water (a grass cell
// beside water reverts to floor), every shallow cell touches plain floor,
// and no deep cell does. Trap candidates on painted cells or on the floor
// edging shallow water are dropped.
func (r *run) fillTerrain() {
	floorRate, waterRate, grassRate := terrainRates(r.cfg.Water, r.cfg.Grass)
	weights := [roleCount]float64{floorRate, waterRate, grassRate}

	spacing := float64(min(r.grid.Width, r.grid.Height)) / 8
	points := poisson.Sample(r.grid, spacing, r.rng,
		grid.Wall, grid.DoorHorizontal, grid.DoorVertical, grid.StairUp, grid.StairDown)
	seeds := make([]spill.Seed, len(points))
	for i, p := range points {
		seeds[i] = spill.Seed{Point: p, Weight: weights[i%roleCount]}
	}
	fill := spill.Fill(r.grid, seeds, r.obstacles, spill.Unlimited, r.rng)

	var water, grass []grid.Point
	for i, part := range fill.Partitions {
		switch i % roleCount {
		case roleWater:
			for _, p := range part {
				r.grid.Set(p, grid.DeepWater)
				water = append(water, p)
			}
		case roleGrass:
			for _, p := range part {
				if r.grid.Get(p) == grid.Floor {
					r.grid.Set(p, grid.Grass)
					grass = append(grass, p)
				}
			}
		default:
			continue
		}
		for _, p := range part {
			r.obstacles.Put(p)
			r.traps.Remove(p)
		}
	}

	for _, p := range grass {
		if r.touches(p, grid.Cell.IsWater) {
			r.grid.Set(p, grid.Floor)
		}
	}
	for _, p := range water {
		if r.touches(p, isFloor) {
			r.grid.Set(p, grid.ShallowWater)
		}
	}

	if r.cfg.IslandSpacing > 1 && len(water) > 0 {
		r.carveIslands()
	}

	for _, p := range r.traps.Items() {
		if r.touches(p, grid.Cell.IsWater) {
			r.traps.Remove(p)
		}
	}
}

// carveIslands raises Poisson-spread water cells back to floor, ringed by
// shallow water
func (r *run) carveIslands() {
	blocked := make([]grid.Cell, 0, len(grid.Cells))
	for _, c := range grid.Cells {
		if !c.IsWater() {
			blocked = append(blocked, c)
		}
	}

	for _, p := range poisson.Sample(r.grid, float64(r.cfg.IslandSpacing), r.rng, blocked...) {
		r.grid.Set(p, grid.Floor)
		for _, n := range p.Adjacent() {
			if r.grid.Get(n).IsWater() {
				r.grid.Set(n, grid.ShallowWater)
			}
		}
		r.stats.Islands++
	}
}

func isFloor(c grid.Cell) bool { return c == grid.Floor }

// touches reports whether any 4-neighbour of p satisfies pred
func (r *run) touches(p grid.Point, pred func(grid.Cell) bool) bool {
	for _, n := range p.Adjacent() {
		if pred(r.grid.Get(n)) {
			return true
		}
	}
	return false
}
