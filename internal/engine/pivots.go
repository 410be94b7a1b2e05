package engine

import (
	"sort"

	"github.com/athul8raj/cargo-planning/internal/model"
)

// The pivot set holds candidate origin points for the next placement.
// It starts as {(0,0,0)}; each committed placement retires the pivot it
// used and contributes the placed box's seven non-origin corners, plus
// a synthetic floor pivot at the rear-most known y.

// orderPivots rebuilds the iteration order for the given pattern. The
// set is split into ground pivots (z = 0) and aerial pivots (z > 0),
// each sorted with a stable sort so equal keys keep insertion order,
// then concatenated aerial-first unless the pattern is ground-first.
func orderPivots(pivots []model.Point, pattern model.LoadPattern) []model.Point {
	var ground, aerial []model.Point
	for _, p := range pivots {
		if p.Z == 0 {
			ground = append(ground, p)
		} else {
			aerial = append(aerial, p)
		}
	}

	if pattern.RearLoading() {
		sort.SliceStable(ground, func(i, j int) bool {
			a, b := ground[i], ground[j]
			if a.X != b.X {
				return a.X < b.X
			}
			if a.Z != b.Z {
				return a.Z < b.Z
			}
			return a.Y < b.Y
		})
		sort.SliceStable(aerial, func(i, j int) bool {
			a, b := aerial[i], aerial[j]
			if a.Z != b.Z {
				return a.Z < b.Z
			}
			if a.X != b.X {
				return a.X < b.X
			}
			return a.Y < b.Y
		})
	} else {
		sort.SliceStable(ground, func(i, j int) bool {
			a, b := ground[i], ground[j]
			if a.Y != b.Y {
				return a.Y < b.Y
			}
			if a.X != b.X {
				return a.X < b.X
			}
			return a.Z < b.Z
		})
		sort.SliceStable(aerial, func(i, j int) bool {
			a, b := aerial[i], aerial[j]
			if a.Z != b.Z {
				return a.Z < b.Z
			}
			if a.Y != b.Y {
				return a.Y < b.Y
			}
			return a.X < b.X
		})
	}

	if pattern.GroundFirst() {
		return append(ground, aerial...)
	}
	return append(aerial, ground...)
}

// retirePivot removes the first occurrence of p. The set may hold
// duplicate points contributed by different placements; only one is
// consumed per use.
func retirePivot(pivots []model.Point, p model.Point) []model.Point {
	for i, q := range pivots {
		if q == p {
			return append(pivots[:i], pivots[i+1:]...)
		}
	}
	return pivots
}

// addSyntheticPivot appends (0, yMax, 0), where yMax is the largest y
// among current pivots, unless that point is already present. Without
// it the packer starves when all low pivots are occluded by boxes for
// other destinations.
func addSyntheticPivot(pivots []model.Point) []model.Point {
	if len(pivots) == 0 {
		return pivots
	}
	yMax := pivots[0].Y
	for _, p := range pivots[1:] {
		if p.Y > yMax {
			yMax = p.Y
		}
	}
	synthetic := model.Point{X: 0, Y: yMax, Z: 0}
	for _, p := range pivots {
		if p == synthetic {
			return pivots
		}
	}
	return append(pivots, synthetic)
}
