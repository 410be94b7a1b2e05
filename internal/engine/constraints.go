package engine

import "github.com/athul8raj/cargo-planning/internal/model"

// The placement predicates. Each takes a candidate box as corners plus
// the current truck state. They are evaluated cheapest first; base
// support is last because it walks every placed box at the candidate's
// level.

// fitsInTruck reports whether the candidate stays inside the hold.
// Equality with a wall is allowed.
func fitsInTruck(c model.Corners, truck model.Truck) bool {
	return c[7].X <= truck.Length && c[7].Y <= truck.Width && c[7].Z <= truck.Height
}

// intersectsAny reports whether the candidate has positive-volume
// overlap with any placed box. Shared faces are allowed.
func intersectsAny(placed []model.PlacedBox, c model.Corners) bool {
	for i := range placed {
		if boxesIntersect(placed[i].Corners, c) {
			return true
		}
	}
	return false
}

// restsOnNonStackable reports whether the candidate sits directly on a
// non-stackable box with any XY overlap. Only boxes whose top face is
// level with the candidate's bottom face count; overlap is decided by
// comparing center-to-center distance against the summed half-extents
// on both footprint axes (doubled to stay in integers).
func restsOnNonStackable(nonStackables []model.PlacedBox, c model.Corners) bool {
	l1 := c[1].X - c[0].X
	w1 := c[2].Y - c[0].Y
	cx1 := c[0].X + c[7].X // twice the center
	cy1 := c[0].Y + c[7].Y

	for i := range nonStackables {
		ns := nonStackables[i].Corners
		if ns[4].Z != c[0].Z {
			continue
		}
		l2 := ns[1].X - ns[0].X
		w2 := ns[2].Y - ns[0].Y
		dx := absInt(cx1 - (ns[0].X + ns[7].X))
		dy := absInt(cy1 - (ns[0].Y + ns[7].Y))
		if l1+l2 > dx && w1+w2 > dy {
			return true
		}
	}
	return false
}

// baseSupport returns the percentage of the candidate's bottom face
// resting on top faces of placed boxes exactly one level below. A box
// on the truck floor is fully supported.
func baseSupport(placed []model.PlacedBox, c model.Corners) float64 {
	if c[0].Z == 0 {
		return 100
	}
	total := 0
	for i := range placed {
		p := placed[i].Corners
		if p[4].Z != c[0].Z {
			continue
		}
		total += xyOverlapArea(c, p)
	}
	footprint := (c[3].X - c[0].X) * (c[3].Y - c[0].Y)
	if footprint == 0 {
		return 0
	}
	return float64(total) * 100 / float64(footprint)
}

// isUnloadable reports whether the candidate's rear corridor is clear
// of boxes bound for other destinations. A blocker starts at or beyond
// the candidate's far y face (>=) and its far x and z faces lie strictly
// beyond the candidate's near x and z faces (>). Only these one-sided
// bounds are compared, so a box lying wholly on the +x or +z side of the
// candidate also blocks. The asymmetry between >= and > is deliberate: a
// box whose near y face merely touches the candidate's far y face still
// blocks the corridor, while a box whose far x or z face only touches the
// candidate's near x or z face does not.
func isUnloadable(placed []model.PlacedBox, c model.Corners, dest int) bool {
	for i := range placed {
		p := placed[i]
		if p.Destination == dest {
			continue
		}
		if p.Corners[0].Y >= c[7].Y && p.Corners[7].X > c[0].X && p.Corners[7].Z > c[0].Z {
			return false
		}
	}
	return true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
