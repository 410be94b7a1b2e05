package engine

import "github.com/athul8raj/cargo-planning/internal/model"

// makeCorners builds the eight corners of a box whose minimum corner
// sits at origin. The ordering matches model.Corners: x flips fastest,
// then y, then z.
func makeCorners(origin model.Point, l, w, h int) model.Corners {
	x, y, z := origin.X, origin.Y, origin.Z
	return model.Corners{
		{X: x, Y: y, Z: z},
		{X: x + l, Y: y, Z: z},
		{X: x, Y: y + w, Z: z},
		{X: x + l, Y: y + w, Z: z},
		{X: x, Y: y, Z: z + h},
		{X: x + l, Y: y, Z: z + h},
		{X: x, Y: y + w, Z: z + h},
		{X: x + l, Y: y + w, Z: z + h},
	}
}

// boxesIntersect reports whether two boxes overlap with positive volume.
// All comparisons are strict, so touching faces do not intersect.
func boxesIntersect(a, b model.Corners) bool {
	return a[7].X > b[0].X && a[7].Y > b[0].Y && a[7].Z > b[0].Z &&
		a[0].X < b[7].X && a[0].Y < b[7].Y && a[0].Z < b[7].Z
}

// xyOverlapArea returns the area of the XY-footprint intersection of
// two boxes, or 0 when the footprints are disjoint or merely touching.
func xyOverlapArea(a, b model.Corners) int {
	xmin1, xmax1 := a[0].X, a[3].X
	ymin1, ymax1 := a[0].Y, a[3].Y
	xmin2, xmax2 := b[0].X, b[3].X
	ymin2, ymax2 := b[0].Y, b[3].Y

	if xmax1 > xmin2 && xmax2 > xmin1 && ymax1 > ymin2 && ymax2 > ymin1 {
		dx := minInt(xmax1, xmax2) - maxInt(xmin1, xmin2)
		dy := minInt(ymax1, ymax2) - maxInt(ymin1, ymin2)
		return dx * dy
	}
	return 0
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
