package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/athul8raj/cargo-planning/internal/model"
)

func TestMakeCorners_Ordering(t *testing.T) {
	c := makeCorners(model.Point{X: 10, Y: 20, Z: 30}, 2, 4, 6)

	// Index 0 is the min corner, index 7 the max corner; x flips
	// fastest, then y, then z.
	assert.Equal(t, model.Point{X: 10, Y: 20, Z: 30}, c[0])
	assert.Equal(t, model.Point{X: 12, Y: 20, Z: 30}, c[1])
	assert.Equal(t, model.Point{X: 10, Y: 24, Z: 30}, c[2])
	assert.Equal(t, model.Point{X: 12, Y: 24, Z: 30}, c[3])
	assert.Equal(t, model.Point{X: 10, Y: 20, Z: 36}, c[4])
	assert.Equal(t, model.Point{X: 12, Y: 20, Z: 36}, c[5])
	assert.Equal(t, model.Point{X: 10, Y: 24, Z: 36}, c[6])
	assert.Equal(t, model.Point{X: 12, Y: 24, Z: 36}, c[7])

	l, w, h := c.Dims()
	assert.Equal(t, 2, l)
	assert.Equal(t, 4, w)
	assert.Equal(t, 6, h)
}

func TestBoxesIntersect_TouchingFacesDoNotOverlap(t *testing.T) {
	a := makeCorners(model.Point{}, 50, 50, 50)
	b := makeCorners(model.Point{X: 50}, 50, 50, 50)

	assert.False(t, boxesIntersect(a, b))
	assert.False(t, boxesIntersect(b, a))
}

func TestBoxesIntersect_InteriorOverlap(t *testing.T) {
	a := makeCorners(model.Point{}, 50, 50, 50)
	b := makeCorners(model.Point{X: 49, Y: 49, Z: 49}, 50, 50, 50)

	assert.True(t, boxesIntersect(a, b))
	assert.True(t, boxesIntersect(b, a))
}

func TestBoxesIntersect_Containment(t *testing.T) {
	outer := makeCorners(model.Point{}, 100, 100, 100)
	inner := makeCorners(model.Point{X: 10, Y: 10, Z: 10}, 10, 10, 10)

	assert.True(t, boxesIntersect(outer, inner))
}

func TestXYOverlapArea(t *testing.T) {
	a := makeCorners(model.Point{}, 50, 50, 50)

	// Full footprint overlap regardless of z.
	b := makeCorners(model.Point{Z: 50}, 50, 50, 50)
	assert.Equal(t, 2500, xyOverlapArea(a, b))

	// Partial overlap: 20 x 30.
	c := makeCorners(model.Point{X: 30, Y: 20}, 50, 50, 50)
	assert.Equal(t, 20*30, xyOverlapArea(a, c))

	// Touching edges count as zero.
	d := makeCorners(model.Point{X: 50}, 50, 50, 50)
	assert.Equal(t, 0, xyOverlapArea(a, d))

	// Disjoint.
	e := makeCorners(model.Point{X: 60, Y: 60}, 50, 50, 50)
	assert.Equal(t, 0, xyOverlapArea(a, e))
}

func TestBoxVolume_CentimetersToCubicMeters(t *testing.T) {
	assert.InDelta(t, 1.0, model.BoxVolume(100, 100, 100), 1e-9)
	assert.InDelta(t, 0.125, model.BoxVolume(50, 50, 50), 1e-9)
}
