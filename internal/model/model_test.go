package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLoadPattern(t *testing.T) {
	cases := map[string]LoadPattern{
		"Side":          PatternSide,
		"side":          PatternSide,
		"Default":       PatternDefault,
		"Back":          PatternBack,
		"Rear Loading":  PatternRearLoading,
		"rear":          PatternRearLoading,
		"Uniform Dist.": PatternUniform,
		"uniform":       PatternUniform,
	}
	for in, want := range cases {
		got, ok := ParseLoadPattern(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseLoadPattern("Diagonal")
	assert.False(t, ok)
}

func TestLoadPattern_Properties(t *testing.T) {
	assert.True(t, PatternBack.RearLoading())
	assert.True(t, PatternRearLoading.RearLoading())
	assert.False(t, PatternSide.RearLoading())

	assert.True(t, PatternUniform.GroundFirst())
	assert.False(t, PatternSide.GroundFirst())
	assert.False(t, PatternBack.GroundFirst())
}

func TestStackabilityString(t *testing.T) {
	assert.Equal(t, "Yes", Stackable.String())
	assert.Equal(t, "No", NonStackable.String())
}

func TestNewPhysicalBox(t *testing.T) {
	spec := BoxSpec{
		Stackable:   NonStackable,
		Destination: 2,
		BoxID:       "BOX-A",
		Weight:      15,
		Length:      100,
		Width:       50,
		Height:      40,
		Quantity:    3,
	}

	box := NewPhysicalBox(spec, 4)

	assert.Len(t, box.ID, 8)
	assert.Equal(t, 100, box.Length)
	assert.Equal(t, 4, box.TypeIndex)
	assert.Equal(t, 2, box.Destination)
	assert.Equal(t, NonStackable, box.Stackable)

	// IDs are unique per unit.
	other := NewPhysicalBox(spec, 4)
	assert.NotEqual(t, box.ID, other.ID)
}

func TestTruckVolume(t *testing.T) {
	truck := Truck{Name: "TRUCK-1", Length: 600, Width: 240, Height: 260}
	assert.InDelta(t, 37.44, truck.Volume(), 1e-9)
}

func TestPlacedBoxVolume(t *testing.T) {
	p := PlacedBox{
		Corners: Corners{
			{0, 0, 0}, {50, 0, 0}, {0, 40, 0}, {50, 40, 0},
			{0, 0, 30}, {50, 0, 30}, {0, 40, 30}, {50, 40, 30},
		},
	}
	assert.InDelta(t, 0.06, p.Volume(), 1e-9)
}

func TestTruckResultUtilization(t *testing.T) {
	tr := TruckResult{
		Truck: Truck{Name: "TRUCK-1", Length: 100, Width: 100, Height: 100},
		Placed: []PlacedBox{
			{Corners: Corners{
				{0, 0, 0}, {100, 0, 0}, {0, 100, 0}, {100, 100, 0},
				{0, 0, 50}, {100, 0, 50}, {0, 100, 50}, {100, 100, 50},
			}},
		},
	}

	assert.InDelta(t, 50, tr.Utilization(), 1e-9)
	assert.InDelta(t, 0.5, tr.PlacedVolume(), 1e-9)
}

func TestPlanResultCounts(t *testing.T) {
	r := PlanResult{
		Trucks: []TruckResult{
			{Placed: []PlacedBox{{Name: "box-1"}, {Name: "box-2"}}},
			{Placed: []PlacedBox{{Name: "box-1"}}},
		},
		Unpacked: map[int][]PhysicalBox{
			1: {{ID: "a"}},
			2: nil,
		},
	}

	require.Equal(t, 3, r.PlacedCount())
	assert.Equal(t, 1, r.UnpackedCount())
}
