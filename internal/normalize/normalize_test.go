package normalize

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athul8raj/cargo-planning/internal/model"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func row(id string, l, w, h, qty, weight int, dest, stack string) model.BoxRow {
	return model.BoxRow{
		BoxID:       id,
		Length:      l,
		Width:       w,
		Height:      h,
		Quantity:    qty,
		Weight:      weight,
		Destination: dest,
		Stackable:   stack,
	}
}

var testDests = map[string]int{"Chennai": 1, "Pune": 2}

func TestNormalize_GroupsIdenticalRows(t *testing.T) {
	// Two rows sharing (stackability, destination, box ID, weight) are
	// one group: dimensions averaged, quantities summed.
	rows := []model.BoxRow{
		row("BOX-A", 100, 50, 50, 2, 10, "Chennai", "Yes"),
		row("BOX-A", 102, 48, 50, 3, 10, "Chennai", "Yes"),
	}

	res, err := Normalize(rows, testDests, model.PatternSide, quietLogger())

	require.NoError(t, err)
	require.Len(t, res.Specs, 1)
	spec := res.Specs[0]
	assert.Equal(t, 101, spec.Length)
	assert.Equal(t, 49, spec.Width)
	assert.Equal(t, 50, spec.Height)
	assert.Equal(t, 5, spec.Quantity)
	assert.Equal(t, "F-1", spec.Fingerprint)
}

func TestNormalize_DifferentWeightSplitsGroups(t *testing.T) {
	rows := []model.BoxRow{
		row("BOX-A", 100, 50, 50, 1, 10, "Chennai", "Yes"),
		row("BOX-A", 100, 50, 50, 1, 12, "Chennai", "Yes"),
	}

	res, err := Normalize(rows, testDests, model.PatternSide, quietLogger())

	require.NoError(t, err)
	assert.Len(t, res.Specs, 2)
}

func TestNormalize_DefaultSortOrder(t *testing.T) {
	// Default sort: stackability asc, destination desc, then width,
	// length, height, weight all descending.
	rows := []model.BoxRow{
		row("BOX-A", 100, 50, 50, 1, 10, "Chennai", "Yes"),
		row("BOX-B", 100, 80, 50, 1, 10, "Pune", "Yes"),
		row("BOX-C", 100, 50, 50, 1, 10, "Pune", "No"),
		row("BOX-D", 100, 60, 50, 1, 10, "Pune", "Yes"),
	}

	res, err := Normalize(rows, testDests, model.PatternSide, quietLogger())

	require.NoError(t, err)
	require.Len(t, res.Specs, 4)
	// Stackables first; within them, Pune (code 2) before Chennai,
	// wider before narrower; the non-stackable comes last.
	assert.Equal(t, "BOX-B", res.Specs[0].BoxID)
	assert.Equal(t, "BOX-D", res.Specs[1].BoxID)
	assert.Equal(t, "BOX-A", res.Specs[2].BoxID)
	assert.Equal(t, "BOX-C", res.Specs[3].BoxID)
}

func TestNormalize_RearLoadingSortLeadsWithFootprint(t *testing.T) {
	// Rear loading sorts width before destination so same-width
	// columns build along the length.
	rows := []model.BoxRow{
		row("BOX-A", 100, 50, 50, 1, 10, "Pune", "Yes"),
		row("BOX-B", 100, 80, 50, 1, 10, "Chennai", "Yes"),
	}

	res, err := Normalize(rows, testDests, model.PatternBack, quietLogger())

	require.NoError(t, err)
	require.Len(t, res.Specs, 2)
	assert.Equal(t, "BOX-B", res.Specs[0].BoxID)
	assert.Equal(t, "BOX-A", res.Specs[1].BoxID)
}

func TestNormalize_UniformFallsThroughToDefaultSort(t *testing.T) {
	rows := []model.BoxRow{
		row("BOX-A", 100, 50, 50, 1, 10, "Chennai", "Yes"),
		row("BOX-B", 100, 80, 50, 1, 10, "Pune", "Yes"),
	}

	side, err := Normalize(rows, testDests, model.PatternSide, quietLogger())
	require.NoError(t, err)
	uniform, err := Normalize(rows, testDests, model.PatternUniform, quietLogger())
	require.NoError(t, err)

	for i := range side.Specs {
		assert.Equal(t, side.Specs[i].BoxID, uniform.Specs[i].BoxID)
	}
}

func TestNormalize_ExplodesQuantities(t *testing.T) {
	rows := []model.BoxRow{
		row("BOX-A", 100, 50, 50, 3, 10, "Chennai", "Yes"),
		row("BOX-B", 60, 40, 40, 2, 5, "Pune", "No"),
	}

	res, err := Normalize(rows, testDests, model.PatternSide, quietLogger())

	require.NoError(t, err)
	assert.Len(t, res.Boxes[1], 3)
	assert.Len(t, res.Boxes[2], 2)
	assert.Equal(t, 5, res.TotalBoxes())

	// Type indices link each unit back to its spec.
	for _, unit := range res.Boxes[1] {
		assert.Equal(t, "BOX-A", res.Specs[unit.TypeIndex-1].BoxID)
		assert.NotEmpty(t, unit.ID)
	}
	for _, unit := range res.Boxes[2] {
		assert.Equal(t, model.NonStackable, unit.Stackable)
	}
}

func TestNormalize_AllDestinationCodesPresent(t *testing.T) {
	// Destinations with no boxes still appear as keys so the cascade
	// sees a stable key set.
	rows := []model.BoxRow{
		row("BOX-A", 100, 50, 50, 1, 10, "Chennai", "Yes"),
	}

	res, err := Normalize(rows, testDests, model.PatternSide, quietLogger())

	require.NoError(t, err)
	_, ok := res.Boxes[2]
	assert.True(t, ok)
	assert.Empty(t, res.Boxes[2])
}

func TestNormalize_TrimsDestinationNames(t *testing.T) {
	rows := []model.BoxRow{
		row("BOX-A", 100, 50, 50, 1, 10, "  Chennai ", "Yes"),
	}

	res, err := Normalize(rows, testDests, model.PatternSide, quietLogger())

	require.NoError(t, err)
	assert.Len(t, res.Boxes[1], 1)
	assert.Equal(t, 1, res.BoxesPerDestination[1])
}

func TestNormalize_UnknownDestinationFails(t *testing.T) {
	rows := []model.BoxRow{
		row("BOX-A", 100, 50, 50, 1, 10, "Nowhere", "Yes"),
	}

	_, err := Normalize(rows, testDests, model.PatternSide, quietLogger())
	assert.Error(t, err)
}

func TestNormalize_UnknownStackabilityFails(t *testing.T) {
	rows := []model.BoxRow{
		row("BOX-A", 100, 50, 50, 1, 10, "Chennai", "Maybe"),
	}

	_, err := Normalize(rows, testDests, model.PatternSide, quietLogger())
	assert.Error(t, err)
}

func TestNormalize_EmptyInputFails(t *testing.T) {
	_, err := Normalize(nil, testDests, model.PatternSide, quietLogger())
	assert.Error(t, err)
}

func TestNormalize_FingerprintsFollowSortOrder(t *testing.T) {
	rows := []model.BoxRow{
		row("BOX-A", 100, 50, 50, 1, 10, "Chennai", "Yes"),
		row("BOX-B", 100, 80, 50, 1, 10, "Pune", "Yes"),
	}

	res, err := Normalize(rows, testDests, model.PatternSide, quietLogger())

	require.NoError(t, err)
	assert.Equal(t, "F-1", res.Specs[0].Fingerprint)
	assert.Equal(t, "F-2", res.Specs[1].Fingerprint)
	assert.Equal(t, "BOX-B", res.FingerprintToBoxID["F-1"])
	assert.Equal(t, "BOX-A", res.FingerprintToBoxID["F-2"])
}

func TestNormalize_Idempotent(t *testing.T) {
	// Feeding the normalized groups back through normalization keeps
	// the fingerprint assignment.
	rows := []model.BoxRow{
		row("BOX-A", 100, 50, 50, 2, 10, "Chennai", "Yes"),
		row("BOX-B", 100, 80, 50, 1, 10, "Pune", "No"),
		row("BOX-A", 100, 50, 50, 1, 10, "Chennai", "Yes"),
	}

	first, err := Normalize(rows, testDests, model.PatternSide, quietLogger())
	require.NoError(t, err)

	again := make([]model.BoxRow, 0, len(first.Specs))
	for _, spec := range first.Specs {
		again = append(again, model.BoxRow{
			BoxID:       spec.BoxID,
			Length:      spec.Length,
			Width:       spec.Width,
			Height:      spec.Height,
			Quantity:    spec.Quantity,
			Weight:      spec.Weight,
			Destination: first.DestNames[spec.Destination],
			Stackable:   spec.Stackable.String(),
		})
	}

	second, err := Normalize(again, testDests, model.PatternSide, quietLogger())
	require.NoError(t, err)

	require.Len(t, second.Specs, len(first.Specs))
	for i := range first.Specs {
		assert.Equal(t, first.Specs[i].Fingerprint, second.Specs[i].Fingerprint)
		assert.Equal(t, first.Specs[i].BoxID, second.Specs[i].BoxID)
	}
}
