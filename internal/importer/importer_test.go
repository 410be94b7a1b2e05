package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCSVDelimiter(t *testing.T) {
	comma := []byte("Length,Width,Height,Quantity,Weight,Destination,Stackable,Box ID\n100,50,50,2,10,Chennai,Yes,BOX-A\n")
	assert.Equal(t, ',', DetectCSVDelimiter(comma))

	semicolon := []byte("Length;Width;Height;Quantity;Weight;Destination;Stackable;Box ID\n100;50;50;2;10;Chennai;Yes;BOX-A\n")
	assert.Equal(t, ';', DetectCSVDelimiter(semicolon))

	tab := []byte("Length\tWidth\tHeight\tQuantity\tWeight\tDestination\tStackable\tBox ID\n100\t50\t50\t2\t10\tChennai\tYes\tBOX-A\n")
	assert.Equal(t, '\t', DetectCSVDelimiter(tab))
}

func TestDetectColumns_HeaderAliases(t *testing.T) {
	mapping, hasHeader := DetectColumns([]string{"LEN", "Breadth", "H", "Qty", "Wt", "Dest", "Stackability", "Box ID"})

	assert.True(t, hasHeader)
	assert.Equal(t, 0, mapping.Length)
	assert.Equal(t, 1, mapping.Width)
	assert.Equal(t, 2, mapping.Height)
	assert.Equal(t, 3, mapping.Quantity)
	assert.Equal(t, 4, mapping.Weight)
	assert.Equal(t, 5, mapping.Destination)
	assert.Equal(t, 6, mapping.Stackable)
	assert.Equal(t, 7, mapping.BoxID)
}

func TestDetectColumns_NoHeaderFallsBackToPositional(t *testing.T) {
	mapping, hasHeader := DetectColumns([]string{"100", "50", "50", "2", "10", "Chennai", "Yes", "BOX-A"})

	assert.False(t, hasHeader)
	assert.Equal(t, 0, mapping.Length)
	assert.Equal(t, 5, mapping.Destination)
	assert.Equal(t, 7, mapping.BoxID)
}

func TestImportCSVFromReader_WithHeader(t *testing.T) {
	csv := `Length,Width,Height,Quantity,Weight,Destination,Stackable,Box ID
100,50,50,2,10,Chennai,Yes,BOX-A
60,40,40,1,5,Pune,No,BOX-B
`
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	require.Empty(t, result.Errors)
	require.Len(t, result.Rows, 2)

	assert.Equal(t, "BOX-A", result.Rows[0].BoxID)
	assert.Equal(t, 100, result.Rows[0].Length)
	assert.Equal(t, 2, result.Rows[0].Quantity)
	assert.Equal(t, "Chennai", result.Rows[0].Destination)
	assert.Equal(t, "Yes", result.Rows[0].Stackable)

	assert.Equal(t, "No", result.Rows[1].Stackable)
	assert.Equal(t, 5, result.Rows[1].Weight)
}

func TestImportCSVFromReader_SkipsEmptyAndBadRows(t *testing.T) {
	csv := `Length,Width,Height,Quantity,Weight,Destination,Stackable,Box ID
100,50,50,2,10,Chennai,Yes,BOX-A

abc,50,50,2,10,Chennai,Yes,BOX-B
100,50,50,0,10,Chennai,Yes,BOX-C
`
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	// The empty line is skipped silently; the bad length and the zero
	// quantity each produce a row error.
	require.Len(t, result.Rows, 1)
	assert.Len(t, result.Errors, 2)
}

func TestImportCSVFromReader_UnknownStackabilityWarns(t *testing.T) {
	csv := `Length,Width,Height,Quantity,Weight,Destination,Stackable,Box ID
100,50,50,2,10,Chennai,Perhaps,BOX-A
`
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	require.Empty(t, result.Errors)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Yes", result.Rows[0].Stackable)

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Unknown stackability") {
			found = true
		}
	}
	assert.True(t, found, "expected a stackability warning")
}

func TestImportCSVFromReader_MissingColumnsFail(t *testing.T) {
	csv := `Length,Width,Quantity,Destination
100,50,2,Chennai
`
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Height")
	assert.Contains(t, result.Errors[0], "Weight")
}

func TestImportCSVFromReader_MissingBoxIDGetsDefault(t *testing.T) {
	csv := `Length,Width,Height,Quantity,Weight,Destination,Stackable
100,50,50,2,10,Chennai,Yes
`
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	require.Empty(t, result.Errors)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "BOX-1", result.Rows[0].BoxID)
}

func TestNormalizeStackable(t *testing.T) {
	for _, s := range []string{"Yes", "yes", "Y", "", "TRUE", "1"} {
		got, ok := normalizeStackable(s)
		assert.True(t, ok, s)
		assert.Equal(t, "Yes", got, s)
	}
	for _, s := range []string{"No", "no", "N", "false", "0"} {
		got, ok := normalizeStackable(s)
		assert.True(t, ok, s)
		assert.Equal(t, "No", got, s)
	}
	_, ok := normalizeStackable("sideways")
	assert.False(t, ok)
}

func TestParseDim_TruncatesFractions(t *testing.T) {
	v, err := parseDim("100.9")
	require.NoError(t, err)
	assert.Equal(t, 100, v)
}
