package model

import "github.com/google/uuid"

// Stackability tells whether other boxes may rest on top of a box.
type Stackability int

const (
	Stackable    Stackability = 0 // other boxes may sit on the top face
	NonStackable Stackability = 1 // top face must stay clear
)

func (s Stackability) String() string {
	if s == NonStackable {
		return "No"
	}
	return "Yes"
}

// LoadPattern selects the pivot ordering policy used while filling a truck.
type LoadPattern string

const (
	PatternSide        LoadPattern = "Side"
	PatternDefault     LoadPattern = "Default"
	PatternBack        LoadPattern = "Back"
	PatternRearLoading LoadPattern = "Rear Loading"
	PatternUniform     LoadPattern = "Uniform Dist."
)

// RearLoading reports whether the pattern fills along the truck length
// first. Back and Rear Loading are aliases.
func (p LoadPattern) RearLoading() bool {
	return p == PatternBack || p == PatternRearLoading
}

// GroundFirst reports whether floor-level pivots are tried before aerial
// ones, spreading boxes across the floor before stacking.
func (p LoadPattern) GroundFirst() bool {
	return p == PatternUniform
}

// ParseLoadPattern resolves a pattern name. Recognized names are the
// LoadPattern constants plus the lowercase shorthands "side", "back",
// "rear", "rear-loading", "uniform" and "default".
func ParseLoadPattern(s string) (LoadPattern, bool) {
	switch s {
	case string(PatternSide), "side":
		return PatternSide, true
	case string(PatternDefault), "default":
		return PatternDefault, true
	case string(PatternBack), "back":
		return PatternBack, true
	case string(PatternRearLoading), "rear", "rear-loading":
		return PatternRearLoading, true
	case string(PatternUniform), "uniform":
		return PatternUniform, true
	}
	return PatternSide, false
}

// Point is a position in truck-local coordinates, in centimeters.
// X runs along the truck length, Y along the width toward the rear
// door, Z upward.
type Point struct {
	X, Y, Z int
}

// Corners holds the eight corners of an axis-aligned box. The ordering
// is fixed: index bits select (x, y, z) with x flipping fastest, so
// index 0 is the minimum corner and index 7 the maximum corner. All
// placement predicates depend on this ordering.
type Corners [8]Point

// Min returns the origin corner.
func (c Corners) Min() Point { return c[0] }

// Max returns the far corner.
func (c Corners) Max() Point { return c[7] }

// Dims returns the (length, width, height) extents of the box.
func (c Corners) Dims() (l, w, h int) {
	return c[7].X - c[0].X, c[7].Y - c[0].Y, c[7].Z - c[0].Z
}

// BoxRow is one raw row of the box table as ingested, before
// normalization. Destination and Stackable are still strings.
type BoxRow struct {
	BoxID       string
	Length      int // cm
	Width       int // cm
	Height      int // cm
	Quantity    int
	Weight      int
	Destination string
	Stackable   string // "Yes" or "No"
}

// BoxSpec is one normalized box group: duplicate spreadsheet rows merged
// into a single row with summed quantity and averaged dimensions.
type BoxSpec struct {
	Stackable   Stackability
	Destination int    // destination code, lower = unloaded earlier
	BoxID       string // user-facing shipping identifier, not unique
	Weight      int
	Length      int // cm
	Width       int // cm
	Height      int // cm
	Quantity    int
	Fingerprint string // F-code, unique and stable within a run
}

// PhysicalBox is a single unit of a BoxSpec: one per quantity.
type PhysicalBox struct {
	ID          string // unique per unit
	Length      int
	Width       int
	Height      int
	TypeIndex   int // 1-based index into the normalized spec list
	Weight      int
	Destination int
	Stackable   Stackability
}

// NewPhysicalBox creates one unit of a spec with a fresh ID.
func NewPhysicalBox(spec BoxSpec, typeIndex int) PhysicalBox {
	return PhysicalBox{
		ID:          uuid.New().String()[:8],
		Length:      spec.Length,
		Width:       spec.Width,
		Height:      spec.Height,
		TypeIndex:   typeIndex,
		Weight:      spec.Weight,
		Destination: spec.Destination,
		Stackable:   spec.Stackable,
	}
}

// Truck is one cargo hold. The rear door sits at y = Width; boxes are
// unloaded along +y.
type Truck struct {
	Name   string
	Length int // cm
	Width  int // cm
	Height int // cm
}

// Volume returns the hold volume in cubic meters.
func (t Truck) Volume() float64 {
	return BoxVolume(t.Length, t.Width, t.Height)
}

// BoxVolume converts centimeter dimensions to cubic meters.
func BoxVolume(l, w, h int) float64 {
	return float64(l) * float64(w) * float64(h) / 1e6
}

// PlacedBox records one committed placement inside a truck.
type PlacedBox struct {
	Name        string // sequential local name: box-1, box-2, ...
	Corners     Corners
	TypeIndex   int
	BaseSupport float64 // supported base percentage at placement time
	Destination int
	Weight      int
}

// Volume returns the placed box volume in cubic meters.
func (p PlacedBox) Volume() float64 {
	l, w, h := p.Corners.Dims()
	return BoxVolume(l, w, h)
}

// PackSettings configures a packing run.
type PackSettings struct {
	Pattern           LoadPattern
	BaseAreaThreshold float64 // percentage in [0,100]
}

func DefaultSettings() PackSettings {
	return PackSettings{
		Pattern:           PatternSide,
		BaseAreaThreshold: 100,
	}
}

// TruckResult is the outcome for a single truck.
type TruckResult struct {
	Truck          Truck
	Placed         []PlacedBox
	CountByType    map[string]int // fingerprint -> units placed
	ResidualVolume float64        // truck volume minus placed volume, m³
}

// PlacedVolume returns the total volume of boxes in the truck.
func (r TruckResult) PlacedVolume() float64 {
	var total float64
	for _, p := range r.Placed {
		total += p.Volume()
	}
	return total
}

// Utilization returns the filled percentage of the truck volume.
func (r TruckResult) Utilization() float64 {
	tv := r.Truck.Volume()
	if tv == 0 {
		return 0
	}
	return r.PlacedVolume() / tv * 100
}

// PlanResult is the full multi-truck outcome.
type PlanResult struct {
	Trucks   []TruckResult
	Unpacked map[int][]PhysicalBox // destination code -> units left over
}

// PlacedCount returns the number of boxes placed across all trucks.
func (r PlanResult) PlacedCount() int {
	n := 0
	for _, t := range r.Trucks {
		n += len(t.Placed)
	}
	return n
}

// UnpackedCount returns the number of boxes left over after the last truck.
func (r PlanResult) UnpackedCount() int {
	n := 0
	for _, boxes := range r.Unpacked {
		n += len(boxes)
	}
	return n
}
