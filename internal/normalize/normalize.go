// Package normalize turns the raw box table into the engine's input:
// grouped specifications with stable fingerprint codes and one physical
// box per unit of quantity, bucketed by destination.
package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/athul8raj/cargo-planning/internal/model"
)

// Result is the normalized form of a box table.
type Result struct {
	// Specs are the grouped box specifications in final sort order;
	// Specs[i] carries fingerprint F-(i+1).
	Specs []model.BoxSpec
	// FingerprintToBoxID maps each F-code back to the shipping box ID.
	FingerprintToBoxID map[string]string
	// Boxes holds one PhysicalBox per unit, bucketed by destination
	// code. Every code from the destination order is present as a key,
	// including destinations with no boxes.
	Boxes map[int][]model.PhysicalBox
	// BoxesPerDestination counts units per destination code.
	BoxesPerDestination map[int]int
	// DestNames is the inverse of the destination order: code -> name.
	DestNames map[int]string
}

// TotalBoxes returns the number of physical boxes across destinations.
func (r Result) TotalBoxes() int {
	n := 0
	for _, units := range r.Boxes {
		n += len(units)
	}
	return n
}

// groupKey identifies rows considered the same box specification.
type groupKey struct {
	stackable   model.Stackability
	destination int
	boxID       string
	weight      int
}

type group struct {
	key              groupKey
	sumL, sumW, sumH int
	minL, maxL       int
	minW, maxW       int
	minH, maxH       int
	rows             int
	quantity         int
}

// Normalize groups the rows, sorts the groups by the load-pattern
// policy, assigns fingerprints in sort order and explodes quantities
// into physical boxes. destCodes maps trimmed destination names to
// codes (lower code = unloaded earlier). The operation is idempotent:
// normalizing an already-normalized table reproduces the fingerprint
// assignment.
func Normalize(rows []model.BoxRow, destCodes map[string]int, pattern model.LoadPattern, logger *log.Logger) (Result, error) {
	if logger == nil {
		logger = log.Default()
	}
	if len(rows) == 0 {
		return Result{}, fmt.Errorf("no boxes supplied")
	}
	if len(destCodes) == 0 {
		return Result{}, fmt.Errorf("no destination order supplied")
	}

	res := Result{
		FingerprintToBoxID:  make(map[string]string),
		Boxes:               make(map[int][]model.PhysicalBox, len(destCodes)),
		BoxesPerDestination: make(map[int]int),
		DestNames:           make(map[int]string, len(destCodes)),
	}
	for name, code := range destCodes {
		res.DestNames[code] = name
		res.Boxes[code] = nil
	}

	// Group rows by (stackability, destination, box ID, weight) in
	// first-appearance order. Dimensions are averaged across the rows
	// of a group, quantities summed.
	var groups []*group
	index := make(map[groupKey]*group)

	for i, row := range rows {
		stack, ok := parseStackable(row.Stackable)
		if !ok {
			return Result{}, fmt.Errorf("row %d: unknown stackability %q", i+1, row.Stackable)
		}
		dest := strings.TrimSpace(row.Destination)
		code, ok := destCodes[dest]
		if !ok {
			return Result{}, fmt.Errorf("row %d: destination %q not in destination order", i+1, dest)
		}
		if row.Length <= 0 || row.Width <= 0 || row.Height <= 0 || row.Quantity <= 0 {
			return Result{}, fmt.Errorf("row %d: dimensions and quantity must be positive", i+1)
		}

		res.BoxesPerDestination[code] += row.Quantity

		key := groupKey{stackable: stack, destination: code, boxID: row.BoxID, weight: row.Weight}
		g, seen := index[key]
		if !seen {
			g = &group{
				key:  key,
				minL: row.Length, maxL: row.Length,
				minW: row.Width, maxW: row.Width,
				minH: row.Height, maxH: row.Height,
			}
			index[key] = g
			groups = append(groups, g)
		}
		g.sumL += row.Length
		g.sumW += row.Width
		g.sumH += row.Height
		g.minL = minInt(g.minL, row.Length)
		g.maxL = maxInt(g.maxL, row.Length)
		g.minW = minInt(g.minW, row.Width)
		g.maxW = maxInt(g.maxW, row.Width)
		g.minH = minInt(g.minH, row.Height)
		g.maxH = maxInt(g.maxH, row.Height)
		g.rows++
		g.quantity += row.Quantity
	}

	specs := make([]model.BoxSpec, 0, len(groups))
	for _, g := range groups {
		if g.minL != g.maxL || g.minW != g.maxW || g.minH != g.maxH {
			logger.Warn("grouped rows have non-uniform dimensions; averaging",
				"box_id", g.key.boxID, "destination", g.key.destination)
		}
		specs = append(specs, model.BoxSpec{
			Stackable:   g.key.stackable,
			Destination: g.key.destination,
			BoxID:       g.key.boxID,
			Weight:      g.key.weight,
			// Integer truncation, matching the original int-typed pipeline.
			Length:   g.sumL / g.rows,
			Width:    g.sumW / g.rows,
			Height:   g.sumH / g.rows,
			Quantity: g.quantity,
		})
	}

	sortSpecs(specs, pattern)

	for i := range specs {
		specs[i].Fingerprint = fmt.Sprintf("F-%d", i+1)
		res.FingerprintToBoxID[specs[i].Fingerprint] = specs[i].BoxID
	}
	res.Specs = specs

	for i, spec := range specs {
		for u := 0; u < spec.Quantity; u++ {
			res.Boxes[spec.Destination] = append(res.Boxes[spec.Destination], model.NewPhysicalBox(spec, i+1))
		}
	}

	return res, nil
}

// sortSpecs applies the load-pattern sort. Rear loading leads with the
// footprint (width, height) so same-width columns build along the
// length; every other pattern leads with the destination so each stop's
// boxes cluster. Ties preserve first-appearance order.
func sortSpecs(specs []model.BoxSpec, pattern model.LoadPattern) {
	if pattern.RearLoading() {
		sort.SliceStable(specs, func(i, j int) bool {
			a, b := specs[i], specs[j]
			if a.Stackable != b.Stackable {
				return a.Stackable < b.Stackable
			}
			if a.Width != b.Width {
				return a.Width > b.Width
			}
			if a.Height != b.Height {
				return a.Height > b.Height
			}
			if a.Destination != b.Destination {
				return a.Destination > b.Destination
			}
			if a.Length != b.Length {
				return a.Length > b.Length
			}
			return a.Weight > b.Weight
		})
		return
	}
	sort.SliceStable(specs, func(i, j int) bool {
		a, b := specs[i], specs[j]
		if a.Stackable != b.Stackable {
			return a.Stackable < b.Stackable
		}
		if a.Destination != b.Destination {
			return a.Destination > b.Destination
		}
		if a.Width != b.Width {
			return a.Width > b.Width
		}
		if a.Length != b.Length {
			return a.Length > b.Length
		}
		if a.Height != b.Height {
			return a.Height > b.Height
		}
		return a.Weight > b.Weight
	})
}

func parseStackable(s string) (model.Stackability, bool) {
	switch strings.TrimSpace(s) {
	case "Yes":
		return model.Stackable, true
	case "No":
		return model.NonStackable, true
	}
	return model.Stackable, false
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
