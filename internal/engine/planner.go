package engine

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/athul8raj/cargo-planning/internal/model"
)

// ErrInvalidInput marks conditions that abort a run before any
// placement: no boxes, a degenerate truck, an unresolvable destination.
// Routine rejection (a box fitting nowhere) is never an error; such
// boxes flow into the unpacked residue.
var ErrInvalidInput = errors.New("invalid input")

// Planner runs the multi-truck cascade.
type Planner struct {
	settings model.PackSettings
	logger   *log.Logger
}

func NewPlanner(settings model.PackSettings, logger *log.Logger) *Planner {
	if logger == nil {
		logger = log.Default()
	}
	return &Planner{settings: settings, logger: logger}
}

// Plan packs the boxes into the trucks in order. The residue of each
// truck becomes the input of the next; whatever survives the last truck
// is reported as unpacked. specs provides the fingerprint for each
// TypeIndex so per-truck counts can be keyed by F-code.
//
// The call is total apart from input validation: it always returns a
// fully shaped result whose counts reflect what actually happened.
func (pl *Planner) Plan(trucks []model.Truck, boxes map[int][]model.PhysicalBox, specs []model.BoxSpec) (model.PlanResult, error) {
	if err := validate(trucks, boxes); err != nil {
		return model.PlanResult{}, err
	}

	remaining := make(map[int][]model.PhysicalBox, len(boxes))
	for dest, units := range boxes {
		remaining[dest] = append([]model.PhysicalBox(nil), units...)
	}

	packer := NewPacker(pl.settings, pl.logger)
	result := model.PlanResult{Trucks: make([]model.TruckResult, 0, len(trucks))}

	for _, truck := range trucks {
		left := 0
		for _, units := range remaining {
			left += len(units)
		}
		if left == 0 {
			pl.logger.Info("no more boxes left to pack", "truck", truck.Name)
			result.Trucks = append(result.Trucks, model.TruckResult{
				Truck:          truck,
				CountByType:    map[string]int{},
				ResidualVolume: truck.Volume(),
			})
			continue
		}

		placed, residual := packer.PackTruck(truck, remaining)
		result.Trucks = append(result.Trucks, model.TruckResult{
			Truck:          truck,
			Placed:         placed,
			CountByType:    countByType(placed, specs),
			ResidualVolume: residual,
		})
		pl.logger.Info("truck complete", "truck", truck.Name, "placed", len(placed))
	}

	result.Unpacked = remaining
	if n := result.UnpackedCount(); n > 0 {
		pl.logger.Info("boxes remain after the last truck", "unpacked", n)
	}
	return result, nil
}

// countByType tallies placed units per fingerprint.
func countByType(placed []model.PlacedBox, specs []model.BoxSpec) map[string]int {
	counts := make(map[string]int, len(specs))
	for _, p := range placed {
		key := fmt.Sprintf("F-%d", p.TypeIndex)
		if p.TypeIndex >= 1 && p.TypeIndex <= len(specs) {
			key = specs[p.TypeIndex-1].Fingerprint
		}
		counts[key]++
	}
	return counts
}

func validate(trucks []model.Truck, boxes map[int][]model.PhysicalBox) error {
	if len(trucks) == 0 {
		return fmt.Errorf("%w: no trucks supplied", ErrInvalidInput)
	}
	for _, t := range trucks {
		if t.Length <= 0 || t.Width <= 0 || t.Height <= 0 {
			return fmt.Errorf("%w: truck %s has non-positive dimensions", ErrInvalidInput, t.Name)
		}
	}
	total := 0
	for _, units := range boxes {
		total += len(units)
	}
	if total == 0 {
		return fmt.Errorf("%w: there are no boxes to pack", ErrInvalidInput)
	}
	return nil
}
