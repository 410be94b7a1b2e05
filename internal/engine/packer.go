package engine

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/athul8raj/cargo-planning/internal/model"
)

// Packer fills a single truck with a first-fit pivot heuristic.
type Packer struct {
	settings model.PackSettings
	logger   *log.Logger
}

func NewPacker(settings model.PackSettings, logger *log.Logger) *Packer {
	if logger == nil {
		logger = log.Default()
	}
	return &Packer{settings: settings, logger: logger}
}

// PackTruck places as many boxes as possible into the truck. The
// unpacked map (destination code -> units) is updated in place: placed
// units are removed, preserving the relative order of the rest, so the
// residual can be handed to the next truck. Returns the placements in
// commit order and the residual volume in cubic meters.
//
// Destinations are visited highest code first: boxes unloaded last are
// loaded first, nearest the cab, leaving the rear for earlier stops.
func (pk *Packer) PackTruck(truck model.Truck, unpacked map[int][]model.PhysicalBox) ([]model.PlacedBox, float64) {
	truckVol := truck.Volume()
	var (
		placed        []model.PlacedBox
		nonStackables []model.PlacedBox
		placedVol     float64
	)
	pivots := []model.Point{{X: 0, Y: 0, Z: 0}}

	dests := make([]int, 0, len(unpacked))
	for d := range unpacked {
		dests = append(dests, d)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(dests)))

	pk.logger.Debug("packing truck", "truck", truck.Name, "pattern", pk.settings.Pattern)

	for _, dest := range dests {
		items := unpacked[dest]
		used := make(map[int]bool)

		for idx := range items {
			box := items[idx]
			vol := model.BoxVolume(box.Length, box.Width, box.Height)
			if placedVol+vol > truckVol {
				pk.logger.Debug("volume exhausted for destination", "truck", truck.Name, "destination", dest)
				break
			}

			pivots = orderPivots(pivots, pk.settings.Pattern)

			for _, pvt := range pivots {
				corners := makeCorners(pvt, box.Length, box.Width, box.Height)

				if !fitsInTruck(corners, truck) {
					continue
				}
				if !isUnloadable(placed, corners, box.Destination) {
					continue
				}
				if restsOnNonStackable(nonStackables, corners) {
					continue
				}
				if intersectsAny(placed, corners) {
					continue
				}
				support := baseSupport(placed, corners)
				if support < pk.settings.BaseAreaThreshold {
					continue
				}

				pb := model.PlacedBox{
					Name:        fmt.Sprintf("box-%d", len(placed)+1),
					Corners:     corners,
					TypeIndex:   box.TypeIndex,
					BaseSupport: support,
					Destination: box.Destination,
					Weight:      box.Weight,
				}
				placed = append(placed, pb)
				if box.Stackable == model.NonStackable {
					nonStackables = append(nonStackables, pb)
				}

				pivots = append(pivots, corners[1:]...)
				pivots = retirePivot(pivots, pvt)
				pivots = addSyntheticPivot(pivots)

				used[idx] = true
				placedVol += vol
				break
			}
		}

		rest := items[:0:0]
		for idx := range items {
			if !used[idx] {
				rest = append(rest, items[idx])
			}
		}
		unpacked[dest] = rest
	}

	pk.logger.Debug("truck packed", "truck", truck.Name, "placed", len(placed),
		"residual_m3", fmt.Sprintf("%.3f", truckVol-placedVol))
	return placed, truckVol - placedVol
}
