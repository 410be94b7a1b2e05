// Package export serializes packing results: the ui_input text files
// consumed by the renderer, the load-plan PDF, and QR-coded cargo
// labels.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/athul8raj/cargo-planning/internal/model"
	"github.com/athul8raj/cargo-planning/internal/normalize"
)

// Palette is the fixed destination color cycle. Destination code n is
// drawn with Palette[n-1], which caps a plan at ten destinations.
var Palette = []string{
	"#bada55", "#7fe5f0", "#ff0000", "#ff80ed", "#696969",
	"#133337", "#065535", "#5ac18e", "#f7347a", "#ffd700",
}

// UI file names inside the output directory.
const (
	FileTruckToJS  = "truck_to_js.txt"
	FileDestColors = "dest_colors.txt"
	FileTruckSize  = "truck_size.txt"
	FileUnpacked   = "unpacked.txt"
	FileWritePDF   = "write_pdf_1.txt"
)

// WriteUIFiles writes the renderer hand-off files into dir, creating it
// if needed. The files are textual dumps of the result structures; the
// renderer record format swaps the Y and Z axes, so a box is emitted as
// [[L, H, W], [x, z, y], color, box ID, weight, destination].
func WriteUIFiles(dir string, plan model.PlanResult, norm normalize.Result) error {
	codes := sortedCodes(norm.DestNames)
	for _, code := range codes {
		if code < 1 || code > len(Palette) {
			return fmt.Errorf("destination code %d outside palette range 1..%d", code, len(Palette))
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	if err := writeTruckToJS(filepath.Join(dir, FileTruckToJS), plan, norm); err != nil {
		return err
	}
	if err := writeDestColors(filepath.Join(dir, FileDestColors), codes, norm.DestNames); err != nil {
		return err
	}
	if err := writeTruckSize(filepath.Join(dir, FileTruckSize), plan, norm.TotalBoxes()); err != nil {
		return err
	}
	if err := writeUnpacked(filepath.Join(dir, FileUnpacked), plan, norm); err != nil {
		return err
	}
	return writeBoxesPerDest(filepath.Join(dir, FileWritePDF), codes, norm)
}

func writeTruckToJS(path string, plan model.PlanResult, norm normalize.Result) error {
	var b strings.Builder
	b.WriteString("{")
	for i, tr := range plan.Trucks {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: [", pyStr(tr.Truck.Name))
		for j, p := range tr.Placed {
			if j > 0 {
				b.WriteString(", ")
			}
			l, w, h := p.Corners.Dims()
			origin := p.Corners.Min()
			boxID := norm.FingerprintToBoxID[fmt.Sprintf("F-%d", p.TypeIndex)]
			fmt.Fprintf(&b, "[[%d, %d, %d], [%d, %d, %d], %s, %s, %d, %d]",
				l, h, w,
				origin.X, origin.Z, origin.Y,
				pyStr(Palette[p.Destination-1]), pyStr(boxID), p.Weight, p.Destination)
		}
		b.WriteString("]")
	}
	b.WriteString("}")
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func writeDestColors(path string, codes []int, names map[int]string) error {
	var b strings.Builder
	b.WriteString("{")
	for i, code := range codes {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d: [%s, %s]", code, pyStr(Palette[code-1]), pyStr(names[code]))
	}
	b.WriteString("}")
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// writeTruckSize emits three lines: the truck size mapping, the initial
// unpacked count, and the last truck's (residual volume, packed count)
// summary pair.
func writeTruckSize(path string, plan model.PlanResult, initialCount int) error {
	var b strings.Builder
	b.WriteString("{")
	for i, tr := range plan.Trucks {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: [%d, %d, %d]", pyStr(tr.Truck.Name),
			tr.Truck.Length, tr.Truck.Width, tr.Truck.Height)
	}
	b.WriteString("}\n")
	fmt.Fprintf(&b, "%d\n", initialCount)
	if n := len(plan.Trucks); n > 0 {
		last := plan.Trucks[n-1]
		fmt.Fprintf(&b, "(%s, %s)\n",
			pyStr(fmt.Sprintf("%.3f", last.ResidualVolume)),
			pyStr(fmt.Sprintf("%d", len(last.Placed))))
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func writeUnpacked(path string, plan model.PlanResult, norm normalize.Result) error {
	var ids []string
	for _, box := range unpackedInOrder(plan) {
		ids = append(ids, norm.FingerprintToBoxID[fmt.Sprintf("F-%d", box.TypeIndex)])
	}
	var b strings.Builder
	b.WriteString("[")
	for i, id := range ids {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pyStr(id))
	}
	b.WriteString("]\n")
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// writeBoxesPerDest emits two lines: unit counts per destination code
// and the inverse destination map, both for the report stage.
func writeBoxesPerDest(path string, codes []int, norm normalize.Result) error {
	var b strings.Builder
	b.WriteString("{")
	wrote := false
	for _, code := range codes {
		count, ok := norm.BoxesPerDestination[code]
		if !ok {
			continue
		}
		if wrote {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d: %d", code, count)
		wrote = true
	}
	b.WriteString("}\n{")
	for i, code := range codes {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d: %s", code, pyStr(norm.DestNames[code]))
	}
	b.WriteString("}")
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// unpackedInOrder flattens the unpacked map in ascending destination
// order, preserving in-destination order.
func unpackedInOrder(plan model.PlanResult) []model.PhysicalBox {
	dests := make([]int, 0, len(plan.Unpacked))
	for d := range plan.Unpacked {
		dests = append(dests, d)
	}
	sort.Ints(dests)
	var out []model.PhysicalBox
	for _, d := range dests {
		out = append(out, plan.Unpacked[d]...)
	}
	return out
}

func sortedCodes(names map[int]string) []int {
	codes := make([]int, 0, len(names))
	for c := range names {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes
}

// pyStr renders s as a single-quoted literal, the format the renderer
// parses.
func pyStr(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "\\'") + "'"
}
