package export

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/athul8raj/cargo-planning/internal/model"
	"github.com/athul8raj/cargo-planning/internal/normalize"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 18.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates the load-plan report: one page per truck with a
// scaled top view of the placements, followed by a summary page.
func ExportPDF(path string, plan model.PlanResult, norm normalize.Result) error {
	if len(plan.Trucks) == 0 {
		return fmt.Errorf("no trucks to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, tr := range plan.Trucks {
		pdf.AddPage()
		renderTruckPage(pdf, tr, norm)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, plan, norm)

	return pdf.OutputFileAndClose(path)
}

// renderTruckPage draws a single truck's top view on the current page.
// Boxes are drawn floor level first so stacked boxes overlay what they
// rest on; the rear door edge (y = truck width) is at the bottom.
func renderTruckPage(pdf *fpdf.Fpdf, tr model.TruckResult, norm normalize.Result) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s (%d x %d x %d cm)", tr.Truck.Name, tr.Truck.Length, tr.Truck.Width, tr.Truck.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Boxes: %d | Placed volume: %.3f m3 | Residual volume: %.3f m3 | Utilization: %.1f%%",
		len(tr.Placed), tr.PlacedVolume(), tr.ResidualVolume, tr.Utilization())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scaleX := drawWidth / float64(tr.Truck.Length)
	scaleY := drawHeight / float64(tr.Truck.Width)
	scale := math.Min(scaleX, scaleY)

	canvasW := float64(tr.Truck.Length) * scale
	canvasH := float64(tr.Truck.Width) * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Truck bed background
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Rear door marker along y = width
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(1.0)
	pdf.Line(offsetX, offsetY+canvasH, offsetX+canvasW, offsetY+canvasH)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.SetXY(offsetX, offsetY+canvasH+1)
	pdf.CellFormat(canvasW, 3, "rear door", "", 0, "C", false, 0, "")

	placed := append([]model.PlacedBox(nil), tr.Placed...)
	sort.SliceStable(placed, func(i, j int) bool {
		return placed[i].Corners.Min().Z < placed[j].Corners.Min().Z
	})

	for _, p := range placed {
		r, g, b := hexToRGB(Palette[p.Destination-1])
		l, w, _ := p.Corners.Dims()
		origin := p.Corners.Min()

		bw := float64(l) * scale
		bh := float64(w) * scale
		bx := offsetX + float64(origin.X)*scale
		by := offsetY + float64(origin.Y)*scale

		pdf.SetFillColor(r, g, b)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(bx, by, bw, bh, "FD")

		if bw > 10 && bh > 5 {
			pdf.SetFont("Helvetica", "", 6)
			pdf.SetTextColor(20, 20, 20)
			pdf.SetXY(bx, by+bh/2-1.5)
			pdf.CellFormat(bw, 3, p.Name, "", 0, "C", false, 0, "")
		}
	}
	pdf.SetTextColor(0, 0, 0)

	renderLegend(pdf, norm, offsetY+canvasH+6)
}

// renderLegend draws one color swatch per destination.
func renderLegend(pdf *fpdf.Fpdf, norm normalize.Result, y float64) {
	codes := sortedCodes(norm.DestNames)
	x := marginLeft
	pdf.SetFont("Helvetica", "", 8)
	for _, code := range codes {
		r, g, b := hexToRGB(Palette[code-1])
		pdf.SetFillColor(r, g, b)
		pdf.SetDrawColor(30, 30, 30)
		pdf.Rect(x, y, 4, 4, "FD")
		label := fmt.Sprintf("%d %s", code, norm.DestNames[code])
		pdf.SetXY(x+5, y)
		pdf.CellFormat(40, 4, label, "", 0, "L", false, 0, "")
		x += 5 + pdf.GetStringWidth(label) + 6
	}
}

// renderSummaryPage draws overall statistics across all trucks.
func renderSummaryPage(pdf *fpdf.Fpdf, plan model.PlanResult, norm normalize.Result) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Packing Summary", "", 0, "L", false, 0, "")

	y := marginTop + headerHeight + 6
	pdf.SetFont("Helvetica", "", 10)

	for _, tr := range plan.Trucks {
		line := fmt.Sprintf("%s: %d boxes placed, %.3f m3 residual (%.1f%% utilized)",
			tr.Truck.Name, len(tr.Placed), tr.ResidualVolume, tr.Utilization())
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, line, "", 0, "L", false, 0, "")
		y += 6
	}

	y += 4
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5,
		fmt.Sprintf("Placed: %d | Unpacked: %d", plan.PlacedCount(), plan.UnpackedCount()),
		"", 0, "L", false, 0, "")
	y += 8

	pdf.SetFont("Helvetica", "", 10)
	codes := sortedCodes(norm.DestNames)
	for _, code := range codes {
		line := fmt.Sprintf("Destination %d (%s): %d boxes", code, norm.DestNames[code], norm.BoxesPerDestination[code])
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, line, "", 0, "L", false, 0, "")
		y += 6
	}
}

// hexToRGB parses a #rrggbb color.
func hexToRGB(hex string) (int, int, int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0
	}
	r, _ := strconv.ParseInt(hex[1:3], 16, 32)
	g, _ := strconv.ParseInt(hex[3:5], 16, 32)
	b, _ := strconv.ParseInt(hex[5:7], 16, 32)
	return int(r), int(g), int(b)
}
