package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/athul8raj/cargo-planning/internal/model"
	"github.com/athul8raj/cargo-planning/internal/normalize"
)

// LabelInfo holds the data encoded into each cargo label's QR code.
type LabelInfo struct {
	BoxID       string `json:"box_id"`
	Name        string `json:"name"` // local name within the truck
	Truck       string `json:"truck"`
	Destination string `json:"destination"`
	Weight      int    `json:"weight"`
	Length      int    `json:"length_cm"`
	Width       int    `json:"width_cm"`
	Height      int    `json:"height_cm"`
	X           int    `json:"x_cm"`
	Y           int    `json:"y_cm"`
	Z           int    `json:"z_cm"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectLabelInfos extracts label information from a plan result for
// use in testing or alternative export formats.
func CollectLabelInfos(plan model.PlanResult, norm normalize.Result) []LabelInfo {
	var labels []LabelInfo
	for _, tr := range plan.Trucks {
		for _, p := range tr.Placed {
			l, w, h := p.Corners.Dims()
			origin := p.Corners.Min()
			labels = append(labels, LabelInfo{
				BoxID:       norm.FingerprintToBoxID[fmt.Sprintf("F-%d", p.TypeIndex)],
				Name:        p.Name,
				Truck:       tr.Truck.Name,
				Destination: norm.DestNames[p.Destination],
				Weight:      p.Weight,
				Length:      l,
				Width:       w,
				Height:      h,
				X:           origin.X,
				Y:           origin.Y,
				Z:           origin.Z,
			})
		}
	}
	return labels
}

// ExportLabels generates a PDF of QR-coded labels for all placed boxes.
// Each label carries the shipping box ID, destination, and truck plus a
// QR code encoding the placement as JSON. Labels are laid out on a
// standard label sheet format (Avery 5160 / 3 columns x 10 rows).
func ExportLabels(path string, plan model.PlanResult, norm normalize.Result) error {
	labels := CollectLabelInfos(plan, norm)
	if len(labels) == 0 {
		return fmt.Errorf("no boxes placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.BoxID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	// Generate QR code PNG bytes
	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	// Register QR image with a unique name
	imgName := fmt.Sprintf("qr_%s_%s", info.Truck, info.Name)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// Place QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Text area (left side of label)
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Shipping box ID (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	// Truncate if too long
	boxID := info.BoxID
	if pdf.GetStringWidth(boxID) > textW {
		for len(boxID) > 0 && pdf.GetStringWidth(boxID+"...") > textW {
			boxID = boxID[:len(boxID)-1]
		}
		boxID += "..."
	}
	pdf.CellFormat(textW, 4.5, boxID, "", 1, "L", false, 0, "")

	// Dimensions and weight
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%d x %d x %d cm, %d kg", info.Length, info.Width, info.Height, info.Weight)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	// Truck and destination
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	routeInfo := fmt.Sprintf("%s -> %s", info.Truck, info.Destination)
	pdf.CellFormat(textW, 3, routeInfo, "", 1, "L", false, 0, "")

	// Placement position
	pdf.SetXY(textX, y+labelPadding+12.5)
	posInfo := fmt.Sprintf("%s @ (%d, %d, %d)", info.Name, info.X, info.Y, info.Z)
	pdf.CellFormat(textW, 3, posInfo, "", 0, "L", false, 0, "")

	// Reset text color
	pdf.SetTextColor(0, 0, 0)

	return nil
}
