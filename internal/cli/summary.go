package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/athul8raj/cargo-planning/internal/model"
)

var (
	styleHeader   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleTruck    = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	styleNumber   = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	styleWarning  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleAllClear = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
)

// renderSummary formats the per-truck outcome table shown on stdout.
func renderSummary(plan model.PlanResult) string {
	var b strings.Builder

	b.WriteString(styleHeader.Render("Packing summary"))
	b.WriteString("\n")

	for _, tr := range plan.Trucks {
		line := fmt.Sprintf("  %s  %s boxes  %s m3 residual  %s%% utilized",
			styleTruck.Render(fmt.Sprintf("%-10s", tr.Truck.Name)),
			styleNumber.Render(fmt.Sprintf("%4d", len(tr.Placed))),
			styleNumber.Render(fmt.Sprintf("%8.3f", tr.ResidualVolume)),
			styleNumber.Render(fmt.Sprintf("%5.1f", tr.Utilization())))
		b.WriteString(line)
		b.WriteString("\n")
	}

	if n := plan.UnpackedCount(); n > 0 {
		b.WriteString(styleWarning.Render(fmt.Sprintf("  %d boxes could not be packed", n)))
	} else {
		b.WriteString(styleAllClear.Render("  all boxes packed"))
	}
	return b.String()
}
