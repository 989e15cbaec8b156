package reports

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"perfdash/internal/domain/dashboard"
)

func newDocument(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	return pdf
}

func headerRow(pdf *gofpdf.Fpdf, widths []float64, labels []string) {
	pdf.SetFont("Helvetica", "B", 10)
	for i, label := range labels {
		pdf.CellFormat(widths[i], 8, label, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
}

func render(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// UserDashboardPDF renders a single user's scorecard.
func UserDashboardPDF(d dashboard.UserDashboard) ([]byte, error) {
	pdf := newDocument("Performance Dashboard")
	pdf.Cell(0, 7, fmt.Sprintf("User: %s (%s)", d.UserName, d.UserAlias))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Job title: %s, level %s", d.JobTitle, d.StaffLevel))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Supervisor: %s", d.Supervisor))
	pdf.Ln(10)

	widths := []float64{60, 35, 35, 30, 25}
	headerRow(pdf, widths, []string{"Metric", "Target", "Actual", "Attainment", "Type"})
	for _, m := range d.Metrics {
		pdf.CellFormat(widths[0], 7, m.DisplayName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, formatValue(m.AnnualTarget, m.MetricType), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, formatValue(m.ActualValue, m.MetricType), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, fmt.Sprintf("%.1f%%", m.AttainmentPercent), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, m.MetricType, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}
	return render(pdf)
}

// TeamDashboardPDF renders the manager roll-up with one row per member.
func TeamDashboardPDF(d dashboard.TeamDashboard) ([]byte, error) {
	pdf := newDocument("Team Dashboard")
	pdf.Cell(0, 7, fmt.Sprintf("Manager: %s", d.ManagerAlias))
	pdf.Ln(6)
	s := d.TeamSummary
	pdf.Cell(0, 7, fmt.Sprintf("Members: %d, average attainment %.1f%%", s.TotalMembers, s.AvgAttainment))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("On track: %d, at risk: %d", s.MembersOnTrack, s.MembersAtRisk))
	pdf.Ln(10)

	widths := []float64{30, 50, 55, 30, 20}
	headerRow(pdf, widths, []string{"Alias", "Name", "Job title", "Attainment", "Metrics"})
	for _, m := range d.TeamMembers {
		pdf.CellFormat(widths[0], 7, m.UserAlias, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, m.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, m.JobTitle, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 7, fmt.Sprintf("%.1f%%", m.OverallAttainment), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, fmt.Sprintf("%d", m.MetricsCount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	return render(pdf)
}

func formatValue(v float64, metricType string) string {
	switch metricType {
	case dashboard.MetricTypeCurrency:
		return fmt.Sprintf("$%.0f", v)
	case dashboard.MetricTypePercentage:
		return fmt.Sprintf("%.1f%%", v)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
