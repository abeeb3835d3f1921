// Package reporting renders detection summaries for offline review.
package reporting

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/Parfait-17/Detection-droneV3/internal/core/domain"
)

// PDFExporter renders a run's detections to PDF.
type PDFExporter struct{}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ExportSummary generates a detection summary: run header, per-path counts
// and one table row per session.
func (e *PDFExporter) ExportSummary(detections []domain.Detection, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	e.addHeader(pdf, generatedAt)
	e.addCounts(pdf, detections)
	e.addTable(pdf, detections)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, generatedAt time.Time) {
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 12, "Remote ID Detection Summary", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(6)
}

func (e *PDFExporter) addCounts(pdf *gofpdf.Fpdf, detections []domain.Detection) {
	standard, pattern := 0, 0
	for _, det := range detections {
		if det.Record.Source == domain.SourcePattern {
			pattern++
		} else {
			standard++
		}
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, fmt.Sprintf("Sessions: %d  (standards path: %d, pattern path: %d)",
		len(detections), standard, pattern), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (e *PDFExporter) addTable(pdf *gofpdf.Fpdf, detections []domain.Detection) {
	headers := []string{"UAS ID", "Type", "MAC", "Position", "Frames", "Last Seen"}
	widths := []float64{48, 26, 34, 42, 14, 26}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 235, 245)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, det := range detections {
		pos := "-"
		if det.Record.HasPosition() {
			pos = fmt.Sprintf("%.5f, %.5f", *det.Record.Latitude, *det.Record.Longitude)
		}
		row := []string{
			truncate(det.Record.UASID, 28),
			det.Record.UASIDType.String(),
			det.SourceMAC,
			pos,
			fmt.Sprintf("%d", det.Frames),
			det.LastSeen.Format("15:04:05"),
		}
		for i, cell := range row {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
