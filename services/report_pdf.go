package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

type ReportTicket struct {
	Title     string
	Status    string
	Priority  string
	CreatedAt time.Time
}

type PersonnelReport struct {
	Name    string
	Tickets []ReportTicket
}

// RenderTopPersonnelPDF builds the downloadable report: one section per
// personnel, one table row per assigned ticket.
func RenderTopPersonnelPDF(personnel []PersonnelReport) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "Top Personnel Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	colWidths := []float64{70, 30, 30, 50}
	headers := []string{"Title", "Status", "Priority", "Created At"}

	for _, p := range personnel {
		pdf.SetFont("Arial", "B", 13)
		pdf.SetTextColor(33, 150, 243)
		pdf.CellFormat(0, 10, fmt.Sprintf("%s - %d assigned tickets", p.Name, len(p.Tickets)), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)

		pdf.SetFont("Arial", "B", 11)
		pdf.SetFillColor(52, 58, 64)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range headers {
			pdf.CellFormat(colWidths[i], 8, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 11)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFillColor(255, 255, 255)
		for _, t := range p.Tickets {
			pdf.CellFormat(colWidths[0], 8, t.Title, "1", 0, "C", false, 0, "")
			pdf.CellFormat(colWidths[1], 8, t.Status, "1", 0, "C", false, 0, "")
			pdf.CellFormat(colWidths[2], 8, t.Priority, "1", 0, "C", false, 0, "")
			pdf.CellFormat(colWidths[3], 8, t.CreatedAt.Format("02.01.2006 15:04"), "1", 0, "C", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
