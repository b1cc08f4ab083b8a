// Package report renders timesheets into shareable documents.
package report

import (
	"fmt"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/go-pdf/fpdf"
)

// WriteTimesheetPDF writes a weekly timesheet report to path: a header with
// the week range and status, one table row per entry, and a totals summary.
func WriteTimesheetPDF(path string, ts *domain.Timesheet, entries []*domain.TimeEntry) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Timesheet %s - %s",
		ts.WeekStart.Format("Jan 2"), ts.WeekEnd.Format("Jan 2, 2006")))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", ts.Status))
	pdf.Ln(12)

	// Column layout in mm.
	const (
		colDay      = 28.0
		colInterval = 34.0
		colDuration = 24.0
		colBillable = 22.0
		colNote     = 82.0
		rowH        = 7.0
	)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(colDay, rowH, "Day", "B", 0, "", false, 0, "")
	pdf.CellFormat(colInterval, rowH, "Time", "B", 0, "", false, 0, "")
	pdf.CellFormat(colDuration, rowH, "Duration", "B", 0, "", false, 0, "")
	pdf.CellFormat(colBillable, rowH, "Billable", "B", 0, "", false, 0, "")
	pdf.CellFormat(colNote, rowH, "Description", "B", 1, "", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, e := range entries {
		billable := "no"
		if e.Billable {
			billable = "yes"
		}
		note := e.Description
		if len(note) > 48 {
			note = note[:45] + "..."
		}
		pdf.CellFormat(colDay, rowH, e.StartTime.Format("Mon Jan 2"), "", 0, "", false, 0, "")
		pdf.CellFormat(colInterval, rowH, fmt.Sprintf("%s - %s",
			e.StartTime.Format("15:04"), e.EndTime.Format("15:04")), "", 0, "", false, 0, "")
		pdf.CellFormat(colDuration, rowH, formatHours(e.Hours()), "", 0, "R", false, 0, "")
		pdf.CellFormat(colBillable, rowH, billable, "", 0, "", false, 0, "")
		pdf.CellFormat(colNote, rowH, note, "", 1, "", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %s", formatHours(ts.TotalHours)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Billable: %s", formatHours(ts.BillableHours)))

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing timesheet pdf: %w", err)
	}
	return nil
}

func formatHours(h float64) string {
	return fmt.Sprintf("%.2f h", h)
}
