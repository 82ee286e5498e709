// Package export renders filtered report sets as a paginated PDF document or
// a flat CSV table.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/hollisk/backoffice/internal/apperr"
	"github.com/hollisk/backoffice/internal/model"
)

// Layout constants, in points. Every report occupies a fixed-height slot:
// three lines at +0/+20/+40 inside an 80pt block. Slots never reflow to
// content; text longer than a line is clipped to its slot.
const (
	marginX    = 100.0
	titleY     = 100.0
	bodyTop    = 150.0
	slotHeight = 80.0
	bottomPad  = 60.0
)

// dateLayout renders a calendar date without a time component.
const dateLayout = "January 2, 2006"

// WritePDF renders the reports into a paginated PDF under dir and returns the
// generated filename. The first page carries the title block; a new page
// starts whenever the next slot would run past the page body. An empty input
// produces a title-only document.
func WritePDF(reports []model.Report, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", apperr.Format(fmt.Errorf("create export dir: %w", err))
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	_, pageH := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(marginX, titleY, "Reports Export")
	pdf.SetFont("Helvetica", "", 12)

	y := bodyTop
	for i, r := range reports {
		if y+slotHeight > pageH-bottomPad {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", 12)
			y = titleY
		}
		pdf.Text(marginX, y, fmt.Sprintf("Report %d: %s", i+1, r.Title))
		pdf.Text(marginX, y+20, "Type: "+r.Type)
		pdf.Text(marginX, y+40, "Created: "+r.CreatedAt.Format(dateLayout))
		y += slotHeight
	}

	filename := PDFFilename(time.Now())
	if err := pdf.OutputFileAndClose(filepath.Join(dir, filename)); err != nil {
		return "", apperr.Format(fmt.Errorf("write pdf: %w", err))
	}
	return filename, nil
}

// PDFFilename derives the export filename from the generation instant.
func PDFFilename(t time.Time) string {
	return fmt.Sprintf("reports-%d.pdf", t.UnixMilli())
}
