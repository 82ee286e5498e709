package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/hollisk/backoffice/internal/apperr"
	"github.com/hollisk/backoffice/internal/model"
)

// TimestampLayout is the stored timestamp representation carried through to
// CSV output unreformatted.
const TimestampLayout = time.RFC3339

// WriteCSV serializes the reports to CSV: a header row followed by one row
// per report projecting exactly title, type, created_at in input order. An
// empty input yields a header-only payload. The second return value is the
// generated filename; the payload is not persisted.
func WriteCSV(reports []model.Report) ([]byte, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := make([][]string, 0, len(reports)+1)
	records = append(records, []string{"title", "type", "created_at"})
	for _, r := range reports {
		records = append(records, []string{r.Title, r.Type, r.CreatedAt.Format(TimestampLayout)})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, "", apperr.Format(fmt.Errorf("write csv: %w", err))
	}

	return buf.Bytes(), CSVFilename(time.Now()), nil
}

// CSVFilename derives the export filename from the generation instant.
func CSVFilename(t time.Time) string {
	return fmt.Sprintf("reports-%d.csv", t.UnixMilli())
}
