package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"waste-retrieval-api-server/internal/models"
)

// ContentType of the files produced by WriteCSV.
const ContentType = "text/csv"

var header = []string{"id", "type", "location", "timestamp", "displayTime", "userId", "user"}

// WriteCSV writes one row per view, in the order given.
func WriteCSV(w io.Writer, views []models.RetrievalView) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, v := range views {
		row := []string{
			v.ID,
			string(v.WasteType),
			v.Location,
			v.Timestamp.UTC().Format(time.RFC3339),
			v.DisplayTime,
			v.UserID,
			v.DisplayUser,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ObjectKey names an export. filter is the waste type or "all".
func ObjectKey(generatedAt time.Time, filter, suffix string) string {
	return fmt.Sprintf("exports/retrievals-%s-%s-%s.csv", filter, generatedAt.UTC().Format("20060102T150405Z"), suffix)
}
