package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/circlemark/circlemark/internal/session"
)

// WriteSummaryCSV writes the end-of-session report: one row per batch image
// with its region count and labels, then a TOTAL row with the aggregate
// counters. A session where nothing was edited still produces a valid file.
func WriteSummaryCSV(w io.Writer, s session.Summary) error {
	cw := csv.NewWriter(w)

	cw.Write([]string{"image_name", "defect_count", "defect_labels"})
	for _, img := range s.Images {
		cw.Write([]string{
			img.Name,
			strconv.Itoa(img.Regions),
			strings.Join(img.Labels, "; "),
		})
	}
	cw.Write([]string{
		"TOTAL",
		strconv.Itoa(s.TotalRegions),
		fmt.Sprintf("images=%d edited=%d saved=%d", s.TotalImages, s.EditedImages, s.SavedImages),
	})

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write summary csv: %w", err)
	}
	return nil
}

// WriteSummaryJSON writes the same report in machine-readable form.
func WriteSummaryJSON(w io.Writer, s session.Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
