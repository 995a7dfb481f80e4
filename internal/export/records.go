package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/circlemark/circlemark/internal/session"
)

// Record is one region in the per-image report. It is the stable wire form:
// both the JSON file and the text table are built from the same records.
type Record struct {
	ID          int    `json:"id"`
	Label       string `json:"label"`
	EffectKind  string `json:"effect_kind"`
	Center      [2]int `json:"center"`
	Radius      int    `json:"radius"`
	SourceImage string `json:"source_image"`
	Timestamp   string `json:"timestamp"`
}

// Exporter builds persistence records from session snapshots.
//
// Clock supplies the export timestamp; it exists so tests can pin time and
// get byte-identical output. NewExporter wires the real clock.
type Exporter struct {
	Clock func() time.Time
}

// NewExporter returns an exporter stamping records with the current time.
func NewExporter() *Exporter {
	return &Exporter{Clock: time.Now}
}

// Records flattens a snapshot into records, one per region in creation
// order. All records of one call share a single RFC 3339 timestamp.
func (e *Exporter) Records(snap session.Snapshot) []Record {
	ts := e.now().UTC().Format(time.RFC3339)
	recs := make([]Record, 0, len(snap.Regions))
	for _, r := range snap.Regions {
		recs = append(recs, Record{
			ID:          r.ID,
			Label:       r.Label,
			EffectKind:  string(r.Kind),
			Center:      [2]int{r.Center.X, r.Center.Y},
			Radius:      r.Radius,
			SourceImage: snap.Source.Name,
			Timestamp:   ts,
		})
	}
	return recs
}

func (e *Exporter) now() time.Time {
	if e.Clock != nil {
		return e.Clock()
	}
	return time.Now()
}

// WriteRecords writes the records as an indented JSON array. The output is
// a pure function of the records, so exporting the same snapshot twice
// with the same clock produces identical bytes.
func WriteRecords(w io.Writer, recs []Record) error {
	if recs == nil {
		recs = []Record{}
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}
