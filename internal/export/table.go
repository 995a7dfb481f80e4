package export

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteTable writes the records as an aligned text table, the
// human-readable twin of the JSON export. Every record field appears as a
// column so the two forms carry exactly the same information.
func WriteTable(w io.Writer, recs []Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tLABEL\tEFFECT\tCENTER\tRADIUS\tSOURCE\tTIMESTAMP")
	for _, r := range recs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t(%d, %d)\t%d\t%s\t%s\n",
			r.ID, r.Label, r.EffectKind, r.Center[0], r.Center[1], r.Radius, r.SourceImage, r.Timestamp)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}
