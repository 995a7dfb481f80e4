// Package export turns session state into files: per-image region records
// as JSON and as an aligned text table, and the end-of-session batch
// summary as CSV and JSON.
//
// Exports are deterministic. The only non-pure input is the timestamp,
// which comes from the Exporter's Clock field; with a pinned clock,
// exporting the same snapshot twice produces byte-identical output in every
// format.
package export
