// Package editor implements the interactive labeling loop.
//
// The editor reads line commands from an input stream and applies them to
// the batch entry under the cursor: dragging out circles, assigning
// labels, switching effect modes, moving the view, and persisting
// annotated images with their record files. It is the only writer of
// session state; the packages below it (region, session, render, export)
// carry no interaction concerns.
//
// # Commands
//
// One command per line, long names with single-letter shortcuts:
//
//	press X Y / drag X Y / release X Y   pointer model, commit on release
//	draw X0 Y0 X1 Y1                     one-shot press+release
//	mode NAME|1..7                       effect kind for new regions
//	undo list clear edit labels          region operations
//	zoom in|out [X Y], pan, reset, fit   view control
//	next prev                            batch navigation
//	save [next], snapshot PATH           persistence
//	status mem help quit                 session
//
// Coordinates are display coordinates; the view transform resolves them
// to image space before anything is stored, so regions stay put however
// the view is zoomed or panned afterwards.
//
// # Label sub-state
//
// Committing a circle or starting a label edit puts the loop into a modal
// sub-state where the next input line is consumed verbatim as the label,
// spaces included. An empty line commits the region unchanged, which for
// a freshly drawn region means an empty label. No command parsing happens
// while a label is pending.
//
// # Output
//
// Responses go to the configured writer, one message per command. Saving
// writes the annotated image plus <name>.json and <name>.txt records into
// the output directory; quitting (or end of input) writes summary.csv and
// summary.json over the whole batch. A failed save reports the error and
// leaves the entry edited so the save can simply be retried.
package editor
