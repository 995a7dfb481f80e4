// Package session owns the lifecycle of a labeling run: which images are in
// the batch, which one is being edited, what state each is in and how an
// image's regions get persisted.
//
// Each image is an Entry wrapping its region store; the Batch holds the
// entries and the navigation cursor. Statuses move along
// FRESH -> EDITED -> SAVED, with any mutation of a SAVED image dirtying it
// back to EDITED. Persisting goes through a Persister so the session logic
// stays independent of how exports are written to disk.
package session
