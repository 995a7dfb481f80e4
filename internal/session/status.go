package session

// Status tracks where an image sits in the edit/save lifecycle.
//
// Every image starts FRESH. Any successful region mutation moves it to
// EDITED; a successful persist moves it to SAVED; mutating a SAVED image
// makes it EDITED again. Navigation never changes a status, and failed
// no-op mutations (undo on an empty store, editing a missing id) leave it
// alone too.
type Status int

const (
	StatusFresh Status = iota
	StatusEdited
	StatusSaved
)

func (s Status) String() string {
	switch s {
	case StatusFresh:
		return "FRESH"
	case StatusEdited:
		return "EDITED"
	case StatusSaved:
		return "SAVED"
	default:
		return "UNKNOWN"
	}
}
