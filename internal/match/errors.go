package match

import "errors"

var (
	// ErrInvalidConfiguration marks an engine option outside its valid
	// domain. It is raised before any pair is scored.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrMissingEntity marks a scored pair referencing an identifier absent
	// from the snapshot. It indicates an inconsistent snapshot on the caller
	// side and aborts the whole run; it is never skipped silently.
	ErrMissingEntity = errors.New("missing entity")
)
