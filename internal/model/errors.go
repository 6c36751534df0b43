package model

import "errors"

var (
	// ErrNotFound is returned when a record id does not exist in the collection.
	ErrNotFound = errors.New("record not found")
	// ErrOffline is returned by an explicit refresh while the gate reports
	// the network unreachable. Create never returns it; it degrades to a
	// placeholder instead.
	ErrOffline = errors.New("network unreachable")
	// ErrCorruptData is returned when the stored history payload is not a
	// JSON array.
	ErrCorruptData = errors.New("corrupt history payload")
	// ErrEmptyExport is returned when an export is requested on an empty
	// collection.
	ErrEmptyExport = errors.New("nothing to export")
	// ErrSensorUnavailable wraps location sensor failures.
	ErrSensorUnavailable = errors.New("location sensor unavailable")
)
