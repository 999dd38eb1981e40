package store

import "fmt"

// ValidationError indicates user input that was rejected before anything
// was written to disk.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// InvalidOperationError indicates an action the current state does not
// allow, such as deleting the active profile or editing an archived month.
type InvalidOperationError struct {
	Op     string
	Reason string
}

func (e InvalidOperationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// StorageError wraps a failure to read or write a document. Load functions
// that return a *StorageError still return a usable default document so the
// caller can keep working and surface a warning.
type StorageError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
