package invoices

import "fmt"

// NotFoundError reports an operation against an ID with no stored record.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("invoice %s not found", e.ID)
}

// ValidationError reports a record that cannot be acted on as supplied.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// StorageError wraps a persistence read/write failure. The in-memory model is
// never mutated when one is returned.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
