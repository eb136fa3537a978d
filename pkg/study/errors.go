package study

import "fmt"

// StorageError represents an error from a storage backend.
type StorageError struct {
	Backend    string // Storage backend type ("sqlite", "memory")
	Collection string // Collection involved, if any
	Operation  string // Operation that failed ("put", "list", "count", etc.)
	Cause      error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Collection != "" {
		return fmt.Sprintf("storage error [backend=%s, collection=%s, operation=%s]: %v",
			e.Backend, e.Collection, e.Operation, e.Cause)
	}
	return fmt.Sprintf("storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, collection, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:    backend,
		Collection: collection,
		Operation:  operation,
		Cause:      cause,
	}
}
