package store

import "fmt"

// StorageError reports a progress file that could not be read, parsed or
// written. An absent file is not a StorageError.
type StorageError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s progress %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
