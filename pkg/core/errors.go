package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrNoteNotFound     = errors.New("note not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrDuplicateTag     = errors.New("tag already present on note")
	ErrEmptyTag         = errors.New("tag cannot be empty")
	ErrEmptyContent     = errors.New("note content is empty")
)

// StorageError reports a failure of the persistent store.
// The in-memory state stays authoritative when one is returned.
type StorageError struct {
	Op    string
	Table string
	Err   error
}

func (e *StorageError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError wraps err, returning nil when err is nil.
func NewStorageError(op, table string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Table: table, Err: err}
}

// IsStorageError reports whether err came from the persistent store.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// UnsupportedFileError rejects an import whose extension is not accepted.
type UnsupportedFileError struct {
	Name string
	Ext  string
}

func (e *UnsupportedFileError) Error() string {
	return fmt.Sprintf("unsupported file %q: only .txt and .md files can be imported", e.Name)
}
