package domain

import "errors"

// Common domain errors
var (
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate is returned when a storage uniqueness constraint rejects a write
	ErrDuplicate = errors.New("resource already exists")
	// ErrFileNotFound is returned by a ResumeStore when the object is absent
	ErrFileNotFound = errors.New("file not found")
)
