package store

import "errors"

// Sentinel errors for task store operations.
var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrFileNotFound    = errors.New("task file not found")
	ErrFileIO          = errors.New("task file i/o error")
)
