package storage

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrProjectCorrupt  = errors.New("project state corrupt")
)
