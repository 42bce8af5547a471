package service

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")

	ErrHighlightNotFound = errors.New("highlight not found")
	ErrHighlightExists   = errors.New("highlight already exists")
	ErrNothingSelected   = errors.New("no highlight selected")

	ErrVideoNotFound   = errors.New("video file not found")
	ErrUnsupportedMime = errors.New("unsupported mime-type")

	ErrNoVideo      = errors.New("no video imported")
	ErrNoHighlights = errors.New("no highlights to export")
)
