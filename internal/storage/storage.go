package storage

import "errors"

var (
	ErrNotConfigured = errors.New("storage is not configured")
)
