package database

import "errors"

var (
	// ErrDBClosed is returned by every operation after Close
	ErrDBClosed = errors.New("store is closed")

	// ErrKeyNotFound is returned by Read for a key with no entry
	ErrKeyNotFound = errors.New("no entry for key")
)
