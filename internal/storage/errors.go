package storage

import "errors"

// Storage errors shared by all dataset stores.
var (
	// ErrNotFound is returned when a requested dataset does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when inserting a dataset whose key already
	// exists. Published results are immutable; stores do not allow updates.
	ErrDuplicateKey = errors.New("duplicate key: published results are immutable")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)
