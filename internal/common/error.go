// Package common defines sentinel errors shared by the repositories, the
// data sync engine and the host process. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Data sync run errors. Every one of them aborts the whole run.
	ErrResourceNotFound = errors.New("data sync resource not found")
	ErrParse            = errors.New("data sync document is not valid JSON")
	ErrPersistence      = errors.New("data sync persistence failure")
)
