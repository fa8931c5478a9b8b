package introspect

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means no class file exists for the requested name.
	ErrNotFound = errors.New("class not found")
	// ErrLinkage means the class refers to a type outside the boot graph.
	ErrLinkage = errors.New("linkage error")
	// ErrFiltered means the class exists but is not part of the public API.
	ErrFiltered = errors.New("class filtered")
)

// ResolveError is returned when a class cannot be loaded. It is recoverable:
// the class is skipped and extraction continues.
type ResolveError struct {
	Class string
	Err   error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s: %v", e.Class, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// FilteredError is returned for classes excluded by the visibility rules.
type FilteredError struct {
	Class  string
	Reason string
}

func (e *FilteredError) Error() string {
	return fmt.Sprintf("%s: %s", e.Class, e.Reason)
}

func (e *FilteredError) Unwrap() error { return ErrFiltered }
