package types

import (
	"errors"
	"fmt"
)

// ErrNoInput is returned when a scan is started without any paths.
var ErrNoInput = errors.New("no input paths")

// InputError is a status failure on a command-line argument. It aborts the run.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("cannot stat %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// TraversalError means a directory could not be listed; its contents are skipped.
type TraversalError struct {
	Path string
	Err  error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("cannot read directory %s: %v", e.Path, e.Err)
}

func (e *TraversalError) Unwrap() error { return e.Err }

// HashOp names the step of hashing that failed.
type HashOp string

const (
	HashOpOpen HashOp = "open"
	HashOpRead HashOp = "read"
)

// HashError means a file could not be hashed; it is left out of the index.
type HashError struct {
	Path string
	Op   HashOp
	Err  error
}

func (e *HashError) Error() string {
	return fmt.Sprintf("failed to %s file %s: %v", e.Op, e.Path, e.Err)
}

func (e *HashError) Unwrap() error { return e.Err }
