package engine

import "fmt"

// StageError reports a failed pipeline stage during a batch build. It aborts
// the run; no partial output is promised.
type StageError struct {
	Detail string
}

func (e *StageError) Error() string {
	return fmt.Sprintf("build failed:\n%s", e.Detail)
}

// CycleError reports a single failed rebuild during watch mode. It is
// recoverable: the session stays alive and waits for the next change.
type CycleError struct {
	Detail string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("rebuild failed: %s", e.Detail)
}

// FatalError reports an unrecoverable watch session failure. It terminates
// the whole process.
type FatalError struct {
	Detail string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("watch session failed: %s", e.Detail)
}

// CleanupError reports a failure to clear the output folder before a batch
// build.
type CleanupError struct {
	Path string
	Err  error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("failed to clean output folder %s: %v", e.Path, e.Err)
}

func (e *CleanupError) Unwrap() error { return e.Err }
