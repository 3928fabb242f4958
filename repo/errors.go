package repo

import "fmt"

// ValidationError blocks a submission: a required subject attribute is
// malformed or missing.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// SyncWriteError reports a failed remote write after the optimistic local
// mutation has already been applied. Local state is not rolled back; the
// caller decides whether to retry or call Load.
type SyncWriteError struct {
	Op  string
	Err error
}

func (e *SyncWriteError) Error() string {
	return fmt.Sprintf("remote %s write failed: %s", e.Op, e.Err)
}

func (e *SyncWriteError) Unwrap() error { return e.Err }

// SyncFetchError reports a failed snapshot fetch. Previously cached data
// stays in place and continues to be served.
type SyncFetchError struct {
	Err error
}

func (e *SyncFetchError) Error() string {
	return fmt.Sprintf("snapshot fetch failed: %s", e.Err)
}

func (e *SyncFetchError) Unwrap() error { return e.Err }
