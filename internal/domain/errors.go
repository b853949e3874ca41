package domain

import "errors"

// ErrMetadataLookupFailed indicates yt-dlp could not describe the media (tool error or timeout)
var ErrMetadataLookupFailed = errors.New("metadata lookup failed")

// ErrFormatNotFound indicates the requested format id is absent from the metadata
var ErrFormatNotFound = errors.New("format not found")

var ErrProcessLaunchFailed = errors.New("process launch failed")

var ErrProcessExitedNonZero = errors.New("process exited non-zero")

// ErrUnexpectedWorker is the catch-all for anything else that ends a job, panics included
var ErrUnexpectedWorker = errors.New("unexpected worker error")

// JobError tags an error with one of the sentinels above while keeping the
// underlying message, which is what ends up in the failed record.
type JobError struct {
	Kind error
	Err  error
}

func NewJobError(kind, err error) *JobError {
	return &JobError{Kind: kind, Err: err}
}

func (e *JobError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Err.Error()
}

func (e *JobError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
