package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestJobErrorKeepsMessageAndKind(t *testing.T) {
	cause := fmt.Errorf("format not found: %s", "137")
	err := fmt.Errorf("resolve: %w", NewJobError(ErrFormatNotFound, cause))

	if !errors.Is(err, ErrFormatNotFound) {
		t.Fatalf("expected ErrFormatNotFound in chain")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause in chain")
	}
	var jobErr *JobError
	if !errors.As(err, &jobErr) {
		t.Fatalf("expected *JobError in chain")
	}
	if jobErr.Error() != "format not found: 137" {
		t.Fatalf("unexpected message %q", jobErr.Error())
	}
}

func TestJobErrorWithoutCause(t *testing.T) {
	err := NewJobError(ErrUnexpectedWorker, nil)
	if err.Error() != ErrUnexpectedWorker.Error() {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, ErrUnexpectedWorker) {
		t.Fatalf("expected kind in chain")
	}
}

func TestJobStatusClassification(t *testing.T) {
	tests := []struct {
		status   JobStatus
		terminal bool
		active   bool
	}{
		{StatusPending, false, false},
		{StatusDownloading, false, true},
		{StatusConverting, false, true},
		{StatusCompleted, true, false},
		{StatusFailed, true, false},
		{StatusNotFound, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.terminal {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.terminal)
			}
			if got := tt.status.IsActive(); got != tt.active {
				t.Errorf("IsActive() = %v, want %v", got, tt.active)
			}
		})
	}
}
