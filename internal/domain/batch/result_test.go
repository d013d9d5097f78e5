package batch

import (
	"errors"
	"testing"
)

func TestResults(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name   string
		result Result
		id     string
		status ItemStatus
		err    error
	}{
		{"ok", NewOK("e-1"), "e-1", StatusOK, nil},
		{"error", NewError("e-2", boom), "e-2", StatusError, boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.result.ID() != tt.id {
				t.Errorf("ID() = %q, want %q", tt.result.ID(), tt.id)
			}
			if tt.result.Status() != tt.status {
				t.Errorf("Status() = %q, want %q", tt.result.Status(), tt.status)
			}
			if !errors.Is(tt.result.Err(), tt.err) {
				t.Errorf("Err() = %v, want %v", tt.result.Err(), tt.err)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	results := []Result{
		NewOK("a"),
		NewError("b", errors.New("invalid")),
		NewOK("c"),
	}

	ok, failed := Summary(results)
	if ok != 2 || failed != 1 {
		t.Errorf("Summary() = (%d, %d), want (2, 1)", ok, failed)
	}

	ok, failed = Summary(nil)
	if ok != 0 || failed != 0 {
		t.Errorf("Summary(nil) = (%d, %d), want (0, 0)", ok, failed)
	}
}
