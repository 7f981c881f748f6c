package domain

import (
	"errors"
	"fmt"
	"syscall"
	"testing"
)

func TestStage_String(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{StageConnecting, "Connecting"},
		{StageAwaitingLength, "AwaitingLength"},
		{StageReadingPayload, "ReadingPayload"},
		{StageValidating, "Validating"},
		{StageAllocating, "Allocating"},
		{StageCopying, "Copying"},
		{StageDispatched, "Dispatched"},
		{StageAborted, "Aborted"},
		{Stage(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.want {
			t.Errorf("Stage(%d).String() = %s, want %s", tt.stage, got, tt.want)
		}
	}
}

func TestStage_CanTransition(t *testing.T) {
	for s := StageConnecting; s < StageDispatched; s++ {
		if !s.CanTransition(s + 1) {
			t.Errorf("%s -> %s rejected", s, s+1)
		}
		if !s.CanTransition(StageAborted) {
			t.Errorf("%s -> Aborted rejected", s)
		}
		if s.CanTransition(s) {
			t.Errorf("%s -> %s accepted", s, s)
		}
		if s > StageConnecting && s.CanTransition(s-1) {
			t.Errorf("%s -> %s accepted", s, s-1)
		}
	}
	if StageConnecting.CanTransition(StageValidating) {
		t.Error("skipping stages accepted")
	}
	for _, s := range []Stage{StageDispatched, StageAborted} {
		if s.CanTransition(StageAborted) || s.CanTransition(StageConnecting) {
			t.Errorf("transition out of terminal %s accepted", s)
		}
	}
}

func TestMismatchError(t *testing.T) {
	err := fmt.Errorf("map: %w", &MismatchError{Want: 0x400000, Got: 0x7f0000})
	if !errors.Is(err, ErrAddressMismatch) {
		t.Error("not ErrAddressMismatch")
	}
	if !errors.Is(err, ErrAllocationFailed) {
		t.Error("not ErrAllocationFailed")
	}
	if errors.Is(err, ErrShortRead) {
		t.Error("matched unrelated sentinel")
	}
}

func TestErrorClasses(t *testing.T) {
	err := error(&ResourceError{Stage: StageAllocating, Err: fmt.Errorf("%w: %w", ErrAllocationFailed, syscall.EEXIST)})

	var re *ResourceError
	if !errors.As(err, &re) || re.Stage != StageAllocating {
		t.Fatalf("errors.As ResourceError failed: %v", err)
	}
	if !errors.Is(err, ErrAllocationFailed) {
		t.Error("not ErrAllocationFailed")
	}
	errno, ok := Errno(err)
	if !ok || errno != syscall.EEXIST {
		t.Errorf("Errno() = %v, %v", errno, ok)
	}
	if _, ok := Errno(&TransportError{Stage: StageReadingPayload, Err: ErrShortRead}); ok {
		t.Error("Errno found on error without one")
	}
}

func TestStageOf(t *testing.T) {
	tests := []struct {
		err    error
		want   Stage
		wantOK bool
	}{
		{&TransportError{Stage: StageAwaitingLength, Err: ErrShortRead}, StageAwaitingLength, true},
		{fmt.Errorf("run: %w", &ProtocolError{Stage: StageValidating, Err: errors.New("bad")}), StageValidating, true},
		{&ResourceError{Stage: StageAllocating, Err: ErrAllocationFailed}, StageAllocating, true},
		{ErrInvalidConfig, 0, false},
	}
	for _, tt := range tests {
		got, ok := StageOf(tt.err)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("StageOf(%v) = %s, %v; want %s, %v", tt.err, got, ok, tt.want, tt.wantOK)
		}
	}
}
