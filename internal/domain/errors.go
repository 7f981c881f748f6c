package domain

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrConnect is returned when the outbound connection cannot be opened.
	ErrConnect = errors.New("felfship: connect failed")

	// ErrShortRead is returned when the peer closes or a read fails before
	// the requested byte count has arrived.
	ErrShortRead = errors.New("felfship: short read")

	// ErrPayloadTooLarge is returned when the declared length exceeds the configured cap.
	ErrPayloadTooLarge = errors.New("felfship: payload too large")

	// ErrAllocationFailed is returned when executable memory cannot be mapped.
	ErrAllocationFailed = errors.New("felfship: allocation failed")

	// ErrAddressMismatch is returned when the operating system granted
	// memory at an address other than the one requested.
	ErrAddressMismatch = errors.New("felfship: allocation address mismatch")

	// ErrUnsupportedPlatform is returned when fixed mapping or dispatch is
	// not implemented for the running OS and architecture.
	ErrUnsupportedPlatform = errors.New("felfship: unsupported platform")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("felfship: invalid configuration")

	// ErrInvalidTransition is returned when a stage change would move the
	// pipeline backwards, skip a stage or leave a terminal stage.
	ErrInvalidTransition = errors.New("felfship: invalid stage transition")
)

// TransportError is a failure to connect to or read from the controller.
type TransportError struct {
	Stage Stage
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.Stage, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError is a payload rejected by the container validator.
type ProtocolError struct {
	Stage Stage
	Err   error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol: %s: %v", e.Stage, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// ResourceError is a failure to obtain the executable region.
type ResourceError struct {
	Stage Stage
	Err   error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource: %s: %v", e.Stage, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// MismatchError reports a grant at the wrong address. It matches both
// ErrAddressMismatch and ErrAllocationFailed.
type MismatchError struct {
	Want uintptr
	Got  uintptr
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%v: requested %#x, got %#x", ErrAddressMismatch, e.Want, e.Got)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrAddressMismatch || target == ErrAllocationFailed
}

// Errno returns the operating system error number carried by err, if any.
func Errno(err error) (syscall.Errno, bool) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno, true
	}
	return 0, false
}

// StageOf returns the stage recorded by the error class wrapping err.
func StageOf(err error) (Stage, bool) {
	var (
		te *TransportError
		pe *ProtocolError
		re *ResourceError
	)
	switch {
	case errors.As(err, &te):
		return te.Stage, true
	case errors.As(err, &pe):
		return pe.Stage, true
	case errors.As(err, &re):
		return re.Stage, true
	}
	return 0, false
}
