package felf

import "errors"

// Container errors. Parse and Decode return these wrapped in a *FormatError,
// so callers can test with errors.Is.
var (
	// ErrTooShort is returned when the container is shorter than the header.
	ErrTooShort = errors.New("felf: container shorter than header")

	// ErrBadMagic is returned when the first 8 bytes are not "FELF0001".
	ErrBadMagic = errors.New("felf: bad magic")

	// ErrUnsupportedAddressWidth is returned when an address does not fit in 32 bits.
	ErrUnsupportedAddressWidth = errors.New("felf: unsupported 64-bit address")

	// ErrEntryOutOfRange is returned by FromELF when the entry point lies
	// outside the loaded image.
	ErrEntryOutOfRange = errors.New("felf: entry outside image")

	// ErrNoLoadSegments is returned by FromELF for an ELF without PT_LOAD segments.
	ErrNoLoadSegments = errors.New("felf: no loadable segments")

	// ErrImageTooLarge is returned by FromELF when the flattened image would
	// exceed MaxImageSize.
	ErrImageTooLarge = errors.New("felf: image too large")
)

// FormatError records which header field failed validation.
type FormatError struct {
	Field  string
	Offset int
	Err    error
}

func (e *FormatError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + " (" + e.Field + ")"
}

func (e *FormatError) Unwrap() error { return e.Err }
