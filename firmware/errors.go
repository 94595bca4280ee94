package firmware

import (
	"errors"
	"fmt"
)

// Causes reported inside a FormatError.
var (
	ErrTruncatedRecord        = errors.New("Truncated record")
	ErrInvalidStartCode       = errors.New("Invalid start code")
	ErrInvalidHex             = errors.New("Invalid hexadecimal value")
	ErrInvalidRecordLength    = errors.New("Invalid record length")
	ErrUnsupportedRecordType  = errors.New("Unsupported record type")
	ErrRecordAfterEOF         = errors.New("Record found after EOF record")
	ErrInvalidExtendedAddress = errors.New("Invalid data length for 'Extended Linear Address' record")
)

// ErrNoOverlap indicates that data spliced into a block neither overlaps nor touches it.
var ErrNoOverlap = errors.New("inserted data region does not overlap the block data region")

// FormatError indicates that a line of a firmware file is malformed.
type FormatError struct {
	// Line is the 1-based line number in the source
	Line int

	// Err is the cause
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ChecksumError indicates that a record checksum does not match its contents.
type ChecksumError struct {
	// Expected is the checksum computed from the record fields
	Expected byte

	// Reported is the checksum field found in the record
	Reported byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("Invalid checksum (expected: %02Xh, reported: %02Xh)", e.Expected, e.Reported)
}

// ReadError indicates that the firmware source could not be read.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read firmware: %v", e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// IsFormatError returns true if err is or wraps a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
