package main

import "fmt"

// FormatErrorKind identifies which bulk dump header check failed.
type FormatErrorKind int

const (
	NotSysEx FormatErrorKind = iota + 1
	NotYamaha
	NotBulkVoiceFormat
	ByteCountMismatch
	Truncated
)

func (k FormatErrorKind) String() string {
	switch k {
	case NotSysEx:
		return "start of sysex not found"
	case NotYamaha:
		return "not a Yamaha sysex"
	case NotBulkVoiceFormat:
		return "not a 32 voice bulk dump"
	case ByteCountMismatch:
		return "byte count mismatch"
	case Truncated:
		return "truncated voice data"
	}
	return fmt.Sprintf("FormatErrorKind(%d)", int(k))
}

// FormatError reports a malformed or unsupported bulk dump. Got and Want
// hold the offending and expected values where a single value is at fault.
type FormatError struct {
	Kind FormatErrorKind
	Got  int
	Want int
}

func (e *FormatError) Error() string {
	if e.Got == 0 && e.Want == 0 {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: got %d, want %d", e.Kind, e.Got, e.Want)
}

// Is matches any *FormatError of the same kind, so the Err* sentinels work
// with errors.Is.
func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotSysEx           = &FormatError{Kind: NotSysEx}
	ErrNotYamaha          = &FormatError{Kind: NotYamaha}
	ErrNotBulkVoiceFormat = &FormatError{Kind: NotBulkVoiceFormat}
	ErrByteCountMismatch  = &FormatError{Kind: ByteCountMismatch}
	ErrTruncated          = &FormatError{Kind: Truncated}
)

// IndexError reports a voice number outside 1-32.
type IndexError struct {
	Index int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("voice number %d out of range (1-%d)", e.Index, VoicesPerBank)
}

// EncodingError reports a non-ASCII byte in a voice name. Offset is
// relative to the start of the name.
type EncodingError struct {
	Offset int
	Byte   byte
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("voice name byte 0x%02X at offset %d is not ASCII", e.Byte, e.Offset)
}
