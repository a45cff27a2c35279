// Package fault carries classified errors across package boundaries so that
// callers (CLI tools, the scan engine) can map failures to exit codes or
// log levels without string matching.
package fault

import "fmt"

type Code string

const (
	UnknownCode     Code = "unknown"
	NotFoundCode    Code = "not_found"
	BadInputCode    Code = "bad_input"
	UnsupportedCode Code = "unsupported"
)

type FieldErrorsMetadata map[string][]string

type Fault struct {
	code     Code
	message  string
	metadata any
	original error
}

func New(code Code, message string) Fault {
	return Fault{
		code:    code,
		message: message,
	}
}

func (f Fault) WithMetadata(metadata any) Fault {
	e := f
	e.metadata = metadata
	return e
}

func (f Fault) WithOriginal(original error) Fault {
	e := f
	e.original = original
	return e
}

func (f Fault) Code() Code {
	return f.code
}

func (f Fault) Message() string {
	return f.message
}

func (f Fault) Metadata() any {
	return f.metadata
}

func (f Fault) Original() error {
	return f.original
}

func (f Fault) Unwrap() error {
	return f.original
}

func (f Fault) Error() string {
	if f.original != nil {
		return fmt.Sprintf("%s: %v", f.message, f.original)
	}
	return f.message
}
