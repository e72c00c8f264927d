// Package errs defines the error taxonomy shared by the jpackfx stores,
// the process executor and the image converter.
//
// Every error returned by those packages is marked with one of the kind
// sentinels below, so callers branch with errors.Is while the wrapped cause
// stays reachable for logging.
package errs

import (
	"github.com/cockroachdb/errors"
)

var (
	// Lookup errors 🔍
	ErrNotFound = errors.New("❌ not found")

	// Content errors 📄
	ErrBadFile = errors.New("❌ bad file")

	// Execution errors 🚀
	ErrProcessing = errors.New("❌ processing failed")

	// Input errors ✍️
	ErrValidation = errors.New("❌ validation failed")

	// Persistence errors 💾
	ErrCouldNotSave = errors.New("❌ could not save")
)

var kinds = []error{ErrNotFound, ErrBadFile, ErrProcessing, ErrValidation, ErrCouldNotSave}

func mark(kind, cause error, format string, args ...interface{}) error {
	var err error
	if cause == nil {
		err = errors.Newf(format, args...)
	} else {
		err = errors.Wrapf(cause, format, args...)
	}
	return errors.Mark(err, kind)
}

// NotFound marks an absent file or resource.
func NotFound(cause error, format string, args ...interface{}) error {
	return mark(ErrNotFound, cause, format, args...)
}

// BadFile marks content that exists but cannot be parsed or is structurally invalid.
func BadFile(cause error, format string, args ...interface{}) error {
	return mark(ErrBadFile, cause, format, args...)
}

// Processing marks a subprocess or codec failure.
func Processing(cause error, format string, args ...interface{}) error {
	return mark(ErrProcessing, cause, format, args...)
}

// Validation marks user input that fails a precondition.
func Validation(format string, args ...interface{}) error {
	return mark(ErrValidation, nil, format, args...)
}

// CouldNotSave marks a failure to serialize or write a store file.
func CouldNotSave(cause error, format string, args ...interface{}) error {
	return mark(ErrCouldNotSave, cause, format, args...)
}

// Kind returns the taxonomy sentinel err is marked with, or nil.
func Kind(err error) error {
	if err == nil {
		return nil
	}
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
