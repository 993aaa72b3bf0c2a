package framework

import (
	"errors"
	"fmt"
)

var (
	// ErrDatasetFormat is returned when a dataset token cannot be parsed.
	ErrDatasetFormat = errors.New("malformed dataset")
	// ErrDatasetLengthMismatch is returned when a dataset is empty or does
	// not hold the expected number of entries.
	ErrDatasetLengthMismatch = errors.New("dataset length mismatch")
	// ErrInvalidConfiguration is returned for out-of-range optimizer parameters.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrEvaluation is returned when an assignment cannot be scored against a problem.
	ErrEvaluation = errors.New("evaluation failed")
)

// DatasetFormatError points at the offending token of a dataset file.
type DatasetFormatError struct {
	Path     string
	Position int
	Token    string
	Err      error
}

func (e *DatasetFormatError) Error() string {
	msg := fmt.Sprintf("%s: token %d (%q) is not a valid number", e.Path, e.Position, e.Token)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports every DatasetFormatError as ErrDatasetFormat.
func (e *DatasetFormatError) Is(target error) bool {
	return target == ErrDatasetFormat
}

func (e *DatasetFormatError) Unwrap() error {
	return e.Err
}
