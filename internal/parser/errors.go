package parser

import (
	"errors"
	"strings"
)

// ErrEmptyText is wrapped by AcquisitionError when a document yields no text at all.
var ErrEmptyText = errors.New("no text could be extracted from the document")

// AcquisitionError means the statement document could not be opened or read.
type AcquisitionError struct {
	Path string
	Err  error
}

func (e *AcquisitionError) Error() string {
	return "Error reading PDF: " + e.Err.Error()
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}

// UnrecognizedIssuerError means text was read but no issuer signature matched it.
type UnrecognizedIssuerError struct {
	Supported []string
}

func (e *UnrecognizedIssuerError) Error() string {
	return "Bank not detected. Supported: " + strings.Join(e.Supported, ", ")
}
