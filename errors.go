package aieps

import (
	"errors"
	"fmt"

	"github.com/tdewolff/aieps/svg"
)

// Sentinel errors wrapped by the diagnostics recorded during transcoding.
var (
	ErrReferenceNotFound = errors.New("referenced element not found")
	ErrClipNotFound      = errors.New("clip path not found")
	ErrGradientNotFound  = errors.New("gradient not found")
	ErrUnsupported       = errors.New("unsupported feature")
	ErrStrayPoint        = errors.New("removing stray point")
)

// ParseError is returned for malformed lengths, numbers, and other structural values. It aborts transcoding.
type ParseError struct {
	ID     string // id of the element, if any
	Value  string
	Reason string
}

func (err *ParseError) Error() string {
	if err.ID != "" {
		return fmt.Sprintf("%s: %q in element %s", err.Reason, err.Value, err.ID)
	}
	return fmt.Sprintf("%s: %q", err.Reason, err.Value)
}

// withID sets the element identifier of a ParseError.
func withID(err error, el *svg.Element) error {
	if perr, ok := err.(*ParseError); ok && perr.ID == "" {
		perr.ID = el.ID()
	}
	return err
}

// UnresolvedReferenceError is recorded when a use, clip-path, or gradient reference points to an identifier that does not exist.
type UnresolvedReferenceError struct {
	Kind string // use, clip, or gradient
	ID   string
}

func (err *UnresolvedReferenceError) Error() string {
	switch err.Kind {
	case "use":
		return "used element not found: #" + err.ID
	case "clip":
		return "clip path not found: #" + err.ID
	case "gradient":
		return "fill gradient not defined: " + err.ID
	}
	return fmt.Sprintf("%s reference not found: #%s", err.Kind, err.ID)
}

func (err *UnresolvedReferenceError) Unwrap() error {
	switch err.Kind {
	case "clip":
		return ErrClipNotFound
	case "gradient":
		return ErrGradientNotFound
	}
	return ErrReferenceNotFound
}

// UnsupportedFeatureError is recorded when a feature is skipped or approximated.
type UnsupportedFeatureError struct {
	Feature string
	Detail  string
}

func (err *UnsupportedFeatureError) Error() string {
	if err.Detail != "" {
		return err.Feature + ": " + err.Detail
	}
	return err.Feature
}

func (err *UnsupportedFeatureError) Unwrap() error {
	return ErrUnsupported
}

func unsupported(feature, detail string) error {
	return &UnsupportedFeatureError{Feature: feature, Detail: detail}
}
