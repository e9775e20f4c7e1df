package pptxscene

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is to classify a conversion failure.
var (
	// ErrMissingRelationship reports a required relationship (slide to layout,
	// layout to master) that is absent. Fatal for the owning slide.
	ErrMissingRelationship = errors.New("missing relationship")
	// ErrMalformedPart reports a part that could not be read or decoded.
	ErrMalformedPart = errors.New("malformed part")
	// ErrUnresolvedReference reports a relationship id that is not present in
	// the referencing part's map. Recovered by omitting the value.
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrUnsupportedVariant reports an element, chart family or path command
	// outside the known set. Recovered by omitting the payload.
	ErrUnsupportedVariant = errors.New("unsupported variant")
)

// PartError describes a failure tied to one package part.
type PartError struct {
	Kind   error  // one of the Err* kinds above
	Part   string // package part name, e.g. "ppt/slides/slide3.xml"
	Detail string
	Err    error // underlying cause, may be nil
}

func (e *PartError) Error() string {
	msg := e.Kind.Error()
	if e.Part != "" {
		msg += " in " + e.Part
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *PartError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func missingRelationship(part, kind string) error {
	return &PartError{Kind: ErrMissingRelationship, Part: part, Detail: fmt.Sprintf("no %s relationship", kind)}
}

func malformedPart(part string, err error) error {
	return &PartError{Kind: ErrMalformedPart, Part: part, Err: err}
}

func unresolvedReference(part, relID string) error {
	return &PartError{Kind: ErrUnresolvedReference, Part: part, Detail: fmt.Sprintf("relationship %q not found", relID)}
}

func unsupportedVariant(part, what string) error {
	return &PartError{Kind: ErrUnsupportedVariant, Part: part, Detail: what}
}
