package core

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned when a classifier exceeds its deadline
	ErrTimeout = errors.New("classifier timeout")
	// ErrTransport is returned on network or protocol failures
	ErrTransport = errors.New("classifier transport error")
	// ErrMalformedResponse is returned when a classifier answer cannot be decoded
	ErrMalformedResponse = errors.New("classifier malformed response")
	// ErrUnavailable is returned when a classifier is not configured
	ErrUnavailable = errors.New("classifier unavailable")
	// ErrValidation is returned for invalid gateway input
	ErrValidation = errors.New("validation error")
	// ErrNotFound is returned by repositories when no verdict matches
	ErrNotFound = errors.New("verdict not found")
	// ErrStore wraps repository failures
	ErrStore = errors.New("store error")
)

// Classifier identifies one of the three remote classifiers
type Classifier string

const (
	ClassifierLanguageModel Classifier = "language_model"
	ClassifierSpam          Classifier = "spam"
	ClassifierURL           Classifier = "url_reputation"
)

// Cause tags a classifier failure
type Cause string

const (
	CauseTimeout     Cause = "timeout"
	CauseTransport   Cause = "transport"
	CauseMalformed   Cause = "malformed"
	CauseUnavailable Cause = "unavailable"
)

// ClassifierError is the typed failure of a single classifier call
type ClassifierError struct {
	Classifier Classifier
	Cause      Cause
	Err        error
}

func (e *ClassifierError) Error() string {
	return fmt.Sprintf("%s classifier %s: %v", e.Classifier, e.Cause, e.Err)
}

func (e *ClassifierError) Unwrap() []error {
	return []error{e.sentinel(), e.Err}
}

func (e *ClassifierError) sentinel() error {
	switch e.Cause {
	case CauseTimeout:
		return ErrTimeout
	case CauseMalformed:
		return ErrMalformedResponse
	case CauseUnavailable:
		return ErrUnavailable
	default:
		return ErrTransport
	}
}

// NewClassifierError classifies err into a cause tag.
// Adapters signal decoding problems by wrapping ErrMalformedResponse.
func NewClassifierError(classifier Classifier, err error) *ClassifierError {
	var ce *ClassifierError
	if errors.As(err, &ce) {
		return &ClassifierError{Classifier: classifier, Cause: ce.Cause, Err: ce.Err}
	}

	cause := CauseTransport
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, ErrTimeout):
		cause = CauseTimeout
	case errors.Is(err, ErrMalformedResponse):
		cause = CauseMalformed
	case errors.Is(err, ErrUnavailable):
		cause = CauseUnavailable
	}

	return &ClassifierError{Classifier: classifier, Cause: cause, Err: err}
}
