package domain

import "fmt"

// ClassificationError reports that the strategy decision failed or produced an
// unparseable label. It is never mapped to a default strategy: guessing the
// sensitive/non-sensitive decision is worse than failing the request.
type ClassificationError struct {
	Reason string
	Err    error
}

func (e *ClassificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("classification failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("classification failed: %s", e.Reason)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// GenerationError reports that answer synthesis failed. No answer can be
// safely fabricated in its place, so it surfaces as a service failure.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("generation failed: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ValidationError rejects a malformed question before the pipeline runs.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid question: %s", e.Reason)
}
