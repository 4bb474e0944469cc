package models

import (
	"errors"
	"fmt"
)

// Pipeline error taxonomy. The handler maps these to HTTP status codes;
// everything a caller can see is one of these kinds or a ResumeRecord.
var (
	ErrUnsupportedFormat = errors.New("unsupported file type")
	ErrImageProcessing   = errors.New("image preprocessing failed")
	ErrOCR               = errors.New("ocr failed")
	ErrContentBlocked    = errors.New("model response was blocked or empty")
	ErrMalformedResponse = errors.New("no valid JSON object in model response")
)

// ModelsExhaustedError reports that every configured model candidate failed
// for availability reasons. Last carries the final underlying error for
// diagnostics.
type ModelsExhaustedError struct {
	Last error
}

func (e *ModelsExhaustedError) Error() string {
	return fmt.Sprintf("all configured models exhausted: %v", e.Last)
}

func (e *ModelsExhaustedError) Unwrap() error {
	return e.Last
}
