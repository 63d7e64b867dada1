package render

import "fmt"

// GenerationError reports a failed generation attempt: a non-success response
// from the rendering endpoint, or a response body too small to be a document.
type GenerationError struct {
	Status  int
	Message string
}

func (e *GenerationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("generation failed: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("generation failed: status %d", e.Status)
}
