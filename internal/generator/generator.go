// Package generator calls the text-generation provider to produce new
// document versions from natural-language change requests.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoCompletion is returned when the provider answers without any usable
// completion content.
var ErrNoCompletion = errors.New("generator: no completion content")

// ErrMissingField is returned when the completion parses as JSON but the
// required newVersion field is absent or empty.
var ErrMissingField = errors.New("generator: newVersion field is empty or missing")

// Generator produces the full text of the next document version. The result
// contract is strict: the whole updated document, nothing partial. Failures
// are not retried here; the chat UI is the retry point.
type Generator interface {
	NewVersion(ctx context.Context, overview, fileContents string) (string, error)
}

type versionResponse struct {
	NewVersion string `json:"newVersion"`
}

// parseNewVersion validates the provider's JSON payload against the
// required-field contract. A parse failure or empty field fails the whole
// operation; the result is never silently defaulted.
func parseNewVersion(content string) (string, error) {
	if content == "" {
		return "", ErrNoCompletion
	}

	var parsed versionResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return "", fmt.Errorf("generator: parse completion: %w", err)
	}
	if parsed.NewVersion == "" {
		return "", ErrMissingField
	}
	return parsed.NewVersion, nil
}
