// Package jsonutil extracts and parses JSON from model responses. Generated
// content is requested as a JSON object, but responses routinely arrive
// wrapped in markdown code fences or surrounded by prose; these helpers
// normalize that before decoding.
package jsonutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON reports a response carrying no JSON object or array at all.
var ErrNoJSON = errors.New("no JSON content found")

// Extract returns the JSON object or array embedded in a model response,
// unwrapping a ```json fence if present and discarding any prose around
// the payload.
func Extract(raw string) (string, error) {
	text := unfence(strings.TrimSpace(raw))

	start := strings.IndexAny(text, "{[")
	if start == -1 {
		return "", ErrNoJSON
	}

	closer := byte('}')
	if text[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(text, closer)
	if end < start {
		return "", fmt.Errorf("no closing %c found", closer)
	}

	return text[start : end+1], nil
}

// unfence drops a markdown code fence wrapper. The opening ``` line is cut
// whole (it may carry a language tag); everything past the last closing
// fence is dropped. Text without a leading fence passes through unchanged.
func unfence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	_, body, ok := strings.Cut(text, "\n")
	if !ok {
		return text
	}
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return body
}

// ParseJSON extracts the JSON payload from a raw model response and decodes
// it into T.
func ParseJSON[T any](raw string) (T, error) {
	var result T

	payload, err := Extract(raw)
	if err != nil {
		return result, fmt.Errorf("%w (response length: %d)", err, len(raw))
	}

	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		var zero T
		return zero, fmt.Errorf("invalid JSON: %w (payload: %s)", err, preview(payload))
	}
	return result, nil
}

// preview truncates a payload for error messages.
func preview(s string) string {
	const max = 200
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
