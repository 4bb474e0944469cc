package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"resumelens/resume-extractor/internal/models"
)

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// DecodeModelResponse recovers the single JSON object embedded in a raw
// model response. Models reliably bound their structured answer with
// matching outer braces even when they add conversational wrapper text or
// markdown fences, so a fence is unwrapped first and the remainder is
// brace-scanned rather than parsed strictly.
func DecodeModelResponse(raw string) (map[string]any, error) {
	candidate := raw
	if match := fencedBlock.FindStringSubmatch(raw); match != nil {
		candidate = match[1]
	}

	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON object found", models.ErrMalformedResponse)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(candidate[start:end+1]), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedResponse, err)
	}

	return decoded, nil
}
