package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParseFailed indicates content could not be decoded as JSON, neither
// directly nor from inside a markdown code fence.
var ErrParseFailed = errors.New("failed to parse response")

var fencedJSON = regexp.MustCompile(`(?s)` + "```" + `(?:json)?\s*\n?(.*?)\n?` + "```")

// Parse decodes model output as JSON into T. Models often wrap JSON in a
// markdown fence, so when direct decoding fails the fenced body is tried
// before giving up with ErrParseFailed.
func Parse[T any](content string) (T, error) {
	var out T

	content = strings.TrimSpace(content)
	if err := json.Unmarshal([]byte(content), &out); err == nil {
		return out, nil
	}

	if m := fencedJSON.FindStringSubmatch(content); len(m) >= 2 {
		body := strings.TrimSpace(m[1])
		if err := json.Unmarshal([]byte(body), &out); err == nil {
			return out, nil
		}
	}

	return out, fmt.Errorf("%w: %s", ErrParseFailed, content)
}
