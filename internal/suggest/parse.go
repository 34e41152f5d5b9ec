package suggest

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/globescholar/scholarhub/internal/domain/scholarship"
)

var ErrBadCandidateList = errors.New("response contains no parsable candidate list")

// Models wrap their output in prose or markdown fences more often than not,
// so grab the first bracket-delimited array of objects before unmarshalling.
var arrayPattern = regexp.MustCompile(`(?s)(\[\s*\{.*\}\s*\])`)

// ParseCandidateList turns free-form provider text into sanitized
// suggestions. The extraction heuristic lives behind this one function; if
// no well-formed array is found anywhere, the whole response is rejected —
// no partial results.
func ParseCandidateList(text string) ([]scholarship.Suggestion, error) {
	raw := strings.TrimSpace(text)

	if m := arrayPattern.FindString(raw); m != "" {
		raw = m
	}

	var entries []map[string]any

	err := json.Unmarshal([]byte(raw), &entries)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCandidateList, err)
	}

	out := make([]scholarship.Suggestion, 0, len(entries))

	for _, entry := range entries {
		out = append(out, scholarship.Suggestion{
			Name:     truncate(coerceString(entry, "name", ""), scholarship.MaxNameLen),
			Provider: truncate(coerceString(entry, "provider", ""), scholarship.MaxProviderLen),
			Deadline: truncate(coerceString(entry, "deadline", scholarship.UnknownDeadline), scholarship.MaxDeadlineLen),
			URL:      coerceString(entry, "url", ""),
		})
	}

	return out, nil
}

// coerceString stringifies whatever the model put in the field. Providers
// have been seen returning years as numbers and null deadlines.
func coerceString(entry map[string]any, key, fallback string) string {
	v, ok := entry[key]

	if !ok || v == nil {
		return strings.TrimSpace(fallback)
	}

	s, ok := v.(string)

	if !ok {
		s = fmt.Sprint(v)
	}

	return strings.TrimSpace(s)
}

func truncate(s string, max int) string {
	runes := []rune(s)

	if len(runes) <= max {
		return s
	}

	return string(runes[:max])
}
