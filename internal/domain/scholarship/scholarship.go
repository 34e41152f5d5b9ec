package scholarship

import (
	"errors"
	"strings"
	"time"
)

var ErrNotFound = errors.New("scholarship not found")

// Column widths; suggestion sanitizing truncates to the same caps.
const (
	MaxNameLen     = 300
	MaxProviderLen = 300
	MaxDeadlineLen = 50

	UnknownDeadline = "unknown"
)

// Saved is one bookmarked scholarship owned by a single user.
type Saved struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	Provider  string    `json:"provider"`
	Deadline  string    `json:"deadline"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateRequest struct {
	Name     string `json:"name" binding:"required,max=300"`
	Provider string `json:"provider" binding:"omitempty,max=300"`
	Deadline string `json:"deadline" binding:"omitempty,max=50"`
	URL      string `json:"url" binding:"required"`
}

// Normalized returns the request with every field trimmed and the optional
// fields defaulted: provider stays empty, deadline becomes "unknown".
func (r CreateRequest) Normalized() CreateRequest {
	out := CreateRequest{
		Name:     strings.TrimSpace(r.Name),
		Provider: strings.TrimSpace(r.Provider),
		Deadline: strings.TrimSpace(r.Deadline),
		URL:      strings.TrimSpace(r.URL),
	}

	if out.Deadline == "" {
		out.Deadline = UnknownDeadline
	}

	return out
}

// Suggestion is one unverified candidate from the text-generation provider.
type Suggestion struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Deadline string `json:"deadline"`
	URL      string `json:"url"`
}

// Fallback is the single demo item returned whenever the provider is
// unconfigured or fails. Callers must not mutate it.
func Fallback() []Suggestion {
	return []Suggestion{
		{
			Name:     "Demo Scholarship",
			Provider: "Example Foundation",
			Deadline: UnknownDeadline,
			URL:      "https://example.org/scholarship",
		},
	}
}
