package scholarship

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(userID string, req CreateRequest) Saved {
	n := req.Normalized()

	return Saved{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      n.Name,
		Provider:  n.Provider,
		Deadline:  n.Deadline,
		URL:       n.URL,
		CreatedAt: time.Now().UTC(),
	}
}
