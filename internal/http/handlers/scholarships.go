package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/globescholar/scholarhub/internal/config"
	"github.com/globescholar/scholarhub/internal/domain/scholarship"
	"github.com/globescholar/scholarhub/internal/http/middlewares"
	"github.com/globescholar/scholarhub/internal/utils"
)

type ScholarshipStore interface {
	Create(ctx context.Context, userID string, req scholarship.CreateRequest) (scholarship.Saved, error)
	ListByUser(ctx context.Context, userID string) ([]scholarship.Saved, error)
	Delete(ctx context.Context, userID, id string) error
}

// Suggester never fails; the gateway degrades to the demo item internally.
type Suggester interface {
	Suggest(ctx context.Context, country string) []scholarship.Suggestion
}

type ScholarshipsHandler struct {
	repo      ScholarshipStore
	suggester Suggester
}

func NewScholarshipsHandler(repo ScholarshipStore, suggester Suggester) *ScholarshipsHandler {
	return &ScholarshipsHandler{
		repo:      repo,
		suggester: suggester,
	}
}

type CountryQuery struct {
	Country string `json:"country" binding:"required"`
}

func (h *ScholarshipsHandler) Fetch(ctx *gin.Context) {
	var req CountryQuery

	if !BindJSON(ctx, &req) {
		return
	}

	// detached context: a client disconnect does not cancel the provider
	// call, the result is simply discarded
	cctx, cancel := config.WithTimeout(30 * time.Second)
	defer cancel()

	ctx.JSON(http.StatusOK, h.suggester.Suggest(cctx, req.Country))
}

func (h *ScholarshipsHandler) Save(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	var req scholarship.CreateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	saved, err := h.repo.Create(cctx, userID, req)

	if err != nil {
		RespondInternal(ctx, "Could not save scholarship")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Saved",
		"id":      saved.ID,
	})
}

type savedOut struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Deadline string `json:"deadline"`
	URL      string `json:"url"`
}

func (h *ScholarshipsHandler) ListSaved(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	rows, err := h.repo.ListByUser(cctx, userID)

	if err != nil {
		RespondInternal(ctx, "Could not list saved scholarships")
		return
	}

	out := make([]savedOut, 0, len(rows))

	for _, row := range rows {
		deadline := row.Deadline

		if deadline == "" {
			deadline = scholarship.UnknownDeadline
		}

		out = append(out, savedOut{
			Name:     row.Name,
			Provider: row.Provider,
			Deadline: deadline,
			URL:      row.URL,
		})
	}

	ctx.JSON(http.StatusOK, out)
}

func (h *ScholarshipsHandler) DeleteSaved(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "invalid_id", "scholarship id must be a valid UUID")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, userID, id)

	if err != nil {
		// a record owned by someone else looks exactly like a missing one
		if errors.Is(err, scholarship.ErrNotFound) {
			RespondNotFound(ctx, "Not found")
			return
		}

		RespondInternal(ctx, "Could not delete scholarship")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Deleted",
	})
}
