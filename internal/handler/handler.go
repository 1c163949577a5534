// Package handler provides the Lambda handler for the dictionary lookup.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/pricofy/dictionary-lookup/internal/domain"
)

// MaxQueryLength bounds the phrase forwarded to the dictionary site, in runes.
const MaxQueryLength = 200

// Querier turns a phrase into launcher items.
type Querier interface {
	Query(ctx context.Context, phrase string) ([]domain.Item, error)
}

// Handler serves lookup requests. A failed lookup is reported in
// Response.Error with no items; it is never returned as a Go error, so the
// caller simply shows nothing for that query.
type Handler struct {
	querier Querier
	log     *slog.Logger
}

// New creates a Handler.
func New(querier Querier, logger *slog.Logger) *Handler {
	return &Handler{
		querier: querier,
		log:     logger.With("component", "handler"),
	}
}

// Handle processes a lookup request.
func (h *Handler) Handle(ctx context.Context, req domain.Request) (*domain.Response, error) {
	if err := validateRequest(req); err != nil {
		return &domain.Response{Items: []domain.Item{}, Error: err.Error()}, nil
	}

	items, err := h.querier.Query(ctx, req.Query)
	if err != nil {
		h.log.WarnContext(ctx, "lookup failed",
			slog.String("query", req.Query),
			slog.String("error", err.Error()),
		)
		return &domain.Response{
			Items: []domain.Item{},
			Error: fmt.Sprintf("lookup failed: %v", err),
		}, nil
	}

	return &domain.Response{Items: items}, nil
}

// validateRequest checks the request is valid. An empty query is valid and
// answered with the prompt item.
func validateRequest(req domain.Request) error {
	if !utf8.ValidString(req.Query) {
		return fmt.Errorf("query must be valid UTF-8")
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.Query)) > MaxQueryLength {
		return fmt.Errorf("query must be at most %d characters", MaxQueryLength)
	}
	return nil
}
