package handler

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pricofy/dictionary-lookup/internal/domain"
	"github.com/pricofy/dictionary-lookup/internal/logger"
)

type fakeQuerier struct {
	items  []domain.Item
	err    error
	calls  int
	phrase string
}

func (f *fakeQuerier) Query(_ context.Context, phrase string) ([]domain.Item, error) {
	f.calls++
	f.phrase = phrase
	return f.items, f.err
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name        string
		request     domain.Request
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid request",
			request:     domain.Request{Query: "Haus"},
			expectError: false,
		},
		{
			name:        "empty query is valid",
			request:     domain.Request{Query: ""},
			expectError: false,
		},
		{
			name:        "invalid utf-8",
			request:     domain.Request{Query: "H\xffus"},
			expectError: true,
			errorMsg:    "query must be valid UTF-8",
		},
		{
			name:        "too long",
			request:     domain.Request{Query: strings.Repeat("ä", MaxQueryLength+1)},
			expectError: true,
			errorMsg:    "query must be at most 200 characters",
		},
		{
			name:        "surrounding whitespace does not count",
			request:     domain.Request{Query: "  " + strings.Repeat("a", MaxQueryLength) + "  "},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(tt.request)

			if tt.expectError {
				if err == nil {
					t.Errorf("validateRequest() should have returned error")
				} else if err.Error() != tt.errorMsg {
					t.Errorf("validateRequest() error = %q, want %q", err.Error(), tt.errorMsg)
				}
			} else {
				if err != nil {
					t.Errorf("validateRequest() unexpected error: %v", err)
				}
			}
		})
	}
}

func TestHandle_ReturnsItems(t *testing.T) {
	q := &fakeQuerier{items: []domain.Item{{ID: "Haus", Text: "Haus"}, {ID: "Hausaufgabe", Text: "Hausaufgabe"}}}
	h := New(q, logger.Discard())

	resp, err := h.Handle(context.Background(), domain.Request{Query: "Haus"})
	if err != nil {
		t.Fatalf("Handle() unexpected error: %v", err)
	}
	if resp.Error != "" {
		t.Errorf("Response.Error = %q, want empty", resp.Error)
	}
	if len(resp.Items) != 2 || resp.Items[0].ID != "Haus" || resp.Items[1].ID != "Hausaufgabe" {
		t.Errorf("Response.Items = %+v, want Haus, Hausaufgabe in order", resp.Items)
	}
	if q.phrase != "Haus" {
		t.Errorf("querier got %q, want %q", q.phrase, "Haus")
	}
}

func TestHandle_LookupFailureYieldsNoItems(t *testing.T) {
	q := &fakeQuerier{err: errors.New("dispatcher: unexpected status 503")}
	h := New(q, logger.Discard())

	resp, err := h.Handle(context.Background(), domain.Request{Query: "Haus"})
	if err != nil {
		t.Fatalf("Handle() should not return a Go error, got %v", err)
	}
	if resp.Items == nil || len(resp.Items) != 0 {
		t.Errorf("Response.Items = %v, want empty non-nil slice", resp.Items)
	}
	if !strings.Contains(resp.Error, "unexpected status 503") {
		t.Errorf("Response.Error = %q, want it to mention the cause", resp.Error)
	}
}

func TestHandle_InvalidRequestSkipsLookup(t *testing.T) {
	q := &fakeQuerier{}
	h := New(q, logger.Discard())

	resp, err := h.Handle(context.Background(), domain.Request{Query: "\xff"})
	if err != nil {
		t.Fatalf("Handle() unexpected error: %v", err)
	}
	if resp.Error == "" {
		t.Error("Response.Error should be set for invalid request")
	}
	if q.calls != 0 {
		t.Errorf("querier called %d times, want 0", q.calls)
	}
}
