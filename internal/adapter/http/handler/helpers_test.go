package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/splitnest/internal/adapter/http/dto"
	"github.com/iho/splitnest/internal/domain"
)

func TestParseBoolQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/expenses?recurring=true", nil)
	if got := parseBoolQuery(req, "recurring", false); !got {
		t.Fatalf("expected recurring=true")
	}

	req = httptest.NewRequest(http.MethodGet, "/expenses?recurring=maybe", nil)
	if got := parseBoolQuery(req, "recurring", false); got {
		t.Fatalf("expected fallback to default")
	}

	req = httptest.NewRequest(http.MethodGet, "/expenses", nil)
	if got := parseBoolQuery(req, "recurring", true); !got {
		t.Fatalf("expected default when missing")
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"expense not found", domain.ErrExpenseNotFound, http.StatusNotFound},
		{"no expenses", domain.ErrNoExpenses, http.StatusNotFound},
		{"partners already set", domain.ErrPartnersAlreadySet, http.StatusConflict},
		{"partners not set", domain.ErrPartnersNotSet, http.StatusConflict},
		{"inconsistent", domain.ErrInconsistentLedger, http.StatusConflict},
		{"unknown user", fmt.Errorf("%w: %w", domain.ErrUnauthorized, domain.ErrUnknownUser), http.StatusUnauthorized},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"wrapped percentage", fmt.Errorf("%w: got 120", domain.ErrInvalidPercentage), http.StatusBadRequest},
		{"unknown partner", domain.ErrUnknownPartner, http.StatusBadRequest},
		{"malformed document", domain.ErrMalformedDocument, http.StatusInternalServerError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded["status"] != "ok" {
		t.Fatalf("expected payload to round-trip, got %+v", decoded)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "bad request", "detail")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Error != "bad request" || resp.Message != "detail" {
		t.Fatalf("expected error message to propagate, got %+v", resp)
	}
}
