package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/splitnest/internal/adapter/http/dto"
	"github.com/iho/splitnest/internal/domain"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	GetLedger(ctx context.Context) (*domain.Ledger, error)
	SetPartners(ctx context.Context, partner1, partner2 string) (*domain.Ledger, error)
	SetSplitRatio(ctx context.Context, partner1Share decimal.Decimal) (*domain.Ledger, error)
	SetSplitRatioPercent(ctx context.Context, pct int) (*domain.Ledger, error)
	Reset(ctx context.Context) error
	CheckConsistency(ctx context.Context) error
}

// LedgerHandler handles ledger-wide operations.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Get returns the partners, ratio and expense count.
func (h *LedgerHandler) Get(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.ledgerUC.GetLedger(r.Context())
	if err != nil {
		writeDomainError(w, "failed to load ledger", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerFromDomain(ledger))
}

// SetPartners names the two partners.
func (h *LedgerHandler) SetPartners(w http.ResponseWriter, r *http.Request) {
	var req dto.SetPartnersRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ledger, err := h.ledgerUC.SetPartners(r.Context(), req.Partner1, req.Partner2)
	if err != nil {
		writeDomainError(w, "failed to set partners", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerFromDomain(ledger))
}

// SetSplitRatio updates the default split ratio.
func (h *LedgerHandler) SetSplitRatio(w http.ResponseWriter, r *http.Request) {
	var req dto.SetSplitRatioRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid split ratio", err.Error())
		return
	}

	var (
		ledger *domain.Ledger
		err    error
	)
	if req.Partner1Percent != nil {
		ledger, err = h.ledgerUC.SetSplitRatioPercent(r.Context(), *req.Partner1Percent)
	} else {
		ledger, err = h.ledgerUC.SetSplitRatio(r.Context(), *req.Partner1Share)
	}
	if err != nil {
		writeDomainError(w, "failed to set split ratio", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerFromDomain(ledger))
}

// Reset clears the ledger.
func (h *LedgerHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.ledgerUC.Reset(r.Context()); err != nil {
		writeDomainError(w, "failed to reset ledger", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// CheckConsistency checks if the ledger is consistent.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrInconsistentLedger) {
			writeJSON(w, http.StatusConflict, dto.ConsistencyResponse{
				Status:     "inconsistent",
				Consistent: false,
				Message:    err.Error(),
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to check consistency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyResponse{
		Status:     "consistent",
		Consistent: true,
	})
}
