package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/iho/splitnest/internal/adapter/http/dto"
	"github.com/iho/splitnest/internal/domain"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	Balance(ctx context.Context) (*domain.Balance, error)
	Recurring(ctx context.Context) ([]domain.Expense, error)
	CategoryBreakdown(ctx context.Context) ([]domain.CategoryTotal, error)
	ExportCSV(ctx context.Context, w io.Writer) error
}

// ReportHandler serves read-only views of the ledger.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Balance returns paid, owed and net per partner and the settlement.
func (h *ReportHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.reportUC.Balance(r.Context())
	if err != nil {
		writeDomainError(w, "failed to compute balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(balance))
}

// Recurring lists recurring expenses.
func (h *ReportHandler) Recurring(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.reportUC.Recurring(r.Context())
	if err != nil {
		writeDomainError(w, "failed to list recurring expenses", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListExpensesResponse{
		Expenses: dto.ExpensesFromDomain(expenses),
		Total:    len(expenses),
	})
}

// Categories returns spending per category and payer.
func (h *ReportHandler) Categories(w http.ResponseWriter, r *http.Request) {
	totals, err := h.reportUC.CategoryBreakdown(r.Context())
	if err != nil {
		writeDomainError(w, "failed to compute category breakdown", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"categories": dto.CategoryTotalsFromDomain(totals)})
}

// Export streams the expense history as CSV.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	// Buffered so a failure can still be reported with a proper status.
	var buf bytes.Buffer
	if err := h.reportUC.ExportCSV(r.Context(), &buf); err != nil {
		writeDomainError(w, "failed to export expenses", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
