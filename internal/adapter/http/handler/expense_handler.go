package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/splitnest/internal/adapter/http/dto"
	"github.com/iho/splitnest/internal/domain"
	"github.com/iho/splitnest/internal/usecase"
)

// ExpenseService defines the behavior needed by ExpenseHandler.
type ExpenseService interface {
	AddExpense(ctx context.Context, input usecase.AddExpenseInput) (*domain.Expense, error)
	ListExpenses(ctx context.Context, input usecase.ListExpensesInput) ([]domain.Expense, error)
	GetExpense(ctx context.Context, id string) (*domain.Expense, error)
}

// ExpenseHandler handles expense-related HTTP requests.
type ExpenseHandler struct {
	expenseUC ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseUC: expenseUC}
}

// Create records a new expense.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AddExpenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expense", err.Error())
		return
	}

	expense, err := h.expenseUC.AddExpense(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to add expense", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ExpenseFromDomain(expense))
}

// Get retrieves an expense by ID.
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	expense, err := h.expenseUC.GetExpense(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get expense", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(expense))
}

// List lists expenses. ?order=newest reverses the history, ?category=
// filters by category and ?recurring=true keeps recurring expenses only.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := usecase.ListExpensesInput{
		RecurringOnly: parseBoolQuery(r, "recurring", false),
	}

	switch q.Get("order") {
	case "", "oldest":
	case "newest":
		input.NewestFirst = true
	default:
		writeError(w, http.StatusBadRequest, "invalid order", "order must be newest or oldest")
		return
	}

	if c := q.Get("category"); c != "" {
		category, err := domain.ParseCategory(c)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid category", err.Error())
			return
		}
		input.Category = category
	}

	expenses, err := h.expenseUC.ListExpenses(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to list expenses", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListExpensesResponse{
		Expenses: dto.ExpensesFromDomain(expenses),
		Total:    len(expenses),
	})
}
