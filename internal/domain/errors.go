package domain

import "errors"

var (
	// Ledger errors
	ErrPartnersNotSet     = errors.New("partner names are not set")
	ErrPartnersAlreadySet = errors.New("partner names are already set")
	ErrUnknownPartner     = errors.New("payer is not one of the partners")
	ErrInvalidSplitRatio  = errors.New("split ratio must be two fractions in [0,1] summing to 1")
	ErrMalformedDocument  = errors.New("persisted ledger document is malformed")
	ErrInconsistentLedger = errors.New("ledger is inconsistent: splits do not add up")

	// Expense errors
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrNoExpenses         = errors.New("ledger has no expenses")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidRecurrence  = errors.New("invalid recurrence")
	ErrInvalidSplitMode   = errors.New("invalid split mode")
	ErrInvalidPercentage  = errors.New("split percentage must be between 0 and 100")
	ErrSplitAmountOutside = errors.New("fixed split amount must be between 0 and the expense amount")
)
