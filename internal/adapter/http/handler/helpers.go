package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iho/splitnest/internal/adapter/http/dto"
	"github.com/iho/splitnest/internal/domain"
)

// maxBodyBytes bounds request bodies; every request here is a small form.
const maxBodyBytes = 1 << 16

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError writes err with the status mapDomainError picks for it.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	writeError(w, mapDomainError(err), message, err.Error())
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrExpenseNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoExpenses):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPartnersAlreadySet):
		return http.StatusConflict
	case errors.Is(err, domain.ErrPartnersNotSet):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInconsistentLedger):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrInvalidDescription),
		errors.Is(err, domain.ErrInvalidPartnerName),
		errors.Is(err, domain.ErrUnknownPartner),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidRecurrence),
		errors.Is(err, domain.ErrInvalidSplitMode),
		errors.Is(err, domain.ErrInvalidPercentage),
		errors.Is(err, domain.ErrSplitAmountOutside),
		errors.Is(err, domain.ErrInvalidSplitRatio):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseBoolQuery parses a boolean query parameter with a default value.
func parseBoolQuery(r *http.Request, key string, defaultValue bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultValue
	}
	return b
}
