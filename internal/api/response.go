package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jeongphys/g-bird-platform/internal/shop"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// jsonCodedError writes a JSON error with a machine-readable code.
func jsonCodedError(w http.ResponseWriter, status int, code, message string) {
	jsonResponse(w, status, map[string]string{"error": message, "code": code})
}

// jsonDomainError maps purchase-flow errors to HTTP responses. The message
// always names the specific unit or order involved so buyers can adjust
// their selection without re-deriving state.
func jsonDomainError(w http.ResponseWriter, err error) {
	var (
		outOfSeq    *shop.OutOfSequenceError
		selLimit    *shop.SelectionLimitError
		badCancel   *shop.OutOfOrderCancelError
		reserved    *shop.AlreadyReservedError
		sold        *shop.AlreadySoldError
		notPending  *shop.OrderNotPendingError
		notFound    *shop.NotFoundError
	)

	switch {
	case errors.As(err, &outOfSeq):
		jsonCodedError(w, http.StatusBadRequest, "out_of_sequence", err.Error())
	case errors.As(err, &selLimit):
		jsonCodedError(w, http.StatusBadRequest, "selection_limit", err.Error())
	case errors.As(err, &badCancel):
		jsonCodedError(w, http.StatusBadRequest, "out_of_order_cancel", err.Error())
	case errors.As(err, &reserved):
		jsonCodedError(w, http.StatusConflict, "already_reserved", err.Error())
	case errors.As(err, &sold):
		jsonCodedError(w, http.StatusConflict, "already_sold", err.Error())
	case errors.As(err, &notPending):
		jsonCodedError(w, http.StatusConflict, "order_not_pending", err.Error())
	case errors.As(err, &notFound):
		jsonCodedError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		slog.Error("unexpected error", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
