// Package api holds the JSON HTTP handlers for the tax engine: quotes,
// local rate lookups, and cache administration.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dealerdesk/taxengine/internal/domain"
	"github.com/dealerdesk/taxengine/internal/middleware"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError maps a domain error code to an HTTP status and writes the
// JSON envelope. Internal details are logged, never sent to the caller.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status := errorCodeToStatus(code)

	logger := middleware.GetLogger(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "error", err, "code", code, "op", domain.ErrorOp(err))
	} else {
		logger.Info("request rejected", slog.String("code", code), slog.String("message", domain.ErrorMessage(err)))
	}

	var resp errorResponse
	resp.Error.Code = code
	resp.Error.Message = domain.ErrorMessage(err)
	respondJSON(w, status, resp)
}

func errorCodeToStatus(code string) int {
	switch code {
	case domain.EINVALID, domain.EINVALIDSTATE, domain.EINVALIDZIP:
		return http.StatusBadRequest
	case domain.EAMBIGUOUS, domain.ESTUB:
		return http.StatusUnprocessableEntity
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
