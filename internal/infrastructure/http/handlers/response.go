package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	domerrors "github.com/dustmassingale/ProjectPlanningTool/internal/domain/errors"
)

// genericProcessingError is the only message callers see for unexpected
// failures; details go to telemetry, never to the response.
const genericProcessingError = "error processing your request"

// writeErr sends JSON { "error": message, "code": code } with a default
// code derived from the HTTP status.
func writeErr(w http.ResponseWriter, status int, message string) {
	writeErrCode(w, status, defaultErrCode(status), message)
}

func writeErrCode(w http.ResponseWriter, status int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeTooManyRequests
	default:
		return ErrCodeInternal
	}
}

// businessStatus maps a business-rule sentinel to its HTTP status.
func businessStatus(err error) int {
	switch {
	case errors.Is(err, domerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domerrors.ErrAccountExists):
		return http.StatusConflict
	case errors.Is(err, domerrors.ErrNotTeamMember):
		return http.StatusForbidden
	case errors.Is(err, domerrors.ErrResetNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
