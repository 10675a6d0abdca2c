package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/cgsoftworks/leadbook/internal/usecase"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *errorBody  `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: true, Message: message})
}

func respondError(w http.ResponseWriter, err error) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		writeJSON(w, statusForCode(domainErr.Code), envelope{
			Success: false,
			Error:   &errorBody{Code: domainErr.Code, Message: domainErr.Message},
		})
		return
	}

	zap.L().Error("request failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, envelope{
		Success: false,
		Error:   &errorBody{Code: "INTERNAL", Message: "Internal server error"},
	})
}

func statusForCode(code string) int {
	switch code {
	case usecase.CodeUnauthorized:
		return http.StatusUnauthorized
	case usecase.CodeForbidden:
		return http.StatusForbidden
	case usecase.CodeNotFound:
		return http.StatusNotFound
	case usecase.CodeUpstreamFailed:
		return http.StatusBadGateway
	default:
		// VALIDATION_ERROR, CONFLICT and LOCKED all surface as bad requests.
		return http.StatusBadRequest
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{
			Success: false,
			Error:   &errorBody{Code: usecase.CodeValidation, Message: "Invalid JSON body"},
		})
		return false
	}
	return true
}
