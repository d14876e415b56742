package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/barsaude-crm/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps usecase errors to HTTP status codes. Domain errors
// carry a code the frontend switches on; technical errors come back as a
// generic retryable failure.
func respondError(w http.ResponseWriter, err error) {
	if domainErr, ok := err.(*usecase.DomainError); ok {
		status := http.StatusUnprocessableEntity
		switch domainErr.Code {
		case usecase.CodeLeadNotFound, usecase.CodeRuleNotFound:
			status = http.StatusNotFound
		case usecase.CodeLeadReserved:
			status = http.StatusConflict
		case usecase.CodeNotHolder, usecase.CodeForbidden:
			status = http.StatusForbidden
		case usecase.CodeInvalidInput:
			status = http.StatusBadRequest
		}
		respondJSON(w, status, errorResponse{Error: domainErr.Message, Code: domainErr.Code})
		return
	}

	logrus.WithError(err).Error("request failed")
	respondJSON(w, http.StatusInternalServerError, errorResponse{
		Error: "operation failed, please try again",
	})
}
