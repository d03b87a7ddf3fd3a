package http

import (
	"errors"
	"net/http"

	"deal-analyzer/domain"
	"deal-analyzer/service"
)

type MortgageHandler struct {
	service *service.MortgageService
}

func NewMortgageHandler(service *service.MortgageService) *MortgageHandler {
	return &MortgageHandler{service: service}
}

func (h *MortgageHandler) CalculateMortgage(w http.ResponseWriter, r *http.Request) {
	var input domain.MortgageInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	result, err := h.service.Calculate(input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMortgage) {
			writeError(w, http.StatusBadRequest, "INVALID_MORTGAGE", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
