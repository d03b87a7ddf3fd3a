package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"deal-analyzer/domain"
	"deal-analyzer/service"
)

const maxBodyBytes = 1 << 20

type DealHandler struct {
	service *service.DealAnalysisService
}

func NewDealHandler(service *service.DealAnalysisService) *DealHandler {
	return &DealHandler{service: service}
}

type batchRequest struct {
	Deals []domain.DealAnalysisInput `json:"deals"`
}

type batchResponse struct {
	Results []domain.DealMetrics `json:"results"`
}

func (h *DealHandler) AnalyzeDeal(w http.ResponseWriter, r *http.Request) {
	var input domain.DealAnalysisInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	writeJSON(w, http.StatusOK, h.service.Analyze(r.Context(), input))
}

func (h *DealHandler) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	results, err := h.service.AnalyzeBatch(r.Context(), req.Deals)
	if err != nil {
		if errors.Is(err, service.ErrBatchTooLarge) {
			writeError(w, http.StatusBadRequest, "BATCH_TOO_LARGE", err.Error())
			return
		}
		writeError(w, http.StatusServiceUnavailable, "CANCELED", "request canceled")
		return
	}

	writeJSON(w, http.StatusOK, batchResponse{Results: results})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}
