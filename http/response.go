package http

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const internalErrorJSON = `{"error":{"code":"INTERNAL_ERROR","message":"internal server error"}}` + "\n"

// writeJSON encodes payload before touching the response, so an encode
// failure still yields a well-formed 500.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		httpLogger().Error("failed to encode response", "error", err)
		status = http.StatusInternalServerError
		body = []byte(internalErrorJSON)
	} else {
		body = append(body, '\n')
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		httpLogger().Warn("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}
