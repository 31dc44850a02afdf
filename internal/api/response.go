package api

import (
	"encoding/json"
	"net/http"
)

type apiError struct {
	Message string           `json:"message"`
	Fields  []fieldErrorResp `json:"fields,omitempty"`
}

type fieldErrorResp struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, apiError{Message: msg})
}
