// Package httputil writes JSON and JSON:API responses.
package httputil

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// MediaType is the JSON:API media type.
const MediaType = "application/vnd.api+json"

// ErrorObject is a JSON:API error object.
type ErrorObject struct {
	ID     string         `json:"id,omitempty"`
	Status string         `json:"status"`
	Code   string         `json:"code,omitempty"`
	Title  string         `json:"title,omitempty"`
	Detail string         `json:"detail,omitempty"`
	Meta   map[string]any `json:"meta,omitempty"`
}

// ErrorDocument is a top-level JSON:API error document.
type ErrorDocument struct {
	Errors []ErrorObject `json:"errors"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	write(w, "application/json", status, data)
}

// WriteAPI writes a JSON:API response with the given status code.
func WriteAPI(w http.ResponseWriter, status int, data any) {
	write(w, MediaType, status, data)
}

// WriteError writes a JSON:API error document holding one error.
func WriteError(w http.ResponseWriter, status int, code, detail string) {
	WriteErrors(w, status, ErrorObject{
		Status: strconv.Itoa(status),
		Code:   code,
		Title:  http.StatusText(status),
		Detail: detail,
	})
}

// WriteErrors writes a JSON:API error document. Objects without a status
// inherit the response status.
func WriteErrors(w http.ResponseWriter, status int, errs ...ErrorObject) {
	for i := range errs {
		if errs[i].Status == "" {
			errs[i].Status = strconv.Itoa(status)
		}
	}
	if errs == nil {
		errs = []ErrorObject{}
	}
	WriteAPI(w, status, ErrorDocument{Errors: errs})
}

// WriteOK writes a 200 OK JSON:API response.
func WriteOK(w http.ResponseWriter, data any) {
	WriteAPI(w, http.StatusOK, data)
}

// WriteNotFound writes a 404 Not Found error document.
func WriteNotFound(w http.ResponseWriter, code, detail string) {
	WriteError(w, http.StatusNotFound, code, detail)
}

// WriteMethodNotAllowed writes a 405 error document and the Allow header.
func WriteMethodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "only "+allow+" is supported")
}

// WriteInternalError writes a 500 Internal Server Error document.
func WriteInternalError(w http.ResponseWriter, code, detail string) {
	WriteError(w, http.StatusInternalServerError, code, detail)
}

func write(w http.ResponseWriter, contentType string, status int, data any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}
