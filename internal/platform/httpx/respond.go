// Package httpx provides HTTP response utilities following RFC7807 problem details.
package httpx

import (
	"encoding/json"
	"net/http"
	"time"
)

// ProblemDetail represents RFC7807 problem details.
type ProblemDetail struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Envelope is the response shape the dashboard client consumes.
type Envelope struct {
	Success  bool     `json:"success"`
	Data     any      `json:"data"`
	Metadata Metadata `json:"metadata"`
}

// Metadata carries response provenance alongside the payload.
type Metadata struct {
	GeneratedAt time.Time      `json:"generatedAt"`
	RecordCount int            `json:"recordCount,omitempty"`
	Filters     map[string]any `json:"filters,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Data wraps payload in the success envelope and sends it.
func Data(w http.ResponseWriter, data any, meta Metadata) {
	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = time.Now().UTC()
	}
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data, Metadata: meta})
}

// Problem sends an RFC7807 problem details response.
func Problem(w http.ResponseWriter, status int, title, detail string) {
	JSON(w, status, ProblemDetail{
		Title:  title,
		Status: status,
		Detail: detail,
	})
}

// DecodeJSON decodes JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
