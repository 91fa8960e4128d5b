package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/picstash/picstash"
)

// UploadResponse is the body returned by a successful upload. Variants
// exists for forward compatibility with multi-resolution delivery and
// currently always holds exactly the original URL.
type UploadResponse struct {
	Success  bool     `json:"success"`
	ImageURL string   `json:"imageUrl"`
	ID       string   `json:"id"`
	Variants []string `json:"variants"`
}

// ListResponse is the body returned by the listing endpoint.
type ListResponse struct {
	Images     []picstash.GalleryImage `json:"images"`
	NextCursor string                  `json:"nextCursor,omitempty"`
}

// DeleteResponse is the body returned by the delete endpoint.
type DeleteResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse is the JSON error body used by every endpoint except the
// fetch 404, which is plain text.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, ErrorResponse{Error: message})
}

// HandleError writes the appropriate error response based on error type.
func HandleError(w http.ResponseWriter, err error) {
	slog.Error("request error", "error", err)

	switch {
	case errors.Is(err, picstash.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Object not found")
	case errors.Is(err, picstash.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
