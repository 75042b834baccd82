package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/forgo/community/api/internal/model"
)

// maxBodyBytes bounds request bodies; profile pictures may arrive as data URLs
const maxBodyBytes = 10 << 20

// Envelope is a successful response body. WriteOK adds "success": true.
type Envelope map[string]interface{}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteOK writes a 200 response with the success flag set
func WriteOK(w http.ResponseWriter, body Envelope) {
	if body == nil {
		body = Envelope{}
	}
	body["success"] = true
	WriteJSON(w, http.StatusOK, body)
}

// WriteError writes the failure envelope
func WriteError(w http.ResponseWriter, err *model.APIError) {
	err.WriteJSON(w)
}

// DecodeJSON decodes a JSON request body into the given struct.
// An empty body leaves v untouched so handlers report missing fields.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
