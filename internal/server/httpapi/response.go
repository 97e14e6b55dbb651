package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const (
	HeaderContentType   = "Content-Type"
	ContentTypeJSONUTF8 = "application/json; charset=utf-8"

	maxBodyBytes = 1 << 20
)

// RespondWithJSON writes payload as a JSON document with the given status.
func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set(HeaderContentType, ContentTypeJSONUTF8)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
		return
	}

	w.Header().Set(HeaderContentType, ContentTypeJSONUTF8)
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// RespondWithError writes the uniform {"error": message} body.
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]string{"error": message})
}

// decodeJSON reads a single JSON document from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrBadRequest("Request body is empty")
		}
		return ErrBadRequestWrap("Invalid JSON body", err)
	}
	return nil
}
