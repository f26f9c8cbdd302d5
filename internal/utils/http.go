package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const contentTypeJSON = "application/json"

// marshalFailureBody is sent when the payload itself cannot be encoded.
var marshalFailureBody = []byte(`{"error":"internal server error"}`)

// WriteJSON encodes data and writes it with statusCode. Responses are never
// cached since they may carry vault ciphertext or session tokens.
//
// If data cannot be encoded the client receives a 500 with a fixed JSON body
// and the encoding error is returned to the caller for logging.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)

	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("Cache-Control", "no-store")

	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(marshalFailureBody)
		return 0, fmt.Errorf("error encoding response: %w", err)
	}

	w.WriteHeader(statusCode)
	return w.Write(body)
}
