package testutil

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// FakeImageBytes is what the canned provider "generates".
var FakeImageBytes = []byte("fake-png-image-bytes")

// NewProviderServer returns a canned generation provider speaking the
// OpenAI-compatible surface the client expects.
func NewProviderServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/v1/images/generations", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"created": 1700000000,
			"data": []map[string]string{
				{"b64_json": base64.StdEncoding.EncodeToString(FakeImageBytes)},
			},
		})
	})

	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"created": 1700000000,
			"choices": []map[string]any{
				{
					"index":   0,
					"message": map[string]string{"role": "assistant", "content": "A thoughtful review."},
				},
			},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}
