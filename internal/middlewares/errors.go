package middlewares

import (
	"encoding/json"
	"net/http"
)

// writeError writes a JSON error body in the same shape the handlers use.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
