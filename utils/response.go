package utils

import (
	"encoding/json"
	"net/http"
)

type M map[string]interface{}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// Ok writes the success envelope. Extra payload fields are merged in
// beside the success flag.
func Ok(w http.ResponseWriter, status int, message string, payload M) {
	resp := M{"success": true}
	if message != "" {
		resp["message"] = message
	}
	for k, v := range payload {
		resp[k] = v
	}
	RespondWithJSON(w, status, resp)
}

// Fail writes the failure envelope. Business rejections use 2xx statuses;
// 4xx/5xx are reserved for malformed, unauthorized, or faulted requests.
func Fail(w http.ResponseWriter, status int, message string) {
	RespondWithJSON(w, status, M{"success": false, "message": message})
}
