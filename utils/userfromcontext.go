package utils

import (
	"net/http"

	"medibook/globals"
)

// GetUserIDFromRequest returns the caller identity the auth middleware
// stored on the request context, or "" when unauthenticated.
func GetUserIDFromRequest(r *http.Request) string {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}
