package validators

import (
	"net/http"
	"strings"
)

// BearerToken extracts the token from the Authorization header. It returns
// "" when the header is missing, not a bearer credential, or blank.
func BearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(raw) < 7 || !strings.EqualFold(raw[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(raw[7:])
}
