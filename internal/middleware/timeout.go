package middleware

import (
	"net/http"
	"time"
)

// Timeout bounds handler time for the JSON API. Responses here are small and
// fully buffered, so http.TimeoutHandler's buffering is acceptable.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	body := `{"success":false,"error":{"code":"REQUEST_TIMEOUT","message":"request timed out"}}`

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, body)
	}
}
