package middleware

import (
	"encoding/json"
	"net/http"

	"notely/internal/model"
)

// writeJSONError emits the API envelope directly from middleware, which sits
// in front of the handler layer and cannot use its response helpers.
func writeJSONError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    code,
			Message: message,
		},
	})
}
