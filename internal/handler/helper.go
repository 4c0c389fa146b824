package handler

import (
	"encoding/json"
	"net/http"

	"github.com/segyhp/lamf-engine/pkg/response"
)

// decodeJSON reads the body into dst and answers 400 itself when it cannot.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}
