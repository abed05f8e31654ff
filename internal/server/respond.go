package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rivethead/rivethead-api/internal/domain"
)

// Message is the confirmation body returned by write operations and the
// structured body of the default not-found route.
type Message struct {
	Message string `json:"message"`
}

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError writes err as a canonical JSON error body. Errors that are
// not APIErrors are masked as a generic server error so storage detail
// never reaches the client.
func RespondError(w http.ResponseWriter, err error) {
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		apiErr = domain.ErrServer("internal error")
	}
	RespondJSON(w, apiErr.HTTPStatusCode(), apiErr)
}
