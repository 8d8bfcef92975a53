// internal/handler/common.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dangerclosesec/accountd/internal/auth"
	"github.com/dangerclosesec/accountd/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type BaseResponse struct {
	Ok bool `json:"ok"`
}

type ErrorResponse struct {
	BaseResponse
	Error string `json:"error"`
	Code  string `json:"error_code,omitempty"`
}

// respondWithError sends an error response with a message
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// identity pulls the guard-attached claims plus the parsed subject id.
func identity(r *http.Request) (*auth.Claims, uuid.UUID, bool) {
	claims, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return nil, uuid.Nil, false
	}
	userID, err := uuid.Parse(claims.UserID())
	if err != nil {
		return nil, uuid.Nil, false
	}
	return claims, userID, true
}

// pathUUID parses a uuid route parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
