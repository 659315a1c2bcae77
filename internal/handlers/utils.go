package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fittrack/apiserver/types"
)

type contextKey string

const contextUserKey contextKey = "user"

// Uniform client-facing messages. Persistence error detail never leaves
// the server; it goes to the log only.
const (
	errMsgUnknown            = "Unknown error"
	errMsgUnauthorized       = "unauthorized"
	errMsgForbidden          = "forbidden"
	errMsgNotAuthenticated   = "not authenticated yet"
	errMsgInvalidCredentials = "Invalid credentials"
	errMsgUserExists         = "User already exists"
)

// Response is the uniform JSON envelope for successful responses.
type Response struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is a simple error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

func userFromContext(ctx context.Context) (types.User, bool) {
	user, ok := ctx.Value(contextUserKey).(types.User)
	return user, ok
}

func contextWithUser(ctx context.Context, user types.User) context.Context {
	return context.WithValue(ctx, contextUserKey, user)
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// Healthz reports process liveness.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
