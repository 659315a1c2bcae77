package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fittrack/apiserver/internal/auth"
	"github.com/fittrack/apiserver/internal/services"
	"github.com/fittrack/apiserver/internal/store"
	"github.com/fittrack/apiserver/types"
)

// Authenticator builds the middleware chain guarding protected routes.
// The chain runs Authenticate first, then an optional RequireRole; each
// step short-circuits on failure.
type Authenticator struct {
	issuer *auth.TokenIssuer
	users  *services.UserService
}

func NewAuthenticator(issuer *auth.TokenIssuer, users *services.UserService) *Authenticator {
	return &Authenticator{issuer: issuer, users: users}
}

// Authenticate extracts and verifies the bearer token, resolves the
// user, and attaches it to the request context.
//
// A missing token is 401 while a present-but-invalid token is 403. The
// asymmetry is intentional: "you sent no proof" and "you sent proof that
// failed verification" are distinct outcomes.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := bearerToken(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, errMsgUnauthorized)
			return
		}

		userID, err := a.issuer.Verify(tokenString)
		if err != nil {
			writeError(w, http.StatusForbidden, errMsgForbidden)
			return
		}

		user, err := a.users.GetByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusUnauthorized, errMsgUnauthorized)
				return
			}
			slog.Error("authenticate: failed to load user", "user_id", userID, "err", err)
			writeError(w, http.StatusInternalServerError, errMsgUnknown)
			return
		}

		next.ServeHTTP(w, r.WithContext(contextWithUser(r.Context(), user)))
	})
}

// RequireRole rejects any principal whose role does not exactly match
// the required one. It assumes Authenticate already ran; if no principal
// is attached it fails closed.
func (a *Authenticator) RequireRole(role types.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := userFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, errMsgNotAuthenticated)
				return
			}
			if user.Role != role {
				writeError(w, http.StatusUnauthorized, errMsgUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("invalid authorization")
	}
	return token, nil
}
