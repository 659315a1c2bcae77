package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fittrack/apiserver/internal/auth"
	"github.com/fittrack/apiserver/internal/services"
	"github.com/fittrack/apiserver/internal/store"
	"github.com/fittrack/apiserver/types"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler provides registration and login endpoints.
type AuthHandler struct {
	users  *services.UserService
	issuer *auth.TokenIssuer
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(users *services.UserService, issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, issuer: issuer}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, users *services.UserService, issuer *auth.TokenIssuer) {
	handler := NewAuthHandler(users, issuer)

	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Age      int    `json:"age"`
	NickName string `json:"nickName"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new user account and returns a token.
//
// Uniqueness of email and nickname is enforced by the store's unique
// constraints; a duplicate surfaces as a 409 without revealing which
// field collided.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if msg := missingParamsMessage([]param{
		{"email", req.Email},
		{"password", req.Password},
		{"role", req.Role},
		{"age", req.Age},
		{"nickName", req.NickName},
		{"name", req.Name},
		{"surname", req.Surname},
	}); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("register: failed to hash password", "err", err)
		writeError(w, http.StatusInternalServerError, errMsgUnknown)
		return
	}

	user, err := h.users.Create(r.Context(), types.User{
		Email:        req.Email,
		Name:         req.Name,
		Surname:      req.Surname,
		NickName:     req.NickName,
		Age:          req.Age,
		Role:         types.Role(req.Role),
		PasswordHash: string(hashed),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeError(w, http.StatusConflict, errMsgUserExists)
			return
		}
		slog.Error("register: failed to create user", "err", err)
		writeError(w, http.StatusInternalServerError, errMsgUnknown)
		return
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		slog.Error("register: failed to issue token", "err", err)
		writeError(w, http.StatusInternalServerError, errMsgUnknown)
		return
	}

	writeJSON(w, http.StatusCreated, Response{
		Message: "User registered successfully",
		Data: map[string]any{
			"token": token,
			"user":  user,
		},
	})
}

// Login verifies credentials and returns a token.
//
// An unknown email and a wrong password produce byte-identical
// responses so callers cannot enumerate accounts.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if msg := missingParamsMessage([]param{
		{"email", req.Email},
		{"password", req.Password},
	}); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, errMsgInvalidCredentials)
			return
		}
		slog.Error("login: failed to load user", "err", err)
		writeError(w, http.StatusInternalServerError, errMsgUnknown)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, errMsgInvalidCredentials)
		return
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		slog.Error("login: failed to issue token", "err", err)
		writeError(w, http.StatusInternalServerError, errMsgUnknown)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Data: map[string]any{"token": token},
	})
}
