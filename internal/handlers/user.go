package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fittrack/apiserver/internal/services"
	"github.com/fittrack/apiserver/internal/store"
	"github.com/fittrack/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// UserHandler provides HTTP handlers for user accounts.
type UserHandler struct {
	users *services.UserService
}

// NewUserHandler constructs a handler with the provided service.
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// UserRouter registers user routes. Every route requires
// authentication; the full-detail views require the ADMIN role, while
// the base listing exposes only the public projection.
func UserRouter(r chi.Router, users *services.UserService, authn *Authenticator) {
	handler := NewUserHandler(users)
	admin := authn.RequireRole(types.RoleAdmin)

	r.Use(authn.Authenticate)
	r.Get("/", handler.ListUsers)
	r.Get("/profile-data/", handler.Profile)
	r.With(admin).Get("/all-users", handler.ListAllUsers)
	r.With(admin).Get("/{userID}", handler.GetUser)
	r.Put("/{userID}/", handler.UpdateUser)
}

// UserUpdateRequest is the JSON payload for account updates. Absent or
// falsy fields are left unchanged.
type UserUpdateRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	NickName string `json:"nickName"`
	Age      int    `json:"age"`
	Role     string `json:"role"`
}

// ListUsers returns the public projection of every account.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		slog.Error("users: failed to list", "err", err)
		writeError(w, http.StatusInternalServerError, errMsgUnknown)
		return
	}

	public := make([]types.PublicUser, 0, len(users))
	for _, user := range users {
		public = append(public, user.Public())
	}

	writeJSON(w, http.StatusOK, Response{
		Message: "List of users",
		Data:    public,
	})
}

// ListAllUsers returns every account with full detail. Admin only.
func (h *UserHandler) ListAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		slog.Error("users: failed to list", "err", err)
		writeError(w, http.StatusInternalServerError, errMsgUnknown)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Message: "List of users",
		Data:    users,
	})
}

// Profile returns the authenticated caller's own account.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, errMsgNotAuthenticated)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Message: "User profile",
		Data:    map[string]any{"user": user},
	})
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		slog.Error("users: failed to load", "user_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, errMsgUnknown)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Message: "User object",
		Data:    user,
	})
}

// UpdateUser patches an account. Callers may update themselves; admins
// may update anyone. Only admins may change roles.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, errMsgNotAuthenticated)
		return
	}

	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if caller.ID != id && caller.Role != types.RoleAdmin {
		writeError(w, http.StatusUnauthorized, errMsgUnauthorized)
		return
	}

	var req UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	target, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Absent target is a lenient no-op, not a 404.
			writeJSON(w, http.StatusOK, Response{Message: "Nothing updated"})
			return
		}
		slog.Error("users: failed to load", "user_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, errMsgUnknown)
		return
	}

	changed := false
	if req.Name != "" {
		target.Name = req.Name
		changed = true
	}
	if req.Surname != "" {
		target.Surname = req.Surname
		changed = true
	}
	if req.NickName != "" {
		target.NickName = req.NickName
		changed = true
	}
	if req.Age != 0 {
		target.Age = req.Age
		changed = true
	}
	if req.Role != "" && caller.Role == types.RoleAdmin {
		target.Role = types.Role(req.Role)
		changed = true
	}
	if !changed {
		writeError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	updated, err := h.users.Update(r.Context(), target)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeError(w, http.StatusConflict, errMsgUserExists)
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusOK, Response{Message: "Nothing updated"})
			return
		}
		slog.Error("users: failed to update", "user_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, errMsgUnknown)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Message: "User updated successfully",
		Data:    map[string]any{"user": updated},
	})
}

func parseUserID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "userID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New(missingParamsPrefix + "id")
	}
	return id, nil
}
