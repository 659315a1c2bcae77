package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fittrack/apiserver/internal/services"
	"github.com/fittrack/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// CompletedExerciseHandler provides HTTP handlers for exercise
// completion records.
type CompletedExerciseHandler struct {
	completed *services.CompletedExerciseService
}

// NewCompletedExerciseHandler constructs a handler with the provided service.
func NewCompletedExerciseHandler(completed *services.CompletedExerciseService) *CompletedExerciseHandler {
	return &CompletedExerciseHandler{completed: completed}
}

// CompletedExerciseRouter registers completion-record routes. Every
// route requires an authenticated principal with the USER role; records
// are always scoped to that principal.
func CompletedExerciseRouter(r chi.Router, completed *services.CompletedExerciseService, authn *Authenticator) {
	handler := NewCompletedExerciseHandler(completed)

	r.Use(authn.Authenticate, authn.RequireRole(types.RoleUser))
	r.Get("/", handler.ListCompleted)
	r.Post("/", handler.CreateCompleted)
	r.Delete("/{recordID}", handler.DeleteCompleted)
}

// CompletedExerciseRequest is the JSON payload for recording a completion.
type CompletedExerciseRequest struct {
	ExerciseID int64 `json:"exerciseId"`
	Duration   int64 `json:"duration"`
}

func (h *CompletedExerciseHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, errMsgNotAuthenticated)
		return
	}

	records, err := h.completed.ListByUser(r.Context(), user.ID)
	if err != nil {
		slog.Error("completed-exercises: failed to list", "user_id", user.ID, "err", err)
		writeError(w, http.StatusInternalServerError, errMsgUnknown)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Message: "List of completed exercises",
		Data:    records,
	})
}

func (h *CompletedExerciseHandler) CreateCompleted(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, errMsgNotAuthenticated)
		return
	}

	var req CompletedExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if msg := missingParamsMessage([]param{
		{"exerciseId", req.ExerciseID},
		{"duration", req.Duration},
	}); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	record, err := h.completed.Record(r.Context(), user.ID, req.ExerciseID, req.Duration)
	if err != nil {
		slog.Error("completed-exercises: failed to create", "user_id", user.ID, "err", err)
		writeError(w, http.StatusInternalServerError, errMsgUnknown)
		return
	}

	writeJSON(w, http.StatusCreated, Response{
		Message: "Record of completing exercise created successfully",
		Data:    map[string]any{"completedExercise": record},
	})
}

// DeleteCompleted removes one of the caller's own records. The delete
// predicate includes the owner id, so targeting another user's record
// deletes nothing and reports a no-op.
func (h *CompletedExerciseHandler) DeleteCompleted(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, errMsgNotAuthenticated)
		return
	}

	raw := chi.URLParam(r, "recordID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, missingParamsPrefix+"id")
		return
	}

	deleted, err := h.completed.DeleteOwned(r.Context(), id, user.ID)
	if err != nil {
		slog.Error("completed-exercises: failed to delete", "record_id", id, "user_id", user.ID, "err", err)
		writeError(w, http.StatusInternalServerError, errMsgUnknown)
		return
	}

	message := "Exercise completion record deleted successfully"
	if deleted == 0 {
		message = "Nothing deleted"
	}
	writeJSON(w, http.StatusOK, Response{Message: message})
}
