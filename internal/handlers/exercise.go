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

// ExerciseHandler provides HTTP handlers for the exercise catalog.
type ExerciseHandler struct {
	exercises *services.ExerciseService
}

// NewExerciseHandler constructs a handler with the provided service.
func NewExerciseHandler(exercises *services.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exercises: exercises}
}

// ExerciseRouter registers exercise routes on the given router. Listing
// is public; every mutation requires an authenticated admin.
func ExerciseRouter(r chi.Router, exercises *services.ExerciseService, authn *Authenticator) {
	handler := NewExerciseHandler(exercises)
	admin := authn.RequireRole(types.RoleAdmin)

	r.Get("/", handler.ListExercises)
	r.With(authn.Authenticate, admin).Post("/", handler.CreateExercise)
	r.Route("/{exerciseID}", func(r chi.Router) {
		r.With(authn.Authenticate, admin).Put("/", handler.UpdateExercise)
		r.With(authn.Authenticate, admin).Delete("/", handler.DeleteExercise)
	})
}

// ExerciseUpsertRequest is the JSON payload for create and update.
type ExerciseUpsertRequest struct {
	Name       string `json:"name"`
	Difficulty string `json:"difficulty"`
	ProgramID  int64  `json:"programID"`
}

func (h *ExerciseHandler) ListExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := h.exercises.List(r.Context())
	if err != nil {
		slog.Error("exercises: failed to list", "err", err)
		writeError(w, http.StatusInternalServerError, errMsgUnknown)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Message: "List of exercises",
		Data:    exercises,
	})
}

func (h *ExerciseHandler) CreateExercise(w http.ResponseWriter, r *http.Request) {
	var req ExerciseUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if msg := missingParamsMessage([]param{
		{"name", req.Name},
		{"difficulty", req.Difficulty},
		{"programID", req.ProgramID},
	}); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := h.exercises.Create(r.Context(), types.Exercise{
		Name:       req.Name,
		Difficulty: req.Difficulty,
		ProgramID:  req.ProgramID,
	})
	if err != nil {
		slog.Error("exercises: failed to create", "err", err)
		writeError(w, http.StatusInternalServerError, errMsgUnknown)
		return
	}

	writeJSON(w, http.StatusCreated, Response{
		Message: "Exercise created successfully",
		Data:    map[string]any{"exercise": created},
	})
}

func (h *ExerciseHandler) UpdateExercise(w http.ResponseWriter, r *http.Request) {
	id, err := parseExerciseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req ExerciseUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	var patch types.ExercisePatch
	if req.Name != "" {
		patch.Name = &req.Name
	}
	if req.Difficulty != "" {
		patch.Difficulty = &req.Difficulty
	}
	if patch.Empty() {
		writeError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	affected, err := h.exercises.Update(r.Context(), id, patch)
	if err != nil {
		slog.Error("exercises: failed to update", "exercise_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, errMsgUnknown)
		return
	}
	if affected == 0 {
		// Absent target is a lenient no-op, not a 404.
		writeJSON(w, http.StatusOK, Response{Message: "Nothing updated"})
		return
	}

	updated, err := h.exercises.Get(r.Context(), id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		slog.Error("exercises: failed to reload", "exercise_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, errMsgUnknown)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Message: "Exercise updated successfully",
		Data:    map[string]any{"exercise": updated},
	})
}

func (h *ExerciseHandler) DeleteExercise(w http.ResponseWriter, r *http.Request) {
	id, err := parseExerciseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	deleted, err := h.exercises.Delete(r.Context(), id)
	if err != nil {
		slog.Error("exercises: failed to delete", "exercise_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, errMsgUnknown)
		return
	}

	message := "Exercise deleted successfully"
	if deleted == 0 {
		message = "Nothing deleted"
	}
	writeJSON(w, http.StatusOK, Response{Message: message})
}

func parseExerciseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "exerciseID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New(missingParamsPrefix + "id")
	}
	return id, nil
}
