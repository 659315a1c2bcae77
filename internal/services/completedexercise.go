package services

import (
	"context"
	"time"

	"github.com/fittrack/apiserver/types"
)

// CompletedExerciseRepository defines persistence operations for
// completion records.
type CompletedExerciseRepository interface {
	Create(ctx context.Context, record types.CompletedExercise) (types.CompletedExercise, error)
	ListByUser(ctx context.Context, userID int64) ([]types.CompletedExercise, error)
	DeleteOwned(ctx context.Context, id, userID int64) (int64, error)
}

// CompletedExerciseService encapsulates completion-record use-cases.
type CompletedExerciseService struct {
	repo CompletedExerciseRepository
	now  func() time.Time
}

func NewCompletedExerciseService(repo CompletedExerciseRepository) *CompletedExerciseService {
	return &CompletedExerciseService{
		repo: repo,
		now:  time.Now,
	}
}

// Record creates a completion record owned by the given user. The owner
// and completion timestamp are set here, never taken from the request.
func (s *CompletedExerciseService) Record(ctx context.Context, userID, exerciseID, duration int64) (types.CompletedExercise, error) {
	return s.repo.Create(ctx, types.CompletedExercise{
		UserID:      userID,
		ExerciseID:  exerciseID,
		Duration:    duration,
		CompletedAt: s.now(),
	})
}

func (s *CompletedExerciseService) ListByUser(ctx context.Context, userID int64) ([]types.CompletedExercise, error) {
	return s.repo.ListByUser(ctx, userID)
}

// DeleteOwned deletes the record only if it belongs to userID and
// returns the number of deleted rows.
func (s *CompletedExerciseService) DeleteOwned(ctx context.Context, id, userID int64) (int64, error) {
	return s.repo.DeleteOwned(ctx, id, userID)
}
