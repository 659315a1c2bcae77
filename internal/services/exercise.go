package services

import (
	"context"

	"github.com/fittrack/apiserver/types"
)

// ExerciseRepository defines persistence operations for exercises.
type ExerciseRepository interface {
	List(ctx context.Context) ([]types.Exercise, error)
	Get(ctx context.Context, id int64) (types.Exercise, error)
	Create(ctx context.Context, exercise types.Exercise) (types.Exercise, error)
	Update(ctx context.Context, id int64, patch types.ExercisePatch) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// ExerciseService encapsulates exercise catalog use-cases.
type ExerciseService struct {
	repo ExerciseRepository
}

func NewExerciseService(repo ExerciseRepository) *ExerciseService {
	return &ExerciseService{repo: repo}
}

func (s *ExerciseService) List(ctx context.Context) ([]types.Exercise, error) {
	return s.repo.List(ctx)
}

func (s *ExerciseService) Get(ctx context.Context, id int64) (types.Exercise, error) {
	return s.repo.Get(ctx, id)
}

func (s *ExerciseService) Create(ctx context.Context, exercise types.Exercise) (types.Exercise, error) {
	return s.repo.Create(ctx, exercise)
}

// Update applies the patch and returns the number of affected rows.
func (s *ExerciseService) Update(ctx context.Context, id int64, patch types.ExercisePatch) (int64, error) {
	return s.repo.Update(ctx, id, patch)
}

// Delete removes the exercise and returns the number of deleted rows.
func (s *ExerciseService) Delete(ctx context.Context, id int64) (int64, error) {
	return s.repo.Delete(ctx, id)
}
