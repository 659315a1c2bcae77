package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fittrack/apiserver/types"
)

// ExerciseRepository handles persistence for exercises.
type ExerciseRepository struct {
	db *sql.DB
}

func NewExerciseRepository(db *sql.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

// List returns all exercises with their owning program joined in.
func (r *ExerciseRepository) List(ctx context.Context) ([]types.Exercise, error) {
	const query = `
		SELECT e.id, e.name, e.difficulty, e.program_id, e.created_at, e.updated_at,
			p.id, p.name, p.created_at, p.updated_at
		FROM exercises e
		JOIN programs p ON p.id = e.program_id
		ORDER BY e.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []types.Exercise
	for rows.Next() {
		var exercise types.Exercise
		var program types.Program
		if err := rows.Scan(
			&exercise.ID,
			&exercise.Name,
			&exercise.Difficulty,
			&exercise.ProgramID,
			&exercise.CreatedAt,
			&exercise.UpdatedAt,
			&program.ID,
			&program.Name,
			&program.CreatedAt,
			&program.UpdatedAt,
		); err != nil {
			return nil, err
		}
		exercise.Program = &program
		exercises = append(exercises, exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *ExerciseRepository) Get(ctx context.Context, id int64) (types.Exercise, error) {
	const query = `
		SELECT id, name, difficulty, program_id, created_at, updated_at
		FROM exercises
		WHERE id = $1`
	var exercise types.Exercise
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&exercise.ID,
		&exercise.Name,
		&exercise.Difficulty,
		&exercise.ProgramID,
		&exercise.CreatedAt,
		&exercise.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Exercise{}, ErrNotFound
		}
		return types.Exercise{}, err
	}
	return exercise, nil
}

func (r *ExerciseRepository) Create(ctx context.Context, exercise types.Exercise) (types.Exercise, error) {
	now := time.Now()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	const query = `
		INSERT INTO exercises (name, difficulty, program_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		exercise.Name,
		exercise.Difficulty,
		exercise.ProgramID,
		exercise.CreatedAt,
		exercise.UpdatedAt,
	).Scan(&exercise.ID); err != nil {
		return types.Exercise{}, translateError(err)
	}
	return exercise, nil
}

// Update applies the patch to the exercise and returns the number of
// rows affected. A zero count means the target did not exist, which
// callers report as a no-op rather than an error.
func (r *ExerciseRepository) Update(ctx context.Context, id int64, patch types.ExercisePatch) (int64, error) {
	const query = `
		UPDATE exercises
		SET name = COALESCE($1, name),
			difficulty = COALESCE($2, difficulty),
			updated_at = $3
		WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, patch.Name, patch.Difficulty, time.Now(), id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Delete removes the exercise and returns the number of rows deleted.
func (r *ExerciseRepository) Delete(ctx context.Context, id int64) (int64, error) {
	const query = `DELETE FROM exercises WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
