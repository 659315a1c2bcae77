package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/fittrack/apiserver/types"
)

// CompletedExerciseRepository handles persistence for exercise
// completion records.
type CompletedExerciseRepository struct {
	db *sql.DB
}

func NewCompletedExerciseRepository(db *sql.DB) *CompletedExerciseRepository {
	return &CompletedExerciseRepository{db: db}
}

func (r *CompletedExerciseRepository) Create(ctx context.Context, record types.CompletedExercise) (types.CompletedExercise, error) {
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	const query = `
		INSERT INTO completed_exercises (user_id, exercise_id, duration, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		record.UserID,
		record.ExerciseID,
		record.Duration,
		record.CompletedAt,
		record.CreatedAt,
		record.UpdatedAt,
	).Scan(&record.ID); err != nil {
		return types.CompletedExercise{}, translateError(err)
	}
	return record, nil
}

// ListByUser returns all live completion records owned by the user.
func (r *CompletedExerciseRepository) ListByUser(ctx context.Context, userID int64) ([]types.CompletedExercise, error) {
	const query = `
		SELECT id, user_id, exercise_id, duration, completed_at, created_at, updated_at
		FROM completed_exercises
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY completed_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []types.CompletedExercise
	for rows.Next() {
		var record types.CompletedExercise
		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.ExerciseID,
			&record.Duration,
			&record.CompletedAt,
			&record.CreatedAt,
			&record.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteOwned soft-deletes the record only when it belongs to the given
// user. Ownership is part of the predicate so one user can never delete
// another user's record; a non-owner delete is a zero-count no-op.
func (r *CompletedExerciseRepository) DeleteOwned(ctx context.Context, id, userID int64) (int64, error) {
	const query = `
		UPDATE completed_exercises
		SET deleted_at = $1
		WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
