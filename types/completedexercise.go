package types

import "time"

// CompletedExercise represents a record of a user completing an exercise.
// Records are owned by the user who created them; deletion is scoped to
// the owner at the query level.
type CompletedExercise struct {
	// ID is the unique identifier of the record.
	ID int64 `json:"id" db:"id"`

	// UserID identifies the user who completed the exercise.
	UserID int64 `json:"userId" db:"user_id"`

	// ExerciseID identifies the exercise that was completed.
	ExerciseID int64 `json:"exerciseId" db:"exercise_id"`

	// Duration is how long the exercise took, in seconds.
	Duration int64 `json:"duration" db:"duration"`

	// CompletedAt is the timestamp at which the exercise was completed.
	CompletedAt time.Time `json:"completedAt" db:"completed_at"`

	// CreatedAt is the timestamp when the record was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the record.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
