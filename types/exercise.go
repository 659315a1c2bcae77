package types

import "time"

// Program represents a training program that groups related exercises.
type Program struct {
	// ID is the unique identifier of the program.
	ID int64 `json:"id" db:"id"`

	// Name is the human-readable name of the program.
	Name string `json:"name" db:"name"`

	// CreatedAt is the timestamp when the program was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the program.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Exercise represents a single exercise in the catalog.
// Exercises belong to a program and can only be mutated by admins.
type Exercise struct {
	// ID is the unique identifier of the exercise.
	ID int64 `json:"id" db:"id"`

	// Name is the human-readable name of the exercise.
	Name string `json:"name" db:"name"`

	// Difficulty indicates the relative difficulty level of the exercise.
	Difficulty string `json:"difficulty" db:"difficulty"`

	// ProgramID identifies the program this exercise belongs to.
	ProgramID int64 `json:"programID" db:"program_id"`

	// Program is the owning program, populated on list and get views.
	Program *Program `json:"program,omitempty" db:"-"`

	// CreatedAt is the timestamp when the exercise was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the exercise.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ExercisePatch describes a partial update to an exercise.
// Nil fields are left unchanged.
type ExercisePatch struct {
	// Name replaces the exercise name when non-nil.
	Name *string

	// Difficulty replaces the difficulty when non-nil.
	Difficulty *string
}

// Empty reports whether the patch changes nothing.
func (p ExercisePatch) Empty() bool {
	return p.Name == nil && p.Difficulty == nil
}
