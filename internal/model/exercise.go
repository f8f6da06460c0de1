package model

// DateLayout is the calendar form used for exercise dates, both in the
// API and in the exercises table. Storing dates as "YYYY-MM-DD" text
// keeps lexicographic order equal to chronological order, which is what
// the range filters and the ORDER BY rely on.
const DateLayout = "2006-01-02"

// Exercise is a single logged activity owned by exactly one user.
// Exercises are immutable once created — there is no update or delete
// path anywhere in the service.
type Exercise struct {
	ID          int64  `json:"id"          db:"id"`
	Description string `json:"description" db:"description"`
	Duration    int    `json:"duration"    db:"duration"`
	Date        string `json:"date"        db:"date"`
}

// CreatedExercise is the response shape for a freshly appended
// exercise: the exercise fields plus the owning user's id.
type CreatedExercise struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// ExerciseLog is the combined logs-plus-count response. Count describes
// the full filtered set, ignoring the pagination window applied to Logs.
type ExerciseLog struct {
	Logs  []Exercise `json:"logs"`
	Count int        `json:"count"`
}
