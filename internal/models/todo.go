package models

import "time"

// Todo is a single todo item owned by the user that created it.
// CompletedAt holds epoch milliseconds and is non-nil exactly when
// Completed is true.
type Todo struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Completed   bool      `json:"completed"`
	CompletedAt *int64    `json:"completedAt"`
	Creator     string    `json:"creator"`
	CreatedAt   time.Time `json:"createdAt"`
}
