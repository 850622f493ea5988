package domain

import "time"

// Category is a global lookup entry exercises and variants point at.
type Category struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Description is a free-form note a user attaches to the catalog,
// optionally pinned to one exercise.
type Description struct {
	ID          string    `bson:"_id" json:"id"`
	Description string    `bson:"description" json:"description"`
	UserID      string    `bson:"userId" json:"userId"`
	ExerciseID  *string   `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
