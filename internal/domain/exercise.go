// internal/domain/exercise.go
package domain

import (
	"time"
)

// Exercise represents a single exercise definition in the catalog.
// A nil UserID marks a global exercise; otherwise it is private to that user.
type Exercise struct {
	ID         string    `bson:"_id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Video      string    `bson:"video,omitempty" json:"video,omitempty"`
	Image      string    `bson:"image,omitempty" json:"image,omitempty"`
	CategoryID string    `bson:"categoryId" json:"categoryId"`
	UserID     *string   `bson:"userId" json:"userId,omitempty"` // Stored as null for global exercises
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsGlobal reports whether the exercise has no owner.
func (e *Exercise) IsGlobal() bool {
	return e.UserID == nil
}

// UnifiedExercise is the read-only view returned by catalog searches: an
// exercise joined with the requesting user's variant and its category.
// It is never persisted.
type UnifiedExercise struct {
	Exercise
	Variant  *Variant  `json:"variant"`
	Category *Category `json:"category"`
	HasUser  bool      `json:"hasUser"` // True when the exercise itself is private
}
