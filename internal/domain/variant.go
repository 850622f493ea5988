package domain

import "time"

// Variant is a user's personalization of an exercise (rename, own media,
// own category). Always owned by exactly one user.
type Variant struct {
	ID         string    `bson:"_id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Video      string    `bson:"video,omitempty" json:"video,omitempty"`
	Image      string    `bson:"image,omitempty" json:"image,omitempty"`
	CategoryID string    `bson:"categoryId" json:"categoryId"`
	UserID     string    `bson:"userId" json:"userId"`
	ExerciseID string    `bson:"exerciseId" json:"exerciseId"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}
