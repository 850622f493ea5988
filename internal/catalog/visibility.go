// Package catalog holds the rules that decide what a user sees when reading
// the exercise catalog: visibility, name search, and the merge of global
// exercises with a user's own variants.
package catalog

import "alcyxob/exercise-catalog/internal/domain"

// IsVisible reports whether userID may see an exercise owned by ownerID.
// A nil owner marks a global exercise, which everybody sees.
func IsVisible(ownerID *string, userID string) bool {
	return ownerID == nil || *ownerID == userID
}

// attaches reports whether variant may be joined onto exerciseID for userID.
// Users only ever see their own personalization.
func attaches(variant *domain.Variant, exerciseID, userID string) bool {
	return variant.ExerciseID == exerciseID && variant.UserID == userID
}
