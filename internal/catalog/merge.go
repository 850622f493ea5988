package catalog

import (
	"strings"

	"alcyxob/exercise-catalog/internal/domain"
)

// Query describes a catalog read: who is asking and an optional name fragment.
type Query struct {
	UserID string
	Name   string
}

// Validate checks the query carries a requesting user.
func (q Query) Validate() error {
	if strings.TrimSpace(q.UserID) == "" {
		return domain.Validationf("user id is required")
	}
	return nil
}

// Search returns the normalized search text, "" when search is off.
func (q Query) Search() string {
	return NormalizeQuery(q.Name)
}

// Row is one left-joined record as a store returns it. Variant and Category
// are nil when the join found nothing.
type Row struct {
	Exercise domain.Exercise
	Variant  *domain.Variant
	Category *domain.Category
}

// Merge turns joined rows into unified exercises for q.UserID.
//
// Rows are kept only when the exercise is visible to the user. A variant that
// does not belong to the user, or points at another exercise, is dropped from
// its row. Each exercise appears once; when a store hands back several
// variants for the same exercise, the most recently updated one is kept. The
// search (if any) is then applied to the exercise name and that variant's
// name. Input order is preserved.
func Merge(q Query, rows []Row) ([]domain.UnifiedExercise, error) {
	merged := make([]domain.UnifiedExercise, 0, len(rows))
	seen := make(map[string]int, len(rows))

	for _, row := range rows {
		exercise, err := NormalizeExercise(row.Exercise)
		if err != nil {
			return nil, err
		}
		if !IsVisible(exercise.UserID, q.UserID) {
			continue
		}

		var variant *domain.Variant
		if row.Variant != nil && attaches(row.Variant, exercise.ID, q.UserID) {
			v, err := NormalizeVariant(*row.Variant)
			if err != nil {
				return nil, err
			}
			variant = &v
		}

		if i, ok := seen[exercise.ID]; ok {
			if newer(variant, merged[i].Variant) {
				merged[i].Variant = variant
			}
			continue
		}

		var category *domain.Category
		if row.Category != nil {
			c, err := NormalizeCategory(*row.Category)
			if err != nil {
				return nil, err
			}
			category = &c
		}

		seen[exercise.ID] = len(merged)
		merged = append(merged, domain.UnifiedExercise{
			Exercise: exercise,
			Variant:  variant,
			Category: category,
			HasUser:  exercise.UserID != nil,
		})
	}

	if q.Search() == "" {
		return merged, nil
	}
	result := merged[:0]
	for _, u := range merged {
		var variantName *string
		if u.Variant != nil {
			variantName = &u.Variant.Name
		}
		if Matches(u.Name, variantName, q.Name) {
			result = append(result, u)
		}
	}
	return result, nil
}

// newer reports whether a should replace b as the attached variant.
func newer(a, b *domain.Variant) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	case !a.UpdatedAt.Equal(b.UpdatedAt):
		return a.UpdatedAt.After(b.UpdatedAt)
	case !a.CreatedAt.Equal(b.CreatedAt):
		return a.CreatedAt.After(b.CreatedAt)
	default:
		return a.ID > b.ID
	}
}
