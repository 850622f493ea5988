package catalog

import (
	"strings"

	"alcyxob/exercise-catalog/internal/domain"
)

// NormalizeExercise returns a fresh copy of a raw exercise record with its
// display strings trimmed. Records without an id are rejected.
func NormalizeExercise(raw domain.Exercise) (domain.Exercise, error) {
	if strings.TrimSpace(raw.ID) == "" {
		return domain.Exercise{}, domain.Validationf("exercise record has no id")
	}
	out := raw
	out.Name = strings.TrimSpace(raw.Name)
	out.Video = strings.TrimSpace(raw.Video)
	out.Image = strings.TrimSpace(raw.Image)
	out.UserID = optionalID(raw.UserID)
	return out, nil
}

// NormalizeVariant returns a fresh copy of a raw variant record.
func NormalizeVariant(raw domain.Variant) (domain.Variant, error) {
	if strings.TrimSpace(raw.ID) == "" {
		return domain.Variant{}, domain.Validationf("variant record has no id")
	}
	out := raw
	out.Name = strings.TrimSpace(raw.Name)
	out.Video = strings.TrimSpace(raw.Video)
	out.Image = strings.TrimSpace(raw.Image)
	return out, nil
}

// NormalizeCategory returns a fresh copy of a raw category record.
func NormalizeCategory(raw domain.Category) (domain.Category, error) {
	if strings.TrimSpace(raw.ID) == "" {
		return domain.Category{}, domain.Validationf("category record has no id")
	}
	out := raw
	out.Name = strings.TrimSpace(raw.Name)
	return out, nil
}

// NormalizeDescription returns a fresh copy of a raw description record.
func NormalizeDescription(raw domain.Description) (domain.Description, error) {
	if strings.TrimSpace(raw.ID) == "" {
		return domain.Description{}, domain.Validationf("description record has no id")
	}
	out := raw
	out.ExerciseID = optionalID(raw.ExerciseID)
	return out, nil
}

// NormalizeCategories normalizes a list, failing on the first bad record.
func NormalizeCategories(raw []domain.Category) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(raw))
	for _, r := range raw {
		c, err := NormalizeCategory(r)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// NormalizeDescriptions normalizes a list, failing on the first bad record.
func NormalizeDescriptions(raw []domain.Description) ([]domain.Description, error) {
	out := make([]domain.Description, 0, len(raw))
	for _, r := range raw {
		d, err := NormalizeDescription(r)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// optionalID copies a nullable id; an empty string counts as null.
func optionalID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	v := *id
	return &v
}
