package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/exercise-catalog/internal/domain"
)

func TestNormalizeExercise_CopiesOwner(t *testing.T) {
	owner := "alice"
	raw := domain.Exercise{ID: "e1", Name: "Squat", UserID: &owner}

	got, err := NormalizeExercise(raw)
	require.NoError(t, err)
	require.NotNil(t, got.UserID)
	assert.Equal(t, "alice", *got.UserID)

	// The result must not alias the input.
	*got.UserID = "mallory"
	assert.Equal(t, "alice", owner)
}

func TestNormalizeExercise_EmptyOwnerIsGlobal(t *testing.T) {
	got, err := NormalizeExercise(domain.Exercise{ID: "e1", UserID: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, got.UserID)
	assert.True(t, got.IsGlobal())
}

func TestNormalize_TrimsDisplayStrings(t *testing.T) {
	e, err := NormalizeExercise(domain.Exercise{ID: "e1", Name: "  Squat\t", Video: " exercises/u/video/a.mp4 ", Image: " i.png"})
	require.NoError(t, err)
	assert.Equal(t, "Squat", e.Name)
	assert.Equal(t, "exercises/u/video/a.mp4", e.Video)
	assert.Equal(t, "i.png", e.Image)

	v, err := NormalizeVariant(domain.Variant{ID: "v1", Name: " Goblet ", Video: "v.mp4 ", Image: "\ni.png"})
	require.NoError(t, err)
	assert.Equal(t, "Goblet", v.Name)
	assert.Equal(t, "v.mp4", v.Video)
	assert.Equal(t, "i.png", v.Image)

	c, err := NormalizeCategory(domain.Category{ID: "c1", Name: " Legs "})
	require.NoError(t, err)
	assert.Equal(t, "Legs", c.Name)
}

func TestNormalize_MissingID(t *testing.T) {
	_, err := NormalizeExercise(domain.Exercise{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = NormalizeVariant(domain.Variant{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = NormalizeCategory(domain.Category{ID: " "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = NormalizeDescription(domain.Description{Description: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNormalizeDescriptions(t *testing.T) {
	got, err := NormalizeDescriptions([]domain.Description{
		{ID: "d1", Description: "slow eccentric", UserID: "u", ExerciseID: strPtr("e1")},
		{ID: "d2", Description: "general note", UserID: "u", ExerciseID: strPtr("")},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e1", *got[0].ExerciseID)
	assert.Nil(t, got[1].ExerciseID)

	_, err = NormalizeDescriptions([]domain.Description{{ID: ""}})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNormalizeCategories_Empty(t *testing.T) {
	got, err := NormalizeCategories(nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
