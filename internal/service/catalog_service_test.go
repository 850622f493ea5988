package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/exercise-catalog/internal/catalog"
	"alcyxob/exercise-catalog/internal/domain"
	"alcyxob/exercise-catalog/internal/repository"
	"alcyxob/exercise-catalog/internal/repository/sqlite"
)

func newSQLiteService(t *testing.T) CatalogService {
	t.Helper()
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	store := sqlite.NewStore(db)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Categories.EnsureNames(context.Background(), []string{"Legs", "Back"}))
	return NewCatalogService(store)
}

func categoryID(t *testing.T, svc CatalogService, name string) string {
	t.Helper()
	cats, err := svc.ReadExercisesCategories(context.Background())
	require.NoError(t, err)
	for _, c := range cats {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("category %q missing", name)
	return ""
}

func TestCatalogService_WriteThenRead(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()
	legs := categoryID(t, svc, "Legs")

	squat, err := svc.CreateExercise(ctx, CreateExerciseInput{Name: "Squat", CategoryID: legs})
	require.NoError(t, err)
	assert.Nil(t, squat.UserID)

	v, err := svc.CreateVariant(ctx, CreateVariantInput{Name: "V1", UserID: "alice", ExerciseID: squat.ID})
	require.NoError(t, err)
	assert.Equal(t, legs, v.CategoryID, "category inherited from the exercise")

	got, err := svc.ReadExercises(ctx, "alice", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Variant)
	assert.Equal(t, "V1", got[0].Variant.Name)
	assert.False(t, got[0].HasUser)
	require.NotNil(t, got[0].Category)
	assert.Equal(t, "Legs", got[0].Category.Name)

	_, err = svc.CreateVariant(ctx, CreateVariantInput{Name: "V2", UserID: "alice", ExerciseID: squat.ID})
	assert.ErrorIs(t, err, ErrVariantExists)
	assert.Equal(t, domain.ErrConflict, domain.KindOf(err))
}

func TestCatalogService_PrivateExerciseIsHidden(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()
	legs := categoryID(t, svc, "Legs")
	alice := "alice"

	private, err := svc.CreateExercise(ctx, CreateExerciseInput{Name: "Alice Only", CategoryID: legs, UserID: &alice})
	require.NoError(t, err)

	bob, err := svc.ReadExercises(ctx, "bob", "")
	require.NoError(t, err)
	assert.Empty(t, bob)

	// Bob cannot personalize or annotate what he cannot see.
	_, err = svc.CreateVariant(ctx, CreateVariantInput{Name: "Mine", UserID: "bob", ExerciseID: private.ID})
	assert.ErrorIs(t, err, ErrExerciseNotFound)
	_, err = svc.CreateExerciseDescription(ctx, CreateDescriptionInput{Description: "x", UserID: "bob", ExerciseID: &private.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	mine, err := svc.ReadExercises(ctx, "alice", "alice")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].HasUser)
}

func TestCatalogService_UpdateVariant(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()
	legs := categoryID(t, svc, "Legs")
	back := categoryID(t, svc, "Back")

	squat, err := svc.CreateExercise(ctx, CreateExerciseInput{Name: "Squat", CategoryID: legs})
	require.NoError(t, err)
	v, err := svc.CreateVariant(ctx, CreateVariantInput{Name: "V1", UserID: "alice", ExerciseID: squat.ID})
	require.NoError(t, err)

	updated, err := svc.UpdateVariant(ctx, UpdateVariantInput{VariantID: v.ID, UserID: "alice", Name: "Deadlift Hybrid", CategoryID: back})
	require.NoError(t, err)
	assert.Equal(t, "Deadlift Hybrid", updated.Name)

	found, err := svc.ReadExercises(ctx, "alice", "dead")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = svc.UpdateVariant(ctx, UpdateVariantInput{VariantID: "nonexistent", UserID: "alice", Name: "x"})
	assert.ErrorIs(t, err, ErrVariantNotFound)

	_, err = svc.UpdateVariant(ctx, UpdateVariantInput{VariantID: v.ID, UserID: "bob", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogService_Descriptions(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()
	legs := categoryID(t, svc, "Legs")
	squat, err := svc.CreateExercise(ctx, CreateExerciseInput{Name: "Squat", CategoryID: legs})
	require.NoError(t, err)

	d, err := svc.CreateExerciseDescription(ctx, CreateDescriptionInput{Description: "knees out", UserID: "alice", ExerciseID: &squat.ID})
	require.NoError(t, err)
	assert.Equal(t, squat.ID, *d.ExerciseID)

	empty := ""
	d, err = svc.CreateExerciseDescription(ctx, CreateDescriptionInput{Description: "general", UserID: "alice", ExerciseID: &empty})
	require.NoError(t, err)
	assert.Nil(t, d.ExerciseID)

	list, err := svc.ReadExercisesDescriptions(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = svc.ReadExercisesDescriptions(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCatalogService_Validation(t *testing.T) {
	svc := NewCatalogService(&repository.Store{})
	ctx := context.Background()
	blank := "  "

	tests := []struct {
		name string
		call func() error
	}{
		{"exercise without name", func() error {
			_, err := svc.CreateExercise(ctx, CreateExerciseInput{Name: " ", CategoryID: "c"})
			return err
		}},
		{"exercise with blank owner", func() error {
			_, err := svc.CreateExercise(ctx, CreateExerciseInput{Name: "x", CategoryID: "c", UserID: &blank})
			return err
		}},
		{"variant without exercise", func() error {
			_, err := svc.CreateVariant(ctx, CreateVariantInput{Name: "x", UserID: "u"})
			return err
		}},
		{"description without text", func() error {
			_, err := svc.CreateExerciseDescription(ctx, CreateDescriptionInput{UserID: "u"})
			return err
		}},
		{"read without user", func() error {
			_, err := svc.ReadExercises(ctx, "", "squat")
			return err
		}},
		{"descriptions without user", func() error {
			_, err := svc.ReadExercisesDescriptions(ctx, " ")
			return err
		}},
		{"update without variant id", func() error {
			_, err := svc.UpdateVariant(ctx, UpdateVariantInput{UserID: "u", Name: "x"})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.Equal(t, domain.ErrValidation, domain.KindOf(err))
		})
	}
}

// failingExercises simulates a store outage.
type failingExercises struct{ err error }

func (f failingExercises) Create(context.Context, *domain.Exercise) (*domain.Exercise, error) {
	return nil, f.err
}
func (f failingExercises) GetByID(context.Context, string) (*domain.Exercise, error) {
	return nil, f.err
}
func (f failingExercises) List(context.Context, catalog.Query) ([]catalog.Row, error) {
	return nil, f.err
}

// leakyExercises returns every row regardless of the query.
type leakyExercises struct {
	failingExercises
	rows []catalog.Row
}

func (l leakyExercises) List(context.Context, catalog.Query) ([]catalog.Row, error) {
	return l.rows, nil
}

func TestCatalogService_StoreFaultIsClassified(t *testing.T) {
	outage := errors.New("connection refused")
	svc := NewCatalogService(&repository.Store{Exercises: failingExercises{err: outage}})

	got, err := svc.ReadExercises(context.Background(), "alice", "")
	require.Error(t, err)
	assert.Nil(t, got, "no partial results on failure")
	assert.ErrorIs(t, err, domain.ErrStoreFault)
	assert.ErrorIs(t, err, outage)

	_, err = svc.CreateExercise(context.Background(), CreateExerciseInput{Name: "x", CategoryID: "c"})
	assert.Equal(t, domain.ErrStoreFault, domain.KindOf(err))
}

func TestCatalogService_KnownKindPassesThrough(t *testing.T) {
	svc := NewCatalogService(&repository.Store{Exercises: failingExercises{err: domain.Validationf("bad row")}})
	_, err := svc.ReadExercises(context.Background(), "alice", "")
	assert.Equal(t, domain.ErrValidation, domain.KindOf(err))
	assert.NotErrorIs(t, err, domain.ErrStoreFault)
}

func TestCatalogService_MergeGuardsAgainstLeakyStore(t *testing.T) {
	bob := "bob"
	rows := []catalog.Row{
		{Exercise: domain.Exercise{ID: "e1", Name: "Squat"}, Variant: &domain.Variant{ID: "v1", ExerciseID: "e1", UserID: "bob", Name: "Bob's"}},
		{Exercise: domain.Exercise{ID: "e2", Name: "Bob Private", UserID: &bob}},
	}
	svc := NewCatalogService(&repository.Store{Exercises: leakyExercises{rows: rows}})

	got, err := svc.ReadExercises(context.Background(), "alice", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].ID)
	assert.Nil(t, got[0].Variant)
}
