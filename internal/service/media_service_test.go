package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/exercise-catalog/internal/domain"
)

type fakeStorage struct {
	err         error
	lastKey     string
	lastType    string
	lastExpires time.Duration
}

func (f *fakeStorage) GeneratePresignedUploadURL(_ context.Context, key, contentType string, expires time.Duration) (string, error) {
	f.lastKey, f.lastType, f.lastExpires = key, contentType, expires
	if f.err != nil {
		return "", f.err
	}
	return "https://media.example/put/" + key, nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, expires time.Duration) (string, error) {
	f.lastKey, f.lastExpires = key, expires
	if f.err != nil {
		return "", f.err
	}
	return "https://media.example/get/" + key, nil
}

func TestMediaService_CreateUploadURL(t *testing.T) {
	fs := &fakeStorage{}
	svc := NewMediaService(fs, nil, 10*time.Minute)

	target, err := svc.CreateUploadURL(context.Background(), "alice", MediaVideo, "Video/MP4")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(target.ObjectKey, "exercises/alice/video/"))
	assert.True(t, strings.HasSuffix(target.ObjectKey, ".mp4"))
	assert.Equal(t, "https://media.example/put/"+target.ObjectKey, target.UploadURL)
	assert.Equal(t, "video/mp4", fs.lastType)
	assert.Equal(t, 10*time.Minute, fs.lastExpires)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), target.ExpiresAt, time.Minute)
}

func TestMediaService_CreateUploadURL_Rejects(t *testing.T) {
	svc := NewMediaService(&fakeStorage{}, nil, 0)
	ctx := context.Background()

	tests := []struct {
		name        string
		userID      string
		kind        MediaKind
		contentType string
	}{
		{"image type for video", "alice", MediaVideo, "image/png"},
		{"unknown kind", "alice", MediaKind("audio"), "audio/mpeg"},
		{"executable", "alice", MediaImage, "application/x-msdownload"},
		{"blank user", " ", MediaImage, "image/png"},
		{"user with slash", "../bob", MediaImage, "image/png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateUploadURL(ctx, tt.userID, tt.kind, tt.contentType)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestMediaService_StorageFailure(t *testing.T) {
	svc := NewMediaService(&fakeStorage{err: errors.New("s3 down")}, nil, 0)
	_, err := svc.CreateUploadURL(context.Background(), "alice", MediaImage, "image/png")
	assert.ErrorIs(t, err, domain.ErrStoreFault)
}

// fakeExercises serves a fixed catalog, whatever the caller.
type fakeExercises struct {
	visible []domain.UnifiedExercise
	err     error
	calls   int
}

func (f *fakeExercises) ReadExercises(context.Context, string, string) ([]domain.UnifiedExercise, error) {
	f.calls++
	return f.visible, f.err
}

func TestMediaService_CreateDownloadURL(t *testing.T) {
	fs := &fakeStorage{}
	catalog := &fakeExercises{}
	svc := NewMediaService(fs, catalog, 0)
	ctx := context.Background()

	url, err := svc.CreateDownloadURL(ctx, "alice", "exercises/alice/image/a.png")
	require.NoError(t, err)
	assert.Equal(t, "https://media.example/get/exercises/alice/image/a.png", url)
	assert.Zero(t, catalog.calls, "own keys need no catalog lookup")

	for _, bad := range []string{"", "secrets/key.pem", "exercises/../secrets", "/exercises/a.png", "exercises//a.png"} {
		_, err := svc.CreateDownloadURL(ctx, "alice", bad)
		assert.ErrorIs(t, err, domain.ErrValidation, bad)
	}

	_, err = svc.CreateDownloadURL(ctx, " ", "exercises/alice/image/a.png")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMediaService_CreateDownloadURL_OtherUsersKeys(t *testing.T) {
	catalog := &fakeExercises{visible: []domain.UnifiedExercise{
		{Exercise: domain.Exercise{ID: "e1", Name: "Squat", Video: "exercises/admin/video/squat.mp4"}},
		{
			Exercise: domain.Exercise{ID: "e2", Name: "Lunge"},
			Variant:  &domain.Variant{ID: "v1", Image: "exercises/coach/image/lunge.png"},
		},
	}}
	svc := NewMediaService(&fakeStorage{}, catalog, 0)
	ctx := context.Background()

	_, err := svc.CreateDownloadURL(ctx, "bob", "exercises/admin/video/squat.mp4")
	assert.NoError(t, err, "media of a visible exercise")

	_, err = svc.CreateDownloadURL(ctx, "bob", "exercises/coach/image/lunge.png")
	assert.NoError(t, err, "media of the caller's variant")

	_, err = svc.CreateDownloadURL(ctx, "bob", "exercises/alice/image/private.png")
	assert.ErrorIs(t, err, ErrMediaNotFound)
	assert.Equal(t, domain.ErrNotFound, domain.KindOf(err))

	// A user id that prefixes another one does not unlock its keys.
	_, err = svc.CreateDownloadURL(ctx, "ali", "exercises/alice/image/private.png")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMediaService_CreateDownloadURL_CatalogFailure(t *testing.T) {
	outage := fmt.Errorf("read exercises: %w", domain.ErrStoreFault)
	svc := NewMediaService(&fakeStorage{}, &fakeExercises{err: outage}, 0)

	_, err := svc.CreateDownloadURL(context.Background(), "bob", "exercises/alice/image/a.png")
	assert.ErrorIs(t, err, domain.ErrStoreFault)
}
