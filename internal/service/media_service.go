package service

import (
	"alcyxob/exercise-catalog/internal/domain"
	"alcyxob/exercise-catalog/internal/storage"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaKind says which exercise field an uploaded object is meant for.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// mediaKeyPrefix is the root of every exercise media object.
const mediaKeyPrefix = "exercises/"

// allowedMedia maps accepted content types to the key extension, per kind.
var allowedMedia = map[MediaKind]map[string]string{
	MediaImage: {
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
		"image/gif":  ".gif",
	},
	MediaVideo: {
		"video/mp4":       ".mp4",
		"video/quicktime": ".mov",
		"video/webm":      ".webm",
	},
}

// UploadTarget tells a client where to PUT a media file and which key to
// store afterwards in an exercise or variant video/image field.
type UploadTarget struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type MediaService interface {
	CreateUploadURL(ctx context.Context, userID string, kind MediaKind, contentType string) (*UploadTarget, error)
	CreateDownloadURL(ctx context.Context, userID, objectKey string) (string, error)
}

// ExerciseReader is the catalog read media downloads are authorized against.
// CatalogService satisfies it.
type ExerciseReader interface {
	ReadExercises(ctx context.Context, userID, name string) ([]domain.UnifiedExercise, error)
}

type mediaService struct {
	fileStorage storage.FileStorage
	exercises   ExerciseReader
	expiry      time.Duration
	now         func() time.Time
}

// NewMediaService creates a MediaService; a non-positive expiry falls back
// to storage.DefaultPresignedURLExpiry.
func NewMediaService(fileStorage storage.FileStorage, exercises ExerciseReader, expiry time.Duration) MediaService {
	if expiry <= 0 {
		expiry = storage.DefaultPresignedURLExpiry
	}
	return &mediaService{
		fileStorage: fileStorage,
		exercises:   exercises,
		expiry:      expiry,
		now:         time.Now,
	}
}

// CreateUploadURL reserves a fresh key under exercises/<user>/<kind>/ and
// presigns a PUT for it.
func (s *mediaService) CreateUploadURL(ctx context.Context, userID string, kind MediaKind, contentType string) (*UploadTarget, error) {
	if strings.TrimSpace(userID) == "" || strings.ContainsAny(userID, `/\`) || userID == ".." {
		return nil, domain.Validationf("user id is not usable in a media key")
	}
	types, ok := allowedMedia[kind]
	if !ok {
		return nil, domain.Validationf("unknown media kind %q", kind)
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := types[contentType]
	if !ok {
		return nil, domain.Validationf("content type %q is not allowed for %s", contentType, kind)
	}

	key := fmt.Sprintf("%s%s/%s/%s%s", mediaKeyPrefix, userID, kind, uuid.NewString(), ext)
	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, key, contentType, s.expiry)
	if err != nil {
		return nil, domain.Classify("presign upload", err)
	}

	return &UploadTarget{
		UploadURL: url,
		ObjectKey: key,
		ExpiresAt: s.now().UTC().Add(s.expiry),
	}, nil
}

// CreateDownloadURL presigns a GET for an exercise media key. Callers get
// keys under their own prefix, plus keys referenced by an exercise or
// variant they can see; anything else is reported as not found.
func (s *mediaService) CreateDownloadURL(ctx context.Context, userID, objectKey string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", domain.Validationf("user id is required")
	}
	clean := path.Clean("/" + objectKey)[1:]
	if clean != objectKey || !strings.HasPrefix(objectKey, mediaKeyPrefix) {
		return "", domain.Validationf("invalid media key")
	}

	if !strings.HasPrefix(objectKey, mediaKeyPrefix+userID+"/") {
		visible, err := s.referencedBy(ctx, userID, objectKey)
		if err != nil {
			return "", err
		}
		if !visible {
			return "", ErrMediaNotFound
		}
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, s.expiry)
	if err != nil {
		return "", domain.Classify("presign download", err)
	}
	return url, nil
}

// referencedBy reports whether objectKey is the video or image of an
// exercise or variant visible to userID.
func (s *mediaService) referencedBy(ctx context.Context, userID, objectKey string) (bool, error) {
	exercises, err := s.exercises.ReadExercises(ctx, userID, "")
	if err != nil {
		return false, err
	}
	for _, u := range exercises {
		if u.Video == objectKey || u.Image == objectKey {
			return true, nil
		}
		if u.Variant != nil && (u.Variant.Video == objectKey || u.Variant.Image == objectKey) {
			return true, nil
		}
	}
	return false, nil
}
