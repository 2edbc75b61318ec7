package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomaspeirotti/gastro-genius-ai/config"
)

// maxImageBytes caps uploaded recipe photos at 5 MiB.
const maxImageBytes = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// ImageService stores user-uploaded recipe photos in S3.
type ImageService struct {
	s3Config *config.S3Config
	log      zerolog.Logger
}

// NewImageService creates a new ImageService instance.
func NewImageService(s3Config *config.S3Config, log zerolog.Logger) *ImageService {
	return &ImageService{
		s3Config: s3Config,
		log:      log.With().Str("service", "image").Logger(),
	}
}

// UploadRecipeImage stores an image under the recipe's key space and returns
// its public URL. The content type must be a supported image format.
func (s *ImageService) UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, contentType string, body io.Reader) (string, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", NewValidationError(map[string]string{"image": "unsupported content type " + contentType})
	}

	data, err := io.ReadAll(io.LimitReader(body, maxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(data) > maxImageBytes {
		return "", NewValidationError(map[string]string{"image": "image exceeds 5MB limit"})
	}
	if len(data) == 0 {
		return "", NewValidationError(map[string]string{"image": "image is empty"})
	}

	key := fmt.Sprintf("recipe-images/%s/%s.%s", recipeID, uuid.New(), ext)
	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	s.log.Info().Str("recipe_id", recipeID.String()).Str("key", key).Msg("recipe image uploaded")
	return url, nil
}

// PresignImageURL creates a time-limited link for an object key.
func (s *ImageService) PresignImageURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	return s.s3Config.GeneratePresignedURL(ctx, key, expiration)
}
