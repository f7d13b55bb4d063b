package service

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/logging"
)

const recipeImagePrefix = "recipe-images/"

// allowedImageTypes maps accepted content types to file extensions.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ObjectPutter is the subset of the S3 client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageService stores recipe images in S3.
type ImageService struct {
	client    ObjectPutter
	bucket    string
	objectURL func(key string) string
}

var _ IImageService = (*ImageService)(nil)

// NewImageService creates a new ImageService instance
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{
		client:    s3Config.Client,
		bucket:    s3Config.BucketName,
		objectURL: s3Config.ObjectURL,
	}
}

// NewImageServiceWithClient builds an ImageService over any PutObject implementation.
func NewImageServiceWithClient(client ObjectPutter, bucket string, objectURL func(string) string) *ImageService {
	return &ImageService{client: client, bucket: bucket, objectURL: objectURL}
}

// UploadRecipeImage stores the image under recipe-images/<uuid>.<ext> and returns its
// public URL.
func (s *ImageService) UploadRecipeImage(ctx context.Context, body io.Reader, size int64, contentType string) (string, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", &ValidationError{Field: "image", Message: fmt.Sprintf("unsupported content type %q", contentType)}
	}

	key := recipeImagePrefix + uuid.New().String() + ext
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := s.objectURL(key)
	logging.Ctx(ctx).Info().Str("key", key).Msg("uploaded recipe image")
	return url, nil
}
