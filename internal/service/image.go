package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/doyensec/safeurl"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/errs"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/types"
)

// MaxImageBytes is the largest recipe photo accepted
const MaxImageBytes = 5 << 20

// ErrImagesDisabled is returned when no bucket is configured
var ErrImagesDisabled = errors.New("image storage is not configured")

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ObjectPutter is the subset of the S3 client used for uploads
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageService stores recipe photos in S3 and points recipes at them
type ImageService struct {
	putter    ObjectPutter
	bucket    string
	objectURL func(key string) string
	client    *http.Client
	recipes   *RecipeService
	log       *zap.Logger
}

// NewSafeClient returns an HTTP client that refuses private, loopback and
// link-local destinations, including after DNS resolution.
func NewSafeClient(timeout time.Duration) *http.Client {
	cfg := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes("http", "https").
		SetAllowedPorts(80, 443).
		Build()
	return safeurl.Client(cfg).Client
}

// NewImageService creates an ImageService. With a nil s3Config uploads fail with ErrImagesDisabled.
func NewImageService(s3Config *config.S3Config, recipes *RecipeService, log *zap.Logger) *ImageService {
	svc := &ImageService{
		client:  NewSafeClient(15 * time.Second),
		recipes: recipes,
		log:     log,
	}
	if s3Config != nil {
		svc.putter = s3Config.Client
		svc.bucket = s3Config.BucketName
		svc.objectURL = s3Config.ObjectURL
	}
	return svc
}

// readImage reads at most MaxImageBytes and sniffs the content type
func readImage(r io.Reader) ([]byte, string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	v := errs.NewValidationError()
	if len(data) == 0 {
		v.Add("image", "Image is empty")
	} else if len(data) > MaxImageBytes {
		v.Add("image", fmt.Sprintf("Image must be at most %d MB", MaxImageBytes>>20))
	}
	contentType := http.DetectContentType(data)
	if _, ok := imageExtensions[contentType]; !ok && v.Empty() {
		v.Add("image", "Image must be a JPEG, PNG, GIF or WebP file")
	}
	if err := v.OrNil(); err != nil {
		return nil, "", err
	}
	return data, contentType, nil
}

// authorize checks ownership before anything is fetched or uploaded,
// so rejected requests leave no objects behind
func (s *ImageService) authorize(ctx context.Context, caller *model.User, recipeID string) error {
	if s.putter == nil {
		return ErrImagesDisabled
	}
	recipe, err := s.recipes.GetRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	return checkOwner(&recipe, caller)
}

// UploadRecipeImage stores the photo read from body and sets it as the recipe image.
func (s *ImageService) UploadRecipeImage(ctx context.Context, caller *model.User, recipeID string, body io.Reader) (model.Recipe, error) {
	if err := s.authorize(ctx, caller, recipeID); err != nil {
		return model.Recipe{}, err
	}
	return s.save(ctx, caller, recipeID, body)
}

func (s *ImageService) save(ctx context.Context, caller *model.User, recipeID string, body io.Reader) (model.Recipe, error) {
	data, contentType, err := readImage(body)
	if err != nil {
		return model.Recipe{}, err
	}

	key := fmt.Sprintf("recipes/%s/%s%s", recipeID, uuid.NewString(), imageExtensions[contentType])
	_, err = s.putter.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return model.Recipe{}, fmt.Errorf("upload image: %w", err)
	}

	url := s.objectURL(key)
	s.log.Info("recipe image uploaded", zap.String("recipe_id", recipeID), zap.String("key", key))
	return s.recipes.UpdateRecipe(ctx, caller, recipeID, types.RecipePatch{Image: &url})
}

// ImportRecipeImage downloads a photo from rawURL and stores it like an upload
func (s *ImageService) ImportRecipeImage(ctx context.Context, caller *model.User, recipeID, rawURL string) (model.Recipe, error) {
	if err := s.authorize(ctx, caller, recipeID); err != nil {
		return model.Recipe{}, err
	}
	if !isWebURL(rawURL) {
		v := errs.NewValidationError()
		v.Add("url", "URL must be an http or https URL")
		return model.Recipe{}, v
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return model.Recipe{}, fmt.Errorf("build image request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		v := errs.NewValidationError()
		v.Add("url", "Image could not be fetched")
		s.log.Warn("image import failed", zap.String("url", rawURL), zap.Error(err))
		return model.Recipe{}, v
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v := errs.NewValidationError()
		v.Add("url", fmt.Sprintf("Image URL returned status %d", resp.StatusCode))
		return model.Recipe{}, v
	}
	return s.save(ctx, caller, recipeID, resp.Body)
}
