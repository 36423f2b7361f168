package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/internal/errs"
	"github.com/pageza/recipebox/backend/internal/gateway"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/store"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

type fakePutter struct {
	mu   sync.Mutex
	keys []string
	body map[string][]byte
	err  error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.body == nil {
		f.body = map[string][]byte{}
	}
	key := aws.ToString(params.Key)
	f.keys = append(f.keys, key)
	f.body[key] = data
	return &s3.PutObjectOutput{}, nil
}

func newImageService(t *testing.T, putter ObjectPutter) *ImageService {
	t.Helper()
	recipes := NewRecipeService(store.NewRecipeStore(gateway.NewMemoryGateway(), store.DefaultRecipes), nil, zap.NewNop())
	return &ImageService{
		putter:    putter,
		bucket:    "recipe-images",
		objectURL: func(key string) string { return "https://cdn.example.com/" + key },
		client:    &http.Client{Timeout: 5 * time.Second},
		recipes:   recipes,
		log:       zap.NewNop(),
	}
}

func TestUploadRecipeImage(t *testing.T) {
	putter := &fakePutter{}
	svc := newImageService(t, putter)
	owner := &model.User{ID: "user1"}

	recipe, err := svc.UploadRecipeImage(context.Background(), owner, "1", bytes.NewReader(pngHeader))
	require.NoError(t, err)

	require.Len(t, putter.keys, 1)
	key := putter.keys[0]
	assert.True(t, strings.HasPrefix(key, "recipes/1/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.Equal(t, pngHeader, putter.body[key])
	assert.Equal(t, "https://cdn.example.com/"+key, recipe.Image)

	stored, err := svc.recipes.GetRecipe(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, recipe.Image, stored.Image)
}

func TestUploadRecipeImageRejects(t *testing.T) {
	ctx := context.Background()

	t.Run("not the owner", func(t *testing.T) {
		putter := &fakePutter{}
		svc := newImageService(t, putter)
		_, err := svc.UploadRecipeImage(ctx, &model.User{ID: "user2"}, "1", bytes.NewReader(pngHeader))
		assert.ErrorIs(t, err, errs.ErrPermissionDenied)
		assert.Empty(t, putter.keys)
	})

	t.Run("unknown recipe", func(t *testing.T) {
		svc := newImageService(t, &fakePutter{})
		_, err := svc.UploadRecipeImage(ctx, &model.User{ID: "user1"}, "404", bytes.NewReader(pngHeader))
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("not an image", func(t *testing.T) {
		putter := &fakePutter{}
		svc := newImageService(t, putter)
		_, err := svc.UploadRecipeImage(ctx, &model.User{ID: "user1"}, "1", strings.NewReader("plain text"))
		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Empty(t, putter.keys)
	})

	t.Run("too large", func(t *testing.T) {
		svc := newImageService(t, &fakePutter{})
		big := append(append([]byte{}, pngHeader...), make([]byte, MaxImageBytes)...)
		_, err := svc.UploadRecipeImage(ctx, &model.User{ID: "user1"}, "1", bytes.NewReader(big))
		var verr *errs.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Image must be at most 5 MB", verr.Fields["image"])
	})

	t.Run("storage failure", func(t *testing.T) {
		svc := newImageService(t, &fakePutter{err: errors.New("bucket gone")})
		_, err := svc.UploadRecipeImage(ctx, &model.User{ID: "user1"}, "1", bytes.NewReader(pngHeader))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "upload image")
	})

	t.Run("disabled", func(t *testing.T) {
		svc := NewImageService(nil, newImageService(t, nil).recipes, zap.NewNop())
		_, err := svc.UploadRecipeImage(ctx, &model.User{ID: "user1"}, "1", bytes.NewReader(pngHeader))
		assert.ErrorIs(t, err, ErrImagesDisabled)
	})
}

func TestImportRecipeImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/photo.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(pngHeader)
	}))
	defer srv.Close()

	putter := &fakePutter{}
	svc := newImageService(t, putter)
	owner := &model.User{ID: "user1"}
	ctx := context.Background()

	recipe, err := svc.ImportRecipeImage(ctx, owner, "1", srv.URL+"/photo.png")
	require.NoError(t, err)
	require.Len(t, putter.keys, 1)
	assert.Equal(t, "https://cdn.example.com/"+putter.keys[0], recipe.Image)

	_, err = svc.ImportRecipeImage(ctx, owner, "1", srv.URL+"/missing.png")
	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Image URL returned status 404", verr.Fields["url"])

	_, err = svc.ImportRecipeImage(ctx, owner, "1", "file:///etc/passwd")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "url")
}

func TestSafeClientRefusesLoopback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(pngHeader)
	}))
	defer srv.Close()

	putter := &fakePutter{}
	svc := newImageService(t, putter)
	svc.client = NewSafeClient(2 * time.Second)

	_, err := svc.ImportRecipeImage(context.Background(), &model.User{ID: "user1"}, "1", srv.URL)
	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Image could not be fetched", verr.Fields["url"])
	assert.Empty(t, putter.keys)
}
