package upload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/EmpoweredVote/DoseRight/internal/config"
	"github.com/EmpoweredVote/DoseRight/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testRules = Rules{MaxBytes: 5 << 20, AllowedExtensions: config.DefaultAllowedExtensions}

func statusOf(t *testing.T, err error) (int, string) {
	t.Helper()
	var ce *utils.ClientInputError
	require.True(t, errors.As(err, &ce), "expected ClientInputError, got %v", err)
	return ce.Status, ce.Message
}

func TestRules_Check(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		status   int
		message  string
	}{
		{"accepted png", "pill.png", 1024, 0, ""},
		{"accepted upper-case", "PILL.JPEG", 1024, 0, ""},
		{"accepted webp at limit", "pill.webp", 5 << 20, 0, ""},
		{"empty name", "", 10, http.StatusBadRequest, "No image selected"},
		{"gif rejected", "pill.gif", 10, http.StatusBadRequest, "Invalid file type"},
		{"no extension", "pill", 10, http.StatusBadRequest, "Invalid file type"},
		{"six megabytes", "pill.jpg", 6 << 20, http.StatusRequestEntityTooLarge, "File too large"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := testRules.Check(tc.filename, tc.size)
			if tc.status == 0 {
				assert.NoError(t, err)
				return
			}
			status, msg := statusOf(t, err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.message, msg)
		})
	}
}

func TestToJPEG_FlattensTransparency(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	// Left strip opaque red, the rest fully transparent.
	for y := 0; y < 32; y++ {
		for x := 0; x < 8; x++ {
			src.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	var in bytes.Buffer
	require.NoError(t, png.Encode(&in, src))

	out, err := ToJPEG(&in)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())

	r, g, b, _ := img.At(31, 31).RGBA()
	assert.Greater(t, r>>8, uint32(200), "transparent pixels become white")
	assert.Greater(t, g>>8, uint32(200))
	assert.Greater(t, b>>8, uint32(200))
}

func TestToJPEG_ScalesLargeImages(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, MaxDimension*2, 10))
	var in bytes.Buffer
	require.NoError(t, png.Encode(&in, src))

	out, err := ToJPEG(&in)
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, MaxDimension, cfg.Width)
	assert.Equal(t, 5, cfg.Height)
}

func TestToJPEG_RejectsGarbage(t *testing.T) {
	_, err := ToJPEG(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestFit(t *testing.T) {
	w, h := fit(100, 50, 2048)
	assert.Equal(t, [2]int{100, 50}, [2]int{w, h})

	w, h = fit(1000, 4000, 2000)
	assert.Equal(t, [2]int{500, 2000}, [2]int{w, h})
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 3, 1, 14, 5, 9, 0, time.UTC)
	name := regexp.MustCompile(`^20240301_140509_[0-9a-f]{8}_([a-z0-9-]+)\.jpg$`)

	tests := map[string]string{
		"My Pill Photo.PNG":     "my-pill-photo",
		"../../etc/passwd.webp": "passwd",
		"???.png":               "image",
	}
	for in, slug := range tests {
		got := Filename(in, now)
		m := name.FindStringSubmatch(got)
		require.NotNil(t, m, "Filename(%q) = %q", in, got)
		assert.Equal(t, slug, m[1])
	}
}

func TestFilename_UniqueWithinSecond(t *testing.T) {
	now := time.Date(2024, 3, 1, 14, 5, 9, 0, time.UTC)
	assert.NotEqual(t, Filename("pill.jpg", now), Filename("pill.jpg", now))
}

func TestLocalStore_Put(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStore(dir, "/static/uploads/")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "a.jpg", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/a.jpg", url)

	got, err := os.ReadFile(filepath.Join(dir, "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)

	_, err = store.Put(context.Background(), "../escape.jpg", []byte("x"))
	assert.ErrorIs(t, err, ErrBadName)
}

func TestLocalStore_PutKeepsExistingImage(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/static/uploads")
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "a.jpg", []byte("first"))
	require.NoError(t, err)
	_, err = store.Put(context.Background(), "a.jpg", []byte("second"))
	assert.ErrorIs(t, err, ErrNameTaken)

	got, err := os.ReadFile(filepath.Join(dir, "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)
}

func TestFileServer(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20240101_101010_pill.jpg"), []byte("jpeg"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	r := chi.NewRouter()
	r.Handle("/static/uploads/*", FileServer(dir, "/static/uploads"))

	tests := []struct {
		path string
		want int
	}{
		{"/static/uploads/20240101_101010_pill.jpg", http.StatusOK},
		{"/static/uploads/", http.StatusNotFound},
		{"/static/uploads/nested/", http.StatusNotFound},
		{"/static/uploads/missing.jpg", http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.want, rec.Code, tt.path)
		assert.NotContains(t, rec.Body.String(), "<a href", tt.path)
	}
}

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com", publicBaseURL(config.Config{S3PublicBaseURL: "https://cdn.example.com/"}))
	assert.Equal(t, "http://minio:9000/meds", publicBaseURL(config.Config{S3Endpoint: "http://minio:9000", S3Bucket: "meds"}))
	assert.Equal(t, "https://meds.s3.amazonaws.com", publicBaseURL(config.Config{S3Bucket: "meds"}))
}

func TestNewStore_DefaultsToLocal(t *testing.T) {
	store, err := NewStore(context.Background(), config.Config{UploadDir: t.TempDir(), UploadURLPrefix: "/static/uploads"})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)
}
