package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/EmpoweredVote/DoseRight/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ImageStore saves encoded images and returns the URL they are served from.
type ImageStore interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// ErrBadName rejects names that would escape the store.
var ErrBadName = errors.New("invalid image name")

// ErrNameTaken is returned when LocalStore already holds an image with the name.
var ErrNameTaken = errors.New("image name already in use")

// LocalStore writes images to a directory served under URLPrefix.
type LocalStore struct {
	dir    string
	prefix string
}

func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, prefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

func (l *LocalStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", ErrBadName
	}
	f, err := os.OpenFile(filepath.Join(l.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", ErrNameTaken
		}
		return "", fmt.Errorf("create image: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write image: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return l.prefix + "/" + name, nil
}

// S3Store uploads images to an S3-compatible bucket.
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Store builds a client from cfg. Static credentials are used when both
// keys are set; otherwise the default AWS chain applies. A custom endpoint
// (MinIO, R2) switches to path-style addressing.
func NewS3Store(ctx context.Context, cfg config.Config) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.S3Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.S3Region))
	}
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{client: client, bucket: cfg.S3Bucket, baseURL: publicBaseURL(cfg)}, nil
}

func publicBaseURL(cfg config.Config) string {
	if cfg.S3PublicBaseURL != "" {
		return strings.TrimSuffix(cfg.S3PublicBaseURL, "/")
	}
	if cfg.S3Endpoint != "" {
		return strings.TrimSuffix(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com", cfg.S3Bucket)
}

func (s *S3Store) Put(ctx context.Context, name string, data []byte) (string, error) {
	if name == "" || strings.Contains(name, "/") {
		return "", ErrBadName
	}
	key := path.Join("uploads", name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}

// NewStore returns the image store selected by cfg.ImageStore.
func NewStore(ctx context.Context, cfg config.Config) (ImageStore, error) {
	if cfg.ImageStore == "s3" {
		return NewS3Store(ctx, cfg)
	}
	return NewLocalStore(cfg.UploadDir, cfg.UploadURLPrefix)
}
