package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Config describes how to reach the object store.
type Config struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	UseSSL     bool
	PublicBase string // store base address used in returned URLs, e.g. "http://localhost:9000"
}

// BucketClient is the subset of *minio.Client used by MinioStorage.
type BucketClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	SetBucketPolicy(ctx context.Context, bucketName, policy string) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinioStorage implements Storage on top of a MinIO (or any S3-compatible) backend.
// Bucket provisioning is lazy and memoized for the lifetime of the instance.
type MinioStorage struct {
	log    *zap.Logger
	client BucketClient
	cfg    Config

	mu      sync.Mutex
	ensured bool

	newToken func() string
}

// Dial creates a MinIO client from cfg and wraps it in a MinioStorage.
// No network call is made until the first EnsureBucket or Store.
func Dial(log *zap.Logger, cfg Config) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return New(log, client, cfg), nil
}

// New wraps an existing bucket client.
func New(log *zap.Logger, client BucketClient, cfg Config) *MinioStorage {
	return &MinioStorage{
		log:      log.Named("storage"),
		client:   client,
		cfg:      cfg,
		newToken: func() string { return uuid.NewString() },
	}
}

// EnsureBucket checks that the bucket exists and creates it when it does not.
// A concurrent creator winning the race ("already exists") counts as success.
func (s *MinioStorage) EnsureBucket(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ensured {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil && !isNoSuchBucket(err) {
		return ErrUnavailable.Wrap(fmt.Errorf("probe bucket %q: %w", s.cfg.Bucket, err))
	}

	if !exists {
		err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{})
		switch {
		case err == nil:
			s.log.Info("created bucket", zap.String("bucket", s.cfg.Bucket))
		case isAlreadyExists(err):
			s.log.Debug("bucket created concurrently", zap.String("bucket", s.cfg.Bucket))
		default:
			return ErrUnavailable.Wrap(fmt.Errorf("create bucket %q: %w", s.cfg.Bucket, err))
		}

		if err := s.client.SetBucketPolicy(ctx, s.cfg.Bucket, publicReadPolicy(s.cfg.Bucket)); err != nil {
			return ErrUnavailable.Wrap(fmt.Errorf("set bucket policy: %w", err))
		}
	}

	s.ensured = true
	return nil
}

// Store writes data under "<uuid>-<sanitized filename>" and returns the object URL.
func (s *MinioStorage) Store(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	if err := s.EnsureBucket(ctx); err != nil {
		return "", err
	}

	key := ObjectKey(s.newToken(), filename)
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", ErrWriteFailed.Wrap(fmt.Errorf("put object %q: %w", key, err))
	}

	return ObjectURL(s.cfg.PublicBase, s.cfg.Bucket, key), nil
}

func isNoSuchBucket(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchBucket"
}

func isAlreadyExists(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "BucketAlreadyOwnedByYou", "BucketAlreadyExists":
		return true
	}
	return false
}

// publicReadPolicy returns an S3 bucket policy JSON that allows anonymous GET on all objects.
func publicReadPolicy(bucket string) string {
	policy := map[string]interface{}{
		"Version": "2012-10-17",
		"Statement": []map[string]interface{}{
			{
				"Effect":    "Allow",
				"Principal": map[string]interface{}{"AWS": []string{"*"}},
				"Action":    []string{"s3:GetObject"},
				"Resource":  []string{fmt.Sprintf("arn:aws:s3:::%s/*", bucket)},
			},
		},
	}
	b, _ := json.Marshal(policy)
	return string(b)
}
