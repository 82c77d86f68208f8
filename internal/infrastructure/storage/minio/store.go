// Package minio stores evidence document bytes in an S3-compatible object
// store.  Metadata lives in PostgreSQL; this package only handles the
// objects themselves.
package minio

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/BackCheck/justice-unveiled/internal/config"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/monitoring/logging"
	"github.com/BackCheck/justice-unveiled/pkg/errors"
)

// DocumentStore is the object-storage contract the interface layer uses.
type DocumentStore interface {
	Put(ctx context.Context, objectKey string, r io.Reader, size int64, contentType string) error
	// Get streams the stored object.  The caller closes the reader.
	Get(ctx context.Context, objectKey string) (io.ReadCloser, error)
	// PresignedGet returns a time-limited download URL that forces the
	// given file name on the browser.
	PresignedGet(ctx context.Context, objectKey, fileName string) (string, error)
	Remove(ctx context.Context, objectKey string) error
	Ping(ctx context.Context) error
}

type documentStore struct {
	client *minio.Client
	cfg    config.MinIOConfig
	logger logging.Logger
}

// NewDocumentStore connects to MinIO and creates the bucket if missing.
func NewDocumentStore(ctx context.Context, cfg config.MinIOConfig, log logging.Logger) (DocumentStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "minio client init failed").
			WithDetail(cfg.Endpoint)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "bucket check failed").
			WithDetail(cfg.Bucket)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeStorageError, "bucket creation failed").
				WithDetail(cfg.Bucket)
		}
		log.Info("created storage bucket", logging.String("bucket", cfg.Bucket))
	}

	return &documentStore{client: client, cfg: cfg, logger: log}, nil
}

func (s *documentStore) Put(ctx context.Context, objectKey string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, objectKey, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDocumentUploadFailed, "object upload failed").
			WithDetail(objectKey)
	}
	return nil
}

func (s *documentStore) Get(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.cfg.Bucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "object fetch failed").
			WithDetail(objectKey)
	}
	return obj, nil
}

func (s *documentStore) PresignedGet(ctx context.Context, objectKey, fileName string) (string, error) {
	params := url.Values{}
	if fileName != "" {
		params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	}
	u, err := s.client.PresignedGetObject(ctx, s.cfg.Bucket, objectKey, s.cfg.PresignExpiry, params)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeStorageError, "presign failed").
			WithDetail(objectKey)
	}
	return u.String(), nil
}

func (s *documentStore) Remove(ctx context.Context, objectKey string) error {
	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "object removal failed").
			WithDetail(objectKey)
	}
	return nil
}

func (s *documentStore) Ping(ctx context.Context) error {
	if _, err := s.client.BucketExists(ctx, s.cfg.Bucket); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "storage health check failed")
	}
	return nil
}
