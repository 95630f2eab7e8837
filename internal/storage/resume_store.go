package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// minioAPI is the subset of the MinIO client used here, extracted so tests can
// run without a real server. *minio.Client satisfies it directly.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// ResumeStore keeps uploaded resumes in a MinIO bucket and hands back the
// reference path that gets persisted on the owning record.
type ResumeStore struct {
	api    minioAPI
	bucket string
}

// NewResumeStore creates a resume store backed by a real MinIO client.
func NewResumeStore(ctx context.Context, client *minio.Client, bucket string) (*ResumeStore, error) {
	return NewResumeStoreWithAPI(ctx, client, bucket)
}

// NewResumeStoreWithAPI allows injecting a mockable API (used in tests).
func NewResumeStoreWithAPI(ctx context.Context, api minioAPI, bucket string) (*ResumeStore, error) {
	s := &ResumeStore{api: api, bucket: bucket}

	exists, err := s.api.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := s.api.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return s, nil
}

// Save uploads a resume under the given key and returns its reference path.
func (s *ResumeStore) Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.api.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("upload resume: %w", err)
	}
	return "/" + s.bucket + "/" + key, nil
}

// Delete removes a stored resume.
func (s *ResumeStore) Delete(ctx context.Context, key string) error {
	if err := s.api.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	return nil
}
