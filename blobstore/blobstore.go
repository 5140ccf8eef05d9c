package blobstore

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Store issues presigned URLs against the medical-documents bucket. Clients
// upload and download directly against blob storage; the API server never
// proxies file bytes.
type Store struct {
	presigner *s3.PresignClient
	bucket    string
	ttl       time.Duration
}

// New builds a Store using the default AWS credential chain.
func New(ctx context.Context, bucket string, ttl time.Duration) (*Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &Store{
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		ttl:       ttl,
	}, nil
}

// PresignUpload returns a URL the client can PUT the document to.
func (s *Store) PresignUpload(ctx context.Context, key string) (string, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign upload for %s: %w", key, err)
	}
	return req.URL, nil
}

// PresignDownload returns a short-lived GET URL for an uploaded document,
// used both for client reads and for handing the blob to the analyzer.
func (s *Store) PresignDownload(ctx context.Context, key string) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign download for %s: %w", key, err)
	}
	return req.URL, nil
}
