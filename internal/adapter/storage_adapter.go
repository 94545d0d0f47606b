package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"SereneCMSAPI/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type StorageAdapter struct {
	client       *s3.Client
	bucket       string
	endpoint     string
	region       string
	publicDomain string
}

func NewStorageAdapter(cfg *config.AppConfig, s3Client *s3.Client) *StorageAdapter {
	return &StorageAdapter{
		client:       s3Client,
		bucket:       cfg.S3Bucket,
		endpoint:     cfg.S3Endpoint,
		region:       cfg.S3Region,
		publicDomain: cfg.S3PublicDomain,
	}
}

func (s *StorageAdapter) Store(ctx context.Context, file *multipart.FileHeader, key string) error {
	opened, err := file.Open()
	if err != nil {
		return err
	}
	defer opened.Close()

	return s.StoreFromReader(ctx, opened, file.Header.Get("Content-Type"), key)
}

func (s *StorageAdapter) StoreFromReader(ctx context.Context, reader io.Reader, contentType string, key string) error {
	if s.client == nil {
		return errors.New("s3 client is not initialized")
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(filepath.ToSlash(key)),
		Body:        reader,
		ContentType: aws.String(contentType),
	})
	return err
}

func (s *StorageAdapter) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return errors.New("s3 client is not initialized")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(filepath.ToSlash(key)),
	})
	return err
}

func (s *StorageAdapter) PublicURL(key string) string {
	key = filepath.ToSlash(key)
	if s.publicDomain != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.publicDomain, "/"), key)
	}
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.endpoint, "/"), s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
