package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/marcos-nsantos/image-pipeline/internal/domain"
	"github.com/marcos-nsantos/image-pipeline/internal/domain/entity"
)

type S3Storage struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	now       func() time.Time
}

func NewS3Storage(awsCfg aws.Config, bucket string, usePathStyle bool) *S3Storage {
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = usePathStyle
	})

	return &S3Storage{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		now:       time.Now,
	}
}

func (s *S3Storage) Bucket() string {
	return s.bucket
}

// PresignUpload returns a browser-style POST grant. The policy pins the key
// and bounds the body to 1..maxBytes.
func (s *S3Storage) PresignUpload(ctx context.Context, bucket, key string, maxBytes int64, expiry time.Duration) (*entity.UploadGrant, error) {
	req, err := s.presigner.PresignPostObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignPostOptions) {
		opts.Expires = expiry
		opts.Conditions = []interface{}{
			[]interface{}{"content-length-range", 1, maxBytes},
		}
	})
	if err != nil {
		return nil, fmt.Errorf("generating presigned post: %w", err)
	}

	return &entity.UploadGrant{
		URL:       req.URL,
		Method:    "POST",
		Fields:    req.Values,
		ExpiresAt: s.now().UTC().Add(expiry),
	}, nil
}

func (s *S3Storage) PresignDownload(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	presignResult, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expiry
	})
	if err != nil {
		return "", fmt.Errorf("generating presigned url: %w", err)
	}
	return presignResult.URL, nil
}

func (s *S3Storage) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("getting s3://%s/%s: %w", bucket, key, mapNotFound(err))
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading s3://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}

func (s *S3Storage) HeadObject(ctx context.Context, bucket, key string) (int64, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, fmt.Errorf("heading s3://%s/%s: %w", bucket, key, mapNotFound(err))
	}
	return aws.ToInt64(out.ContentLength), nil
}

func (s *S3Storage) PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("uploading to s3: %w", err)
	}
	return nil
}

// HeadObject reports a missing key as a bare 404 API error, not NoSuchKey.
func mapNotFound(err error) error {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return fmt.Errorf("%w: %v", domain.ErrObjectNotFound, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
		return fmt.Errorf("%w: %v", domain.ErrObjectNotFound, err)
	}
	return err
}
