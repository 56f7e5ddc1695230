package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

type S3Config struct {
	Endpoint  string // host[:port] of an S3 compatible endpoint, empty for AWS
	Region    string
	Bucket    string
	KeyID     string
	Secret    string
	PublicURL string // prefix used for returned references, defaults to s3://bucket
	PathStyle bool
}

// S3Store uploads images to a bucket through the AWS SDK v2.
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3Store(cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket must be provided")
	}
	if cfg.Region == "" {
		return nil, errors.New("s3 region must be provided")
	}
	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.PathStyle,
	}
	if cfg.KeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.KeyID, cfg.Secret, "")
	}
	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		if !strings.Contains(endpoint, "://") {
			endpoint = "https://" + endpoint
		}
		opts.BaseEndpoint = aws.String(endpoint)
	}

	publicURL := strings.TrimSuffix(cfg.PublicURL, "/")
	if publicURL == "" {
		publicURL = fmt.Sprintf("s3://%s", cfg.Bucket)
	}
	return &S3Store{
		client:    s3.New(opts),
		bucket:    cfg.Bucket,
		publicURL: publicURL,
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", errors.Wrapf(err, "put object %s/%s", s.bucket, key)
	}
	return s.publicURL + "/" + key, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return errors.Wrapf(err, "delete object %s/%s", s.bucket, key)
	}
	return nil
}

func (s *S3Store) KeyOf(ref string) (string, bool) {
	return keyUnder(s.publicURL, ref)
}
