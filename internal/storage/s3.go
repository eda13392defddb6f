package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// ErrBucketNotExists is returned when the configured bucket is missing.
var ErrBucketNotExists = errors.New("bucket does not exist")

// S3Options configures an S3Storage.
type S3Options struct {
	Region string
	// Endpoint overrides the AWS endpoint for S3-compatible services.
	// Empty means the regional AWS endpoint.
	Endpoint string
	// Static credentials. When both are empty the AWS default credential
	// chain (environment, shared config, instance role) is used.
	AccessKey  string
	SecretKey  string
	Bucket     string
	PublicBase string
	UseSSL     bool
}

// S3Storage implements Storage on Amazon S3 through aws-sdk-go. Every object
// is written with a public-read ACL.
type S3Storage struct {
	s3cli      s3iface.S3API
	bucket     string
	publicBase string
}

// NewS3Storage creates an AWS session and returns an S3Storage for opts.Bucket.
func NewS3Storage(opts S3Options) (*S3Storage, error) {
	if opts.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}
	if opts.Region == "" {
		return nil, errors.New("s3 region is required")
	}

	awsCfg := &aws.Config{
		Region: aws.String(opts.Region),
	}
	if opts.AccessKey != "" || opts.SecretKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(opts.AccessKey, opts.SecretKey, "")
	}
	if opts.Endpoint != "" {
		awsCfg.Endpoint = aws.String(endpointURL(opts.Endpoint, opts.UseSSL))
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}

	return NewS3StorageWithClient(s3.New(sess), opts), nil
}

// NewS3StorageWithClient wraps an existing S3 client.
func NewS3StorageWithClient(s3cli s3iface.S3API, opts S3Options) *S3Storage {
	return &S3Storage{
		s3cli:      s3cli,
		bucket:     opts.Bucket,
		publicBase: s3PublicBase(opts),
	}
}

// Upload puts the object under key with a public-read ACL. S3 writes are
// atomic: a failed upload never leaves a partial object behind.
func (s *S3Storage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	body, ok := reader.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(reader)
		if err != nil {
			return fmt.Errorf("read object body %q: %w", key, err)
		}
		body = bytes.NewReader(data)
		size = int64(len(data))
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         aws.String(s3.ObjectCannedACLPublicRead),
	}
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.s3cli.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("put object %q: %w", key, translateS3Error(err))
	}
	return nil
}

// Delete removes the object at key from the bucket.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.s3cli.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %q: %w", key, translateS3Error(err))
	}
	return nil
}

// PublicURL returns the browser-accessible URL for the given key.
func (s *S3Storage) PublicURL(key string) string {
	return joinURL(s.publicBase, key)
}

func translateS3Error(err error) error {
	if aerr, ok := err.(awserr.Error); ok {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchBucket:
			return fmt.Errorf("%w: %s", ErrBucketNotExists, aerr.Message())
		case s3.ErrCodeNoSuchKey:
			return fmt.Errorf("%w: %s", ErrNotFound, aerr.Message())
		}
	}
	return err
}

// s3PublicBase picks the URL prefix objects are served from: an explicit
// public base, the path-style custom endpoint, or the virtual-hosted AWS host.
func s3PublicBase(opts S3Options) string {
	switch {
	case opts.PublicBase != "":
		return strings.TrimRight(opts.PublicBase, "/")
	case opts.Endpoint != "":
		return strings.TrimRight(endpointURL(opts.Endpoint, opts.UseSSL), "/") + "/" + opts.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	}
}

func endpointURL(endpoint string, useSSL bool) string {
	if strings.Contains(endpoint, "://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}
