// Package s3 stores documents in an S3-compatible bucket (AWS S3, Cloudflare
// R2, MinIO) using the AWS SDK for Go v2.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/sagarc03/schedsync"
)

// Client is the subset of *s3.Client the store uses.
type Client interface {
	awss3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *awss3.HeadBucketInput, optFns ...func(*awss3.Options)) (*awss3.HeadBucketOutput, error)
}

// Store maps document keys to objects under an optional key prefix.
type Store struct {
	client Client
	bucket string
	prefix string
}

// NewStore returns a Store writing to bucket. A non-empty prefix is joined to
// every key with a single slash.
func NewStore(client Client, bucket, prefix string) (*Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("new s3 store: %w: bucket is required", schedsync.ErrInvalidInput)
	}

	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}

	return &Store{client: client, bucket: bucket, prefix: prefix}, nil
}

func (s *Store) objectKey(key string) string {
	return s.prefix + key
}

// List pages through ListObjectsV2 and returns keys with the prefix stripped.
func (s *Store) List(ctx context.Context) ([]string, error) {
	input := &awss3.ListObjectsV2Input{Bucket: aws.String(s.bucket)}
	if s.prefix != "" {
		input.Prefix = aws.String(s.prefix)
	}

	keys := []string{}
	paginator := awss3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}

		for _, obj := range page.Contents {
			key := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
			if key == "" || strings.HasSuffix(key, "/") {
				continue
			}
			keys = append(keys, key)
		}
	}

	return keys, nil
}

// Put uploads body as a single object, overwriting any previous version.
func (s *Store) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.objectKey(key)),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}

	return nil
}

// Get fetches the object under key. A missing key is schedsync.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (schedsync.Object, error) {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		if isNotFound(err) {
			return schedsync.Object{}, schedsync.ErrNotFound
		}
		return schedsync.Object{}, fmt.Errorf("get object %s: %w", key, err)
	}
	defer func() { _ = out.Body.Close() }()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return schedsync.Object{}, fmt.Errorf("read object %s: %w", key, err)
	}

	obj := schedsync.Object{
		Key:         key,
		Body:        body,
		ContentType: aws.ToString(out.ContentType),
		Size:        int64(len(body)),
		ETag:        strings.Trim(aws.ToString(out.ETag), `"`),
	}
	if out.LastModified != nil {
		obj.UpdatedAt = out.LastModified.UTC()
	}

	return obj, nil
}

// Ping checks that the bucket exists and is reachable with the configured credentials.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.client.HeadBucket(ctx, &awss3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return fmt.Errorf("head bucket %s: %w", s.bucket, err)
	}
	return nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}

	return false
}
