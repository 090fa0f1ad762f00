package notifier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"dailyfeed/logger"
)

// S3API is the part of the S3 client the transport uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 stores the same two artifacts as Local in a bucket, for runs where the
// local disk does not survive the invocation.
type S3 struct {
	client S3API
	bucket string
	prefix string
	now    func() time.Time
	log    logger.Logger
}

// NewS3 wraps an S3 client writing under bucket/prefix.
func NewS3(client S3API, bucket, prefix string, log logger.Logger) *S3 {
	if log == nil {
		log = logger.NewNop()
	}
	return &S3{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		now:    time.Now,
		log:    log,
	}
}

// NewS3FromConfig builds the transport from a resolved AWS config.
func NewS3FromConfig(cfg aws.Config, bucket, prefix string, log logger.Logger) *S3 {
	return NewS3(s3.NewFromConfig(cfg), bucket, prefix, log)
}

func (s *S3) Name() string { return "s3" }

func (s *S3) Deliver(ctx context.Context, msg Message) error {
	if s.bucket == "" {
		return errors.New("S3_BUCKET not set")
	}

	base := artifactName(s.now())
	htmlKey := s.key(base + ".html")
	textKey := s.key(base + ".txt")

	if err := s.put(ctx, htmlKey, strings.NewReader(msg.HTML), "text/html; charset=utf-8"); err != nil {
		return err
	}
	if err := s.put(ctx, textKey, strings.NewReader(textArtifact(msg)), "text/plain; charset=utf-8"); err != nil {
		return err
	}

	s.log.Info("email stored in S3",
		logger.String("bucket", s.bucket),
		logger.String("html", htmlKey),
		logger.String("text", textKey),
	)
	return nil
}

func (s *S3) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

func (s *S3) put(ctx context.Context, key string, body io.Reader, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, describeAWSError(err))
	}
	return nil
}

// describeAWSError prefixes the service error code when err carries one.
func describeAWSError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %w", apiErr.ErrorCode(), err)
	}
	return err
}
