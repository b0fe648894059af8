// Package upload stores catalog images in S3-compatible object storage and
// hands back the public URL the catalog entities reference.
package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"vitrina/internal/platform/metrics"
	dErrors "vitrina/pkg/domain-errors"
)

// ObjectPutter is the slice of the S3 client the service needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// extensions maps the accepted image content types to stored file extensions.
var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// DefaultMaxBytes bounds a single upload when config leaves the limit unset.
const DefaultMaxBytes = 5 << 20

// Service validates and stores image uploads.
type Service struct {
	client        ObjectPutter
	bucket        string
	publicBaseURL string
	maxBytes      int64

	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics enables upload counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithMaxBytes overrides the upload size limit. Values <= 0 keep the default.
func WithMaxBytes(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}

// New creates the upload service. publicBaseURL is the CDN or bucket URL the
// stored key is appended to.
func New(client ObjectPutter, bucket, publicBaseURL string, opts ...Option) *Service {
	svc := &Service{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		maxBytes:      DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc
}

// Upload validates the image and writes it under uploads/<uuid>.<ext>.
// Returns the public URL of the stored object.
func (s *Service) Upload(ctx context.Context, contentType string, size int64, r io.Reader) (string, error) {
	ext, ok := extensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		s.count("rejected")
		return "", dErrors.New(dErrors.CodeValidation, "unsupported image type")
	}
	if size <= 0 {
		s.count("rejected")
		return "", dErrors.New(dErrors.CodeValidation, "empty upload")
	}
	if size > s.maxBytes {
		s.count("rejected")
		return "", dErrors.New(dErrors.CodeValidation, "image is too large")
	}

	key := fmt.Sprintf("uploads/%s.%s", uuid.New(), ext)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          io.LimitReader(r, s.maxBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		s.count("error")
		s.logger.ErrorContext(ctx, "object store write failed", "error", err, "key", key)
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not store image")
	}

	s.count("ok")
	s.logger.InfoContext(ctx, "image stored", "key", key, "bytes", size)
	return s.publicBaseURL + "/" + key, nil
}

// MaxBytes returns the configured upload limit so the HTTP layer can cap the
// request body before buffering.
func (s *Service) MaxBytes() int64 {
	return s.maxBytes
}

func (s *Service) count(result string) {
	if s.metrics != nil {
		s.metrics.ImageUploads.WithLabelValues(result).Inc()
	}
}
