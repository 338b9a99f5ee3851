// Package archive reads segment ranges that have been tiered out of the
// segment store into object storage.
package archive

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const endpointScheme = "s3://"

// IsArchiveEndpoint reports whether a segment store endpoint actually names
// an object-storage archive.
func IsArchiveEndpoint(endpoint string) bool {
	return strings.HasPrefix(endpoint, endpointScheme)
}

// Reader serves segment range reads from an S3 bucket where segments are
// stored as objects keyed by their qualified name.
type Reader struct {
	client *s3.Client
	bucket string
	prefix string
}

// failed chunk requests abort the whole download, so the SDK must not
// retry them behind the caller's back
const retryMaxAttempts = 1

func newArchiveConfig(ctx context.Context, profile string) (aws.Config, error) {
	return config.LoadDefaultConfig(ctx,
		config.WithSharedConfigProfile(profile),
		config.WithRetryMaxAttempts(retryMaxAttempts),
	)
}

func NewReader(ctx context.Context, endpoint, profile string) (*Reader, error) {
	bucket, prefix, err := parseArchiveEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	cfg, err := newArchiveConfig(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %v", err)
	}
	return &Reader{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (r *Reader) ReadRange(ctx context.Context, segmentName string, offset, length int64) ([]byte, error) {
	key := r.objectKey(segmentName)
	result, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
		Range:  aws.String(rangeHeader(offset, length)),
	})
	if err != nil {
		return nil, fmt.Errorf("error reading s3://%s/%s: %w", r.bucket, key, err)
	}
	defer result.Body.Close()
	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading object body: %w", err)
	}
	log.Debug().Str("op", "archive/s3").Msgf("Read %d bytes of s3://%s/%s at offset %d", len(data), r.bucket, key, offset)
	return data, nil
}

func (r *Reader) objectKey(segmentName string) string {
	if r.prefix == "" {
		return segmentName
	}
	return path.Join(r.prefix, segmentName)
}

// rangeHeader builds the inclusive byte-range header for one chunk request.
func rangeHeader(offset, length int64) string {
	return fmt.Sprintf("bytes=%d-%d", offset, offset+length-1)
}

func parseArchiveEndpoint(endpoint string) (bucket, prefix string, err error) {
	trimmed := strings.TrimPrefix(endpoint, endpointScheme)
	trimmed = strings.Trim(trimmed, "/")
	if trimmed == "" {
		return "", "", fmt.Errorf("invalid archive endpoint %q: no bucket name", endpoint)
	}
	parts := strings.SplitN(trimmed, "/", 2)
	bucket = parts[0]
	if len(parts) == 2 {
		prefix = parts[1]
	}
	return bucket, prefix, nil
}
