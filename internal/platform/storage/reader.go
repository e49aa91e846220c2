// Package storage reads catalog documents from Cloud Storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/ironarian/ukr-jobs-japan/internal/platform/config"
)

const defaultMaxObjectBytes = 8 << 20

var (
	// ErrObjectNotFound is returned when the bucket or object does not exist.
	ErrObjectNotFound = errors.New("storage: object not found")
	// ErrObjectTooLarge is returned when an object exceeds the configured read limit.
	ErrObjectTooLarge = errors.New("storage: object exceeds size limit")

	errInvalidBucket = errors.New("storage: bucket name is required")
	errInvalidObject = errors.New("storage: object name is required")
)

type opener func(ctx context.Context, bucket, object string) (io.ReadCloser, error)

// Reader fetches whole objects into memory.
type Reader struct {
	open     opener
	close    func() error
	maxBytes int64
}

// ReaderOption customises a Reader.
type ReaderOption func(*Reader)

// WithMaxBytes caps how much of an object is read.
func WithMaxBytes(n int64) ReaderOption {
	return func(r *Reader) {
		if n > 0 {
			r.maxBytes = n
		}
	}
}

// NewReader creates a Cloud Storage client using cfg's credentials when present,
// falling back to application default credentials.
func NewReader(ctx context.Context, cfg config.StorageConfig, opts ...ReaderOption) (*Reader, error) {
	var clientOpts []option.ClientOption
	if creds := strings.TrimSpace(cfg.CredentialsJSON); creds != "" {
		clientOpts = append(clientOpts, option.WithCredentialsJSON([]byte(creds)))
	}
	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("storage: create client: %w", err)
	}
	return newReader(func(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
		return client.Bucket(bucket).Object(object).NewReader(ctx)
	}, client.Close, opts...), nil
}

func newReader(open opener, closeFn func() error, opts ...ReaderOption) *Reader {
	r := &Reader{open: open, close: closeFn, maxBytes: defaultMaxObjectBytes}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Close releases the underlying client.
func (r *Reader) Close() error {
	if r == nil || r.close == nil {
		return nil
	}
	return r.close()
}

// ReadObject returns the full contents of gs://bucket/object.
func (r *Reader) ReadObject(ctx context.Context, bucket, object string) ([]byte, error) {
	bucket = strings.TrimSpace(bucket)
	object = strings.TrimPrefix(strings.TrimSpace(object), "/")
	if bucket == "" {
		return nil, errInvalidBucket
	}
	if object == "" {
		return nil, errInvalidObject
	}

	rc, err := r.open(ctx, bucket, object)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, fmt.Errorf("%w: gs://%s/%s", ErrObjectNotFound, bucket, object)
		}
		return nil, fmt.Errorf("storage: open gs://%s/%s: %w", bucket, object, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, r.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("storage: read gs://%s/%s: %w", bucket, object, err)
	}
	if int64(len(data)) > r.maxBytes {
		return nil, fmt.Errorf("%w: gs://%s/%s", ErrObjectTooLarge, bucket, object)
	}
	return data, nil
}

// ParseURI splits gs://bucket/object into its parts.
func ParseURI(uri string) (string, string, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(uri), "gs://")
	if !ok {
		return "", "", fmt.Errorf("storage: %q is not a gs:// uri", uri)
	}
	bucket, object, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", errInvalidBucket
	}
	if object == "" {
		return "", "", errInvalidObject
	}
	return bucket, object, nil
}
