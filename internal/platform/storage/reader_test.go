package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/require"
)

func fakeOpener(objects map[string]string) opener {
	return func(_ context.Context, bucket, object string) (io.ReadCloser, error) {
		body, ok := objects[bucket+"/"+object]
		if !ok {
			return nil, storage.ErrObjectNotExist
		}
		return io.NopCloser(strings.NewReader(body)), nil
	}
}

func TestReadObject(t *testing.T) {
	t.Parallel()

	reader := newReader(fakeOpener(map[string]string{"jobs-data/catalog/jobs.yaml": "- id: a\n"}), nil)

	data, err := reader.ReadObject(context.Background(), "jobs-data", "/catalog/jobs.yaml")
	require.NoError(t, err)
	require.Equal(t, "- id: a\n", string(data))

	_, err = reader.ReadObject(context.Background(), "jobs-data", "missing.yaml")
	require.ErrorIs(t, err, ErrObjectNotFound)

	_, err = reader.ReadObject(context.Background(), "", "x")
	require.ErrorIs(t, err, errInvalidBucket)
	_, err = reader.ReadObject(context.Background(), "jobs-data", " ")
	require.ErrorIs(t, err, errInvalidObject)
	require.NoError(t, reader.Close())
}

func TestReadObjectEnforcesSizeLimit(t *testing.T) {
	t.Parallel()

	reader := newReader(fakeOpener(map[string]string{"b/o": "0123456789"}), nil, WithMaxBytes(4))
	_, err := reader.ReadObject(context.Background(), "b", "o")
	require.ErrorIs(t, err, ErrObjectTooLarge)

	reader = newReader(fakeOpener(map[string]string{"b/o": "0123"}), nil, WithMaxBytes(4))
	data, err := reader.ReadObject(context.Background(), "b", "o")
	require.NoError(t, err)
	require.Len(t, data, 4)
}

func TestParseURI(t *testing.T) {
	t.Parallel()

	bucket, object, err := ParseURI("gs://jobs-data/catalog/jobs.yaml")
	require.NoError(t, err)
	require.Equal(t, "jobs-data", bucket)
	require.Equal(t, "catalog/jobs.yaml", object)

	for _, uri := range []string{"s3://x/y", "gs://", "gs://bucket", "gs://bucket/"} {
		_, _, err := ParseURI(uri)
		require.Error(t, err, uri)
	}
}
