package firestore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ironarian/ukr-jobs-japan/internal/platform/config"
)

func TestWrapErrorClassifiesStatusCodes(t *testing.T) {
	t.Parallel()

	require.NoError(t, WrapError("op", nil))

	err := WrapError("jobs.list", status.Error(codes.NotFound, "no collection"))
	var fsErr *Error
	require.ErrorAs(t, err, &fsErr)
	require.True(t, fsErr.IsNotFound())
	require.False(t, fsErr.IsUnavailable())
	require.Contains(t, err.Error(), "jobs.list: ")

	err = WrapError("jobs.list", status.Error(codes.Unavailable, "down"))
	require.ErrorAs(t, err, &fsErr)
	require.True(t, fsErr.IsUnavailable())

	require.Same(t, err, WrapError("outer", err))
}

func TestWrapErrorPassesThroughCancellation(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, WrapError("op", context.Canceled), context.Canceled)
	require.ErrorIs(t, WrapError("op", status.Error(codes.DeadlineExceeded, "slow")), context.DeadlineExceeded)

	plain := errors.New("plain")
	require.ErrorIs(t, WrapError("op", plain), plain)
}

func TestProviderRequiresProject(t *testing.T) {
	t.Parallel()

	provider := NewProvider(config.FirestoreConfig{})
	_, err := provider.Client(context.Background())
	require.ErrorContains(t, err, "project id is required")

	require.NoError(t, provider.Close())
	_, err = provider.Client(context.Background())
	require.ErrorIs(t, err, ErrProviderClosed)
	require.NoError(t, provider.Close())
}
