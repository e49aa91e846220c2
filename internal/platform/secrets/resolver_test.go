package secrets

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakeClient struct {
	mu     sync.Mutex
	values map[string]string
	errs   map[string]error
	calls  map[string]int
}

func newFakeClient() *fakeClient {
	return &fakeClient{values: map[string]string{}, errs: map[string]error{}, calls: map[string]int{}}
}

func (f *fakeClient) AccessSecretVersion(_ context.Context, req *secretmanagerpb.AccessSecretVersionRequest, _ ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[req.GetName()]++
	if err := f.errs[req.GetName()]; err != nil {
		return nil, err
	}
	value, ok := f.values[req.GetName()]
	if !ok {
		return nil, status.Error(codes.NotFound, "missing")
	}
	return &secretmanagerpb.AccessSecretVersionResponse{
		Name:    req.GetName(),
		Payload: &secretmanagerpb.SecretPayload{Data: []byte(value)},
	}, nil
}

func (f *fakeClient) Close() error { return nil }

func writeFallback(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".secrets.local")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestResolveCachesRemoteSecret(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	resource := "projects/jobs-prod/secrets/catalog-sa/versions/latest"
	client.values[resource] = `{"type":"service_account"}`

	resolver := NewResolver(context.Background(), withClient(client), WithProject("jobs-prod"), WithFallbackFile(""))
	defer resolver.Close()

	for i := 0; i < 2; i++ {
		got, err := resolver.ResolveSecret(context.Background(), "secret://catalog-sa")
		require.NoError(t, err)
		require.Equal(t, `{"type":"service_account"}`, got)
	}
	require.Equal(t, 1, client.calls[resource])
}

func TestResolveHonoursVersionAndProjectOverrides(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.values["projects/other/secrets/catalog-sa/versions/3"] = "pinned"

	resolver := NewResolver(context.Background(), withClient(client), WithProject("jobs-prod"), WithFallbackFile(""))
	got, err := resolver.ResolveSecret(context.Background(), "sm://catalog-sa?version=3&project=other")
	require.NoError(t, err)
	require.Equal(t, "pinned", got)
}

func TestResolveFallsBackWhenSecretManagerDenies(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.errs["projects/jobs-prod/secrets/catalog-sa/versions/latest"] = status.Error(codes.PermissionDenied, "denied")
	path := writeFallback(t, "# local values\nsecret://catalog-sa=local-json\n")

	resolver := NewResolver(context.Background(), withClient(client), WithProject("jobs-prod"), WithFallbackFile(path))
	got, err := resolver.ResolveSecret(context.Background(), "secret://catalog-sa")
	require.NoError(t, err)
	require.Equal(t, "local-json", got)
}

func TestResolveSurfacesHardErrors(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.errs["projects/jobs-prod/secrets/catalog-sa/versions/latest"] = status.Error(codes.InvalidArgument, "bad name")
	path := writeFallback(t, "secret://catalog-sa=local-json\n")

	resolver := NewResolver(context.Background(), withClient(client), WithProject("jobs-prod"), WithFallbackFile(path))
	_, err := resolver.ResolveSecret(context.Background(), "secret://catalog-sa")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
	require.Contains(t, err.Error(), "bad name")
}

func TestResolveWithoutRemoteUsesFallbackOnly(t *testing.T) {
	t.Parallel()

	path := writeFallback(t, "sm://catalog-sa = local-json\nnot a pair\n")
	resolver := NewResolver(context.Background(), WithoutRemote(), WithProject("jobs-prod"), WithFallbackFile(path))

	got, err := resolver.ResolveSecret(context.Background(), "secret://catalog-sa?version=2")
	require.NoError(t, err)
	require.Equal(t, "local-json", got)

	got, err = resolver.ResolveSecret(context.Background(), "secret://catalog-sa")
	require.NoError(t, err)
	require.Equal(t, "local-json", got)

	_, err = resolver.ResolveSecret(context.Background(), "secret://missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestParseReferenceRejectsMalformedRefs(t *testing.T) {
	t.Parallel()

	for _, ref := range []string{"", "https://example.com/x", "secret://"} {
		_, err := parseReference(ref)
		require.Error(t, err, ref)
	}
}
