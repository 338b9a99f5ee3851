package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsArchiveEndpoint(t *testing.T) {
	assert.True(t, IsArchiveEndpoint("s3://segment-archive"))
	assert.True(t, IsArchiveEndpoint("s3://segment-archive/cold/tier"))
	assert.False(t, IsArchiveEndpoint("127.0.0.1:9919"))
	assert.False(t, IsArchiveEndpoint("store.example.com:9919"))
}

func TestParseArchiveEndpoint(t *testing.T) {
	bucket, prefix, err := parseArchiveEndpoint("s3://segment-archive")
	require.NoError(t, err)
	assert.Equal(t, "segment-archive", bucket)
	assert.Empty(t, prefix)

	bucket, prefix, err = parseArchiveEndpoint("s3://segment-archive/cold/tier/")
	require.NoError(t, err)
	assert.Equal(t, "segment-archive", bucket)
	assert.Equal(t, "cold/tier", prefix)

	_, _, err = parseArchiveEndpoint("s3://")
	require.Error(t, err)
}

func TestObjectKey(t *testing.T) {
	r := &Reader{bucket: "b"}
	assert.Equal(t, "scope/stream/0.#epoch.0", r.objectKey("scope/stream/0.#epoch.0"))

	r = &Reader{bucket: "b", prefix: "cold/tier"}
	assert.Equal(t, "cold/tier/scope/stream/0.#epoch.0", r.objectKey("scope/stream/0.#epoch.0"))
}

func TestArchiveConfigDisablesRetries(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(configFile, []byte("[default]\nregion = us-east-1\n"), 0644))
	t.Setenv("AWS_CONFIG_FILE", configFile)
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))

	cfg, err := newArchiveConfig(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.RetryMaxAttempts, "a failed chunk request must surface immediately, not be retried by the SDK")
}

func TestRangeHeader(t *testing.T) {
	assert.Equal(t, "bytes=0-2097151", rangeHeader(0, 2097152))
	assert.Equal(t, "bytes=4194304-5242879", rangeHeader(4194304, 1048576))
	assert.Equal(t, "bytes=100-100", rangeHeader(100, 1))
}
