package checksum_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchkit/mccore/pkg/checksum"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present.txt")
	require.NoError(t, os.WriteFile(path, []byte("hi"), 0o644))

	assert.True(t, checksum.Exists(path))
	assert.False(t, checksum.Exists(filepath.Join(dir, "missing.txt")))
}

func TestSizeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sized.txt")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0o644))

	assert.EqualValues(t, 5, checksum.SizeFile(path))
	assert.EqualValues(t, -1, checksum.SizeFile(filepath.Join(dir, "missing.txt")))
}

func TestSHA1File_MatchesKnownBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	got, err := checksum.SHA1File(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, checksum.BytesSHA1([]byte("hello")), got)
	assert.Equal(t, "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d", got)
}

func TestSHA1File_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.txt")
	require.NoError(t, os.WriteFile(path, make([]byte, 1<<21), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := checksum.SHA1File(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}
