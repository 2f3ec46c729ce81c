package lib

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gingerrexayers/fdf-go/internal/fdf/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestFile creates a temporary file with the given content and returns its path.
func setupTestFile(t *testing.T, content []byte) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), "testfile.dat")
	require.NoError(t, os.WriteFile(filePath, content, 0644), "Failed to write test file")
	return filePath
}

func TestHashFile(t *testing.T) {
	testCases := []struct {
		name      string
		algorithm string
		content   []byte
		wantHex   string
	}{
		{"sha1 hello world", "sha1", []byte("hello world"), "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"},
		{"sha1 empty file", "sha1", []byte{}, "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{"sha256 hello world", "sha256", []byte("hello world"), "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"},
		{"sha256 empty file", "sha256", []byte{}, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"xxhash empty file", "xxhash", []byte{}, "ef46db3751d8e999"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			algorithm, err := GetHashAlgorithm(tc.algorithm)
			require.NoError(t, err)

			digest, err := HashFile(setupTestFile(t, tc.content), algorithm, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.wantHex, digest.String())
			assert.Len(t, digest, algorithm.Size)
		})
	}
}

func TestHashFile_ChunkSizeDoesNotChangeDigest(t *testing.T) {
	content := make([]byte, 10*1024+7)
	for i := range content {
		content[i] = byte(i * 31)
	}
	filePath := setupTestFile(t, content)
	algorithm, err := GetHashAlgorithm("sha1")
	require.NoError(t, err)

	want, err := HashFile(filePath, algorithm, 1)
	require.NoError(t, err)
	for _, size := range []int{3, 1024, 4096, 1 << 20} {
		got, err := HashFile(filePath, algorithm, size)
		require.NoError(t, err)
		assert.Equal(t, want, got, "buffer size %d", size)
	}
}

func TestHashFile_NonExistentFile(t *testing.T) {
	algorithm, err := GetHashAlgorithm("sha1")
	require.NoError(t, err)

	digest, err := HashFile(filepath.Join(t.TempDir(), "missing.txt"), algorithm, 0)
	require.Error(t, err)
	assert.Nil(t, digest)

	var hashErr *types.HashError
	require.True(t, errors.As(err, &hashErr))
	assert.Equal(t, types.HashOpOpen, hashErr.Op)
	assert.True(t, os.IsNotExist(errors.Unwrap(err)))
}

func TestHashFile_DirectoryReadFails(t *testing.T) {
	algorithm, err := GetHashAlgorithm("sha1")
	require.NoError(t, err)

	// Opening a directory succeeds on Linux but reading it does not.
	_, err = HashFile(t.TempDir(), algorithm, 0)
	var hashErr *types.HashError
	require.True(t, errors.As(err, &hashErr))
	assert.Equal(t, types.HashOpRead, hashErr.Op)
}

func TestGetHashAlgorithm(t *testing.T) {
	algorithm, err := GetHashAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, DefaultHashAlgorithm, algorithm.Name)
	assert.Equal(t, 20, algorithm.Size)

	algorithm, err = GetHashAlgorithm("SHA512")
	require.NoError(t, err)
	assert.Equal(t, "sha512", algorithm.Name)

	_, err = GetHashAlgorithm("md4")
	assert.Error(t, err)
}
