// Package lib contains the core, reusable services for the fdf application.
package lib

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/gingerrexayers/fdf-go/internal/fdf/types"
)

// DefaultHashAlgorithm is used when no algorithm is configured.
const DefaultHashAlgorithm = "sha1"

// defaultBufferSize is the read chunk used when the caller passes zero.
const defaultBufferSize = 32 * 1024

// HashAlgorithm describes a digest function that can be plugged into a scan.
type HashAlgorithm struct {
	Name    string
	Size    int
	NewFunc func() hash.Hash
}

// GetHashAlgorithm returns the algorithm registered under name.
func GetHashAlgorithm(name string) (*HashAlgorithm, error) {
	switch strings.ToLower(name) {
	case "", "sha1":
		return &HashAlgorithm{Name: "sha1", Size: sha1.Size, NewFunc: sha1.New}, nil
	case "sha256":
		return &HashAlgorithm{Name: "sha256", Size: sha256.Size, NewFunc: sha256.New}, nil
	case "sha512":
		return &HashAlgorithm{Name: "sha512", Size: sha512.Size, NewFunc: sha512.New}, nil
	case "xxhash":
		// Not collision resistant. Fine for trees you trust.
		return &HashAlgorithm{Name: "xxhash", Size: 8, NewFunc: func() hash.Hash { return xxhash.New() }}, nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s", name)
	}
}

// HashFile streams the file at filePath through the algorithm in
// bufferSize chunks and returns its digest. Failures are *types.HashError
// and never yield a partial digest.
func HashFile(filePath string, algorithm *HashAlgorithm, bufferSize int) (types.Digest, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, &types.HashError{Path: filePath, Op: types.HashOpOpen, Err: err}
	}
	defer file.Close()

	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	hasher := algorithm.NewFunc()
	buffer := make([]byte, bufferSize)
	for {
		n, err := file.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &types.HashError{Path: filePath, Op: types.HashOpRead, Err: err}
		}
	}

	return hasher.Sum(nil), nil
}
