package types

import (
	"bytes"
	"encoding/hex"
	"io/fs"
)

// FileType is the classification of a discovered path, taken from a
// non-dereferencing status query.
type FileType int

const (
	Regular FileType = iota
	Directory
	Symlink
	Other
)

func (t FileType) String() string {
	switch t {
	case Regular:
		return "regular"
	case Directory:
		return "directory"
	case Symlink:
		return "symlink"
	default:
		return "other"
	}
}

// FileTypeOf maps mode type bits onto a FileType.
func FileTypeOf(mode fs.FileMode) FileType {
	switch {
	case mode.IsRegular():
		return Regular
	case mode&fs.ModeDir != 0:
		return Directory
	case mode&fs.ModeSymlink != 0:
		return Symlink
	default:
		return Other
	}
}

// UnlimitedDepth disables depth tracking. Entries carrying it never hit a
// depth limit and pass it on to their children unchanged.
const UnlimitedDepth = -1

// CandidateEntry is a path that has been discovered but not yet disposed of.
type CandidateEntry struct {
	Path  string
	Type  FileType
	Depth int
	// Root is the argument this entry was discovered under.
	Root string
}

// ChildDepth returns the depth stamped on entries found by expanding e.
func (e CandidateEntry) ChildDepth() int {
	if e.Depth == UnlimitedDepth {
		return UnlimitedDepth
	}
	return e.Depth + 1
}

// Digest is a fixed-length content fingerprint.
type Digest []byte

// Compare orders digests byte-wise.
func (d Digest) Compare(other Digest) int {
	return bytes.Compare(d, other)
}

func (d Digest) String() string {
	return hex.EncodeToString(d)
}

// Options controls a scan.
type Options struct {
	IncludeSymlinks bool
	// MaxDepth limits directory expansion; UnlimitedDepth disables the limit.
	MaxDepth   int
	Algorithm  string
	Exclude    []string
	Workers    int
	BufferSize int
	Groups     bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxDepth:   UnlimitedDepth,
		Algorithm:  "sha1",
		Workers:    1,
		BufferSize: 32 * 1024,
	}
}

// Descends reports whether a directory at the given depth may be expanded.
func (o Options) Descends(depth int) bool {
	if o.MaxDepth == UnlimitedDepth || depth == UnlimitedDepth {
		return true
	}
	return depth < o.MaxDepth
}

// SeedDepth is the depth given to command-line arguments.
func (o Options) SeedDepth() int {
	if o.MaxDepth == UnlimitedDepth {
		return UnlimitedDepth
	}
	return 0
}
