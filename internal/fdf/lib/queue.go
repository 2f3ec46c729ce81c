package lib

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gingerrexayers/fdf-go/internal/fdf/types"
	"github.com/gingerrexayers/fdf-go/internal/logger"
)

// TraversalQueue is the discovery frontier of a scan. Files are handed out
// before any pending directory is expanded, which gives a breadth-first walk
// of every argument.
type TraversalQueue struct {
	opts   types.Options
	ignore *IgnoreRules
	log    logger.Logger

	files []types.CandidateEntry
	dirs  []types.CandidateEntry

	failures int
}

// NewTraversalQueue creates an empty queue governed by opts.
func NewTraversalQueue(opts types.Options, log logger.Logger) *TraversalQueue {
	if log == nil {
		log = logger.NullLogger{}
	}
	return &TraversalQueue{
		opts:   opts,
		ignore: NewIgnoreRules(opts.Exclude),
		log:    log,
	}
}

// Seed classifies every argument and queues it. Any argument that cannot be
// stat'ed aborts seeding with a *types.InputError.
func (q *TraversalQueue) Seed(paths []string) error {
	if len(paths) == 0 {
		return types.ErrNoInput
	}

	for _, p := range paths {
		path := trimTrailingSeparators(p)
		info, err := os.Lstat(path)
		if err != nil {
			return &types.InputError{Path: p, Err: err}
		}
		q.push(types.CandidateEntry{
			Path:  path,
			Type:  types.FileTypeOf(info.Mode()),
			Depth: q.opts.SeedDepth(),
			Root:  path,
		})
	}
	return nil
}

// Next returns the next non-directory candidate, expanding directories as
// needed. It returns false once both queues are exhausted.
func (q *TraversalQueue) Next() (types.CandidateEntry, bool) {
	for {
		if len(q.files) > 0 {
			entry := q.files[0]
			q.files[0] = types.CandidateEntry{}
			q.files = q.files[1:]
			if entry.Type == types.Directory {
				q.expand(entry)
				continue
			}
			return entry, true
		}

		if len(q.dirs) == 0 {
			return types.CandidateEntry{}, false
		}
		dir := q.dirs[0]
		q.dirs[0] = types.CandidateEntry{}
		q.dirs = q.dirs[1:]
		q.expand(dir)
	}
}

// Pending returns the number of queued entries.
func (q *TraversalQueue) Pending() int {
	return len(q.files) + len(q.dirs)
}

// Failures returns how many directories could not be listed.
func (q *TraversalQueue) Failures() int {
	return q.failures
}

func (q *TraversalQueue) push(entry types.CandidateEntry) {
	if entry.Type == types.Directory {
		q.dirs = append(q.dirs, entry)
	} else {
		q.files = append(q.files, entry)
	}
}

// expand lists dir and queues its children one level deeper.
func (q *TraversalQueue) expand(dir types.CandidateEntry) {
	if !q.opts.Descends(dir.Depth) {
		q.log.Debug("depth limit reached, not descending", "path", dir.Path, "depth", dir.Depth)
		return
	}

	// os.ReadDir sorts by name, so a scan always visits the same order.
	entries, err := os.ReadDir(dir.Path)
	if err != nil {
		q.failures++
		q.log.Warn("skipping directory", "error", &types.TraversalError{Path: dir.Path, Err: err})
		return
	}

	for _, e := range entries {
		child := types.CandidateEntry{
			Path:  joinPath(dir.Path, e.Name()),
			Type:  types.FileTypeOf(e.Type()),
			Depth: dir.ChildDepth(),
			Root:  dir.Root,
		}
		if q.ignore.IsIgnored(child.Root, child.Path, child.Type == types.Directory) {
			q.log.Debug("ignored by exclude rules", "path", child.Path)
			continue
		}
		q.push(child)
	}
}

// joinPath keeps the directory prefix exactly as it was supplied, unlike
// filepath.Join which would clean it.
func joinPath(dir, name string) string {
	if strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}

func trimTrailingSeparators(p string) string {
	trimmed := strings.TrimRight(p, string(filepath.Separator))
	if trimmed == "" && p != "" {
		return string(filepath.Separator)
	}
	return trimmed
}
