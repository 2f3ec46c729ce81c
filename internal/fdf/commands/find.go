// Package commands contains the command-line operations of the fdf application.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gingerrexayers/fdf-go/internal/fdf/lib"
	"github.com/gingerrexayers/fdf-go/internal/fdf/types"
	"github.com/gingerrexayers/fdf-go/internal/logger"
	"golang.org/x/sync/errgroup"
)

// Summary counts what happened during a scan.
type Summary struct {
	Candidates int // entries handed out by the traversal queue
	Hashed     int
	Unique     int
	Duplicates int
	Skipped    int // symlinks (when disabled) and special files
	Failed     int // unreadable files and directories
}

// Scanner drives one duplicate-finding pass. A Scanner is single-use.
type Scanner struct {
	opts      types.Options
	algorithm *lib.HashAlgorithm
	index     *lib.ContentIndex
	out       io.Writer
	log       logger.Logger
	summary   Summary
}

// hashResult is the outcome of hashing one candidate.
type hashResult struct {
	digest types.Digest
	err    error
}

// NewScanner prepares a scan that reports duplicates to out.
func NewScanner(opts types.Options, out io.Writer, log logger.Logger) (*Scanner, error) {
	algorithm, err := lib.GetHashAlgorithm(opts.Algorithm)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NullLogger{}
	}
	return &Scanner{
		opts:      opts,
		algorithm: algorithm,
		index:     lib.NewContentIndex(),
		out:       out,
		log:       log,
	}, nil
}

// Index exposes the content index built by Run.
func (s *Scanner) Index() *lib.ContentIndex {
	return s.index
}

// Run scans paths to completion. Unreadable files and directories are
// diagnosed and skipped; only a bad argument, a failed write to the output
// or a cancelled context stops the scan early.
func (s *Scanner) Run(ctx context.Context, paths []string) (Summary, error) {
	queue := lib.NewTraversalQueue(s.opts, s.log)
	if err := queue.Seed(paths); err != nil {
		return s.summary, err
	}

	batchSize := 1
	if s.opts.Workers > 1 {
		batchSize = s.opts.Workers * 4
	}
	batch := make([]types.CandidateEntry, 0, batchSize)

	for exhausted := false; !exhausted; {
		if err := ctx.Err(); err != nil {
			return s.summary, err
		}

		batch = batch[:0]
		for len(batch) < batchSize {
			entry, ok := queue.Next()
			if !ok {
				exhausted = true
				break
			}
			s.summary.Candidates++
			if s.accept(entry) {
				batch = append(batch, entry)
			}
		}

		if err := s.process(batch); err != nil {
			return s.summary, err
		}
	}

	s.summary.Failed += queue.Failures()
	s.summary.Unique = s.index.Len()
	return s.summary, nil
}

// accept decides whether a candidate gets hashed.
func (s *Scanner) accept(entry types.CandidateEntry) bool {
	switch entry.Type {
	case types.Regular:
		return true
	case types.Symlink:
		if s.opts.IncludeSymlinks {
			return true
		}
		s.summary.Skipped++
		s.log.Warn("skipping symlink", "path", entry.Path)
		return false
	default:
		s.summary.Skipped++
		s.log.Warn("skipping unsupported file type", "path", entry.Path, "type", entry.Type.String())
		return false
	}
}

// process hashes a batch, concurrently when configured, and then inserts the
// results in traversal order so the original never depends on scheduling.
func (s *Scanner) process(batch []types.CandidateEntry) error {
	if len(batch) == 0 {
		return nil
	}

	results := make([]hashResult, len(batch))
	if len(batch) == 1 || s.opts.Workers <= 1 {
		for i, entry := range batch {
			results[i].digest, results[i].err = lib.HashFile(entry.Path, s.algorithm, s.opts.BufferSize)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(s.opts.Workers)
		for i, entry := range batch {
			g.Go(func() error {
				results[i].digest, results[i].err = lib.HashFile(entry.Path, s.algorithm, s.opts.BufferSize)
				return nil
			})
		}
		g.Wait()
	}

	for i, entry := range batch {
		if results[i].err != nil {
			s.summary.Failed++
			s.log.Warn("skipping unreadable file", "error", results[i].err)
			continue
		}
		s.summary.Hashed++
		if err := s.insert(entry.Path, results[i].digest); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scanner) insert(path string, digest types.Digest) error {
	original, inserted := s.index.InsertIfAbsent(path, digest)
	if inserted {
		return nil
	}
	s.summary.Duplicates++
	if _, err := fmt.Fprintf(s.out, "%s is duplicate of %s\n", path, original.Path); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Find is the main function for the root command. It scans paths, prints
// duplicate pairs to stdout and, when asked, the grouped report after them.
func Find(ctx context.Context, paths []string, opts types.Options, log logger.Logger) error {
	scanner, err := NewScanner(opts, os.Stdout, log)
	if err != nil {
		return err
	}

	summary, err := scanner.Run(ctx, paths)
	if err != nil {
		return err
	}

	if opts.Groups {
		if report := RenderGroups(scanner.Index()); report != "" {
			fmt.Print(report)
		}
	}

	scanner.log.Info("scan complete",
		"candidates", summary.Candidates,
		"hashed", summary.Hashed,
		"unique", summary.Unique,
		"duplicates", summary.Duplicates,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	return nil
}
