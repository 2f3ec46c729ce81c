package main

import (
	"fmt"

	"github.com/gingerrexayers/fdf-go/internal/fdf/commands"
	"github.com/gingerrexayers/fdf-go/internal/fdf/lib"
	"github.com/gingerrexayers/fdf-go/internal/fdf/types"
	"github.com/gingerrexayers/fdf-go/internal/logger"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the 'fdf' command, which scans its arguments for
// files with identical content.
func NewRootCommand() *cobra.Command {
	var configPath string
	defaults := types.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "fdf PATH [PATH...]",
		Short: "Find duplicate files by content.",
		Long: `Scans every file and directory given as an argument and prints one line per
file whose content matches a file seen earlier:

  <duplicate> is duplicate of <original>

Nothing is copied, linked or deleted. Unreadable entries are reported on
stderr and skipped.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return types.ErrNoInput
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := lib.LoadSettings(configPath, cmd.Flags())
			if err != nil {
				return err
			}

			log, err := logger.New(settings.Log)
			if err != nil {
				return fmt.Errorf("failed to set up logging: %w", err)
			}
			defer log.Shutdown()

			return commands.Find(cmd.Context(), args, settings.Options, log)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "Config file (default searches ./fdf.yaml and the user config directory)")
	flags.BoolP("symlinks", "s", defaults.IncludeSymlinks, "Hash symlinks instead of skipping them")
	flags.IntP("max-depth", "d", defaults.MaxDepth, "Limit directory recursion depth (-1 for unlimited)")
	flags.StringP("algorithm", "a", defaults.Algorithm, "Digest algorithm: sha1, sha256, sha512 or xxhash")
	flags.StringSliceP("exclude", "e", nil, "Gitignore-style pattern to skip (repeatable)")
	flags.IntP("workers", "w", defaults.Workers, "Files hashed concurrently (0 for one per CPU)")
	flags.Int("buffer-size", defaults.BufferSize, "Read buffer size in bytes")
	flags.BoolP("groups", "g", defaults.Groups, "Print a tree of duplicate groups after the scan")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("log-format", "text", "Log format: text or json")
	flags.String("log-file", "", "Also write logs to this file (rotated)")

	return cmd
}
