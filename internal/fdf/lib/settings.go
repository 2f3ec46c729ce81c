package lib

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gingerrexayers/fdf-go/internal/fdf/types"
	"github.com/gingerrexayers/fdf-go/internal/logger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrConfigInvalid wraps every settings validation failure.
var ErrConfigInvalid = errors.New("invalid configuration")

// EnvPrefix prefixes environment overrides, e.g. FDF_MAX_DEPTH.
const EnvPrefix = "FDF"

// Settings is everything a run needs besides its paths.
type Settings struct {
	Options types.Options
	Log     logger.Config
}

// flagKeys maps command-line flag names onto settings keys.
var flagKeys = map[string]string{
	"symlinks":    "symlinks",
	"max-depth":   "max_depth",
	"algorithm":   "algorithm",
	"exclude":     "exclude",
	"workers":     "workers",
	"buffer-size": "buffer_size",
	"groups":      "groups",
	"log-level":   "log.level",
	"log-format":  "log.format",
	"log-file":    "log.file",
}

// DefaultConfigPaths returns the directories searched for fdf.yaml.
func DefaultConfigPaths() []string {
	paths := []string{"."}
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "fdf"))
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", "fdf"))
	}
	return paths
}

// LoadSettings merges defaults, the config file, FDF_* environment variables
// and any flags that were set, in increasing order of precedence. An empty
// configPath searches DefaultConfigPaths and tolerates a missing file.
func LoadSettings(configPath string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("fdf")
		v.SetConfigType("yaml")
		for _, p := range DefaultConfigPaths() {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	settings := &Settings{
		Options: types.Options{
			IncludeSymlinks: v.GetBool("symlinks"),
			MaxDepth:        v.GetInt("max_depth"),
			Algorithm:       strings.ToLower(v.GetString("algorithm")),
			Exclude:         v.GetStringSlice("exclude"),
			Workers:         v.GetInt("workers"),
			BufferSize:      v.GetInt("buffer_size"),
			Groups:          v.GetBool("groups"),
		},
		Log: logger.Config{
			Level:  logger.ParseLevel(v.GetString("log.level")),
			Format: logger.ParseFormat(v.GetString("log.format")),
			File: logger.FileConfig{
				Path:       v.GetString("log.file"),
				MaxSizeMB:  v.GetInt("log.max_size_mb"),
				MaxAgeDays: v.GetInt("log.max_age_days"),
				MaxBackups: v.GetInt("log.max_backups"),
				Compress:   v.GetBool("log.compress"),
			},
		},
	}

	if settings.Options.Workers == 0 {
		settings.Options.Workers = runtime.NumCPU()
	}

	if err := validate(settings.Options); err != nil {
		return nil, err
	}
	return settings, nil
}

func setDefaults(v *viper.Viper) {
	defaults := types.DefaultOptions()
	v.SetDefault("symlinks", defaults.IncludeSymlinks)
	v.SetDefault("max_depth", defaults.MaxDepth)
	v.SetDefault("algorithm", defaults.Algorithm)
	v.SetDefault("exclude", []string{})
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("buffer_size", defaults.BufferSize)
	v.SetDefault("groups", defaults.Groups)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_age_days", 7)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.compress", false)
}

func validate(opts types.Options) error {
	if _, err := GetHashAlgorithm(opts.Algorithm); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	if opts.MaxDepth < types.UnlimitedDepth {
		return fmt.Errorf("%w: max_depth must be %d (unlimited) or non-negative, got %d", ErrConfigInvalid, types.UnlimitedDepth, opts.MaxDepth)
	}
	if opts.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrConfigInvalid, opts.Workers)
	}
	if opts.BufferSize <= 0 {
		return fmt.Errorf("%w: buffer_size must be positive, got %d", ErrConfigInvalid, opts.BufferSize)
	}
	return nil
}
