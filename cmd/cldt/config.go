package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"cldt/internal/format"
)

// projectConfig mirrors cldt.toml:
//
//	[format]
//	indent_width = 4
//	use_tabs = false
//	comment_column = 40
type projectConfig struct {
	Format formatConfig `toml:"format"`
}

type formatConfig struct {
	IndentWidth   int  `toml:"indent_width"`
	UseTabs       bool `toml:"use_tabs"`
	CommentColumn int  `toml:"comment_column"`
}

func findCldtToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "cldt.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadFormatOptions discovers cldt.toml upward from startDir and merges its
// [format] section over the defaults. No manifest means plain defaults.
func loadFormatOptions(startDir string) (format.Options, error) {
	var opts format.Options

	path, ok, err := findCldtToml(startDir)
	if err != nil {
		return opts, err
	}
	if !ok {
		return opts, nil
	}

	var cfg projectConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return opts, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	opts.IndentWidth = cfg.Format.IndentWidth
	opts.UseTabs = cfg.Format.UseTabs
	opts.CommentColumn = cfg.Format.CommentColumn
	return opts, nil
}
