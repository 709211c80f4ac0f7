package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

const configFileName = "tracetool.toml"

// errBadConfig wraps every configuration file problem.
var errBadConfig = errors.New("invalid configuration")

// fileConfig mirrors tracetool.toml. Every key is optional; command line
// flags override it.
type fileConfig struct {
	Path     string         `toml:"-"`
	Generate generateConfig `toml:"generate"`
	Stap     stapConfig     `toml:"stap"`
	Output   outputConfig   `toml:"output"`
}

type generateConfig struct {
	Backend string `toml:"backend"`
	Output  string `toml:"output"`
}

type stapConfig struct {
	Binary      string `toml:"binary"`
	TargetType  string `toml:"target_type"`
	TargetArch  string `toml:"target_arch"`
	ProbePrefix string `toml:"probe_prefix"`
}

type outputConfig struct {
	Provider      string `toml:"provider"`
	CommonInclude string `toml:"common_include"`
}

// findConfig walks up from startDir looking for tracetool.toml.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
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

// loadConfig decodes path and rejects unknown keys.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, fmt.Errorf("%w: %s: failed to parse TOML: %w", errBadConfig, path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fileConfig{}, fmt.Errorf("%w: %s: unknown keys: %s", errBadConfig, path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("stap", "binary") && strings.TrimSpace(cfg.Stap.Binary) == "" {
		return fileConfig{}, fmt.Errorf("%w: %s: [stap].binary is empty", errBadConfig, path)
	}
	cfg.Path = path
	return cfg, nil
}

// readConfig loads --config when given, otherwise the nearest
// tracetool.toml. A missing file yields the zero configuration.
func readConfig(cmd *cobra.Command) (fileConfig, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return fileConfig{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		found, ok, err := findConfig(".")
		if err != nil || !ok {
			return fileConfig{}, err
		}
		path = found
	}
	return loadConfig(path)
}
