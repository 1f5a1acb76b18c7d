// Package config resolves listingkit settings from the config file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

type ValueSource string

const (
	SourceDefault ValueSource = "default"
	SourceConfig  ValueSource = "config"
	SourceEnv     ValueSource = "env"
	SourceCLI     ValueSource = "cli"
)

const (
	DefaultOutputDir   = "."
	DefaultMinSize     = 500
	DefaultConcurrency = 4
)

// envPrefix joined with an upper-cased key gives the variable name.
const envPrefix = "LISTINGKIT"

const (
	keyOutputDir   = "output_dir"
	keyMinSize     = "min_size"
	keyStore       = "store"
	keyDictionary  = "dictionary"
	keyStores      = "stores"
	keyConcurrency = "concurrency"
)

const (
	EnvOutputDir   = "LISTINGKIT_OUTPUT_DIR"
	EnvMinSize     = "LISTINGKIT_MIN_SIZE"
	EnvStore       = "LISTINGKIT_STORE"
	EnvDictionary  = "LISTINGKIT_DICTIONARY"
	EnvStores      = "LISTINGKIT_STORES"
	EnvConcurrency = "LISTINGKIT_CONCURRENCY"
)

var ErrInvalidValue = errors.New("invalid config value")

type ResolvedValue struct {
	Value  string      `json:"value"`
	Source ValueSource `json:"source"`
	From   string      `json:"from,omitempty"`
}

// ResolveOptions carries the config path and flag values. Empty strings mean
// the flag was not given.
type ResolveOptions struct {
	ConfigPath     string
	CLIOutputDir   string
	CLIMinSize     string
	CLIStore       string
	CLIDictionary  string
	CLIStores      string
	CLIConcurrency string
}

type Resolved struct {
	ConfigPath string `json:"config_path"`

	OutputDir   ResolvedValue `json:"output_dir"`
	MinSize     ResolvedValue `json:"min_size"`
	Store       ResolvedValue `json:"store"`
	Dictionary  ResolvedValue `json:"dictionary"`
	Stores      ResolvedValue `json:"stores"`
	Concurrency ResolvedValue `json:"concurrency"`
}

func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".listingkit", "config.yaml")
}

// Resolve merges defaults, the config file, LISTINGKIT_* variables and flags.
// A missing file at the default path is ignored; a missing explicit file is
// an error.
func Resolve(opts ResolveOptions) (Resolved, error) {
	explicit := strings.TrimSpace(opts.ConfigPath) != ""
	path := strings.TrimSpace(opts.ConfigPath)
	if !explicit {
		path = DefaultConfigPath()
	}

	out := Resolved{
		ConfigPath:  path,
		OutputDir:   ResolvedValue{Value: DefaultOutputDir, Source: SourceDefault, From: "built-in default"},
		MinSize:     ResolvedValue{Value: strconv.Itoa(DefaultMinSize), Source: SourceDefault, From: "built-in default"},
		Concurrency: ResolvedValue{Value: strconv.Itoa(DefaultConcurrency), Source: SourceDefault, From: "built-in default"},
	}

	file, err := loadConfig(path, explicit)
	if err != nil {
		return out, err
	}
	if file != nil {
		apply(&out.OutputDir, file.GetString(keyOutputDir), SourceConfig, path)
		apply(&out.MinSize, file.GetString(keyMinSize), SourceConfig, path)
		apply(&out.Store, file.GetString(keyStore), SourceConfig, path)
		apply(&out.Dictionary, file.GetString(keyDictionary), SourceConfig, path)
		apply(&out.Stores, file.GetString(keyStores), SourceConfig, path)
		apply(&out.Concurrency, file.GetString(keyConcurrency), SourceConfig, path)
	}

	env := viper.New()
	env.SetEnvPrefix(envPrefix)
	env.AutomaticEnv()
	apply(&out.OutputDir, env.GetString(keyOutputDir), SourceEnv, EnvOutputDir)
	apply(&out.MinSize, env.GetString(keyMinSize), SourceEnv, EnvMinSize)
	apply(&out.Store, env.GetString(keyStore), SourceEnv, EnvStore)
	apply(&out.Dictionary, env.GetString(keyDictionary), SourceEnv, EnvDictionary)
	apply(&out.Stores, env.GetString(keyStores), SourceEnv, EnvStores)
	apply(&out.Concurrency, env.GetString(keyConcurrency), SourceEnv, EnvConcurrency)

	apply(&out.OutputDir, opts.CLIOutputDir, SourceCLI, "--output")
	apply(&out.MinSize, opts.CLIMinSize, SourceCLI, "--min-size")
	apply(&out.Store, opts.CLIStore, SourceCLI, "--store")
	apply(&out.Dictionary, opts.CLIDictionary, SourceCLI, "--dictionary")
	apply(&out.Stores, opts.CLIStores, SourceCLI, "--stores")
	apply(&out.Concurrency, opts.CLIConcurrency, SourceCLI, "--concurrency")

	for _, v := range []*ResolvedValue{&out.OutputDir, &out.Dictionary, &out.Stores} {
		if v.Value != "" {
			v.Value = expandUserPath(v.Value)
		}
	}

	for _, v := range []ResolvedValue{out.MinSize, out.Concurrency} {
		if _, err := positiveInt(v); err != nil {
			return out, err
		}
	}

	return out, nil
}

// MinSizePixels returns the minimum image edge length.
func (r Resolved) MinSizePixels() int {
	n, err := positiveInt(r.MinSize)
	if err != nil {
		return DefaultMinSize
	}
	return n
}

// ProbeConcurrency returns how many images may be probed at once.
func (r Resolved) ProbeConcurrency() int {
	n, err := positiveInt(r.Concurrency)
	if err != nil {
		return DefaultConcurrency
	}
	return n
}

func positiveInt(v ResolvedValue) (int, error) {
	n, err := strconv.Atoi(v.Value)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q from %s must be a positive integer", ErrInvalidValue, v.Value, v.From)
	}
	return n, nil
}

func apply(dst *ResolvedValue, raw string, source ValueSource, from string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return
	}
	*dst = ResolvedValue{Value: v, Source: source, From: from}
}

// loadConfig reads the YAML file at path into its own viper instance, so
// file values can be told apart from environment values.
func loadConfig(path string, required bool) (*viper.Viper, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return v, nil
}

func expandUserPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
