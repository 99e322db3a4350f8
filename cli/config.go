package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sokinpui/threeside.go/internal/partial"
	"github.com/sokinpui/threeside.go/internal/side"
)

const defaultConfigRelPath = "threeside/config.yaml"

const (
	flagNameDefaultSide = "default-side"
	flagNamePresenter   = "presenter"
	flagNameNvimAddress = "nvim-address"
	flagNameStateDir    = "state-dir"
	flagNameNoState     = "no-state"
	flagNameLookupDir   = "lookup-dir"
)

type fileConfig struct {
	DefaultSide []string `yaml:"default-side"`
	Presenter   *string  `yaml:"presenter"`
	NvimAddress *string  `yaml:"nvim-address"`
	StateDir    *string  `yaml:"state-dir"`
	NoState     *bool    `yaml:"no-state"`
	LookupDirs  []string `yaml:"lookup-dirs"`
}

type resolvedConfigPath struct {
	Path     string
	Required bool
	Enabled  bool
}

func resolveConfigPath(configHome string, explicitPath string, noConfig bool) resolvedConfigPath {
	if noConfig {
		return resolvedConfigPath{Enabled: false}
	}
	if explicitPath != "" {
		return resolvedConfigPath{
			Path:     explicitPath,
			Required: true,
			Enabled:  true,
		}
	}
	return resolvedConfigPath{
		Path:     filepath.Join(configHome, defaultConfigRelPath),
		Required: false,
		Enabled:  true,
	}
}

func loadConfigFile(configHome string, explicitPath string, noConfig bool) (fileConfig, error) {
	path := resolveConfigPath(configHome, explicitPath, noConfig)
	if !path.Enabled {
		return fileConfig{}, nil
	}
	return readConfigFile(path.Path, path.Required)
}

func readConfigFile(path string, required bool) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("read config %q: %w", path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var cfg fileConfig
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("parse config %q: %w", path, err)
	}

	presenter := ""
	if cfg.Presenter != nil {
		presenter = *cfg.Presenter
	}
	if err := validateValues(fmt.Sprintf("config %q", path), "", cfg.DefaultSide, "", presenter); err != nil {
		return fileConfig{}, err
	}

	return cfg, nil
}

// applyConfigFile copies config file values into cfg unless the flag was set
// explicitly.
func applyConfigFile(cfg *Config, file fileConfig, explicitlySet func(string) bool) {
	if len(file.DefaultSide) > 0 && !explicitlySet(flagNameDefaultSide) {
		cfg.DefaultSides = file.DefaultSide
	}
	if file.Presenter != nil && !explicitlySet(flagNamePresenter) {
		cfg.Presenter = *file.Presenter
	}
	if file.NvimAddress != nil && !explicitlySet(flagNameNvimAddress) {
		cfg.NvimAddress = *file.NvimAddress
	}
	if file.StateDir != nil && !explicitlySet(flagNameStateDir) {
		cfg.StateDir = *file.StateDir
	}
	if file.NoState != nil && !explicitlySet(flagNameNoState) {
		cfg.NoState = *file.NoState
	}
	if len(file.LookupDirs) > 0 && !explicitlySet(flagNameLookupDir) {
		cfg.LookupDirs = file.LookupDirs
	}
}

func validateValues(origin, currentSide string, defaultSides []string, partialMode string, presenter string) error {
	if currentSide != "" {
		if _, err := side.ParseSide(currentSide); err != nil {
			return fmt.Errorf("invalid %s value for %q: %w", origin, "side", err)
		}
	}
	for _, s := range defaultSides {
		if _, err := side.ParseSide(s); err != nil {
			return fmt.Errorf("invalid %s value for %q: %w", origin, flagNameDefaultSide, err)
		}
	}
	if partialMode != "" {
		if _, err := partial.ParseMode(partialMode); err != nil {
			return fmt.Errorf("invalid %s value for %q: %w", origin, "partial", err)
		}
	}
	switch presenter {
	case "", PresenterTUI, PresenterStdout, PresenterClipboard, PresenterNvim:
	default:
		return fmt.Errorf("invalid %s value for %q: unknown presenter %q", origin, flagNamePresenter, presenter)
	}
	return nil
}

// Sides converts the configured side names; they are validated by Parse.
func (c *Config) Sides() []side.Side {
	out := make([]side.Side, 0, len(c.DefaultSides))
	for _, name := range c.DefaultSides {
		if s, err := side.ParseSide(name); err == nil {
			out = append(out, s)
		}
	}
	return out
}
