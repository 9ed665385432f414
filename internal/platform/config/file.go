package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors config.yaml / config.toml. Unset keys stay nil so they
// do not override defaults.
type FileConfig struct {
	DataDir  *string          `yaml:"data_dir" toml:"data-dir"`
	Backend  *string          `yaml:"backend" toml:"backend"`
	LogLevel *string          `yaml:"log_level" toml:"log-level"`
	LogFile  *string          `yaml:"log_file" toml:"log-file"`
	Vault    *string          `yaml:"vault" toml:"vault"`
	Reader   FileReaderConfig `yaml:"reader" toml:"reader"`
}

type FileReaderConfig struct {
	SpeedMS        *int `yaml:"speed_ms" toml:"speed-ms"`
	SessionMinutes *int `yaml:"session_minutes" toml:"session-minutes"`
}

// LoadFile decodes a YAML or TOML config depending on the extension. A
// missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("read config: %w", err)
	}
	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(raw), &fc); err != nil {
			return FileConfig{}, fmt.Errorf("decode toml config: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return FileConfig{}, fmt.Errorf("decode yaml config: %w", err)
		}
	default:
		return FileConfig{}, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return fc, nil
}
