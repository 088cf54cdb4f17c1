package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/terratensor/sistem-dokumen/internal/tokenizer"
)

type Config struct {
	Workers int `yaml:"workers"`
	// MaxFileSize в байтах, 0 - без ограничения.
	MaxFileSize int64  `yaml:"max_file_size"`
	ErrorDir    string `yaml:"error_dir"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	Vocab struct {
		Lowercase   bool   `yaml:"lowercase"`
		FilterPunct bool   `yaml:"filter_punct"`
		Sort        string `yaml:"sort"`
	} `yaml:"vocab"`
}

// Default возвращает конфигурацию по умолчанию.
func Default() *Config {
	cfg := new(Config)
	cfg.setDefaults()
	return cfg
}

// Load читает конфигурацию из YAML-файла.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config (%s): %w", path, err)
	}

	cfg := new(Config)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config (%s): %w", path, err)
	}
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config (%s): %w", path, err)
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.ErrorDir == "" {
		c.ErrorDir = "dokumen_errors"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Vocab.Sort == "" {
		c.Vocab.Sort = tokenizer.SortFreq
	}
}

func (c *Config) Validate() error {
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size must not be negative: %d", c.MaxFileSize)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("unknown log format: %s", c.Log.Format)
	}
	if !tokenizer.ValidSort(c.Vocab.Sort) {
		return fmt.Errorf("unknown vocab sort: %s", c.Vocab.Sort)
	}
	return nil
}
