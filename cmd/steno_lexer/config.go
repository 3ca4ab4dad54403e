package main

import (
	"fmt"
	"os"

	"github.com/wbrown/steno_lexer"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the steno_lexer command.
type Config struct {
	// Resources is an embedded rule set id, a directory, or a base URL.
	Resources string                `yaml:"resources"`
	CacheSize int                   `yaml:"cache_size"`
	MaxSteps  int                   `yaml:"max_steps"`
	Threads   int                   `yaml:"threads"`
	LogLevel  string                `yaml:"log_level"`
	StarNames steno_lexer.StarNames `yaml:"star_names"`
}

func DefaultConfig() *Config {
	return &Config{
		Resources: "default",
		CacheSize: steno_lexer.MATCH_LRU_SZ,
		MaxSteps:  steno_lexer.LEXER_MAX_STEPS,
		Threads:   0,
		LogLevel:  "info",
		StarNames: steno_lexer.DefaultStarNames(),
	}
}

// LoadConfig
// Reads a YAML config over the defaults. A missing file gives the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.fillStarNames()
	return cfg, nil
}

// fillStarNames puts back defaults for star names a config left empty.
func (c *Config) fillStarNames() {
	defaults := steno_lexer.DefaultStarNames()
	for _, pair := range []struct {
		name *string
		def  string
	}{
		{&c.StarNames.Abbreviation, defaults.Abbreviation},
		{&c.StarNames.Proper, defaults.Proper},
		{&c.StarNames.Affix, defaults.Affix},
		{&c.StarNames.Conflict, defaults.Conflict},
		{&c.StarNames.Unknown, defaults.Unknown},
	} {
		if *pair.name == "" {
			*pair.name = pair.def
		}
	}
}
