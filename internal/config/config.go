package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Findings addressed to other tables are ignored.
	TargetTable string `mapstructure:"target_table" yaml:"target_table"`
	// Default terminology source used when none is given on the command line.
	Terminology      string `mapstructure:"terminology" yaml:"terminology"`
	InstructionsPath string `mapstructure:"instructions_path" yaml:"instructions_path"`
	TerminologyPath  string `mapstructure:"terminology_path" yaml:"terminology_path"`
	EscapeCellText   bool   `mapstructure:"escape_cell_text" yaml:"escape_cell_text"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Defaults returns the configuration used when no file or env var overrides it.
func Defaults() Global {
	return Global{
		TargetTable:      "exposure",
		InstructionsPath: "/instructions",
		TerminologyPath:  "/terminology/",
		EscapeCellText:   true,
		LogLevel:         "info",
		LogFormat:        "text",
	}
}

// DefaultDir returns ~/.termtable.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".termtable"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.termtable/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := DefaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("TERMTABLE")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("target_table", d.TargetTable)
	v.SetDefault("terminology", d.Terminology)
	v.SetDefault("instructions_path", d.InstructionsPath)
	v.SetDefault("terminology_path", d.TerminologyPath)
	v.SetDefault("escape_cell_text", d.EscapeCellText)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
