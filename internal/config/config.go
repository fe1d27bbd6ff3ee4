// Package config provides configuration loading and management for goprofile.
// It reads an optional YAML file, then applies overrides from the environment
// (and a .env file in the working directory, if present).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings
const (
	EnvCroppedOutput = "GOPROFILE_CROPPED_OUTPUT"
	EnvMarkedOutput  = "GOPROFILE_MARKED_OUTPUT"
	EnvDiagramOutput = "GOPROFILE_DIAGRAM_OUTPUT"
	EnvUnits         = "GOPROFILE_UNITS"
	EnvVerbose       = "GOPROFILE_VERBOSE"
)

// DefaultConfigFile is looked up in the working directory when --config is not given
const DefaultConfigFile = "goprofile.yaml"

// Config represents the application configuration loaded from YAML
type Config struct {
	// Output parameters
	Output struct {
		// CroppedImage is where the cropped binary image is written
		CroppedImage string `yaml:"croppedImage"`

		// MarkedImage is where the image with the centre of gravity crosshair is written
		MarkedImage string `yaml:"markedImage"`

		// Diagram is an optional plot of the profile (png, svg or pdf); empty disables it
		Diagram string `yaml:"diagram"`
	} `yaml:"output"`

	// Units is the label printed next to results; no conversion is applied
	Units string `yaml:"units"`

	// Logging parameters
	Logging struct {
		// Verbose enables debug logging of the crop progress
		Verbose bool `yaml:"verbose"`
	} `yaml:"logging"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Output.CroppedImage = "profile_mod.png"
	cfg.Output.MarkedImage = "profile_COG.png"
	cfg.Output.Diagram = ""

	cfg.Units = "mm"
	cfg.Logging.Verbose = false

	return cfg
}

// LoadConfig loads configuration from a YAML file and applies environment overrides.
// If the file doesn't exist, the defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case os.IsNotExist(err):
			// defaults
		case err != nil:
			return nil, fmt.Errorf("error reading config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("error parsing config file: %w", err)
			}
		}
	}

	// Load the .env file (ignore the error if there is none)
	_ = godotenv.Load()

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvCroppedOutput); v != "" {
		cfg.Output.CroppedImage = v
	}
	if v := os.Getenv(EnvMarkedOutput); v != "" {
		cfg.Output.MarkedImage = v
	}
	if v := os.Getenv(EnvDiagramOutput); v != "" {
		cfg.Output.Diagram = v
	}
	if v := os.Getenv(EnvUnits); v != "" {
		cfg.Units = v
	}
	if v := os.Getenv(EnvVerbose); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvVerbose, v, err)
		}
		cfg.Logging.Verbose = b
	}
	return nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}
