package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"conveyor.dataloader.org/loaddb"
)

// FileConfig is the optional YAML configuration file. Command-line flags
// take precedence over values read from it.
type FileConfig struct {
	Port        int           `yaml:"port"`
	Env         string        `yaml:"env"`
	ApiKeys     []string      `yaml:"apiKeys"`
	RateLimit   int           `yaml:"rateLimit"`
	LogFile     string        `yaml:"logFile"`
	Destination loaddb.Config `yaml:"destination"`
}

// LoadConfigFile reads and parses a YAML configuration file.
func LoadConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	return &cfg, nil
}
