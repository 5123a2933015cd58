// Package config loads the optional YAML render configuration the CLI
// reads before applying flags.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds render settings. Flags override any field that is also
// set on the command line.
type Config struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Format    string `yaml:"format"`
	Out       string `yaml:"out"`
	Labels    bool   `yaml:"labels"`
	LabelSeed int64  `yaml:"label_seed"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Width:     800,
		Height:    600,
		Format:    "ops",
		Out:       "map.png",
		LabelSeed: 1,
	}
}

// Load reads a YAML configuration and overlays it on the defaults.
func Load(path string) (Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, err
	}
	return c, nil
}
