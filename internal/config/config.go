// Package config handles intcode.toml settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ib-77/intcode/internal/logging"
	"github.com/ib-77/intcode/pkg/intcode"
)

// FileName is the settings file looked up by FindAndLoad.
const FileName = "intcode.toml"

type Config struct {
	Log     Log     `toml:"log"`
	Machine Machine `toml:"machine"`
	Circuit Circuit `toml:"circuit"`

	// Path is the file the settings came from, empty for defaults.
	Path string `toml:"-"`
}

type Log struct {
	Level string `toml:"level"`
}

type Machine struct {
	// MemoryLimit caps engine memory in cells.
	MemoryLimit int64 `toml:"memory_limit"`
}

type Circuit struct {
	// Workers bounds the phase search fan-out.
	Workers int `toml:"workers"`
}

// Default returns the settings used when no file is found.
func Default() *Config {
	return &Config{
		Log:     Log{Level: logging.LevelWarn},
		Machine: Machine{MemoryLimit: intcode.DefaultMemoryLimit},
		Circuit: Circuit{Workers: 4},
	}
}

// Load parses the settings file at path. Keys it leaves out keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	if _, err := toml.Decode(string(data), c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	c.Path, err = filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	return c, nil
}

// FindAndLoad walks up from startDir to the first intcode.toml and loads
// it. Defaults are returned when there is none.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

func (c *Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Machine.MemoryLimit < 0 {
		errs = append(errs, fmt.Errorf("invalid memory_limit %d", c.Machine.MemoryLimit))
	}
	if c.Circuit.Workers < 0 {
		errs = append(errs, fmt.Errorf("invalid workers %d", c.Circuit.Workers))
	}
	return errors.Join(errs...)
}
