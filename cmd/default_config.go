package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	sim "github.com/hospital-sim/hospital-sim/sim"
)

// ConfigFile is a parsed --config file.
type ConfigFile struct {
	sim.Config
	// HorizonSet reports whether the file names a horizon. sim.Merge treats a zero
	// horizon as unset, so an explicit "horizon: 0" is applied after merging.
	HorizonSet bool
}

// LoadConfigFile parses a hospital configuration YAML file.
// Uses strict field checking: a misspelled key is an error, not a silent default.
// Fields and categories the file omits are left empty so sim.Merge can fall back
// to the defaults per category.
func LoadConfigFile(path string) (ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ConfigFile{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (ConfigFile, error) {
	var cfg sim.Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return ConfigFile{}, fmt.Errorf("parse config YAML: %w", err)
	}

	var keys struct {
		Horizon *float64 `yaml:"horizon"`
	}
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return ConfigFile{}, fmt.Errorf("parse config YAML: %w", err)
	}
	return ConfigFile{Config: cfg, HorizonSet: keys.Horizon != nil}, nil
}

// Apply merges the file over base, keeping an explicit zero horizon.
func (f ConfigFile) Apply(base sim.Config) sim.Config {
	cfg := sim.Merge(base, f.Config)
	if f.HorizonSet {
		cfg.Horizon = f.Horizon
	}
	return cfg
}

// MarshalConfig renders cfg in the same YAML layout LoadConfigFile accepts.
func MarshalConfig(cfg sim.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// toFloatMap converts a --flag A=1.5,B=2 value into per-category floats.
func toFloatMap(flag string, raw map[string]string) (map[sim.Category]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[sim.Category]float64, len(raw))
	for k, v := range raw {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("--%s %s=%q: %w", flag, k, v, err)
		}
		out[sim.Category(k)] = f
	}
	return out, nil
}

// toIntMap converts a --flag A=55,B=40 value into per-category integers.
func toIntMap(raw map[string]int) map[sim.Category]int {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[sim.Category]int, len(raw))
	for k, v := range raw {
		out[sim.Category(k)] = v
	}
	return out
}
