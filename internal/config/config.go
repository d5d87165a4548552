// Package config holds package-level compiler state and the loadable
// CLI debug toggles, in the shape of the teacher's own
// internal/config/constants.go.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// SourceFileExt is the canonical Lumo source file extension.
const SourceFileExt = ".lumo"

// IsTestMode normalizes auto-generated type-variable ids to "?" in
// RepresentationalType.String() so golden output is deterministic.
// It defaults to false; nothing in this module sets it.
var IsTestMode = false

// DebugConfig controls which intermediate stages the CLI driver
// prints, realizing spec.md §6's "three boolean debug toggles" as a
// small loadable document.
type DebugConfig struct {
	DumpTokens bool `yaml:"dumpTokens"`
	DumpItems  bool `yaml:"dumpItems"`
	DumpTypes  bool `yaml:"dumpTypes"`
}

// LoadDebugConfig reads a YAML DebugConfig from path. A missing file
// is not an error: it yields the zero-value (all toggles off).
func LoadDebugConfig(path string) (DebugConfig, error) {
	var cfg DebugConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
