package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names.
const (
	keyExplorer = "explorer"
	keyCache    = "cache"
	keyUI       = "ui"
	keyLogging  = "logging"
)

// MergeYAMLFile loads a YAML file and merges each top-level section onto the
// matching section of target. Fields absent from a section keep the value
// already in target. Unknown top-level keys are ignored.
func MergeYAMLFile(target *Config, path string) error {
	if target == nil {
		return errors.New("nil target *Config in MergeYAMLFile")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing config YAML from %s: %w", path, err)
	}

	for key, node := range overlay {
		if err = decodeSection(target, key, &node); err != nil {
			return fmt.Errorf("applying config section %q: %w", key, err)
		}
	}
	return nil
}

// decodeSection decodes node onto the field of target named by key.
func decodeSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyExplorer:
		return node.Decode(&target.Explorer)
	case keyCache:
		return node.Decode(&target.Cache)
	case keyUI:
		return node.Decode(&target.UI)
	case keyLogging:
		return node.Decode(&target.Logging)
	default:
		return nil
	}
}
