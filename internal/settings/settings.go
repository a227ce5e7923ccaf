// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// EnvFile names the variable holding an explicit settings file path.
const EnvFile = "TRYPHON_CFG_FILE"

// Type is the in-memory representation of the settings file.
//
// Fields:
//   - Source: path of the YAML file loaded, empty when none was found.
//   - Namespace: optional key prefix tried before the bare key, e.g. a
//     schema name so "prod.output" wins over "output".
//   - Data: raw key/value tree unmarshaled from YAML.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]any
}

// Settings holds the lazily loaded settings.
var Settings Type

// Reset drops the loaded settings so the next getter reloads them.
func Reset() {
	Settings = Type{}
}

// GetInt returns the integer value for the dotted key. A single defaultValue
// may be provided and is returned when the key is missing.
func GetInt(key string, defaultValue ...int) (int, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	// YAML numbers may be unmarshaled as int or float64 depending on content.
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s: value is not an int", key)
	}
}

// GetBool returns the boolean value for the dotted key, or the single
// defaultValue when it is missing.
func GetBool(key string, defaultValue ...bool) (bool, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return false, err
	}

	b, ok := val.(bool)
	if !ok {
		return false, fmt.Errorf("%s: value is not a bool", key)
	}
	return b, nil
}

// GetString returns the string value for the dotted key, or the single
// defaultValue when it is missing. A present non-string value is an error.
func GetString(key string, defaultValue ...string) (string, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s: value is not a string", key)
	}
	return s, nil
}

// GetStringSlice returns the string list for the dotted key, or the single
// default slice when it is missing.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return nil, err
	}

	switch v := val.(type) {
	case []string:
		return v, nil
	case []any:
		result := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s: element %d is not a string", key, i)
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, fmt.Errorf("%s: value is not a list", key)
	}
}

// Load reads the settings file and replaces Settings. The namespace of the
// previous Settings is kept.
func Load() (Type, error) {
	path, err := File()
	if err != nil {
		return Type{}, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]any
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	Settings = Type{
		Source:    path,
		Namespace: Settings.Namespace,
		Data:      data,
	}
	return Settings, nil
}

func lookup(key string) (any, error) {
	if len(Settings.Data) == 0 {
		if _, err := Load(); err != nil {
			log.Debugf("settings: %v", err)
		}
	}
	return Settings.get(key)
}

// get walks the tree along the dotted key. With a Namespace the namespaced
// key is tried first.
func (s *Type) get(kspec string) (any, error) {
	candidates := []string{kspec}
	if s.Namespace != "" {
		candidates = []string{s.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidates {
		var current any = s.Data
		found := true
		for _, part := range strings.Split(key, ".") {
			m, ok := current.(map[string]any)
			if !ok {
				found = false
				break
			}
			if current, ok = m[part]; !ok {
				found = false
				break
			}
		}
		if found {
			return current, nil
		}
	}

	return nil, fmt.Errorf("no valid path found among: %v", candidates)
}

// File returns the settings file path: TRYPHON_CFG_FILE when set, otherwise
// tryphon.yaml in the user config directory. The file must exist and not be
// a directory.
func File() (string, error) {
	if cfgPath := os.Getenv(EnvFile); cfgPath != "" {
		info, err := os.Stat(cfgPath)
		if err != nil {
			return "", fmt.Errorf("settings file not found at %s path: %s", EnvFile, cfgPath)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%s points to a directory: %s", EnvFile, cfgPath)
		}
		log.Debugf("using settings file from %s: %s", EnvFile, cfgPath)
		return cfgPath, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	file := filepath.Join(dir, "tryphon.yaml")
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		log.Debugf("using settings file: %s", file)
		return file, nil
	}

	return "", errors.New("no settings file found in standard locations")
}
