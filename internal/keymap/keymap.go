// Package keymap loads header-to-key overrides from a YAML or JSON file.
package keymap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

type Rule struct {
	Header string `json:"header" yaml:"header"`
	Key    string `json:"key" yaml:"key"`
}

// Load reads rules from path and returns them keyed by trimmed header text.
// path == "" yields an empty map. Later rules win over earlier ones for the same header.
func Load(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("keymap: %w", err)
	}

	var rules []Rule
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &rules); err != nil {
			return nil, fmt.Errorf("keymap: %w", err)
		}
	case ".json":
		if err := sonic.Unmarshal(b, &rules); err != nil {
			return nil, fmt.Errorf("keymap: %w", err)
		}
	default:
		return nil, errors.New("keymap: unsupported file format (use .json or .yaml/.yml)")
	}
	return compile(rules)
}

func compile(rules []Rule) (map[string]string, error) {
	if len(rules) == 0 {
		return nil, errors.New("keymap: no rules found")
	}
	out := make(map[string]string, len(rules))
	for i, r := range rules {
		h := strings.TrimSpace(r.Header)
		if h == "" {
			return nil, fmt.Errorf("keymap: rule %d has an empty header", i+1)
		}
		out[h] = r.Key
	}
	return out, nil
}
