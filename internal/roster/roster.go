// Package roster loads the legislator roster the attributor matches
// against. The roster is an external, read-only input maintained by
// hand or exported from the legislature's member API.
package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/beaconhilldata/earmarker/internal/model"
)

// Load reads a roster file. The format follows the file extension:
// .json, or .yaml/.yml.
func Load(path string) ([]model.Legislator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}

	var members []model.Legislator
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &members); err != nil {
			return nil, fmt.Errorf("parse roster %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &members); err != nil {
			return nil, fmt.Errorf("parse roster %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported roster format %q", ext)
	}

	if err := validate(members); err != nil {
		return nil, fmt.Errorf("roster %s: %w", path, err)
	}
	return members, nil
}

func validate(members []model.Legislator) error {
	if len(members) == 0 {
		return fmt.Errorf("no members")
	}
	seen := make(map[string]struct{}, len(members))
	for i, m := range members {
		if m.MemberCode == "" {
			return fmt.Errorf("member %d (%q) has no member_code", i, m.Name)
		}
		if m.Name == "" {
			return fmt.Errorf("member %s has no name", m.MemberCode)
		}
		if _, dup := seen[m.MemberCode]; dup {
			return fmt.Errorf("duplicate member_code %s", m.MemberCode)
		}
		seen[m.MemberCode] = struct{}{}
	}
	return nil
}
