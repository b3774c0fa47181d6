package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeFilename = regexp.MustCompile(`[^\w.-]`)

// Store persists tool descriptors as one JSON file per tool under a
// per-provider subdirectory of the configured root.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) dir(provider string) string {
	return filepath.Join(s.root, provider)
}

// Load reads every *.json descriptor for the provider. A missing directory
// is not an error; it just yields an empty set.
func (s *Store) Load(provider string) (map[string]*Tool, error) {
	dir := s.dir(provider)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*Tool{}, nil
		}
		return nil, fmt.Errorf("read tools dir %s: %w", dir, err)
	}

	tools := make(map[string]*Tool)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		var t Tool
		if err := json.Unmarshal(raw, &t); err != nil {
			continue
		}
		if err := t.Validate(); err != nil {
			continue
		}
		tools[t.Name] = &t
	}
	return tools, nil
}

// Save writes each descriptor to <root>/<provider>/<name>.json.
func (s *Store) Save(provider string, tools map[string]*Tool) error {
	dir := s.dir(provider)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create tools dir %s: %w", dir, err)
	}

	for name, t := range tools {
		safe := unsafeFilename.ReplaceAllString(name, "_")
		blob, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal tool %s: %w", name, err)
		}
		path := filepath.Join(dir, safe+".json")
		if err := os.WriteFile(path, blob, 0o644); err != nil {
			return fmt.Errorf("write tool %s: %w", name, err)
		}
	}
	return nil
}
