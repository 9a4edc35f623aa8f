package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/docnav/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docnav/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// DefaultDirName is the directory under the user's home holding config.toml.
const DefaultDirName = ".docnav"

// ConfigStore persists a memory.ConfigStore as a TOML file.
// Nested tables are exposed as dot-notation keys ("corpus.root").
type ConfigStore struct {
	*memory.ConfigStore

	// saveMu orders writes to filePath.
	saveMu   sync.Mutex
	filePath string
}

// NewConfigStore creates a new TOML-based config store.
// location is either a .toml file or a directory holding config.toml.
// If location is empty, defaults to ~/.docnav/config.toml.
// A missing file is not an error; it is created on the first Save.
func NewConfigStore(location string) (*ConfigStore, error) {
	if location == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		location = filepath.Join(home, DefaultDirName)
	}

	filePath := location
	if !strings.EqualFold(filepath.Ext(location), ".toml") {
		filePath = filepath.Join(location, "config.toml")
	}

	s := &ConfigStore{
		ConfigStore: memory.NewConfigStore(),
		filePath:    filePath,
	}

	if err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Set stores a configuration value and persists immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if err := s.ConfigStore.Set(key, value); err != nil {
		return err
	}
	return s.save()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return s.save()
}

// save writes configuration to the TOML file (caller must hold saveMu).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(nestMap(s.Values()))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		return err
	}

	return os.WriteFile(s.filePath, data, 0600)
}

// Load replaces the in-memory values with the contents of the TOML file.
func (s *ConfigStore) Load() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.Replace(nil)
			return nil
		}
		return err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parse %s: %w", s.filePath, err)
	}

	s.Replace(flattenMap(loaded, ""))
	return nil
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}

// nestMap is the inverse of flattenMap, so saved files use TOML tables.
// A key that is both a value and a table prefix keeps the value.
func nestMap(flat map[string]any) map[string]any {
	result := make(map[string]any)

	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := flat[key]
		parts := strings.Split(key, ".")
		node := result
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				if _, taken := node[part]; taken {
					node = nil
					break
				}
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
		if node == nil {
			continue
		}
		leaf := parts[len(parts)-1]
		if _, isTable := node[leaf].(map[string]any); isTable {
			continue
		}
		node[leaf] = value
	}

	return result
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
