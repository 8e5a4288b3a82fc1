package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/overkey/internal/input/key"
)

// Macros persist as canonical sequence descriptions rather than raw
// event encodings, so the files stay readable and survive changes to
// the internal key representation.

type persistedMacro struct {
	Name      string    `json:"name"`
	Keys      string    `json:"keys"`
	CreatedAt time.Time `json:"created_at"`
}

type persistedFile struct {
	Version int              `json:"version"`
	SavedAt time.Time        `json:"saved_at"`
	Last    string           `json:"last,omitempty"`
	Macros  []persistedMacro `json:"macros"`
}

const persistVersion = 1

// Save writes the store's macros to path, atomically via a temp file
// and rename.
func Save(store *Store, path string) error {
	macros, last := store.snapshot()

	data := persistedFile{
		Version: persistVersion,
		SavedAt: time.Now(),
		Last:    last,
		Macros:  make([]persistedMacro, 0, len(macros)),
	}
	for _, m := range macros {
		data.Macros = append(data.Macros, persistedMacro{
			Name:      m.Name,
			Keys:      m.Keys.Describe(),
			CreatedAt: m.CreatedAt,
		})
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("record: marshal macros: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("record: create macros directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		return fmt.Errorf("record: write macros file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("record: rename macros file: %w", err)
	}
	return nil
}

// Load replaces the store's macros with the contents of path. A
// missing file loads nothing and is not an error.
func Load(store *Store, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("record: read macros file: %w", err)
	}

	var data persistedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("record: unmarshal macros: %w", err)
	}
	if data.Version > persistVersion {
		return fmt.Errorf("record: unsupported macros file version %d", data.Version)
	}

	macros := make([]Macro, 0, len(data.Macros))
	for _, pm := range data.Macros {
		seq, err := key.ParseSequence(pm.Keys)
		if err != nil {
			return fmt.Errorf("record: macro %q: %w", pm.Name, err)
		}
		macros = append(macros, Macro{Name: pm.Name, Keys: seq, CreatedAt: pm.CreatedAt})
	}

	store.replace(macros, data.Last)
	return nil
}

// DefaultPath returns the standard macros file location under the
// user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("record: locate config directory: %w", err)
	}
	return filepath.Join(dir, "overkey", "macros.json"), nil
}
