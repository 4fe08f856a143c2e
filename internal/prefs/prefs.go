// Package prefs persists the chosen view mode across sessions.
// Single JSON file, human-readable. No locking; one user, one client.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Makepad-fr/wishlist/internal/model"
)

const fileName = "prefs.json"

type prefsFile struct {
	ViewMode model.ViewMode `json:"view_mode"`
}

type Store struct {
	dir string
}

func NewStore(dir string) *Store { return &Store{dir: dir} }

func (s *Store) path() string { return filepath.Join(s.dir, fileName) }

// ViewMode reads the stored mode. A missing or unreadable value yields
// the grid default together with any read error.
func (s *Store) ViewMode() (model.ViewMode, error) {
	b, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.DefaultViewMode, nil
		}
		return model.DefaultViewMode, fmt.Errorf("read file: %w", err)
	}
	var p prefsFile
	if err := json.Unmarshal(b, &p); err != nil {
		return model.DefaultViewMode, fmt.Errorf("json unmarshal: %w", err)
	}
	mode, err := model.ParseViewMode(string(p.ViewMode))
	if err != nil {
		return model.DefaultViewMode, err
	}
	return mode, nil
}

func (s *Store) SetViewMode(mode model.ViewMode) error {
	if _, err := model.ParseViewMode(string(mode)); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(prefsFile{ViewMode: mode}, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(s.path(), b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
