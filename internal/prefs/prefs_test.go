package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/wishlist/internal/model"
)

func TestViewMode_DefaultsToGrid(t *testing.T) {
	mode, err := NewStore(t.TempDir()).ViewMode()
	require.NoError(t, err)
	require.Equal(t, model.ViewGrid, mode)
}

func TestViewMode_SurvivesReload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	require.NoError(t, NewStore(dir).SetViewMode(model.ViewList))

	// fresh store, as on the next start
	mode, err := NewStore(dir).ViewMode()
	require.NoError(t, err)
	require.Equal(t, model.ViewList, mode)
}

func TestViewMode_CorruptFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte(`{"view_mode":"table"}`), 0o644))
	mode, err := NewStore(dir).ViewMode()
	require.Error(t, err)
	require.Equal(t, model.ViewGrid, mode)
}

func TestSetViewMode_RejectsUnknown(t *testing.T) {
	require.Error(t, NewStore(t.TempDir()).SetViewMode("table"))
}
