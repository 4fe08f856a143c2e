package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "wishlist.log")

	l, err := New(path, "debug")
	require.NoError(t, err)
	l.Info("loaded items", zap.Int("count", 3))
	_ = l.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(b), `"msg":"loaded items"`), string(b))
	require.True(t, strings.Contains(string(b), `"count":3`), string(b))
}

func TestNew_EmptyPathIsNop(t *testing.T) {
	l, err := New("", "")
	require.NoError(t, err)
	require.NotNil(t, l)
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "x.log"), "loud")
	require.Error(t, err)
}
