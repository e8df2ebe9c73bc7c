package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(Te *testing.T) {
	assert.Equal(Te, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(Te, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(Te, slog.LevelError, parseLevel("error"))
	assert.Equal(Te, slog.LevelInfo, parseLevel("info"))
	assert.Equal(Te, slog.LevelInfo, parseLevel("loud"))
}

func TestNewDiagnostics(Te *testing.T) {
	var buf bytes.Buffer
	L := NewDiagnostics(&buf)
	L.Info("skipped structure", "material_id", "mp-1", "structure_index", 3, "reason", "length_mismatch")
	assert.Equal(Te, "msg=\"skipped structure\" material_id=mp-1 structure_index=3 reason=length_mismatch\n", buf.String())
}

func TestDiagnosticsFile(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "extraction.log")
	require.NoError(Te, os.WriteFile(name, []byte("old contents\n"), 0o644))
	L, c, err := Diagnostics(name)
	require.NoError(Te, err)
	L.Info("no edges", "material_id", "mp-2")
	require.NoError(Te, c.Close())
	b, err := os.ReadFile(name)
	require.NoError(Te, err)
	assert.False(Te, strings.Contains(string(b), "old contents"))
	assert.Contains(Te, string(b), "material_id=mp-2")

	L, c, err = Diagnostics("")
	require.NoError(Te, err)
	assert.Nil(Te, c)
	assert.NotPanics(Te, func() { L.Info("nothing") })

	_, _, err = Diagnostics(filepath.Join(Te.TempDir(), "no", "such", "dir.log"))
	assert.Error(Te, err)
}
