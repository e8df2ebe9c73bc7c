package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/ffdata"
	"github.com/rmera/ffdata/archive"
	"github.com/rmera/ffdata/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArchive(Te *testing.T, name string, ids ...string) {
	Te.Helper()
	A := ffdata.NewArchive()
	for _, id := range ids {
		A.Set(id, &ffdata.Record{
			Structures: []*ffdata.Structure{{
				Lattice: [3][3]float64{{3, 0, 0}, {0, 3, 0}, {0, 0, 3}},
				Species: []string{"Fe", "O"},
				Coords:  [][3]float64{{0, 0, 0}, {1.5, 1.5, 1.5}},
				PBC:     [3]bool{true, true, true},
			}},
			Energies: []float64{-5},
			Forces:   [][][3]float64{{{0, 0, 0}, {0, 0, 1}}},
			Stresses: [][3][3]float64{{}},
		})
	}
	require.NoError(Te, archive.Save(name, A))
}

func TestConvertCommand(Te *testing.T) {
	dir := Te.TempDir()
	a := filepath.Join(dir, "block_0.json.zst")
	b := filepath.Join(dir, "block_1.db")
	writeArchive(Te, a, "mp-1", "mp-2")
	writeArchive(Te, b, "mp-2", "mp-3")
	cfg := config.Default()
	out := filepath.Join(dir, "out.extxyz")
	prom := filepath.Join(dir, "run.prom")
	err := runConvert(context.Background(), cfg, []string{
		"-o", out, "-diag", filepath.Join(dir, "extraction.log"),
		"-edge-filter", "-no-edges", filepath.Join(dir, "none.extxyz"),
		"-metrics", prom, a, b,
	})
	require.NoError(Te, err)
	data, err := os.ReadFile(out)
	require.NoError(Te, err)
	assert.Equal(Te, 3, strings.Count(string(data), "pbc=\"T T T\""))
	none, err := os.ReadFile(filepath.Join(dir, "none.extxyz"))
	require.NoError(Te, err)
	assert.Empty(Te, none)
	m, err := os.ReadFile(prom)
	require.NoError(Te, err)
	assert.Contains(Te, string(m), "ffdata_materials_total 3")
}

func TestConvertMissingArchive(Te *testing.T) {
	dir := Te.TempDir()
	out := filepath.Join(dir, "out.extxyz")
	err := runConvert(context.Background(), config.Default(), []string{"-o", out, filepath.Join(dir, "nope.json")})
	var re *archive.ReadError
	require.ErrorAs(Te, err, &re)
	//nothing is written
	_, err = os.Stat(out)
	assert.ErrorIs(Te, err, os.ErrNotExist)
}

func TestSampleCommand(Te *testing.T) {
	dir := Te.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	writeArchive(Te, a, "mp-1", "mp-2", "mp-3")
	writeArchive(Te, b, "mp-7", "mp-8")
	out := filepath.Join(dir, "sampled.json.gz")
	require.NoError(Te, runSample(context.Background(), config.Default(), []string{"-n", "2", "-o", out, a, b}))
	S, err := archive.Load(out)
	require.NoError(Te, err)
	assert.Equal(Te, []string{"mp-1", "mp-2", "mp-7", "mp-8"}, S.IDs())

	pattern := filepath.Join(dir, "draw_%d.json")
	require.NoError(Te, runSample(context.Background(), config.Default(), []string{"-mode", "random", "-n", "3", "-repeats", "2", "-o", pattern, a, b}))
	for _, name := range []string{"draw_0.json", "draw_1.json"} {
		S, err := archive.Load(filepath.Join(dir, name))
		require.NoError(Te, err)
		assert.Equal(Te, 3, S.Len())
	}
}

func TestCountCommand(Te *testing.T) {
	dir := Te.TempDir()
	a := filepath.Join(dir, "a.json")
	writeArchive(Te, a, "mp-1", "mp-2")
	cfg := config.Default()
	cfg.Stats.HistogramPlot = filepath.Join(dir, "atoms.png")
	require.NoError(Te, runCount(context.Background(), cfg, []string{a}))
	_, err := os.Stat(cfg.Stats.HistogramPlot)
	assert.NoError(Te, err)

	out := filepath.Join(dir, "out.extxyz")
	require.NoError(Te, runConvert(context.Background(), config.Default(), []string{"-o", out, "-diag", "", a}))
	require.NoError(Te, runCount(context.Background(), config.Default(), []string{"-frames", "-json", out}))
}

func TestCountNormalized(Te *testing.T) {
	dir := Te.TempDir()
	a := filepath.Join(dir, "a.json")
	writeArchive(Te, a, "mp-1", "mp-2")
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	defer func() { stdout = old }()
	require.NoError(Te, runCount(context.Background(), config.Default(), []string{"-normalize", a}))
	out := buf.String()
	assert.Contains(Te, out, "Total number of materials: 2")
	assert.Contains(Te, out, "Normalized: true, TotalData: 2")
	assert.Contains(Te, out, "1.000")

	buf.Reset()
	require.NoError(Te, runCount(context.Background(), config.Default(), []string{a}))
	assert.Contains(Te, buf.String(), "Normalized: false, TotalData: 2")
	assert.Contains(Te, buf.String(), "2.000")
}

func TestLogFailureTrace(Te *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	_, err := archive.LoadAll(context.Background(), []string{filepath.Join(Te.TempDir(), "nope.json")})
	require.Error(Te, err)
	logFailure(log, "convert", err)
	out := buf.String()
	assert.Contains(Te, out, "command=convert")
	assert.Contains(Te, out, "trace=\"[Load LoadEach LoadAll]\"")

	buf.Reset()
	logFailure(log, "count", errors.New("plain"))
	assert.Contains(Te, buf.String(), "error=plain")
	assert.NotContains(Te, buf.String(), "trace=")
}
