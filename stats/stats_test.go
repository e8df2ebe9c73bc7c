package stats

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/ffdata"
	"github.com/rmera/ffdata/extxyz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func structure(n int) *ffdata.Structure {
	S := &ffdata.Structure{Lattice: [3][3]float64{{5, 0, 0}, {0, 5, 0}, {0, 0, 5}}}
	for i := 0; i < n; i++ {
		S.Species = append(S.Species, "Si")
		S.Coords = append(S.Coords, [3]float64{float64(i), 0, 0})
	}
	return S
}

func testArchive() *ffdata.Archive {
	A := ffdata.NewArchive()
	A.Set("mp-1", &ffdata.Record{Structures: []*ffdata.Structure{structure(2), structure(2), structure(4)}})
	A.Set("mp-2", &ffdata.Record{Structures: []*ffdata.Structure{structure(8), nil}})
	A.Set("mp-3", &ffdata.Record{})
	return A
}

func TestCountArchive(Te *testing.T) {
	C := CountArchive(testArchive())
	assert.Equal(Te, Count{Materials: 3, Structures: 5, Atoms: 16}, C)
	assert.Equal(Te, Count{}, CountArchive(ffdata.NewArchive()))
}

func TestCountFrames(Te *testing.T) {
	var buf bytes.Buffer
	W := extxyz.NewWriter(&buf)
	for _, n := range []int{1, 3, 5} {
		S := structure(n)
		F := &extxyz.Frame{Lattice: S.Lattice, Species: S.Species, Coords: S.Coords, Forces: make([][3]float64, n)}
		require.NoError(Te, W.Write(F))
	}
	require.NoError(Te, W.Flush())
	C, err := CountFrames(&buf)
	require.NoError(Te, err)
	assert.Equal(Te, Count{Structures: 3, Atoms: 9}, C)

	_, err = CountFrames(strings.NewReader("2\nnot a header\n"))
	assert.Error(Te, err)
}

func TestSummarize(Te *testing.T) {
	s := Summarize(AtomCounts(testArchive()))
	assert.Equal(Te, 4, s.N)
	assert.Equal(Te, 4.0, s.Mean)
	assert.InDelta(Te, math.Sqrt(8), s.StdDev, 1e-12)
	assert.Equal(Te, 2.0, s.Min)
	assert.Equal(Te, 8.0, s.Max)
	assert.Equal(Te, Summary{}, Summarize(nil))
	assert.Equal(Te, Summary{N: 1, Mean: 3, Min: 3, Max: 3}, Summarize([]float64{3}))
}

func TestHistogram(Te *testing.T) {
	raw := []float64{3, 0, 1, 1.5, -1, 2, 0.2}
	H := NewHistogram([]float64{0, 1, 2}, raw)
	//the input is not sorted in place
	assert.Equal(Te, 3.0, raw[0])
	assert.Equal(Te, []float64{2, 2}, H.histo)
	assert.Equal(Te, 4, H.Total())
	H.Normalize()
	assert.True(Te, H.normalized)
	assert.InDeltaSlice(Te, []float64{0.5, 0.5}, H.histo, 1e-12)
	//a second call does not rescale
	H.Normalize()
	assert.InDeltaSlice(Te, []float64{0.5, 0.5}, H.histo, 1e-12)
	assert.Contains(Te, H.String(), "Normalized: true, TotalData: 4")
	E := NewHistogram([]float64{0, 1}, nil)
	E.Normalize()
	assert.False(Te, E.normalized)
	assert.Panics(Te, func() { NewHistogram([]float64{1}, nil) })
}

func TestAtomHistogram(Te *testing.T) {
	H := AtomHistogram(testArchive())
	require.Len(Te, H.dividers, 9)
	assert.Equal(Te, 0.5, H.dividers[0])
	assert.Equal(Te, 8.5, H.dividers[8])
	assert.Equal(Te, []float64{0, 2, 0, 1, 0, 0, 0, 1}, H.histo)
	assert.Zero(Te, AtomHistogram(ffdata.NewArchive()).Total())
}

func TestHistogramJSON(Te *testing.T) {
	H := NewHistogram(Dividers(0, 3, 3), []float64{0.5, 2.5, 2.7})
	H.Normalize()
	b, err := json.Marshal(H)
	require.NoError(Te, err)
	var got struct {
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}
	require.NoError(Te, json.Unmarshal(b, &got))
	assert.True(Te, got.Normalized)
	assert.Equal(Te, 3, got.Total)
	assert.Equal(Te, []float64{0, 1, 2, 3}, got.Dividers)
	assert.InDeltaSlice(Te, []float64{1.0 / 3, 0, 2.0 / 3}, got.Histo, 1e-12)
}

func TestPlot(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "atoms.png")
	require.NoError(Te, AtomHistogram(testArchive()).Plot("Atoms per structure", "Atoms", name))
	fi, err := os.Stat(name)
	require.NoError(Te, err)
	assert.NotZero(Te, fi.Size())
}
