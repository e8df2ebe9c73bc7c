/*
 * archive_test.go, part of ffdata.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package ffdata

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(energy float64) *Record {
	return &Record{
		Structures: []*Structure{{
			Lattice: [3][3]float64{{3, 0, 0}, {0, 3, 0}, {0, 0, 3}},
			Species: []string{"Fe", "O"},
			Coords:  [][3]float64{{0, 0, 0}, {1.5, 1.5, 1.5}},
			PBC:     [3]bool{true, true, true},
		}},
		Energies: []float64{energy},
		Forces:   [][][3]float64{{{0, 0, 0}, {0, 0, 1}}},
		Stresses: [][3][3]float64{{}},
	}
}

func TestMergeLastWins(Te *testing.T) {
	a := NewArchive()
	a.Set("mp-1", testRecord(-1))
	a.Set("mp-2", testRecord(-2))
	b := NewArchive()
	b.Set("mp-2", testRecord(-20))
	b.Set("mp-3", testRecord(-3))
	m := Merge(a, b)
	assert.Equal(Te, []string{"mp-1", "mp-2", "mp-3"}, m.IDs())
	r, ok := m.Record("mp-2")
	require.True(Te, ok)
	assert.Equal(Te, -20.0, r.Energies[0])
	//the inputs are not touched
	r, _ = a.Record("mp-2")
	assert.Equal(Te, -2.0, r.Energies[0])
	assert.Equal(Te, 2, a.Len())
	assert.Equal(Te, 3, m.NStructures())
}

func TestPrefixSubset(Te *testing.T) {
	a := NewArchive()
	for _, id := range []string{"c", "a", "b"} {
		a.Set(id, testRecord(0))
	}
	assert.Equal(Te, []string{"c", "a"}, a.Prefix(2).IDs())
	assert.Equal(Te, []string{"c", "a", "b"}, a.Prefix(10).IDs())
	assert.Equal(Te, 0, a.Prefix(-1).Len())
	assert.Equal(Te, []string{"b", "c"}, a.Subset([]string{"b", "zz", "c"}).IDs())
}

func TestJSONKeepsOrder(Te *testing.T) {
	a := NewArchive()
	for _, id := range []string{"mp-9", "mp-1", "mp-5"} {
		a.Set(id, testRecord(-5))
	}
	var buf bytes.Buffer
	require.NoError(Te, a.EncodeJSON(&buf))
	b, err := DecodeJSON(&buf)
	require.NoError(Te, err)
	assert.Equal(Te, a.IDs(), b.IDs())
	r, _ := b.Record("mp-1")
	require.Equal(Te, 1, r.Len())
	assert.Equal(Te, []string{"Fe", "O"}, r.Structures[0].Species)
	assert.Equal(Te, [3]float64{0, 0, 1}, r.Forces[0][1])

	var c Archive
	j, err := json.Marshal(a)
	require.NoError(Te, err)
	require.NoError(Te, json.Unmarshal(j, &c))
	assert.Equal(Te, a.IDs(), c.IDs())
}

func TestDecodeNotMapping(Te *testing.T) {
	_, err := DecodeJSON(strings.NewReader(`[1,2,3]`))
	assert.ErrorIs(Te, err, ErrNotMapping)
	_, err = DecodeJSON(strings.NewReader(`{"mp-1": {"energy": "nope"}}`))
	assert.Error(Te, err)
}

func TestDecodeTrailingData(Te *testing.T) {
	for _, in := range []string{`{} garbage`, `{}{"mp-1":{}}`, `{"mp-1":{}} ]`} {
		_, err := DecodeJSON(strings.NewReader(in))
		assert.ErrorContains(Te, err, "after the archive", in)
	}
	A, err := DecodeJSON(strings.NewReader("{\"mp-1\":{}}\n\n"))
	require.NoError(Te, err)
	assert.Equal(Te, 1, A.Len())
}

func TestDefaultPBC(Te *testing.T) {
	var s Structure
	require.NoError(Te, json.Unmarshal([]byte(`{"species":["H"],"coords":[[0,0,0]]}`), &s))
	assert.Equal(Te, [3]bool{true, true, true}, s.PBC)
	require.NoError(Te, json.Unmarshal([]byte(`{"species":["H"],"pbc":[true,false,true]}`), &s))
	assert.Equal(Te, [3]bool{true, false, true}, s.PBC)
}

func TestAtomicNumber(Te *testing.T) {
	z, ok := AtomicNumber("Fe")
	assert.True(Te, ok)
	assert.Equal(Te, 26, z)
	z, ok = AtomicNumber("O2-")
	assert.True(Te, ok)
	assert.Equal(Te, 8, z)
	_, ok = AtomicNumber("Xx")
	assert.False(Te, ok)
	assert.Equal(Te, "Pu", Symbol(94))
	assert.Equal(Te, "", Symbol(0))
	assert.Len(Te, DefaultAllowedSpecies(), 80)
}
