package sample

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/rmera/ffdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbered(prefix string, n int) *ffdata.Archive {
	A := ffdata.NewArchive()
	for i := 0; i < n; i++ {
		A.Set(fmt.Sprintf("%s-%d", prefix, i), &ffdata.Record{Energies: []float64{float64(i)}})
	}
	return A
}

func TestPrefix(Te *testing.T) {
	a := numbered("mp", 5)
	b := numbered("mvc", 2)
	P := Prefix([]*ffdata.Archive{a, b}, 3)
	assert.Equal(Te, []string{"mp-0", "mp-1", "mp-2", "mvc-0", "mvc-1"}, P.IDs())

	//overlapping IDs: the later archive wins.
	c := numbered("mp", 2)
	r, _ := c.Record("mp-1")
	r.Energies[0] = 100
	P = Prefix([]*ffdata.Archive{a, c}, 2)
	assert.Equal(Te, []string{"mp-0", "mp-1"}, P.IDs())
	r, _ = P.Record("mp-1")
	assert.Equal(Te, 100.0, r.Energies[0])
}

func TestRandom(Te *testing.T) {
	A := numbered("mp", 50)
	all := make(map[string]bool)
	for _, id := range A.IDs() {
		all[id] = true
	}
	rng := rand.New(rand.NewPCG(1, 2))
	for _, k := range []int{0, 1, 10, 49} {
		S := Random(A, k, rng)
		ids := S.IDs()
		require.Len(Te, ids, k)
		seen := make(map[string]bool)
		for _, id := range ids {
			assert.True(Te, all[id], id)
			assert.False(Te, seen[id], "duplicate %s", id)
			seen[id] = true
			orig, _ := A.Record(id)
			got, _ := S.Record(id)
			assert.Same(Te, orig, got)
		}
	}
	assert.Equal(Te, A.IDs(), Random(A, 50, rng).IDs())
	assert.Equal(Te, A.IDs(), Random(A, 500, rng).IDs())
	assert.Zero(Te, Random(ffdata.NewArchive(), 3, rng).Len())
}

func TestRandomCoversAll(Te *testing.T) {
	A := numbered("mp", 10)
	rng := rand.New(rand.NewPCG(3, 4))
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		for _, id := range Random(A, 2, rng).IDs() {
			seen[id] = true
		}
	}
	assert.Len(Te, seen, 10)
}

func TestRandomN(Te *testing.T) {
	A := numbered("mp", 30)
	d := RandomN(A, 5, 4, 42)
	require.Len(Te, d, 4)
	for _, S := range d {
		assert.Equal(Te, 5, S.Len())
	}
	again := RandomN(A, 5, 4, 42)
	for i := range d {
		assert.Equal(Te, d[i].IDs(), again[i].IDs())
	}
}
