/*
 * sample.go, part of ffdata.
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

// Package sample builds smaller archives out of larger ones. It works only
// with material IDs: records are shared with the source archives, never
// inspected or copied.
package sample

import (
	"math/rand/v2"

	"github.com/rmera/ffdata"
)

// Prefix takes the first k materials of each archive, in archive order, and
// merges the results in the given order.
func Prefix(archives []*ffdata.Archive, k int) *ffdata.Archive {
	parts := make([]*ffdata.Archive, 0, len(archives))
	for _, A := range archives {
		parts = append(parts, A.Prefix(k))
	}
	return ffdata.Merge(parts...)
}

// Random returns an archive with k materials of A drawn uniformly without
// replacement, or all of them, if A has k materials or fewer. The materials
// keep the relative order they have in A.
func Random(A *ffdata.Archive, k int, rng *rand.Rand) *ffdata.Archive {
	ids := A.IDs()
	if k >= len(ids) {
		return A.Subset(ids)
	}
	if k <= 0 {
		return ffdata.NewArchive()
	}
	//partial Fisher-Yates over the indexes.
	idx := make([]int, len(ids))
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	chosen := make([]bool, len(ids))
	for _, i := range idx[:k] {
		chosen[i] = true
	}
	sel := make([]string, 0, k)
	for i, id := range ids {
		if chosen[i] {
			sel = append(sel, id)
		}
	}
	return A.Subset(sel)
}

// RandomN performs n independent draws of k materials (see Random). The draws
// depend only on seed.
func RandomN(A *ffdata.Archive, k, n int, seed uint64) []*ffdata.Archive {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	ret := make([]*ffdata.Archive, 0, n)
	for i := 0; i < n; i++ {
		ret = append(ret, Random(A, k, rng))
	}
	return ret
}
