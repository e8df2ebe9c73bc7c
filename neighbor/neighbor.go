/*
 * neighbor.go, part of ffdata.
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

// Package neighbor computes neighbor lists under periodic boundary
// conditions, as used to build the interaction graph of message-passing
// potentials.
package neighbor

import (
	"cmp"
	"errors"
	"math"
	"slices"

	v3 "github.com/rmera/ffdata/v3"
	"gonum.org/v1/gonum/mat"
)

const detTolerance = 1e-10

var (
	ErrSingularLattice = errors.New("neighbor: lattice vectors are linearly dependent")
	ErrCutoff          = errors.New("neighbor: cutoff must be positive")
)

// Edge joins atom I to the image of atom J displaced by Shift lattice
// vectors, i.e. the vector of the edge is r_J + Shift*L - r_I.
type Edge struct {
	I, J  int
	Shift [3]int
}

// SelfLoop returns true if the edge joins an atom with itself in the same cell.
// An atom joined to one of its periodic images is not a self-loop.
func (E Edge) SelfLoop() bool {
	return E.I == E.J && E.Shift == [3]int{}
}

// List returns every pair of atoms closer than cutoff (strictly), considering
// all the periodic images along the directions where pbc is true. Each pair
// is listed in both directions, (i, j, S) and (j, i, -S). coords are cartesian,
// one atom per row; lattice has one lattice vector per row. Coordinates
// don't need to be inside the cell. If selfInteraction is true, the
// zero-length self-loops (i, i, 0) are included too.
// The edges are sorted by I, then J, then Shift.
func List(coords *v3.Matrix, lattice *mat.Dense, pbc [3]bool, cutoff float64, selfInteraction bool) ([]Edge, error) {
	if cutoff <= 0 || math.IsNaN(cutoff) {
		return nil, ErrCutoff
	}
	if coords == nil {
		return nil, nil
	}
	if r, c := lattice.Dims(); r != 3 || c != 3 {
		return nil, ErrSingularLattice
	}
	if math.Abs(mat.Det(lattice)) < detTolerance {
		return nil, ErrSingularLattice
	}
	var inv mat.Dense
	if err := inv.Inverse(lattice); err != nil {
		//an ill-conditioned, but invertible, lattice is still usable.
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, ErrSingularLattice
		}
	}
	n := coords.NVecs()
	frac := v3.Zeros(n)
	frac.Dense.Mul(coords.Dense, &inv)
	offset := v3.Zeros(n)
	wrapped := offset.Floor(frac)
	for k := 0; k < 3; k++ {
		if pbc[k] {
			continue
		}
		for i := 0; i < n; i++ {
			offset.Set(i, k, 0)
			wrapped.Set(i, k, frac.At(i, k))
		}
	}
	cart := v3.Zeros(n)
	cart.Dense.Mul(wrapped.Dense, lattice)

	//The fractional component along k of any vector shorter than cutoff is at most
	//cutoff*|b_k|, b_k being the kth column of the inverse lattice (row k of recip). Since wrapped
	//positions differ by less than one cell, that many images on each side suffice.
	recip := v3.Zeros(3)
	recip.Dense.Copy(inv.T())
	var images [3]int
	for k := 0; k < 3; k++ {
		if !pbc[k] {
			continue
		}
		images[k] = int(math.Ceil(cutoff * recip.Norm(k)))
	}
	cut2 := cutoff * cutoff
	var edges []Edge
	var s [3]int
	var t [3]float64
	for s[0] = -images[0]; s[0] <= images[0]; s[0]++ {
		for s[1] = -images[1]; s[1] <= images[1]; s[1]++ {
			for s[2] = -images[2]; s[2] <= images[2]; s[2]++ {
				for j := 0; j < 3; j++ {
					t[j] = float64(s[0])*lattice.At(0, j) + float64(s[1])*lattice.At(1, j) + float64(s[2])*lattice.At(2, j)
				}
				zero := s == [3]int{}
				for i := 0; i < n; i++ {
					ri := cart.RawRowView(i)
					for j := 0; j < n; j++ {
						if i == j && zero && !selfInteraction {
							continue
						}
						rj := cart.RawRowView(j)
						dx := rj[0] + t[0] - ri[0]
						dy := rj[1] + t[1] - ri[1]
						dz := rj[2] + t[2] - ri[2]
						if dx*dx+dy*dy+dz*dz >= cut2 {
							continue
						}
						e := Edge{I: i, J: j}
						for k := 0; k < 3; k++ {
							e.Shift[k] = s[k] - int(offset.At(j, k)) + int(offset.At(i, k))
						}
						edges = append(edges, e)
					}
				}
			}
		}
	}
	slices.SortFunc(edges, compareEdges)
	return edges, nil
}

func compareEdges(a, b Edge) int {
	if c := cmp.Compare(a.I, b.I); c != 0 {
		return c
	}
	if c := cmp.Compare(a.J, b.J); c != 0 {
		return c
	}
	for k := 0; k < 3; k++ {
		if c := cmp.Compare(a.Shift[k], b.Shift[k]); c != 0 {
			return c
		}
	}
	return 0
}

// RemoveSelfLoops returns the edges that are not self-loops (see Edge.SelfLoop),
// in the same order. Edges between an atom and its own periodic images are kept.
// The given slice is not modified.
func RemoveSelfLoops(edges []Edge) []Edge {
	ret := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if !e.SelfLoop() {
			ret = append(ret, e)
		}
	}
	return ret
}
