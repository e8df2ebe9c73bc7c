/*
 * structure.go, part of ffdata.
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
	"encoding/json"

	v3 "github.com/rmera/ffdata/v3"
	"gonum.org/v1/gonum/mat"
)

// Structure is one atomic configuration: an ordered set of atoms, each with
// an element symbol and cartesian coordinates (Angstrom), plus the lattice
// vectors (one per row) and the periodic boundary flags.
// Species and Coords are expected to be index-aligned, but this is not
// enforced: archives produced elsewhere may be broken, and the converter
// needs to see that.
type Structure struct {
	Lattice [3][3]float64 `json:"lattice"`
	Species []string      `json:"species"`
	Coords  [][3]float64  `json:"coords"`
	PBC     [3]bool       `json:"pbc"`
}

// UnmarshalJSON decodes a structure. Missing periodic boundary flags
// default to true in the three directions.
func (S *Structure) UnmarshalJSON(b []byte) error {
	type plain Structure
	var tmp struct {
		plain
		PBC *[3]bool `json:"pbc"`
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*S = Structure(tmp.plain)
	S.PBC = [3]bool{true, true, true}
	if tmp.PBC != nil {
		S.PBC = *tmp.PBC
	}
	return nil
}

// Len returns the number of atoms, as given by the species list.
func (S *Structure) Len() int {
	return len(S.Species)
}

// CoordMatrix returns a copy of the coordinates as a v3.Matrix, or
// nil if the structure has no coordinates.
func (S *Structure) CoordMatrix() *v3.Matrix {
	if len(S.Coords) == 0 {
		return nil
	}
	d := make([]float64, 0, 3*len(S.Coords))
	for _, c := range S.Coords {
		d = append(d, c[:]...)
	}
	ret, err := v3.NewMatrix(d)
	if err != nil {
		panic(err)
	}
	return ret
}

// LatticeDense returns a copy of the lattice vectors as a 3x3 gonum
// matrix, one vector per row.
func (S *Structure) LatticeDense() *mat.Dense {
	l := make([]float64, 0, 9)
	for _, v := range S.Lattice {
		l = append(l, v[:]...)
	}
	return mat.NewDense(3, 3, l)
}

// Record contains all the snapshots available for one material.
// The four slices are parallel: the ith energy, force set and stress
// tensor belong to the ith structure. Forces are in eV/Angstrom, one
// vector per atom, stresses in kBar, energies in eV.
type Record struct {
	Structures []*Structure    `json:"structure"`
	Energies   []float64       `json:"energy"`
	Forces     [][][3]float64  `json:"force"`
	Stresses   [][3][3]float64 `json:"stress"`
}

// Len returns the number of structures in the record.
func (R *Record) Len() int {
	if R == nil {
		return 0
	}
	return len(R.Structures)
}

// Complete returns true if the ith structure has a corresponding energy,
// force set and stress tensor.
func (R *Record) Complete(i int) bool {
	return i >= 0 && i < len(R.Structures) && R.Structures[i] != nil &&
		i < len(R.Energies) && i < len(R.Forces) && i < len(R.Stresses)
}
