/*
 * writer.go, part of ffdata.
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

// Package extxyz writes and reads structures in the extended-XYZ format
// expected by NequIP-style training codes: lattice, stress, energy and
// periodic flags in the comment line, then species, positions and forces.
package extxyz

import (
	"bufio"
	"fmt"
	"io"
)

// Properties is the column schema of every frame: the element symbol, the
// cartesian position and the force on each atom.
const Properties = "species:S:1:pos:R:3:forces:R:3"

// Frame is one structure ready to be written: its lattice (vectors as rows),
// the species, positions and forces of its atoms (index-aligned), the stress
// tensor, already in the output units, and the energy.
type Frame struct {
	Lattice [3][3]float64
	Species []string
	Coords  [][3]float64
	Forces  [][3]float64
	Stress  [3][3]float64
	Energy  float64
}

// Len returns the number of atoms in the frame.
func (F *Frame) Len() int {
	return len(F.Species)
}

func (F *Frame) check() error {
	if len(F.Coords) != len(F.Species) || len(F.Forces) != len(F.Species) {
		return fmt.Errorf("frame with %d species, %d positions and %d forces", len(F.Species), len(F.Coords), len(F.Forces))
	}
	return nil
}

func flat(m [3][3]float64) []float64 {
	ret := make([]float64, 0, 9)
	for _, v := range m {
		ret = append(ret, v[:]...)
	}
	return ret
}

// Writer writes frames in the extended-XYZ format.
type Writer struct {
	w      *bufio.Writer
	frames int
}

// NewWriter returns a Writer that writes to w. Output is buffered: call Flush
// when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write writes one frame: the atom count, the header line with lattice,
// property schema, stress, energy and periodic flags, and one line per atom.
func (W *Writer) Write(F *Frame) error {
	if err := F.check(); err != nil {
		return err
	}
	fmt.Fprintf(W.w, "%d\n", F.Len())
	fmt.Fprintf(W.w, "Lattice=\"%s\" Properties=%s stress=\"%s\" energy=%s pbc=\"T T T\"\n",
		joinFloats(flat(F.Lattice)), Properties, joinFloats(flat(F.Stress)), headerFloat(F.Energy))
	for i, s := range F.Species {
		p := F.Coords[i]
		f := F.Forces[i]
		_, err := fmt.Fprintf(W.w, "%-3s\t%15.8f\t%15.8f\t%15.8f\t%15.8f\t%15.8f\t%15.8f\n", s, p[0], p[1], p[2], f[0], f[1], f[2])
		if err != nil {
			return err
		}
	}
	W.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (W *Writer) Frames() int {
	return W.frames
}

// Flush writes any buffered data to the underlying io.Writer.
func (W *Writer) Flush() error {
	return W.w.Flush()
}
