/*
 * stats.go, part of ffdata.
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

// Package stats counts the contents of archives and extended-XYZ files,
// and summarizes the sizes of their structures.
package stats

import (
	"errors"
	"io"
	"log/slog"

	"github.com/rmera/ffdata"
	"github.com/rmera/ffdata/extxyz"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Count holds the totals of an archive or a frame file.
type Count struct {
	Materials  int `json:"materials,omitempty"`
	Structures int `json:"structures"`
	Atoms      int `json:"atoms"`
}

func (C Count) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("materials", C.Materials),
		slog.Int("structures", C.Structures),
		slog.Int("atoms", C.Atoms),
	)
}

// CountArchive returns the number of materials, structures, and atoms (as
// given by the species of each structure) in A.
func CountArchive(A *ffdata.Archive) Count {
	var C Count
	for _, id := range A.IDs() {
		R, _ := A.Record(id)
		C.Materials++
		for _, S := range R.Structures {
			C.Structures++
			if S != nil {
				C.Atoms += S.Len()
			}
		}
	}
	return C
}

// CountFrames reads all the frames in r, which must be in the
// extended-XYZ format, and returns the number of frames and atoms.
func CountFrames(r io.Reader) (Count, error) {
	var C Count
	R := extxyz.NewReader(r)
	for {
		F, err := R.Next()
		if errors.Is(err, io.EOF) {
			return C, nil
		}
		if err != nil {
			return C, err
		}
		C.Structures++
		C.Atoms += F.Len()
	}
}

// AtomCounts returns the number of atoms in each structure of A, in
// archive order. Missing structures are omitted.
func AtomCounts(A *ffdata.Archive) []float64 {
	var ret []float64
	for _, id := range A.IDs() {
		R, _ := A.Record(id)
		for _, S := range R.Structures {
			if S != nil {
				ret = append(ret, float64(S.Len()))
			}
		}
	}
	return ret
}

// Summary describes a set of values.
type Summary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize returns the summary of data. With no data, all the fields are zero.
func Summarize(data []float64) Summary {
	if len(data) == 0 {
		return Summary{}
	}
	s := Summary{N: len(data), Min: floats.Min(data), Max: floats.Max(data)}
	if len(data) == 1 {
		s.Mean = data[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(data, nil)
	return s
}

// AtomHistogram returns a histogram of the atom counts of the structures in
// A, with bins of one atom from 1 to the largest structure.
func AtomHistogram(A *ffdata.Archive) *Histogram {
	counts := AtomCounts(A)
	top := 1.0
	if len(counts) > 0 && floats.Max(counts) > top {
		top = floats.Max(counts)
	}
	//bins are centered on the integers
	return NewHistogram(Dividers(0.5, top+0.5, int(top)), counts)
}
