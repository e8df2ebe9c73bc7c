/*
 * report.go, part of ffdata.
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

package convert

import (
	"fmt"
	"log/slog"
)

// Reason tells why a structure was not written to the primary stream.
type Reason string

const (
	//positions, forces and species differ in length.
	LengthMismatch Reason = "length_mismatch"
	//no atom survived the species filter.
	NoValidAtoms Reason = "no_valid_atoms"
	//no edge survived self-loop removal. The structure is still written,
	//to the no-edges stream.
	NoEdges Reason = "no_edges"
	//the record lacks the energy, forces or stress for the structure,
	//or the structure itself.
	MissingData Reason = "missing_data"
	//the lattice vectors are linearly dependent, so neighbors can't be found.
	InvalidLattice Reason = "invalid_lattice"
)

// Skips returns true if structures with this reason are not written at all.
func (R Reason) Skips() bool {
	return R != NoEdges
}

// Diagnostic identifies a structure that was skipped or rerouted, and why.
type Diagnostic struct {
	MaterialID     string
	StructureIndex int
	Reason         Reason
}

func (D Diagnostic) String() string {
	return fmt.Sprintf("material ID %s, structure index %d: %s", D.MaterialID, D.StructureIndex, D.Reason)
}

// Report accumulates the counters of a conversion run.
type Report struct {
	Materials  int
	Structures int
	//Frames written to the primary stream.
	Written int
	//Frames written to the no-edges stream.
	NoEdges int
	Atoms   int

	LengthMismatch int
	NoValidAtoms   int
	MissingData    int
	InvalidLattice int

	//Structures not written anywhere, i.e. the sum of the four counters above.
	ExcludedStructures int
	//Materials with no structure written anywhere. A material without
	//structures counts as excluded.
	ExcludedMaterials int

	Diagnostics []Diagnostic
}

func (R *Report) add(D Diagnostic) {
	R.Diagnostics = append(R.Diagnostics, D)
	switch D.Reason {
	case LengthMismatch:
		R.LengthMismatch++
	case NoValidAtoms:
		R.NoValidAtoms++
	case MissingData:
		R.MissingData++
	case InvalidLattice:
		R.InvalidLattice++
	}
	if D.Reason.Skips() {
		R.ExcludedStructures++
	}
}

// LogValue summarizes the counters, without the individual diagnostics.
func (R *Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("materials", R.Materials),
		slog.Int("structures", R.Structures),
		slog.Int("written", R.Written),
		slog.Int("no_edges", R.NoEdges),
		slog.Int("atoms", R.Atoms),
		slog.Int("excluded_materials", R.ExcludedMaterials),
		slog.Int("excluded_structures", R.ExcludedStructures),
		slog.Int("length_mismatch", R.LengthMismatch),
		slog.Int("no_valid_atoms", R.NoValidAtoms),
		slog.Int("missing_data", R.MissingData),
		slog.Int("invalid_lattice", R.InvalidLattice),
	)
}
