/*
 * convert.go, part of ffdata.
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

// Package convert turns the records of an archive into extended-XYZ frames.
// Every structure is validated, optionally reduced to the atoms of allowed
// species, and optionally screened for neighbor edges, which decides whether
// its frame goes to the primary or the no-edges stream. Problems with single
// structures are never fatal: they are recorded as diagnostics and the
// structure is skipped.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rmera/ffdata"
	"github.com/rmera/ffdata/extxyz"
	"github.com/rmera/ffdata/logger"
	"github.com/rmera/ffdata/metrics"
	"github.com/rmera/ffdata/neighbor"
)

// Destination selects the output stream of a frame.
type Destination int

const (
	Primary Destination = iota
	NoEdgesStream
)

func (D Destination) String() string {
	if D == NoEdgesStream {
		return "no_edges"
	}
	return "primary"
}

// Converter writes the structures of archives as frames. It is not safe for
// concurrent use.
type Converter struct {
	opts    Options
	allowed map[int]bool
	out     [2]*extxyz.Writer
	diag    *slog.Logger
	log     *slog.Logger
	metrics *metrics.Set
}

// New returns a Converter writing frames to primary and, with the edge filter
// on, to noEdges, which is then required. Diagnostics are logged to diag,
// which can be nil.
func New(opts Options, primary, noEdges io.Writer, diag *slog.Logger) (*Converter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if primary == nil {
		return nil, errors.New("no primary output")
	}
	C := &Converter{opts: opts, diag: diag, log: logger.WithComponent("convert")}
	if C.diag == nil {
		C.diag = slog.New(slog.DiscardHandler)
	}
	C.out[Primary] = extxyz.NewWriter(primary)
	if opts.EdgeFilter {
		if noEdges == nil {
			return nil, errors.New("edge filter enabled without a no-edges output")
		}
		C.out[NoEdgesStream] = extxyz.NewWriter(noEdges)
	}
	if opts.SpeciesFilter {
		C.allowed = make(map[int]bool, len(opts.AllowedSpecies))
		for _, z := range opts.AllowedSpecies {
			C.allowed[z] = true
		}
	}
	return C, nil
}

// SetMetrics makes the converter update the counters in M.
func (C *Converter) SetMetrics(M *metrics.Set) {
	C.metrics = M
}

// Convert writes every structure of A, in archive order, and flushes the
// outputs. The only errors returned are those of writing, and ctx
// cancellation, which is checked between materials. The report is returned
// even in those cases, with the counts up to the failure.
func (C *Converter) Convert(ctx context.Context, A *ffdata.Archive) (*Report, error) {
	rep := new(Report)
	for i, id := range A.IDs() {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if C.opts.ProgressEvery > 0 && i > 0 && i%C.opts.ProgressEvery == 0 {
			C.log.Info("processed materials", "count", i)
		}
		R, _ := A.Record(id)
		rep.Materials++
		C.metrics.Material()
		written := false
		for j := 0; j < R.Len(); j++ {
			rep.Structures++
			ok, err := C.structure(rep, id, j, R)
			if err != nil {
				return rep, err
			}
			written = written || ok
		}
		if !written {
			rep.ExcludedMaterials++
		}
	}
	for d, w := range C.out {
		if w == nil {
			continue
		}
		if err := w.Flush(); err != nil {
			return rep, err
		}
		C.log.Debug("stream flushed", "stream", Destination(d), "frames", w.Frames())
	}
	return rep, nil
}

func (C *Converter) skip(rep *Report, id string, i int, reason Reason) {
	D := Diagnostic{MaterialID: id, StructureIndex: i, Reason: reason}
	rep.add(D)
	C.diag.Info("structure skipped", "material_id", id, "structure_index", i, "reason", string(reason))
	C.metrics.Diagnostic(string(reason))
	C.metrics.Structure(metrics.Excluded, 0)
}

// structure processes the ith structure of R and returns whether a frame
// was written, to either stream.
func (C *Converter) structure(rep *Report, id string, i int, R *ffdata.Record) (bool, error) {
	if !R.Complete(i) {
		C.skip(rep, id, i, MissingData)
		return false, nil
	}
	S := R.Structures[i]
	forces := R.Forces[i]
	if len(S.Coords) != len(forces) || len(S.Species) != len(S.Coords) {
		C.skip(rep, id, i, LengthMismatch)
		return false, nil
	}
	F := &extxyz.Frame{
		Lattice: S.Lattice,
		Energy:  R.Energies[i],
		Stress:  scale(R.Stresses[i], C.opts.StressScale),
	}
	for j, sp := range S.Species {
		if !C.keep(sp) {
			continue
		}
		F.Species = append(F.Species, sp)
		F.Coords = append(F.Coords, S.Coords[j])
		F.Forces = append(F.Forces, forces[j])
	}
	if C.opts.SpeciesFilter && F.Len() == 0 {
		C.skip(rep, id, i, NoValidAtoms)
		return false, nil
	}
	dest := Primary
	if C.opts.EdgeFilter {
		n, err := C.edges(F, S.PBC)
		if errors.Is(err, neighbor.ErrSingularLattice) {
			C.skip(rep, id, i, InvalidLattice)
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("material %s, structure %d: %w", id, i, err)
		}
		//with self-interactions kept, an edgeless structure is still a valid graph.
		if n == 0 && !C.opts.SelfInteraction {
			dest = NoEdgesStream
			rep.add(Diagnostic{MaterialID: id, StructureIndex: i, Reason: NoEdges})
			C.diag.Info("no edges remain after removing self-interactions", "material_id", id, "structure_index", i, "reason", string(NoEdges))
			C.metrics.Diagnostic(string(NoEdges))
		}
	}
	if err := C.out[dest].Write(F); err != nil {
		return false, fmt.Errorf("writing material %s, structure %d to the %s stream: %w", id, i, dest, err)
	}
	rep.Atoms += F.Len()
	if dest == NoEdgesStream {
		rep.NoEdges++
		C.metrics.Structure(metrics.NoEdges, F.Len())
	} else {
		rep.Written++
		C.metrics.Structure(metrics.Written, F.Len())
	}
	return true, nil
}

func (C *Converter) keep(symbol string) bool {
	if !C.opts.SpeciesFilter {
		return true
	}
	z, ok := ffdata.AtomicNumber(symbol)
	return ok && C.allowed[z]
}

// edges returns the number of neighbor edges among the atoms of F that
// survive self-loop removal.
func (C *Converter) edges(F *extxyz.Frame, pbc [3]bool) (int, error) {
	S := &ffdata.Structure{Lattice: F.Lattice, Coords: F.Coords}
	edges, err := neighbor.List(S.CoordMatrix(), S.LatticeDense(), pbc, C.opts.Cutoff, C.opts.StrictSelfInteraction)
	if err != nil {
		return 0, err
	}
	if !C.opts.SelfInteraction {
		edges = neighbor.RemoveSelfLoops(edges)
	}
	return len(edges), nil
}

func scale(m [3][3]float64, factor float64) [3][3]float64 {
	for i := range m {
		for j := range m[i] {
			m[i][j] *= factor
		}
	}
	return m
}
