/*
 * options.go, part of ffdata.
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
	"errors"
	"fmt"

	"github.com/rmera/ffdata"
)

// DefaultStressScale takes stresses from kBar, with the sign convention of
// the archives, to the GPa and sign convention of the training pipelines.
// A scale of 1 writes the stresses as they are stored.
const DefaultStressScale = -0.1

// DefaultCutoff is the neighbor radius, in Angstrom, of the potentials the
// data is meant for.
const DefaultCutoff = 5.0

// Options controls the validation, filtering and routing done by a Converter.
type Options struct {
	//Factor applied to every stress component.
	StressScale float64

	//If true, only atoms whose atomic number is in AllowedSpecies are written.
	SpeciesFilter  bool
	AllowedSpecies []int

	//If true, structures with no neighbor edges within Cutoff are written to
	//the no-edges stream.
	EdgeFilter bool
	Cutoff     float64
	//Compute the same-cell self-interaction edges (i, i, 0).
	StrictSelfInteraction bool
	//Keep the same-cell self-interaction edges when counting. With both
	//this and StrictSelfInteraction set, no structure ever lacks edges.
	SelfInteraction bool

	//Log progress every this many materials. 0 disables it.
	ProgressEvery int
}

// DefaultOptions returns the options used to build the training sets: stresses
// scaled by DefaultStressScale, no filters, and, if the filters are enabled,
// the default allow-list and cutoff, with strict self-interaction.
func DefaultOptions() Options {
	return Options{
		StressScale:           DefaultStressScale,
		AllowedSpecies:        ffdata.DefaultAllowedSpecies(),
		Cutoff:                DefaultCutoff,
		StrictSelfInteraction: true,
		ProgressEvery:         1000,
	}
}

// Validate returns an error if the options can't be used.
func (O Options) Validate() error {
	var errs []error
	if O.SpeciesFilter && len(O.AllowedSpecies) == 0 {
		errs = append(errs, errors.New("species filter enabled with an empty allow-list"))
	}
	for _, z := range O.AllowedSpecies {
		if ffdata.Symbol(z) == "" {
			errs = append(errs, fmt.Errorf("%d is not an atomic number", z))
		}
	}
	if O.EdgeFilter && !(O.Cutoff > 0) {
		errs = append(errs, fmt.Errorf("edge filter needs a positive cutoff, not %v", O.Cutoff))
	}
	if O.ProgressEvery < 0 {
		errs = append(errs, fmt.Errorf("negative progress interval %d", O.ProgressEvery))
	}
	return errors.Join(errs...)
}
