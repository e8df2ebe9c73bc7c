/*
 * doc.go, part of ffdata.
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

/*Package ffdata holds the data model for force-field training data: archives
that map material identifiers to records of structures, energies, forces and
stresses, as produced by high-throughput DFT relaxations.

	**ffdata Capabilities**

    Reads and writes structure archives as (optionally compressed) JSON or
	SQLite files (see the archive package).

    Merges several archives with last-write-wins semantics, keeping the
	insertion order of material identifiers.

    Converts archives into extended-XYZ frames for NequIP-style training,
	optionally dropping unsupported elements (see the convert and extxyz
	packages).

    Computes periodic neighbor lists so structures without any edge inside
	a cutoff radius can be routed away from the training set (see the
	neighbor package).

    Counts and samples archives (see the stats and sample packages).

Coordinates are handled as v3.Matrix objects, a thin layer over gonum's
mat.Dense where each row is a point in space.*/
package ffdata
