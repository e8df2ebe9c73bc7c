/*
 * atomicdata.go, part of ffdata.
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

import "strings"

//Element symbols ordered by atomic number. symbols[0] is a placeholder,
//so symbols[Z] is the element with atomic number Z.
var symbols = [...]string{"",
	"H", "He",
	"Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn", "Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn", "Sb", "Te", "I", "Xe",
	"Cs", "Ba", "La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb", "Lu",
	"Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg", "Tl", "Pb", "Bi", "Po", "At", "Rn",
	"Fr", "Ra", "Ac", "Th", "Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm", "Md", "No", "Lr",
	"Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds", "Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

//A map between element symbols and atomic numbers, built from symbols.
var symbolZ = func() map[string]int {
	m := make(map[string]int, len(symbols))
	for z, s := range symbols {
		if s != "" {
			m[s] = z
		}
	}
	return m
}()

// AtomicNumber returns the atomic number for the element symbol s, and
// false if s is not an element symbol. Oxidation-state decorations
// such as "Fe2+" or "O2-" are ignored.
func AtomicNumber(s string) (int, bool) {
	z, ok := symbolZ[s]
	if ok {
		return z, true
	}
	s = strings.TrimRight(s, "0123456789+-")
	z, ok = symbolZ[s]
	return z, ok
}

// Symbol returns the element symbol for atomic number z, or the empty string
// if z is out of range.
func Symbol(z int) string {
	if z <= 0 || z >= len(symbols) {
		return ""
	}
	return symbols[z]
}

// DefaultAllowedSpecies returns the atomic numbers supported by the
// NequIP universal potentials we train. Be, Hf, the noble gases other
// than Xe, Po through Pa, and everything beyond Pu are absent.
func DefaultAllowedSpecies() []int {
	return []int{1, 3, 5, 6, 7, 8, 9, 11, 12, 13, 14, 15, 16, 17, 19, 20, 21, 22,
		23, 24, 25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 37, 38, 39, 40,
		41, 42, 43, 44, 45, 46, 47, 48, 49, 50, 51, 52, 53, 54, 55, 56, 57,
		58, 59, 60, 61, 62, 63, 64, 65, 66, 67, 68, 69, 70, 71, 73, 74, 75,
		76, 77, 78, 79, 80, 81, 82, 83, 92, 93, 94}
}
