/*
 * reader.go, part of ffdata.
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

package extxyz

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Reader reads frames written by Writer. It is not a general
// extended-XYZ parser: the Properties schema must be exactly the one
// Writer produces.
type Reader struct {
	r    *bufio.Reader
	line int
}

// NewReader returns a Reader that reads from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

func (R *Reader) readLine() (string, error) {
	s, err := R.r.ReadString('\n')
	if err == io.EOF && s != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	R.line++
	return strings.TrimRight(s, "\r\n"), nil
}

func (R *Reader) errorf(format string, a ...interface{}) error {
	return fmt.Errorf("extxyz line %d: %s", R.line, fmt.Sprintf(format, a...))
}

// Next reads the next frame. It returns io.EOF, and a nil frame, when
// there are no more frames.
func (R *Reader) Next() (*Frame, error) {
	var s string
	var err error
	for s == "" {
		s, err = R.readLine()
		if err != nil {
			return nil, err
		}
		s = strings.TrimSpace(s)
	}
	natoms, err := strconv.Atoi(s)
	if err != nil || natoms < 0 {
		return nil, R.errorf("Can't read atom number from '%s'", s)
	}
	s, err = R.readLine()
	if err != nil {
		return nil, R.errorf("Can't read header: %v", err)
	}
	F := new(Frame)
	if err := R.parseHeader(s, F); err != nil {
		return nil, err
	}
	for i := 0; i < natoms; i++ {
		s, err = R.readLine()
		if err != nil {
			return nil, R.errorf("Frame ended after %d of %d atoms", i, natoms)
		}
		fields := strings.Fields(s)
		if len(fields) != 7 {
			return nil, R.errorf("Atom line with %d fields instead of 7", len(fields))
		}
		var c, f [3]float64
		for j := 0; j < 3; j++ {
			if c[j], err = strconv.ParseFloat(fields[j+1], 64); err != nil {
				return nil, R.errorf("%v", err)
			}
			if f[j], err = strconv.ParseFloat(fields[j+4], 64); err != nil {
				return nil, R.errorf("%v", err)
			}
		}
		F.Species = append(F.Species, fields[0])
		F.Coords = append(F.Coords, c)
		F.Forces = append(F.Forces, f)
	}
	return F, nil
}

func (R *Reader) parseHeader(s string, F *Frame) error {
	kv, err := headerFields(s)
	if err != nil {
		return R.errorf("%v", err)
	}
	if kv["Properties"] != Properties {
		return R.errorf("Unsupported Properties '%s'", kv["Properties"])
	}
	l, err := parseFloats(kv["Lattice"], 9)
	if err != nil {
		return R.errorf("Lattice: %v", err)
	}
	st, err := parseFloats(kv["stress"], 9)
	if err != nil {
		return R.errorf("stress: %v", err)
	}
	for i := 0; i < 3; i++ {
		copy(F.Lattice[i][:], l[3*i:3*i+3])
		copy(F.Stress[i][:], st[3*i:3*i+3])
	}
	F.Energy, err = strconv.ParseFloat(kv["energy"], 64)
	if err != nil {
		return R.errorf("energy: %v", err)
	}
	return nil
}

// headerFields splits an extended-XYZ comment line into key=value pairs.
// Values may be double-quoted, in which case they can contain spaces.
func headerFields(s string) (map[string]string, error) {
	ret := make(map[string]string)
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return ret, nil
		}
		eq := strings.IndexByte(s, '=')
		if eq <= 0 {
			return nil, fmt.Errorf("malformed header field '%s'", s)
		}
		key := s[:eq]
		s = s[eq+1:]
		var val string
		if strings.HasPrefix(s, "\"") {
			end := strings.IndexByte(s[1:], '"')
			if end < 0 {
				return nil, fmt.Errorf("unterminated quote in value of %s", key)
			}
			val = s[1 : end+1]
			s = s[end+2:]
		} else {
			end := strings.IndexAny(s, " \t")
			if end < 0 {
				end = len(s)
			}
			val = s[:end]
			s = s[end:]
		}
		ret[key] = val
	}
}

func parseFloats(s string, n int) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) != n {
		return nil, fmt.Errorf("%d values instead of %d", len(fields), n)
	}
	ret := make([]float64, n)
	var err error
	for i, v := range fields {
		if ret[i], err = strconv.ParseFloat(v, 64); err != nil {
			return nil, err
		}
	}
	return ret, nil
}
