/*
 * archive.go, part of ffdata.
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
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotMapping is returned when decoding data whose top-level value is not
// a JSON object.
var ErrNotMapping = errors.New("archive is not a mapping of material IDs to records")

// Archive maps material identifiers to records. It remembers the order
// in which identifiers were first inserted, and iterating over it (IDs)
// follows that order. Replacing the record of an existing identifier
// does not move it.
type Archive struct {
	ids  []string
	recs map[string]*Record
}

// NewArchive returns an empty archive.
func NewArchive() *Archive {
	return &Archive{recs: make(map[string]*Record)}
}

// Len returns the number of materials in the archive.
func (A *Archive) Len() int {
	return len(A.ids)
}

// IDs returns the material identifiers in insertion order. The slice is a copy.
func (A *Archive) IDs() []string {
	return append([]string(nil), A.ids...)
}

// Record returns the record for the material id, and whether it was present.
func (A *Archive) Record(id string) (*Record, bool) {
	r, ok := A.recs[id]
	return r, ok
}

// Set puts R as the record for the material id.
func (A *Archive) Set(id string, R *Record) {
	if A.recs == nil {
		A.recs = make(map[string]*Record)
	}
	if _, ok := A.recs[id]; !ok {
		A.ids = append(A.ids, id)
	}
	A.recs[id] = R
}

// Update copies all the records of B into the receiver. Records in B
// replace the receiver's records with the same material id.
func (A *Archive) Update(B *Archive) {
	for _, id := range B.ids {
		A.Set(id, B.recs[id])
	}
}

// Merge returns a new archive with the contents of all the given archives,
// applied in the given order, so for a material id present in more than one
// archive, the record from the last of them is kept.
func Merge(archives ...*Archive) *Archive {
	ret := NewArchive()
	for _, v := range archives {
		if v != nil {
			ret.Update(v)
		}
	}
	return ret
}

// Subset returns a new archive with the materials listed in ids, in that order.
// Identifiers not present in the receiver are ignored. The records are
// shared, not copied.
func (A *Archive) Subset(ids []string) *Archive {
	ret := NewArchive()
	for _, id := range ids {
		if r, ok := A.recs[id]; ok {
			ret.Set(id, r)
		}
	}
	return ret
}

// Prefix returns a new archive with the first k materials of the receiver
// (all of them if k is larger than the archive).
func (A *Archive) Prefix(k int) *Archive {
	if k > len(A.ids) {
		k = len(A.ids)
	}
	if k < 0 {
		k = 0
	}
	return A.Subset(A.ids[:k])
}

// NStructures returns the total number of structures in the archive.
func (A *Archive) NStructures() int {
	n := 0
	for _, r := range A.recs {
		n += r.Len()
	}
	return n
}

// DecodeJSON reads an archive from a JSON object, keeping the order of the keys.
// A key repeated in the object replaces the earlier record but keeps its
// position.
func DecodeJSON(r io.Reader) (*Archive, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, ErrNotMapping
	}
	A := NewArchive()
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		id, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v instead of a material ID", tok)
		}
		R := new(Record)
		if err := dec.Decode(R); err != nil {
			return nil, fmt.Errorf("material %s: %w", id, err)
		}
		A.Set(id, R)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after the archive object")
	}
	return A, nil
}

// EncodeJSON writes the archive to w as a JSON object, keys in insertion order.
func (A *Archive) EncodeJSON(w io.Writer) error {
	b := bufio.NewWriter(w)
	b.WriteByte('{')
	for i, id := range A.ids {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(id)
		if err != nil {
			return err
		}
		v, err := json.Marshal(A.recs[id])
		if err != nil {
			return fmt.Errorf("material %s: %w", id, err)
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteString("}\n")
	return b.Flush()
}

func (A *Archive) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := A.EncodeJSON(&buf); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (A *Archive) UnmarshalJSON(b []byte) error {
	B, err := DecodeJSON(bytes.NewReader(b))
	if err != nil {
		return err
	}
	*A = *B
	return nil
}
