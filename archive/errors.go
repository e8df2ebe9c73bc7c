/*
 * errors.go, part of ffdata.
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

package archive

import (
	"fmt"

	"github.com/rmera/ffdata"
)

var _ ffdata.CriticalError = (*ReadError)(nil)

// ReadError is returned when an archive can't be opened or decoded. It is
// always critical: a run must not proceed with a partial set of archives.
// It implements ffdata.CriticalError and wraps the underlying error, if any.
type ReadError struct {
	message  string
	filename string
	deco     []string
	err      error
}

func newReadError(filename, message string, err error, caller string) *ReadError {
	return &ReadError{message: message, filename: filename, deco: []string{caller}, err: err}
}

func (E *ReadError) Error() string {
	if E.err != nil {
		return fmt.Sprintf("archive %s: %s: %s", E.filename, E.message, E.err.Error())
	}
	return fmt.Sprintf("archive %s: %s", E.filename, E.message)
}

// Decorate adds new information to the error, and returns the
// current decoration.
func (E *ReadError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// FileName returns the archive that could not be read.
func (E *ReadError) FileName() string { return E.filename }

// Critical returns true.
func (E *ReadError) Critical() bool { return true }

func (E *ReadError) Unwrap() error { return E.err }

const (
	UnableToOpen = "Unable to open file"
	Corrupted    = "Can't decode archive"
	NotMapping   = "Archive is not a mapping"
	NoArchives   = "No archives given"
)
