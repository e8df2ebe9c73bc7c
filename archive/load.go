/*
 * load.go, part of ffdata.
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

//Package archive reads and writes structure archives. The format of a file
//is given by its extension: .json, optionally compressed (.json.zst, .json.gz,
//.json.flate, .json.lzw), or an SQLite database (.db, .sqlite, .sqlite3).
package archive

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/rmera/ffdata"
	"golang.org/x/sync/errgroup"
)

// Load reads the archive in the file name. The format is chosen from
// the file extension (see FormatOf). Any failure is returned as a *ReadError.
func Load(name string) (*ffdata.Archive, error) {
	format, comp := FormatOf(name)
	if format == SQLite {
		A, err := readSQLite(name)
		if err != nil {
			return nil, newReadError(name, Corrupted, err, "Load")
		}
		return A, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, newReadError(name, UnableToOpen, err, "Load")
	}
	defer f.Close()
	r, err := newDecompressor(comp, bufio.NewReader(f))
	if err != nil {
		return nil, newReadError(name, Corrupted, err, "Load")
	}
	defer r.Close()
	A, err := ffdata.DecodeJSON(r)
	if errors.Is(err, ffdata.ErrNotMapping) {
		return nil, newReadError(name, NotMapping, err, "Load")
	}
	if err != nil {
		return nil, newReadError(name, Corrupted, err, "Load")
	}
	return A, nil
}

// LoadEach reads all the archives in names, concurrently, and returns them
// in the same order. If any of them fails, no archive is returned, only the error.
func LoadEach(ctx context.Context, names []string) ([]*ffdata.Archive, error) {
	if len(names) == 0 {
		return nil, newReadError("", NoArchives, nil, "LoadEach")
	}
	loaded := make([]*ffdata.Archive, len(names))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return newReadError(name, UnableToOpen, err, "LoadEach")
			}
			A, err := Load(name)
			if err != nil {
				return err
			}
			loaded[i] = A
			slog.Debug("archive loaded", "archive", name, "materials", A.Len())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, ffdata.ErrDecorate(err, "LoadEach")
	}
	return loaded, nil
}

// LoadAll reads all the archives in names and merges them, in the
// given order, so records from later archives replace those with the same
// material ID in earlier ones. The archives are read concurrently. If any
// of them fails, no archive is returned, only the error.
func LoadAll(ctx context.Context, names []string) (*ffdata.Archive, error) {
	loaded, err := LoadEach(ctx, names)
	if err != nil {
		return nil, ffdata.ErrDecorate(err, "LoadAll")
	}
	merged := ffdata.NewArchive()
	for i, A := range loaded {
		merged.Update(A)
		slog.Info("archive loaded and merged", "archive", names[i], "materials", A.Len(), "total", merged.Len())
	}
	return merged, nil
}

// Save writes A to the file name, in the format given by its extension
// (see FormatOf). JSON archives are written to a temporary file that is
// renamed once complete.
func Save(name string, A *ffdata.Archive) (retErr error) {
	format, comp := FormatOf(name)
	if format == SQLite {
		return writeSQLite(name, A)
	}
	tmp := name + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = os.Remove(tmp)
		}
	}()
	b := bufio.NewWriter(f)
	w, err := newCompressor(comp, b)
	if err != nil {
		f.Close()
		return err
	}
	if err := A.EncodeJSON(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Close(); err != nil {
		f.Close()
		return err
	}
	if err := b.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, name)
}
