/*
 * codec.go, part of ffdata.
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
	"compress/lzw"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const lzwLitwidth int = 8

// Format is the container format of an archive file.
type Format int

const (
	JSON Format = iota
	SQLite
)

// Compression is the compression applied to a JSON archive.
type Compression int

const (
	None Compression = iota
	Zstd
	Gzip
	Flate
	LZW
)

// FormatOf guesses the format and compression of an archive from the
// name of the file. Unknown extensions are taken as uncompressed JSON.
func FormatOf(name string) (Format, Compression) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".db", ".sqlite", ".sqlite3":
		return SQLite, None
	case ".zst", ".zstd":
		return JSON, Zstd
	case ".gz":
		return JSON, Gzip
	case ".flate":
		return JSON, Flate
	case ".lzw":
		return JSON, LZW
	default:
		return JSON, None
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func newDecompressor(c Compression, r io.Reader) (io.ReadCloser, error) {
	switch c {
	case Zstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	case Gzip:
		return gzip.NewReader(r)
	case Flate:
		return flate.NewReader(r), nil
	case LZW:
		return lzw.NewReader(r, lzw.MSB, lzwLitwidth), nil
	default:
		return io.NopCloser(r), nil
	}
}

func newCompressor(c Compression, w io.Writer) (io.WriteCloser, error) {
	switch c {
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	case Gzip:
		return gzip.NewWriterLevel(w, gzip.BestCompression)
	case Flate:
		return flate.NewWriter(w, flate.BestCompression)
	case LZW:
		return lzw.NewWriter(w, lzw.MSB, lzwLitwidth), nil
	default:
		return nopCloser{w}, nil
	}
}
