/*
 * sqlite.go, part of ffdata.
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
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rmera/ffdata"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

const sqliteSchema = `CREATE TABLE materials (
	seq INTEGER PRIMARY KEY,
	id TEXT NOT NULL UNIQUE,
	payload BLOB NOT NULL
)`

// readSQLite reads an archive stored as one JSON-encoded record per row.
// Rows are read in insertion order.
func readSQLite(name string) (*ffdata.Archive, error) {
	//sql.Open would happily create a new, empty, database.
	if _, err := os.Stat(name); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", name)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer func() { _ = db.Close() }()
	rows, err := db.Query(`SELECT id, payload FROM materials ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("select materials: %w", err)
	}
	defer func() { _ = rows.Close() }()
	A := ffdata.NewArchive()
	for rows.Next() {
		var id string
		var payload []byte
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		R := new(ffdata.Record)
		if err := json.Unmarshal(payload, R); err != nil {
			return nil, fmt.Errorf("decode material %s: %w", id, err)
		}
		A.Set(id, R)
	}
	return A, rows.Err()
}

// writeSQLite writes A to a new SQLite database. An existing file
// with the same name is replaced.
func writeSQLite(name string, A *ffdata.Archive) (retErr error) {
	if err := os.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	db, err := sql.Open("sqlite", name)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()
	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("create materials table: %w", err)
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	stmt, err := tx.Prepare(`INSERT INTO materials (seq, id, payload) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()
	for i, id := range A.IDs() {
		R, _ := A.Record(id)
		payload, err := json.Marshal(R)
		if err != nil {
			return fmt.Errorf("encode material %s: %w", id, err)
		}
		if _, err := stmt.Exec(i, id, payload); err != nil {
			return fmt.Errorf("insert material %s: %w", id, err)
		}
	}
	return tx.Commit()
}
