/*
 * interfaces.go, part of ffdata.
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

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else. Each call returns the "decoration" slice resulting from the
// current call. If passed an empty string, it just returns the current value.
// The decoration slice contains the functions in the calling stack, plus, optionally, relevant information
// in the form "FunctionName: Extra info"
type Error interface {
	Error() string
	Decorate(string) []string
}

// CriticalError is the interface for errors associated to a file, that may or may not
// stop the processing of the data.
type CriticalError interface {
	Error
	Critical() bool
	FileName() string
}

// ErrDecorate decorates err with the caller's name if err implements Error,
// and returns it. Other errors are returned unchanged.
func ErrDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
	}
	return err
}
