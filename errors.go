/*
 * errors.go, part of gopqr.
 *
 * Copyright 2025 rmeraaatacademicosdotutadotcl
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
 * gopqr is developed at Universidad de Tarapaca (UTA)
 *
 */

package pqr

import "fmt"

// Error is the interface for errors that all packages in this library
// implement. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
// The decoration slice should contain a list of the functions in the
// calling stack, plus, for each function, any relevant information, or
// nothing. If passed an empty string, Decorate should just return the
// current value, not add the empty string to the slice.
type Error interface {
	Error() string
	Decorate(string) []string
}

// LineError is the interface for errors tied to one line of an input
// file. Critical distinguishes errors that invalidate the whole read from
// line-level errors the caller may choose to skip.
type LineError interface {
	Error
	Line() string
	Critical() bool
}

// CError is the concrete error type for the pqr package. It fulfills
// Error and, when tied to an input line, LineError.
type CError struct {
	message  string
	line     string //the offending input line, or empty if none
	deco     []string
	critical bool
}

func (err *CError) Error() string {
	if err.line == "" {
		return fmt.Sprintf("gopqr error: %s", err.message)
	}
	return fmt.Sprintf("gopqr error: %s, in line: %q", err.message, err.line)
}

// Decorate adds new information to the error. The receiver is a pointer
// so the added decoration survives the call: append may reallocate the
// backing array, which a value receiver would silently discard.
func (err *CError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Line returns the input line associated to the error, or an empty string.
func (err *CError) Line() string { return err.line }

// Critical returns true if the error invalidates the whole read.
func (err *CError) Critical() bool { return err.critical }

// Messages for the errors returned by this package.
const (
	WrongFormat     = "Wrong format in atom line"
	NonNumericField = "Non-numeric field in atom line"
	NilResidue      = "Atom has no residue assigned"
)

// errDecorate is a helper function that asserts that the error implements
// Error and decorates it with the caller's name before returning it.
// If used with a non-gopqr error, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}
