/*
 * pqr.go, part of gopqr.
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

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Dialect selects the textual encoding for atom lines. The set is closed:
// these two plus the QCARD read-only dialect are all the formats handled
// by this package.
type Dialect int

const (
	//PQR encodes charge and radius columns.
	PQR Dialect = iota
	//PDB encodes occupancy and temperature-factor columns.
	PDB
)

// PQRString returns the atom as one PQR line, without trailing newline.
// chainflag controls whether the chain identifier column is emitted; some
// downstream consumers do not tolerate a chain column. Panics on an atom
// with no residue back reference, as such a record cannot be encoded.
func (A *Atom) PQRString(chainflag bool) string {
	record := "ATOM"
	if A.Het {
		record = "HETATM"
	}
	res := A.Residue
	if res == nil {
		panic(NilResidue)
	}
	if chainflag {
		return fmt.Sprintf("%-6s%5d %-4s %-4s %1s %4d    %8.3f %8.3f %8.3f %7.4f %7.4f",
			record, A.Serial, A.Name, res.Name, A.Chain, res.SeqNum, A.X, A.Y, A.Z, A.Charge, A.Radius)
	}
	return fmt.Sprintf("%-6s%5d %-4s %-4s %4d    %8.3f %8.3f %8.3f %7.4f %7.4f",
		record, A.Serial, A.Name, res.Name, res.SeqNum, A.X, A.Y, A.Z, A.Charge, A.Radius)
}

// PDBString returns the atom as one PDB ATOM/HETATM line, without trailing
// newline. 4-character atom names take the column otherwise used for the
// name-alignment space, as in the PDB spec. Panics on an atom with no
// residue back reference.
func (A *Atom) PDBString() string {
	record := "ATOM"
	if A.Het {
		record = "HETATM"
	}
	res := A.Residue
	if res == nil {
		panic(NilResidue)
	}
	if len(A.Name) >= 4 {
		return fmt.Sprintf("%-6s%5d %4s %3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f",
			record, A.Serial, A.Name, res.Name, A.Chain, res.SeqNum, A.X, A.Y, A.Z, A.Occupancy, A.Bfactor)
	}
	return fmt.Sprintf("%-6s%5d  %-3s %3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f",
		record, A.Serial, A.Name, res.Name, A.Chain, res.SeqNum, A.X, A.Y, A.Z, A.Occupancy, A.Bfactor)
}

// PrintAtoms returns the text lines for the given atoms, in order, in the
// given dialect, without trailing newlines. A "TER" line is inserted
// whenever the chain identifier changes between consecutive atoms, and the
// output always ends with a final "TER" line followed by the "END"
// sentinel.
//
// PrintAtoms takes exclusive write access to the passed atoms for its
// duration: each atom's Serial is rewritten, in place, to the atom's
// 1-based position in the output. It is not safe to call concurrently on
// the same slice.
func PrintAtoms(atoms []*Atom, dialect Dialect, chainflag bool) []string {
	lines := make([]string, 0, len(atoms)+2)
	chainprev := ""
	for i, at := range atoms {
		if i == 0 {
			chainprev = at.Chain
		} else if at.Chain != chainprev {
			chainprev = at.Chain
			lines = append(lines, "TER")
		}
		at.Serial = i + 1
		if dialect == PDB {
			lines = append(lines, at.PDBString())
		} else {
			lines = append(lines, at.PQRString(chainflag))
		}
	}
	lines = append(lines, "TER", "END")
	return lines
}

// WriteAtoms writes the atoms to w in the given dialect, one line each,
// with the same chain-terminator and serial-renumbering behavior as
// PrintAtoms. No newline is written after the final "END" sentinel.
func WriteAtoms(w io.Writer, atoms []*Atom, dialect Dialect, chainflag bool) error {
	_, err := io.WriteString(w, strings.Join(PrintAtoms(atoms, dialect, chainflag), "\n"))
	return err
}

// ReadAtomLine parses one line of a PQR file. Lines that are not atom
// records (headers, TER, END, blank lines) yield a nil atom and a nil
// error, so mixed-content files can be read by skipping them. An
// ATOM/HETATM line with a malformed field is a line-level error carrying
// the offending line; the caller decides whether to abort or to
// skip and continue.
//
// The chain column is optional and detected by field count, as written by
// PQRString and by other PQR writers.
func ReadAtomLine(line string) (*Atom, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	if fields[0] != "ATOM" && fields[0] != "HETATM" {
		return nil, nil
	}
	if len(fields) != 10 && len(fields) != 11 {
		return nil, &CError{WrongFormat, line, []string{"ReadAtomLine"}, false}
	}
	at := new(Atom)
	at.Het = fields[0] == "HETATM"
	at.Name = fields[2]
	res := new(Residue)
	res.Name = fields[3]
	next := 4
	if len(fields) == 11 {
		at.Chain = fields[4]
		next = 5
	}
	errs := make([]error, 7) //accumulate errors, check at the end of the line.
	at.Serial, errs[0] = strconv.Atoi(fields[1])
	res.SeqNum, errs[1] = strconv.Atoi(fields[next])
	at.X, errs[2] = strconv.ParseFloat(fields[next+1], 64)
	at.Y, errs[3] = strconv.ParseFloat(fields[next+2], 64)
	at.Z, errs[4] = strconv.ParseFloat(fields[next+3], 64)
	at.Charge, errs[5] = strconv.ParseFloat(fields[next+4], 64)
	at.Radius, errs[6] = strconv.ParseFloat(fields[next+5], 64)
	for _, e := range errs {
		if e != nil {
			return nil, &CError{NonNumericField, line, []string{"ReadAtomLine"}, false}
		}
	}
	res.Charge = at.Charge
	at.Residue = res
	return at, nil
}

// ReadPQR reads all atom records from a PQR stream, skipping non-atom
// lines. The first malformed atom line aborts the read.
func ReadPQR(r io.Reader) ([]*Atom, error) {
	atoms := make([]*Atom, 0)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		at, err := ReadAtomLine(scanner.Text())
		if err != nil {
			return atoms, errDecorate(err, "ReadPQR")
		}
		if at != nil {
			atoms = append(atoms, at)
		}
	}
	if err := scanner.Err(); err != nil {
		return atoms, err
	}
	return atoms, nil
}

// ReadPQRFile reads all atom records from the PQR file pqrname.
func ReadPQRFile(pqrname string) ([]*Atom, error) {
	pqrfile, err := os.Open(pqrname)
	if err != nil {
		return nil, err
	}
	defer pqrfile.Close()
	return ReadPQR(pqrfile)
}
