/*
 * qcd.go, part of gopqr.
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
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadQCDLine parses one card of a QCD (UHBD QCARD format) file. QCARD
// cards carry no serial number of their own, so the caller supplies one,
// normally from a running counter advanced only on successfully parsed
// cards. Cards have no radius and no chain column; the radius is left at
// zero for a later assignment step. Non-card lines yield a nil atom and a
// nil error.
func ReadQCDLine(line string, serial int) (*Atom, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	if fields[0] != "ATOM" && fields[0] != "HETATM" {
		return nil, nil
	}
	if len(fields) != 8 {
		return nil, &CError{WrongFormat, line, []string{"ReadQCDLine"}, false}
	}
	at := new(Atom)
	at.Het = fields[0] == "HETATM"
	at.Serial = serial
	at.Name = fields[1]
	res := new(Residue)
	res.Name = fields[2]
	errs := make([]error, 5) //accumulate errors, check at the end of the line.
	res.SeqNum, errs[0] = strconv.Atoi(fields[3])
	at.X, errs[1] = strconv.ParseFloat(fields[4], 64)
	at.Y, errs[2] = strconv.ParseFloat(fields[5], 64)
	at.Z, errs[3] = strconv.ParseFloat(fields[6], 64)
	at.Charge, errs[4] = strconv.ParseFloat(fields[7], 64)
	for _, e := range errs {
		if e != nil {
			return nil, &CError{NonNumericField, line, []string{"ReadQCDLine"}, false}
		}
	}
	res.Charge = at.Charge
	at.Residue = res
	return at, nil
}

// ReadQCD reads all atom cards from a QCD stream, numbering them
// sequentially from 1. The first malformed card aborts the read.
func ReadQCD(r io.Reader) ([]*Atom, error) {
	atoms := make([]*Atom, 0)
	serial := 1
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		at, err := ReadQCDLine(scanner.Text(), serial)
		if err != nil {
			return atoms, errDecorate(err, "ReadQCD")
		}
		if at != nil {
			atoms = append(atoms, at)
			serial++
		}
	}
	if err := scanner.Err(); err != nil {
		return atoms, err
	}
	return atoms, nil
}

// ReadQCDFile reads all atom cards from the QCD file qcdname.
func ReadQCDFile(qcdname string) ([]*Atom, error) {
	qcdfile, err := os.Open(qcdname)
	if err != nil {
		return nil, err
	}
	defer qcdfile.Close()
	return ReadQCD(qcdfile)
}
