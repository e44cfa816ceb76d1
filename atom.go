/*
 * atom.go, part of gopqr.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Residue identifies one residue and its aggregate net charge (the sum of
// the charges of its member atoms). It is used for diagnostic reporting
// only, not for forcefield logic.
type Residue struct {
	Name   string
	SeqNum int
	Charge float64
}

func (R *Residue) String() string {
	return fmt.Sprintf("%s %d", R.Name, R.SeqNum)
}

// Atom is one atom record of a PQR, QCARD or PDB file. Occupancy and
// Bfactor are only meaningful for the PDB dialect; Radius only for the
// PQR dialect. Residue is a non-owning back reference to the residue the
// atom belongs to.
//
// Serial is rewritten by PrintAtoms to the atom's 1-based position in the
// output, so callers must not rely on serial continuity before a write
// pass.
type Atom struct {
	Serial    int
	Name      string
	Chain     string //may be empty
	Charge    float64
	Radius    float64
	X, Y, Z   float64
	Occupancy float64
	Bfactor   float64
	Het       bool //is this a HETATM record?
	Residue   *Residue
}

// Copy returns a copy of the Atom object. The residue back reference is
// shared, not copied.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	Newat := new(Atom)
	*Newat = *A
	return Newat
}

// TotalCharge returns the total charge of the given atoms.
func TotalCharge(atoms []*Atom) float64 {
	charges := make([]float64, len(atoms))
	for i, at := range atoms {
		charges[i] = at.Charge
	}
	return floats.Sum(charges)
}

// ResidueCharges groups consecutive atoms into residues (by chain, residue
// name and sequence number) and returns one Residue per group, in order of
// appearance, with its net charge filled in. Atoms without a residue back
// reference are skipped.
func ResidueCharges(atoms []*Atom) []*Residue {
	var res []*Residue
	var charges []float64
	var curr *Residue
	push := func() {
		if curr != nil {
			curr.Charge = floats.Sum(charges)
			res = append(res, curr)
		}
	}
	prevchain := ""
	for _, at := range atoms {
		if at.Residue == nil {
			continue
		}
		if curr == nil || at.Residue.Name != curr.Name ||
			at.Residue.SeqNum != curr.SeqNum || at.Chain != prevchain {
			push()
			curr = &Residue{Name: at.Residue.Name, SeqNum: at.Residue.SeqNum}
			charges = charges[:0]
			prevchain = at.Chain
		}
		charges = append(charges, at.Charge)
	}
	push()
	return res
}

// NonIntegral returns the residues whose net charge differs from the
// nearest integer by more than tol.
func NonIntegral(residues []*Residue, tol float64) []*Residue {
	var bad []*Residue
	for _, r := range residues {
		if math.Abs(r.Charge-math.Round(r.Charge)) > tol {
			bad = append(bad, r)
		}
	}
	return bad
}
