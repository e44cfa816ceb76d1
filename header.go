/*
 * header.go, part of gopqr.
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
	"strings"

	"go.uber.org/zap"
)

// Version of the library, quoted in the provenance headers.
const Version = "1.0.0"

// TitleString is the one-line description of this tool written into every
// provenance header. Other tools parse these headers, so the wording is
// part of the output contract.
const TitleString = "gopqr v" + Version + ": biomolecular structure conversion software."

// HeaderContext carries everything the provenance-header builders need:
// the charge-accounting results, the provenance labels, and, for the PDB
// dialect, the original file's leading metadata block for optional
// verbatim passthrough.
type HeaderContext struct {
	OldHeader        string     //original leading metadata block, newline-terminated lines
	Unassigned       []*Atom    //atoms for which charge assignment failed
	NonIntegral      []*Residue //residues with non-integral net charge
	Charge           float64    //total charge on the biomolecule
	ForceField       string     //empty means a user-supplied force field
	PHCalcMethod     string     //pKa calculation method, empty if none was used
	PH               float64    //only meaningful if PHCalcMethod is set
	NamingScheme     string     //alternate naming-scheme label, empty if none
	IncludeOldHeader bool       //request OldHeader passthrough (PDB dialect only)
	Log              *zap.Logger
}

// forceField returns the force-field label for the header: upper-cased, or
// a generic fallback when absent.
func (c *HeaderContext) forceField() string {
	if c.ForceField == "" {
		return "User force field"
	}
	return strings.ToUpper(c.ForceField)
}

// HeaderDialect renders the logical provenance-header content of a
// HeaderContext into one concrete textual syntax. The dialect set is
// closed: RemarkDialect and LoopDialect are the only implementations.
type HeaderDialect interface {
	Render(*HeaderContext) string
}

// RemarkDialect renders the provenance header as flat PDB REMARK lines
// grouped by remark number: 1 for provenance, 5 for warnings, 6 for the
// total charge, 7 for the original-header passthrough.
type RemarkDialect struct{}

func (RemarkDialect) Render(c *HeaderContext) string {
	var b strings.Builder
	b.WriteString("REMARK   1 PQR file generated by gopqr\n")
	b.WriteString("REMARK   1 " + TitleString + "\n")
	b.WriteString("REMARK   1\n")
	fmt.Fprintf(&b, "REMARK   1 Forcefield Used: %s\n", c.forceField())
	if c.NamingScheme != "" {
		fmt.Fprintf(&b, "REMARK   1 Naming Scheme Used: %s\n", c.NamingScheme)
	}
	b.WriteString("REMARK   1\n")
	if c.PHCalcMethod != "" {
		fmt.Fprintf(&b, "REMARK   1 pKas calculated by %s and assigned using pH %.2f\n", c.PHCalcMethod, c.PH)
		b.WriteString("REMARK   1\n")
	}
	if len(c.Unassigned) != 0 {
		b.WriteString("REMARK   5 WARNING: gopqr was unable to assign charges\n")
		b.WriteString("REMARK   5 to the following atoms (omitted below):\n")
		for _, at := range c.Unassigned {
			fmt.Fprintf(&b, "REMARK   5    %d %s in %s %d\n", at.Serial, at.Name, at.Residue.Name, at.Residue.SeqNum)
		}
		b.WriteString("REMARK   5 This is usually due to the fact that this residue is not\n")
		b.WriteString("REMARK   5 an amino acid or nucleic acid; or, there are no parameters\n")
		b.WriteString("REMARK   5 available for the specific protonation state of this\n")
		b.WriteString("REMARK   5 residue in the selected forcefield.\n")
		b.WriteString("REMARK   5\n")
	}
	if len(c.NonIntegral) != 0 {
		b.WriteString("REMARK   5 WARNING: Non-integral net charges were found in\n")
		b.WriteString("REMARK   5 the following residues:\n")
		for _, r := range c.NonIntegral {
			fmt.Fprintf(&b, "REMARK   5    %s - Residue Charge: %.4f\n", r, r.Charge)
		}
		b.WriteString("REMARK   5\n")
	}
	fmt.Fprintf(&b, "REMARK   6 Total charge on this biomolecule: %.4f e\n", c.Charge)
	b.WriteString("REMARK   6\n")
	if c.IncludeOldHeader {
		b.WriteString("REMARK   7 Original PDB header follows\n")
		b.WriteString("REMARK   7\n")
		b.WriteString(c.OldHeader)
	}
	return b.String()
}

// LoopDialect renders the provenance header as an mmCIF
// _pdbx_database_remark loop of numbered text blocks, terminated by the
// _atom_site column declaration for the atom table that follows.
// Original-header passthrough is not supported in this dialect; requesting
// it degrades to a diagnostic note on the context's logger.
type LoopDialect struct{}

func (LoopDialect) Render(c *HeaderContext) string {
	var b strings.Builder
	b.WriteString("#\n")
	b.WriteString("loop_\n")
	b.WriteString("_pdbx_database_remark.id\n")
	b.WriteString("_pdbx_database_remark.text\n")
	b.WriteString("1\n")
	b.WriteString(";\n")
	b.WriteString("PQR file generated by gopqr\n")
	b.WriteString(TitleString + "\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "Forcefield used: %s\n", c.forceField())
	if c.NamingScheme != "" {
		fmt.Fprintf(&b, "Naming scheme used: %s\n", c.NamingScheme)
	}
	b.WriteString("\n")
	if c.PHCalcMethod != "" {
		fmt.Fprintf(&b, "pKas calculated by %s and assigned using pH %.2f\n", c.PHCalcMethod, c.PH)
	}
	b.WriteString(";\n")
	b.WriteString("2\n")
	b.WriteString(";\n")
	if len(c.Unassigned) > 0 {
		b.WriteString("Warning: gopqr was unable to assign charges\n")
		b.WriteString("to the following atoms (omitted below):\n")
		for _, at := range c.Unassigned {
			fmt.Fprintf(&b, "    %d %s in %s %d\n", at.Serial, at.Name, at.Residue.Name, at.Residue.SeqNum)
		}
		b.WriteString("This is usually due to the fact that this residue is not\n")
		b.WriteString("an amino acid or nucleic acid; or, there are no parameters\n")
		b.WriteString("available for the specific protonation state of this\n")
		b.WriteString("residue in the selected forcefield.\n")
	}
	if len(c.NonIntegral) > 0 {
		b.WriteString("Warning: Non-integral net charges were found in\n")
		b.WriteString("the following residues:\n")
		for _, r := range c.NonIntegral {
			fmt.Fprintf(&b, "    %s - Residue Charge: %.4f\n", r, r.Charge)
		}
	}
	b.WriteString(";\n")
	b.WriteString("3\n")
	b.WriteString(";\n")
	fmt.Fprintf(&b, "Total charge on this biomolecule: %.4f e\n", c.Charge)
	b.WriteString(";\n")
	if c.IncludeOldHeader && c.Log != nil {
		c.Log.Warn("Including original CIF header not implemented.")
	}
	b.WriteString("#\n")
	b.WriteString("loop_\n")
	b.WriteString("_atom_site.group_PDB\n")
	b.WriteString("_atom_site.id\n")
	b.WriteString("_atom_site.label_atom_id\n")
	b.WriteString("_atom_site.label_comp_id\n")
	b.WriteString("_atom_site.label_seq_id\n")
	b.WriteString("_atom_site.Cartn_x\n")
	b.WriteString("_atom_site.Cartn_y\n")
	b.WriteString("_atom_site.Cartn_z\n")
	b.WriteString("_atom_site.pqr_partial_charge\n")
	b.WriteString("_atom_site.pqr_radius\n")
	return b.String()
}

// headerRecords are the PDB record types that make up a file's leading
// metadata block.
var headerRecords = []string{
	"HEADER", "TITLE", "COMPND", "SOURCE", "KEYWDS", "EXPDTA",
	"AUTHOR", "REVDAT", "JRNL", "REMARK", "SPRSDE", "NUMMDL",
}

// OldHeader collects the leading metadata block from the lines of a PDB
// file: every line from the top until the first record that is not a
// metadata record. The result is newline-terminated, ready for verbatim
// passthrough in a HeaderContext.
func OldHeader(lines []string) string {
	var b strings.Builder
	for _, line := range lines {
		ok := false
		for _, rec := range headerRecords {
			if strings.HasPrefix(line, rec) {
				ok = true
				break
			}
		}
		if !ok {
			break
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
