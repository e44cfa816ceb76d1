/*
 * doc.go, part of gopqr.
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

// Package pqr reads and writes charge-annotated biomolecular structure files.
//
// It covers the PQR format (PDB-like fixed columns with per-atom charge and
// radius), the legacy QCARD card format, PDB-style output for the same atom
// records, and the two provenance-header dialects (REMARK blocks and mmCIF
// _pdbx_database_remark loops) that record how a PQR file was produced.
// The subpackage grid converts OpenDX volumetric potential maps to
// Gaussian cube files.
//
// Everything here is a synchronous text transformation over in-memory
// records; the only I/O happens in the *File convenience wrappers.
package pqr
