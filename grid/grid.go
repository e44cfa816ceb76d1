// Package grid converts between volumetric-grid text formats: it reads
// the OpenDX subset written by Poisson-Boltzmann solvers and writes
// Gaussian cube files. The conversion is one-directional; there is no
// cube reader.
package grid

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Grid is a scalar field on a regular, axis-aligned 3-D lattice. Values
// holds the field flattened with the X axis varying slowest and the Z
// axis fastest (X-outer, Y-middle, Z-inner).
//
// Spacing is a 3x3 matrix whose rows are the per-axis delta vectors. The
// supported input format only ever populates the diagonal, but the full
// rows are read and kept, so a skewed grid is representable even though
// no operation here handles skew.
type Grid struct {
	Origin  [3]float64 //the lower-left corner
	Spacing *mat.Dense
	Npoints [3]int
	Values  []float64
}

// Len returns the number of points the grid declares, nx*ny*nz.
func (G *Grid) Len() int {
	return G.Npoints[0] * G.Npoints[1] * G.Npoints[2]
}

// Check verifies the internal consistency of the grid: positive
// dimensions, a spacing matrix, and a value buffer of exactly nx*ny*nz
// entries. The DX format cannot declare its value count, so a truncated
// file is only catchable here.
func (G *Grid) Check() error {
	for i, n := range G.Npoints {
		if n <= 0 {
			return &Error{fmt.Sprintf("grid dimension %d is %d, must be positive", i, n), "", []string{"Check"}, true}
		}
	}
	if G.Spacing == nil {
		return &Error{"grid has no spacing matrix", "", []string{"Check"}, true}
	}
	if r, c := G.Spacing.Dims(); r != 3 || c != 3 {
		return &Error{fmt.Sprintf("spacing matrix is %dx%d, must be 3x3", r, c), "", []string{"Check"}, true}
	}
	if len(G.Values) != G.Len() {
		return &Error{fmt.Sprintf("grid declares %d points but carries %d values", G.Len(), len(G.Values)), "", []string{"Check"}, true}
	}
	return nil
}
