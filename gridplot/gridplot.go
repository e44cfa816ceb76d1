// Package gridplot renders slices of volumetric grids as heat-map
// figures, mostly for a quick look at a potential map before feeding it
// to a visualization program.
package gridplot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/rmera/gopqr/grid"
)

// zslice adapts one constant-Z slice of a grid to plotter.GridXYZ.
// Column c maps to the X axis and row r to the Y axis, so the value index
// follows the X-outer, Y-middle, Z-inner flattening of grid.Grid.
type zslice struct {
	g *grid.Grid
	k int
}

func (s *zslice) Dims() (int, int) {
	return s.g.Npoints[0], s.g.Npoints[1]
}

func (s *zslice) Z(c, r int) float64 {
	return s.g.Values[(c*s.g.Npoints[1]+r)*s.g.Npoints[2]+s.k]
}

func (s *zslice) X(c int) float64 {
	return s.g.Origin[0] + float64(c)*s.g.Spacing.At(0, 0)
}

func (s *zslice) Y(r int) float64 {
	return s.g.Origin[1] + float64(r)*s.g.Spacing.At(1, 1)
}

// SliceHeatMap renders the k-th Z-slice of g as a heat map and saves it
// as a PNG file named pngname.
func SliceHeatMap(g *grid.Grid, k int, title, pngname string) error {
	if err := g.Check(); err != nil {
		return err
	}
	if k < 0 || k >= g.Npoints[2] {
		return fmt.Errorf("gridplot: slice %d out of range, grid has %d Z-planes", k, g.Npoints[2])
	}
	h := plotter.NewHeatMap(&zslice{g, k}, palette.Heat(12, 1))
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "X (A)"
	p.Y.Label.Text = "Y (A)"
	p.Add(h)
	return p.Save(14*vg.Centimeter, 14*vg.Centimeter, pngname)
}
