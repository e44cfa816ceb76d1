package grid

import (
	"fmt"
	"io"
	"os"
	"strings"

	pqr "github.com/rmera/gopqr"
)

// DefaultComment is the first line of a cube file when the caller gives
// none.
const DefaultComment = "CPMD CUBE FILE."

// WriteCube writes g and the given atoms to w as a Gaussian cube file.
// The layout is fixed: the comment line, a literal line naming the axis
// iteration order, the atom count and origin, one line per axis with the
// negated point count (direct-space length convention) and that axis's
// spacing vector, one line per atom (serial, charge, coordinates), and the
// values in rows of six, in fixed-width scientific notation, with no
// newline after the last row.
//
// Values are transcribed in exactly the order the grid holds them; no
// axis reordering is performed, so the grid must already be X-outer,
// Y-middle, Z-inner, as produced by Read.
func WriteCube(w io.Writer, g *Grid, atoms []*pqr.Atom, comment string) error {
	if err := g.Check(); err != nil {
		return errDecorate(err, "WriteCube")
	}
	if comment == "" {
		comment = DefaultComment
	}
	var err error
	write := func(format string, args ...interface{}) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, args...)
	}
	write("%s\n", comment)
	write("OUTER LOOP: X, MIDDLE LOOP: Y, INNER LOOP: Z\n")
	write("%4d %11.6f %11.6f %11.6f\n", len(atoms), g.Origin[0], g.Origin[1], g.Origin[2])
	for i := 0; i < 3; i++ {
		write("%4d %11.6f %11.6f %11.6f\n", -g.Npoints[i],
			g.Spacing.At(i, 0), g.Spacing.At(i, 1), g.Spacing.At(i, 2))
	}
	for _, at := range atoms {
		write("%4d %11.6f %11.6f %11.6f %11.6f\n", at.Serial, at.Charge, at.X, at.Y, at.Z)
	}
	words := make([]string, 0, 6)
	for i := 0; i < len(g.Values); i += 6 {
		end := i + 6
		last := false
		if end >= len(g.Values) {
			end = len(g.Values)
			last = true
		}
		words = words[:0]
		for _, v := range g.Values[i:end] {
			words = append(words, fmt.Sprintf("% -13.5E", v))
		}
		if last {
			write("%s", strings.Join(words, " "))
		} else {
			write("%s\n", strings.Join(words, " "))
		}
	}
	return err
}

// WriteCubeFile writes g and the given atoms to the file cubename,
// overwriting it if it exists.
func WriteCubeFile(cubename string, g *Grid, atoms []*pqr.Atom, comment string) error {
	out, err := os.Create(cubename)
	if err != nil {
		return &Error{err.Error(), cubename, []string{"WriteCubeFile"}, true}
	}
	defer out.Close()
	if err := WriteCube(out, g, atoms, comment); err != nil {
		return err
	}
	return nil
}
