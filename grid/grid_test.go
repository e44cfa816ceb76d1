package grid

import (
	"compress/gzip"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	pqr "github.com/rmera/gopqr"
	"gonum.org/v1/gonum/mat"
)

func spacingDiag(d float64) *mat.Dense {
	m := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		m.Set(i, i, d)
	}
	return m
}

const sampleDX = `# Data from APBS
# POTENTIAL (kT/e)
object 1 class gridpositions counts 2 2 2
origin 0.0 0.0 0.0
delta 0.5 0.0 0.0
delta 0.0 0.5 0.0
delta 0.0 0.0 0.5
object 2 class gridconnections counts 2 2 2
object 3 class array type double rank 0 items 8 data follows
1.0 2.0 3.0
4.0 5.0 6.0
7.0 8.0
attribute "dep" string "positions"
component "data" value 3
`

// TestRead checks the DX subset reader: dimensions from the fixed token
// positions of the object 1 line, origin, the three delta rows (third
// components stored even though unused), and the values in file order.
func TestRead(Te *testing.T) {
	g, err := Read(strings.NewReader(sampleDX))
	if err != nil {
		Te.Fatal(err)
	}
	if g.Npoints != [3]int{2, 2, 2} {
		Te.Errorf("dimensions misread: %v", g.Npoints)
	}
	if g.Origin != [3]float64{0, 0, 0} {
		Te.Errorf("origin misread: %v", g.Origin)
	}
	if g.Spacing.At(1, 1) != 0.5 || g.Spacing.At(1, 2) != 0.0 {
		Te.Errorf("spacing misread: %v", g.Spacing)
	}
	if len(g.Values) != 8 || g.Len() != 8 {
		Te.Fatalf("got %d values, want 8", len(g.Values))
	}
	for i, v := range g.Values {
		if math.Abs(v-float64(i+1)) > 1e-12 {
			Te.Errorf("value %d misread: %g", i, v)
		}
	}
}

// TestReadStructuralErrors checks that truncated value buffers, short
// directive lines and non-numeric tokens are all fatal: there is no
// partial-grid result.
func TestReadStructuralErrors(Te *testing.T) {
	truncated := strings.Replace(sampleDX, "7.0 8.0\n", "7.0\n", 1)
	if _, err := Read(strings.NewReader(truncated)); err == nil {
		Te.Errorf("7 values for a 2x2x2 grid accepted")
	}
	shortdelta := strings.Replace(sampleDX, "delta 0.0 0.5 0.0\n", "delta 0.0 0.5\n", 1)
	if _, err := Read(strings.NewReader(shortdelta)); err == nil {
		Te.Errorf("short delta line accepted")
	}
	shortorigin := strings.Replace(sampleDX, "origin 0.0 0.0 0.0\n", "origin 0.0\n", 1)
	if _, err := Read(strings.NewReader(shortorigin)); err == nil {
		Te.Errorf("short origin line accepted")
	}
	badvalue := strings.Replace(sampleDX, "4.0 5.0 6.0\n", "4.0 five 6.0\n", 1)
	if _, err := Read(strings.NewReader(badvalue)); err == nil {
		Te.Errorf("non-numeric value token accepted")
	}
	nodims := strings.Replace(sampleDX, "object 1 class gridpositions counts 2 2 2\n", "", 1)
	if _, err := Read(strings.NewReader(nodims)); err == nil {
		Te.Errorf("grid without dimensions accepted")
	}
	missingdelta := strings.Replace(sampleDX, "delta 0.0 0.0 0.5\n", "", 1)
	if _, err := Read(strings.NewReader(missingdelta)); err == nil {
		Te.Errorf("grid with two delta lines accepted")
	}
}

// TestErrorDecoration checks that decorations stick to the error as it is
// passed up from Check through Read.
func TestErrorDecoration(Te *testing.T) {
	truncated := strings.Replace(sampleDX, "7.0 8.0\n", "7.0\n", 1)
	_, err := Read(strings.NewReader(truncated))
	if err == nil {
		Te.Fatal("7 values for a 2x2x2 grid accepted")
	}
	deco := err.(pqr.Error).Decorate("")
	if len(deco) != 2 || deco[0] != "Check" || deco[1] != "Read" {
		Te.Errorf("decoration trail wrong: %v", deco)
	}
}

// TestReadFileCompressed reads the same grid plain, gzipped and
// zstd-compressed.
func TestReadFileCompressed(Te *testing.T) {
	dir := Te.TempDir()
	plain := filepath.Join(dir, "pot.dx")
	if err := os.WriteFile(plain, []byte(sampleDX), 0644); err != nil {
		Te.Fatal(err)
	}
	gzname := filepath.Join(dir, "pot.dx.gz")
	gzfile, err := os.Create(gzname)
	if err != nil {
		Te.Fatal(err)
	}
	zw := gzip.NewWriter(gzfile)
	zw.Write([]byte(sampleDX))
	zw.Close()
	gzfile.Close()
	zstname := filepath.Join(dir, "pot.dx.zst")
	zstfile, err := os.Create(zstname)
	if err != nil {
		Te.Fatal(err)
	}
	enc, err := zstd.NewWriter(zstfile)
	if err != nil {
		Te.Fatal(err)
	}
	enc.Write([]byte(sampleDX))
	enc.Close()
	zstfile.Close()
	for _, name := range []string{plain, gzname, zstname} {
		g, err := ReadFile(name)
		if err != nil {
			Te.Errorf("%s: %v", name, err)
			continue
		}
		if len(g.Values) != 8 {
			Te.Errorf("%s: got %d values, want 8", name, len(g.Values))
		}
	}
	if _, err := ReadFile(filepath.Join(dir, "absent.dx")); err == nil {
		Te.Errorf("missing file accepted")
	}
}

// TestWriteCube pins the exact cube output for a small grid: every line
// has fixed-width fields, value rows hold six entries, and the last row
// carries no trailing newline.
func TestWriteCube(Te *testing.T) {
	g, err := Read(strings.NewReader(sampleDX))
	if err != nil {
		Te.Fatal(err)
	}
	atom := &pqr.Atom{
		Serial: 1,
		Charge: -0.5,
		X:      1.0,
		Y:      2.0,
		Z:      3.0,
	}
	var b strings.Builder
	if err := WriteCube(&b, g, []*pqr.Atom{atom}, "Potential map"); err != nil {
		Te.Fatal(err)
	}
	want := "Potential map\n" +
		"OUTER LOOP: X, MIDDLE LOOP: Y, INNER LOOP: Z\n" +
		"   1    0.000000    0.000000    0.000000\n" +
		"  -2    0.500000    0.000000    0.000000\n" +
		"  -2    0.000000    0.500000    0.000000\n" +
		"  -2    0.000000    0.000000    0.500000\n" +
		"   1   -0.500000    1.000000    2.000000    3.000000\n" +
		" 1.00000E+00   2.00000E+00   3.00000E+00   4.00000E+00   5.00000E+00   6.00000E+00 \n" +
		" 7.00000E+00   8.00000E+00 "
	if b.String() != want {
		Te.Errorf("cube output differs.\ngot:\n%q\nwant:\n%q", b.String(), want)
	}
}

// TestWriteCubeChunking checks the row layout for value counts that do
// and do not divide by six.
func TestWriteCubeChunking(Te *testing.T) {
	for _, tc := range []struct {
		n     int
		lines int
		last  int
	}{
		{13, 3, 1},
		{12, 2, 6},
		{6, 1, 6},
		{5, 1, 5},
	} {
		g := &Grid{
			Origin:  [3]float64{0, 0, 0},
			Spacing: spacingDiag(0.5),
			Npoints: [3]int{tc.n, 1, 1},
			Values:  make([]float64, tc.n),
		}
		var b strings.Builder
		if err := WriteCube(&b, g, nil, ""); err != nil {
			Te.Fatal(err)
		}
		out := b.String()
		if strings.HasSuffix(out, "\n") {
			Te.Errorf("n=%d: trailing newline after the last value row", tc.n)
		}
		all := strings.Split(out, "\n")
		rows := all[6:] //past the two comments, counts line and three axis lines
		if len(rows) != tc.lines {
			Te.Fatalf("n=%d: got %d value rows, want %d", tc.n, len(rows), tc.lines)
		}
		for i, row := range rows {
			want := 6
			if i == len(rows)-1 {
				want = tc.last
			}
			if got := len(strings.Fields(row)); got != want {
				Te.Errorf("n=%d row %d: %d values, want %d", tc.n, i, got, want)
			}
		}
	}
}

// TestCheck exercises the consistency check directly.
func TestCheck(Te *testing.T) {
	g := &Grid{
		Origin:  [3]float64{0, 0, 0},
		Spacing: spacingDiag(0.5),
		Npoints: [3]int{2, 2, 2},
		Values:  make([]float64, 8),
	}
	if err := g.Check(); err != nil {
		Te.Error(err)
	}
	g.Values = g.Values[:7]
	if err := g.Check(); err == nil {
		Te.Errorf("short value buffer accepted")
	}
	g.Values = make([]float64, 0)
	g.Npoints = [3]int{0, 2, 2}
	if err := g.Check(); err == nil {
		Te.Errorf("zero dimension accepted")
	}
}
