package grid

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"
)

// Read parses an OpenDX-format scalar field from r. This is not a
// general OpenDX parser: it handles the subset written by
// Poisson-Boltzmann solvers, and is intentionally permissive about
// directive lines it does not use ("#", "attribute", "component", and
// object declarations other than "object 1") for tolerance of format
// variants.
//
// The format does not declare how many values follow, so after reading,
// the value count is checked against the declared dimensions and a
// mismatch is a structural error, as are short "origin"/"delta" lines and
// non-numeric value tokens. There is no partial-grid result.
func Read(r io.Reader) (*Grid, error) {
	var (
		origin    [3]float64
		npoints   [3]int
		deltas    []float64
		values    []float64
		gotOrigin bool
		gotDims   bool
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		switch words[0] {
		case "#", "attribute", "component":
			//no-op directives
		case "object":
			//only the first object declaration carries the grid dimensions,
			//at fixed token positions.
			if len(words) < 2 || words[1] != "1" {
				continue
			}
			if len(words) < 8 {
				return nil, &Error{ShortDirective, "", []string{"Read"}, true}
			}
			var err error
			for i := 0; i < 3; i++ {
				npoints[i], err = strconv.Atoi(words[5+i])
				if err != nil {
					return nil, &Error{fmt.Sprintf("non-numeric grid dimension %q", words[5+i]), "", []string{"Read"}, true}
				}
			}
			gotDims = true
		case "origin":
			if len(words) < 4 {
				return nil, &Error{ShortDirective, "", []string{"Read"}, true}
			}
			var err error
			for i := 0; i < 3; i++ {
				origin[i], err = strconv.ParseFloat(words[1+i], 64)
				if err != nil {
					return nil, &Error{fmt.Sprintf("non-numeric origin coordinate %q", words[1+i]), "", []string{"Read"}, true}
				}
			}
			gotOrigin = true
		case "delta":
			if len(words) < 4 {
				return nil, &Error{ShortDirective, "", []string{"Read"}, true}
			}
			if len(deltas) >= 9 {
				return nil, &Error{ExtraDelta, "", []string{"Read"}, true}
			}
			for i := 0; i < 3; i++ {
				d, err := strconv.ParseFloat(words[1+i], 64)
				if err != nil {
					return nil, &Error{fmt.Sprintf("non-numeric delta component %q", words[1+i]), "", []string{"Read"}, true}
				}
				deltas = append(deltas, d)
			}
		default:
			for _, word := range words {
				v, err := strconv.ParseFloat(word, 64)
				if err != nil {
					return nil, &Error{fmt.Sprintf("non-numeric value token %q", word), "", []string{"Read"}, true}
				}
				values = append(values, v)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !gotDims {
		return nil, &Error{"no object 1 line: grid dimensions missing", "", []string{"Read"}, true}
	}
	if !gotOrigin {
		return nil, &Error{"no origin line", "", []string{"Read"}, true}
	}
	if len(deltas) != 9 {
		return nil, &Error{fmt.Sprintf("%d delta lines, expected 3", len(deltas)/3), "", []string{"Read"}, true}
	}
	g := &Grid{
		Origin:  origin,
		Spacing: mat.NewDense(3, 3, deltas),
		Npoints: npoints,
		Values:  values,
	}
	if err := g.Check(); err != nil {
		return nil, errDecorate(err, "Read")
	}
	return g, nil
}

// ReadFile reads an OpenDX grid from the file dxname. Files ending in
// ".gz" or ".zst" are decompressed transparently.
func ReadFile(dxname string) (*Grid, error) {
	dxfile, err := os.Open(dxname)
	if err != nil {
		return nil, &Error{UnableToOpen, dxname, []string{"ReadFile"}, true}
	}
	defer dxfile.Close()
	var r io.Reader = dxfile
	switch {
	case strings.HasSuffix(dxname, ".gz"):
		gz, err := gzip.NewReader(dxfile)
		if err != nil {
			return nil, &Error{err.Error(), dxname, []string{"ReadFile"}, true}
		}
		defer gz.Close()
		r = gz
	case strings.HasSuffix(dxname, ".zst"):
		zr, err := zstd.NewReader(dxfile)
		if err != nil {
			return nil, &Error{err.Error(), dxname, []string{"ReadFile"}, true}
		}
		defer zr.Close()
		r = zr
	}
	g, err := Read(r)
	if err != nil {
		return nil, errDecorate(err, "ReadFile: "+dxname)
	}
	return g, nil
}
