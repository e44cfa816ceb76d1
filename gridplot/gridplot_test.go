package gridplot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/rmera/gopqr/grid"
)

func testGrid() *grid.Grid {
	spacing := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		spacing.Set(i, i, 0.5)
	}
	values := make([]float64, 4*3*2)
	for i := range values {
		values[i] = float64(i)
	}
	return &grid.Grid{
		Origin:  [3]float64{-1, -1, -1},
		Spacing: spacing,
		Npoints: [3]int{4, 3, 2},
		Values:  values,
	}
}

func TestSliceIndexing(t *testing.T) {
	s := &zslice{testGrid(), 1}
	c, r := s.Dims()
	assert.Equal(t, 4, c)
	assert.Equal(t, 3, r)
	//X-outer, Y-middle, Z-inner: value at (i,j,k) is (i*ny+j)*nz+k
	assert.Equal(t, float64((2*3+1)*2+1), s.Z(2, 1))
	assert.Equal(t, -1.0+2*0.5, s.X(2))
	assert.Equal(t, -1.0+1*0.5, s.Y(1))
}

func TestSliceHeatMap(t *testing.T) {
	pngname := filepath.Join(t.TempDir(), "pot.png")
	require.NoError(t, SliceHeatMap(testGrid(), 1, "potential", pngname))
	info, err := os.Stat(pngname)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSliceHeatMapErrors(t *testing.T) {
	g := testGrid()
	err := SliceHeatMap(g, 5, "potential", "unused.png")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "out of range"))

	g.Values = g.Values[:7]
	require.Error(t, SliceHeatMap(g, 0, "potential", "unused.png"))
}
