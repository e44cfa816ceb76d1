package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPQR = `REMARK   1 input file
ATOM      1 N    GLY  A    1      -2.602    4.109   12.781 -0.3000  1.6250
ATOM      2 CA   GLY  A    1      -1.602    3.109   11.781  0.3000  1.7000
TER
END`

const testDX = `object 1 class gridpositions counts 2 2 2
origin 0.0 0.0 0.0
delta 0.5 0.0 0.0
delta 0.0 0.5 0.0
delta 0.0 0.0 0.5
object 2 class gridconnections counts 2 2 2
object 3 class array type double rank 0 items 8 data follows
1.0 2.0 3.0 4.0
5.0 6.0 7.0 8.0
`

func run(t *testing.T, args ...string) {
	t.Helper()
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
}

func TestRewrite(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pqr")
	out := filepath.Join(dir, "out.pqr")
	require.NoError(t, os.WriteFile(in, []byte(testPQR), 0644))

	run(t, "rewrite", "--in", in, "--out", out, "--ff", "amber")

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(raw)
	assert.True(t, strings.HasPrefix(text, "REMARK   1 PQR file generated by gopqr\n"))
	assert.Contains(t, text, "REMARK   1 Forcefield Used: AMBER\n")
	assert.Contains(t, text, "REMARK   6 Total charge on this biomolecule: 0.0000 e\n")
	assert.True(t, strings.HasSuffix(text, "TER\nEND"), "file must end with the TER/END pair, no trailing newline")
	assert.Equal(t, 2, strings.Count(text, "\nATOM"))
}

func TestRewriteCIF(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pqr")
	out := filepath.Join(dir, "out.cif")
	require.NoError(t, os.WriteFile(in, []byte(testPQR), 0644))

	run(t, "rewrite", "--in", in, "--out", out, "--cif")

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(raw)
	assert.True(t, strings.HasPrefix(text, "#\nloop_\n_pdbx_database_remark.id\n"))
	assert.Contains(t, text, "_atom_site.pqr_radius\n")
	assert.Contains(t, text, "Forcefield used: User force field\n")
}

func TestCube(t *testing.T) {
	dir := t.TempDir()
	dx := filepath.Join(dir, "pot.dx")
	pqrname := filepath.Join(dir, "mol.pqr")
	out := filepath.Join(dir, "pot.cube")
	require.NoError(t, os.WriteFile(dx, []byte(testDX), 0644))
	require.NoError(t, os.WriteFile(pqrname, []byte(testPQR), 0644))

	run(t, "cube", "--dx", dx, "--pqr", pqrname, "-o", out)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(string(raw), "\n")
	require.Greater(t, len(lines), 7)
	assert.Equal(t, "CPMD CUBE FILE.", lines[0])
	assert.Equal(t, "OUTER LOOP: X, MIDDLE LOOP: Y, INNER LOOP: Z", lines[1])
	assert.False(t, strings.HasSuffix(string(raw), "\n"))
}

func TestPlot(t *testing.T) {
	dir := t.TempDir()
	dx := filepath.Join(dir, "pot.dx")
	out := filepath.Join(dir, "pot.png")
	require.NoError(t, os.WriteFile(dx, []byte(testDX), 0644))

	run(t, "plot", "--dx", dx, "-o", out)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
