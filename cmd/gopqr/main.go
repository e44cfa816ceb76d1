// Command gopqr converts between the text formats handled by the gopqr
// library: it rewrites PQR/QCARD structure files with a fresh provenance
// header, converts OpenDX potential maps to Gaussian cube files, and
// renders quick-look heat maps of a potential map.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	pqr "github.com/rmera/gopqr"
	"github.com/rmera/gopqr/dedup"
	"github.com/rmera/gopqr/grid"
	"github.com/rmera/gopqr/gridplot"
)

// chargeTol is the tolerance used to flag residues with non-integral net
// charge in the provenance header.
const chargeTol = 1e-3

// filterWarnings are the warning prefixes that get rate-limited: one per
// atom or per line, they can flood the log on large molecules.
var filterWarnings = []string{
	"Including original CIF header",
	"Skipping line",
}

const warnLimit = 10

var (
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gopqr",
	Short: "gopqr - biomolecular structure and potential-map file conversion",
	Long: `gopqr converts molecular-data text formats.

It rewrites PQR and QCARD structure files with charge-accounting
provenance headers (REMARK or mmCIF dialect), converts OpenDX
electrostatic potential maps to Gaussian cube files, and renders
heat maps of potential-map slices.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return dedup.NewCore(c, filterWarnings, warnLimit)
		}))
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var (
	cubeDX      string
	cubePQR     string
	cubeOut     string
	cubeComment string
)

var cubeCmd = &cobra.Command{
	Use:   "cube",
	Short: "Convert an OpenDX potential map plus a PQR atom list to a Gaussian cube file",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := grid.ReadFile(cubeDX)
		if err != nil {
			return err
		}
		atoms, err := pqr.ReadPQRFile(cubePQR)
		if err != nil {
			return err
		}
		logger.Info("read potential map",
			zap.String("file", cubeDX),
			zap.Ints("dimensions", g.Npoints[:]),
			zap.Int("atoms", len(atoms)))
		return grid.WriteCubeFile(cubeOut, g, atoms, cubeComment)
	},
}

var (
	rewriteIn      string
	rewriteOut     string
	rewriteCIF     bool
	rewriteFF      string
	rewriteFFOut   string
	rewritePH      float64
	rewritePHM     string
	rewriteKeepHdr bool
	rewriteNoChain bool
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Rewrite a PQR or QCARD file with a fresh provenance header",
	RunE: func(cmd *cobra.Command, args []string) error {
		var atoms []*pqr.Atom
		var err error
		if strings.HasSuffix(strings.ToLower(rewriteIn), ".qcd") {
			atoms, err = pqr.ReadQCDFile(rewriteIn)
		} else {
			atoms, err = pqr.ReadPQRFile(rewriteIn)
		}
		if err != nil {
			return err
		}
		ctx := &pqr.HeaderContext{
			NonIntegral:      pqr.NonIntegral(pqr.ResidueCharges(atoms), chargeTol),
			Charge:           pqr.TotalCharge(atoms),
			ForceField:       rewriteFF,
			NamingScheme:     rewriteFFOut,
			PHCalcMethod:     rewritePHM,
			PH:               rewritePH,
			IncludeOldHeader: rewriteKeepHdr,
			Log:              logger,
		}
		var dialect pqr.HeaderDialect = pqr.RemarkDialect{}
		if rewriteCIF {
			dialect = pqr.LoopDialect{}
		} else if rewriteKeepHdr {
			ctx.OldHeader, err = oldHeader(rewriteIn)
			if err != nil {
				return err
			}
		}
		out, err := os.Create(rewriteOut)
		if err != nil {
			return err
		}
		defer out.Close()
		if _, err := out.WriteString(dialect.Render(ctx)); err != nil {
			return err
		}
		return pqr.WriteAtoms(out, atoms, pqr.PQR, !rewriteNoChain)
	},
}

// oldHeader collects the leading metadata block of the input file for
// verbatim passthrough.
func oldHeader(name string) (string, error) {
	raw, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return pqr.OldHeader(strings.Split(strings.TrimRight(string(raw), "\n"), "\n")), nil
}

var (
	plotDX    string
	plotOut   string
	plotSlice int
	plotTitle string
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render one Z-slice of an OpenDX potential map as a heat-map PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := grid.ReadFile(plotDX)
		if err != nil {
			return err
		}
		k := plotSlice
		if k < 0 {
			k = g.Npoints[2] / 2
		}
		return gridplot.SliceHeatMap(g, k, plotTitle, plotOut)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cubeCmd.Flags().StringVar(&cubeDX, "dx", "", "input OpenDX potential map (.dx, .dx.gz or .dx.zst)")
	cubeCmd.Flags().StringVar(&cubePQR, "pqr", "", "input PQR file with the atom list")
	cubeCmd.Flags().StringVarP(&cubeOut, "out", "o", "", "output cube file")
	cubeCmd.Flags().StringVar(&cubeComment, "comment", "", "first comment line of the cube file")
	for _, f := range []string{"dx", "pqr", "out"} {
		_ = cubeCmd.MarkFlagRequired(f)
	}

	rewriteCmd.Flags().StringVar(&rewriteIn, "in", "", "input PQR or QCARD (.qcd) file")
	rewriteCmd.Flags().StringVar(&rewriteOut, "out", "", "output PQR file")
	rewriteCmd.Flags().BoolVar(&rewriteCIF, "cif", false, "write the header in the mmCIF loop dialect")
	rewriteCmd.Flags().StringVar(&rewriteFF, "ff", "", "force-field label for the header")
	rewriteCmd.Flags().StringVar(&rewriteFFOut, "ffout", "", "naming-scheme label for the header")
	rewriteCmd.Flags().Float64Var(&rewritePH, "ph", 7.0, "pH used for protonation, with --ph-method")
	rewriteCmd.Flags().StringVar(&rewritePHM, "ph-method", "", "pKa calculation method, if any was used")
	rewriteCmd.Flags().BoolVar(&rewriteKeepHdr, "keep-header", false, "pass the original metadata block through (REMARK dialect only)")
	rewriteCmd.Flags().BoolVar(&rewriteNoChain, "no-chain", false, "omit the chain identifier column")
	for _, f := range []string{"in", "out"} {
		_ = rewriteCmd.MarkFlagRequired(f)
	}

	plotCmd.Flags().StringVar(&plotDX, "dx", "", "input OpenDX potential map")
	plotCmd.Flags().StringVarP(&plotOut, "out", "o", "", "output PNG file")
	plotCmd.Flags().IntVarP(&plotSlice, "slice", "k", -1, "Z-slice index (default: middle plane)")
	plotCmd.Flags().StringVar(&plotTitle, "title", "Electrostatic potential", "plot title")
	for _, f := range []string{"dx", "out"} {
		_ = plotCmd.MarkFlagRequired(f)
	}

	rootCmd.AddCommand(cubeCmd, rewriteCmd, plotCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
