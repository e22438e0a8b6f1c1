package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pwh/internal/errors"
	"pwh/internal/fastener"
	"pwh/internal/output"
)

var (
	screwKind     string
	screwSize     string
	screwLength   float64
	screwFit      string
	screwMaterial string
	screwExport   string

	nutKind   string
	nutSize   string
	nutExport string

	sizesKind string
)

var fastenerCmd = &cobra.Command{
	Use:   "fastener",
	Short: "Generate standard threaded fasteners",
}

// screwResponse is the derived view printed for a screw
type screwResponse struct {
	Screw         *fastener.Screw `json:"screw"`
	ClearanceHole float64         `json:"clearanceHole,omitempty"`
	TapHole       float64         `json:"tapHole,omitempty"`
}

var fastenerScrewCmd = &cobra.Command{
	Use:   "screw",
	Short: "Generate a screw from a standard size",
	Long: `Generate a screw and report its resolved dimensions, plus the matching
clearance and tap hole drill diameters.

Examples:
  pwh fastener screw --kind socketHeadCap --size M6-1 --length 20
  pwh fastener screw --kind hexBolt --size 1/4-20 --length 25.4 --fit Loose
  pwh fastener screw --kind setScrew --size "#8-32" --length 6`,
	Args: cobra.NoArgs,
	Run:  runScrew,
}

var fastenerNutCmd = &cobra.Command{
	Use:   "nut",
	Short: "Generate a nut from a standard size",
	Long: `Generate a hex or square nut and report its resolved dimensions.

Examples:
  pwh fastener nut --kind hex --size M6-1
  pwh fastener nut --kind square --size "#8-32"`,
	Args: cobra.NoArgs,
	Run:  runNut,
}

var fastenerSizesCmd = &cobra.Command{
	Use:   "sizes",
	Short: "List the standard sizes for a fastener kind",
	Args:  cobra.NoArgs,
	Run:   runFastenerSizes,
}

func init() {
	fastenerScrewCmd.Flags().StringVar(&screwKind, "kind", string(fastener.SocketHeadCap),
		"Screw kind: socketHeadCap, buttonHeadCap, hexBolt or setScrew")
	fastenerScrewCmd.Flags().StringVar(&screwSize, "size", "", "Size designator, e.g. M6-1 or #8-32")
	fastenerScrewCmd.Flags().Float64Var(&screwLength, "length", 0, "Overall length in mm")
	fastenerScrewCmd.Flags().StringVar(&screwFit, "fit", string(fastener.Medium),
		"Clearance hole fit: Close, Medium or Loose")
	fastenerScrewCmd.Flags().StringVar(&screwMaterial, "material", string(fastener.Soft),
		"Tap hole material: Soft or Hard")
	fastenerScrewCmd.Flags().StringVar(&screwExport, "export", "", "Write the geometry bundle to this path")

	fastenerNutCmd.Flags().StringVar(&nutKind, "kind", string(fastener.HexNut), "Nut kind: hex or square")
	fastenerNutCmd.Flags().StringVar(&nutSize, "size", "", "Size designator, e.g. M6-1 or #8-32")
	fastenerNutCmd.Flags().StringVar(&nutExport, "export", "", "Write the geometry bundle to this path")

	fastenerSizesCmd.Flags().StringVar(&sizesKind, "kind", string(fastener.SocketHeadCap),
		"Screw kind to list sizes for")

	fastenerCmd.AddCommand(fastenerScrewCmd)
	fastenerCmd.AddCommand(fastenerNutCmd)
	fastenerCmd.AddCommand(fastenerSizesCmd)
	rootCmd.AddCommand(fastenerCmd)
}

// optionalHole narrows a drill table lookup: a size absent from the hole
// tables just suppresses the hole line, but an invalid fit or material
// selection is the user's error and must abort the run.
func optionalHole(diameter float64, err error) (float64, error) {
	if err != nil {
		if errors.CodeOf(err) == errors.SizeNotFound {
			return 0, nil
		}
		return 0, err
	}
	return output.RoundFloat(diameter), nil
}

func runScrew(cmd *cobra.Command, args []string) {
	screw, err := fastener.NewScrew(fastener.Kind(screwKind), screwSize, screwLength)
	if err != nil {
		fail(err)
	}

	resp := screwResponse{Screw: screw}
	if resp.ClearanceHole, err = optionalHole(screw.ClearanceHoleDiameter(fastener.Fit(screwFit))); err != nil {
		fail(err)
	}
	if resp.TapHole, err = optionalHole(screw.TapHoleDiameter(fastener.Material(screwMaterial))); err != nil {
		fail(err)
	}

	if screwExport != "" {
		if err := exportProgram(screwExport, "screw-"+screw.Size, screw.Program()); err != nil {
			fail(err)
		}
	}

	if err := printResult(resolveFormat(loadConfig()), resp, func() string {
		var b strings.Builder
		fmt.Fprintf(&b, "Screw: %s %s x %s\n", screw.Kind, screw.Size, mm(screw.Length))
		fmt.Fprintf(&b, "  Thread:    %s major, %s pitch, %s threaded\n",
			mm(screw.ThreadDiameter), mm(screw.ThreadPitch), mm(screw.ThreadLength))
		if screw.BodyLength > 0 {
			fmt.Fprintf(&b, "  Body:      %s unthreaded\n", mm(screw.BodyLength))
		}
		if screw.HeadDiameter > 0 {
			fmt.Fprintf(&b, "  Head:      %s diameter x %s\n", mm(screw.HeadDiameter), mm(screw.HeadHeight))
		}
		if screw.HeadWidth > 0 {
			fmt.Fprintf(&b, "  Head:      %s across flats x %s\n", mm(screw.HeadWidth), mm(screw.HeadHeight))
		}
		if screw.SocketSize > 0 {
			fmt.Fprintf(&b, "  Socket:    %s hex, %s deep\n", mm(screw.SocketSize), mm(screw.SocketDepth))
		}
		if resp.ClearanceHole > 0 {
			fmt.Fprintf(&b, "  Clearance: %s drill (%s fit)\n", mm(resp.ClearanceHole), screwFit)
		}
		if resp.TapHole > 0 {
			fmt.Fprintf(&b, "  Tap:       %s drill (%s material)", mm(resp.TapHole), screwMaterial)
		}
		return strings.TrimRight(b.String(), "\n")
	}); err != nil {
		fail(err)
	}
}

func runNut(cmd *cobra.Command, args []string) {
	nut, err := fastener.NewNut(fastener.NutKind(nutKind), nutSize)
	if err != nil {
		fail(err)
	}

	if nutExport != "" {
		if err := exportProgram(nutExport, "nut-"+nut.Size, nut.Program()); err != nil {
			fail(err)
		}
	}

	if err := printResult(resolveFormat(loadConfig()), nut, func() string {
		var b strings.Builder
		fmt.Fprintf(&b, "Nut: %s %s\n", nut.Kind, nut.Size)
		fmt.Fprintf(&b, "  Thread: %s major, %s pitch\n", mm(nut.ThreadDiameter), mm(nut.ThreadPitch))
		fmt.Fprintf(&b, "  Body:   %s across flats x %s", mm(nut.Width), mm(nut.Height))
		return b.String()
	}); err != nil {
		fail(err)
	}
}

func runFastenerSizes(cmd *cobra.Command, args []string) {
	all, err := fastener.Sizes(fastener.Kind(sizesKind))
	if err != nil {
		fail(err)
	}

	result := map[string]interface{}{"kind": sizesKind, "sizes": all}
	if err := printResult(resolveFormat(loadConfig()), result, func() string {
		return sizesKind + ": " + strings.Join(all, ", ")
	}); err != nil {
		fail(err)
	}
}
