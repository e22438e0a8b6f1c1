package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pwh/internal/bearing"
	"pwh/internal/output"
)

var (
	bearingSize   string
	bearingType   string
	bearingOpen   bool
	bearingExport string
)

var bearingCmd = &cobra.Command{
	Use:   "bearing",
	Short: "Generate a deep groove ball bearing",
	Long: `Generate a ball bearing from a M{bore}-{outer}-{width} size designator and
report the derived roller geometry.

Examples:
  pwh bearing --size M8-22-7
  pwh bearing --size M8-22-7 --type SS --open
  pwh bearing --sizes`,
	Args: cobra.NoArgs,
	Run:  runBearing,
}

var bearingListSizes bool

func init() {
	bearingCmd.Flags().StringVar(&bearingSize, "size", "", "Size designator, e.g. M8-22-7")
	bearingCmd.Flags().StringVar(&bearingType, "type", "SKT", "Bearing type designator")
	bearingCmd.Flags().BoolVar(&bearingOpen, "open", false, "Render individual balls instead of sealing caps")
	bearingCmd.Flags().BoolVar(&bearingListSizes, "sizes", false, "List the standard sizes for the type")
	bearingCmd.Flags().StringVar(&bearingExport, "export", "", "Write the assembly bundle to this path")
	rootCmd.AddCommand(bearingCmd)
}

func runBearing(cmd *cobra.Command, args []string) {
	format := resolveFormat(loadConfig())

	if bearingListSizes {
		all, err := bearing.Sizes(bearingType)
		if err != nil {
			fail(err)
		}
		result := map[string]interface{}{"type": bearingType, "sizes": all}
		if err := printResult(format, result, func() string {
			return bearingType + ": " + strings.Join(all, ", ")
		}); err != nil {
			fail(err)
		}
		return
	}

	brg, err := bearing.New(bearingSize, bearingType, !bearingOpen)
	if err != nil {
		fail(err)
	}

	if bearingExport != "" {
		if err := exportAssembly(bearingExport, "bearing-"+brg.Size, brg.Assembly()); err != nil {
			fail(err)
		}
	}

	if err := printResult(format, brg, func() string {
		var b strings.Builder
		fmt.Fprintf(&b, "Bearing: %s %s\n", brg.Type, brg.Size)
		fmt.Fprintf(&b, "  Bore x OD x width: %s x %s x %s\n",
			mm(brg.BoreDiameter), mm(brg.OuterDiameter), mm(brg.Width))
		fmt.Fprintf(&b, "  Races:             %s / %s lands\n",
			mm(brg.InnerRaceDiameter), mm(brg.OuterRaceDiameter))
		fmt.Fprintf(&b, "  Rollers:           %d x %s on a %s radius circle",
			brg.RollerCount, mm(output.RoundFloat(brg.RollerDiameter)),
			mm(output.RoundFloat(brg.RaceCenterRadius)))
		return b.String()
	}); err != nil {
		fail(err)
	}
}
