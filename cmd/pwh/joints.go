package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pwh/internal/joints"
	"pwh/internal/output"
)

var (
	jointEdgeLength  float64
	jointThickness   float64
	jointFingerWidth float64
	jointKerf        float64
)

var jointsCmd = &cobra.Command{
	Use:   "joints",
	Short: "Lay out a finger joint for a box edge",
	Long: `Divide a box edge into alternating fingers and sockets for tool-less
assembly of sheet material panels.

Examples:
  pwh joints --edge-length 100 --material-thickness 5 --finger-width 10
  pwh joints --edge-length 80 --material-thickness 3 --finger-width 12 --kerf 0.2`,
	Args: cobra.NoArgs,
	Run:  runJoints,
}

func init() {
	jointsCmd.Flags().Float64Var(&jointEdgeLength, "edge-length", 0, "Edge length in mm")
	jointsCmd.Flags().Float64Var(&jointThickness, "material-thickness", 0, "Sheet thickness in mm")
	jointsCmd.Flags().Float64Var(&jointFingerWidth, "finger-width", 0, "Target finger width in mm")
	jointsCmd.Flags().Float64Var(&jointKerf, "kerf", 0, "Cutter kerf compensation in mm")
	rootCmd.AddCommand(jointsCmd)
}

func runJoints(cmd *cobra.Command, args []string) {
	layout, err := joints.NewLayout(joints.Config{
		EdgeLength:        jointEdgeLength,
		MaterialThickness: jointThickness,
		TargetFingerWidth: jointFingerWidth,
		KerfWidth:         jointKerf,
	})
	if err != nil {
		fail(err)
	}

	if err := printResult(resolveFormat(loadConfig()), layout, func() string {
		var b strings.Builder
		fmt.Fprintf(&b, "Finger joint: %s edge, %s material\n",
			mm(layout.EdgeLength), mm(layout.MaterialThickness))
		fmt.Fprintf(&b, "  %d intervals of %s (%d fingers, %d sockets)\n",
			layout.FingerCount, mm(output.RoundFloat(layout.FingerWidth)),
			len(layout.Fingers), len(layout.Sockets))
		for i, finger := range layout.Fingers {
			fmt.Fprintf(&b, "  Finger %d: %s .. %s\n", i,
				mm(output.RoundFloat(finger.Start)), mm(output.RoundFloat(finger.End)))
		}
		return strings.TrimRight(b.String(), "\n")
	}); err != nil {
		fail(err)
	}
}
