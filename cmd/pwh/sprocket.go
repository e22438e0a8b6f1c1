package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pwh/internal/output"
	"pwh/internal/sprocket"
	"pwh/internal/units"
)

var (
	sprocketTeeth              int
	sprocketChainPitch         float64
	sprocketRollerDiameter     float64
	sprocketClearance          float64
	sprocketThickness          float64
	sprocketBoltCircle         float64
	sprocketNumMountBolts      int
	sprocketMountBoltDiameter  float64
	sprocketBoreDiameter       float64
	sprocketExportPath         string
)

// sprocketResponse is the derived view printed for a sprocket
type sprocketResponse struct {
	Config             sprocket.Config   `json:"config"`
	PitchRadius        float64           `json:"pitchRadius"`
	PitchCircumference float64           `json:"pitchCircumference"`
	OuterRadius        float64           `json:"outerRadius"`
	FlatTeeth          bool              `json:"flatTeeth"`
	BoltHoleCount      int               `json:"boltHoleCount"`
	Instructions       int               `json:"instructions"`
}

var sprocketCmd = &cobra.Command{
	Use:   "sprocket",
	Short: "Generate a roller chain sprocket",
	Long: `Generate a sprocket for a roller chain and report its derived dimensions.

Zero-valued optional features are omitted: --bolt-circle-diameter 0 means no
mounting bolt holes, --bore-diameter 0 means no center bore.

Examples:
  pwh sprocket --teeth 32
  pwh sprocket --teeth 10 --chain-pitch 12.7 --roller-diameter 7.9375
  pwh sprocket --teeth 32 --bore-diameter 10 --export sprocket.json`,
	Args: cobra.NoArgs,
	Run:  runSprocket,
}

func init() {
	defaults := sprocket.DefaultConfig()
	sprocketCmd.Flags().IntVar(&sprocketTeeth, "teeth", defaults.NumTeeth, "Number of teeth (at least 3)")
	sprocketCmd.Flags().Float64Var(&sprocketChainPitch, "chain-pitch", defaults.ChainPitch, "Chain pitch in mm")
	sprocketCmd.Flags().Float64Var(&sprocketRollerDiameter, "roller-diameter", defaults.RollerDiameter, "Chain roller diameter in mm")
	sprocketCmd.Flags().Float64Var(&sprocketClearance, "clearance", defaults.Clearance, "Roller clearance in mm")
	sprocketCmd.Flags().Float64Var(&sprocketThickness, "thickness", defaults.Thickness, "Sprocket thickness in mm")
	sprocketCmd.Flags().Float64Var(&sprocketBoltCircle, "bolt-circle-diameter", 0, "Mount bolt circle diameter in mm, 0 for none")
	sprocketCmd.Flags().IntVar(&sprocketNumMountBolts, "num-mount-bolts", 0, "Number of mount bolt holes, 0 for none")
	sprocketCmd.Flags().Float64Var(&sprocketMountBoltDiameter, "mount-bolt-diameter", 0, "Mount bolt hole diameter in mm, 0 for none")
	sprocketCmd.Flags().Float64Var(&sprocketBoreDiameter, "bore-diameter", 0, "Center bore diameter in mm, 0 for none")
	sprocketCmd.Flags().StringVar(&sprocketExportPath, "export", "", "Write the geometry bundle to this path")
	rootCmd.AddCommand(sprocketCmd)
}

func runSprocket(cmd *cobra.Command, args []string) {
	cfg := sprocket.Config{
		NumTeeth:           sprocketTeeth,
		ChainPitch:         sprocketChainPitch,
		RollerDiameter:     sprocketRollerDiameter,
		Clearance:          sprocketClearance,
		Thickness:          sprocketThickness,
		BoltCircleDiameter: sprocketBoltCircle,
		NumMountBolts:      sprocketNumMountBolts,
		MountBoltDiameter:  sprocketMountBoltDiameter,
		BoreDiameter:       sprocketBoreDiameter,
	}

	part, err := sprocket.New(cfg, nil)
	if err != nil {
		fail(err)
	}

	if sprocketExportPath != "" {
		if err := exportProgram(sprocketExportPath, "sprocket", part.Program()); err != nil {
			fail(err)
		}
	}

	resp := sprocketResponse{
		Config:             cfg,
		PitchRadius:        output.RoundFloat(part.PitchRadius()),
		PitchCircumference: output.RoundFloat(part.PitchCircumference()),
		OuterRadius:        output.RoundFloat(part.OuterRadius()),
		FlatTeeth:          part.FlatTeeth(),
		BoltHoleCount:      len(part.BoltHoleCenters()),
		Instructions:       len(part.Program().Instructions),
	}

	if err := printResult(resolveFormat(loadConfig()), resp, func() string {
		var b strings.Builder
		fmt.Fprintf(&b, "Sprocket: %d teeth, %s pitch\n", cfg.NumTeeth, mm(cfg.ChainPitch))
		fmt.Fprintf(&b, "  Pitch radius:        %s\n", mm(resp.PitchRadius))
		fmt.Fprintf(&b, "  Pitch circumference: %s\n", mm(resp.PitchCircumference))
		fmt.Fprintf(&b, "  Outer radius:        %s\n", mm(resp.OuterRadius))
		fmt.Fprintf(&b, "  Tooth tips:          %s\n", toothTipStyle(resp.FlatTeeth))
		if resp.BoltHoleCount > 0 {
			fmt.Fprintf(&b, "  Mount bolt holes:    %d on a %s circle\n",
				resp.BoltHoleCount, mm(cfg.BoltCircleDiameter))
		}
		if cfg.BoreDiameter > 0 {
			fmt.Fprintf(&b, "  Bore:                %s\n", mm(cfg.BoreDiameter))
		}
		fmt.Fprintf(&b, "  (chain pitch %s = %s inch)",
			mm(cfg.ChainPitch), output.FormatFloat(cfg.ChainPitch/units.Inch))
		return b.String()
	}); err != nil {
		fail(err)
	}
}

func toothTipStyle(flat bool) string {
	if flat {
		return "flat"
	}
	return "pointed"
}
