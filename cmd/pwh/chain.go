package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pwh/internal/chain"
	"pwh/internal/errors"
	"pwh/internal/geometry"
	"pwh/internal/output"
)

var (
	chainTeeth      []int
	chainLocations  []string
	chainWrap       []bool
	chainPitchFlag  float64
	chainRollerDiam float64
	chainExportPath string
)

// chainResponse is the derived view printed for a solved chain
type chainResponse struct {
	SpktTeeth   []int        `json:"spktTeeth"`
	PitchRadii  []float64    `json:"pitchRadii"`
	ChainLinks  float64      `json:"chainLinks"`
	NumRollers  int          `json:"numRollers"`
	ChainAngles [][2]float64 `json:"chainAngles"`
	Rotations   []float64    `json:"spktInitialRotation"`
	Gapped      bool         `json:"gapped"`
}

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Solve a roller chain wrapped around sprockets",
	Long: `Solve the path of a roller chain around two or more sprockets: chain length
in links, roller positions and the rotation each sprocket needs to mesh.

Each sprocket takes one --teeth, one --at location and one --wrap direction.
Locations are comma separated coordinates, "x,y" or "x,y,z".

Examples:
  pwh chain --teeth 32 --at 0,158.9 --wrap true --teeth 10 --at 0,0 --wrap true
  pwh chain --teeth 16 --at=-127,0 --wrap true --teeth 16 --at 127,0 --wrap false`,
	Args: cobra.NoArgs,
	Run:  runChain,
}

func init() {
	defaults := chain.DefaultConfig()
	chainCmd.Flags().IntSliceVar(&chainTeeth, "teeth", nil, "Teeth of each sprocket, repeated per sprocket")
	chainCmd.Flags().StringSliceVar(&chainLocations, "at", nil, "Center of each sprocket as x,y[,z]")
	chainCmd.Flags().BoolSliceVar(&chainWrap, "wrap", nil, "Wrap direction per sprocket: true for counter clockwise")
	chainCmd.Flags().Float64Var(&chainPitchFlag, "chain-pitch", defaults.ChainPitch, "Chain pitch in mm")
	chainCmd.Flags().Float64Var(&chainRollerDiam, "roller-diameter", defaults.RollerDiameter, "Roller diameter in mm")
	chainCmd.Flags().StringVar(&chainExportPath, "export", "", "Write the chain assembly bundle to this path")
	rootCmd.AddCommand(chainCmd)
}

// parseLocation reads "x,y" or "x,y,z" into a vector
func parseLocation(s string) (geometry.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return geometry.Vector{}, errors.Newf(errors.InvalidArgument,
			"location %q must be x,y or x,y,z", s)
	}
	coords := make([]float64, len(parts))
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geometry.Vector{}, errors.Newf(errors.InvalidArgument,
				"location %q has a bad coordinate %q", s, part)
		}
		coords[i] = value
	}
	v := geometry.Vector{X: coords[0], Y: coords[1]}
	if len(coords) == 3 {
		v.Z = coords[2]
	}
	return v, nil
}

func runChain(cmd *cobra.Command, args []string) {
	cfg := chain.DefaultConfig()
	cfg.SpktTeeth = chainTeeth
	cfg.PositiveChainWrap = chainWrap
	cfg.ChainPitch = chainPitchFlag
	cfg.RollerDiameter = chainRollerDiam
	for _, location := range chainLocations {
		v, err := parseLocation(location)
		if err != nil {
			fail(err)
		}
		cfg.SpktLocations = append(cfg.SpktLocations, v)
	}

	solved, err := chain.New(cfg)
	if err != nil {
		fail(err)
	}

	cfgFile := loadConfig()
	if solved.Gapped {
		newLogger(cfgFile).Warn("Chain has a gap at the closing link", map[string]interface{}{
			"chainLinks": output.RoundFloat(solved.ChainLinks()),
			"hint":       "move the sprocket centers until the link count is near a whole number",
		})
	}

	if chainExportPath != "" {
		if err := exportAssembly(chainExportPath, "chain", solved.Assembly()); err != nil {
			fail(err)
		}
	}

	radii := solved.PitchRadii()
	for i := range radii {
		radii[i] = output.RoundFloat(radii[i])
	}
	angles := solved.ChainAngles()
	for i := range angles {
		angles[i][0] = output.RoundFloat(angles[i][0])
		angles[i][1] = output.RoundFloat(angles[i][1])
	}
	rotations := solved.SpktInitialRotation()
	for i := range rotations {
		rotations[i] = output.RoundFloat(rotations[i])
	}

	resp := chainResponse{
		SpktTeeth:   cfg.SpktTeeth,
		PitchRadii:  radii,
		ChainLinks:  output.RoundFloat(solved.ChainLinks()),
		NumRollers:  solved.NumRollers(),
		ChainAngles: angles,
		Rotations:   rotations,
		Gapped:      solved.Gapped,
	}

	if err := printResult(resolveFormat(cfgFile), resp, func() string {
		var b strings.Builder
		fmt.Fprintf(&b, "Chain: %d sprockets, %s pitch\n", len(cfg.SpktTeeth), mm(cfg.ChainPitch))
		fmt.Fprintf(&b, "  Length: %s links (%d rollers)\n",
			output.FormatFloat(resp.ChainLinks), resp.NumRollers)
		for i, teeth := range resp.SpktTeeth {
			fmt.Fprintf(&b, "  Sprocket %d: %d teeth, pitch radius %s, entry %s°, exit %s°, rotate %s°\n",
				i, teeth, mm(resp.PitchRadii[i]),
				output.FormatFloat(resp.ChainAngles[i][0]),
				output.FormatFloat(resp.ChainAngles[i][1]),
				output.FormatFloat(resp.Rotations[i]))
		}
		if resp.Gapped {
			b.WriteString("  Warning: chain does not close to a whole link count")
		}
		return strings.TrimRight(b.String(), "\n")
	}); err != nil {
		fail(err)
	}
}
