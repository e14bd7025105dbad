// Command ringmaze solves dual-layer ring mazes and exports their geometry.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdrpinto/ringmaze"
	"github.com/pdrpinto/ringmaze/internal/config"
	"github.com/pdrpinto/ringmaze/internal/imagemaze"
	"github.com/pdrpinto/ringmaze/internal/logging"
)

// app is the state shared by all subcommands.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "ringmaze",
		Short: "Solve two-layer ring mazes",
		Long: `ringmaze finds the shortest synchronized path for two pins joined by a
rigid ring through two stacked mazes.

Mazes are read from images: the red channel is the top layer, the green
channel the bottom layer (swapped with --swap), and blue=255 marks the exit.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			level := cfg.Logging.Level
			if a.verbose {
				level = "debug"
			}
			a.logger, err = logging.New(level)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "ringmaze.yaml", "config file")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging with search progress")

	rootCmd.AddCommand(
		newSolveCmd(a),
		newStepCmd(a),
		newMeshCmd(a),
		newPlotCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

// puzzleFlags binds the flags that override the puzzle and search sections of the config.
func puzzleFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Float64("distance", 0, "inter-pin distance in cells (required unless set in the config)")
	flags.Float64("diameter", 0, "pin diameter in cells")
	flags.Float64("tolerance", ringmaze.DefaultTolerance, "allowed deviation from the inter-pin distance")
	flags.Bool("swap", false, "read the top layer from green and the bottom from red")
	flags.Int("max-expansions", 0, "abort after this many expansions (0 = unlimited)")
}

// applyFlags copies explicitly set flags over the loaded config and validates the result.
func (a *app) applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("distance") {
		distance, _ := flags.GetFloat64("distance")
		a.cfg.Puzzle.InterPinDistance = &distance
	}
	if flags.Changed("diameter") {
		a.cfg.Puzzle.PinDiameter, _ = flags.GetFloat64("diameter")
	}
	if flags.Changed("tolerance") {
		tol, _ := flags.GetFloat64("tolerance")
		a.cfg.Puzzle.Tolerance = &tol
	}
	if flags.Changed("swap") {
		a.cfg.Puzzle.SwapLayers, _ = flags.GetBool("swap")
	}
	if flags.Changed("max-expansions") {
		a.cfg.Search.MaxExpansions, _ = flags.GetInt("max-expansions")
	}
	if flags.Lookup("order") != nil && flags.Changed("order") {
		a.cfg.Output.Order, _ = flags.GetString("order")
	}
	if flags.Lookup("workers") != nil && flags.Changed("workers") {
		a.cfg.Search.Workers, _ = flags.GetInt("workers")
	}
	if flags.Lookup("thickness") != nil && flags.Changed("thickness") {
		a.cfg.Output.MeshThickness, _ = flags.GetFloat64("thickness")
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// puzzle loads the maze at path and builds the ring and start state for it.
func (a *app) puzzle(path string) (*ringmaze.Maze, *ringmaze.Ring, ringmaze.JointState, error) {
	maze, err := imagemaze.Load(path, imagemaze.Options{SwapLayers: a.cfg.Puzzle.SwapLayers})
	if err != nil {
		return nil, nil, ringmaze.JointState{}, err
	}
	ring, err := a.cfg.Ring()
	if errors.Is(err, config.ErrDistanceUnset) {
		return nil, nil, ringmaze.JointState{}, fmt.Errorf("%w: pass --distance or set puzzle.inter_pin_distance in %s", err, a.configPath)
	}
	if err != nil {
		return nil, nil, ringmaze.JointState{}, err
	}
	start, err := a.cfg.StartState(maze, ring)
	if err != nil {
		return nil, nil, ringmaze.JointState{}, fmt.Errorf("%s: %w", path, err)
	}
	return maze, ring, start, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
