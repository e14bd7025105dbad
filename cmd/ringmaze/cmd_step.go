package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdrpinto/ringmaze"
	"github.com/pdrpinto/ringmaze/internal/imagemaze"
	"github.com/pdrpinto/ringmaze/internal/pnm"
	"github.com/pdrpinto/ringmaze/internal/render"
)

func newStepCmd(a *app) *cobra.Command {
	var frameDir string
	cmd := &cobra.Command{
		Use:   "step <image>",
		Short: "Run the search one expansion at a time and show the frontier advance",
		Long: `Step drives the search expansion by expansion and prints the maze with the
first node popped at each new arrival time. With --frames, each printed frame is
also written as a PPM image.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.applyFlags(cmd); err != nil {
				return err
			}
			if frameDir != "" {
				if err := os.MkdirAll(frameDir, 0755); err != nil {
					return fmt.Errorf("failed to create frame directory: %w", err)
				}
			}
			maze, ring, start, err := a.puzzle(args[0])
			if err != nil {
				return err
			}
			stepper, err := ringmaze.NewStepper(maze, ring, start,
				ringmaze.WithLogger(a.logger),
				ringmaze.WithMaxExpansions(a.cfg.Search.MaxExpansions))
			if err != nil {
				return err
			}
			defer stepper.Close()

			out := cmd.OutOrStdout()
			lastTime := -1
			var snap ringmaze.StepSnapshot
			for !stepper.Done() {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				snap, err = stepper.Step()
				if err != nil {
					return err
				}
				if snap.Current.Time == lastTime || snap.StepIndex == 0 {
					continue
				}
				lastTime = snap.Current.Time
				if err := a.emitFrame(out, maze, snap, frameDir); err != nil {
					return err
				}
			}

			result, err := stepper.Result()
			if err != nil {
				return err
			}
			a.logger.Debug("step finished", zap.Int("steps", snap.StepIndex))
			if result.Found() {
				fmt.Fprintf(out, "found path in %d steps (%d expansions, %d states)\n",
					result.Time, result.ExpandedNodes, result.VisitedStates)
			} else {
				fmt.Fprintf(out, "%s after %d expansions (%d states)\n",
					result.Outcome, result.ExpandedNodes, result.VisitedStates)
			}
			return nil
		},
	}
	puzzleFlags(cmd)
	cmd.Flags().StringVar(&frameDir, "frames", "", "directory for PPM frames")
	return cmd
}

func (a *app) emitFrame(out io.Writer, maze *ringmaze.Maze, snap ringmaze.StepSnapshot, frameDir string) error {
	fmt.Fprintf(out, "%sfrontier=%d visited=%d\n\n", render.Frame(maze, snap.Current), snap.FrontierSize, snap.Visited)
	if frameDir == "" {
		return nil
	}
	path := filepath.Join(frameDir, fmt.Sprintf("frame_%04d.ppm", snap.Current.Time))
	img := imagemaze.Draw(maze, snap.Current.State)
	return writeFile(path, func(w io.Writer) error { return pnm.Encode(w, img) })
}
