package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdrpinto/ringmaze"
	"github.com/pdrpinto/ringmaze/internal/pathfile"
	"github.com/pdrpinto/ringmaze/internal/render"
)

// solution is the outcome of solving one maze file.
type solution struct {
	input  string
	maze   *ringmaze.Maze
	result ringmaze.Result
}

func newSolveCmd(a *app) *cobra.Command {
	var (
		outDir string
		plot   bool
	)
	cmd := &cobra.Command{
		Use:   "solve <image>...",
		Short: "Find the shortest path through one or more mazes",
		Long: `Solve each maze image and write its path, one step per line:

  time topX topY bottomX bottomY ringX ringY

Coordinates are normalized to [0,1]. With a single input and no --out the path
goes to stdout; otherwise <out>/<name>.path is written for every input. Several
inputs are solved concurrently. A maze without a solution is reported but is
not an error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.applyFlags(cmd); err != nil {
				return err
			}
			if outDir == "" && (len(args) > 1 || plot) {
				return errors.New("--out is required for several inputs or --plot")
			}
			if outDir != "" {
				if err := os.MkdirAll(outDir, 0755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}

			solutions, err := a.solveAll(cmd.Context(), args)
			if err != nil {
				return err
			}

			for _, s := range solutions {
				if !s.result.Found() {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s after %d expansions\n",
						s.input, s.result.Outcome, s.result.ExpandedNodes)
					continue
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: found path in %d steps\n", s.input, s.result.Time)
				lines := pathfile.FromRecords(s.maze, s.result.Path)
				if outDir == "" {
					if err := pathfile.Write(cmd.OutOrStdout(), lines); err != nil {
						return err
					}
					continue
				}
				base := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(s.input), filepath.Ext(s.input)))
				if err := writeFile(base+".path", func(w io.Writer) error { return pathfile.Write(w, lines) }); err != nil {
					return err
				}
				if plot {
					if err := render.SavePlot(lines, filepath.Base(s.input), base+".png"); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	puzzleFlags(cmd)
	cmd.Flags().String("order", ringmaze.Chronological.String(), "path order: chronological or terminal-first")
	cmd.Flags().Int("workers", 0, "mazes solved concurrently (default from config)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for .path (and .png) files")
	cmd.Flags().BoolVar(&plot, "plot", false, "also write a trajectory plot per maze")
	return cmd
}

// solveAll solves every input concurrently. Each search owns its own frontier
// and index; results come back in input order.
func (a *app) solveAll(ctx context.Context, inputs []string) ([]solution, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	order, err := a.cfg.Order()
	if err != nil {
		return nil, err
	}

	solutions := make([]solution, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Search.Workers)
	for i, input := range inputs {
		g.Go(func() error {
			logger := a.logger.With(zap.String("run_id", uuid.NewString()), zap.String("input", input))
			maze, ring, start, err := a.puzzle(input)
			if err != nil {
				return err
			}
			logger.Info("solving",
				zap.Int("width", maze.Width()),
				zap.Int("height", maze.Height()),
				zap.Float64("inter_pin_distance", ring.InterPinDistance()),
				zap.Float64("pin_diameter", ring.PinDiameter()),
				zap.Float64("tolerance", ring.Tolerance()))

			result, err := ringmaze.Search(ctx, maze, ring, start,
				ringmaze.WithLogger(logger),
				ringmaze.WithOrder(order),
				ringmaze.WithMaxExpansions(a.cfg.Search.MaxExpansions))
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			solutions[i] = solution{input: input, maze: maze, result: result}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return solutions, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
