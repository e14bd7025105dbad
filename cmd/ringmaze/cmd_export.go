package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdrpinto/ringmaze/internal/imagemaze"
	"github.com/pdrpinto/ringmaze/internal/objmesh"
	"github.com/pdrpinto/ringmaze/internal/pathfile"
	"github.com/pdrpinto/ringmaze/internal/render"
)

func newMeshCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mesh <image>",
		Short: "Export the maze walls as a Wavefront OBJ mesh on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.applyFlags(cmd); err != nil {
				return err
			}
			maze, err := imagemaze.Load(args[0], imagemaze.Options{SwapLayers: a.cfg.Puzzle.SwapLayers})
			if err != nil {
				return err
			}
			stats, err := objmesh.Write(cmd.OutOrStdout(), maze, a.cfg.Output.MeshThickness)
			if err != nil {
				return err
			}
			a.logger.Info("mesh written",
				zap.String("input", args[0]),
				zap.Int("width", maze.Width()),
				zap.Int("height", maze.Height()),
				zap.Int("vertices", stats.Vertices),
				zap.Int("triangles", stats.Triangles))
			return nil
		},
	}
	cmd.Flags().Bool("swap", false, "read the top layer from green and the bottom from red")
	cmd.Flags().Float64("thickness", objmesh.DefaultThickness, "z offset of each layer sheet")
	return cmd
}

func newPlotCmd(a *app) *cobra.Command {
	var out, title string
	cmd := &cobra.Command{
		Use:   "plot <pathfile>",
		Short: "Plot the pin and ring trajectories of a path file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			lines, err := pathfile.Read(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if out == "" {
				out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".png"
			}
			if title == "" {
				title = filepath.Base(args[0])
			}
			if err := render.SavePlot(lines, title, out); err != nil {
				return err
			}
			a.logger.Info("plot written", zap.String("output", out), zap.Int("steps", len(lines)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output image; the extension selects the format (default <pathfile>.png)")
	cmd.Flags().StringVar(&title, "title", "", "plot title")
	return cmd
}
