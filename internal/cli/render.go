package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mfriedel/cabinetry/pkg/archive"
	"github.com/mfriedel/cabinetry/pkg/errors"
	"github.com/mfriedel/cabinetry/pkg/pipeline"
	"github.com/mfriedel/cabinetry/pkg/plan"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	wall     string   // wall to render; empty triggers interactive selection
	output   string   // output file (single viz/format) or base path (multiple)
	vizTypes []string // visualization types: "floorplan", "nodelink"
	formats  []string // output formats: "svg", "png", "pdf", "json", "txt"
	offset   float64  // start offset from the wall's left edge, in inches
	minGap   float64  // smallest unexplained gap worth reporting, in inches
	scale    float64  // SVG drawing scale in pixels per inch
	maxWidth int      // widest ASCII strip, in characters
	zoom     float64  // zoom factor for the ASCII strip
	noCache  bool     // disable the artifact cache
	refresh  bool     // recompute even if cached
	archived bool     // also snapshot the artifacts into the run archive
}

// renderCommand creates the render command for generating wall drawings.
// It supports floorplan and nodelink visualizations in SVG, PNG, PDF,
// JSON, and ASCII formats.
func (c *CLI) renderCommand() *cobra.Command {
	var vizTypesStr, formatsStr string
	opts := renderOpts{
		scale:    pipeline.DefaultScale,
		maxWidth: pipeline.DefaultMaxTextWidth,
		zoom:     1.0,
	}

	cmd := &cobra.Command{
		Use:   "render [plan]",
		Short: "Render a wall layout to SVG, PNG, PDF, JSON, or ASCII",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.vizTypes = parseVizTypes(vizTypesStr)
			opts.formats = parseFormats(formatsStr)
			if opts.output != "" {
				if err := errors.ValidateOutputPath(opts.output); err != nil {
					return err
				}
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.wall, "wall", "w", "", "wall to render (interactive selection if omitted)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single type/format) or base path (multiple)")
	cmd.Flags().StringVarP(&vizTypesStr, "type", "t", "", "visualization type(s): floorplan (default), nodelink (comma-separated)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, txt (comma-separated)")
	cmd.Flags().Float64Var(&opts.offset, "offset", 0, "start offset from the wall's left edge, in inches")
	cmd.Flags().Float64Var(&opts.minGap, "min-gap", pipeline.DefaultMinGap, "smallest gap worth reporting, in inches")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "SVG drawing scale, in pixels per inch")
	cmd.Flags().IntVar(&opts.maxWidth, "max-width", opts.maxWidth, "widest ASCII strip, in characters")
	cmd.Flags().Float64Var(&opts.zoom, "zoom", opts.zoom, "ASCII strip zoom factor (0.1-5.0)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&opts.archived, "archive", false, "also snapshot the artifacts into the run archive")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, planPath string, opts *renderOpts) error {
	p, err := plan.Load(planPath)
	if err != nil {
		return err
	}

	wall, err := resolveWall(p, opts.wall)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := startProgress(cmd.Context(), fmt.Sprintf("Rendering wall %s", wall))

	// One pipeline run per visualization type; the layout stage is cached,
	// so only the first run computes it.
	written := make(map[string][]byte)
	cached := true
	for _, vizType := range opts.vizTypes {
		result, err := runner.Execute(cmd.Context(), p, pipeline.Options{
			Wall:         wall,
			StartOffset:  opts.offset,
			MinGap:       opts.minGap,
			Refresh:      opts.refresh,
			VizType:      vizType,
			Formats:      opts.formats,
			Scale:        opts.scale,
			MaxTextWidth: opts.maxWidth,
			Zoom:         opts.zoom,
			Logger:       c.Logger,
		})
		if err != nil {
			if prog.Cancelled() {
				prog.stop()
				return cmd.Context().Err()
			}
			prog.Fail("Render failed: %v", errors.UserMessage(err))
			return err
		}
		cached = cached && result.CacheInfo.RenderHit

		for format, data := range result.Artifacts {
			path := artifactPath(opts, planPath, wall, vizType, format)
			written[path] = data
		}

		if !result.Layout.Success {
			for _, msg := range result.Layout.Errors {
				printWarning("%s", msg)
			}
		}
	}

	for path, data := range written {
		if err := writeArtifact(path, data); err != nil {
			prog.Fail("Write failed: %v", err)
			return err
		}
	}

	prog.Done("Rendered wall %s", wall)
	for _, path := range sortedKeys(written) {
		printFile(path)
	}
	printCacheStatus(cached)

	if opts.archived {
		return archiveArtifacts(wall, written)
	}
	return nil
}

// artifactPath builds the output filename for one viz/format combination.
// Single combination: the --output path or <plan>_<wall>.<format>.
// Multiple: base path plus wall, viz type (when several), and format.
func artifactPath(opts *renderOpts, planPath, wall, vizType, format string) string {
	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(planPath, filepath.Ext(planPath)) + "_" + wall
	} else if ext := filepath.Ext(base); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		if len(opts.vizTypes) == 1 && len(opts.formats) == 1 {
			return base
		}
		base = strings.TrimSuffix(base, ext)
	}

	if len(opts.vizTypes) > 1 {
		return fmt.Sprintf("%s_%s.%s", base, vizType, format)
	}
	return fmt.Sprintf("%s.%s", base, format)
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// archiveArtifacts snapshots the written files into the run archive.
func archiveArtifacts(wall string, files map[string][]byte) error {
	dir, err := archiveDir()
	if err != nil {
		return err
	}
	store, err := archive.NewStore(dir)
	if err != nil {
		return err
	}
	run, err := store.Snapshot(wall, files)
	if err != nil {
		return err
	}
	printDetail("Archived as run %s", run.ID)
	return nil
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
