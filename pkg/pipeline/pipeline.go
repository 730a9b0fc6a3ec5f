// Package pipeline provides the core layout → render pipeline for
// cabinetry.
//
// This package implements the complete load → layout → render flow that
// the CLI commands share. Centralizing it keeps caching behavior and
// option defaults consistent across every entry point.
//
// # Architecture
//
// The pipeline consists of two cached stages downstream of plan loading:
//
//  1. Layout: Walk a wall's cabinet run and compute positions and
//     diagnostics
//  2. Render: Generate output in various formats (SVG, PNG, PDF, JSON,
//     text)
//
// Each stage can be run independently or as part of the complete
// pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Wall:    "north",
//	    VizType: pipeline.VizTypeFloorplan,
//	    Formats: []string{pipeline.FormatSVG},
//	}
//	result, err := runner.Execute(ctx, p, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mfriedel/cabinetry/pkg/cache"
	"github.com/mfriedel/cabinetry/pkg/errors"
	"github.com/mfriedel/cabinetry/pkg/layout"
	"github.com/mfriedel/cabinetry/pkg/render/floorplan"
	"github.com/mfriedel/cabinetry/pkg/render/text"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI
// =============================================================================

const (
	// DefaultScale is the SVG drawing scale in pixels per inch.
	DefaultScale = floorplan.DefaultScale

	// DefaultMaxTextWidth is the widest ASCII strip the text renderer
	// draws.
	DefaultMaxTextWidth = text.DefaultMaxWidth

	// DefaultMinGap is the smallest unexplained gap worth reporting, in
	// inches.
	DefaultMinGap = layout.DefaultMinReportableGap
)

// Visualization type constants.
const (
	VizTypeFloorplan = "floorplan"
	VizTypeNodelink  = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeFloorplan

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatText = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatText: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeFloorplan: true,
	VizTypeNodelink:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
type Options struct {
	// Layout options
	Wall        string  `json:"wall"`
	StartOffset float64 `json:"start_offset,omitempty"`
	MinGap      float64 `json:"min_gap,omitempty"`
	Refresh     bool    `json:"refresh,omitempty"`

	// Render options
	VizType      string   `json:"viz_type,omitempty"`
	Formats      []string `json:"formats,omitempty"`
	Scale        float64  `json:"scale,omitempty"`
	MaxTextWidth int      `json:"max_text_width,omitempty"`
	Zoom         float64  `json:"zoom,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed wall layout.
	Layout layout.Result

	// PlanHash is the content hash of the plan.
	PlanHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CabinetCount int
	GapCount     int
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, txt)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType,
			"invalid viz_type: %q (must be one of: floorplan, nodelink)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout checks required fields for layout computation and
// applies layout defaults.
func (o *Options) ValidateForLayout() error {
	if o.Wall == "" {
		return errors.New(errors.ErrCodeInvalidInput, "wall is required")
	}
	if o.StartOffset < 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"start offset cannot be negative, got %g", o.StartOffset)
	}
	if o.MinGap == 0 {
		o.MinGap = DefaultMinGap
	}
	o.setLoggerDefault()
	return nil
}

// ValidateForRender checks render fields and applies render defaults.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return errors.ValidateScale(o.Scale)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.MaxTextWidth == 0 {
		o.MaxTextWidth = DefaultMaxTextWidth
	}
	if o.Zoom == 0 {
		o.Zoom = 1.0
	}
	o.setLoggerDefault()
}

// IsFloorplan returns true if this is a floorplan visualization.
func (o *Options) IsFloorplan() bool {
	return o.VizType == "" || o.VizType == VizTypeFloorplan
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Wall:        o.Wall,
		StartOffset: o.StartOffset,
		MinGap:      o.MinGap,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Wall:         o.Wall,
		VizType:      o.VizType,
		Format:       format,
		Scale:        o.Scale,
		MaxTextWidth: o.MaxTextWidth,
	}
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
