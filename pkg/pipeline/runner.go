package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mfriedel/cabinetry/pkg/cache"
	"github.com/mfriedel/cabinetry/pkg/errors"
	"github.com/mfriedel/cabinetry/pkg/layout"
	"github.com/mfriedel/cabinetry/pkg/plan"
	"github.com/mfriedel/cabinetry/pkg/render"
	"github.com/mfriedel/cabinetry/pkg/render/floorplan"
	"github.com/mfriedel/cabinetry/pkg/render/nodelink"
	"github.com/mfriedel/cabinetry/pkg/render/text"
)

// pngZoom is the raster scale factor for PNG conversion. 2x keeps labels
// crisp on high-DPI displays.
const pngZoom = 2.0

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, p *plan.Plan, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	planHash, err := planHash(p)
	if err != nil {
		return nil, err
	}
	result := &Result{PlanHash: planHash}

	// Stage 1: Layout
	layoutStart := time.Now()
	res, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, p, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = res
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.CabinetCount = len(res.Cabinets)
	result.Stats.GapCount = len(res.Gaps)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"wall", opts.Wall,
		"cabinets", len(res.Cabinets),
		"gaps", len(res.Gaps),
		"success", res.Success,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, p, res, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes a wall layout with caching and
// returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, p *plan.Plan, opts Options) (layout.Result, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Result{}, false, err
	}
	r.applyLogger(&opts)

	wall, ok := p.Walls[opts.Wall]
	if !ok {
		return layout.Result{}, false, errors.New(errors.ErrCodeWallNotFound,
			"plan declares no wall named %q", opts.Wall)
	}

	hash, err := planHash(p)
	if err != nil {
		return layout.Result{}, false, err
	}
	cacheKey := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached layout.Result
			if json.Unmarshal(data, &cached) == nil {
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}

	eng, err := layout.New(wall.Length, layout.WithMinReportableGap(opts.MinGap))
	if err != nil {
		return layout.Result{}, false, err
	}
	res := eng.Layout(p.Run(opts.Wall), opts.StartOffset)

	if data, err := json.Marshal(res); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
	}

	return res, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, p *plan.Plan, opts Options) (layout.Result, error) {
	res, _, err := r.ComputeLayoutWithCacheInfo(ctx, p, opts)
	return res, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, p *plan.Plan, res layout.Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	resData, err := json.Marshal(res)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	cacheKeyHash := cache.Hash(resData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(cacheKeyHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	// Render all formats
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := r.renderFormat(p, res, format, opts)
		if err != nil {
			return nil, false, err
		}
		rendered[format] = data
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(cacheKeyHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, p *plan.Plan, res layout.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, p, res, opts)
	return artifacts, err
}

// renderFormat produces one artifact. JSON and text formats come straight
// from the layout result; the vector formats go through the selected
// visualization.
func (r *Runner) renderFormat(p *plan.Plan, res layout.Result, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(res, "", "  ")
	case FormatText:
		return []byte(text.Render(res,
			text.WithMaxWidth(opts.MaxTextWidth),
			text.WithZoom(opts.Zoom),
			text.WithTitle(opts.Wall),
		)), nil
	}

	svg, err := r.renderSVG(p, res, opts)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatSVG:
		return svg, nil
	case FormatPNG:
		return render.ToPNG(svg, pngZoom)
	case FormatPDF:
		return render.ToPDF(svg)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
}

func (r *Runner) renderSVG(p *plan.Plan, res layout.Result, opts Options) ([]byte, error) {
	if opts.IsNodelink() {
		dot := nodelink.ToDOT(p, nodelink.Options{Detailed: true})
		return nodelink.RenderSVG(dot)
	}
	return floorplan.RenderSVG(res,
		floorplan.WithScale(opts.Scale),
		floorplan.WithTitle(opts.Wall),
		floorplan.WithRow(p.Walls[opts.Wall].Row),
	), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// planHash returns the content hash of the plan's canonical encoding.
func planHash(p *plan.Plan) (string, error) {
	data, err := p.Marshal()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "serialize plan for cache key")
	}
	return cache.Hash(data), nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
