package layout

// =============================================================================
// Constants
// =============================================================================

// KindGap is the sentinel kind marking a deliberate empty span. Specs with
// this kind advance the cursor without producing a positioned cabinet.
const KindGap = "gap"

// KindDefault is assumed when a spec does not declare a kind.
const KindDefault = "cabinet"

// WallEndMarker labels the far side of a trailing gap.
const WallEndMarker = "wall end"

// =============================================================================
// CabinetSpec - Engine Input
// =============================================================================

// CabinetSpec describes one entry in a cabinet run. Width and Position are
// pointers so that "absent" is distinguishable from zero: a missing width is
// a structural error, a missing position means "place at the cursor".
// Extra carries plan fields the engine does not interpret (depth, hardware,
// notes); they travel through to the positioned output for renderers.
type CabinetSpec struct {
	Kind     string         `json:"kind,omitempty" toml:"kind"`
	Width    *float64       `json:"width,omitempty" toml:"width"`
	Position *float64       `json:"position,omitempty" toml:"position"`
	Extra    map[string]any `json:"extra,omitempty" toml:"extra"`
}

// kind returns the spec's kind, defaulting to KindDefault.
func (s CabinetSpec) kind() string {
	if s.Kind == "" {
		return KindDefault
	}
	return s.Kind
}

// IsGap reports whether the spec is a deliberate-gap sentinel.
func (s CabinetSpec) IsGap() bool { return s.kind() == KindGap }

// Spec constructs a placeable spec with the given kind and width.
func Spec(kind string, width float64) CabinetSpec {
	return CabinetSpec{Kind: kind, Width: &width}
}

// SpecAt constructs a spec with an explicit absolute position.
func SpecAt(kind string, width, position float64) CabinetSpec {
	return CabinetSpec{Kind: kind, Width: &width, Position: &position}
}

// GapSpec constructs a deliberate-gap sentinel of the given width.
func GapSpec(width float64) CabinetSpec {
	return CabinetSpec{Kind: KindGap, Width: &width}
}

// =============================================================================
// PositionedCabinet - Engine Output
// =============================================================================

// PositionedCabinet is a cabinet with its computed position along the wall.
// Spec retains the original input entry for renderers that need fields the
// engine ignores. Values are immutable once the Result is returned.
type PositionedCabinet struct {
	Kind     string      `json:"kind"`
	Width    float64     `json:"width"`
	Position float64     `json:"position"`
	Spec     CabinetSpec `json:"spec"`
}

// End returns the far edge of the cabinet (position + width).
func (c PositionedCabinet) End() float64 { return c.Position + c.Width }

// =============================================================================
// Gap - Unused Wall Span
// =============================================================================

// Gap is an unused span of wall, either between two cabinets whose explicit
// positions leave space or between the last cabinet and the wall end.
// Before and After name the neighbors; After is WallEndMarker for trailing
// gaps.
type Gap struct {
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Width  float64 `json:"width"`
	Before string  `json:"before,omitempty"`
	After  string  `json:"after,omitempty"`
}

// =============================================================================
// Result - Layout Outcome
// =============================================================================

// Result is the complete outcome of one layout pass: positioned cabinets,
// detected gaps, and accumulated diagnostics in detection order. Success is
// true iff no errors were recorded; warnings do not affect it.
type Result struct {
	Cabinets   []PositionedCabinet `json:"cabinets"`
	Gaps       []Gap               `json:"gaps,omitempty"`
	TotalWidth float64             `json:"total_width"`
	WallLength float64             `json:"wall_length"`
	Success    bool                `json:"success"`
	Errors     []string            `json:"errors,omitempty"`
	Warnings   []string            `json:"warnings,omitempty"`
}

// HasIssues reports whether the result carries any errors or warnings.
func (r *Result) HasIssues() bool {
	return len(r.Errors) > 0 || len(r.Warnings) > 0
}
