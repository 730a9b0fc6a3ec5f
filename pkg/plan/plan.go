package plan

import (
	"encoding/json"
	"slices"

	"github.com/mfriedel/cabinetry/pkg/errors"
	"github.com/mfriedel/cabinetry/pkg/layout"
)

// =============================================================================
// Plan - Kitchen Plan Model
// =============================================================================

// Wall is one straight wall segment.
type Wall struct {
	// Length is the measured usable length, in inches.
	Length float64 `json:"length" toml:"length"`

	// Expected is the length the segment should have per the source
	// drawings; zero means no expectation. Used by the validate command.
	Expected float64 `json:"expected,omitempty" toml:"expected"`

	// Row selects the cabinet row type for rendering depth: "base"
	// (default) or "wall".
	Row string `json:"row,omitempty" toml:"row"`
}

// Plan is a complete kitchen plan: wall segments keyed by name and, per
// wall, the ordered cabinet run to place along it. Walls without runs are
// legal (doorways, windows); runs must reference declared walls.
type Plan struct {
	Name  string                          `json:"name,omitempty" toml:"name"`
	Walls map[string]Wall                 `json:"walls" toml:"walls"`
	Runs  map[string][]layout.CabinetSpec `json:"runs,omitempty" toml:"runs"`
}

// WallNames returns the declared wall names in sorted order.
func (p *Plan) WallNames() []string {
	names := make([]string, 0, len(p.Walls))
	for name := range p.Walls {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Run returns the cabinet run for a wall, which may be empty.
func (p *Plan) Run(wall string) []layout.CabinetSpec {
	return p.Runs[wall]
}

// Perimeter returns the sum of all wall lengths.
func (p *Plan) Perimeter() float64 {
	var total float64
	for _, w := range p.Walls {
		total += w.Length
	}
	return total
}

// Validate checks the plan's structure: valid wall names, positive
// lengths, and runs that reference declared walls.
func (p *Plan) Validate() error {
	if len(p.Walls) == 0 {
		return errors.New(errors.ErrCodeInvalidPlan, "plan declares no walls")
	}
	for name, w := range p.Walls {
		if err := errors.ValidateWallName(name); err != nil {
			return err
		}
		if w.Length <= 0 {
			return errors.New(errors.ErrCodeInvalidWall, "wall %s: length must be positive, got %g", name, w.Length)
		}
	}
	for name := range p.Runs {
		if _, ok := p.Walls[name]; !ok {
			return errors.New(errors.ErrCodeWallNotFound, "run references undeclared wall: %s", name)
		}
	}
	return nil
}

// Marshal returns the canonical JSON encoding of the plan, used for cache
// keys and the JSON output format. Map keys are sorted by encoding/json,
// so equal plans hash equally.
func (p *Plan) Marshal() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}
