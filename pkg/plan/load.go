package plan

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mfriedel/cabinetry/pkg/errors"
)

// Load reads and validates a plan file. The format is chosen by extension:
// .toml or .json.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "plan file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPlan, err, "read %s", path)
	}

	var p Plan
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPlan, err, "parse %s", path)
		}
	case ".json":
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPlan, err, "parse %s", path)
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported plan format %q (use .toml or .json)", ext)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
