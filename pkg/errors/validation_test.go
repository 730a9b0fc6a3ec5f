package errors

import (
	"strings"
	"testing"
)

func TestValidateWallName(t *testing.T) {
	tests := []struct {
		name    string
		wall    string
		wantErr bool
	}{
		{"segment id", "N1", false},
		{"lowercase", "island", false},
		{"with dash", "pantry-wall", false},
		{"empty", "", true},
		{"starts with digit", "1N", true},
		{"contains space", "north wall", true},
		{"contains slash", "N/1", true},
		{"control character", "N1\x00", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWallName(tt.wall)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWallName(%q) error = %v, wantErr %v", tt.wall, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	if err := ValidateOutputPath("out/kitchen.svg"); err != nil {
		t.Errorf("valid path rejected: %v", err)
	}
	if err := ValidateOutputPath(""); err == nil {
		t.Error("empty path accepted")
	}
	if err := ValidateOutputPath("out\x00.svg"); err == nil {
		t.Error("null byte accepted")
	}
	if err := ValidateOutputPath(strings.Repeat("a", 501)); err == nil {
		t.Error("overlong path accepted")
	}
}

func TestValidatePlanFilename(t *testing.T) {
	if err := ValidatePlanFilename("kitchen.toml"); err != nil {
		t.Errorf("valid filename rejected: %v", err)
	}
	if err := ValidatePlanFilename("dir/kitchen.toml"); err == nil {
		t.Error("path separator accepted")
	}
	if err := ValidatePlanFilename(".kitchen"); err == nil {
		t.Error("hidden file accepted")
	}
}

func TestValidateScale(t *testing.T) {
	for _, s := range []float64{0.1, 1, 2, 100} {
		if err := ValidateScale(s); err != nil {
			t.Errorf("ValidateScale(%g) = %v, want nil", s, err)
		}
	}
	for _, s := range []float64{0, -2, 101} {
		if err := ValidateScale(s); err == nil {
			t.Errorf("ValidateScale(%g) = nil, want error", s)
		}
	}
}
