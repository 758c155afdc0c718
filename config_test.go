package texpack

import (
	"errors"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig() should validate, got %v", err)
	}
}

func TestValidateZeroDimensions(t *testing.T) {
	c := DefaultConfig()
	c.MaxWidth = 0
	var dimErr *InvalidDimensionsError
	if err := c.Validate(); !errors.As(err, &dimErr) {
		t.Fatalf("Validate() = %v, want *InvalidDimensionsError", err)
	}
}

func TestValidateBorderConsumesPage(t *testing.T) {
	c := DefaultConfig()
	c.MaxWidth, c.MaxHeight = 10, 10
	c.BorderPadding = 5 // 5*2 == 10, consumes the whole width
	var cfgErr *InvalidConfigError
	if err := c.Validate(); !errors.As(err, &cfgErr) {
		t.Fatalf("Validate() = %v, want *InvalidConfigError", err)
	}
}

func TestValidateUsableAreaOK(t *testing.T) {
	c := DefaultConfig()
	c.MaxWidth, c.MaxHeight = 10, 10
	c.BorderPadding = 4 // usable 2x2, still nonzero
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}
