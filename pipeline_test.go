package texpack

import (
	"image"
	"image/color"
	"testing"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func opaque() color.RGBA { return color.RGBA{R: 255, G: 128, B: 64, A: 255} }

func TestPackSingleOpaqueSpriteAtOrigin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trim = false
	cfg.TexturePadding = 0
	cfg.AllowRotation = false

	inputs := []InputImage{{Key: "sprite", Image: solidImage(32, 32, opaque())}}
	out, err := Pack(inputs, cfg)
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	if len(out.Atlas.Pages) != 1 {
		t.Fatalf("NumPages = %d, want 1", len(out.Atlas.Pages))
	}
	page := out.Atlas.Pages[0]
	if len(page.Frames) != 1 {
		t.Fatalf("NumFrames = %d, want 1", len(page.Frames))
	}
	f := page.Frames[0]
	want := NewRect(0, 0, 32, 32)
	if f.Frame != want {
		t.Errorf("frame = %+v, want %+v", f.Frame, want)
	}
	if len(out.Pages) != 1 || out.Pages[0].RGBA == nil {
		t.Fatalf("expected one composited output page")
	}
}

func TestPackLayoutMultiPageSpill(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxWidth, cfg.MaxHeight = 64, 64
	cfg.TexturePadding = 0
	cfg.BorderPadding = 0
	cfg.AllowRotation = false

	items := []LayoutItem{
		{Key: "a", W: 64, H: 64},
		{Key: "b", W: 64, H: 64},
	}
	atlas, err := PackLayout(items, cfg)
	if err != nil {
		t.Fatalf("PackLayout() error: %v", err)
	}
	if len(atlas.Pages) != 2 {
		t.Fatalf("NumPages = %d, want 2 (one sprite per page)", len(atlas.Pages))
	}
	for _, p := range atlas.Pages {
		if len(p.Frames) != 1 {
			t.Errorf("page %d has %d frames, want 1", p.ID, len(p.Frames))
		}
	}
}

func TestPackLayoutPowerOfTwoAndSquare(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PowerOfTwo = true
	cfg.Square = true
	cfg.TexturePadding = 0
	cfg.BorderPadding = 0
	cfg.AllowRotation = false
	cfg.MaxWidth, cfg.MaxHeight = 256, 256

	items := []LayoutItem{{Key: "a", W: 48, H: 20}}
	atlas, err := PackLayout(items, cfg)
	if err != nil {
		t.Fatalf("PackLayout() error: %v", err)
	}
	page := atlas.Pages[0]
	if page.Width != page.Height {
		t.Fatalf("page = %dx%d, want square", page.Width, page.Height)
	}
	if page.Width&(page.Width-1) != 0 {
		t.Errorf("page width %d is not a power of two", page.Width)
	}
}

func TestPackLayoutForceMaxDimensions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ForceMaxDimensions = true
	cfg.MaxWidth, cfg.MaxHeight = 512, 512
	cfg.TexturePadding = 0
	cfg.BorderPadding = 0
	cfg.AllowRotation = false

	items := []LayoutItem{{Key: "a", W: 10, H: 10}}
	atlas, err := PackLayout(items, cfg)
	if err != nil {
		t.Fatalf("PackLayout() error: %v", err)
	}
	page := atlas.Pages[0]
	if page.Width != 512 || page.Height != 512 {
		t.Errorf("page = %dx%d, want forced 512x512", page.Width, page.Height)
	}
}

func TestPackEmptyInputsReturnsErrEmpty(t *testing.T) {
	if _, err := Pack(nil, DefaultConfig()); err != ErrEmpty {
		t.Errorf("Pack(nil) error = %v, want ErrEmpty", err)
	}
	if _, err := PackLayout(nil, DefaultConfig()); err != ErrEmpty {
		t.Errorf("PackLayout(nil) error = %v, want ErrEmpty", err)
	}
}

func TestPackInvalidConfigPropagates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxWidth = 0
	_, err := Pack([]InputImage{{Key: "a", Image: solidImage(1, 1, opaque())}}, cfg)
	if err == nil {
		t.Fatal("expected Validate() error to propagate")
	}
}

func TestPackLayoutRotationUnlocksFit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxWidth, cfg.MaxHeight = 20, 40
	cfg.TexturePadding = 0
	cfg.BorderPadding = 0
	cfg.AllowRotation = true

	// 30x15 doesn't fit a 20-wide page unrotated but does at 15x30.
	items := []LayoutItem{{Key: "a", W: 30, H: 15}}
	atlas, err := PackLayout(items, cfg)
	if err != nil {
		t.Fatalf("PackLayout() error: %v", err)
	}
	if len(atlas.Pages) != 1 {
		t.Fatalf("NumPages = %d, want 1", len(atlas.Pages))
	}
	f := atlas.Pages[0].Frames[0]
	if !f.Rotated {
		t.Error("expected the sprite to rotate to fit")
	}
}

func TestSortPreparedNameAscStableOnTies(t *testing.T) {
	items := []prepItem{
		{key: "b", rect: Rect{W: 10, H: 10}},
		{key: "a", rect: Rect{W: 10, H: 10}},
		{key: "c", rect: Rect{W: 10, H: 10}},
	}
	sortPrepared(items, SortNameAsc)
	got := []string{items[0].key, items[1].key, items[2].key}
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted keys = %v, want %v", got, want)
		}
	}
}

func TestSortPreparedAreaDescSecondaryKeyAscending(t *testing.T) {
	items := []prepItem{
		{key: "z", rect: Rect{W: 10, H: 10}}, // area 100
		{key: "a", rect: Rect{W: 10, H: 10}}, // area 100, tie -> ascending key first
		{key: "m", rect: Rect{W: 20, H: 20}}, // area 400, largest first
	}
	sortPrepared(items, SortAreaDesc)
	if items[0].key != "m" {
		t.Fatalf("items[0].key = %q, want %q (largest area first)", items[0].key, "m")
	}
	if items[1].key != "a" || items[2].key != "z" {
		t.Errorf("tie-break order = %q, %q, want ascending key a, z", items[1].key, items[2].key)
	}
}
