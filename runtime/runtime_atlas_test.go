package runtime

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-texpacker/texpack"
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

func atlasConfig() texpack.Config {
	cfg := texpack.DefaultConfig()
	cfg.MaxWidth, cfg.MaxHeight = 128, 128
	cfg.TexturePadding = 0
	cfg.BorderPadding = 0
	cfg.TextureExtrusion = 1
	cfg.Trim = false
	return cfg
}

func TestAppendWithImageBlitsAndReportsRegion(t *testing.T) {
	ra := NewRuntimeAtlas(atlasConfig())
	img := solidImage(16, 16, color.RGBA{R: 200, A: 255})

	frame, region, err := ra.AppendWithImage("sprite", img, 0, false)
	if err != nil {
		t.Fatalf("AppendWithImage: %v", err)
	}
	if region.Empty() {
		t.Fatal("expected non-empty update region")
	}
	page, ok := ra.GetPageImage(0)
	if !ok {
		t.Fatal("expected page 0 to exist")
	}
	got := page.RGBAAt(int(frame.Frame.X), int(frame.Frame.Y))
	if got.R != 200 {
		t.Errorf("blitted pixel = %+v, want R=200", got)
	}
}

func TestEvictWithClearResetsToBackground(t *testing.T) {
	cfg := atlasConfig()
	bg := color.RGBA{R: 1, G: 2, B: 3, A: 4}
	ra := NewRuntimeAtlas(cfg).WithBackgroundColor(bg)

	img := solidImage(10, 10, color.RGBA{R: 255, A: 255})
	frame, _, err := ra.AppendWithImage("a", img, 0, false)
	if err != nil {
		t.Fatalf("AppendWithImage: %v", err)
	}

	region, ok := ra.EvictWithClear("a")
	if !ok {
		t.Fatal("EvictWithClear reported not-found")
	}
	page, _ := ra.GetPageImage(region.PageID)
	for y := 0; y < int(region.Rect.H); y++ {
		for x := 0; x < int(region.Rect.W); x++ {
			px := int(region.Rect.X) + x
			py := int(region.Rect.Y) + y
			got := page.RGBAAt(px, py)
			if got != bg {
				t.Fatalf("pixel (%d,%d) = %+v after clear, want background %+v", px, py, got, bg)
			}
		}
	}
	if ra.Contains("a") {
		t.Error("session should no longer contain evicted key")
	}
	_ = frame
}

func TestAppendGeometryOnlyNoImage(t *testing.T) {
	ra := NewRuntimeAtlas(atlasConfig())
	frame, err := ra.Append("reserved", 20, 15)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if frame.Frame.W != 20 || frame.Frame.H != 15 {
		t.Errorf("frame = %+v, want 20x15", frame.Frame)
	}
	if ra.NumPages() != 0 {
		t.Errorf("NumPages() = %d, want 0 (no pixels blitted yet)", ra.NumPages())
	}
}
