package ebitenatlas

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-texpacker/texpack"
)

func solidRGBA(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestFromPackOutputBuildsRegions(t *testing.T) {
	out := texpack.PackOutput{
		Atlas: texpack.Atlas{},
		Pages: []texpack.OutputPage{
			{
				Page: texpack.Page{
					ID: 0, Width: 64, Height: 64,
					Frames: []texpack.Frame{
						{
							Key:        "hero.png",
							Frame:      texpack.NewRect(0, 0, 32, 32),
							SourceSize: [2]uint32{32, 32},
						},
						{
							Key:        "rot.png",
							Frame:      texpack.NewRect(32, 0, 16, 24),
							Rotated:    true,
							Source:     texpack.NewRect(0, 0, 24, 16),
							SourceSize: [2]uint32{24, 16},
						},
					},
				},
				RGBA: solidRGBA(64, 64, color.RGBA{R: 10, G: 20, B: 30, A: 255}),
			},
		},
	}

	atlas := FromPackOutput(out)
	if len(atlas.Pages) != 1 {
		t.Fatalf("len(Pages) = %d, want 1", len(atlas.Pages))
	}
	if !atlas.Has("hero.png") || !atlas.Has("rot.png") {
		t.Fatal("expected both regions present")
	}

	hero := atlas.Region("hero.png")
	if hero.Page != 0 || hero.Width != 32 || hero.Height != 32 {
		t.Errorf("hero region = %+v, want page 0, 32x32", hero)
	}

	rot := atlas.Region("rot.png")
	if !rot.Rotated || rot.X != 32 || rot.Width != 16 || rot.Height != 24 {
		t.Errorf("rot region = %+v", rot)
	}
}

func TestRegionUnknownReturnsPlaceholder(t *testing.T) {
	atlas := FromPackOutput(texpack.PackOutput{})
	r := atlas.Region("missing.png")
	if r.Width != 1 || r.Height != 1 {
		t.Errorf("placeholder = %+v, want 1x1", r)
	}
}

func TestLiveSyncAndPage(t *testing.T) {
	var live Live
	if live.Page(0) != nil {
		t.Fatal("Page(0) should be nil before any Sync")
	}
	live.Sync(2, solidRGBA(8, 8, color.RGBA{A: 255}))
	if live.NumPages() != 3 {
		t.Fatalf("NumPages() = %d, want 3", live.NumPages())
	}
	if live.Page(2) == nil {
		t.Fatal("Page(2) should be non-nil after Sync")
	}
	if live.Page(0) != nil {
		t.Error("Page(0) should remain nil; only page 2 was synced")
	}
}
