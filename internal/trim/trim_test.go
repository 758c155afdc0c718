package trim

import (
	"image"
	"image/color"
	"testing"
)

func makeImage(w, h int, paint func(x, y int) color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, paint(x, y))
		}
	}
	return img
}

func TestComputeOpaqueRectSurroundedByTransparent(t *testing.T) {
	// 10x10 canvas, opaque 4x3 block at (3,4).
	img := makeImage(10, 10, func(x, y int) color.RGBA {
		if x >= 3 && x < 7 && y >= 4 && y < 7 {
			return color.RGBA{R: 255, A: 255}
		}
		return color.RGBA{}
	})

	frame, src, ok := Compute(img, 0)
	if !ok {
		t.Fatal("expected ok=true for an image with opaque content")
	}
	wantSrc := Rect{X: 3, Y: 4, W: 4, H: 3}
	if src != wantSrc {
		t.Errorf("src = %+v, want %+v", src, wantSrc)
	}
	wantFrame := Rect{X: 0, Y: 0, W: 4, H: 3}
	if frame != wantFrame {
		t.Errorf("frame = %+v, want %+v", frame, wantFrame)
	}
}

func TestComputeFullyTransparentReturnsNotOK(t *testing.T) {
	img := makeImage(5, 5, func(x, y int) color.RGBA { return color.RGBA{} })
	_, _, ok := Compute(img, 0)
	if ok {
		t.Error("expected ok=false for a fully transparent image")
	}
}

func TestComputeFullyOpaqueReturnsWholeImage(t *testing.T) {
	img := makeImage(6, 4, func(x, y int) color.RGBA { return color.RGBA{A: 255} })
	frame, src, ok := Compute(img, 0)
	if !ok {
		t.Fatal("expected ok=true")
	}
	want := Rect{X: 0, Y: 0, W: 6, H: 4}
	if frame != want || src != want {
		t.Errorf("frame=%+v src=%+v, want both %+v", frame, src, want)
	}
}

func TestComputeThresholdExcludesFaintPixels(t *testing.T) {
	// Single opaque pixel surrounded by alpha=10; threshold=10 should
	// treat the border as transparent too, trimming down to the center.
	img := makeImage(3, 3, func(x, y int) color.RGBA {
		if x == 1 && y == 1 {
			return color.RGBA{A: 255}
		}
		return color.RGBA{A: 10}
	})
	frame, _, ok := Compute(img, 10)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if frame.W != 1 || frame.H != 1 {
		t.Errorf("frame = %+v, want 1x1", frame)
	}
}

func TestComputeZeroSizedImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	_, _, ok := Compute(img, 0)
	if ok {
		t.Error("expected ok=false for a zero-sized image")
	}
}
