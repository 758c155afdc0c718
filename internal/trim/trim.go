// Package trim detects and strips the fully-transparent border of an
// RGBA image.
package trim

import "image"

// Rect is a plain axis-aligned pixel rectangle, independent of the
// exported texpack.Rect so this package stays free of a root-package
// import cycle.
type Rect struct {
	X, Y, W, H uint32
}

// Compute scans img's edges inward and returns the tight bounding box
// of pixels whose alpha exceeds threshold, alongside the same box
// re-anchored at the origin (the frame geometry a trimmed sprite packs
// as). ok is false when every pixel is at or below threshold, in which
// case src is the full untrimmed image rect.
func Compute(img *image.RGBA, threshold uint8) (frame Rect, src Rect, ok bool) {
	b := img.Bounds()
	w, h := uint32(b.Dx()), uint32(b.Dy())
	full := Rect{X: 0, Y: 0, W: w, H: h}
	if w == 0 || h == 0 {
		return full, full, false
	}

	alphaAt := func(x, y uint32) uint8 {
		return img.RGBAAt(b.Min.X+int(x), b.Min.Y+int(y)).A
	}

	var x1, y1 uint32
	x2, y2 := w-1, h-1

	for x1 < w {
		transparent := true
		for y := uint32(0); y < h; y++ {
			if alphaAt(x1, y) > threshold {
				transparent = false
				break
			}
		}
		if !transparent {
			break
		}
		x1++
	}
	if x1 >= w {
		return full, full, false
	}

	for x2 > x1 {
		transparent := true
		for y := uint32(0); y < h; y++ {
			if alphaAt(x2, y) > threshold {
				transparent = false
				break
			}
		}
		if !transparent {
			break
		}
		x2--
	}

	for y1 < h {
		transparent := true
		for x := x1; x <= x2; x++ {
			if alphaAt(x, y1) > threshold {
				transparent = false
				break
			}
		}
		if !transparent {
			break
		}
		y1++
	}

	for y2 > y1 {
		transparent := true
		for x := x1; x <= x2; x++ {
			if alphaAt(x, y2) > threshold {
				transparent = false
				break
			}
		}
		if !transparent {
			break
		}
		y2--
	}

	tw := x2 - x1 + 1
	th := y2 - y1 + 1
	return Rect{X: 0, Y: 0, W: tw, H: th}, Rect{X: x1, Y: y1, W: tw, H: th}, true
}
