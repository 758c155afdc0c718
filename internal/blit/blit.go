// Package blit composites sprite pixels onto atlas pages: copying a
// source rectangle (optionally rotated 90° clockwise), extruding its
// edges outward for sampling safety, and drawing debug outlines.
package blit

import (
	"image"
	"image/color"
)

// RGBA copies the sx,sy,sw,sh sub-rectangle of src into canvas at
// dx,dy, optionally rotating it 90° clockwise, then extrudes the
// blitted content's edges outward by extrude pixels and optionally
// paints a 1px red debug outline around it. Destination writes that
// fall outside canvas's bounds are silently dropped, mirroring the
// bounds guards a page compositor needs when a frame sits flush
// against a page edge.
func RGBA(src *image.RGBA, canvas *image.RGBA, dx, dy, sx, sy, sw, sh uint32, rotated bool, extrude uint32, outlines bool) {
	cb := canvas.Bounds()
	cw, ch := uint32(cb.Dx()), uint32(cb.Dy())

	rw, rh := sw, sh
	if rotated {
		rw, rh = sh, sw
	}

	get := func(x, y uint32) [4]uint8 {
		c := src.RGBAAt(src.Bounds().Min.X+int(x), src.Bounds().Min.Y+int(y))
		return [4]uint8{c.R, c.G, c.B, c.A}
	}
	put := func(x, y uint32, c [4]uint8) {
		canvas.SetRGBA(cb.Min.X+int(x), cb.Min.Y+int(y), color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]})
	}
	getCanvas := func(x, y uint32) [4]uint8 {
		c := canvas.RGBAAt(cb.Min.X+int(x), cb.Min.Y+int(y))
		return [4]uint8{c.R, c.G, c.B, c.A}
	}

	for yy := uint32(0); yy < rh; yy++ {
		for xx := uint32(0); xx < rw; xx++ {
			var ix, iy uint32
			if rotated {
				ix, iy = sx+yy, sy+(sh-1-xx)
			} else {
				ix, iy = sx+xx, sy+yy
			}
			if dx+xx < cw && dy+yy < ch {
				put(dx+xx, dy+yy, get(ix, iy))
			}
		}
	}

	if outlines {
		red := [4]uint8{255, 0, 0, 255}
		for xx := uint32(0); xx < rw; xx++ {
			if dx+xx < cw && dy < ch {
				put(dx+xx, dy, red)
			}
			by := dy + satSub(rh, 1)
			if dx+xx < cw && by < ch {
				put(dx+xx, by, red)
			}
		}
		for yy := uint32(0); yy < rh; yy++ {
			if dx < cw && dy+yy < ch {
				put(dx, dy+yy, red)
			}
			rx := dx + satSub(rw, 1)
			if rx < cw && dy+yy < ch {
				put(rx, dy+yy, red)
			}
		}
	}

	if extrude == 0 {
		return
	}

	for e := uint32(1); e <= extrude; e++ {
		if dy >= e && dy < ch {
			for xx := uint32(0); xx < rw; xx++ {
				if dx+xx < cw {
					put(dx+xx, dy-e, getCanvas(dx+xx, dy))
				}
			}
		}
		if dy+rh-1 < ch && dy+rh-1+e < ch {
			for xx := uint32(0); xx < rw; xx++ {
				if dx+xx < cw {
					put(dx+xx, dy+rh-1+e, getCanvas(dx+xx, dy+rh-1))
				}
			}
		}
		if dx >= e && dx < cw {
			for yy := uint32(0); yy < rh; yy++ {
				if dy+yy < ch {
					put(dx-e, dy+yy, getCanvas(dx, dy+yy))
				}
			}
		}
		if dx+rw-1 < cw && dx+rw-1+e < cw {
			for yy := uint32(0); yy < rh; yy++ {
				if dy+yy < ch {
					put(dx+rw-1+e, dy+yy, getCanvas(dx+rw-1, dy+yy))
				}
			}
		}
	}

	var zero [4]uint8
	corner := func(ok bool, x, y uint32) [4]uint8 {
		if !ok {
			return zero
		}
		return getCanvas(x, y)
	}
	c00 := corner(dx < cw && dy < ch, dx, dy)
	c10 := corner(dx+rw > 0 && dx+rw-1 < cw && dy < ch, dx+rw-1, dy)
	c01 := corner(dx < cw && dy+rh > 0 && dy+rh-1 < ch, dx, dy+rh-1)
	c11 := corner(dx+rw > 0 && dx+rw-1 < cw && dy+rh > 0 && dy+rh-1 < ch, dx+rw-1, dy+rh-1)

	if dx >= 1 && dy >= 1 {
		for ex := uint32(1); ex <= extrude; ex++ {
			for ey := uint32(1); ey <= extrude; ey++ {
				if dx >= ex && dy >= ey {
					put(dx-ex, dy-ey, c00)
				}
			}
		}
	}
	if dy >= 1 && dx+rw-1 < cw {
		for ex := uint32(1); ex <= extrude; ex++ {
			for ey := uint32(1); ey <= extrude; ey++ {
				if dy >= ey && dx+rw-1+ex < cw {
					put(dx+rw-1+ex, dy-ey, c10)
				}
			}
		}
	}
	if dx >= 1 && dy+rh-1 < ch {
		for ex := uint32(1); ex <= extrude; ex++ {
			for ey := uint32(1); ey <= extrude; ey++ {
				if dx >= ex && dy+rh-1+ey < ch {
					put(dx-ex, dy+rh-1+ey, c01)
				}
			}
		}
	}
	if dx+rw-1 < cw && dy+rh-1 < ch {
		for ex := uint32(1); ex <= extrude; ex++ {
			for ey := uint32(1); ey <= extrude; ey++ {
				if dx+rw-1+ex < cw && dy+rh-1+ey < ch {
					put(dx+rw-1+ex, dy+rh-1+ey, c11)
				}
			}
		}
	}
}

func satSub(a, b uint32) uint32 {
	if a < b {
		return 0
	}
	return a - b
}
