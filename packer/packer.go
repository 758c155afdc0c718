// Package packer implements the Skyline, MaxRects, and Guillotine
// placement strategies used by an offline pack. The runtime session
// keeps its own page modes and does not use this package.
package packer

import "github.com/go-texpacker/texpack"

// Strategy places rectangles one at a time onto a single fixed-size
// page. Implementations are not safe for concurrent use; callers run
// one Strategy per page.
type Strategy interface {
	// CanPack reports whether rect (plus the strategy's configured
	// padding/extrusion) could be placed without actually placing it.
	CanPack(rect texpack.Rect) bool
	// Pack places rect, returning the resulting Frame and true, or
	// false if no free space fits it (including its rotation, when
	// AllowRotation is set).
	Pack(key string, rect texpack.Rect) (texpack.Frame, bool)
}

// New builds a Strategy for the given family against a page of
// cfg.MaxWidth x cfg.MaxHeight.
func New(cfg texpack.Config) Strategy {
	switch cfg.Family {
	case texpack.FamilyMaxRects:
		return NewMaxRects(cfg)
	case texpack.FamilyGuillotine:
		return NewGuillotine(cfg)
	default:
		return NewSkyline(cfg)
	}
}

func contentDims(rect texpack.Rect, rotated bool) (uint32, uint32) {
	if rotated {
		return rect.H, rect.W
	}
	return rect.W, rect.H
}

func satSub(a, b uint32) uint32 {
	if a < b {
		return 0
	}
	return a - b
}

func satAdd(a, b uint32) uint32 {
	s := a + b
	if s < a {
		return ^uint32(0)
	}
	return s
}

func satMul(a, b uint32) uint32 {
	if a == 0 || b == 0 {
		return 0
	}
	r := a * b
	if r/a != b {
		return ^uint32(0)
	}
	return r
}

func rectsIntersect(a, b texpack.Rect) bool {
	ax2, ay2 := a.X+a.W, a.Y+a.H
	bx2, by2 := b.X+b.W, b.Y+b.H
	return !(a.X >= bx2 || b.X >= ax2 || a.Y >= by2 || b.Y >= ay2)
}
