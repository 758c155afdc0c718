package runtime

import (
	"sort"

	"github.com/go-texpacker/texpack"
)

// shelfSegment is a free horizontal span (x, w) along a shelf's row.
type shelfSegment struct {
	x, w uint32
}

type shelf struct {
	y, h uint32
	segs []shelfSegment
}

// shelfMode packs rows ("shelves") left to right, opening a new shelf
// for an item that doesn't fit an existing row; the new shelf takes
// that item's height.
type shelfMode struct {
	border  texpack.Rect
	policy  texpack.ShelfPolicy
	shelves []*shelf
	nextY   uint32
}

func newShelfMode(border texpack.Rect, policy texpack.ShelfPolicy) *shelfMode {
	return &shelfMode{border: border, policy: policy, nextY: border.Y}
}

func (m *shelfMode) tryIn(rw, rh uint32) (texpack.Rect, bool) {
	switch m.policy {
	case texpack.ShelfFirstFit:
		for _, sh := range m.shelves {
			if rh > sh.h {
				continue
			}
			for _, seg := range sh.segs {
				if seg.w >= rw && seg.x+rw <= m.border.X+m.border.W {
					return texpack.NewRect(seg.x, sh.y, rw, rh), true
				}
			}
		}
	default: // ShelfNextFit
		if n := len(m.shelves); n > 0 {
			sh := m.shelves[n-1]
			if rh <= sh.h {
				for _, seg := range sh.segs {
					if seg.w >= rw && seg.x+rw <= m.border.X+m.border.W {
						return texpack.NewRect(seg.x, sh.y, rw, rh), true
					}
				}
			}
		}
	}
	return texpack.Rect{}, false
}

func (m *shelfMode) tryNew(rw, rh uint32) (texpack.Rect, bool) {
	if rw <= m.border.W && m.nextY+rh <= m.border.Y+m.border.H {
		return texpack.NewRect(m.border.X, m.nextY, rw, rh), true
	}
	return texpack.Rect{}, false
}

func (m *shelfMode) choose(w, h uint32, allowRotation bool) (texpack.Rect, bool, bool) {
	if r, ok := m.tryIn(w, h); ok {
		return r, false, true
	}
	if allowRotation {
		if r, ok := m.tryIn(h, w); ok {
			return r, true, true
		}
	}
	if r, ok := m.tryNew(w, h); ok {
		return r, false, true
	}
	if allowRotation {
		if r, ok := m.tryNew(h, w); ok {
			return r, true, true
		}
	}
	return texpack.Rect{}, false, false
}

func (m *shelfMode) place(slot texpack.Rect, _ bool) {
	for _, sh := range m.shelves {
		if sh.y == slot.Y && sh.h >= slot.H {
			consumeFromShelf(sh, slot, m.border)
			return
		}
	}
	sh := &shelf{y: slot.Y, h: slot.H, segs: []shelfSegment{{x: m.border.X, w: m.border.W}}}
	consumeFromShelf(sh, slot, m.border)
	m.shelves = append(m.shelves, sh)
	m.nextY = maxU32(m.nextY, slot.Y+slot.H)
}

func (m *shelfMode) addFree(r texpack.Rect) {
	for _, sh := range m.shelves {
		if sh.y == r.Y && sh.h == r.H {
			sh.segs = append(sh.segs, shelfSegment{x: r.X, w: r.W})
			mergeShelfSegments(sh)
			return
		}
	}
	m.shelves = append(m.shelves, &shelf{y: r.Y, h: r.H, segs: []shelfSegment{{x: r.X, w: r.W}}})
}

func consumeFromShelf(sh *shelf, slot, border texpack.Rect) {
	for i, seg := range sh.segs {
		if slot.X >= seg.x && slot.X+slot.W <= seg.x+seg.w {
			sh.segs = append(sh.segs[:i], sh.segs[i+1:]...)
			leftW := satSub(slot.X, seg.x)
			rightX := slot.X + slot.W
			rightW := satSub(seg.x+seg.w, rightX)
			if leftW > 0 {
				sh.segs = append(sh.segs, shelfSegment{x: seg.x, w: leftW})
			}
			if rightW > 0 {
				sh.segs = append(sh.segs, shelfSegment{x: rightX, w: rightW})
			}
			break
		}
	}
	mergeShelfSegments(sh)
	kept := sh.segs[:0]
	for _, seg := range sh.segs {
		if seg.w > 0 && seg.x >= border.X && seg.x+seg.w <= border.X+border.W {
			kept = append(kept, seg)
		}
	}
	sh.segs = kept
}

func mergeShelfSegments(sh *shelf) {
	sort.Slice(sh.segs, func(i, j int) bool { return sh.segs[i].x < sh.segs[j].x })
	out := sh.segs[:0:0]
	for _, seg := range sh.segs {
		if n := len(out); n > 0 && out[n-1].x+out[n-1].w == seg.x {
			out[n-1].w += seg.w
			continue
		}
		out = append(out, seg)
	}
	sh.segs = out
}
