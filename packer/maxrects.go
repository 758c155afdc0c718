package packer

import "github.com/go-texpacker/texpack"

// MaxRects packs against a maintained list of free rectangles (which
// may overlap once MRReference splits are in use), choosing the best-scoring candidate under the
// configured heuristic for every placement.
type MaxRects struct {
	cfg    texpack.Config
	border texpack.Rect
	free   []texpack.Rect
	used   []texpack.Rect
}

// NewMaxRects builds a MaxRects strategy for a page of
// cfg.MaxWidth x cfg.MaxHeight.
func NewMaxRects(cfg texpack.Config) *MaxRects {
	pad := cfg.BorderPadding
	w := satSub(cfg.MaxWidth, pad*2)
	h := satSub(cfg.MaxHeight, pad*2)
	border := texpack.NewRect(pad, pad, w, h)
	return &MaxRects{cfg: cfg, border: border, free: []texpack.Rect{border}}
}

func rectRightEx(r texpack.Rect) uint32  { return r.X + r.W }
func rectBottomEx(r texpack.Rect) uint32 { return r.Y + r.H }

func (p *MaxRects) placeRect(node texpack.Rect) {
	if p.cfg.MRReference {
		p.placeRectRef(node)
		return
	}
	newFree := make([]texpack.Rect, 0, len(p.free))
	for _, fr := range p.free {
		if !rectsIntersect(fr, node) {
			newFree = append(newFree, fr)
			continue
		}
		frX2, frY2 := fr.X+fr.W, fr.Y+fr.H
		nX2, nY2 := node.X+node.W, node.Y+node.H

		ix1, iy1 := maxU32(fr.X, node.X), maxU32(fr.Y, node.Y)
		ix2, iy2 := minU32(frX2, nX2), minU32(frY2, nY2)

		if iy1 > fr.Y {
			newFree = append(newFree, texpack.NewRect(fr.X, fr.Y, fr.W, iy1-fr.Y))
		}
		if iy2 < frY2 {
			newFree = append(newFree, texpack.NewRect(fr.X, iy2, fr.W, frY2-iy2))
		}
		if ix1 > fr.X {
			h := satSub(iy2, iy1)
			if h > 0 {
				newFree = append(newFree, texpack.NewRect(fr.X, iy1, ix1-fr.X, h))
			}
		}
		if ix2 < frX2 {
			h := satSub(iy2, iy1)
			if h > 0 {
				newFree = append(newFree, texpack.NewRect(ix2, iy1, frX2-ix2, h))
			}
		}
	}
	p.free = newFree
	p.pruneFreeList()
	p.used = append(p.used, node)
}

func (p *MaxRects) placeRectRef(node texpack.Rect) {
	var newFree []texpack.Rect
	i := 0
	for i < len(p.free) {
		fr := p.free[i]
		if rectsIntersect(fr, node) {
			p.free[i] = p.free[len(p.free)-1]
			p.free = p.free[:len(p.free)-1]
			newFree = p.splitFreeNodeRef(fr, node, newFree)
		} else {
			i++
		}
	}
	newFree = p.pruneNewVsOld(newFree)
	newFree = p.pruneWithin(newFree)
	p.free = append(p.free, newFree...)
	p.pruneFreeList()
	p.used = append(p.used, node)
}

func (p *MaxRects) splitFreeNodeRef(fr, node texpack.Rect, out []texpack.Rect) []texpack.Rect {
	frX2, frY2 := fr.X+fr.W, fr.Y+fr.H
	nX2, nY2 := node.X+node.W, node.Y+node.H

	if node.X > fr.X && node.X < frX2 {
		out = append(out, texpack.NewRect(fr.X, fr.Y, node.X-fr.X, fr.H))
	}
	if nX2 < frX2 {
		out = append(out, texpack.NewRect(nX2, fr.Y, frX2-nX2, fr.H))
	}
	if node.Y > fr.Y && node.Y < frY2 {
		out = append(out, texpack.NewRect(fr.X, fr.Y, fr.W, node.Y-fr.Y))
	}
	if nY2 < frY2 {
		out = append(out, texpack.NewRect(fr.X, nY2, fr.W, frY2-nY2))
	}
	return out
}

func (p *MaxRects) pruneNewVsOld(newFree []texpack.Rect) []texpack.Rect {
	kept := newFree[:0:0]
	for _, nr := range newFree {
		if nr.W == 0 || nr.H == 0 {
			continue
		}
		contained := false
		for _, of := range p.free {
			if of.Contains(nr) {
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, nr)
		}
	}
	i := 0
	for i < len(p.free) {
		removed := false
		for _, nr := range kept {
			if nr.Contains(p.free[i]) {
				p.free[i] = p.free[len(p.free)-1]
				p.free = p.free[:len(p.free)-1]
				removed = true
				break
			}
		}
		if !removed {
			i++
		}
	}
	return kept
}

func (p *MaxRects) pruneWithin(v []texpack.Rect) []texpack.Rect {
	i := 0
	for i < len(v) {
		a := v[i]
		aX2, aY2 := a.X+a.W, a.Y+a.H
		removeI := false
		for j := 0; j < len(v); j++ {
			if i == j {
				continue
			}
			b := v[j]
			bX2, bY2 := b.X+b.W, b.Y+b.H
			if a.X >= b.X && a.Y >= b.Y && aX2 <= bX2 && aY2 <= bY2 {
				removeI = true
				break
			}
		}
		if removeI {
			v[i] = v[len(v)-1]
			v = v[:len(v)-1]
		} else {
			i++
		}
	}
	return v
}

func (p *MaxRects) pruneFreeList() {
	i := 0
	for i < len(p.free) {
		j := i + 1
		a := p.free[i]
		aRight, aBottom := rectRightEx(a), rectBottomEx(a)
		removeI := false
		for j < len(p.free) {
			b := p.free[j]
			bRight, bBottom := rectRightEx(b), rectBottomEx(b)
			if a.X >= b.X && a.Y >= b.Y && aRight <= bRight && aBottom <= bBottom {
				removeI = true
				break
			}
			if b.X >= a.X && b.Y >= a.Y && bRight <= aRight && bBottom <= aBottom {
				p.free = append(p.free[:j], p.free[j+1:]...)
				continue
			}
			j++
		}
		if removeI {
			p.free = append(p.free[:i], p.free[i+1:]...)
		} else {
			i++
		}
	}
}

func (p *MaxRects) score(fr texpack.Rect, w, h uint32) (int64, int64) {
	leftoverH := int64(fr.W) - int64(w)
	leftoverV := int64(fr.H) - int64(h)
	shortFit := minI64(absI64(leftoverH), absI64(leftoverV))
	longFit := maxI64(absI64(leftoverH), absI64(leftoverV))
	areaFit := int64(fr.W)*int64(fr.H) - int64(w)*int64(h)
	switch p.cfg.MRHeuristic {
	case texpack.MRBestAreaFit:
		return areaFit, shortFit
	case texpack.MRBestShortSideFit:
		return shortFit, longFit
	case texpack.MRBestLongSideFit:
		return longFit, shortFit
	case texpack.MRBottomLeft:
		return int64(fr.Y), int64(fr.X)
	default: // MRContactPoint
		contact := p.contactPointScore(fr.X, fr.Y, w, h)
		return -int64(contact), areaFit
	}
}

func (p *MaxRects) findPosition(w, h uint32) (texpack.Rect, bool, bool) {
	bestS1, bestS2 := int64(1<<62), int64(1<<62)
	var bestRect texpack.Rect
	bestRot := false
	bestTop := ^uint32(0)
	bestLeft := ^uint32(0)

	for _, fr := range p.free {
		if fr.W >= w && fr.H >= h {
			s1, s2 := p.score(fr, w, h)
			top := satAdd(fr.Y, h)
			if s1 < bestS1 || (s1 == bestS1 && (s2 < bestS2 || (s2 == bestS2 && (top < bestTop || (top == bestTop && fr.X < bestLeft))))) {
				bestS1, bestS2 = s1, s2
				bestTop, bestLeft = top, fr.X
				bestRect = texpack.NewRect(fr.X, fr.Y, w, h)
				bestRot = false
			}
			if fr.W == w && fr.H == h {
				return texpack.NewRect(fr.X, fr.Y, w, h), false, true
			}
		}
		if p.cfg.AllowRotation && fr.W >= h && fr.H >= w {
			s1, s2 := p.score(fr, h, w)
			top := satAdd(fr.Y, w)
			if s1 < bestS1 || (s1 == bestS1 && (s2 < bestS2 || (s2 == bestS2 && (top < bestTop || (top == bestTop && fr.X < bestLeft))))) {
				bestS1, bestS2 = s1, s2
				bestTop, bestLeft = top, fr.X
				bestRect = texpack.NewRect(fr.X, fr.Y, h, w)
				bestRot = true
			}
			if fr.W == h && fr.H == w {
				return texpack.NewRect(fr.X, fr.Y, h, w), true, true
			}
		}
	}

	if bestRect.W == 0 || bestRect.H == 0 {
		return texpack.Rect{}, false, false
	}
	return bestRect, bestRot, true
}

func (p *MaxRects) contactPointScore(x, y, w, h uint32) uint32 {
	node := texpack.NewRect(x, y, w, h)
	var score uint32
	borderRight := p.border.X + p.border.W
	borderBottom := p.border.Y + p.border.H
	if node.X == p.border.X {
		score += node.H
	}
	if node.Y == p.border.Y {
		score += node.W
	}
	if node.X+node.W == borderRight {
		score += node.H
	}
	if node.Y+node.H == borderBottom {
		score += node.W
	}
	for _, u := range p.used {
		if node.X == u.X+u.W || u.X == node.X+node.W {
			score += overlap1D(node.Y, node.Y+node.H, u.Y, u.Y+u.H)
		}
		if node.Y == u.Y+u.H || u.Y == node.Y+node.H {
			score += overlap1D(node.X, node.X+node.W, u.X, u.X+u.W)
		}
	}
	return score
}

func overlap1D(a1, a2, b1, b2 uint32) uint32 {
	start := maxU32(a1, b1)
	end := minU32(a2, b2)
	return satSub(end, start)
}

// CanPack reports whether rect (plus padding/extrusion) fits in some
// free rectangle, including a rotated fit when allowed.
func (p *MaxRects) CanPack(rect texpack.Rect) bool {
	w := rect.W + p.cfg.TexturePadding + p.cfg.TextureExtrusion*2
	h := rect.H + p.cfg.TexturePadding + p.cfg.TextureExtrusion*2
	_, _, ok := p.findPosition(w, h)
	return ok
}

// Pack places rect into the best-scoring free rectangle under the
// configured heuristic.
func (p *MaxRects) Pack(key string, rect texpack.Rect) (texpack.Frame, bool) {
	w := rect.W + p.cfg.TexturePadding + p.cfg.TextureExtrusion*2
	h := rect.H + p.cfg.TexturePadding + p.cfg.TextureExtrusion*2
	place, rotated, ok := p.findPosition(w, h)
	if !ok {
		return texpack.Frame{}, false
	}
	p.placeRect(place)
	fw, fh := contentDims(rect, rotated)
	padHalf := p.cfg.TexturePadding / 2
	off := p.cfg.TextureExtrusion + padHalf
	frame := texpack.NewRect(place.X+off, place.Y+off, fw, fh)
	return texpack.Frame{
		Key:        key,
		Frame:      frame,
		Rotated:    rotated,
		Trimmed:    false,
		Source:     rect,
		SourceSize: [2]uint32{rect.W, rect.H},
	}, true
}
