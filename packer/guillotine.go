package packer

import "github.com/go-texpacker/texpack"

// Guillotine packs by recursively splitting the chosen free
// rectangle along one axis for every placement, keeping the free list
// pruned and merged between placements.
type Guillotine struct {
	cfg  texpack.Config
	free []texpack.Rect
	used []texpack.Rect
}

// NewGuillotine builds a Guillotine strategy for a page of
// cfg.MaxWidth x cfg.MaxHeight.
func NewGuillotine(cfg texpack.Config) *Guillotine {
	pad := cfg.BorderPadding
	w := satSub(cfg.MaxWidth, pad*2)
	h := satSub(cfg.MaxHeight, pad*2)
	border := texpack.NewRect(pad, pad, w, h)
	return &Guillotine{cfg: cfg, free: []texpack.Rect{border}}
}

func guillotineScore(choice texpack.GuillotineChoice, fr texpack.Rect, w, h uint32) int64 {
	areaFit := int64(fr.W)*int64(fr.H) - int64(w)*int64(h)
	leftoverH := int64(fr.W) - int64(w)
	leftoverV := int64(fr.H) - int64(h)
	shortFit := minI64(absI64(leftoverH), absI64(leftoverV))
	longFit := maxI64(absI64(leftoverH), absI64(leftoverV))
	switch choice {
	case texpack.GuillotineBestAreaFit:
		return areaFit
	case texpack.GuillotineBestShortSideFit:
		return shortFit
	case texpack.GuillotineBestLongSideFit:
		return longFit
	case texpack.GuillotineWorstAreaFit:
		return -areaFit
	case texpack.GuillotineWorstShortSideFit:
		return -shortFit
	default: // GuillotineWorstLongSideFit
		return -longFit
	}
}

func (p *Guillotine) choose(w, h uint32) (int, texpack.Rect, bool, bool) {
	bestIdx := -1
	bestScore := int64(1 << 62)
	var bestRect texpack.Rect
	bestRot := false

	for i, fr := range p.free {
		if fr.W >= w && fr.H >= h {
			s := guillotineScore(p.cfg.GChoice, fr, w, h)
			if s < bestScore {
				bestScore = s
				bestIdx = i
				bestRect = texpack.NewRect(fr.X, fr.Y, w, h)
				bestRot = false
			}
		}
		if p.cfg.AllowRotation && fr.W >= h && fr.H >= w {
			s := guillotineScore(p.cfg.GChoice, fr, h, w)
			if s < bestScore {
				bestScore = s
				bestIdx = i
				bestRect = texpack.NewRect(fr.X, fr.Y, h, w)
				bestRot = true
			}
		}
	}
	return bestIdx, bestRect, bestRot, bestIdx >= 0
}

func (p *Guillotine) split(fr, placed texpack.Rect) (texpack.Rect, bool, texpack.Rect, bool) {
	wRight := satSub(fr.X+fr.W, placed.X+placed.W)
	hBottom := satSub(fr.Y+fr.H, placed.Y+placed.H)

	var splitHorizontal bool
	switch p.cfg.GSplit {
	case texpack.SplitShorterLeftoverAxis:
		splitHorizontal = hBottom < wRight
	case texpack.SplitLongerLeftoverAxis:
		splitHorizontal = hBottom > wRight
	case texpack.SplitMinimizeArea:
		splitHorizontal = satMul(wRight, fr.H) <= satMul(fr.W, hBottom)
	case texpack.SplitMaximizeArea:
		splitHorizontal = satMul(wRight, fr.H) >= satMul(fr.W, hBottom)
	case texpack.SplitShorterAxis:
		splitHorizontal = fr.H < fr.W
	case texpack.SplitLongerAxis:
		splitHorizontal = fr.H > fr.W
	}

	bottom := texpack.NewRect(fr.X, placed.Y+placed.H, 0, satSub(fr.H, placed.H))
	right := texpack.NewRect(placed.X+placed.W, fr.Y, satSub(fr.W, placed.W), 0)
	if splitHorizontal {
		bottom.W = fr.W
		right.H = placed.H
	} else {
		bottom.W = placed.W
		right.H = fr.H
	}

	r1Ok := bottom.W > 0 && bottom.H > 0
	r2Ok := right.W > 0 && right.H > 0
	return bottom, r1Ok, right, r2Ok
}

func (p *Guillotine) place(idx int, placed texpack.Rect) {
	fr := p.free[idx]
	p.free[idx] = p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]

	r1, ok1, r2, ok2 := p.split(fr, placed)
	if ok1 {
		p.free = append(p.free, r1)
	}
	if ok2 {
		p.free = append(p.free, r2)
	}
	p.pruneFreeList()
	p.mergeFreeList()
	p.used = append(p.used, placed)
}

func (p *Guillotine) pruneFreeList() {
	i := 0
	for i < len(p.free) {
		j := i + 1
		a := p.free[i]
		aX2, aY2 := a.X+a.W, a.Y+a.H
		removeI := false
		for j < len(p.free) {
			b := p.free[j]
			bX2, bY2 := b.X+b.W, b.Y+b.H
			if a.X >= b.X && a.Y >= b.Y && aX2 <= bX2 && aY2 <= bY2 {
				removeI = true
				break
			}
			if b.X >= a.X && b.Y >= a.Y && bX2 <= aX2 && bY2 <= aY2 {
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

func (p *Guillotine) mergeFreeList() {
	merged := true
	for merged {
		merged = false
	outer:
		for i := 0; i < len(p.free); i++ {
			for j := i + 1; j < len(p.free); j++ {
				a, b := p.free[i], p.free[j]
				if a.Y == b.Y && a.H == b.H {
					if a.X+a.W == b.X {
						p.free[i] = texpack.NewRect(a.X, a.Y, a.W+b.W, a.H)
						p.free = append(p.free[:j], p.free[j+1:]...)
						merged = true
						break outer
					} else if b.X+b.W == a.X {
						p.free[i] = texpack.NewRect(b.X, a.Y, a.W+b.W, a.H)
						p.free = append(p.free[:j], p.free[j+1:]...)
						merged = true
						break outer
					}
				}
				if a.X == b.X && a.W == b.W {
					if a.Y+a.H == b.Y {
						p.free[i] = texpack.NewRect(a.X, a.Y, a.W, a.H+b.H)
						p.free = append(p.free[:j], p.free[j+1:]...)
						merged = true
						break outer
					} else if b.Y+b.H == a.Y {
						p.free[i] = texpack.NewRect(a.X, b.Y, a.W, a.H+b.H)
						p.free = append(p.free[:j], p.free[j+1:]...)
						merged = true
						break outer
					}
				}
			}
		}
	}
}

// CanPack reports whether rect (plus padding/extrusion) fits in some
// free rectangle, including a rotated fit when allowed.
func (p *Guillotine) CanPack(rect texpack.Rect) bool {
	w := rect.W + p.cfg.TexturePadding + p.cfg.TextureExtrusion*2
	h := rect.H + p.cfg.TexturePadding + p.cfg.TextureExtrusion*2
	_, _, _, ok := p.choose(w, h)
	return ok
}

// Pack places rect into the best-scoring free rectangle under the
// configured choice heuristic, splitting the remainder along the
// configured split axis.
func (p *Guillotine) Pack(key string, rect texpack.Rect) (texpack.Frame, bool) {
	w := rect.W + p.cfg.TexturePadding + p.cfg.TextureExtrusion*2
	h := rect.H + p.cfg.TexturePadding + p.cfg.TextureExtrusion*2
	idx, place, rotated, ok := p.choose(w, h)
	if !ok {
		return texpack.Frame{}, false
	}
	p.place(idx, place)

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
