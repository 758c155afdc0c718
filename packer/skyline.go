package packer

import "github.com/go-texpacker/texpack"

type skylineNode struct {
	x, y, w uint32
}

func (n skylineNode) left() uint32  { return n.x }
func (n skylineNode) right() uint32 { return n.x + satSub(n.w, 1) }

// Skyline packs against a profile of horizontal segments, always
// placing a new rectangle flush against the lowest reachable segment.
type Skyline struct {
	cfg      texpack.Config
	border   texpack.Rect
	skylines []skylineNode
	waste    *wasteMap
}

// NewSkyline builds a Skyline strategy for a page of
// cfg.MaxWidth x cfg.MaxHeight, honoring cfg.BorderPadding,
// cfg.SkylineHeuristic, and cfg.UseWasteMap.
func NewSkyline(cfg texpack.Config) *Skyline {
	pad := cfg.BorderPadding
	w := satSub(cfg.MaxWidth, pad*2)
	h := satSub(cfg.MaxHeight, pad*2)
	s := &Skyline{
		cfg:      cfg,
		border:   texpack.NewRect(pad, pad, w, h),
		skylines: []skylineNode{{x: pad, y: pad, w: w}},
	}
	if cfg.UseWasteMap {
		s.waste = newWasteMap(cfg.GChoice, cfg.AllowRotation)
	}
	return s
}

func (s *Skyline) canPut(i int, w, h uint32) (texpack.Rect, bool) {
	rect := texpack.NewRect(s.skylines[i].x, 0, w, h)
	widthLeft := rect.W
	for {
		if s.skylines[i].y > rect.Y {
			rect.Y = s.skylines[i].y
		}
		if !s.border.Contains(rect) {
			return texpack.Rect{}, false
		}
		if s.skylines[i].w >= widthLeft {
			return rect, true
		}
		widthLeft -= s.skylines[i].w
		i++
		if i >= len(s.skylines) {
			return texpack.Rect{}, false
		}
	}
}

func (s *Skyline) findSkyline(w, h uint32) (int, texpack.Rect, bool) {
	if s.cfg.SkylineHeuristic == texpack.SkylineMinWaste {
		return s.findMinWaste(w, h)
	}
	return s.findBottomLeft(w, h)
}

func (s *Skyline) findBottomLeft(w, h uint32) (int, texpack.Rect, bool) {
	bestBottom := ^uint32(0)
	bestWidth := ^uint32(0)
	bestIndex := -1
	var bestRect texpack.Rect

	consider := func(i int, cw, ch uint32) {
		r, ok := s.canPut(i, cw, ch)
		if !ok {
			return
		}
		if r.Bottom() < bestBottom || (r.Bottom() == bestBottom && s.skylines[i].w < bestWidth) {
			bestBottom = r.Bottom()
			bestWidth = s.skylines[i].w
			bestIndex = i
			bestRect = r
		}
	}

	for i := range s.skylines {
		consider(i, w, h)
		if s.cfg.AllowRotation {
			consider(i, h, w)
		}
	}
	return bestIndex, bestRect, bestIndex >= 0
}

func (s *Skyline) wastedAreaFor(start int, r texpack.Rect) uint32 {
	var area uint32
	widthLeft := r.W
	i := start
	baseY := r.Y
	for widthLeft > 0 && i < len(s.skylines) {
		seg := s.skylines[i]
		useW := widthLeft
		if seg.w < useW {
			useW = seg.w
		}
		if seg.y > baseY {
			area = satAdd(area, (seg.y-baseY)*useW)
		}
		widthLeft -= useW
		i++
	}
	return area
}

func (s *Skyline) findMinWaste(w, h uint32) (int, texpack.Rect, bool) {
	bestWaste := ^uint32(0)
	bestBottom := ^uint32(0)
	bestIndex := -1
	var bestRect texpack.Rect

	consider := func(i int, cw, ch uint32) {
		r, ok := s.canPut(i, cw, ch)
		if !ok {
			return
		}
		waste := s.wastedAreaFor(i, r)
		if waste < bestWaste || (waste == bestWaste && r.Bottom() < bestBottom) {
			bestWaste = waste
			bestBottom = r.Bottom()
			bestIndex = i
			bestRect = r
		}
	}

	for i := range s.skylines {
		consider(i, w, h)
		if s.cfg.AllowRotation {
			consider(i, h, w)
		}
	}
	return bestIndex, bestRect, bestIndex >= 0
}

func (s *Skyline) split(index int, rect texpack.Rect) {
	newY := satAdd(rect.Bottom(), 1)
	if newY > s.border.Bottom() {
		newY = s.border.Bottom()
	}
	node := skylineNode{x: rect.X, y: newY, w: rect.W}

	s.skylines = append(s.skylines, skylineNode{})
	copy(s.skylines[index+1:], s.skylines[index:])
	s.skylines[index] = node

	i := index + 1
	for i < len(s.skylines) {
		if s.skylines[i-1].left() <= s.skylines[i].left() {
			if s.skylines[i].left() <= s.skylines[i-1].right() {
				shrink := s.skylines[i-1].right() - s.skylines[i].left() + 1
				if s.skylines[i].w <= shrink {
					s.skylines = append(s.skylines[:i], s.skylines[i+1:]...)
					continue
				}
				s.skylines[i].x += shrink
				s.skylines[i].w -= shrink
				break
			}
			break
		}
		break
	}
}

func (s *Skyline) merge() {
	i := 1
	for i < len(s.skylines) {
		if s.skylines[i-1].y == s.skylines[i].y {
			s.skylines[i-1].w = satAdd(s.skylines[i-1].w, s.skylines[i].w)
			s.skylines = append(s.skylines[:i], s.skylines[i+1:]...)
		} else {
			i++
		}
	}
}

// CanPack reports whether rect fits somewhere on the skyline, after
// accounting for padding and extrusion.
func (s *Skyline) CanPack(rect texpack.Rect) bool {
	w := rect.W + s.cfg.TexturePadding + s.cfg.TextureExtrusion*2
	h := rect.H + s.cfg.TexturePadding + s.cfg.TextureExtrusion*2
	if s.waste != nil && s.waste.canFit(w, h) {
		return true
	}
	_, _, ok := s.findSkyline(w, h)
	return ok
}

// Pack places rect against the skyline profile, preferring a waste-map
// gap when one is configured and fits, then the configured heuristic.
func (s *Skyline) Pack(key string, rect texpack.Rect) (texpack.Frame, bool) {
	w := rect.W + s.cfg.TexturePadding + s.cfg.TextureExtrusion*2
	h := rect.H + s.cfg.TexturePadding + s.cfg.TextureExtrusion*2

	if s.waste != nil {
		if place, rotated, ok := s.waste.tryPack(w, h); ok {
			return s.frameFor(key, rect, place, rotated), true
		}
	}

	if i, place, ok := s.findSkyline(w, h); ok {
		s.addWasteAreas(i, place)
		s.split(i, place)
		s.merge()
		rotated := w != place.W
		return s.frameFor(key, rect, place, rotated), true
	}
	return texpack.Frame{}, false
}

func (s *Skyline) frameFor(key string, rect texpack.Rect, place texpack.Rect, rotated bool) texpack.Frame {
	fw, fh := contentDims(rect, rotated)
	padHalf := s.cfg.TexturePadding / 2
	off := s.cfg.TextureExtrusion + padHalf
	frame := texpack.NewRect(place.X+off, place.Y+off, fw, fh)
	return texpack.Frame{
		Key:        key,
		Frame:      frame,
		Rotated:    rotated,
		Trimmed:    false,
		Source:     rect,
		SourceSize: [2]uint32{rect.W, rect.H},
	}
}

// addWasteAreas pushes the vertical gaps a placement leaves below
// neighboring skyline segments into the waste map, mirroring
// Jylänki's SkylineBinPack::AddWasteMapArea.
func (s *Skyline) addWasteAreas(index int, rect texpack.Rect) {
	if s.waste == nil {
		return
	}
	rectLeft := rect.X
	rectRight := rect.X + rect.W
	i := index
	for i < len(s.skylines) && s.skylines[i].x < rectRight {
		seg := s.skylines[i]
		if seg.x >= rectRight {
			break
		}
		if seg.x+seg.w <= rectLeft {
			break
		}
		leftSide := seg.x
		if rectLeft > leftSide {
			leftSide = rectLeft
		}
		rightSide := seg.x + seg.w
		if rectRight < rightSide {
			rightSide = rectRight
		}
		if seg.y < rect.Y {
			w := satSub(rightSide, leftSide)
			h := satSub(rect.Y, seg.y)
			if w > 0 && h > 0 {
				s.waste.addArea(texpack.NewRect(leftSide, seg.y, w, h))
			}
		}
		i++
	}
}
