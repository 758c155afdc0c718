package runtime

import "github.com/go-texpacker/texpack"

type rtSkylineNode struct {
	x, y, w uint32
}

func (n rtSkylineNode) left() uint32  { return n.x }
func (n rtSkylineNode) right() uint32 { return n.x + satSub(n.w, 1) }

// skylineMode is the runtime counterpart of the offline Skyline family:
// same profile-splitting placement for new space, plus a small
// guillotine-scored hole list (mirroring packer.wasteMap's
// addArea/prune/merge) that reclaims evicted slots instead of leaking
// them.
type skylineMode struct {
	border    texpack.Rect
	skylines  []rtSkylineNode
	heuristic texpack.SkylineHeuristic
	choice    texpack.GuillotineChoice
	holes     []texpack.Rect
}

func newSkylineMode(border texpack.Rect, heuristic texpack.SkylineHeuristic, choice texpack.GuillotineChoice) *skylineMode {
	return &skylineMode{
		border:    border,
		skylines:  []rtSkylineNode{{x: border.X, y: border.Y, w: border.W}},
		heuristic: heuristic,
		choice:    choice,
	}
}

func (m *skylineMode) canPut(i int, w, h uint32) (texpack.Rect, bool) {
	rect := texpack.NewRect(m.skylines[i].x, 0, w, h)
	widthLeft := rect.W
	for {
		if m.skylines[i].y > rect.Y {
			rect.Y = m.skylines[i].y
		}
		if !m.border.Contains(rect) {
			return texpack.Rect{}, false
		}
		if m.skylines[i].w >= widthLeft {
			return rect, true
		}
		widthLeft -= m.skylines[i].w
		i++
		if i >= len(m.skylines) {
			return texpack.Rect{}, false
		}
	}
}

func (m *skylineMode) wastedAreaFor(start int, r texpack.Rect) uint32 {
	var area uint32
	widthLeft := r.W
	i := start
	baseY := r.Y
	for widthLeft > 0 && i < len(m.skylines) {
		seg := m.skylines[i]
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

func (m *skylineMode) findSkyline(w, h uint32, allowRotation bool) (int, texpack.Rect, bool, bool) {
	bestScore1 := ^uint32(0)
	bestScore2 := ^uint32(0)
	bestIndex := -1
	var bestRect texpack.Rect
	bestRot := false

	consider := func(i int, cw, ch uint32, rotated bool) {
		r, ok := m.canPut(i, cw, ch)
		if !ok {
			return
		}
		var s1, s2 uint32
		if m.heuristic == texpack.SkylineMinWaste {
			s1, s2 = m.wastedAreaFor(i, r), r.Bottom()
		} else {
			s1, s2 = r.Bottom(), m.skylines[i].w
		}
		if s1 < bestScore1 || (s1 == bestScore1 && s2 < bestScore2) {
			bestScore1, bestScore2 = s1, s2
			bestIndex = i
			bestRect = r
			bestRot = rotated
		}
	}

	for i := range m.skylines {
		consider(i, w, h, false)
		if allowRotation {
			consider(i, h, w, true)
		}
	}
	return bestIndex, bestRect, bestRot, bestIndex >= 0
}

// findHole scores every hole that could contain w x h (and h x w when
// rotation is allowed) with the same Guillotine choice heuristic the
// offline waste map uses, without consuming it; place does the actual
// removal and split once the caller commits to this candidate.
func (m *skylineMode) findHole(w, h uint32, allowRotation bool) (texpack.Rect, bool, bool) {
	bestIdx := -1
	var bestS1, bestS2 int64 = 1<<62, 1<<62
	var best texpack.Rect
	bestRot := false

	for i, hole := range m.holes {
		if hole.W >= w && hole.H >= h {
			s1, s2 := scoreChoice(m.choice, hole, w, h)
			if s1 < bestS1 || (s1 == bestS1 && s2 < bestS2) {
				bestS1, bestS2 = s1, s2
				bestIdx = i
				best = texpack.NewRect(hole.X, hole.Y, w, h)
				bestRot = false
			}
		}
		if allowRotation && hole.W >= h && hole.H >= w {
			s1, s2 := scoreChoice(m.choice, hole, h, w)
			if s1 < bestS1 || (s1 == bestS1 && s2 < bestS2) {
				bestS1, bestS2 = s1, s2
				bestIdx = i
				best = texpack.NewRect(hole.X, hole.Y, h, w)
				bestRot = true
			}
		}
	}
	return best, bestRot, bestIdx >= 0
}

func (m *skylineMode) choose(w, h uint32, allowRotation bool) (texpack.Rect, bool, bool) {
	if r, rot, ok := m.findHole(w, h, allowRotation); ok {
		return r, rot, true
	}
	if _, r, rot, ok := m.findSkyline(w, h, allowRotation); ok {
		return r, rot, true
	}
	return texpack.Rect{}, false, false
}

// holeIndex finds the hole slot anchors against, matching on corner
// and containment the same way guillotineMode.place re-locates the
// free rectangle a chosen slot came from.
func (m *skylineMode) holeIndex(slot texpack.Rect) int {
	for i, hole := range m.holes {
		if hole.X == slot.X && hole.Y == slot.Y && hole.W >= slot.W && hole.H >= slot.H {
			return i
		}
	}
	return -1
}

// splitHole removes slot from hole's top-left corner, returning up to
// two remainder strips (bottom, right), same shape as
// guillotineMode.splitRect but against a single reclaimed hole instead
// of the live free list.
func splitHole(hole, slot texpack.Rect) (texpack.Rect, bool, texpack.Rect, bool) {
	wRight := satSub(hole.X+hole.W, slot.X+slot.W)
	hBottom := satSub(hole.Y+hole.H, slot.Y+slot.H)
	splitHorizontal := hBottom < wRight

	bottom := texpack.NewRect(hole.X, slot.Y+slot.H, 0, satSub(hole.H, slot.H))
	right := texpack.NewRect(slot.X+slot.W, hole.Y, satSub(hole.W, slot.W), 0)
	if splitHorizontal {
		bottom.W = hole.W
		right.H = slot.H
	} else {
		bottom.W = slot.W
		right.H = hole.H
	}
	return bottom, bottom.W > 0 && bottom.H > 0, right, right.W > 0 && right.H > 0
}

func (m *skylineMode) place(slot texpack.Rect, _ bool) {
	if idx := m.holeIndex(slot); idx >= 0 {
		hole := m.holes[idx]
		m.holes[idx] = m.holes[len(m.holes)-1]
		m.holes = m.holes[:len(m.holes)-1]

		a, okA, b, okB := splitHole(hole, slot)
		if okA {
			m.holes = append(m.holes, a)
		}
		if okB {
			m.holes = append(m.holes, b)
		}
		m.holes = pruneFreeList(m.holes)
		m.holes = mergeFreeList(m.holes)
		return
	}

	index := -1
	for i, seg := range m.skylines {
		if seg.x == slot.X {
			index = i
			break
		}
	}
	if index < 0 {
		// slot didn't come from a hole and doesn't align with any current
		// skyline segment boundary; nothing further to split.
		return
	}
	m.split(index, slot)
	m.merge()
}

func (m *skylineMode) addFree(r texpack.Rect) {
	m.holes = append(m.holes, r)
	m.holes = pruneFreeList(m.holes)
	m.holes = mergeFreeList(m.holes)
}

func (m *skylineMode) split(index int, rect texpack.Rect) {
	newY := satAdd(rect.Bottom(), 1)
	if newY > m.border.Bottom() {
		newY = m.border.Bottom()
	}
	node := rtSkylineNode{x: rect.X, y: newY, w: rect.W}

	m.skylines = append(m.skylines, rtSkylineNode{})
	copy(m.skylines[index+1:], m.skylines[index:])
	m.skylines[index] = node

	i := index + 1
	for i < len(m.skylines) {
		if m.skylines[i-1].left() <= m.skylines[i].left() {
			if m.skylines[i].left() <= m.skylines[i-1].right() {
				shrink := m.skylines[i-1].right() - m.skylines[i].left() + 1
				if m.skylines[i].w <= shrink {
					m.skylines = append(m.skylines[:i], m.skylines[i+1:]...)
					continue
				}
				m.skylines[i].x += shrink
				m.skylines[i].w -= shrink
				break
			}
			break
		}
		break
	}
}

func (m *skylineMode) merge() {
	i := 1
	for i < len(m.skylines) {
		if m.skylines[i-1].y == m.skylines[i].y {
			m.skylines[i-1].w = satAdd(m.skylines[i-1].w, m.skylines[i].w)
			m.skylines = append(m.skylines[:i], m.skylines[i+1:]...)
		} else {
			i++
		}
	}
}
