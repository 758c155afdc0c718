package runtime

import "github.com/go-texpacker/texpack"

// guillotineMode is a page's free-rectangle list under the Guillotine
// runtime strategy: every append splits the chosen free rectangle,
// every evict pushes the freed slot back and re-merges.
type guillotineMode struct {
	free   []texpack.Rect
	choice texpack.GuillotineChoice
	split  texpack.GuillotineSplit
}

func newGuillotineMode(border texpack.Rect, choice texpack.GuillotineChoice, split texpack.GuillotineSplit) *guillotineMode {
	return &guillotineMode{free: []texpack.Rect{border}, choice: choice, split: split}
}

func (m *guillotineMode) choose(w, h uint32, allowRotation bool) (texpack.Rect, bool, bool) {
	bestIdx := -1
	bestS1, bestS2 := int64(1<<62), int64(1<<62)
	var best texpack.Rect
	bestRot := false
	for i, fr := range m.free {
		if fr.W >= w && fr.H >= h {
			s1, s2 := scoreChoice(m.choice, fr, w, h)
			if s1 < bestS1 || (s1 == bestS1 && s2 < bestS2) {
				bestS1, bestS2 = s1, s2
				bestIdx = i
				best = texpack.NewRect(fr.X, fr.Y, w, h)
				bestRot = false
			}
		}
		if allowRotation && fr.W >= h && fr.H >= w {
			s1, s2 := scoreChoice(m.choice, fr, h, w)
			if s1 < bestS1 || (s1 == bestS1 && s2 < bestS2) {
				bestS1, bestS2 = s1, s2
				bestIdx = i
				best = texpack.NewRect(fr.X, fr.Y, h, w)
				bestRot = true
			}
		}
	}
	return best, bestRot, bestIdx >= 0
}

func (m *guillotineMode) place(slot texpack.Rect, _ bool) {
	idx := -1
	for i, fr := range m.free {
		if fr.X == slot.X && fr.Y == slot.Y && fr.W >= slot.W && fr.H >= slot.H {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	fr := m.free[idx]
	m.free[idx] = m.free[len(m.free)-1]
	m.free = m.free[:len(m.free)-1]

	a, okA, b, okB := m.splitRect(fr, slot)
	if okA {
		m.free = append(m.free, a)
	}
	if okB {
		m.free = append(m.free, b)
	}
	m.free = pruneFreeList(m.free)
	m.free = mergeFreeList(m.free)
}

func (m *guillotineMode) addFree(r texpack.Rect) {
	m.free = append(m.free, r)
	m.free = pruneFreeList(m.free)
	m.free = mergeFreeList(m.free)
}

func (m *guillotineMode) splitRect(fr, placed texpack.Rect) (texpack.Rect, bool, texpack.Rect, bool) {
	wRight := satSub(fr.X+fr.W, placed.X+placed.W)
	hBottom := satSub(fr.Y+fr.H, placed.Y+placed.H)

	var splitHorizontal bool
	switch m.split {
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
	return bottom, bottom.W > 0 && bottom.H > 0, right, right.W > 0 && right.H > 0
}
