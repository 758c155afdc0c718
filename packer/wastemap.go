package packer

import "github.com/go-texpacker/texpack"

// wasteMap recovers small gaps a Skyline placement leaves beneath
// taller neighboring segments, scored with a Guillotine choice
// heuristic and kept disjoint via subtractive placement.
type wasteMap struct {
	free          []texpack.Rect
	allowRotation bool
	choice        texpack.GuillotineChoice
}

func newWasteMap(choice texpack.GuillotineChoice, allowRotation bool) *wasteMap {
	return &wasteMap{allowRotation: allowRotation, choice: choice}
}

func (m *wasteMap) canFit(w, h uint32) bool {
	_, _, _, ok := m.choose(w, h)
	return ok
}

func (m *wasteMap) tryPack(w, h uint32) (texpack.Rect, bool, bool) {
	idx, r, rot, ok := m.choose(w, h)
	if !ok {
		return texpack.Rect{}, false, false
	}
	m.place(idx, r)
	return r, rot, true
}

func (m *wasteMap) choose(w, h uint32) (int, texpack.Rect, bool, bool) {
	bestIdx := -1
	var bestS1, bestS2 int64 = 1<<62 - 1, 1<<62 - 1
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
		if m.allowRotation && fr.W >= h && fr.H >= w {
			s1, s2 := scoreChoice(m.choice, fr, h, w)
			if s1 < bestS1 || (s1 == bestS1 && s2 < bestS2) {
				bestS1, bestS2 = s1, s2
				bestIdx = i
				best = texpack.NewRect(fr.X, fr.Y, h, w)
				bestRot = true
			}
		}
	}
	return bestIdx, best, bestRot, bestIdx >= 0
}

func (m *wasteMap) place(idx int, node texpack.Rect) {
	chosen := m.free[idx]
	m.free[idx] = m.free[len(m.free)-1]
	m.free = m.free[:len(m.free)-1]
	_ = chosen

	newFree := make([]texpack.Rect, 0, len(m.free)+2)
	for _, fr := range m.free {
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
	m.free = newFree
	m.prune()
	m.merge()
}

func (m *wasteMap) addArea(r texpack.Rect) {
	if r.W > 0 && r.H > 0 {
		m.free = append(m.free, r)
	}
	m.prune()
	m.merge()
}

func (m *wasteMap) prune() {
	i := 0
	for i < len(m.free) {
		a := m.free[i]
		aX2, aY2 := a.X+a.W, a.Y+a.H
		removeI := false
		j := i + 1
		for j < len(m.free) {
			b := m.free[j]
			bX2, bY2 := b.X+b.W, b.Y+b.H
			if a.X >= b.X && a.Y >= b.Y && aX2 <= bX2 && aY2 <= bY2 {
				removeI = true
				break
			}
			if b.X >= a.X && b.Y >= a.Y && bX2 <= aX2 && bY2 <= aY2 {
				m.free = append(m.free[:j], m.free[j+1:]...)
				continue
			}
			j++
		}
		if removeI {
			m.free = append(m.free[:i], m.free[i+1:]...)
		} else {
			i++
		}
	}
}

func (m *wasteMap) merge() {
	merged := true
	for merged {
		merged = false
	outer:
		for i := 0; i < len(m.free); i++ {
			for j := i + 1; j < len(m.free); j++ {
				a, b := m.free[i], m.free[j]
				if a.Y == b.Y && a.H == b.H {
					if a.X+a.W == b.X {
						m.free[i] = texpack.NewRect(a.X, a.Y, a.W+b.W, a.H)
						m.free = append(m.free[:j], m.free[j+1:]...)
						merged = true
						break outer
					} else if b.X+b.W == a.X {
						m.free[i] = texpack.NewRect(b.X, a.Y, a.W+b.W, a.H)
						m.free = append(m.free[:j], m.free[j+1:]...)
						merged = true
						break outer
					}
				}
				if a.X == b.X && a.W == b.W {
					if a.Y+a.H == b.Y {
						m.free[i] = texpack.NewRect(a.X, a.Y, a.W, a.H+b.H)
						m.free = append(m.free[:j], m.free[j+1:]...)
						merged = true
						break outer
					} else if b.Y+b.H == a.Y {
						m.free[i] = texpack.NewRect(a.X, b.Y, a.W, a.H+b.H)
						m.free = append(m.free[:j], m.free[j+1:]...)
						merged = true
						break outer
					}
				}
			}
		}
	}
}

// scoreChoice scores a candidate free rectangle fr against a w x h
// placement using a Guillotine choice heuristic; lower is better.
func scoreChoice(choice texpack.GuillotineChoice, fr texpack.Rect, w, h uint32) (int64, int64) {
	areaFit := int64(fr.W)*int64(fr.H) - int64(w)*int64(h)
	leftoverH := int64(fr.W) - int64(w)
	leftoverV := int64(fr.H) - int64(h)
	shortFit := minI64(absI64(leftoverH), absI64(leftoverV))
	longFit := maxI64(absI64(leftoverH), absI64(leftoverV))
	switch choice {
	case texpack.GuillotineBestAreaFit:
		return areaFit, shortFit
	case texpack.GuillotineBestShortSideFit:
		return shortFit, longFit
	case texpack.GuillotineBestLongSideFit:
		return longFit, shortFit
	case texpack.GuillotineWorstAreaFit:
		return -areaFit, -shortFit
	case texpack.GuillotineWorstShortSideFit:
		return -shortFit, -longFit
	default: // GuillotineWorstLongSideFit
		return -longFit, -shortFit
	}
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

func absI64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func minI64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxI64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
