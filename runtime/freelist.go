package runtime

import "github.com/go-texpacker/texpack"

// pruneFreeList removes any free rectangle fully contained within
// another, keeping the free list minimal after a split or eviction.
func pruneFreeList(free []texpack.Rect) []texpack.Rect {
	i := 0
	for i < len(free) {
		j := i + 1
		a := free[i]
		aX2, aY2 := a.X+a.W, a.Y+a.H
		removeI := false
		for j < len(free) {
			b := free[j]
			bX2, bY2 := b.X+b.W, b.Y+b.H
			if a.X >= b.X && a.Y >= b.Y && aX2 <= bX2 && aY2 <= bY2 {
				removeI = true
				break
			}
			if b.X >= a.X && b.Y >= a.Y && bX2 <= aX2 && bY2 <= aY2 {
				free = append(free[:j], free[j+1:]...)
				continue
			}
			j++
		}
		if removeI {
			free = append(free[:i], free[i+1:]...)
		} else {
			i++
		}
	}
	return free
}

// mergeFreeList repeatedly merges adjacent, same-height or same-width
// free rectangles into one until no more merges are possible.
func mergeFreeList(free []texpack.Rect) []texpack.Rect {
	merged := true
	for merged {
		merged = false
	outer:
		for i := 0; i < len(free); i++ {
			for j := i + 1; j < len(free); j++ {
				a, b := free[i], free[j]
				if a.Y == b.Y && a.H == b.H {
					if a.X+a.W == b.X {
						free[i] = texpack.NewRect(a.X, a.Y, a.W+b.W, a.H)
						free = append(free[:j], free[j+1:]...)
						merged = true
						break outer
					} else if b.X+b.W == a.X {
						free[i] = texpack.NewRect(b.X, a.Y, a.W+b.W, a.H)
						free = append(free[:j], free[j+1:]...)
						merged = true
						break outer
					}
				}
				if a.X == b.X && a.W == b.W {
					if a.Y+a.H == b.Y {
						free[i] = texpack.NewRect(a.X, a.Y, a.W, a.H+b.H)
						free = append(free[:j], free[j+1:]...)
						merged = true
						break outer
					} else if b.Y+b.H == a.Y {
						free[i] = texpack.NewRect(a.X, b.Y, a.W, a.H+b.H)
						free = append(free[:j], free[j+1:]...)
						merged = true
						break outer
					}
				}
			}
		}
	}
	return free
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

func rectsIntersect(a, b texpack.Rect) bool {
	ax2, ay2 := a.X+a.W, a.Y+a.H
	bx2, by2 := b.X+b.W, b.Y+b.H
	return !(a.X >= bx2 || b.X >= ax2 || a.Y >= by2 || b.Y >= ay2)
}

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
	default:
		return -longFit, -shortFit
	}
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
