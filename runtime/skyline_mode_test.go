package runtime

import (
	"testing"

	"github.com/go-texpacker/texpack"
)

func TestSkylineModePlacesAtOrigin(t *testing.T) {
	border := texpack.NewRect(0, 0, 100, 100)
	m := newSkylineMode(border, texpack.SkylineBottomLeft, texpack.GuillotineBestAreaFit)

	r, rotated, ok := m.choose(30, 20, false)
	if !ok || rotated {
		t.Fatalf("choose = (%v, %v, %v), want a non-rotated fit", r, rotated, ok)
	}
	if r.X != 0 || r.Y != 0 {
		t.Errorf("first placement = %+v, want origin", r)
	}
	m.place(r, rotated)

	r2, _, ok := m.choose(30, 20, false)
	if !ok {
		t.Fatal("second choose failed")
	}
	if r2.X != 30 {
		t.Errorf("second placement X = %d, want 30 (next to first)", r2.X)
	}
}

func TestSkylineModeHoleReuseAfterFree(t *testing.T) {
	border := texpack.NewRect(0, 0, 100, 100)
	m := newSkylineMode(border, texpack.SkylineBottomLeft, texpack.GuillotineBestAreaFit)

	r, _, ok := m.choose(20, 20, false)
	if !ok {
		t.Fatal("choose failed")
	}
	m.place(r, false)
	m.addFree(r)

	r2, rotated, ok := m.choose(20, 20, false)
	if !ok {
		t.Fatal("expected hole reuse to succeed")
	}
	if rotated {
		t.Error("unexpected rotation reusing an exact-size hole")
	}
	if r2 != r {
		t.Errorf("reused hole = %+v, want %+v", r2, r)
	}
}

func TestSkylineModeOversizedHoleSplitsRemainder(t *testing.T) {
	border := texpack.NewRect(0, 0, 100, 100)
	m := newSkylineMode(border, texpack.SkylineBottomLeft, texpack.GuillotineBestAreaFit)

	r, _, ok := m.choose(40, 40, false)
	if !ok {
		t.Fatal("initial choose failed")
	}
	m.place(r, false)
	m.addFree(r)

	// Consuming a smaller piece of the oversized hole must leave the
	// leftover as a reusable hole instead of discarding it wholesale.
	small, _, ok := m.choose(20, 20, false)
	if !ok {
		t.Fatal("expected the oversized hole to satisfy a smaller request")
	}
	m.place(small, false)

	if len(m.holes) == 0 {
		t.Fatal("expected a leftover remainder hole after partially consuming an oversized hole")
	}
	var remainderArea uint32
	for _, h := range m.holes {
		remainderArea += h.W * h.H
	}
	if want := uint32(40*40 - 20*20); remainderArea != want {
		t.Errorf("remainder hole area = %d, want %d", remainderArea, want)
	}

	if _, _, ok := m.choose(20, 10, false); !ok {
		t.Error("expected the remainder hole to accept a further placement")
	}
}

func TestSkylineModeAdjacentHolesMergeOnFree(t *testing.T) {
	border := texpack.NewRect(0, 0, 100, 40)
	m := newSkylineMode(border, texpack.SkylineBottomLeft, texpack.GuillotineBestAreaFit)

	r1, _, ok := m.choose(20, 40, false)
	if !ok {
		t.Fatal("choose r1 failed")
	}
	m.place(r1, false)

	r2, _, ok := m.choose(20, 40, false)
	if !ok {
		t.Fatal("choose r2 failed")
	}
	m.place(r2, false)

	m.addFree(r1)
	m.addFree(r2)

	if len(m.holes) != 1 {
		t.Fatalf("len(holes) = %d, want 1 after merging two adjacent, same-height frees", len(m.holes))
	}
	if want := texpack.NewRect(0, 0, 40, 40); m.holes[0] != want {
		t.Errorf("merged hole = %+v, want %+v", m.holes[0], want)
	}
}

func TestSkylineModeMinWastePrefersTighterFit(t *testing.T) {
	border := texpack.NewRect(0, 0, 100, 30)
	m := newSkylineMode(border, texpack.SkylineMinWaste, texpack.GuillotineBestAreaFit)

	// Place a tall block to create an uneven skyline.
	r1, _, ok := m.choose(20, 30, false)
	if !ok {
		t.Fatal("choose r1 failed")
	}
	m.place(r1, false)

	// A short wide item after it should prefer the low remaining
	// segment over creating waste elsewhere.
	r2, _, ok := m.choose(80, 10, false)
	if !ok {
		t.Fatal("choose r2 failed")
	}
	if r2.X != 20 {
		t.Errorf("r2.X = %d, want 20 (flush against the first block)", r2.X)
	}
}
