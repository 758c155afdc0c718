package runtime

import (
	"testing"

	"github.com/go-texpacker/texpack"
)

func sessionConfig(strategy texpack.RuntimeStrategy) texpack.Config {
	cfg := texpack.DefaultConfig()
	cfg.MaxWidth, cfg.MaxHeight = 256, 256
	cfg.TexturePadding = 0
	cfg.BorderPadding = 0
	cfg.TextureExtrusion = 0
	cfg.RuntimeStrategy = strategy
	return cfg
}

func allStrategies() []texpack.RuntimeStrategy {
	return []texpack.RuntimeStrategy{texpack.RuntimeGuillotine, texpack.RuntimeShelf, texpack.RuntimeSkyline}
}

func TestAppendPlacesAndReportsFrame(t *testing.T) {
	for _, strat := range allStrategies() {
		s := NewSession(sessionConfig(strat))
		src := texpack.NewRect(0, 0, 40, 40)
		f, pageID, err := s.Append("a", 40, 40, src, [2]uint32{40, 40}, false)
		if err != nil {
			t.Fatalf("strategy %v: Append failed: %v", strat, err)
		}
		if pageID != 0 {
			t.Errorf("strategy %v: first append should land on page 0, got %d", strat, pageID)
		}
		if f.Frame.W != 40 || f.Frame.H != 40 {
			t.Errorf("strategy %v: frame = %+v, want 40x40", strat, f.Frame)
		}
	}
}

func TestAppendDuplicateKeyFails(t *testing.T) {
	s := NewSession(sessionConfig(texpack.RuntimeGuillotine))
	src := texpack.NewRect(0, 0, 10, 10)
	if _, _, err := s.Append("a", 10, 10, src, [2]uint32{10, 10}, false); err != nil {
		t.Fatalf("first append failed: %v", err)
	}
	if _, _, err := s.Append("a", 10, 10, src, [2]uint32{10, 10}, false); err == nil {
		t.Fatal("expected error appending duplicate key")
	}
}

func TestEvictThenAppendReusesPage(t *testing.T) {
	for _, strat := range allStrategies() {
		cfg := sessionConfig(strat)
		cfg.MaxWidth, cfg.MaxHeight = 256, 256
		s := NewSession(cfg)

		src := texpack.NewRect(0, 0, 40, 32)
		_, pageA, err := s.Append("A", 40, 32, src, [2]uint32{40, 32}, false)
		if err != nil {
			t.Fatalf("strategy %v: append A: %v", strat, err)
		}
		srcB := texpack.NewRect(0, 0, 48, 24)
		if _, _, err := s.Append("B", 48, 24, srcB, [2]uint32{48, 24}, false); err != nil {
			t.Fatalf("strategy %v: append B: %v", strat, err)
		}
		if !s.Evict("A") {
			t.Fatalf("strategy %v: evict A failed", strat)
		}
		if s.Contains("A") {
			t.Errorf("strategy %v: session still contains A after evict", strat)
		}

		fC, pageC, err := s.Append("C", 40, 32, src, [2]uint32{40, 32}, false)
		if err != nil {
			t.Fatalf("strategy %v: append C after evicting A: %v", strat, err)
		}
		_ = pageA
		if fC.Frame.W != 40 || fC.Frame.H != 32 {
			t.Errorf("strategy %v: C frame = %+v, want 40x32", strat, fC.Frame)
		}

		atlas := s.SnapshotAtlas()
		var frames []texpack.Frame
		for _, p := range atlas.Pages {
			if p.ID == pageC {
				frames = p.Frames
			}
		}
		for i := 0; i < len(frames); i++ {
			for j := i + 1; j < len(frames); j++ {
				if frames[i].Frame.Intersects(frames[j].Frame) {
					t.Errorf("strategy %v: frames %q and %q overlap after reuse", strat, frames[i].Key, frames[j].Key)
				}
			}
		}
	}
}

func TestEvictUnknownKeyReturnsFalse(t *testing.T) {
	s := NewSession(sessionConfig(texpack.RuntimeGuillotine))
	if s.Evict("nope") {
		t.Error("expected Evict of unknown key to return false")
	}
}

func TestEvictAtRemovesFromAddressedPageOnly(t *testing.T) {
	cfg := sessionConfig(texpack.RuntimeGuillotine)
	cfg.MaxWidth, cfg.MaxHeight = 48, 48
	s := NewSession(cfg)

	_, pageA, err := s.Append("a", 40, 40, texpack.Rect{W: 40, H: 40}, [2]uint32{40, 40}, false)
	if err != nil {
		t.Fatalf("append a: %v", err)
	}
	_, pageB, err := s.Append("b", 40, 40, texpack.Rect{W: 40, H: 40}, [2]uint32{40, 40}, false)
	if err != nil {
		t.Fatalf("append b: %v", err)
	}
	if pageA == pageB {
		t.Fatalf("expected a and b to land on different pages, both got %d", pageA)
	}

	if s.EvictAt(pageB, "a") {
		t.Error("expected EvictAt to fail when key is present on a different page")
	}
	if !s.Contains("a") {
		t.Error("a should remain present after a mismatched-page EvictAt")
	}

	if !s.EvictAt(pageA, "a") {
		t.Fatal("expected EvictAt to succeed when addressing a's actual page")
	}
	if s.Contains("a") {
		t.Error("a should be gone after EvictAt on its own page")
	}
	if !s.Contains("b") {
		t.Error("b should be unaffected by evicting a")
	}

	if s.EvictAt(99, "b") {
		t.Error("expected EvictAt with an out-of-range page id to return false")
	}
}

func TestAppendOpensNewPageOnSpill(t *testing.T) {
	cfg := sessionConfig(texpack.RuntimeGuillotine)
	cfg.MaxWidth, cfg.MaxHeight = 64, 64
	s := NewSession(cfg)

	var lastPage int
	for i := 0; i < 6; i++ {
		key := string(rune('a' + i))
		src := texpack.NewRect(0, 0, 40, 40)
		f, pageID, err := s.Append(key, 40, 40, src, [2]uint32{40, 40}, false)
		if err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
		_ = f
		lastPage = pageID
	}
	if s.NumPages() < 2 {
		t.Errorf("NumPages() = %d, want >= 2 after spilling 40x40 sprites onto a 64x64 page", s.NumPages())
	}
	_ = lastPage
}

func TestStatsOccupancyBounds(t *testing.T) {
	s := NewSession(sessionConfig(texpack.RuntimeGuillotine))
	src := texpack.NewRect(0, 0, 50, 50)
	if _, _, err := s.Append("a", 50, 50, src, [2]uint32{50, 50}, false); err != nil {
		t.Fatalf("append: %v", err)
	}
	st := s.Stats()
	if st.Occupancy <= 0 || st.Occupancy > 1 {
		t.Errorf("Occupancy = %v, want in (0,1]", st.Occupancy)
	}
	if st.NumTextures != 1 {
		t.Errorf("NumTextures = %d, want 1", st.NumTextures)
	}
}

func TestKeysSortedAndTextureCount(t *testing.T) {
	s := NewSession(sessionConfig(texpack.RuntimeGuillotine))
	for _, k := range []string{"zeta", "alpha", "mid"} {
		src := texpack.NewRect(0, 0, 10, 10)
		if _, _, err := s.Append(k, 10, 10, src, [2]uint32{10, 10}, false); err != nil {
			t.Fatalf("append %s: %v", k, err)
		}
	}
	keys := s.Keys()
	want := []string{"alpha", "mid", "zeta"}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
	if s.TextureCount() != 3 {
		t.Errorf("TextureCount() = %d, want 3", s.TextureCount())
	}
}
