package texpack

import "testing"

func TestAutoCandidatesFastIsNarrow(t *testing.T) {
	base := DefaultConfig()
	base.AutoMode = AutoFast
	cands := autoCandidates(base, 10)
	if len(cands) != 2 {
		t.Fatalf("len(candidates) = %d, want 2 for AutoFast", len(cands))
	}
}

func TestAutoCandidatesQualityIsWide(t *testing.T) {
	base := DefaultConfig()
	base.AutoMode = AutoQuality
	cands := autoCandidates(base, 10)
	if len(cands) != 5 {
		t.Fatalf("len(candidates) = %d, want 5 for AutoQuality", len(cands))
	}
}

func TestAutoCandidatesMRRefThresholdByInputCount(t *testing.T) {
	base := DefaultConfig()
	base.AutoMode = AutoQuality
	base.AutoMRRefInputThreshold = 50

	below := autoCandidates(base, 10)
	above := autoCandidates(base, 50)

	var belowRef, aboveRef bool
	for _, c := range below {
		if c.Family == FamilyMaxRects && c.MRReference {
			belowRef = true
		}
	}
	for _, c := range above {
		if c.Family == FamilyMaxRects && c.MRReference {
			aboveRef = true
		}
	}
	if belowRef {
		t.Error("MRReference enabled below the input threshold")
	}
	if !aboveRef {
		t.Error("MRReference not enabled at/above the input threshold")
	}
}

func TestBetterCandidatePrefersFewerPages(t *testing.T) {
	if !betterCandidate(1, 10000, 2, 100) {
		t.Error("fewer pages should win regardless of area")
	}
	if betterCandidate(2, 100, 1, 10000) {
		t.Error("more pages should never win")
	}
}

func TestBetterCandidateTiesOnAreaWhenPagesEqual(t *testing.T) {
	if !betterCandidate(1, 100, 1, 200) {
		t.Error("equal pages should fall back to smaller area")
	}
	if betterCandidate(1, 200, 1, 100) {
		t.Error("larger area should not win when pages are equal")
	}
}

func TestPackAutoSelectsAValidLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Family = FamilyAuto
	cfg.AutoMode = AutoFast
	cfg.TexturePadding = 0
	cfg.BorderPadding = 0

	items := []LayoutItem{
		{Key: "a", W: 32, H: 32},
		{Key: "b", W: 16, H: 48},
		{Key: "c", W: 64, H: 16},
	}
	atlas, err := PackLayout(items, cfg)
	if err != nil {
		t.Fatalf("PackLayout() error: %v", err)
	}
	if len(atlas.Pages) == 0 {
		t.Fatal("expected at least one page")
	}
	total := 0
	for _, p := range atlas.Pages {
		total += len(p.Frames)
	}
	if total != len(items) {
		t.Errorf("placed %d frames, want %d", total, len(items))
	}
}

func TestPackAutoParallelMatchesSequential(t *testing.T) {
	items := []LayoutItem{
		{Key: "a", W: 32, H: 32},
		{Key: "b", W: 48, H: 48},
		{Key: "c", W: 16, H: 16},
	}

	seqCfg := DefaultConfig()
	seqCfg.Family = FamilyAuto
	seqCfg.AutoMode = AutoQuality
	seqCfg.Parallel = false

	parCfg := seqCfg
	parCfg.Parallel = true

	seq, err := PackLayout(items, seqCfg)
	if err != nil {
		t.Fatalf("sequential PackLayout() error: %v", err)
	}
	par, err := PackLayout(items, parCfg)
	if err != nil {
		t.Fatalf("parallel PackLayout() error: %v", err)
	}
	if len(seq.Pages) != len(par.Pages) {
		t.Errorf("sequential pages = %d, parallel pages = %d, want equal", len(seq.Pages), len(par.Pages))
	}
}
