package texpack

import (
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// autoCandidates builds the portfolio of concrete configurations the
// Auto family evaluates, derived from base. Quality mode widens the
// portfolio and conditionally enables MaxRects' reference-accurate
// split/prune once the caller's time budget or input count clears a
// threshold, since that mode is markedly slower on large inputs.
func autoCandidates(base Config, nInputs int) []Config {
	thrTime := base.AutoMRRefTimeMsThreshold
	if thrTime == 0 {
		thrTime = 200
	}
	thrInputs := base.AutoMRRefInputThreshold
	if thrInputs == 0 {
		thrInputs = 800
	}
	enableMRRef := base.AutoMode == AutoQuality &&
		(base.TimeBudgetMs >= thrTime || nInputs >= thrInputs)

	if base.AutoMode == AutoFast {
		skylineBL := base
		skylineBL.Family = FamilySkyline
		skylineBL.SkylineHeuristic = SkylineBottomLeft

		mrBAF := base
		mrBAF.Family = FamilyMaxRects
		mrBAF.MRHeuristic = MRBestAreaFit
		mrBAF.MRReference = false

		return []Config{skylineBL, mrBAF}
	}

	skylineMW := base
	skylineMW.Family = FamilySkyline
	skylineMW.SkylineHeuristic = SkylineMinWaste

	mrBAF := base
	mrBAF.Family = FamilyMaxRects
	mrBAF.MRHeuristic = MRBestAreaFit
	mrBAF.MRReference = enableMRRef

	mrBL := base
	mrBL.Family = FamilyMaxRects
	mrBL.MRHeuristic = MRBottomLeft
	mrBL.MRReference = enableMRRef

	mrCP := base
	mrCP.Family = FamilyMaxRects
	mrCP.MRHeuristic = MRContactPoint
	mrCP.MRReference = enableMRRef

	g := base
	g.Family = FamilyGuillotine
	g.GChoice = GuillotineBestAreaFit
	g.GSplit = SplitShorterLeftoverAxis

	return []Config{skylineMW, mrBAF, mrBL, mrCP, g}
}

func pagesArea(pages []Page) uint64 {
	var total uint64
	for _, p := range pages {
		total += uint64(p.Width) * uint64(p.Height)
	}
	return total
}

// betterCandidate reports whether (pages, area) beats the current best
// under the portfolio's reduction order: fewest pages, then least
// total area.
func betterCandidate(pages int, area uint64, bestPages int, bestArea uint64) bool {
	if pages != bestPages {
		return pages < bestPages
	}
	return area < bestArea
}

func packAuto(prepared []prepItem, base Config) (PackOutput, error) {
	candidates := autoCandidates(base, len(prepared))

	type result struct {
		out   PackOutput
		pages int
		area  uint64
	}

	run := func(cand Config) *result {
		out, err := packPrepared(prepared, cand)
		if err != nil {
			return nil
		}
		return &result{out: out, pages: len(out.Atlas.Pages), area: pagesArea(out.Atlas.Pages)}
	}

	var results []*result
	if base.Parallel {
		results = make([]*result, len(candidates))
		var g errgroup.Group
		var mu sync.Mutex
		for i, cand := range candidates {
			i, cand := i, cand
			g.Go(func() error {
				r := run(cand)
				mu.Lock()
				results[i] = r
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	} else {
		start := time.Now()
		for _, cand := range candidates {
			if base.TimeBudgetMs > 0 && uint64(time.Since(start).Milliseconds()) > base.TimeBudgetMs {
				break
			}
			results = append(results, run(cand))
		}
	}

	var best *result
	for _, r := range results {
		if r == nil {
			continue
		}
		if best == nil || betterCandidate(r.pages, r.area, best.pages, best.area) {
			best = r
		}
	}
	if best == nil {
		return PackOutput{}, &OutOfSpaceGenericError{Placed: 0, Total: len(prepared)}
	}
	return best.out, nil
}

func packAutoLayout(prepared []prepItem, base Config) (Atlas, error) {
	candidates := autoCandidates(base, len(prepared))

	type result struct {
		pages []Page
		area  uint64
	}

	run := func(cand Config) *result {
		pages, err := packPages(prepared, cand)
		if err != nil {
			return nil
		}
		return &result{pages: pages, area: pagesArea(pages)}
	}

	var results []*result
	if base.Parallel {
		results = make([]*result, len(candidates))
		var g errgroup.Group
		var mu sync.Mutex
		for i, cand := range candidates {
			i, cand := i, cand
			g.Go(func() error {
				r := run(cand)
				mu.Lock()
				results[i] = r
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	} else {
		start := time.Now()
		for _, cand := range candidates {
			if base.TimeBudgetMs > 0 && uint64(time.Since(start).Milliseconds()) > base.TimeBudgetMs {
				break
			}
			results = append(results, run(cand))
		}
	}

	var best *result
	for _, r := range results {
		if r == nil {
			continue
		}
		if best == nil || betterCandidate(len(r.pages), r.area, len(best.pages), best.area) {
			best = r
		}
	}
	if best == nil {
		return Atlas{}, &OutOfSpaceGenericError{Placed: 0, Total: len(prepared)}
	}
	return Atlas{Pages: best.pages, Meta: buildMeta(base)}, nil
}
