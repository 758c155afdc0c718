// Package runtime implements an online packing session: textures can be
// appended and evicted one at a time against a set of pages that grows
// on demand, unlike the offline batch pipeline which plans every placement up
// front.
package runtime

import (
	"sort"
	"sync"

	"github.com/go-texpacker/texpack"
)

// pageMode is the placement strategy a single page runs, chosen once
// per page from Config.RuntimeStrategy.
type pageMode interface {
	choose(w, h uint32, allowRotation bool) (texpack.Rect, bool, bool)
	place(slot texpack.Rect, rotated bool)
	addFree(r texpack.Rect)
}

type usedEntry struct {
	frame texpack.Frame
	slot  texpack.Rect // reserved area including padding/extrusion
}

type rtPage struct {
	id     int
	width  uint32
	height uint32
	used   map[string]usedEntry
	mode   pageMode
}

func newPage(id int, cfg texpack.Config) *rtPage {
	pad := cfg.BorderPadding
	border := texpack.NewRect(pad, pad, satSub(cfg.MaxWidth, pad*2), satSub(cfg.MaxHeight, pad*2))

	var mode pageMode
	switch cfg.RuntimeStrategy {
	case texpack.RuntimeShelf:
		mode = newShelfMode(border, cfg.ShelfPolicy)
	case texpack.RuntimeSkyline:
		mode = newSkylineMode(border, cfg.SkylineHeuristic, cfg.GChoice)
	default:
		mode = newGuillotineMode(border, cfg.GChoice, cfg.GSplit)
	}

	return &rtPage{id: id, width: cfg.MaxWidth, height: cfg.MaxHeight, used: make(map[string]usedEntry), mode: mode}
}

// RuntimeStats summarizes a session's current occupancy.
type RuntimeStats struct {
	NumPages      int
	NumTextures   int
	TotalPageArea uint64
	UsedArea      uint64
	Occupancy     float64
}

// Session is a live, mutable atlas: textures are appended and evicted
// one key at a time, each append choosing the first page (in creation
// order) with room, opening a fresh page only when none fits.
type Session struct {
	mu    sync.Mutex
	cfg   texpack.Config
	pages []*rtPage
}

// NewSession opens a session with no pages; the first Append call
// creates page 0.
func NewSession(cfg texpack.Config) *Session {
	return &Session{cfg: cfg}
}

// reservedDims returns the slot size (content size plus padding and
// extrusion) a rect of contentW x contentH needs reserved on the page.
func (s *Session) reservedDims(contentW, contentH uint32) (uint32, uint32) {
	extra := s.cfg.TexturePadding + s.cfg.TextureExtrusion*2
	return satAdd(contentW, extra), satAdd(contentH, extra)
}

// makeFrame builds the output Frame for a placed slot, swapping content
// dimensions under rotation so Frame.Frame always reports the
// post-rotation footprint actually occupied on the page.
func (s *Session) makeFrame(key string, rect, source texpack.Rect, origSize [2]uint32, trimmed bool, slot texpack.Rect, rotated bool) texpack.Frame {
	fw, fh := rtContentDims(rect, rotated)
	padHalf := s.cfg.TexturePadding / 2
	off := s.cfg.TextureExtrusion + padHalf
	frame := texpack.NewRect(slot.X+off, slot.Y+off, fw, fh)
	return texpack.Frame{
		Key:        key,
		Frame:      frame,
		Rotated:    rotated,
		Trimmed:    trimmed,
		Source:     source,
		SourceSize: origSize,
	}
}

func rtContentDims(rect texpack.Rect, rotated bool) (uint32, uint32) {
	if rotated {
		return rect.H, rect.W
	}
	return rect.W, rect.H
}

// Append places a new texture, opening additional pages as needed. It
// returns the placed Frame and the page id it landed on.
func (s *Session) Append(key string, w, h uint32, source texpack.Rect, origSize [2]uint32, trimmed bool) (texpack.Frame, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cfg.Validate(); err != nil {
		return texpack.Frame{}, 0, err
	}
	if _, _, onPage := s.findLocked(key); onPage {
		return texpack.Frame{}, 0, &texpack.InvalidKeyError{Key: key, Msg: "key already present in session"}
	}

	rect := texpack.NewRect(0, 0, w, h)
	needW, needH := s.reservedDims(w, h)

	for _, p := range s.pages {
		if frame, ok := s.tryPlace(p, key, rect, source, origSize, trimmed, needW, needH); ok {
			return frame, p.id, nil
		}
	}

	p := newPage(len(s.pages), s.cfg)
	s.pages = append(s.pages, p)
	if frame, ok := s.tryPlace(p, key, rect, source, origSize, trimmed, needW, needH); ok {
		return frame, p.id, nil
	}
	return texpack.Frame{}, 0, &texpack.OutOfSpaceError{Key: key, W: w, H: h, PagesAttempted: len(s.pages)}
}

func (s *Session) tryPlace(p *rtPage, key string, rect, source texpack.Rect, origSize [2]uint32, trimmed bool, needW, needH uint32) (texpack.Frame, bool) {
	slot, rotated, ok := p.mode.choose(needW, needH, s.cfg.AllowRotation)
	if !ok {
		return texpack.Frame{}, false
	}
	p.mode.place(slot, rotated)
	frame := s.makeFrame(key, rect, source, origSize, trimmed, slot, rotated)
	p.used[key] = usedEntry{frame: frame, slot: slot}
	return frame, true
}

func (s *Session) findLocked(key string) (*rtPage, usedEntry, bool) {
	for _, p := range s.pages {
		if e, ok := p.used[key]; ok {
			return p, e, true
		}
	}
	return nil, usedEntry{}, false
}

// Evict removes key from the session, freeing its reserved slot for
// reuse by later Append calls on the same page. It reports whether key
// was present.
func (s *Session) Evict(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, e, ok := s.findLocked(key)
	if !ok {
		return false
	}
	delete(p.used, key)
	p.mode.addFree(e.slot)
	return true
}

// EvictAt removes key from page pageID specifically, addressing the
// page directly by its dense id instead of scanning every open page
// the way Evict does. It reports whether key was present on that page;
// a mismatched pageID (wrong page, or key evicted from elsewhere) is
// not an error, it simply reports false.
func (s *Session) EvictAt(pageID int, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pageID < 0 || pageID >= len(s.pages) || s.pages[pageID].id != pageID {
		return false
	}
	p := s.pages[pageID]
	e, ok := p.used[key]
	if !ok {
		return false
	}
	delete(p.used, key)
	p.mode.addFree(e.slot)
	return true
}

// GetFrame reports the current placement of key, if present.
func (s *Session) GetFrame(key string) (texpack.Frame, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, e, ok := s.findLocked(key)
	if !ok {
		return texpack.Frame{}, 0, false
	}
	return e.frame, p.id, true
}

// GetReservedSlot reports the padded/extruded slot reserved for key on
// its page, distinct from GetFrame's unpadded content rect.
func (s *Session) GetReservedSlot(key string) (texpack.Rect, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, e, ok := s.findLocked(key)
	if !ok {
		return texpack.Rect{}, 0, false
	}
	return e.slot, p.id, true
}

// Contains reports whether key is currently placed anywhere in the
// session.
func (s *Session) Contains(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _, ok := s.findLocked(key)
	return ok
}

// Keys returns every currently-placed key, sorted for determinism.
func (s *Session) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []string
	for _, p := range s.pages {
		for k := range p.used {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// TextureCount reports how many keys are currently placed.
func (s *Session) TextureCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.pages {
		n += len(p.used)
	}
	return n
}

// NumPages reports how many pages the session has opened so far.
func (s *Session) NumPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// Stats summarizes current occupancy across every open page.
func (s *Session) Stats() RuntimeStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st RuntimeStats
	st.NumPages = len(s.pages)
	for _, p := range s.pages {
		st.TotalPageArea += uint64(p.width) * uint64(p.height)
		for _, e := range p.used {
			st.NumTextures++
			st.UsedArea += uint64(e.frame.Frame.W) * uint64(e.frame.Frame.H)
		}
	}
	if st.TotalPageArea > 0 {
		st.Occupancy = float64(st.UsedArea) / float64(st.TotalPageArea)
	}
	return st
}

// SnapshotAtlas builds a point-in-time [texpack.Atlas] view of every
// page and placed frame currently in the session.
func (s *Session) SnapshotAtlas() texpack.Atlas {
	s.mu.Lock()
	defer s.mu.Unlock()

	pages := make([]texpack.Page, 0, len(s.pages))
	for _, p := range s.pages {
		frames := make([]texpack.Frame, 0, len(p.used))
		for _, e := range p.used {
			frames = append(frames, e.frame)
		}
		sort.Slice(frames, func(i, j int) bool { return frames[i].Key < frames[j].Key })
		pages = append(pages, texpack.Page{ID: p.id, Width: p.width, Height: p.height, Frames: frames})
	}
	return texpack.Atlas{Pages: pages}
}
