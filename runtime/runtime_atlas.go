package runtime

import (
	"image"
	"image/color"

	"github.com/go-texpacker/texpack"
	"github.com/go-texpacker/texpack/internal/blit"
	"github.com/go-texpacker/texpack/internal/trim"
)

// UpdateRegion describes the sub-rectangle of a page that changed as a
// result of an Append/Evict call, so a caller backed by a GPU texture
// can upload just the dirty area instead of the whole page.
type UpdateRegion struct {
	PageID int
	Rect   texpack.Rect
}

// Empty reports whether the region covers no pixels.
func (u UpdateRegion) Empty() bool { return u.Rect.W == 0 || u.Rect.H == 0 }

// Area returns the region's pixel area.
func (u UpdateRegion) Area() uint64 { return uint64(u.Rect.W) * uint64(u.Rect.H) }

// RuntimeAtlas pairs a [Session]'s placement bookkeeping with actual
// page pixels, compositing appended images in place and clearing
// evicted regions.
type RuntimeAtlas struct {
	session         *Session
	cfg             texpack.Config
	pages           []*image.RGBA
	backgroundColor color.RGBA
}

// NewRuntimeAtlas opens a pixel-backed runtime atlas against cfg.
func NewRuntimeAtlas(cfg texpack.Config) *RuntimeAtlas {
	return &RuntimeAtlas{session: NewSession(cfg), cfg: cfg}
}

// WithBackgroundColor sets the color new pages (and cleared regions)
// are filled with, returning ra for chaining.
func (ra *RuntimeAtlas) WithBackgroundColor(c color.RGBA) *RuntimeAtlas {
	ra.backgroundColor = c
	return ra
}

func (ra *RuntimeAtlas) ensurePage(id int) *image.RGBA {
	for len(ra.pages) <= id {
		canvas := image.NewRGBA(image.Rect(0, 0, int(ra.cfg.MaxWidth), int(ra.cfg.MaxHeight)))
		if ra.backgroundColor != (color.RGBA{}) {
			fillRGBA(canvas, ra.backgroundColor)
		}
		ra.pages = append(ra.pages, canvas)
	}
	return ra.pages[id]
}

func fillRGBA(canvas *image.RGBA, c color.RGBA) {
	b := canvas.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			canvas.SetRGBA(x, y, c)
		}
	}
}

// AppendWithImage optionally trims src, places it via the underlying session,
// composites it onto the target page, and reports the dirty region.
func (ra *RuntimeAtlas) AppendWithImage(key string, src *image.RGBA, trimThreshold uint8, trim bool) (texpack.Frame, UpdateRegion, error) {
	b := src.Bounds()
	iw, ih := uint32(b.Dx()), uint32(b.Dy())
	rect := texpack.Rect{W: iw, H: ih}
	trimmed := false

	if trim {
		if fr, sr, ok := trimRGBA(src, trimThreshold); ok {
			rect = fr
			trimmed = true
			frame, pageID, err := ra.session.Append(key, rect.W, rect.H, sr, [2]uint32{iw, ih}, true)
			if err != nil {
				return texpack.Frame{}, UpdateRegion{}, err
			}
			region := ra.blitToPage(pageID, src, frame, sr)
			return frame, region, nil
		}
		switch ra.cfg.TransparentPolicy {
		case texpack.TransparentSkip:
			return texpack.Frame{}, UpdateRegion{}, &texpack.InvalidInputError{Msg: "key " + key + " is fully transparent"}
		default:
			rect = texpack.Rect{W: 1, H: 1}
			trimmed = true
		}
	}

	source := texpack.Rect{W: rect.W, H: rect.H}
	frame, pageID, err := ra.session.Append(key, rect.W, rect.H, source, [2]uint32{iw, ih}, trimmed)
	if err != nil {
		return texpack.Frame{}, UpdateRegion{}, err
	}
	region := ra.blitToPage(pageID, src, frame, source)
	return frame, region, nil
}

func trimRGBA(img *image.RGBA, threshold uint8) (texpack.Rect, texpack.Rect, bool) {
	frame, src, ok := trim.Compute(img, threshold)
	return texpack.Rect{X: frame.X, Y: frame.Y, W: frame.W, H: frame.H},
		texpack.Rect{X: src.X, Y: src.Y, W: src.W, H: src.H}, ok
}

// Append places pre-measured geometry (no pixels) via the session,
// useful for reserving slots ahead of an async image decode.
func (ra *RuntimeAtlas) Append(key string, w, h uint32) (texpack.Frame, error) {
	source := texpack.Rect{W: w, H: h}
	frame, _, err := ra.session.Append(key, w, h, source, [2]uint32{w, h}, false)
	return frame, err
}

func (ra *RuntimeAtlas) blitToPage(pageID int, src *image.RGBA, frame texpack.Frame, source texpack.Rect) UpdateRegion {
	canvas := ra.ensurePage(pageID)
	blit.RGBA(src, canvas, frame.Frame.X, frame.Frame.Y, source.X, source.Y, source.W, source.H,
		frame.Rotated, ra.cfg.TextureExtrusion, ra.cfg.TextureOutlines)

	extra := ra.cfg.TextureExtrusion
	dirty := texpack.NewRect(
		satSub2(frame.Frame.X, extra), satSub2(frame.Frame.Y, extra),
		satAdd(frame.Frame.W, extra*2), satAdd(frame.Frame.H, extra*2),
	)
	return UpdateRegion{PageID: pageID, Rect: dirty}
}

// EvictWithClear removes key and clears its reserved slot back to the
// background color, returning the cleared region.
func (ra *RuntimeAtlas) EvictWithClear(key string) (UpdateRegion, bool) {
	slot, pageID, ok := ra.session.GetReservedSlot(key)
	if !ok {
		return UpdateRegion{}, false
	}
	if !ra.session.Evict(key) {
		return UpdateRegion{}, false
	}
	ra.clearRegion(pageID, slot)
	return UpdateRegion{PageID: pageID, Rect: slot}, true
}

// EvictByKeyWithClear is an alias of EvictWithClear kept for callers
// that distinguish eviction-by-key from positional eviction elsewhere
// in their own bookkeeping.
func (ra *RuntimeAtlas) EvictByKeyWithClear(key string) (UpdateRegion, bool) {
	return ra.EvictWithClear(key)
}

// EvictAtWithClear removes key from page pageID specifically (see
// [Session.EvictAt]) and clears its reserved slot back to the
// background color, returning the cleared region.
func (ra *RuntimeAtlas) EvictAtWithClear(pageID int, key string) (UpdateRegion, bool) {
	slot, gotPageID, ok := ra.session.GetReservedSlot(key)
	if !ok || gotPageID != pageID {
		return UpdateRegion{}, false
	}
	if !ra.session.EvictAt(pageID, key) {
		return UpdateRegion{}, false
	}
	ra.clearRegion(pageID, slot)
	return UpdateRegion{PageID: pageID, Rect: slot}, true
}

func (ra *RuntimeAtlas) clearRegion(pageID int, r texpack.Rect) {
	if pageID >= len(ra.pages) {
		return
	}
	canvas := ra.pages[pageID]
	b := canvas.Bounds()
	for y := uint32(0); y < r.H; y++ {
		for x := uint32(0); x < r.W; x++ {
			px, py := b.Min.X+int(r.X+x), b.Min.Y+int(r.Y+y)
			if px < b.Min.X || px >= b.Max.X || py < b.Min.Y || py >= b.Max.Y {
				continue
			}
			canvas.SetRGBA(px, py, ra.backgroundColor)
		}
	}
}

// GetPageImage returns a read-only view of page id's current pixels.
func (ra *RuntimeAtlas) GetPageImage(id int) (*image.RGBA, bool) {
	if id < 0 || id >= len(ra.pages) {
		return nil, false
	}
	return ra.pages[id], true
}

// NumPages reports how many pages have pixel storage allocated.
func (ra *RuntimeAtlas) NumPages() int { return len(ra.pages) }

// GetFrame delegates to the underlying session.
func (ra *RuntimeAtlas) GetFrame(key string) (texpack.Frame, int, bool) { return ra.session.GetFrame(key) }

// Contains delegates to the underlying session.
func (ra *RuntimeAtlas) Contains(key string) bool { return ra.session.Contains(key) }

// Keys delegates to the underlying session.
func (ra *RuntimeAtlas) Keys() []string { return ra.session.Keys() }

// TextureCount delegates to the underlying session.
func (ra *RuntimeAtlas) TextureCount() int { return ra.session.TextureCount() }

// Stats delegates to the underlying session.
func (ra *RuntimeAtlas) Stats() RuntimeStats { return ra.session.Stats() }

// SnapshotAtlas delegates to the underlying session.
func (ra *RuntimeAtlas) SnapshotAtlas() texpack.Atlas { return ra.session.SnapshotAtlas() }

func satSub2(a, b uint32) uint32 {
	if a < b {
		return 0
	}
	return a - b
}
