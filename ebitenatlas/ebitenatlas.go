// Package ebitenatlas adapts a texpack atlas (offline PackOutput or a
// runtime RuntimeAtlas) into ebiten.Image pages and named texture
// regions ready for a game's render loop. It is a domain-stack consumer
// outside the core packer, not a replacement for the metadata export
// formats (JSON/plist) that remain an external collaborator's concern.
package ebitenatlas

import (
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/go-texpacker/texpack"
)

// TextureRegion describes where a named sprite lives within an Atlas's
// Pages, in the shape a sprite-renderer consumes directly: a page index,
// the stored sub-rectangle (post-rotation), and enough of the original
// geometry to undo trimming/rotation when drawing.
type TextureRegion struct {
	Page      int
	X, Y      int
	Width     int
	Height    int
	OriginalW int
	OriginalH int
	OffsetX   int
	OffsetY   int
	Rotated   bool
}

// Atlas pairs rendered ebiten.Image pages with a lookup from sprite key
// to TextureRegion.
type Atlas struct {
	Pages   []*ebiten.Image
	regions map[string]TextureRegion
}

// Region returns the named region. If name is unknown it logs and
// returns a 1x1 placeholder pointing at page 0, so a caller that draws
// blindly gets a visibly wrong but non-crashing sprite instead of a
// panic.
func (a *Atlas) Region(name string) TextureRegion {
	if r, ok := a.regions[name]; ok {
		return r
	}
	log.Printf("texpack/ebitenatlas: region %q not found, using placeholder", name)
	return TextureRegion{Width: 1, Height: 1, OriginalW: 1, OriginalH: 1}
}

// Has reports whether name has a region.
func (a *Atlas) Has(name string) bool {
	_, ok := a.regions[name]
	return ok
}

// FromPackOutput builds an Atlas from an offline Pack/PackLayout result,
// converting each composited RGBA page into an *ebiten.Image.
func FromPackOutput(out texpack.PackOutput) *Atlas {
	atlas := &Atlas{regions: make(map[string]TextureRegion, len(out.Pages))}
	for _, op := range out.Pages {
		img := ebiten.NewImageFromImage(op.RGBA)
		pageIdx := len(atlas.Pages)
		atlas.Pages = append(atlas.Pages, img)
		for _, f := range op.Page.Frames {
			atlas.regions[f.Key] = frameToRegion(f, pageIdx)
		}
	}
	return atlas
}

func frameToRegion(f texpack.Frame, page int) TextureRegion {
	return TextureRegion{
		Page:      page,
		X:         int(f.Frame.X),
		Y:         int(f.Frame.Y),
		Width:     int(f.Frame.W),
		Height:    int(f.Frame.H),
		OriginalW: int(f.SourceSize[0]),
		OriginalH: int(f.SourceSize[1]),
		OffsetX:   int(f.Source.X),
		OffsetY:   int(f.Source.Y),
		Rotated:   f.Rotated,
	}
}

// Live mirrors a runtime session's mutable pages as ebiten images. Its
// pages don't auto-update when the session appends/evicts; the caller
// re-syncs whichever page id an UpdateRegion names after each call.
type Live struct {
	pages []*ebiten.Image
}

// Sync rebuilds page id's ebiten.Image from its current RGBA pixels.
// Callers typically pass the image returned by
// runtimeAtlas.GetPageImage(region.PageID) for each UpdateRegion returned by AppendWithImage/EvictWithClear.
func (l *Live) Sync(pageID int, rgba *image.RGBA) {
	for len(l.pages) <= pageID {
		l.pages = append(l.pages, nil)
	}
	l.pages[pageID] = ebiten.NewImageFromImage(rgba)
}

// Page returns page id's current ebiten.Image, or nil if never synced.
func (l *Live) Page(id int) *ebiten.Image {
	if id < 0 || id >= len(l.pages) {
		return nil
	}
	return l.pages[id]
}

// NumPages reports how many page slots have been synced at least once
// (a slot may still hold nil if an earlier id was synced first).
func (l *Live) NumPages() int { return len(l.pages) }
