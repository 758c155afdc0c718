package texpack

import (
	"image"
	"sort"

	"github.com/go-texpacker/texpack/internal/blit"
	"github.com/go-texpacker/texpack/internal/trim"
	"github.com/go-texpacker/texpack/packer"
)

// prepItem is the common per-sprite working set both Pack and
// PackLayout place: post-trim geometry plus enough bookkeeping to
// restore the original frame metadata and composite pixels.
type prepItem struct {
	key      string
	rgba     *image.RGBA // nil for PackLayout
	rect     Rect        // trimmed content rect, origin-relative
	trimmed  bool
	source   Rect // sub-rect within the original image/declared size
	origSize [2]uint32
}

// Pack packs a set of decoded images into one or more composited atlas
// pages. Inputs must be non-empty and cfg must validate.
func Pack(inputs []InputImage, cfg Config) (PackOutput, error) {
	if len(inputs) == 0 {
		return PackOutput{}, ErrEmpty
	}
	if err := cfg.Validate(); err != nil {
		return PackOutput{}, err
	}

	prepared := make([]prepItem, 0, len(inputs))
	for _, inp := range inputs {
		rgba := toRGBA(inp.Image)
		b := rgba.Bounds()
		iw, ih := uint32(b.Dx()), uint32(b.Dy())

		item := prepItem{key: inp.Key, rgba: rgba, origSize: [2]uint32{iw, ih}}
		if cfg.Trim {
			frame, src, ok := trim.Compute(rgba, cfg.TrimThreshold)
			if ok {
				item.rect = Rect{W: frame.W, H: frame.H}
				item.trimmed = true
				item.source = Rect{X: src.X, Y: src.Y, W: src.W, H: src.H}
			} else {
				switch cfg.TransparentPolicy {
				case TransparentSkip:
					continue
				default:
					item.rect = Rect{W: 1, H: 1}
					item.trimmed = true
					item.source = Rect{W: 1, H: 1}
				}
			}
		} else {
			item.rect = Rect{W: iw, H: ih}
			item.source = Rect{W: iw, H: ih}
		}
		prepared = append(prepared, item)
	}
	if len(prepared) == 0 {
		return PackOutput{}, ErrEmpty
	}

	sortPrepared(prepared, cfg.SortOrder)

	if cfg.Family == FamilyAuto {
		return packAuto(prepared, cfg)
	}
	return packPrepared(prepared, cfg)
}

// PackLayout packs pre-measured sprite geometry into pages without
// touching pixels, for callers that already know frame dimensions.
func PackLayout(items []LayoutItem, cfg Config) (Atlas, error) {
	if len(items) == 0 {
		return Atlas{}, ErrEmpty
	}
	if err := cfg.Validate(); err != nil {
		return Atlas{}, err
	}

	prepared := make([]prepItem, 0, len(items))
	for _, it := range items {
		rect := Rect{W: it.W, H: it.H}
		source := rect
		if it.Source != nil {
			source = *it.Source
		}
		origSize := [2]uint32{it.W, it.H}
		if it.SourceSize != nil {
			origSize = *it.SourceSize
		}
		prepared = append(prepared, prepItem{
			key:      it.Key,
			rect:     rect,
			trimmed:  it.Trimmed,
			source:   source,
			origSize: origSize,
		})
	}

	sortPrepared(prepared, cfg.SortOrder)

	if cfg.Family == FamilyAuto {
		out, err := packAutoLayout(prepared, cfg)
		if err != nil {
			return Atlas{}, err
		}
		return out, nil
	}

	pages, err := packPages(prepared, cfg)
	if err != nil {
		return Atlas{}, err
	}
	return Atlas{Pages: pages, Meta: buildMeta(cfg)}, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}

func sortPrepared(items []prepItem, order SortOrder) {
	switch order {
	case SortNone:
		return
	case SortNameAsc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].key < items[j].key })
	case SortMaxSideDesc:
		sort.SliceStable(items, func(i, j int) bool {
			ai, aj := maxU32p(items[i].rect.W, items[i].rect.H), maxU32p(items[j].rect.W, items[j].rect.H)
			if ai != aj {
				return ai > aj
			}
			return items[i].key < items[j].key
		})
	case SortHeightDesc:
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].rect.H != items[j].rect.H {
				return items[i].rect.H > items[j].rect.H
			}
			return items[i].key < items[j].key
		})
	case SortWidthDesc:
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].rect.W != items[j].rect.W {
				return items[i].rect.W > items[j].rect.W
			}
			return items[i].key < items[j].key
		})
	default: // SortAreaDesc
		sort.SliceStable(items, func(i, j int) bool {
			ai := uint64(items[i].rect.W) * uint64(items[i].rect.H)
			aj := uint64(items[j].rect.W) * uint64(items[j].rect.H)
			if ai != aj {
				return ai > aj
			}
			return items[i].key < items[j].key
		})
	}
}

func maxU32p(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// packPages runs the shared greedy per-page placement loop: open a
// fresh Strategy, place everything that fits, finalize the page size,
// and repeat with whatever's left until every item has a home.
func packPages(prepared []prepItem, cfg Config) ([]Page, error) {
	remaining := make([]int, len(prepared))
	for i := range remaining {
		remaining[i] = i
	}

	var pages []Page
	pageID := 0
	total := len(prepared)

	for len(remaining) > 0 {
		strategy := packer.New(cfg)
		var frames []Frame

		for {
			placedAny := false
			var kept []int
			for _, idx := range remaining {
				p := prepared[idx]
				if !strategy.CanPack(p.rect) {
					kept = append(kept, idx)
					continue
				}
				f, ok := strategy.Pack(p.key, p.rect)
				if !ok {
					kept = append(kept, idx)
					continue
				}
				f.Trimmed = p.trimmed
				f.Source = p.source
				f.SourceSize = p.origSize
				frames = append(frames, f)
				placedAny = true
			}
			remaining = kept
			if !placedAny {
				break
			}
		}

		if len(frames) == 0 {
			return nil, &OutOfSpaceGenericError{Placed: total - len(remaining), Total: total}
		}

		pageW, pageH := finalizePageSize(frames, cfg)
		pages = append(pages, Page{ID: pageID, Width: pageW, Height: pageH, Frames: frames})
		pageID++
	}

	return pages, nil
}

func finalizePageSize(frames []Frame, cfg Config) (uint32, uint32) {
	padHalf := cfg.TexturePadding / 2
	padRem := cfg.TexturePadding - padHalf
	rightExtra := cfg.TextureExtrusion + padRem
	bottomExtra := cfg.TextureExtrusion + padRem

	var pageW, pageH uint32
	if cfg.ForceMaxDimensions {
		pageW, pageH = cfg.MaxWidth, cfg.MaxHeight
	}
	for _, f := range frames {
		pageW = maxU32p(pageW, f.Frame.Right()+1+rightExtra+cfg.BorderPadding)
		pageH = maxU32p(pageH, f.Frame.Bottom()+1+bottomExtra+cfg.BorderPadding)
	}
	if cfg.PowerOfTwo {
		pageW = nextPow2(maxU32p(pageW, 1))
		pageH = nextPow2(maxU32p(pageH, 1))
	}
	if cfg.Square {
		m := maxU32p(pageW, pageH)
		pageW, pageH = m, m
	}
	return pageW, pageH
}

func nextPow2(v uint32) uint32 {
	if v <= 1 {
		return 1
	}
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	return v + 1
}

func packPrepared(prepared []prepItem, cfg Config) (PackOutput, error) {
	pages, err := packPages(prepared, cfg)
	if err != nil {
		return PackOutput{}, err
	}

	byKey := make(map[string]*prepItem, len(prepared))
	for i := range prepared {
		byKey[prepared[i].key] = &prepared[i]
	}

	outPages := make([]OutputPage, 0, len(pages))
	for _, page := range pages {
		canvas := image.NewRGBA(image.Rect(0, 0, int(page.Width), int(page.Height)))
		for _, f := range page.Frames {
			p, ok := byKey[f.Key]
			if !ok || p.rgba == nil {
				continue
			}
			blit.RGBA(p.rgba, canvas, f.Frame.X, f.Frame.Y, p.source.X, p.source.Y, p.source.W, p.source.H,
				f.Rotated, cfg.TextureExtrusion, cfg.TextureOutlines)
		}
		outPages = append(outPages, OutputPage{Page: page, RGBA: canvas})
	}

	atlas := Atlas{Pages: pages, Meta: buildMeta(cfg)}
	return PackOutput{Atlas: atlas, Pages: outPages}, nil
}

func buildMeta(cfg Config) Meta {
	trimMode := "none"
	if cfg.Trim {
		trimMode = "trim"
	}
	return Meta{
		SchemaVersion: "1",
		App:           "texpack",
		Version:       moduleVersion,
		Format:        "RGBA8888",
		Scale:         1,
		PowerOfTwo:    cfg.PowerOfTwo,
		Square:        cfg.Square,
		MaxDim:        [2]uint32{cfg.MaxWidth, cfg.MaxHeight},
		Padding:       [2]uint32{cfg.BorderPadding, cfg.TexturePadding},
		Extrude:       cfg.TextureExtrusion,
		AllowRotation: cfg.AllowRotation,
		TrimMode:      trimMode,
	}
}

// moduleVersion identifies the packing schema producer in Meta.App's
// companion Version field. Bump it alongside on-disk atlas format
// changes, not ordinary internal refactors.
const moduleVersion = "1.0.0"
