package texpack

import "image"

// Frame is a single placed sprite within a page.
type Frame struct {
	// Key identifies the sprite (typically a filename or asset path).
	Key string
	// Frame is the content rectangle inside the page, in post-rotation
	// dimensions.
	Frame Rect
	// Rotated is true when the source was rotated 90° clockwise to fit.
	Rotated bool
	// Trimmed is true when transparent borders were removed before packing.
	Trimmed bool
	// Source is the opaque sub-rect within the original image, after
	// trimming (or the full image rect when Trimmed is false).
	Source Rect
	// SourceSize is the untrimmed original image's (width, height).
	SourceSize [2]uint32
}

// Page is one output atlas image: a set of non-overlapping placed frames
// within a width×height canvas.
type Page struct {
	ID     int
	Width  uint32
	Height uint32
	Frames []Frame
}

// Meta carries bookkeeping fields propagated to metadata consumers
// (exporters, templates) outside the core.
type Meta struct {
	SchemaVersion   string
	App             string
	Version         string
	Format          string
	Scale           float32
	PowerOfTwo      bool
	Square          bool
	MaxDim          [2]uint32
	Padding         [2]uint32 // (border_padding, texture_padding)
	Extrude         uint32
	AllowRotation   bool
	TrimMode        string
	BackgroundColor *[4]uint8
}

// Atlas is a complete set of pages plus metadata.
type Atlas struct {
	Pages []Page
	Meta  Meta
}

// PackStats summarizes packing efficiency over an Atlas.
type PackStats struct {
	NumPages      int
	NumFrames     int
	TotalPageArea uint64
	UsedFrameArea uint64
	Occupancy     float64
	AvgPageWidth  float64
	AvgPageHeight float64
	MaxPageWidth  uint32
	MaxPageHeight uint32
	NumRotated    int
	NumTrimmed    int
}

// Stats computes packing statistics for the atlas.
func (a *Atlas) Stats() PackStats {
	var s PackStats
	s.NumPages = len(a.Pages)
	var totalW, totalH uint64
	for _, p := range a.Pages {
		area := uint64(p.Width) * uint64(p.Height)
		s.TotalPageArea += area
		if p.Width > s.MaxPageWidth {
			s.MaxPageWidth = p.Width
		}
		if p.Height > s.MaxPageHeight {
			s.MaxPageHeight = p.Height
		}
		totalW += uint64(p.Width)
		totalH += uint64(p.Height)
		for _, f := range p.Frames {
			s.NumFrames++
			s.UsedFrameArea += uint64(f.Frame.W) * uint64(f.Frame.H)
			if f.Rotated {
				s.NumRotated++
			}
			if f.Trimmed {
				s.NumTrimmed++
			}
		}
	}
	if s.TotalPageArea > 0 {
		s.Occupancy = float64(s.UsedFrameArea) / float64(s.TotalPageArea)
	}
	if s.NumPages > 0 {
		s.AvgPageWidth = float64(totalW) / float64(s.NumPages)
		s.AvgPageHeight = float64(totalH) / float64(s.NumPages)
	}
	return s
}

// InputImage is a single decoded image to pack, identified by Key.
type InputImage struct {
	Key   string
	Image image.Image
}

// LayoutItem is pre-trimmed sprite geometry for [PackLayout], used when
// callers already know frame dimensions and don't need pixel compositing.
type LayoutItem struct {
	Key        string
	W, H       uint32
	Source     *Rect
	SourceSize *[2]uint32
	Trimmed    bool
}

// OutputPage pairs a logical Page with its composited RGBA bitmap.
type OutputPage struct {
	Page Page
	RGBA *image.RGBA
}

// PackOutput is the result of an offline pack: atlas metadata plus
// composited RGBA pages.
type PackOutput struct {
	Atlas Atlas
	Pages []OutputPage
}
