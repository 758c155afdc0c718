// Package texpack packs 2D sprites into one or more rectangular atlas
// pages. It places every sprite on a non-overlapping axis-aligned
// sub-rectangle, honoring per-sprite padding, optional edge extrusion,
// optional 90° rotation, and transparent-border trimming, subject to
// page-size constraints (max dimensions, power-of-two, square).
//
// texpack covers two usage modes:
//
//   - Offline batch packing: [Pack] and [PackLayout] compose a full set of
//     inputs into one or more finished [Atlas] pages in one call, using the
//     Skyline, MaxRects, or Guillotine strategy (or an Auto portfolio
//     across several configurations of each, see [Config.Family]).
//   - Online runtime sessions: package [github.com/go-texpacker/texpack/runtime]
//     appends and evicts individual frames against a live, mutable page
//     set and reports the dirty regions a renderer needs to re-upload.
//
// texpack decodes nothing and writes no files: it consumes already
// decoded RGBA pixel buffers and produces placed frames, composited
// pages, and atlas descriptions. Translating those to and from on-disk
// formats, CLI flags, or GUIs is a caller's concern.
//
// # Quick start
//
//	cfg := texpack.DefaultConfig()
//	cfg.MaxWidth, cfg.MaxHeight = 512, 512
//
//	out, err := texpack.Pack([]texpack.InputImage{
//		{Key: "hero", Image: heroImg},
//		{Key: "enemy", Image: enemyImg},
//	}, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, p := range out.Pages {
//		fmt.Println(p.Page.Width, p.Page.Height, len(p.Page.Frames))
//	}
package texpack
