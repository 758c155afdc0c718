package texpack

// AlgorithmFamily selects the top-level packing strategy.
type AlgorithmFamily int

const (
	// FamilySkyline packs against a skyline profile (fast, good baseline,
	// optional waste-map recovery).
	FamilySkyline AlgorithmFamily = iota
	// FamilyMaxRects packs against a free-rectangle list (slower, usually
	// the tightest packing).
	FamilyMaxRects
	// FamilyGuillotine packs by recursively splitting free rectangles.
	FamilyGuillotine
	// FamilyAuto evaluates a small portfolio of configurations and keeps
	// the best result (fewest pages, then least total area).
	FamilyAuto
)

// MaxRectsHeuristic selects which free rectangle MaxRects places a frame
// into.
type MaxRectsHeuristic int

const (
	MRBestAreaFit MaxRectsHeuristic = iota
	MRBestShortSideFit
	MRBestLongSideFit
	MRBottomLeft
	MRContactPoint
)

// SkylineHeuristic selects where along the skyline profile a frame lands.
type SkylineHeuristic int

const (
	SkylineBottomLeft SkylineHeuristic = iota
	SkylineMinWaste
)

// GuillotineChoice selects which free rectangle Guillotine places a
// frame into.
type GuillotineChoice int

const (
	GuillotineBestAreaFit GuillotineChoice = iota
	GuillotineBestShortSideFit
	GuillotineBestLongSideFit
	GuillotineWorstAreaFit
	GuillotineWorstShortSideFit
	GuillotineWorstLongSideFit
)

// GuillotineSplit selects which axis a chosen free rectangle is split
// along once a frame is placed in it.
type GuillotineSplit int

const (
	SplitShorterLeftoverAxis GuillotineSplit = iota
	SplitLongerLeftoverAxis
	SplitMinimizeArea
	SplitMaximizeArea
	SplitShorterAxis
	SplitLongerAxis
)

// RuntimeStrategy selects the page-mode a runtime Session uses to place
// incoming textures as they arrive, independent of the offline Family.
type RuntimeStrategy int

const (
	// RuntimeGuillotine splits the chosen free rectangle on every append,
	// same free-list bookkeeping as the offline Guillotine family.
	RuntimeGuillotine RuntimeStrategy = iota
	// RuntimeShelf packs left-to-right rows ("shelves"), opening a new
	// row once nothing already open fits.
	RuntimeShelf
	// RuntimeSkyline tracks a skyline profile, same placement logic as
	// the offline Skyline family. Evicted slots go to a hole list that
	// later appends try first; gaps under the skyline are not recovered.
	RuntimeSkyline
)

// ShelfPolicy selects how RuntimeShelf searches existing rows for a fit.
type ShelfPolicy int

const (
	// ShelfNextFit only ever considers the most recently opened row.
	ShelfNextFit ShelfPolicy = iota
	// ShelfFirstFit scans every open row in order, keeping rows tighter
	// at the cost of the scan.
	ShelfFirstFit
)

// AutoMode tunes the breadth of the Auto family's candidate portfolio.
type AutoMode int

const (
	AutoFast AutoMode = iota
	AutoQuality
)

// SortOrder controls the deterministic order in which inputs are
// offered to a packer before any algorithm-specific placement logic
// runs.
type SortOrder int

const (
	SortAreaDesc SortOrder = iota
	SortMaxSideDesc
	SortHeightDesc
	SortWidthDesc
	SortNameAsc
	SortNone
)

// TransparentPolicy controls how fully-transparent input images are
// handled when Config.Trim is enabled.
type TransparentPolicy int

const (
	// TransparentKeep packs a fully-transparent image as a 1x1 frame
	// rather than discarding it, preserving a slot for it in the atlas.
	TransparentKeep TransparentPolicy = iota
	// TransparentOneByOne is an alias of TransparentKeep kept distinct so
	// callers can request the behavior explicitly in saved presets.
	TransparentOneByOne
	// TransparentSkip drops fully-transparent images from the output
	// entirely.
	TransparentSkip
)

// Config controls every aspect of an offline Pack/PackLayout call or a
// runtime Session's placement strategy.
type Config struct {
	MaxWidth  uint32
	MaxHeight uint32

	AllowRotation      bool
	ForceMaxDimensions bool

	BorderPadding    uint32
	TexturePadding   uint32
	TextureExtrusion uint32

	Trim          bool
	TrimThreshold uint8

	TextureOutlines bool

	PowerOfTwo  bool
	Square      bool
	UseWasteMap bool

	TransparentPolicy TransparentPolicy

	Family           AlgorithmFamily
	MRHeuristic      MaxRectsHeuristic
	SkylineHeuristic SkylineHeuristic
	GChoice          GuillotineChoice
	GSplit           GuillotineSplit
	AutoMode         AutoMode
	SortOrder        SortOrder

	// TimeBudgetMs bounds sequential Auto portfolio evaluation. Zero
	// disables the budget and every candidate runs to completion.
	TimeBudgetMs uint64
	// Parallel evaluates the Auto portfolio's candidates concurrently
	// using a worker group instead of sequentially.
	Parallel bool

	// MRReference switches MaxRects to the reference-accurate
	// SplitFreeNode split/prune instead of the simpler subtractive split.
	// It packs tighter on large inputs at higher CPU cost.
	MRReference bool

	// AutoMRRefTimeMsThreshold auto-enables MRReference within the Auto
	// portfolio once TimeBudgetMs is at least this value. Zero selects
	// the default of 200 ms.
	AutoMRRefTimeMsThreshold uint64
	// AutoMRRefInputThreshold auto-enables MRReference within the Auto
	// portfolio once the input count is at least this value. Zero
	// selects the default of 800 inputs.
	AutoMRRefInputThreshold int

	// RuntimeStrategy selects a runtime Session's page-mode. Unused by
	// Pack/PackLayout.
	RuntimeStrategy RuntimeStrategy
	// ShelfPolicy configures RuntimeShelf's row search.
	ShelfPolicy ShelfPolicy
}

// DefaultConfig returns the baseline configuration: a 1024x1024
// maximum page size, rotation allowed, 2px texture padding, trimming enabled,
// Skyline/BottomLeft, area-descending sort.
func DefaultConfig() Config {
	return Config{
		MaxWidth:          1024,
		MaxHeight:         1024,
		AllowRotation:     true,
		TexturePadding:    2,
		Trim:              true,
		TransparentPolicy: TransparentKeep,
		Family:            FamilySkyline,
		MRHeuristic:       MRBestAreaFit,
		SkylineHeuristic:  SkylineBottomLeft,
		GChoice:           GuillotineBestAreaFit,
		GSplit:            SplitShorterLeftoverAxis,
		AutoMode:          AutoQuality,
		SortOrder:         SortAreaDesc,
	}
}

// Validate reports whether c describes a usable page geometry. It
// catches zero dimensions, border padding that consumes the whole
// page, or a usable area too small to hold any pixel at all.
func (c Config) Validate() error {
	if c.MaxWidth == 0 || c.MaxHeight == 0 {
		return &InvalidDimensionsError{Width: c.MaxWidth, Height: c.MaxHeight}
	}

	totalBorder := satMul2(c.BorderPadding)
	if totalBorder >= c.MaxWidth || totalBorder >= c.MaxHeight {
		return &InvalidConfigError{Msg: "border_padding * 2 exceeds atlas dimensions"}
	}

	usableW := satSub(c.MaxWidth, totalBorder)
	usableH := satSub(c.MaxHeight, totalBorder)
	if usableW == 0 || usableH == 0 {
		return &InvalidConfigError{Msg: "no usable space remains after border padding"}
	}

	return nil
}

func satMul2(v uint32) uint32 {
	r := v * 2
	if r < v {
		return ^uint32(0)
	}
	return r
}
