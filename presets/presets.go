// Package presets loads and saves named texpack.Config presets as TOML
// files, the headless equivalent of the original Rust GUI's preset picker.
package presets

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/go-texpacker/texpack"
)

// tomlConfig mirrors texpack.Config with field types TOML can decode
// directly (enums as plain ints, the two optional thresholds as-is).
type tomlConfig struct {
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

	TransparentPolicy int

	Family           int
	MRHeuristic      int
	SkylineHeuristic int
	GChoice          int
	GSplit           int
	AutoMode         int
	SortOrder        int

	TimeBudgetMs uint64
	Parallel     bool

	MRReference bool

	AutoMRRefTimeMsThreshold uint64
	AutoMRRefInputThreshold  int

	RuntimeStrategy int
	ShelfPolicy     int
}

func toTOML(c texpack.Config) tomlConfig {
	return tomlConfig{
		MaxWidth:                 c.MaxWidth,
		MaxHeight:                c.MaxHeight,
		AllowRotation:            c.AllowRotation,
		ForceMaxDimensions:       c.ForceMaxDimensions,
		BorderPadding:            c.BorderPadding,
		TexturePadding:           c.TexturePadding,
		TextureExtrusion:         c.TextureExtrusion,
		Trim:                     c.Trim,
		TrimThreshold:            c.TrimThreshold,
		TextureOutlines:          c.TextureOutlines,
		PowerOfTwo:               c.PowerOfTwo,
		Square:                   c.Square,
		UseWasteMap:              c.UseWasteMap,
		TransparentPolicy:        int(c.TransparentPolicy),
		Family:                   int(c.Family),
		MRHeuristic:              int(c.MRHeuristic),
		SkylineHeuristic:         int(c.SkylineHeuristic),
		GChoice:                  int(c.GChoice),
		GSplit:                   int(c.GSplit),
		AutoMode:                 int(c.AutoMode),
		SortOrder:                int(c.SortOrder),
		TimeBudgetMs:             c.TimeBudgetMs,
		Parallel:                 c.Parallel,
		MRReference:              c.MRReference,
		AutoMRRefTimeMsThreshold: c.AutoMRRefTimeMsThreshold,
		AutoMRRefInputThreshold:  c.AutoMRRefInputThreshold,
		RuntimeStrategy:          int(c.RuntimeStrategy),
		ShelfPolicy:              int(c.ShelfPolicy),
	}
}

func fromTOML(t tomlConfig) texpack.Config {
	return texpack.Config{
		MaxWidth:                 t.MaxWidth,
		MaxHeight:                t.MaxHeight,
		AllowRotation:            t.AllowRotation,
		ForceMaxDimensions:       t.ForceMaxDimensions,
		BorderPadding:            t.BorderPadding,
		TexturePadding:           t.TexturePadding,
		TextureExtrusion:         t.TextureExtrusion,
		Trim:                     t.Trim,
		TrimThreshold:            t.TrimThreshold,
		TextureOutlines:          t.TextureOutlines,
		PowerOfTwo:               t.PowerOfTwo,
		Square:                   t.Square,
		UseWasteMap:              t.UseWasteMap,
		TransparentPolicy:        texpack.TransparentPolicy(t.TransparentPolicy),
		Family:                   texpack.AlgorithmFamily(t.Family),
		MRHeuristic:              texpack.MaxRectsHeuristic(t.MRHeuristic),
		SkylineHeuristic:         texpack.SkylineHeuristic(t.SkylineHeuristic),
		GChoice:                  texpack.GuillotineChoice(t.GChoice),
		GSplit:                   texpack.GuillotineSplit(t.GSplit),
		AutoMode:                 texpack.AutoMode(t.AutoMode),
		SortOrder:                texpack.SortOrder(t.SortOrder),
		TimeBudgetMs:             t.TimeBudgetMs,
		Parallel:                 t.Parallel,
		MRReference:              t.MRReference,
		AutoMRRefTimeMsThreshold: t.AutoMRRefTimeMsThreshold,
		AutoMRRefInputThreshold:  t.AutoMRRefInputThreshold,
		RuntimeStrategy:          texpack.RuntimeStrategy(t.RuntimeStrategy),
		ShelfPolicy:              texpack.ShelfPolicy(t.ShelfPolicy),
	}
}

// Named built-in presets, mirroring the original GUI's preset list.
var builtin = map[string]texpack.Config{
	"pixelart": {
		MaxWidth: 2048, MaxHeight: 2048,
		AllowRotation: false,
		Trim:          true, TrimThreshold: 0,
		PowerOfTwo:        true,
		TransparentPolicy: texpack.TransparentKeep,
		Family:            texpack.FamilyMaxRects,
		MRHeuristic:       texpack.MRBestAreaFit,
		SortOrder:         texpack.SortAreaDesc,
	},
	"ui-atlas": {
		MaxWidth: 1024, MaxHeight: 1024,
		AllowRotation:    false,
		BorderPadding:    1,
		TexturePadding:   2,
		Trim:             true,
		TrimThreshold:    8,
		TextureExtrusion: 1,
		TransparentPolicy: texpack.TransparentKeep,
		Family:            texpack.FamilySkyline,
		SkylineHeuristic:  texpack.SkylineMinWaste,
		UseWasteMap:       true,
		SortOrder:         texpack.SortHeightDesc,
	},
	"game-sprites": {
		MaxWidth: 4096, MaxHeight: 4096,
		AllowRotation:    true,
		TexturePadding:   2,
		TextureExtrusion: 2,
		Trim:             true,
		TrimThreshold:    0,
		PowerOfTwo:        true,
		Square:            true,
		TransparentPolicy: texpack.TransparentKeep,
		Family:            texpack.FamilyAuto,
		AutoMode:          texpack.AutoQuality,
		SortOrder:         texpack.SortAreaDesc,
	},
}

// Names returns the built-in preset names, in a fixed display order.
func Names() []string {
	return []string{"pixelart", "ui-atlas", "game-sprites"}
}

// Builtin returns a named built-in preset's config. ok is false for an
// unknown name.
func Builtin(name string) (texpack.Config, bool) {
	c, ok := builtin[name]
	return c, ok
}

// Load reads a Config from a TOML file on disk.
func Load(path string) (texpack.Config, error) {
	var t tomlConfig
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return texpack.Config{}, fmt.Errorf("texpack/presets: decode %s: %w", path, err)
	}
	return fromTOML(t), nil
}

// Save writes cfg to path as TOML, creating parent directories as needed.
func Save(path string, cfg texpack.Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("texpack/presets: mkdir for %s: %w", path, err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(toTOML(cfg)); err != nil {
		return fmt.Errorf("texpack/presets: encode: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
