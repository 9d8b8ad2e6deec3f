package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"dconn.dev/undercroft/internal/config"
	"dconn.dev/undercroft/internal/generation"
	"dconn.dev/undercroft/internal/grid"
	"dconn.dev/undercroft/internal/layout"
	"dconn.dev/undercroft/internal/models"
	"dconn.dev/undercroft/internal/rng"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNoDungeon      = errors.New("no dungeon generated yet")
)

// DungeonService runs the generator for API and websocket clients. A run
// owns the random source exclusively, so generation is serialised.
type DungeonService struct {
	mu     sync.Mutex
	cfg    config.GeneratorConfig
	rng    *rng.RNG
	last   *models.DungeonResponse
	tiles  map[string]models.Tile
	logger *zap.Logger
}

// NewDungeonService creates a service whose random source starts at seed
func NewDungeonService(cfg config.GeneratorConfig, seed uint64, logger *zap.Logger) *DungeonService {
	return &DungeonService{
		cfg:    cfg,
		rng:    rng.New(seed),
		tiles:  TileDefinitions(),
		logger: logger,
	}
}

// TileDefinitions converts the generator palette into client tiles keyed by
// their map symbol
func TileDefinitions() map[string]models.Tile {
	palette := generation.DefaultPalette()
	out := make(map[string]models.Tile, len(palette))
	for cell, style := range palette {
		out[cell.String()] = models.Tile{
			Character: style.Char,
			Color:     style.Color,
			Type:      style.Type,
			Walkable:  style.Walkable,
		}
	}
	return out
}

// Themes returns every preset
func (s *DungeonService) Themes() []generation.Theme {
	return generation.Themes()
}

// Generate builds a dungeon for req. A request carrying a seed restores
// the random source first, reproducing the dungeon that seed came from.
func (s *DungeonService) Generate(req models.GenerateRequest) (*models.DungeonResponse, error) {
	width, height, err := s.size(req)
	if err != nil {
		return nil, err
	}

	theme := generation.GetTheme(req.Theme)
	if req.Theme != "" && req.Theme != theme.Name {
		s.logger.Debug("unknown theme, using default",
			zap.String("requested", req.Theme), zap.String("theme", theme.Name))
	}
	layoutName := req.Layout
	if layoutName == "" {
		layoutName = theme.Layout
	}
	provider, err := layout.Lookup(layoutName)
	if err != nil {
		return nil, err
	}
	features := ApplyOverrides(theme.Features, req.Overrides)

	var seed uint64
	if req.Seed != "" {
		seed, err = strconv.ParseUint(req.Seed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: seed %q is not an unsigned integer", ErrInvalidRequest, req.Seed)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Seed != "" {
		s.rng.SetState(seed)
	}
	gen, err := generation.New(width, height, s.rng, provider)
	if err != nil {
		return nil, err
	}
	gen.SetFeatures(features)

	start := time.Now()
	d, err := gen.Generate()
	if err != nil {
		s.logger.Error("generation failed",
			zap.String("theme", theme.Name), zap.String("layout", layoutName), zap.Error(err))
		return nil, fmt.Errorf("generating %s dungeon: %w", theme.Name, err)
	}

	resp := s.toResponse(d, theme.Name, layoutName, gen.Features())
	s.last = resp

	s.logger.Info("dungeon generated",
		zap.String("theme", theme.Name),
		zap.String("layout", layoutName),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Uint64("seed", d.RebuildSeed),
		zap.Int("doors", d.Stats.Doors),
		zap.Int("traps", d.Stats.Traps),
		zap.Int("sealed", d.Stats.Sealed),
		zap.Duration("took", time.Since(start)),
	)
	return resp, nil
}

// Last returns the most recent dungeon
func (s *DungeonService) Last() (*models.DungeonResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil, ErrNoDungeon
	}
	return s.last, nil
}

// LastText returns the most recent dungeon as newline-separated rows
func (s *DungeonService) LastText() (string, error) {
	last, err := s.Last()
	if err != nil {
		return "", err
	}
	return strings.Join(last.Tiles, "\n") + "\n", nil
}

func (s *DungeonService) size(req models.GenerateRequest) (int, int, error) {
	width, height := req.Width, req.Height
	if width == 0 {
		width = s.cfg.Width
	}
	if height == 0 {
		height = s.cfg.Height
	}
	if width < 0 || height < 0 || width > s.cfg.MaxWidth || height > s.cfg.MaxHeight {
		return 0, 0, fmt.Errorf("%w: size %dx%d outside 1..%dx%d",
			ErrInvalidRequest, width, height, s.cfg.MaxWidth, s.cfg.MaxHeight)
	}
	return width, height, nil
}

func (s *DungeonService) toResponse(d *generation.Dungeon, theme, layoutName string, features generation.FeatureConfig) *models.DungeonResponse {
	return &models.DungeonResponse{
		Width:           d.Grid.Width,
		Height:          d.Grid.Height,
		Theme:           theme,
		Layout:          layoutName,
		Tiles:           d.Grid.Rows(),
		StairsUp:        position(d.StairsUp),
		StairsDown:      position(d.StairsDown),
		RebuildSeed:     strconv.FormatUint(d.RebuildSeed, 10),
		Features:        features,
		Stats:           d.Stats,
		TileDefinitions: s.tiles,
	}
}

func position(p *grid.Point) *models.Position {
	if p == nil {
		return nil
	}
	return &models.Position{X: p.X, Y: p.Y}
}

// ApplyOverrides returns base with every non-nil override applied through
// the clamping Add methods
func ApplyOverrides(base generation.FeatureConfig, o models.FeatureOverrides) generation.FeatureConfig {
	f := base
	if o.Water != nil || o.Islands != nil {
		water, spacing := f.Water, f.IslandSpacing
		if o.Water != nil {
			water = *o.Water
		}
		if o.Islands != nil {
			spacing = *o.Islands
		}
		f.AddWater(water, spacing)
	}
	if o.Grass != nil {
		f.AddGrass(*o.Grass)
	}
	if o.Boulders != nil {
		f.AddBoulders(*o.Boulders)
	}
	if o.Doors != nil || o.WideDoors != nil {
		doors, wide := f.Doors, f.WideDoors
		if o.Doors != nil {
			doors = *o.Doors
		}
		if o.WideDoors != nil {
			wide = *o.WideDoors
		}
		f.AddDoors(doors, wide)
	}
	if o.Traps != nil {
		f.AddTraps(*o.Traps)
	}
	return f
}
