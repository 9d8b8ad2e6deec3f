package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"dconn.dev/undercroft/internal/models"
)

var ErrLevelNotFound = errors.New("level not found")

// IndexFile is the manifest name inside the levels directory
const IndexFile = "index.json"

// LevelService serves the levels pre-generated by cmd/generate
type LevelService struct {
	dir   string
	index *models.LevelIndex

	mu     sync.Mutex
	levels map[string]*models.DungeonResponse // cached levels
}

// NewLevelService loads the manifest from dir
func NewLevelService(dir string) (*LevelService, error) {
	ls := &LevelService{
		dir:    dir,
		levels: make(map[string]*models.DungeonResponse),
	}

	if err := ls.loadIndex(); err != nil {
		return nil, err
	}

	return ls, nil
}

// loadIndex loads the level manifest
func (ls *LevelService) loadIndex() error {
	path := filepath.Join(ls.dir, IndexFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", IndexFile, err)
	}

	ls.index = &models.LevelIndex{}
	if err := json.Unmarshal(data, ls.index); err != nil {
		return fmt.Errorf("failed to parse %s: %w", IndexFile, err)
	}

	return nil
}

// Index returns the manifest
func (ls *LevelService) Index() *models.LevelIndex {
	return ls.index
}

// Get returns a level by name, reading it from disk on first use
func (ls *LevelService) Get(name string) (*models.DungeonResponse, error) {
	var ref *models.LevelRef
	for i := range ls.index.Levels {
		if ls.index.Levels[i].Name == name {
			ref = &ls.index.Levels[i]
			break
		}
	}
	if ref == nil {
		return nil, fmt.Errorf("%w: %s", ErrLevelNotFound, name)
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	if level, cached := ls.levels[name]; cached {
		return level, nil
	}

	data, err := os.ReadFile(filepath.Join(ls.dir, ref.File))
	if err != nil {
		return nil, fmt.Errorf("failed to read level file: %w", err)
	}

	level := &models.DungeonResponse{}
	if err := json.Unmarshal(data, level); err != nil {
		return nil, fmt.Errorf("failed to parse level file: %w", err)
	}

	ls.levels[name] = level
	return level, nil
}
