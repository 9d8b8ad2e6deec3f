package models

// LevelIndex is the manifest written by cmd/generate next to the level files
type LevelIndex struct {
	Levels []LevelRef `json:"levels"`
}

// LevelRef points at one pre-generated level
type LevelRef struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Theme       string `json:"theme"`
	File        string `json:"file"`
}
