package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"dconn.dev/undercroft/internal/config"
	"dconn.dev/undercroft/internal/generation"
	"dconn.dev/undercroft/internal/models"
	"dconn.dev/undercroft/internal/services"
)

var minimum, maximum uint64 = 10000, 99999

// levelConfig describes one pre-generated level
type levelConfig struct {
	Name        string
	Description string
	Theme       string
	Width       int
	Height      int
}

var levelConfigs = []levelConfig{
	{
		Name:        "entrance",
		Description: "The first cellars beneath the keep. Doors creak on rusted hinges.",
		Theme:       generation.ThemeDungeon,
		Width:       60,
		Height:      40,
	},
	{
		Name:        "cisterns",
		Description: "Old water stores, long since overflowed. Mind the deep channels.",
		Theme:       generation.ThemeFlooded,
		Width:       70,
		Height:      45,
	},
	{
		Name:        "gardens",
		Description: "Someone once grew mushrooms here. Now everything grows.",
		Theme:       generation.ThemeOvergrown,
		Width:       60,
		Height:      40,
	},
	{
		Name:        "hollows",
		Description: "Where the masonry ends and the mountain begins.",
		Theme:       generation.ThemeCavern,
		Width:       80,
		Height:      50,
	},
	{
		Name:        "vaults",
		Description: "Bare stone rooms, swept clean by whoever came first.",
		Theme:       generation.ThemeBare,
		Width:       50,
		Height:      30,
	},
}

func main() {
	seed := flag.Uint64("seed", 0, "seed for the first level (random when 0)")
	only := flag.String("n", "", "generate only the named level")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: generate [-seed N] [-n name] <output-dir>")
		os.Exit(1)
	}
	outputDir := flag.Arg(0)

	if *seed == 0 {
		*seed = rand.Uint64N(maximum-minimum+1) + minimum
	}

	// Ensure output directory exists
	levelsDir := filepath.Join(outputDir, "levels")
	if err := os.MkdirAll(levelsDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Default().Generator
	svc := services.NewDungeonService(cfg, *seed, zap.NewNop())
	fmt.Printf("Seed %d\n", *seed)

	index := models.LevelIndex{}
	for _, lc := range levelConfigs {
		if *only != "" && lc.Name != *only {
			continue
		}
		fmt.Printf("Generating level %s - %s theme...\n", lc.Name, lc.Theme)

		level, err := svc.Generate(models.GenerateRequest{
			Width:  lc.Width,
			Height: lc.Height,
			Theme:  lc.Theme,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ERROR: %v\n", err)
			continue
		}

		filename := lc.Name + ".json"
		if err := writeLevel(levelsDir, lc.Name, level); err != nil {
			fmt.Fprintf(os.Stderr, "  ERROR: %v\n", err)
			continue
		}

		index.Levels = append(index.Levels, models.LevelRef{
			Name:        lc.Name,
			Description: lc.Description,
			Theme:       lc.Theme,
			File:        filename,
		})
		fmt.Printf("  Created %s (%d doors, %d traps, seed %s)\n",
			filename, level.Stats.Doors, level.Stats.Traps, level.RebuildSeed)
	}

	if len(index.Levels) == 0 {
		fmt.Fprintln(os.Stderr, "No levels generated")
		os.Exit(1)
	}

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR marshaling index: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(filepath.Join(levelsDir, services.IndexFile), data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR writing index: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done!")
}

// writeLevel stores the level as JSON for the server and as plain text
// for reading in a terminal
func writeLevel(dir, name string, level *models.DungeonResponse) error {
	data, err := json.MarshalIndent(level, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".json"), data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	text := strings.Join(level.Tiles, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, name+".txt"), []byte(text), 0644); err != nil {
		return fmt.Errorf("writing text file: %w", err)
	}
	return nil
}
