package generation

import (
	"testing"

	"dconn.dev/undercroft/internal/grid"
)

func TestThemes(t *testing.T) {
	themes := Themes()
	if len(themes) != 5 {
		t.Fatalf("Expected 5 themes, got %d", len(themes))
	}
	seen := map[string]bool{}
	for _, th := range themes {
		if seen[th.Name] {
			t.Errorf("Duplicate theme %q", th.Name)
		}
		seen[th.Name] = true
		if err := th.Features.Validate(); err != nil {
			t.Errorf("Theme %q has invalid features: %v", th.Name, err)
		}
		if th.Layout == "" || th.Description == "" {
			t.Errorf("Theme %q is missing layout or description", th.Name)
		}
	}

	if got := GetTheme("no-such-theme").Name; got != ThemeDungeon {
		t.Errorf("Expected unknown theme to fall back to %q, got %q", ThemeDungeon, got)
	}
	if !GetTheme(ThemeBare).Features.Empty() {
		t.Error("Expected bare theme to request nothing")
	}
}

func TestDefaultPalette(t *testing.T) {
	palette := DefaultPalette()
	for _, c := range grid.Cells {
		style, ok := palette[c]
		if !ok {
			t.Errorf("Missing style for %q", c)
			continue
		}
		if style.Char != c.String() {
			t.Errorf("Style for %q draws %q", c, style.Char)
		}
		if style.Walkable == (c == grid.Wall || c == grid.DeepWater) {
			t.Errorf("Unexpected walkability for %q", c)
		}
	}
}
