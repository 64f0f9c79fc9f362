package properties

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/stone-variants/internal/config"
	"github.com/annel0/stone-variants/internal/world/block"
)

const coalPreset = `
name: coal_ore
block:
  location: coal_ore
  material: rock
  hardness: 3
  requires_tool: true
  xp: {min: 0, max: 2}
loot:
  entries:
    - item: coal
      count: {min: 1, max: 1}
      fortune: true
gen:
  - size: 17
    count: 20
    height: {min: 0, max: 128}
    dense_ratio: 0.2
`

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestParse_Preset(t *testing.T) {
	p, err := Parse([]byte(coalPreset), "ignored")
	require.NoError(t, err)
	assert.Equal(t, "coal_ore", p.Name)
	assert.Equal(t, "custom", p.Mod)
	assert.Equal(t, "coal_ore", p.Block.Location)
	assert.Equal(t, block.MaterialRock, p.Settings().Material)
	assert.Equal(t, 3.0, p.Settings().Hardness)
	assert.True(t, p.Settings().RequiresTool)
	require.NotNil(t, p.Block.XP)
	assert.Equal(t, 2, p.Block.XP.Max)
	require.NotNil(t, p.Loot)
	assert.Len(t, p.Loot.Entries, 1)
	assert.True(t, p.DenseAllowed())
	require.Len(t, p.Gen, 1)
	assert.Equal(t, 128, p.Gen[0].Height.Max)
}

func TestParse_NameFromFileAndDefaults(t *testing.T) {
	p, err := Parse([]byte("block: {can_be_dense: false}\n"), "Iron_Ore")
	require.NoError(t, err)
	assert.Equal(t, "iron_ore", p.Name)
	assert.Equal(t, "air", p.Block.Location)
	assert.False(t, p.DenseAllowed())
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("name: x\nunknown_field: 1\n"), "x")
	assert.Error(t, err)

	_, err = Parse([]byte("block: {material: jelly}\n"), "x")
	assert.Error(t, err)

	_, err = Parse([]byte("name: gold\ngen:\n  - containers: [gold]\n"), "gold")
	assert.ErrorIs(t, err, ErrSelfReference)

	err = (&OreProperties{}).Validate()
	assert.ErrorIs(t, err, ErrMissingName)
}

func TestLoadPresets_WalksDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "coal_ore.yaml", coalPreset)
	writeFile(t, dir, "nested/iron_ore.yml", "block: {location: iron_ore}\n")
	writeFile(t, dir, "TUTORIAL.yaml", "this is: [not a preset")
	writeFile(t, dir, "notes.txt", "ignored")
	writeFile(t, dir, "redstone_ore.yaml", "name: redstone_ore\n")

	presets, err := LoadPresets(config.PresetsConfig{Dir: dir, Disabled: []string{"redstone_ore"}})
	require.NoError(t, err)
	assert.Len(t, presets, 2)
	assert.Contains(t, presets, "coal_ore")
	assert.Contains(t, presets, "iron_ore")
	assert.NotContains(t, presets, "redstone_ore")
}

func TestLoadPresets_InvalidPreset(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "coal_ore.yaml", coalPreset)
	writeFile(t, dir, "broken.yaml", "name: [broken")

	_, err := LoadPresets(config.PresetsConfig{Dir: dir})
	assert.Error(t, err)

	presets, err := LoadPresets(config.PresetsConfig{Dir: dir, IgnoreInvalid: true})
	require.NoError(t, err)
	assert.Len(t, presets, 1)
}

func TestParseEntry(t *testing.T) {
	e, err := ParseEntry("default, all")
	require.NoError(t, err)
	assert.Equal(t, Entry{Properties: "default", Blocks: "all"}, e)

	e, err = ParseEntry("  coal_ore   stone ")
	require.NoError(t, err)
	assert.Equal(t, Entry{Properties: "coal_ore", Blocks: "stone"}, e)

	_, err = ParseEntry("coal_ore")
	assert.ErrorIs(t, err, ErrInvalidEntry)
}

func TestExpandEntries(t *testing.T) {
	presets := map[string]*OreProperties{
		"coal_ore": {Name: "coal_ore"},
		"iron_ore": {Name: "iron_ore"},
	}
	cfg := config.BlocksConfig{
		Entries:        []string{"ores stones", "coal_ore dirt"},
		PropertyGroups: map[string][]string{"ores": {"coal_ore", "iron_ore", "gold_ore"}},
		BlockGroups:    map[string][]string{"stones": {"stone", "sand"}},
	}

	pairs, err := ExpandEntries(cfg, presets)
	require.NoError(t, err)
	var names []string
	for _, p := range pairs {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"coal_ore_stone", "iron_ore_stone", "coal_ore_sand", "iron_ore_sand", "coal_ore_dirt"}, names)
}

func TestExpandEntries_Duplicates(t *testing.T) {
	presets := map[string]*OreProperties{"coal_ore": {Name: "coal_ore"}}
	cfg := config.BlocksConfig{Entries: []string{"all stone", "coal_ore stone"}}

	pairs, err := ExpandEntries(cfg, presets)
	require.NoError(t, err)
	assert.Len(t, pairs, 1)

	cfg.TestForDuplicates = true
	_, err = ExpandEntries(cfg, presets)
	assert.ErrorIs(t, err, ErrDuplicateEntry)
}
