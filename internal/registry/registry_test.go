package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/stone-variants/internal/config"
	"github.com/annel0/stone-variants/internal/item"
	"github.com/annel0/stone-variants/internal/loot"
	"github.com/annel0/stone-variants/internal/properties"
	"github.com/annel0/stone-variants/internal/world/block"
	impl "github.com/annel0/stone-variants/internal/world/block/implementations"
	"github.com/annel0/stone-variants/internal/world/variant"
)

const coalPreset = `
name: coal_ore
block:
  location: coal_ore
  material: rock
  hardness: 3
  requires_tool: true
loot:
  entries:
    - item: coal
      count: {min: 1, max: 1}
gen:
  - size: 8
    count: 4
    height: {min: 1, max: 30}
`

const ironPreset = `
name: iron_ore
block:
  location: iron_ore
  harvest_level: 1
  can_be_dense: false
`

// hostBlocks отдельный реестр с обычными блоками хоста
func hostBlocks(t *testing.T) *block.Registry {
	t.Helper()
	r := block.NewRegistry()
	for _, b := range []block.Block{impl.Air, impl.Stone, impl.Dirt, impl.Grass, impl.Sand, impl.Obsidian, impl.CoalOre, impl.IronOre} {
		require.NoError(t, r.Register(b))
	}
	return r
}

func presetDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "coal_ore.yaml"), []byte(coalPreset), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "iron_ore.yml"), []byte(ironPreset), 0o644))
	return dir
}

func testConfig(dir string, entries ...string) *config.Config {
	cfg := config.Default()
	cfg.Presets.Dir = dir
	cfg.Blocks.Entries = entries
	cfg.Blocks.PropertyGroups = map[string][]string{"ores": {"coal_ore", "iron_ore"}}
	cfg.Blocks.BlockGroups = map[string][]string{"rocks": {"stone", "sand"}}
	return cfg
}

func TestSetup_RegistersVariantsAndItems(t *testing.T) {
	blocks := hostBlocks(t)
	res, err := Setup(testConfig(presetDir(t), "ores rocks"), Options{Blocks: blocks})
	require.NoError(t, err)

	require.Len(t, res.Variants, 4)
	for _, name := range []string{"coal_ore_stone", "iron_ore_stone", "coal_ore_sand", "iron_ore_sand"} {
		v, ok := res.Variant(name)
		require.True(t, ok, name)
		got, ok := blocks.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, block.Block(v), got)
	}

	assert.True(t, res.Items.Frozen())
	v, _ := res.Variant("coal_ore_sand")
	assert.Equal(t, "coal_ore_sand", v.NormalItem().Name())
	assert.Equal(t, "dense_coal_ore_sand", v.DenseItem().Name())
	assert.True(t, item.IsDense(v.DenseItem()))
	assert.True(t, v.BackgroundBlock() == block.Block(impl.Sand))

	_, ok := res.Items.Get("stone")
	assert.True(t, ok)
	_, ok = res.Items.Get("coal")
	assert.True(t, ok)
}

func TestSetup_VariantDropsUseRegisteredLoot(t *testing.T) {
	res, err := Setup(testConfig(presetDir(t), "coal_ore stone"), Options{Blocks: hostBlocks(t)})
	require.NoError(t, err)

	v, ok := res.Variant("coal_ore_stone")
	require.True(t, ok)
	drops := v.Drops(v.DefaultState().With(variant.Dense, true), loot.Context{})
	assert.Equal(t, 2, item.Total(drops))
	for _, s := range drops {
		assert.Equal(t, "coal", s.Item.Name())
	}
}

func TestSetup_UnknownBackground(t *testing.T) {
	cfg := testConfig(presetDir(t), "coal_ore marble")

	_, err := Setup(cfg, Options{Blocks: hostBlocks(t)})
	assert.ErrorIs(t, err, ErrUnknownBlock)

	res, err := Setup(cfg, Options{Blocks: hostBlocks(t), IgnoreMissingBlocks: true})
	require.NoError(t, err)
	assert.Empty(t, res.Variants)
	assert.True(t, res.Items.Frozen())
}

func TestSetup_DuplicateEntries(t *testing.T) {
	cfg := testConfig(presetDir(t), "ores rocks", "coal_ore stone")

	_, err := Setup(cfg, Options{Blocks: hostBlocks(t)})
	assert.ErrorIs(t, err, properties.ErrDuplicateEntry)

	cfg.Blocks.TestForDuplicates = false
	res, err := Setup(cfg, Options{Blocks: hostBlocks(t)})
	require.NoError(t, err)
	assert.Len(t, res.Variants, 4)
}

func TestSetup_DisabledPresetSkipped(t *testing.T) {
	cfg := testConfig(presetDir(t), "ores stone")
	cfg.Presets.Disabled = []string{"iron_ore"}

	res, err := Setup(cfg, Options{Blocks: hostBlocks(t)})
	require.NoError(t, err)
	require.Len(t, res.Variants, 1)
	assert.Equal(t, "coal_ore_stone", res.Variants[0].Name())
	assert.Len(t, res.Presets, 1)
}

func TestSetup_PreloadedPresets(t *testing.T) {
	presets := map[string]*properties.OreProperties{
		"iron_ore": {
			Name:  "iron_ore",
			Block: properties.BlockProperties{Location: "iron_ore"},
		},
	}
	cfg := testConfig("does-not-exist", "iron_ore dirt")

	res, err := Setup(cfg, Options{Blocks: hostBlocks(t), Presets: presets})
	require.NoError(t, err)
	require.Len(t, res.Variants, 1)
	assert.Equal(t, "iron_ore_dirt", res.Variants[0].Name())
}
