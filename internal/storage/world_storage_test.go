package storage

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/stone-variants/internal/config"
	"github.com/annel0/stone-variants/internal/vec"
	"github.com/annel0/stone-variants/internal/world"
	"github.com/annel0/stone-variants/internal/world/block"
	impl "github.com/annel0/stone-variants/internal/world/block/implementations"
)

func setupTestStorage(t *testing.T) *WorldStorage {
	t.Helper()
	storage, err := NewWorldStorage(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })
	return storage
}

func TestSaveAndLoadChunk(t *testing.T) {
	storage := setupTestStorage(t)
	worldID := uuid.New()

	// Создаем тестовый чанк
	coords := vec.Vec2{X: 10, Y: -20}
	chunk := world.NewChunk(coords)
	chunk.Set(vec.Vec3{X: 1, Y: 2, Z: 3}, impl.Dirt.DefaultState().With(impl.Moisture, 5))
	chunk.Set(vec.Vec3{X: 4, Y: 5, Z: 6}, impl.Grass.DefaultState().With(impl.Snowy, true))
	chunk.Set(vec.Vec3{X: 4, Y: 6, Z: 6}, impl.Grass.DefaultState().With(impl.Snowy, true))
	chunk.Set(vec.Vec3{X: 0, Y: 0, Z: 0}, impl.Obsidian.DefaultState())

	sandPos := chunk.ToWorld(vec.Vec3{X: 7, Y: 90, Z: 7})
	pending := []block.TickEntry{{Pos: sandPos, Block: impl.Sand, Time: 105, Priority: block.PriorityHigh}}

	require.NoError(t, storage.SaveChunk(worldID, chunk, pending, 100))

	loaded, ticks, ok, err := storage.LoadChunk(worldID, coords, 1000)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, coords, loaded.Coords)
	assert.Equal(t, 4, loaded.Len())
	assert.False(t, loaded.HasChanges())

	s, ok := loaded.Get(vec.Vec3{X: 1, Y: 2, Z: 3})
	require.True(t, ok)
	assert.True(t, s.Is(impl.Dirt))
	assert.Equal(t, 5, s.Int(impl.Moisture))

	s, ok = loaded.Get(vec.Vec3{X: 4, Y: 6, Z: 6})
	require.True(t, ok)
	assert.True(t, s.Bool(impl.Snowy))

	require.Len(t, ticks, 1)
	assert.Equal(t, sandPos, ticks[0].Pos)
	assert.Equal(t, impl.Sand, ticks[0].Block)
	assert.Equal(t, int64(1005), ticks[0].Time)
	assert.Equal(t, block.PriorityHigh, ticks[0].Priority)
}

func TestSnapshot_SharesPalette(t *testing.T) {
	chunk := world.NewChunk(vec.Vec2{})
	for x := 0; x < 4; x++ {
		chunk.Set(vec.Vec3{X: x, Y: 1, Z: 0}, impl.Stone.DefaultState())
	}
	chunk.Set(vec.Vec3{X: 0, Y: 2, Z: 0}, impl.Dirt.DefaultState())

	snapshot := Snapshot(chunk, nil, 0)
	assert.Len(t, snapshot.Palette, 2)
	assert.Len(t, snapshot.Cells, 5)
	assert.Empty(t, snapshot.Ticks)
}

func TestLoadChunk_Missing(t *testing.T) {
	storage := setupTestStorage(t)

	chunk, ticks, ok, err := storage.LoadChunk(uuid.New(), vec.Vec2{X: 1, Y: 1}, 0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, chunk)
	assert.Nil(t, ticks)
}

func TestLoadChunk_UnknownBlock(t *testing.T) {
	storage := setupTestStorage(t)
	storage.SetResolver(func(name string) (block.Block, bool) {
		if name == "stone" {
			return nil, false
		}
		return block.Get(name)
	})
	worldID := uuid.New()

	chunk := world.NewChunk(vec.Vec2{})
	chunk.Set(vec.Vec3{X: 1, Y: 1, Z: 1}, impl.Stone.DefaultState())
	require.NoError(t, storage.SaveChunk(worldID, chunk, nil, 0))

	_, _, _, err := storage.LoadChunk(worldID, vec.Vec2{}, 0)
	assert.ErrorIs(t, err, ErrUnknownBlock)
}

func TestWorldID_Stable(t *testing.T) {
	storage := setupTestStorage(t)

	a, err := storage.WorldID("overworld")
	require.NoError(t, err)
	b, err := storage.WorldID("overworld")
	require.NoError(t, err)
	c, err := storage.WorldID("nether")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestClosedStorage(t *testing.T) {
	storage := setupTestStorage(t)
	require.NoError(t, storage.Close())
	require.NoError(t, storage.Close())

	err := storage.SaveChunk(uuid.New(), world.NewChunk(vec.Vec2{}), nil, 0)
	assert.ErrorIs(t, err, ErrNotReady)
	_, err = storage.WorldID("x")
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestAttach_PersistsAcrossWorlds(t *testing.T) {
	storage := setupTestStorage(t)
	cfg := config.WorldConfig{Seed: 3}
	coords := vec.Vec2{}
	pos := vec.Vec3{X: 2, Y: 110, Z: 2}

	first := world.NewWorldManager(cfg)
	storage.Attach(first)
	_, err := first.LoadChunk(coords)
	require.NoError(t, err)
	_, err = first.Place(pos, impl.Sand, nil)
	require.NoError(t, err)
	require.NoError(t, first.SaveWorld(false))

	second := world.NewWorldManager(cfg)
	second.ID = first.ID
	storage.Attach(second)
	_, err = second.LoadChunk(coords)
	require.NoError(t, err)

	assert.True(t, second.BlockState(pos).Is(impl.Sand))
	assert.True(t, second.Ticks().IsTickPending(pos, impl.Sand))
}
