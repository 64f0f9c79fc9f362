package implementations

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/stone-variants/internal/item"
	"github.com/annel0/stone-variants/internal/loot"
	"github.com/annel0/stone-variants/internal/vec"
	"github.com/annel0/stone-variants/internal/world/block"
	"github.com/annel0/stone-variants/internal/world/worldtest"
)

func TestRegisteredAtInit(t *testing.T) {
	for _, name := range []string{"air", "stone", "dirt", "grass", "sand", "obsidian", "snow_block", "coal_ore", "iron_ore", "redstone_ore"} {
		assert.True(t, block.IsValidBlock(name), name)
	}
}

func TestStoneDrops(t *testing.T) {
	s := Stone.DefaultState()
	drops := Stone.Drops(s, loot.Context{})
	require.Len(t, drops, 1)
	assert.Equal(t, "cobblestone", drops[0].Item.Name())

	drops = Stone.Drops(s, loot.Context{SilkTouch: true})
	require.Len(t, drops, 1)
	assert.Equal(t, "stone", drops[0].Item.Name())
	assert.Empty(t, Air.Drops(Air.DefaultState(), loot.Context{}))
}

func TestOreDrops(t *testing.T) {
	drops := CoalOre.Drops(CoalOre.DefaultState(), loot.Context{})
	require.Len(t, drops, 1)
	assert.Equal(t, "coal", drops[0].Item.Name())
	assert.Equal(t, 1, drops[0].Count)

	drops = IronOre.Drops(IronOre.DefaultState(), loot.Context{})
	require.Len(t, drops, 1)
	assert.Equal(t, "iron_ore", drops[0].Item.Name())

	rnd := rand.New(rand.NewSource(1))
	drops = RedstoneOre.Drops(RedstoneOre.DefaultState(), loot.Context{Rand: rnd})
	require.Len(t, drops, 1)
	assert.GreaterOrEqual(t, drops[0].Count, 4)
	assert.LessOrEqual(t, drops[0].Count, 5)

	w := worldtest.NewWorld()
	assert.Zero(t, CoalOre.ExpDrop(CoalOre.DefaultState(), w, vec.Vec3{}, 0, 1))
	assert.Zero(t, IronOre.ExpDrop(IronOre.DefaultState(), w, vec.Vec3{}, 0, 0))
}

func TestGrassRandomTick(t *testing.T) {
	w := worldtest.NewWorld()
	pos := vec.Vec3{Y: 64}
	rnd := rand.New(rand.NewSource(7))

	// Без состояния в позиции: ошибка отсутствия состояния
	err := Grass.RandomTick(Grass.DefaultState(), w, pos, rnd)
	assert.ErrorIs(t, err, block.ErrStateAbsent)

	// Под камнем трава превращается в землю
	w.Put(pos, Grass.DefaultState())
	w.Put(pos.Offset(vec.Up), Stone.DefaultState())
	require.NoError(t, Grass.RandomTick(Grass.DefaultState(), w, pos, rnd))
	assert.True(t, w.BlockState(pos).Is(Dirt))
}

func TestGrassSnowy(t *testing.T) {
	w := worldtest.NewWorld()
	s := Grass.UpdatePostPlacement(Grass.DefaultState(), vec.Up, SnowBlock.DefaultState(), w, vec.Vec3{}, vec.Vec3{Y: 1})
	assert.True(t, s.Bool(Snowy))
	s = Grass.UpdatePostPlacement(s, vec.Up, Air.DefaultState(), w, vec.Vec3{}, vec.Vec3{Y: 1})
	assert.False(t, s.Bool(Snowy))
}

func TestDirtMoisture(t *testing.T) {
	w := worldtest.NewWorld()
	pos := vec.Vec3{X: 3}
	w.Put(pos, Dirt.DefaultState())
	p := &worldtest.Player{Held: item.NewStack(item.Of("water_bucket"), 1)}

	res := Dirt.Activate(Dirt.DefaultState(), w, pos, p, block.MainHand)
	assert.Equal(t, block.ActionSuccess, res)
	wet := w.BlockState(pos)
	assert.Equal(t, 7, wet.Int(Moisture))
	assert.True(t, Dirt.TicksRandomly(wet))

	require.NoError(t, Dirt.RandomTick(wet, w, pos, nil))
	assert.Equal(t, 6, w.BlockState(pos).Int(Moisture))

	assert.Equal(t, block.ActionPass, Dirt.Activate(wet, w, pos, &worldtest.Player{}, block.MainHand))
}

func TestSandFalls(t *testing.T) {
	w := worldtest.NewWorld()
	pos := vec.Vec3{Y: 10}
	w.Put(pos.Offset(vec.Down), Air.DefaultState())
	w.Put(pos, Sand.DefaultState())

	Sand.OnPlace(Sand.DefaultState(), w, pos, Air.DefaultState(), false)
	assert.True(t, w.Ticks().IsTickPending(pos, Sand))

	require.NoError(t, Sand.Tick(Sand.DefaultState(), w, pos, nil))
	assert.True(t, w.BlockState(pos.Offset(vec.Down)).Is(Sand))
	assert.True(t, w.BlockState(pos).Is(Air))
}

func TestRedstoneOreLights(t *testing.T) {
	w := worldtest.NewWorld()
	pos := vec.Vec3{Z: 2}
	w.Put(pos, RedstoneOre.DefaultState())
	assert.False(t, RedstoneOre.TicksRandomly(RedstoneOre.DefaultState()))

	RedstoneOre.OnEntityWalk(w, pos, worldtest.Entity{EntityID: 1})
	lit := w.BlockState(pos)
	assert.True(t, lit.Bool(Lit))
	assert.True(t, RedstoneOre.TicksRandomly(lit))

	require.NoError(t, RedstoneOre.RandomTick(lit, w, pos, nil))
	assert.False(t, w.BlockState(pos).Bool(Lit))
}

func TestObsidianBlocksPistons(t *testing.T) {
	assert.Equal(t, block.PushBlock, Obsidian.PushReaction(Obsidian.DefaultState()))
	assert.Equal(t, block.PushNormal, Stone.PushReaction(Stone.DefaultState()))
}
