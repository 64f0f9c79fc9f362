package intercept

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/stone-variants/internal/vec"
	"github.com/annel0/stone-variants/internal/world/block"
	"github.com/annel0/stone-variants/internal/world/worldtest"
)

var (
	dense = block.NewBool("dense")
	lit   = block.NewBool("lit")
)

// fixture фон без свойств, руда со свойством lit и составной блок с объединением
type fixture struct {
	stone, ore, dirt, composite *block.Plain
	w                           *worldtest.World
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{w: worldtest.NewWorld()}
	var err error
	f.stone, err = block.NewPlain("stone", block.Settings{Material: block.MaterialRock})
	require.NoError(t, err)
	f.ore, err = block.NewPlain("redstone_ore", block.Settings{Material: block.MaterialRock}, lit)
	require.NoError(t, err)
	f.dirt, err = block.NewPlain("dirt", block.Settings{Material: block.MaterialEarth})
	require.NoError(t, err)

	def, err := block.Union([]block.Property{dense}, f.stone.Definition(), f.ore.Definition())
	require.NoError(t, err)
	f.composite, err = block.NewPlain("stone_redstone_ore", block.Settings{Material: block.MaterialRock}, def.Properties()...)
	require.NoError(t, err)
	return f
}

func TestInterceptor_NoRedirectIsPassthrough(t *testing.T) {
	f := newFixture(t)
	p := vec.Vec3{X: 1, Y: 2, Z: 3}
	s := f.composite.DefaultState().With(dense, true)
	f.w.Put(p, s)

	view := Open(f.w)
	defer view.Close()
	assert.False(t, view.Active())

	assert.True(t, view.BlockState(p).Equal(s))
	assert.True(t, view.BlockState(vec.Vec3{}).IsZero())

	ore := f.ore.DefaultState()
	require.True(t, view.SetBlockState(p, ore, block.FlagDefault))
	assert.True(t, f.w.BlockState(p).Equal(ore))

	view.Ticks().ScheduleTick(p, f.ore, 1, block.PriorityNormal)
	assert.True(t, f.w.Ticks().IsTickPending(p, f.ore))
	assert.Equal(t, f.w.Ticks().Len(), view.Ticks().Len())
	assert.Equal(t, f.w.Time(), view.Time())
	assert.Equal(t, f.w.IsClient(), view.IsClient())
}

func TestInterceptor_RestrictedToPosition(t *testing.T) {
	f := newFixture(t)
	p := vec.Vec3{Y: 64}
	q := vec.Vec3{X: 5, Y: 64}
	combined := f.composite.DefaultState().With(dense, true).With(lit, true)
	f.w.Put(p, combined)
	f.w.Put(q, combined)

	view := Open(f.w).Redirect(f.composite, f.ore).RestrictTo(p)
	defer view.Close()

	// В P руда видит себя, в Q: реальный составной блок
	atP := view.BlockState(p)
	assert.True(t, atP.Is(f.ore))
	assert.True(t, atP.Bool(lit))
	assert.True(t, view.BlockState(q).Equal(combined))

	// Запись в Q не переводится
	view.SetBlockState(q, f.ore.DefaultState(), block.FlagDefault)
	assert.True(t, f.w.BlockState(q).Is(f.ore))

	// Запись в P переводится и сохраняет собственную ось составного блока
	view.SetBlockState(p, atP.With(lit, false), block.FlagDefault)
	got := f.w.BlockState(p)
	require.True(t, got.Is(f.composite))
	assert.True(t, got.Bool(dense))
	assert.False(t, got.Bool(lit))

	// Тик в Q не переписывается
	view.Ticks().ScheduleTick(q, f.ore, 1, block.PriorityNormal)
	assert.True(t, f.w.Ticks().IsTickPending(q, f.ore))
	assert.False(t, f.w.Ticks().IsTickPending(q, f.composite))
}

func TestInterceptor_TickRedirect(t *testing.T) {
	f := newFixture(t)
	p := vec.Vec3{X: 0, Y: 64, Z: 0}
	f.w.Put(p, f.composite.DefaultState())

	view := Open(f.w).Redirect(f.composite, f.stone).RestrictTo(p)
	view.Ticks().ScheduleTick(p, f.stone, 4, block.PriorityNormal)

	real := f.w.Ticks()
	assert.True(t, real.IsTickPending(p, f.composite))
	assert.False(t, real.IsTickPending(p, f.stone))
	// Фон продолжает видеть свой тик
	assert.True(t, view.Ticks().IsTickPending(p, f.stone))

	entries := view.Ticks().Pending(vec.NewBox(p, p), false)
	require.Len(t, entries, 1)
	assert.Same(t, f.composite, entries[0].Block)

	view.Close()
	assert.False(t, view.Ticks().IsTickPending(p, f.stone))
}

func TestInterceptor_CloseResetsRedirect(t *testing.T) {
	f := newFixture(t)
	p := vec.Vec3{Y: 10}
	combined := f.composite.DefaultState()
	f.w.Put(p, combined)

	view := Open(f.w).Redirect(f.composite, f.stone)
	assert.True(t, view.BlockState(p).Is(f.stone))
	view.Close()
	view.Close()

	assert.False(t, view.Active())
	assert.True(t, view.BlockState(p).Equal(combined))
	view.Ticks().ScheduleTick(p, f.stone, 1, block.PriorityNormal)
	assert.True(t, f.w.Ticks().IsTickPending(p, f.stone))
}

func TestInterceptor_OtherBlocksPassThrough(t *testing.T) {
	f := newFixture(t)
	p := vec.Vec3{Z: 9}
	f.w.Put(p, f.composite.DefaultState())

	view := Open(f.w).Redirect(f.composite, f.stone).RestrictTo(p)
	defer view.Close()

	// Фон превращает себя в другой блок: запись проходит как есть
	view.SetBlockState(p, f.dirt.DefaultState(), block.FlagDefault)
	assert.True(t, f.w.BlockState(p).Is(f.dirt))
	assert.True(t, view.BlockState(p).Is(f.dirt))

	// Отсутствующее состояние не вызывает паники
	f.w.Remove(p)
	assert.True(t, view.BlockState(p).IsZero())
}

func TestInterceptor_WriteAfterReplacementUsesDefault(t *testing.T) {
	f := newFixture(t)
	p := vec.Vec3{X: -4}
	f.w.Put(p, f.dirt.DefaultState())

	view := Open(f.w).Redirect(f.composite, f.ore)
	defer view.Close()
	view.SetBlockState(p, f.ore.DefaultState().With(lit, true), block.FlagDefault)

	got := f.w.BlockState(p)
	require.True(t, got.Is(f.composite))
	assert.True(t, got.Bool(lit))
	assert.False(t, got.Bool(dense))
}

func TestInterceptor_NotifyNeighborsRewritesSource(t *testing.T) {
	f := newFixture(t)
	p := vec.Vec3{Y: 1}
	view := Open(f.w).Redirect(f.composite, f.stone).RestrictTo(p)
	defer view.Close()
	view.NotifyNeighbors(p, f.stone)
	assert.Equal(t, []vec.Vec3{p}, f.w.Notified)
}
