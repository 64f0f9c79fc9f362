package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testLit      = NewBool("lit")
	testAge      = NewInt("age", 0, 3)
	testAxis     = NewEnum("axis", "y", "x", "z")
	testSnowy    = NewBool("snowy")
	otherLit     = NewInt("lit", 0, 15) // то же имя, другой тип
	testDense    = NewBool("dense")
	sameLitAgain = NewBool("lit") // другой указатель, та же суть
)

func mustPlain(t *testing.T, name string, props ...Property) *Plain {
	t.Helper()
	p, err := NewPlain(name, Settings{Material: MaterialRock}, props...)
	require.NoError(t, err)
	return p
}

func TestDefaultState_FirstValues(t *testing.T) {
	b := mustPlain(t, "log", testAxis, testAge, testLit)
	s := b.DefaultState()

	assert.Equal(t, "y", s.Enum(testAxis))
	assert.Equal(t, 0, s.Int(testAge))
	assert.False(t, s.Bool(testLit))
	assert.True(t, s.Is(b))
	assert.Equal(t, "log[axis=y,age=0,lit=false]", s.String())
}

func TestState_WithIsImmutable(t *testing.T) {
	b := mustPlain(t, "ore", testLit)
	s := b.DefaultState()
	lit := s.With(testLit, true)

	assert.False(t, s.Bool(testLit), "исходное состояние не должно меняться")
	assert.True(t, lit.Bool(testLit))
	assert.False(t, s.Equal(lit))
	assert.True(t, lit.Equal(s.With(testLit, true)))
}

func TestState_TryWithErrors(t *testing.T) {
	b := mustPlain(t, "ore", testLit)
	s := b.DefaultState()

	_, err := s.TryWith(testAge, 1)
	assert.ErrorIs(t, err, ErrUnknownProperty)

	_, err = s.TryWith(testLit, 5)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = State{}.TryWith(testLit, true)
	assert.ErrorIs(t, err, ErrStateAbsent)
	assert.Panics(t, func() { s.With(testAge, 2) })
}

func TestDefinition_TrueDuplicateSkipped(t *testing.T) {
	d, err := NewDefinition(testLit, sameLitAgain, testAge)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
	assert.True(t, d.Has(sameLitAgain))
}

func TestDefinition_ValidStates(t *testing.T) {
	b := mustPlain(t, "ore", testLit, testAge)
	states := b.Definition().ValidStates(b)
	assert.Len(t, states, 2*4)
	assert.True(t, states[0].Equal(b.DefaultState()))
}

func TestUnion_Sizes(t *testing.T) {
	a := MustDefinition(testLit, testAge)
	b := MustDefinition(testAxis, testSnowy)

	u, err := Union(nil, a, b)
	require.NoError(t, err)
	assert.Equal(t, a.Len()+b.Len(), u.Len())

	shared := MustDefinition(testAxis, sameLitAgain)
	u, err = Union(nil, a, shared)
	require.NoError(t, err)
	assert.Equal(t, a.Len()+shared.Len()-1, u.Len())
}

func TestUnion_OwnFirstThenSources(t *testing.T) {
	u, err := Union([]Property{testDense}, MustDefinition(testLit), MustDefinition(testAge))
	require.NoError(t, err)

	names := make([]string, 0, u.Len())
	for _, p := range u.Properties() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"dense", "lit", "age"}, names)
}

func TestUnion_NameConflictRejected(t *testing.T) {
	_, err := Union(nil, MustDefinition(testLit), MustDefinition(otherLit))
	assert.ErrorIs(t, err, ErrPropertyConflict)

	_, err = Union([]Property{testDense}, MustDefinition(NewInt("dense", 0, 1)))
	assert.ErrorIs(t, err, ErrPropertyConflict)
}

func TestProjectAbsorb_RoundTrip(t *testing.T) {
	bg := mustPlain(t, "grass", testSnowy)
	fg := mustPlain(t, "redstone_ore", testLit)
	def, err := Union([]Property{testDense}, bg.Definition(), fg.Definition())
	require.NoError(t, err)
	composite := &Plain{}
	composite.Init(composite, "grass_redstone_ore", Settings{}, def)

	combined := composite.DefaultState().
		With(testDense, true).
		With(testSnowy, true).
		With(testLit, true)

	projected := Project(combined, fg)
	assert.True(t, projected.Is(fg))
	assert.True(t, projected.Bool(testLit))
	assert.False(t, projected.Has(testDense))

	fresh := composite.DefaultState()
	back := Absorb(projected, fresh)
	assert.True(t, back.Bool(testLit), "свойство fg должно вернуться")
	assert.False(t, back.Bool(testSnowy), "свойство bg не трогается")
	assert.False(t, back.Bool(testDense), "маркер композита не трогается")
}

func TestImitate_LaterCopiesWinAndZeroSkipped(t *testing.T) {
	b := mustPlain(t, "ore", testLit, testAge)
	first := mustPlain(t, "a", testLit).DefaultState().With(testLit, true)
	second := mustPlain(t, "b", testAge).DefaultState().With(testAge, 2)
	overrides := mustPlain(t, "c", sameLitAgain).DefaultState()

	s := Imitate(b.DefaultState(), first, State{}, second)
	assert.True(t, s.Bool(testLit))
	assert.Equal(t, 2, s.Int(testAge))

	s = Imitate(s, overrides)
	assert.False(t, s.Bool(testLit))
	assert.True(t, Imitate(State{}, first).IsZero())
}

func TestRegistry_Duplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(mustPlain(t, "x")))
	assert.ErrorIs(t, r.Register(mustPlain(t, "x")), ErrDuplicateBlock)
	_, ok := r.Get("x")
	assert.True(t, ok)
	assert.Len(t, r.All(), 1)
}

func TestMergeSettings(t *testing.T) {
	ore := Settings{Material: MaterialRock, Hardness: 3, HarvestLevel: 1, RequiresTool: true}
	bg := Settings{Material: MaterialSand, Hardness: 0.5, RenderLayer: LayerCutout, Flammability: 0}
	m := Merge(ore, bg)
	assert.Equal(t, MaterialSand, m.Material)
	assert.Equal(t, 3.0, m.Hardness)
	assert.Equal(t, 1, m.HarvestLevel)
	assert.True(t, m.RequiresTool)
	assert.Equal(t, LayerCutout, m.RenderLayer)
}
