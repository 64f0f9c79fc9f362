package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndFind(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(NewVariantItem("stone_iron_ore")))
	require.NoError(t, r.Register(NewDenseVariantItem("stone_iron_ore")))

	dense, ok := r.Find(func(it Item) bool { return IsDense(it) })
	require.True(t, ok)
	assert.Equal(t, "dense_stone_iron_ore", dense.Name())

	_, ok = r.Get("stone_iron_ore")
	assert.True(t, ok)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_DuplicateAndFrozen(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Of("coal")))
	assert.ErrorIs(t, r.Register(Of("coal")), ErrDuplicate)

	r.Freeze()
	assert.True(t, r.Frozen())
	assert.ErrorIs(t, r.Register(Of("diamond")), ErrFrozen)
}

func TestStack_Helpers(t *testing.T) {
	a := NewStack(Of("coal"), 2)
	b := NewStack(Of("coal"), 5)
	assert.True(t, a.SameItem(b))
	assert.False(t, a.IsEmpty())
	assert.True(t, Empty.IsEmpty())
	assert.Equal(t, 7, Total([]Stack{a, b}))
	assert.Equal(t, "2xcoal", a.String())
}
