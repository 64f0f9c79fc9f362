package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annel0/stone-variants/internal/item"
	"github.com/annel0/stone-variants/internal/vec"
)

func TestEntity_Name(t *testing.T) {
	e := NewEntity(5, EntityTypeAnimal, vec.Vec3{Y: 10})
	assert.Equal(t, uint64(5), e.ID())
	assert.Equal(t, "animal", e.Name())
	assert.Equal(t, vec.Vec3{Y: 9}, e.BlockBelow())

	e.Payload["username"] = "корова"
	assert.Equal(t, "корова", e.Name())
}

func TestPlayer_Inventory(t *testing.T) {
	p := NewPlayer(42, vec.Vec3{})
	assert.Equal(t, "Player42", p.Name())

	coal := item.NewStack(item.Of("coal"), 3)
	assert.False(t, p.HasItem(coal))

	p.AddItemToInventory(coal)
	p.AddItemToInventory(item.NewStack(item.Of("coal"), 2))
	assert.Equal(t, 5, p.GetInventoryItem("coal"))
	assert.True(t, p.HasItem(coal))
	assert.False(t, p.HasItem(item.Empty))

	pick := item.NewStack(item.Of("iron_pickaxe"), 1)
	p.Equip(pick, 2)
	assert.True(t, p.HasItem(pick))
	assert.Equal(t, 2, p.ToolLevel())
	assert.Equal(t, "iron_pickaxe", p.HeldItem().Item.Name())

	p.AddExperience(4)
	p.AddExperience(3)
	assert.Equal(t, 7, p.Experience())

	assert.False(t, p.Creative())
	p.SetCreative(true)
	assert.True(t, p.Creative())
}
