package implementations

import (
	"github.com/annel0/stone-variants/internal/item"
	"github.com/annel0/stone-variants/internal/loot"
	"github.com/annel0/stone-variants/internal/world/block"
)

// AirBehavior реализует поведение пустого блока (воздуха)
type AirBehavior struct {
	block.Base
}

// NewAir создает воздух
func NewAir() *AirBehavior {
	b := &AirBehavior{}
	b.Init(b, "air", block.Settings{Material: block.MaterialAir, PushReaction: block.PushIgnore}, nil)
	return b
}

// Drops воздух ничего не роняет
func (b *AirBehavior) Drops(s block.State, ctx loot.Context) []item.Stack {
	return nil
}

// IsAir проверяет, что состояние пустое или воздух
func IsAir(s block.State) bool {
	return s.IsZero() || s.Block().Settings().Material == block.MaterialAir
}
