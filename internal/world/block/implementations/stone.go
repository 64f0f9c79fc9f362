package implementations

import (
	"github.com/annel0/stone-variants/internal/item"
	"github.com/annel0/stone-variants/internal/loot"
	"github.com/annel0/stone-variants/internal/world/block"
)

// StoneBehavior реализует поведение блока камня
type StoneBehavior struct {
	block.Base
}

// NewStone создает камень
func NewStone() *StoneBehavior {
	b := &StoneBehavior{}
	b.Init(b, "stone", block.Settings{
		Material:     block.MaterialRock,
		MaterialName: "rock",
		Hardness:     1.5,
		Resistance:   6,
		RequiresTool: true,
		Opacity:      15,
	}, nil)
	return b
}

// Drops камень без шелкового касания превращается в булыжник
func (b *StoneBehavior) Drops(s block.State, ctx loot.Context) []item.Stack {
	if ctx.SilkTouch {
		return []item.Stack{item.NewStack(b.AsItem(), 1)}
	}
	return []item.Stack{item.NewStack(item.Of("cobblestone"), 1)}
}
