package implementations

import "github.com/annel0/stone-variants/internal/world/block"

// ObsidianBehavior обсидиан: неподвижен для поршней
type ObsidianBehavior struct {
	block.Base
}

// NewObsidian создает обсидиан
func NewObsidian() *ObsidianBehavior {
	b := &ObsidianBehavior{}
	b.Init(b, "obsidian", block.Settings{
		Material:     block.MaterialRock,
		MaterialName: "rock",
		Hardness:     50,
		Resistance:   1200,
		RequiresTool: true,
		HarvestLevel: 3,
		Opacity:      15,
		PushReaction: block.PushBlock,
	}, nil)
	return b
}
