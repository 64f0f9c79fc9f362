package implementations

import (
	"math/rand"

	"github.com/annel0/stone-variants/internal/item"
	"github.com/annel0/stone-variants/internal/loot"
	"github.com/annel0/stone-variants/internal/vec"
	"github.com/annel0/stone-variants/internal/world/block"
)

func oreSettings(level int) block.Settings {
	return block.Settings{
		Material:     block.MaterialRock,
		MaterialName: "rock",
		Hardness:     3,
		Resistance:   3,
		RequiresTool: true,
		HarvestLevel: level,
		Opacity:      15,
	}
}

func rangeOf(min, max int) loot.Range {
	return loot.Range{Min: min, Max: max}
}

// OreBehavior руда с собственной таблицей добычи и опытом
type OreBehavior struct {
	block.Base
	drop  string
	count loot.Range
	xp    loot.Range
}

// NewOre создает руду. drop: имя выпадающего предмета.
func NewOre(name, drop string, settings block.Settings, count, xp loot.Range, props ...block.Property) *OreBehavior {
	b := &OreBehavior{drop: drop, count: count, xp: xp}
	b.Init(b, name, settings, block.MustDefinition(props...))
	return b
}

// Drops руда роняет drop (с учетом удачи) или себя при шелковом касании
func (b *OreBehavior) Drops(s block.State, ctx loot.Context) []item.Stack {
	if ctx.SilkTouch || b.drop == b.Name() {
		return []item.Stack{item.NewStack(b.AsItem(), 1)}
	}
	count := b.count
	count.Max += ctx.Fortune
	n := count.Rand(ctx.Rand)
	if n <= 0 {
		return nil
	}
	return []item.Stack{item.NewStack(item.Of(b.drop), n)}
}

// ExpDrop опыт за добычу без шелкового касания
func (b *OreBehavior) ExpDrop(s block.State, w block.World, pos vec.Vec3, fortune, silkTouch int) int {
	if silkTouch > 0 {
		return 0
	}
	return b.xp.Rand(rand.New(rand.NewSource(w.Time())))
}
