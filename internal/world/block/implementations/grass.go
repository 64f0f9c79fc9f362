package implementations

import (
	"math/rand"

	"github.com/annel0/stone-variants/internal/item"
	"github.com/annel0/stone-variants/internal/loot"
	"github.com/annel0/stone-variants/internal/vec"
	"github.com/annel0/stone-variants/internal/world/block"
)

// Snowy трава под снегом
var Snowy = block.NewBool("snowy")

// GrassBehavior реализует поведение блока травы
type GrassBehavior struct {
	block.Base
}

// NewGrass создает траву
func NewGrass() *GrassBehavior {
	b := &GrassBehavior{}
	b.Init(b, "grass", block.Settings{
		Material:     block.MaterialOrganic,
		MaterialName: "organic",
		Hardness:     0.6,
		Opacity:      15,
		RenderLayer:  block.LayerCutoutMipped,
	}, block.MustDefinition(Snowy))
	return b
}

// TicksRandomly трава растет и распространяется всегда
func (b *GrassBehavior) TicksRandomly(s block.State) bool {
	return true
}

// RandomTick: трава под непрозрачным блоком превращается в землю,
// иначе пытается распространиться на соседнюю влажную землю
func (b *GrassBehavior) RandomTick(s block.State, w block.World, pos vec.Vec3, rnd *rand.Rand) error {
	current := w.BlockState(pos)
	if current.IsZero() {
		return block.ErrStateAbsent
	}

	above := w.BlockState(pos.Offset(vec.Up))
	if !above.IsZero() && above.Block().Settings().Opacity >= 15 && !above.Is(SnowBlock) {
		w.SetBlockState(pos, Dirt.DefaultState(), block.FlagDefault)
		return nil
	}

	// Случайно выбираем соседа для распространения
	target := pos.Add(vec.Vec3{X: rnd.Intn(3) - 1, Y: rnd.Intn(3) - 1, Z: rnd.Intn(3) - 1})
	if target == pos {
		return nil
	}
	ts := w.BlockState(target)
	if ts.Is(Dirt) && ts.Int(Moisture) >= 2 {
		// Превращаем землю в траву
		w.SetBlockState(target, b.DefaultState(), block.FlagDefault)
	}
	return nil
}

// UpdatePostPlacement трава становится заснеженной под снегом
func (b *GrassBehavior) UpdatePostPlacement(s block.State, dir vec.Direction, facing block.State, w block.World, pos, facingPos vec.Vec3) block.State {
	if dir != vec.Up {
		return s
	}
	return s.With(Snowy, facing.Is(SnowBlock))
}

// Drops трава без шелкового касания роняет землю
func (b *GrassBehavior) Drops(s block.State, ctx loot.Context) []item.Stack {
	if ctx.SilkTouch {
		return []item.Stack{item.NewStack(b.AsItem(), 1)}
	}
	return []item.Stack{item.NewStack(Dirt.AsItem(), 1)}
}

// CanSustainPlant трава держит растения
func (b *GrassBehavior) CanSustainPlant(s block.State, w block.World, pos vec.Vec3, facing vec.Direction, plant string) bool {
	return facing == vec.Up
}
