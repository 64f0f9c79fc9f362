package implementations

import (
	"math/rand"

	"github.com/annel0/stone-variants/internal/vec"
	"github.com/annel0/stone-variants/internal/world/block"
)

// fallDelay задержка перед падением песка в тиках
const fallDelay = 2

// SandBehavior песок падает, если под ним пусто
type SandBehavior struct {
	block.Base
}

// NewSand создает песок
func NewSand() *SandBehavior {
	b := &SandBehavior{}
	b.Init(b, "sand", block.Settings{
		Material:     block.MaterialSand,
		MaterialName: "sand",
		Hardness:     0.5,
		Opacity:      15,
	}, nil)
	return b
}

// OnPlace планирует проверку падения
func (b *SandBehavior) OnPlace(s block.State, w block.World, pos vec.Vec3, old block.State, moving bool) {
	w.Ticks().ScheduleTick(pos, b, fallDelay, block.PriorityNormal)
}

// UpdatePostPlacement планирует проверку падения при изменении соседа
func (b *SandBehavior) UpdatePostPlacement(s block.State, dir vec.Direction, facing block.State, w block.World, pos, facingPos vec.Vec3) block.State {
	w.Ticks().ScheduleTick(pos, b, fallDelay, block.PriorityNormal)
	return s
}

// Tick сдвигает песок на блок вниз, если под ним воздух
func (b *SandBehavior) Tick(s block.State, w block.World, pos vec.Vec3, rnd *rand.Rand) error {
	below := pos.Offset(vec.Down)
	if !IsAir(w.BlockState(below)) || w.BlockState(below).IsZero() {
		return nil
	}
	w.SetBlockState(pos, Air.DefaultState(), block.FlagDefault)
	w.SetBlockState(below, s, block.FlagDefault)
	return nil
}
