package implementations

import (
	"math/rand"

	"github.com/annel0/stone-variants/internal/vec"
	"github.com/annel0/stone-variants/internal/world/block"
)

// Moisture влажность земли
var Moisture = block.NewInt("moisture", 0, 7)

// DirtBehavior реализует поведение блока земли/грязи
type DirtBehavior struct {
	block.Base
}

// NewDirt создает землю
func NewDirt() *DirtBehavior {
	b := &DirtBehavior{}
	b.Init(b, "dirt", block.Settings{
		Material:     block.MaterialEarth,
		MaterialName: "earth",
		Hardness:     0.5,
		Opacity:      15,
	}, block.MustDefinition(Moisture))
	return b
}

// TicksRandomly влажная земля постепенно высыхает
func (b *DirtBehavior) TicksRandomly(s block.State) bool {
	return s.Int(Moisture) > 0
}

// RandomTick уменьшает влажность на единицу
func (b *DirtBehavior) RandomTick(s block.State, w block.World, pos vec.Vec3, rnd *rand.Rand) error {
	current := w.BlockState(pos)
	if current.IsZero() {
		return block.ErrStateAbsent
	}
	if m := current.Int(Moisture); m > 0 {
		w.SetBlockState(pos, current.With(Moisture, m-1), block.FlagDefault)
	}
	return nil
}

// Activate поливает землю ведром воды
func (b *DirtBehavior) Activate(s block.State, w block.World, pos vec.Vec3, p block.Player, hand block.Hand) block.ActionResult {
	if p == nil || p.HeldItem().IsEmpty() || p.HeldItem().Item.Name() != "water_bucket" {
		return block.ActionPass
	}
	w.SetBlockState(pos, s.With(Moisture, Moisture.Max()), block.FlagDefault)
	return block.ActionSuccess
}

// CanSustainPlant земля держит растения
func (b *DirtBehavior) CanSustainPlant(s block.State, w block.World, pos vec.Vec3, facing vec.Direction, plant string) bool {
	return facing == vec.Up
}
