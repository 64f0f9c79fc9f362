package implementations

import (
	"math/rand"

	"github.com/annel0/stone-variants/internal/vec"
	"github.com/annel0/stone-variants/internal/world/block"
)

// Lit светится ли редстоуновая руда
var Lit = block.NewBool("lit")

// RedstoneOreBehavior загорается от касания и гаснет случайным тиком
type RedstoneOreBehavior struct {
	OreBehavior
}

// NewRedstoneOre создает редстоуновую руду
func NewRedstoneOre() *RedstoneOreBehavior {
	b := &RedstoneOreBehavior{OreBehavior{drop: "redstone", count: rangeOf(4, 5), xp: rangeOf(1, 5)}}
	settings := oreSettings(2)
	settings.LightLevel = 9
	b.Init(b, "redstone_ore", settings, block.MustDefinition(Lit))
	return b
}

// activate зажигает руду, читая текущее состояние из мира
func (b *RedstoneOreBehavior) activate(w block.World, pos vec.Vec3) {
	current := w.BlockState(pos)
	if current.Is(b) && !current.Bool(Lit) {
		w.SetBlockState(pos, current.With(Lit, true), block.FlagDefault)
	}
}

// OnClick удар по руде зажигает ее
func (b *RedstoneOreBehavior) OnClick(s block.State, w block.World, pos vec.Vec3, p block.Player) {
	b.activate(w, pos)
}

// OnEntityWalk шаг по руде зажигает ее
func (b *RedstoneOreBehavior) OnEntityWalk(w block.World, pos vec.Vec3, e block.Entity) {
	b.activate(w, pos)
}

// Activate использование руды зажигает ее
func (b *RedstoneOreBehavior) Activate(s block.State, w block.World, pos vec.Vec3, p block.Player, hand block.Hand) block.ActionResult {
	b.activate(w, pos)
	return block.ActionSuccess
}

// TicksRandomly только горящая руда получает случайные тики
func (b *RedstoneOreBehavior) TicksRandomly(s block.State) bool {
	return s.Bool(Lit)
}

// RandomTick гасит руду
func (b *RedstoneOreBehavior) RandomTick(s block.State, w block.World, pos vec.Vec3, rnd *rand.Rand) error {
	current := w.BlockState(pos)
	if current.IsZero() {
		return block.ErrStateAbsent
	}
	if current.Is(b) && current.Bool(Lit) {
		w.SetBlockState(pos, current.With(Lit, false), block.FlagDefault)
	}
	return nil
}

// CanProvidePower горящая руда не дает сигнал, но соединяется с проводами
func (b *RedstoneOreBehavior) CanConnectRedstone(s block.State, w block.World, pos vec.Vec3, side vec.Direction) bool {
	return s.Bool(Lit)
}
