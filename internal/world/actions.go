package world

import (
	"fmt"
	"math"

	"github.com/annel0/stone-variants/internal/item"
	"github.com/annel0/stone-variants/internal/logging"
	"github.com/annel0/stone-variants/internal/loot"
	"github.com/annel0/stone-variants/internal/vec"
	"github.com/annel0/stone-variants/internal/world/block"
	"github.com/annel0/stone-variants/internal/world/block/implementations"
)

// Enchantments чары инструмента, влияющие на добычу
type Enchantments struct {
	SilkTouch bool
	Fortune   int
}

func (e Enchantments) silkLevel() int {
	if e.SilkTouch {
		return 1
	}
	return 0
}

// BreakResult итог разрушения блока
type BreakResult struct {
	State     block.State  // Разрушенное состояние
	Harvested bool         // Блок добыт, а не просто разрушен
	Drops     []item.Stack // Выброшенные предметы
	XP        int          // Выпавший опыт
}

// Place ставит блок от имени игрока через StateForPlacement
func (wm *WorldManager) Place(pos vec.Vec3, b block.Block, p block.Player) (block.State, error) {
	if !wm.IsLoaded(pos.ToChunkCoords()) {
		return block.State{}, ErrChunkNotLoaded
	}
	ctx := block.PlaceContext{
		World:  wm,
		Pos:    pos,
		Face:   vec.Up,
		Player: p,
		Item:   item.NewStack(b.AsItem(), 1),
	}
	s := b.StateForPlacement(ctx)
	if s.IsZero() {
		s = b.DefaultState()
	}
	if !wm.SetBlockState(pos, s, block.FlagDefault) {
		return block.State{}, fmt.Errorf("установка %s в %s отклонена", b.Name(), pos)
	}
	return wm.BlockState(pos), nil
}

// Break ломает блок. Если игрок не может добыть блок, он разрушается без добычи.
// Игрок в творческом режиме ничего не получает.
func (wm *WorldManager) Break(pos vec.Vec3, p block.Player, ench Enchantments) (BreakResult, error) {
	s := wm.BlockState(pos)
	if s.IsZero() {
		return BreakResult{}, ErrChunkNotLoaded
	}
	if implementations.IsAir(s) {
		return BreakResult{}, ErrNothingToBreak
	}
	b := s.Block()
	res := BreakResult{State: s}

	creative := p != nil && p.Creative()
	if !creative && (p == nil || b.CanHarvest(s, wm, pos, p)) {
		var tool item.Stack
		if p != nil {
			tool = p.HeldItem()
		}
		res.Harvested = true
		res.Drops = b.Drops(s, loot.Context{
			Tool:      tool,
			SilkTouch: ench.SilkTouch,
			Fortune:   ench.Fortune,
			Rand:      wm.newRand(),
		})
		for _, st := range res.Drops {
			wm.SpawnItem(pos, st)
		}
		b.SpawnAdditionalDrops(s, wm, pos, tool)
		res.XP = b.ExpDrop(s, wm, pos, ench.Fortune, ench.silkLevel())
	}

	b.AddDestroyEffects(s, wm, pos)
	wm.SetBlockState(pos, implementations.Air.DefaultState(), block.FlagDefault)
	logging.LogDebug("Блок %s в %s сломан (добыт: %v, предметов: %d, опыт: %d)",
		s, pos, res.Harvested, item.Total(res.Drops), res.XP)
	return res, nil
}

// Explode разрушает блоки в сфере радиуса ex.Power, кроме взрывоустойчивых.
// Возвращает число разрушенных блоков.
func (wm *WorldManager) Explode(ex block.Explosion) int {
	r := int(math.Ceil(ex.Power))
	destroyed := 0
	rnd := wm.newRand()
	for dy := -r; dy <= r; dy++ {
		for dz := -r; dz <= r; dz++ {
			for dx := -r; dx <= r; dx++ {
				if float64(dx*dx+dy*dy+dz*dz) > ex.Power*ex.Power {
					continue
				}
				pos := ex.Center.Add(vec.Vec3{X: dx, Y: dy, Z: dz})
				s := wm.BlockState(pos)
				if s.IsZero() || implementations.IsAir(s) {
					continue
				}
				b := s.Block()
				if b.Settings().Resistance >= BlastProofResistance {
					continue
				}
				for _, st := range b.Drops(s, loot.Context{Explosion: true, Rand: rnd}) {
					wm.SpawnItem(pos, st)
				}
				wm.SetBlockState(pos, implementations.Air.DefaultState(), block.FlagDefault)
				b.OnExplosionDestroy(wm, pos, ex)
				destroyed++
			}
		}
	}
	return destroyed
}

// Interact активирует блок правым кликом
func (wm *WorldManager) Interact(pos vec.Vec3, p block.Player, hand block.Hand) block.ActionResult {
	s := wm.BlockState(pos)
	if s.IsZero() {
		return block.ActionFail
	}
	return s.Block().Activate(s, wm, pos, p, hand)
}

// Click обрабатывает левый клик по блоку
func (wm *WorldManager) Click(pos vec.Vec3, p block.Player) {
	s := wm.BlockState(pos)
	if s.IsZero() {
		return
	}
	s.Block().OnClick(s, wm, pos, p)
}

// WalkOn сообщает блоку под сущностью, что по нему идут
func (wm *WorldManager) WalkOn(pos vec.Vec3, e block.Entity) {
	s := wm.BlockState(pos)
	if s.IsZero() {
		return
	}
	s.Block().OnEntityWalk(wm, pos, e)
}

// Pick возвращает стопку, которую игрок получает средним кликом
func (wm *WorldManager) Pick(pos vec.Vec3, p block.Player) item.Stack {
	s := wm.BlockState(pos)
	if s.IsZero() {
		return item.Empty
	}
	return s.Block().PickBlock(s, wm, pos, p)
}
