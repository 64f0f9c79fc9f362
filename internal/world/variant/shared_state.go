// Package variant реализует составной блок, который одновременно ведет себя
// как фоновый блок (камень, земля) и как руда, и вариант руды поверх него.
package variant

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/annel0/stone-variants/internal/item"
	"github.com/annel0/stone-variants/internal/logging"
	"github.com/annel0/stone-variants/internal/loot"
	"github.com/annel0/stone-variants/internal/metrics"
	"github.com/annel0/stone-variants/internal/vec"
	"github.com/annel0/stone-variants/internal/world/block"
	"github.com/annel0/stone-variants/internal/world/block/implementations"
)

// SharedStateConfig параметры построения составного блока. Передаются в
// инициализатор явно, до того как появятся поля самого блока.
type SharedStateConfig struct {
	Name       string
	Background block.Block
	Foreground block.Block
	// Markers собственные свойства составного блока, идут первыми
	Markers  []block.Property
	Settings block.Settings
}

// SharedState составной блок: объединяет пространства состояний фона и руды и
// делегирует им каждый хук через перехватчик мира.
type SharedState struct {
	block.Base
	identities [2]Identity
}

// NewSharedState создает самостоятельный составной блок
func NewSharedState(cfg SharedStateConfig) (*SharedState, error) {
	s := &SharedState{}
	if err := s.InitShared(s, cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// InitShared инициализирует составной блок. self: внешний тип, встроивший
// SharedState. Конфликт имен свойств фона и руды возвращается как ошибка.
func (s *SharedState) InitShared(self block.Block, cfg SharedStateConfig) error {
	if cfg.Background == nil || cfg.Foreground == nil {
		return fmt.Errorf("составной блок %s: не задан фон или руда", cfg.Name)
	}
	def, err := block.Union(cfg.Markers, cfg.Background.Definition(), cfg.Foreground.Definition())
	if err != nil {
		return fmt.Errorf("составной блок %s: %w", cfg.Name, err)
	}
	s.identities = [2]Identity{
		{Role: Background, Block: cfg.Background},
		{Role: Foreground, Block: cfg.Foreground},
	}
	s.Init(self, cfg.Name, cfg.Settings, def)
	s.SetDefaultState(block.Imitate(s.DefaultState(), cfg.Background.DefaultState(), cfg.Foreground.DefaultState()))
	return nil
}

// Background фоновый блок
func (s *SharedState) Background() block.Block { return s.identities[Background].Block }

// Foreground блок руды
func (s *SharedState) Foreground() block.Block { return s.identities[Foreground].Block }

// Identities обернутые блоки в порядке делегирования
func (s *SharedState) Identities() [2]Identity { return s.identities }

// Matches составной блок совпадает с собой и с обоими обернутыми блоками
func (s *SharedState) Matches(other block.Block) bool {
	return other != nil && (other == s.Self() || other == s.Background() || other == s.Foreground())
}

// BackgroundMap сопоставляет каждому допустимому состоянию фона состояние
// составного блока, которое его имитирует
func (s *SharedState) BackgroundMap() map[string]block.State {
	bg := s.Background()
	out := make(map[string]block.State)
	for _, st := range bg.Definition().ValidStates(bg) {
		out[st.String()] = block.Imitate(s.DefaultState(), st)
	}
	return out
}

// ImitateBackground переводит состояние фона в состояние составного блока
func (s *SharedState) ImitateBackground(bg block.State) block.State {
	return block.Imitate(s.DefaultState(), bg)
}

func (s *SharedState) StateForPlacement(ctx block.PlaceContext) block.State {
	states := delegateEach(s, "state_for_placement", ctx.World, ctx.Pos, func(id Identity, view block.World) (block.State, bool) {
		c := ctx
		if view != nil {
			c.World = view
		}
		return id.Block.StateForPlacement(c), true
	})
	return block.Imitate(s.DefaultState(), states...)
}

func (s *SharedState) UpdatePostPlacement(st block.State, dir vec.Direction, facing block.State, w block.World, pos, facingPos vec.Vec3) block.State {
	states := delegateEach(s, "update_post_placement", w, pos, func(id Identity, view block.World) (block.State, bool) {
		return id.Block.UpdatePostPlacement(id.imitate(st), dir, facing, view, pos, facingPos), true
	})
	// Фон применяется первым, руда перекрывает общие свойства
	return block.Imitate(st, states...)
}

func (s *SharedState) TicksRandomly(st block.State) bool {
	for _, id := range s.identities {
		if id.Block.TicksRandomly(id.imitate(st)) {
			return true
		}
	}
	return false
}

// RandomTick делегирует случайный тик. Отсутствие состояния в мире во время
// делегирования пропускает тик с записью в лог, как возвращенное блоком, так и
// пойманное паникой State.With. Прочие ошибки и паники не подавляются.
func (s *SharedState) RandomTick(st block.State, w block.World, pos vec.Vec3, rnd *rand.Rand) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if rerr, ok := r.(error); ok && errors.Is(rerr, block.ErrStateAbsent) {
			s.skipRandomTick(pos)
			err = nil
			return
		}
		panic(r)
	}()

	errs := delegateEach(s, "random_tick", w, pos, func(id Identity, view block.World) (error, bool) {
		err := id.Block.RandomTick(id.imitate(st), view, pos, rnd)
		return err, err == nil
	})
	err = errs[len(errs)-1]
	if errors.Is(err, block.ErrStateAbsent) {
		s.skipRandomTick(pos)
		return nil
	}
	return err
}

func (s *SharedState) skipRandomTick(pos vec.Vec3) {
	logging.LogError("Перехватчик вернул пустое состояние для %s в %s при случайном тике. Пропускаем.", s.Name(), pos)
	metrics.RandomTicksSkipped.Inc()
}

func (s *SharedState) Tick(st block.State, w block.World, pos vec.Vec3, rnd *rand.Rand) error {
	errs := delegateEach(s, "tick", w, pos, func(id Identity, view block.World) (error, bool) {
		err := id.Block.Tick(id.imitate(st), view, pos, rnd)
		return err, err == nil
	})
	return errs[len(errs)-1]
}

func (s *SharedState) AnimateTick(st block.State, w block.World, pos vec.Vec3, rnd *rand.Rand) {
	delegateEach(s, "animate_tick", w, pos, func(id Identity, view block.World) (struct{}, bool) {
		id.Block.AnimateTick(id.imitate(st), view, pos, rnd)
		return struct{}{}, true
	})
}

func (s *SharedState) OnPlace(st block.State, w block.World, pos vec.Vec3, old block.State, moving bool) {
	delegateEach(s, "on_place", w, pos, func(id Identity, view block.World) (struct{}, bool) {
		id.Block.OnPlace(id.imitate(st), view, pos, id.imitate(old), moving)
		return struct{}{}, true
	})
}

func (s *SharedState) OnClick(st block.State, w block.World, pos vec.Vec3, p block.Player) {
	delegateEach(s, "on_click", w, pos, func(id Identity, view block.World) (struct{}, bool) {
		id.Block.OnClick(id.imitate(st), view, pos, p)
		return struct{}{}, true
	})
}

func (s *SharedState) OnEntityWalk(w block.World, pos vec.Vec3, e block.Entity) {
	delegateEach(s, "on_entity_walk", w, pos, func(id Identity, view block.World) (struct{}, bool) {
		id.Block.OnEntityWalk(view, pos, e)
		return struct{}{}, true
	})
}

func (s *SharedState) OnExplosionDestroy(w block.World, pos vec.Vec3, ex block.Explosion) {
	delegateEach(s, "on_explosion_destroy", w, pos, func(id Identity, view block.World) (struct{}, bool) {
		id.Block.OnExplosionDestroy(view, pos, ex)
		return struct{}{}, true
	})
}

// Activate провал фона дает провал независимо от руды, иначе решает руда
func (s *SharedState) Activate(st block.State, w block.World, pos vec.Vec3, p block.Player, hand block.Hand) block.ActionResult {
	results := delegateEach(s, "activate", w, pos, func(id Identity, view block.World) (block.ActionResult, bool) {
		return id.Block.Activate(id.imitate(st), view, pos, p, hand), true
	})
	if results[Background] == block.ActionFail {
		return block.ActionFail
	}
	return results[Foreground]
}

// Drops добыча определяется рудой
func (s *SharedState) Drops(st block.State, ctx loot.Context) []item.Stack {
	fg := s.identities[Foreground]
	return fg.Block.Drops(fg.imitate(st), ctx)
}

func (s *SharedState) SpawnAdditionalDrops(st block.State, w block.World, pos vec.Vec3, tool item.Stack) {
	delegateEach(s, "spawn_additional_drops", w, pos, func(id Identity, view block.World) (struct{}, bool) {
		id.Block.SpawnAdditionalDrops(id.imitate(st), view, pos, tool)
		return struct{}{}, true
	})
}

func (s *SharedState) ExpDrop(st block.State, w block.World, pos vec.Vec3, fortune, silkTouch int) int {
	return delegateTo(s, Foreground, "exp_drop", w, pos, func(id Identity, view block.World) int {
		return id.Block.ExpDrop(id.imitate(st), view, pos, fortune, silkTouch)
	})
}

// Предикаты "может ли" истинны, если истинны хотя бы у одного блока.
// Числовые материальные свойства берутся у фона.

func (s *SharedState) IsLadder(st block.State, w block.World, pos vec.Vec3, e block.Entity) bool {
	return anyOf(delegateEach(s, "is_ladder", w, pos, func(id Identity, view block.World) (bool, bool) {
		return id.Block.IsLadder(id.imitate(st), view, pos, e), true
	}))
}

func (s *SharedState) IsBurning(st block.State, w block.World, pos vec.Vec3) bool {
	return anyOf(delegateEach(s, "is_burning", w, pos, func(id Identity, view block.World) (bool, bool) {
		return id.Block.IsBurning(id.imitate(st), view, pos), true
	}))
}

func (s *SharedState) IsFlammable(st block.State, w block.World, pos vec.Vec3, side vec.Direction) bool {
	return anyOf(delegateEach(s, "is_flammable", w, pos, func(id Identity, view block.World) (bool, bool) {
		return id.Block.IsFlammable(id.imitate(st), view, pos, side), true
	}))
}

func (s *SharedState) Flammability(st block.State, w block.World, pos vec.Vec3, side vec.Direction) int {
	return delegateTo(s, Background, "flammability", w, pos, func(id Identity, view block.World) int {
		return id.Block.Flammability(id.imitate(st), view, pos, side)
	})
}

func (s *SharedState) FireSpreadSpeed(st block.State, w block.World, pos vec.Vec3, side vec.Direction) int {
	return delegateTo(s, Background, "fire_spread_speed", w, pos, func(id Identity, view block.World) int {
		return id.Block.FireSpreadSpeed(id.imitate(st), view, pos, side)
	})
}

func (s *SharedState) CanCreatureSpawn(st block.State, w block.World, pos vec.Vec3, placement block.SpawnPlacement) bool {
	return anyOf(delegateEach(s, "can_creature_spawn", w, pos, func(id Identity, view block.World) (bool, bool) {
		return id.Block.CanCreatureSpawn(id.imitate(st), view, pos, placement), true
	}))
}

func (s *SharedState) CanConnectRedstone(st block.State, w block.World, pos vec.Vec3, side vec.Direction) bool {
	return anyOf(delegateEach(s, "can_connect_redstone", w, pos, func(id Identity, view block.World) (bool, bool) {
		return id.Block.CanConnectRedstone(id.imitate(st), view, pos, side), true
	}))
}

func (s *SharedState) CanProvidePower(st block.State) bool {
	for _, id := range s.identities {
		if id.Block.CanProvidePower(id.imitate(st)) {
			return true
		}
	}
	return false
}

func (s *SharedState) CanSustainPlant(st block.State, w block.World, pos vec.Vec3, facing vec.Direction, plant string) bool {
	return anyOf(delegateEach(s, "can_sustain_plant", w, pos, func(id Identity, view block.World) (bool, bool) {
		return id.Block.CanSustainPlant(id.imitate(st), view, pos, facing, plant), true
	}))
}

func (s *SharedState) IsSticky(st block.State) bool {
	bg := s.identities[Background]
	return bg.Block.IsSticky(bg.imitate(st))
}

// PushReaction обсидиановый фон всегда неподвижен
func (s *SharedState) PushReaction(st block.State) block.PushReaction {
	bg := s.identities[Background]
	if bg.Block == block.Block(implementations.Obsidian) {
		return block.PushBlock
	}
	return bg.Block.PushReaction(bg.imitate(st))
}

func (s *SharedState) Opacity(st block.State, w block.World, pos vec.Vec3) int {
	return delegateTo(s, Background, "opacity", w, pos, func(id Identity, view block.World) int {
		return id.Block.Opacity(id.imitate(st), view, pos)
	})
}

// Эффекты показываются, если их показал хотя бы один блок

func (s *SharedState) AddLandingEffects(st block.State, w block.World, pos vec.Vec3, e block.Entity, particles int) bool {
	return anyOf(delegateEach(s, "add_landing_effects", w, pos, func(id Identity, view block.World) (bool, bool) {
		return id.Block.AddLandingEffects(id.imitate(st), view, pos, e, particles), true
	}))
}

func (s *SharedState) AddRunningEffects(st block.State, w block.World, pos vec.Vec3, e block.Entity) bool {
	return anyOf(delegateEach(s, "add_running_effects", w, pos, func(id Identity, view block.World) (bool, bool) {
		return id.Block.AddRunningEffects(id.imitate(st), view, pos, e), true
	}))
}

func (s *SharedState) AddHitEffects(st block.State, w block.World, pos vec.Vec3) bool {
	return anyOf(delegateEach(s, "add_hit_effects", w, pos, func(id Identity, view block.World) (bool, bool) {
		return id.Block.AddHitEffects(id.imitate(st), view, pos), true
	}))
}

func (s *SharedState) AddDestroyEffects(st block.State, w block.World, pos vec.Vec3) bool {
	return anyOf(delegateEach(s, "add_destroy_effects", w, pos, func(id Identity, view block.World) (bool, bool) {
		return id.Block.AddDestroyEffects(id.imitate(st), view, pos), true
	}))
}

// RenderLayer составной блок рисуется в слое фона
func (s *SharedState) RenderLayer() block.RenderLayer {
	return s.Background().RenderLayer()
}

func anyOf(values []bool) bool {
	for _, v := range values {
		if v {
			return true
		}
	}
	return false
}
