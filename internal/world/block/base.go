package block

import (
	"math/rand"

	"github.com/annel0/stone-variants/internal/item"
	"github.com/annel0/stone-variants/internal/loot"
	"github.com/annel0/stone-variants/internal/vec"
)

// Base реализует все хуки Block поведением обычного неподвижного блока.
// Встраивающий тип обязан вызвать Init, передав себя как self.
type Base struct {
	self     Block
	name     string
	def      *Definition
	defState State
	settings Settings
}

// Init заполняет базовые поля; состояние по умолчанию принадлежит self
func (b *Base) Init(self Block, name string, settings Settings, def *Definition) {
	if def == nil {
		def = MustDefinition()
	}
	b.self = self
	b.name = name
	b.def = def
	b.settings = settings
	b.defState = NewDefaultState(self, def)
}

// SetDefaultState переопределяет состояние по умолчанию
func (b *Base) SetDefaultState(s State) {
	b.defState = s
}

// Self возвращает внешний блок, встроивший Base
func (b *Base) Self() Block { return b.self }

func (b *Base) Name() string            { return b.name }
func (b *Base) Definition() *Definition { return b.def }
func (b *Base) DefaultState() State     { return b.defState }
func (b *Base) Settings() Settings      { return b.settings }

func (b *Base) Matches(other Block) bool {
	return other != nil && other == b.self
}

func (b *Base) StateForPlacement(ctx PlaceContext) State {
	return b.defState
}

func (b *Base) UpdatePostPlacement(s State, dir vec.Direction, facing State, w World, pos, facingPos vec.Vec3) State {
	return s
}

func (b *Base) TicksRandomly(s State) bool { return false }

func (b *Base) RandomTick(s State, w World, pos vec.Vec3, rnd *rand.Rand) error { return nil }

func (b *Base) Tick(s State, w World, pos vec.Vec3, rnd *rand.Rand) error { return nil }

func (b *Base) AnimateTick(s State, w World, pos vec.Vec3, rnd *rand.Rand) {}

func (b *Base) OnPlace(s State, w World, pos vec.Vec3, old State, moving bool) {}

func (b *Base) OnClick(s State, w World, pos vec.Vec3, p Player) {}

func (b *Base) OnEntityWalk(w World, pos vec.Vec3, e Entity) {}

func (b *Base) OnExplosionDestroy(w World, pos vec.Vec3, ex Explosion) {}

func (b *Base) Activate(s State, w World, pos vec.Vec3, p Player, hand Hand) ActionResult {
	return ActionPass
}

// Drops по умолчанию: сам блок
func (b *Base) Drops(s State, ctx loot.Context) []item.Stack {
	if b.settings.Material == MaterialAir {
		return nil
	}
	return []item.Stack{item.NewStack(b.self.AsItem(), 1)}
}

func (b *Base) SpawnAdditionalDrops(s State, w World, pos vec.Vec3, tool item.Stack) {}

func (b *Base) ExpDrop(s State, w World, pos vec.Vec3, fortune, silkTouch int) int { return 0 }

func (b *Base) CanHarvest(s State, w World, pos vec.Vec3, p Player) bool {
	if !b.settings.RequiresTool || p == nil {
		return !b.settings.RequiresTool
	}
	return p.ToolLevel() >= b.settings.HarvestLevel
}

func (b *Base) PickBlock(s State, w World, pos vec.Vec3, p Player) item.Stack {
	return item.NewStack(b.self.AsItem(), 1)
}

func (b *Base) AsItem() item.Item { return item.Of(b.name) }

func (b *Base) IsLadder(s State, w World, pos vec.Vec3, e Entity) bool {
	return b.settings.Ladder
}

func (b *Base) IsBurning(s State, w World, pos vec.Vec3) bool { return false }

func (b *Base) IsFlammable(s State, w World, pos vec.Vec3, side vec.Direction) bool {
	return b.self.Flammability(s, w, pos, side) > 0
}

func (b *Base) Flammability(s State, w World, pos vec.Vec3, side vec.Direction) int {
	return b.settings.Flammability
}

func (b *Base) FireSpreadSpeed(s State, w World, pos vec.Vec3, side vec.Direction) int {
	return b.settings.FireSpreadSpeed
}

func (b *Base) CanCreatureSpawn(s State, w World, pos vec.Vec3, placement SpawnPlacement) bool {
	return b.settings.Material != MaterialAir && placement == SpawnOnGround
}

func (b *Base) CanConnectRedstone(s State, w World, pos vec.Vec3, side vec.Direction) bool {
	return b.self.CanProvidePower(s)
}

func (b *Base) CanProvidePower(s State) bool { return false }

func (b *Base) CanSustainPlant(s State, w World, pos vec.Vec3, facing vec.Direction, plant string) bool {
	return false
}

func (b *Base) IsSticky(s State) bool { return b.settings.Sticky }

func (b *Base) PushReaction(s State) PushReaction { return b.settings.PushReaction }

func (b *Base) Opacity(s State, w World, pos vec.Vec3) int { return b.settings.Opacity }

func (b *Base) AddLandingEffects(s State, w World, pos vec.Vec3, e Entity, particles int) bool {
	return false
}

func (b *Base) AddRunningEffects(s State, w World, pos vec.Vec3, e Entity) bool { return false }

func (b *Base) AddHitEffects(s State, w World, pos vec.Vec3) bool { return false }

func (b *Base) AddDestroyEffects(s State, w World, pos vec.Vec3) bool { return false }

func (b *Base) RenderLayer() RenderLayer { return b.settings.RenderLayer }

func (b *Base) CanRenderInLayer(layer RenderLayer) bool {
	return layer == b.self.RenderLayer()
}

// Plain простой блок без собственного поведения
type Plain struct {
	Base
}

// NewPlain создает простой блок с указанными настройками и свойствами
func NewPlain(name string, settings Settings, props ...Property) (*Plain, error) {
	def, err := NewDefinition(props...)
	if err != nil {
		return nil, err
	}
	p := &Plain{}
	p.Init(p, name, settings, def)
	return p, nil
}
