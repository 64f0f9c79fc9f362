package block

import (
	"math/rand"

	"github.com/annel0/stone-variants/internal/item"
	"github.com/annel0/stone-variants/internal/loot"
	"github.com/annel0/stone-variants/internal/vec"
)

// Block определяет поведение типа блока. Хост вызывает эти хуки, не зная,
// простой это блок или композитный. Для значений по умолчанию встраивайте Base.
type Block interface {
	Name() string
	Definition() *Definition
	DefaultState() State
	Settings() Settings
	// Matches сообщает, считается ли other этим же блоком (для тиков и сравнений)
	Matches(other Block) bool

	StateForPlacement(ctx PlaceContext) State
	UpdatePostPlacement(s State, dir vec.Direction, facing State, w World, pos, facingPos vec.Vec3) State

	TicksRandomly(s State) bool
	RandomTick(s State, w World, pos vec.Vec3, rnd *rand.Rand) error
	Tick(s State, w World, pos vec.Vec3, rnd *rand.Rand) error
	AnimateTick(s State, w World, pos vec.Vec3, rnd *rand.Rand)

	OnPlace(s State, w World, pos vec.Vec3, old State, moving bool)
	OnClick(s State, w World, pos vec.Vec3, p Player)
	OnEntityWalk(w World, pos vec.Vec3, e Entity)
	OnExplosionDestroy(w World, pos vec.Vec3, ex Explosion)
	Activate(s State, w World, pos vec.Vec3, p Player, hand Hand) ActionResult

	Drops(s State, ctx loot.Context) []item.Stack
	SpawnAdditionalDrops(s State, w World, pos vec.Vec3, tool item.Stack)
	ExpDrop(s State, w World, pos vec.Vec3, fortune, silkTouch int) int
	CanHarvest(s State, w World, pos vec.Vec3, p Player) bool
	PickBlock(s State, w World, pos vec.Vec3, p Player) item.Stack
	AsItem() item.Item

	IsLadder(s State, w World, pos vec.Vec3, e Entity) bool
	IsBurning(s State, w World, pos vec.Vec3) bool
	IsFlammable(s State, w World, pos vec.Vec3, side vec.Direction) bool
	Flammability(s State, w World, pos vec.Vec3, side vec.Direction) int
	FireSpreadSpeed(s State, w World, pos vec.Vec3, side vec.Direction) int
	CanCreatureSpawn(s State, w World, pos vec.Vec3, placement SpawnPlacement) bool
	CanConnectRedstone(s State, w World, pos vec.Vec3, side vec.Direction) bool
	CanProvidePower(s State) bool
	CanSustainPlant(s State, w World, pos vec.Vec3, facing vec.Direction, plant string) bool
	IsSticky(s State) bool
	PushReaction(s State) PushReaction
	Opacity(s State, w World, pos vec.Vec3) int

	AddLandingEffects(s State, w World, pos vec.Vec3, e Entity, particles int) bool
	AddRunningEffects(s State, w World, pos vec.Vec3, e Entity) bool
	AddHitEffects(s State, w World, pos vec.Vec3) bool
	AddDestroyEffects(s State, w World, pos vec.Vec3) bool

	RenderLayer() RenderLayer
	CanRenderInLayer(layer RenderLayer) bool
}
