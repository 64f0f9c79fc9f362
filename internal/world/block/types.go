package block

import (
	"github.com/annel0/stone-variants/internal/item"
	"github.com/annel0/stone-variants/internal/vec"
)

// ActionResult результат взаимодействия игрока с блоком
type ActionResult int

const (
	ActionPass ActionResult = iota
	ActionSuccess
	ActionConsume
	ActionFail
)

func (r ActionResult) String() string {
	switch r {
	case ActionSuccess:
		return "success"
	case ActionConsume:
		return "consume"
	case ActionFail:
		return "fail"
	default:
		return "pass"
	}
}

// Hand рука, которой выполняется действие
type Hand int

const (
	MainHand Hand = iota
	OffHand
)

// RenderLayer слой отрисовки на клиенте
type RenderLayer int

const (
	LayerSolid RenderLayer = iota
	LayerCutout
	LayerCutoutMipped
	LayerTranslucent
)

// PushReaction реакция на поршень
type PushReaction int

const (
	PushNormal PushReaction = iota
	PushDestroy
	PushBlock
	PushIgnore
)

// Material грубая классификация материала
type Material int

const (
	MaterialAir Material = iota
	MaterialRock
	MaterialEarth
	MaterialSand
	MaterialOrganic
	MaterialWood
)

// SpawnPlacement тип размещения существ
type SpawnPlacement int

const (
	SpawnOnGround SpawnPlacement = iota
	SpawnInWater
	SpawnNoRestrictions
)

// TickPriority приоритет запланированного тика; меньше: раньше
type TickPriority int

const (
	PriorityExtremelyHigh TickPriority = -3
	PriorityHigh          TickPriority = -1
	PriorityNormal        TickPriority = 0
	PriorityLow           TickPriority = 1
)

// UpdateFlags флаги SetBlockState
type UpdateFlags int

const (
	// FlagNotifyNeighbors оповестить соседей через UpdatePostPlacement
	FlagNotifyNeighbors UpdateFlags = 1 << iota
	// FlagSkipOnPlace не вызывать OnPlace у нового блока
	FlagSkipOnPlace

	FlagDefault = FlagNotifyNeighbors
)

// Entity сущность в мире
type Entity interface {
	ID() uint64
	Name() string
}

// Player игрок
type Player interface {
	Entity
	Creative() bool
	HasItem(stack item.Stack) bool
	ToolLevel() int
	HeldItem() item.Stack
}

// Explosion описание взрыва
type Explosion struct {
	Center vec.Vec3
	Power  float64
	Source Entity
}

// PlaceContext контекст установки блока игроком
type PlaceContext struct {
	World  World
	Pos    vec.Vec3
	Face   vec.Direction
	Player Player
	Item   item.Stack
}
