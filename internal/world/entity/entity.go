package entity

import (
	"github.com/annel0/stone-variants/internal/vec"
)

// EntityType представляет тип сущности
type EntityType uint16

const (
	EntityTypePlayer EntityType = iota
	EntityTypeNPC
	EntityTypeMonster
	EntityTypeItem
	EntityTypeAnimal
)

func (t EntityType) String() string {
	switch t {
	case EntityTypePlayer:
		return "player"
	case EntityTypeNPC:
		return "npc"
	case EntityTypeMonster:
		return "monster"
	case EntityTypeItem:
		return "item"
	case EntityTypeAnimal:
		return "animal"
	}
	return "unknown"
}

// Entity представляет базовую сущность в мире.
// Реализует block.Entity.
type Entity struct {
	EntityID uint64                 // Уникальный идентификатор сущности
	Type     EntityType             // Тип сущности
	Position vec.Vec3               // Текущая позиция в мире (в координатах блоков)
	Payload  map[string]interface{} // Дополнительные данные сущности
	Active   bool                   // Активна ли сущность
}

// NewEntity создаёт новую сущность
func NewEntity(id uint64, entityType EntityType, position vec.Vec3) *Entity {
	return &Entity{
		EntityID: id,
		Type:     entityType,
		Position: position,
		Payload:  make(map[string]interface{}),
		Active:   true,
	}
}

// ID идентификатор сущности
func (e *Entity) ID() uint64 { return e.EntityID }

// Name имя сущности: username из Payload или тип
func (e *Entity) Name() string {
	if name, ok := e.Payload["username"].(string); ok && name != "" {
		return name
	}
	return e.Type.String()
}

// BlockBelow позиция блока, на котором стоит сущность
func (e *Entity) BlockBelow() vec.Vec3 {
	return e.Position.Offset(vec.Down)
}
