package entity

import (
	"strconv"
	"sync"

	"github.com/annel0/stone-variants/internal/item"
	"github.com/annel0/stone-variants/internal/vec"
)

// Player игрок с инвентарем и инструментом в руке. Реализует block.Player.
type Player struct {
	*Entity

	mu         sync.Mutex
	creative   bool
	toolLevel  int
	held       item.Stack
	inventory  map[string]int
	experience int
}

// NewPlayer создает игрока в указанной позиции
func NewPlayer(id uint64, position vec.Vec3) *Player {
	p := &Player{
		Entity:    NewEntity(id, EntityTypePlayer, position),
		inventory: make(map[string]int),
	}
	p.Payload["username"] = "Player" + strconv.FormatUint(id, 10)
	return p
}

// SetCreative переключает творческий режим
func (p *Player) SetCreative(v bool) { p.creative = v }

// Creative творческий режим
func (p *Player) Creative() bool { return p.creative }

// Equip берет в руку предмет с указанным уровнем инструмента
func (p *Player) Equip(stack item.Stack, toolLevel int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.held = stack
	p.toolLevel = toolLevel
}

// HeldItem предмет в основной руке
func (p *Player) HeldItem() item.Stack {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.held
}

// ToolLevel уровень инструмента в руке
func (p *Player) ToolLevel() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.toolLevel
}

// AddItemToInventory добавляет стопку в инвентарь
func (p *Player) AddItemToInventory(stack item.Stack) {
	if stack.IsEmpty() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inventory[stack.Item.Name()] += stack.Count
}

// GetInventoryItem получает количество предмета в инвентаре
func (p *Player) GetInventoryItem(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inventory[name]
}

// HasItem проверяет наличие предмета в руке или в инвентаре
func (p *Player) HasItem(stack item.Stack) bool {
	if stack.IsEmpty() {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.held.SameItem(stack) && p.held.Count >= stack.Count {
		return true
	}
	return p.inventory[stack.Item.Name()] >= stack.Count
}

// AddExperience начисляет опыт
func (p *Player) AddExperience(xp int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.experience += xp
}

// Experience накопленный опыт
func (p *Player) Experience() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.experience
}
