// Package worldtest содержит простые реализации block.World и игроков для тестов
package worldtest

import (
	"sync"

	"github.com/annel0/stone-variants/internal/item"
	"github.com/annel0/stone-variants/internal/vec"
	"github.com/annel0/stone-variants/internal/world/block"
	"github.com/annel0/stone-variants/internal/world/ticks"
)

// World мир-заглушка: хранит состояния в карте и записывает вызовы.
// Позиции без состояния возвращают нулевое State.
type World struct {
	mu       sync.Mutex
	states   map[vec.Vec3]block.State
	sched    *ticks.Scheduler
	time     int64
	Client   bool
	Spawned  []item.Stack
	Writes   []vec.Vec3
	Notified []vec.Vec3
}

// NewWorld создает пустой мир
func NewWorld() *World {
	return &World{
		states: make(map[vec.Vec3]block.State),
		sched:  ticks.NewScheduler(),
	}
}

// Put записывает состояние без вызова хуков и без учета в Writes
func (w *World) Put(pos vec.Vec3, s block.State) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.states[pos] = s
}

// Remove удаляет состояние, имитируя выгрузку позиции
func (w *World) Remove(pos vec.Vec3) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.states, pos)
}

func (w *World) BlockState(pos vec.Vec3) block.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.states[pos]
}

func (w *World) SetBlockState(pos vec.Vec3, s block.State, flags block.UpdateFlags) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.states[pos] = s
	w.Writes = append(w.Writes, pos)
	return true
}

func (w *World) Ticks() block.TickList { return w.sched }

// Scheduler возвращает конкретную очередь тиков
func (w *World) Scheduler() *ticks.Scheduler { return w.sched }

func (w *World) NotifyNeighbors(pos vec.Vec3, from block.Block) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Notified = append(w.Notified, pos)
}

func (w *World) SpawnItem(pos vec.Vec3, stack item.Stack) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Spawned = append(w.Spawned, stack)
}

func (w *World) IsClient() bool { return w.Client }

func (w *World) Time() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.time
}

// SetTime устанавливает игровое время
func (w *World) SetTime(t int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.time = t
}

// Entity простая сущность
type Entity struct {
	EntityID   uint64
	EntityName string
}

func (e Entity) ID() uint64   { return e.EntityID }
func (e Entity) Name() string { return e.EntityName }

// Player игрок-заглушка
type Player struct {
	Entity
	IsCreative bool
	Held       item.Stack
	Inventory  []item.Stack
	Tool       int
}

func (p *Player) Creative() bool       { return p.IsCreative }
func (p *Player) HeldItem() item.Stack { return p.Held }
func (p *Player) ToolLevel() int       { return p.Tool }

// HasItem ищет предмет в руке и инвентаре
func (p *Player) HasItem(stack item.Stack) bool {
	if p.Held.SameItem(stack) && !p.Held.IsEmpty() {
		return true
	}
	for _, s := range p.Inventory {
		if s.SameItem(stack) && !s.IsEmpty() {
			return true
		}
	}
	return false
}
