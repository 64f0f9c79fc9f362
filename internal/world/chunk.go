package world

import (
	"sort"
	"sync"

	"github.com/annel0/stone-variants/internal/vec"
	"github.com/annel0/stone-variants/internal/world/block"
)

// Размеры чанка-колонки
const (
	ChunkSize = 16
	MinY      = 0
	MaxY      = 127
)

// Chunk представляет колонку мира 16x16 от MinY до MaxY.
// Ячейки без записи считаются воздухом.
type Chunk struct {
	Coords vec.Vec2 // Координаты чанка в мире

	cells map[vec.Vec3]block.State // Локальная позиция -> состояние

	ChangeCounter int          // Счетчик изменений
	Mu            sync.RWMutex // Мьютекс для безопасного доступа
}

// NewChunk создаёт новый чанк с указанными координатами
func NewChunk(coords vec.Vec2) *Chunk {
	return &Chunk{
		Coords: coords,
		cells:  make(map[vec.Vec3]block.State),
	}
}

// InBounds проверяет, что локальная позиция лежит внутри колонки
func InBounds(local vec.Vec3) bool {
	return local.X >= 0 && local.X < ChunkSize &&
		local.Z >= 0 && local.Z < ChunkSize &&
		local.Y >= MinY && local.Y <= MaxY
}

// Get возвращает состояние в локальной позиции
func (c *Chunk) Get(local vec.Vec3) (block.State, bool) {
	c.Mu.RLock()
	defer c.Mu.RUnlock()
	s, ok := c.cells[local]
	return s, ok
}

// Set записывает состояние. Нулевое состояние удаляет ячейку.
func (c *Chunk) Set(local vec.Vec3, s block.State) {
	if !InBounds(local) {
		return
	}
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if s.IsZero() {
		delete(c.cells, local)
	} else {
		c.cells[local] = s
	}
	c.ChangeCounter++
}

// Len количество записанных ячеек
func (c *Chunk) Len() int {
	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return len(c.cells)
}

// HasChanges проверяет, есть ли изменения в чанке
func (c *Chunk) HasChanges() bool {
	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return c.ChangeCounter > 0
}

// ClearChanges сбрасывает счетчик изменений
func (c *Chunk) ClearChanges() {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.ChangeCounter = 0
}

// Cells возвращает снимок ячеек, упорядоченный по Y, Z, X
func (c *Chunk) Cells() []Cell {
	c.Mu.RLock()
	out := make([]Cell, 0, len(c.cells))
	for pos, s := range c.cells {
		out = append(out, Cell{Local: pos, State: s})
	}
	c.Mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Local, out[j].Local
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.X < b.X
	})
	return out
}

// ToWorld переводит локальную позицию в мировую
func (c *Chunk) ToWorld(local vec.Vec3) vec.Vec3 {
	return vec.Vec3{X: c.Coords.X<<4 + local.X, Y: local.Y, Z: c.Coords.Y<<4 + local.Z}
}

// Cell одна записанная ячейка чанка
type Cell struct {
	Local vec.Vec3
	State block.State
}
