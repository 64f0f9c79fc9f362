package block

import (
	"github.com/annel0/stone-variants/internal/item"
	"github.com/annel0/stone-variants/internal/vec"
)

// World определяет представление мира, через которое блоки читают и
// изменяют состояние. Хост передает его в каждый хук; композитные блоки
// подменяют его перехватчиком на время делегирования.
type World interface {
	// BlockState возвращает состояние в позиции; нулевое State, если его нет
	BlockState(pos vec.Vec3) State

	// SetBlockState устанавливает состояние; false, если позиция недоступна
	SetBlockState(pos vec.Vec3, s State, flags UpdateFlags) bool

	// Ticks возвращает очередь запланированных тиков блоков
	Ticks() TickList

	// NotifyNeighbors запускает UpdatePostPlacement у шести соседей pos
	NotifyNeighbors(pos vec.Vec3, from Block)

	// SpawnItem выбрасывает стопку предметов в мир
	SpawnItem(pos vec.Vec3, stack item.Stack)

	// IsClient сообщает, что это клиентский мир
	IsClient() bool

	// Time текущее игровое время в тиках
	Time() int64
}

// TickEntry запланированный тик блока
type TickEntry struct {
	Pos      vec.Vec3
	Block    Block
	Time     int64
	Priority TickPriority
	Seq      uint64
}

// TickList очередь запланированных тиков
type TickList interface {
	// IsTickPending тик для блока в позиции запланирован и еще не выполнен
	IsTickPending(pos vec.Vec3, b Block) bool

	// IsTickScheduled тик для блока в позиции выполняется в текущем игровом тике
	IsTickScheduled(pos vec.Vec3, b Block) bool

	// ScheduleTick планирует тик через delay игровых тиков
	ScheduleTick(pos vec.Vec3, b Block, delay int64, priority TickPriority)

	// Pending возвращает ожидающие тики внутри area, при remove удаляя их
	Pending(area vec.Box, remove bool) []TickEntry

	// CopyTicks копирует ожидающие тики area со сдвигом offset
	CopyTicks(area vec.Box, offset vec.Vec3)

	// Len количество ожидающих тиков
	Len() int
}
