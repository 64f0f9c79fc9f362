package ticks

import (
	"sort"
	"sync"

	"github.com/annel0/stone-variants/internal/vec"
	"github.com/annel0/stone-variants/internal/world/block"
)

// key ожидающий тик однозначно задается позицией и блоком
type key struct {
	pos   vec.Vec3
	block block.Block
}

// Scheduler очередь запланированных тиков блоков.
// Реализует block.TickList и безопасен для конкурентного использования.
type Scheduler struct {
	mu        sync.Mutex
	now       int64
	seq       uint64
	pending   map[key]block.TickEntry
	executing map[key]struct{}
}

// NewScheduler создает пустую очередь
func NewScheduler() *Scheduler {
	return &Scheduler{
		pending:   make(map[key]block.TickEntry),
		executing: make(map[key]struct{}),
	}
}

// Now текущее время очереди
func (s *Scheduler) Now() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// IsTickPending тик запланирован и еще не выполнен
func (s *Scheduler) IsTickPending(pos vec.Vec3, b block.Block) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[key{pos, b}]
	return ok
}

// IsTickScheduled тик выполняется в текущей пачке
func (s *Scheduler) IsTickScheduled(pos vec.Vec3, b block.Block) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.executing[key{pos, b}]
	return ok
}

// ScheduleTick планирует тик. Повторное планирование ожидающего тика игнорируется.
func (s *Scheduler) ScheduleTick(pos vec.Vec3, b block.Block, delay int64, priority block.TickPriority) {
	if b == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{pos, b}
	if _, ok := s.pending[k]; ok {
		return
	}
	s.seq++
	s.pending[k] = block.TickEntry{Pos: pos, Block: b, Time: s.now + delay, Priority: priority, Seq: s.seq}
}

// Pending возвращает ожидающие тики внутри area в порядке выполнения
func (s *Scheduler) Pending(area vec.Box, remove bool) []block.TickEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []block.TickEntry
	for k, e := range s.pending {
		if !area.Contains(e.Pos) {
			continue
		}
		out = append(out, e)
		if remove {
			delete(s.pending, k)
		}
	}
	sortEntries(out)
	return out
}

// CopyTicks копирует ожидающие тики area со сдвигом offset
func (s *Scheduler) CopyTicks(area vec.Box, offset vec.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var copies []block.TickEntry
	for _, e := range s.pending {
		if area.Contains(e.Pos) {
			copies = append(copies, e)
		}
	}
	sortEntries(copies)
	for _, e := range copies {
		e.Pos = e.Pos.Add(offset)
		k := key{e.Pos, e.Block}
		if _, ok := s.pending[k]; ok {
			continue
		}
		s.seq++
		e.Seq = s.seq
		s.pending[k] = e
	}
}

// Len количество ожидающих тиков
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Restore добавляет ранее сохраненные тики, сохраняя их время и приоритет
func (s *Scheduler) Restore(entries []block.TickEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		if e.Block == nil {
			continue
		}
		s.seq++
		e.Seq = s.seq
		s.pending[key{e.Pos, e.Block}] = e
	}
}

// Advance переводит очередь на время now и выполняет все созревшие тики.
// run вызывается без удержания блокировки, так что обработчики могут
// планировать новые тики. Возвращает число выполненных тиков.
func (s *Scheduler) Advance(now int64, run func(e block.TickEntry)) int {
	s.mu.Lock()
	s.now = now
	var due []block.TickEntry
	for k, e := range s.pending {
		if e.Time <= now {
			due = append(due, e)
			delete(s.pending, k)
			s.executing[k] = struct{}{}
		}
	}
	s.mu.Unlock()

	sortEntries(due)
	defer func() {
		s.mu.Lock()
		for _, e := range due {
			delete(s.executing, key{e.Pos, e.Block})
		}
		s.mu.Unlock()
	}()

	for _, e := range due {
		run(e)
	}
	return len(due)
}

// sortEntries упорядочивает по времени, приоритету и порядку планирования
func sortEntries(entries []block.TickEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.Seq < b.Seq
	})
}
