package world

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/annel0/stone-variants/internal/config"
	"github.com/annel0/stone-variants/internal/item"
	"github.com/annel0/stone-variants/internal/logging"
	"github.com/annel0/stone-variants/internal/metrics"
	"github.com/annel0/stone-variants/internal/vec"
	"github.com/annel0/stone-variants/internal/world/block"
	"github.com/annel0/stone-variants/internal/world/block/implementations"
	"github.com/annel0/stone-variants/internal/world/ticks"
)

// BlastProofResistance блоки с такой стойкостью переживают взрывы
const BlastProofResistance = 600

// ChunkLoader загружает сохраненный чанк вместе с его ожидающими тиками.
// ok == false означает, что сохранения нет и чанк нужно сгенерировать.
type ChunkLoader func(coords vec.Vec2) (chunk *Chunk, pending []block.TickEntry, ok bool, err error)

// ChunkSaver сохраняет чанк и его ожидающие тики
type ChunkSaver func(chunk *Chunk, pending []block.TickEntry) error

// Drop стопка предметов, выброшенная в мир
type Drop struct {
	Pos   vec.Vec3
	Stack item.Stack
}

// WorldManager хост-мир: чанки, очередь тиков и случайные тики.
// Реализует block.World.
type WorldManager struct {
	ID              uuid.UUID               // Идентификатор мира (пространство ключей хранилища)
	seed            int64                   // Глобальный сид для генерации
	generator       *WorldGenerator         // Генератор мира
	chunks          map[vec.Vec2]*Chunk     // Загруженные чанки
	mu              sync.RWMutex            // Мьютекс для карты чанков
	scheduler       *ticks.Scheduler        // Очередь запланированных тиков
	currentTick     int64                   // Текущий глобальный тик
	randomTickSpeed int                     // Случайных тиков на чанк за тик
	tickMu          sync.Mutex              // Тики выполняются строго по одному
	rng             *rand.Rand              // Генератор для тиков, только под tickMu
	dropsMu         sync.Mutex              // Мьютекс для выброшенных предметов
	drops           []Drop                  // Выброшенные предметы
	client          bool                    // Клиентский мир
	loadFunc        ChunkLoader             // Функция для загрузки чанков
	saveFunc        ChunkSaver              // Функция для сохранения чанков
	saveMu          sync.Mutex              // Мьютекс для операций сохранения
	lastSaveTime    time.Time               // Время последнего сохранения
	ctx             context.Context         // Контекст для управления жизненным циклом
	cancelFunc      context.CancelFunc      // Функция отмены контекста
	rngSeq          atomic.Int64            // Счетчик для генераторов вне тиков
	onTick          func(executed, rnd int) // Необязательный наблюдатель тиков
}

// NewWorldManager создаёт новый менеджер мира по конфигурации
func NewWorldManager(cfg config.WorldConfig) *WorldManager {
	ctx, cancel := context.WithCancel(context.Background())

	return &WorldManager{
		ID:              uuid.New(),
		seed:            cfg.Seed,
		generator:       NewWorldGenerator(cfg.Seed),
		chunks:          make(map[vec.Vec2]*Chunk),
		scheduler:       ticks.NewScheduler(),
		randomTickSpeed: cfg.RandomTickSpeed,
		rng:             rand.New(rand.NewSource(cfg.Seed)),
		lastSaveTime:    time.Now(),
		ctx:             ctx,
		cancelFunc:      cancel,
	}
}

// Generator генератор мира
func (wm *WorldManager) Generator() *WorldGenerator { return wm.generator }

// Scheduler очередь запланированных тиков
func (wm *WorldManager) Scheduler() *ticks.Scheduler { return wm.scheduler }

// SetClient помечает мир как клиентский
func (wm *WorldManager) SetClient(v bool) { wm.client = v }

// SetStorageFunctions устанавливает функции для загрузки и сохранения чанков
func (wm *WorldManager) SetStorageFunctions(load ChunkLoader, save ChunkSaver) {
	wm.saveMu.Lock()
	defer wm.saveMu.Unlock()
	wm.loadFunc = load
	wm.saveFunc = save
}

// SetTickObserver задает функцию, вызываемую после каждого тика
func (wm *WorldManager) SetTickObserver(fn func(executed, random int)) {
	wm.tickMu.Lock()
	defer wm.tickMu.Unlock()
	wm.onTick = fn
}

// LoadChunk возвращает загруженный чанк, при необходимости читая его из
// хранилища или генерируя заново
func (wm *WorldManager) LoadChunk(coords vec.Vec2) (*Chunk, error) {
	wm.mu.RLock()
	chunk, ok := wm.chunks[coords]
	wm.mu.RUnlock()
	if ok {
		return chunk, nil
	}

	var pending []block.TickEntry
	wm.saveMu.Lock()
	load := wm.loadFunc
	wm.saveMu.Unlock()
	if load != nil {
		loaded, entries, found, err := load(coords)
		if err != nil {
			return nil, fmt.Errorf("загрузка чанка %v: %w", coords, err)
		}
		if found {
			chunk, pending = loaded, entries
		}
	}
	if chunk == nil {
		chunk = wm.generator.GenerateChunk(coords)
	}

	wm.mu.Lock()
	if existing, ok := wm.chunks[coords]; ok {
		wm.mu.Unlock()
		return existing, nil
	}
	wm.chunks[coords] = chunk
	wm.mu.Unlock()

	wm.scheduler.Restore(pending)
	logging.LogDebug("Чанк %v загружен (%d ячеек, %d тиков)", coords, chunk.Len(), len(pending))
	return chunk, nil
}

// UnloadChunk выгружает чанк, сохраняя его, и возвращает снятые тики
func (wm *WorldManager) UnloadChunk(coords vec.Vec2) ([]block.TickEntry, error) {
	wm.mu.Lock()
	chunk, ok := wm.chunks[coords]
	delete(wm.chunks, coords)
	wm.mu.Unlock()
	if !ok {
		return nil, nil
	}

	pending := wm.scheduler.Pending(vec.ChunkBox(coords, MinY, MaxY), true)
	if err := wm.saveChunk(chunk, pending); err != nil {
		return pending, err
	}
	return pending, nil
}

// IsLoaded проверяет, загружен ли чанк
func (wm *WorldManager) IsLoaded(coords vec.Vec2) bool {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	_, ok := wm.chunks[coords]
	return ok
}

// GetChunk возвращает загруженный чанк или nil
func (wm *WorldManager) GetChunk(coords vec.Vec2) *Chunk {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return wm.chunks[coords]
}

// Chunks возвращает снимок загруженных чанков
func (wm *WorldManager) Chunks() []*Chunk {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	out := make([]*Chunk, 0, len(wm.chunks))
	for _, c := range wm.chunks {
		out = append(out, c)
	}
	return out
}

// BlockState возвращает состояние в позиции. Позиция в невыгруженном чанке
// или вне высоты мира не имеет состояния; пустая ячейка читается как воздух.
func (wm *WorldManager) BlockState(pos vec.Vec3) block.State {
	chunk := wm.GetChunk(pos.ToChunkCoords())
	local := pos.LocalInChunk()
	if chunk == nil || !InBounds(local) {
		return block.State{}
	}
	if s, ok := chunk.Get(local); ok {
		return s
	}
	return implementations.Air.DefaultState()
}

// SetBlockState записывает состояние и вызывает OnPlace и оповещение
// соседей согласно flags. Нулевое состояние записывается как воздух.
func (wm *WorldManager) SetBlockState(pos vec.Vec3, s block.State, flags block.UpdateFlags) bool {
	chunk := wm.GetChunk(pos.ToChunkCoords())
	local := pos.LocalInChunk()
	if chunk == nil || !InBounds(local) {
		return false
	}
	if s.IsZero() {
		s = implementations.Air.DefaultState()
	}

	old := wm.BlockState(pos)
	if old.Equal(s) {
		return true
	}
	if implementations.IsAir(s) {
		chunk.Set(local, block.State{})
	} else {
		chunk.Set(local, s)
	}

	if flags&block.FlagSkipOnPlace == 0 && old.Block() != s.Block() {
		s.Block().OnPlace(s, wm, pos, old, false)
	}
	if flags&block.FlagNotifyNeighbors != 0 {
		wm.NotifyNeighbors(pos, s.Block())
	}
	return true
}

// Ticks очередь запланированных тиков
func (wm *WorldManager) Ticks() block.TickList { return wm.scheduler }

// NotifyNeighbors вызывает UpdatePostPlacement у шести соседей pos и
// записывает изменившиеся состояния без дальнейшего оповещения
func (wm *WorldManager) NotifyNeighbors(pos vec.Vec3, from block.Block) {
	facing := wm.BlockState(pos)
	for _, d := range vec.Directions {
		npos := pos.Offset(d)
		ns := wm.BlockState(npos)
		if ns.IsZero() {
			continue
		}
		next := ns.Block().UpdatePostPlacement(ns, d.Opposite(), facing, wm, npos, pos)
		if !next.IsZero() && !next.Equal(ns) {
			wm.SetBlockState(npos, next, 0)
		}
	}
}

// SpawnItem выбрасывает стопку предметов в мир
func (wm *WorldManager) SpawnItem(pos vec.Vec3, stack item.Stack) {
	if stack.IsEmpty() {
		return
	}
	wm.dropsMu.Lock()
	defer wm.dropsMu.Unlock()
	wm.drops = append(wm.drops, Drop{Pos: pos, Stack: stack})
}

// Drops возвращает выброшенные предметы; при take список очищается
func (wm *WorldManager) Drops(take bool) []Drop {
	wm.dropsMu.Lock()
	defer wm.dropsMu.Unlock()
	out := append([]Drop(nil), wm.drops...)
	if take {
		wm.drops = nil
	}
	return out
}

// IsClient сообщает, что это клиентский мир
func (wm *WorldManager) IsClient() bool { return wm.client }

// Time текущее игровое время в тиках
func (wm *WorldManager) Time() int64 { return atomic.LoadInt64(&wm.currentTick) }

// newRand генератор для действий вне тиков
func (wm *WorldManager) newRand() *rand.Rand {
	return rand.New(rand.NewSource(wm.seed ^ wm.Time()<<20 ^ wm.rngSeq.Add(1)))
}

// Tick продвигает мир на один игровой тик: выполняет созревшие
// запланированные тики и случайные тики загруженных чанков
func (wm *WorldManager) Tick() {
	wm.tickMu.Lock()
	defer wm.tickMu.Unlock()

	now := atomic.AddInt64(&wm.currentTick, 1)
	executed := wm.scheduler.Advance(now, wm.runScheduled)
	random := wm.randomTicks()

	if wm.onTick != nil {
		wm.onTick(executed, random)
	}
}

// runScheduled выполняет тик, если в позиции все еще тот же блок
func (wm *WorldManager) runScheduled(e block.TickEntry) {
	s := wm.BlockState(e.Pos)
	if s.IsZero() || !s.Block().Matches(e.Block) {
		return
	}
	metrics.TicksExecuted.WithLabelValues("scheduled").Inc()
	if err := s.Block().Tick(s, wm, e.Pos, wm.rng); err != nil {
		logging.LogError("Ошибка тика %s в %s: %v", s.Block().Name(), e.Pos, err)
	}
}

// randomTicks выбирает randomTickSpeed случайных позиций в каждом чанке
func (wm *WorldManager) randomTicks() int {
	if wm.randomTickSpeed <= 0 {
		return 0
	}
	count := 0
	for _, chunk := range wm.Chunks() {
		for i := 0; i < wm.randomTickSpeed; i++ {
			local := vec.Vec3{
				X: wm.rng.Intn(ChunkSize),
				Y: MinY + wm.rng.Intn(MaxY-MinY+1),
				Z: wm.rng.Intn(ChunkSize),
			}
			if wm.randomTickAt(chunk.ToWorld(local)) {
				count++
			}
		}
	}
	return count
}

// RandomTickAt выполняет случайный тик в позиции, если блок его принимает
func (wm *WorldManager) RandomTickAt(pos vec.Vec3) bool {
	wm.tickMu.Lock()
	defer wm.tickMu.Unlock()
	return wm.randomTickAt(pos)
}

func (wm *WorldManager) randomTickAt(pos vec.Vec3) bool {
	s := wm.BlockState(pos)
	if s.IsZero() || !s.Block().TicksRandomly(s) {
		return false
	}
	metrics.TicksExecuted.WithLabelValues("random").Inc()
	if err := s.Block().RandomTick(s, wm, pos, wm.rng); err != nil {
		logging.LogError("Ошибка случайного тика %s в %s: %v", s.Block().Name(), pos, err)
	}
	return true
}

// Run запускает игровой цикл и автоматическое сохранение до отмены контекста
func (wm *WorldManager) Run(parentCtx context.Context, interval, saveInterval time.Duration) {
	// Если parentCtx != nil, создаем новый контекст отменяемый от него
	if parentCtx != nil {
		childCtx, cancel := context.WithCancel(parentCtx)
		wm.ctx = childCtx
		wm.cancelFunc = cancel
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var save <-chan time.Time
	if saveInterval > 0 {
		saveTicker := time.NewTicker(saveInterval)
		defer saveTicker.Stop()
		save = saveTicker.C
	}

	for {
		select {
		case <-wm.ctx.Done():
			return
		case <-ticker.C:
			wm.Tick()
		case <-save:
			if err := wm.SaveWorld(false); err != nil {
				logging.LogError("Ошибка автосохранения: %v", err)
			}
		}
	}
}

// Stop останавливает игровой цикл
func (wm *WorldManager) Stop() {
	if wm.cancelFunc != nil {
		wm.cancelFunc()
	}
}

// SaveWorld сохраняет измененные чанки (или все при force)
func (wm *WorldManager) SaveWorld(force bool) error {
	saved := 0
	for _, chunk := range wm.Chunks() {
		if !force && !chunk.HasChanges() {
			continue
		}
		pending := wm.scheduler.Pending(vec.ChunkBox(chunk.Coords, MinY, MaxY), false)
		if err := wm.saveChunk(chunk, pending); err != nil {
			return err
		}
		saved++
	}

	wm.saveMu.Lock()
	wm.lastSaveTime = time.Now()
	wm.saveMu.Unlock()
	logging.LogInfo("Мир %s сохранен: %d чанков", wm.ID, saved)
	return nil
}

func (wm *WorldManager) saveChunk(chunk *Chunk, pending []block.TickEntry) error {
	wm.saveMu.Lock()
	save := wm.saveFunc
	wm.saveMu.Unlock()
	if save == nil {
		return nil
	}
	if err := save(chunk, pending); err != nil {
		return fmt.Errorf("сохранение чанка %v: %w", chunk.Coords, err)
	}
	chunk.ClearChanges()
	return nil
}
