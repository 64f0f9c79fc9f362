package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/annel0/stone-variants/internal/logging"
	"github.com/annel0/stone-variants/internal/vec"
	"github.com/annel0/stone-variants/internal/world"
	"github.com/annel0/stone-variants/internal/world/block"
)

var (
	// ErrNotReady хранилище закрыто
	ErrNotReady = errors.New("хранилище не готово")
	// ErrUnknownBlock в сохранении встретился незарегистрированный блок
	ErrUnknownBlock = errors.New("неизвестный блок в сохранении")
)

// WorldStorage представляет собой хранилище снимков чанков в BadgerDB.
// Снимки сериализуются в JSON и сжимаются zstd.
type WorldStorage struct {
	db      *badger.DB
	dbPath  string
	mutex   sync.RWMutex
	isReady bool

	encoder *zstd.Encoder
	decoder *zstd.Decoder
	resolve func(name string) (block.Block, bool)
}

// ChunkSnapshot полный снимок чанка: палитра состояний, ячейки и ожидающие тики
type ChunkSnapshot struct {
	Coords  vec.Vec2      `json:"coords"`
	Palette []StateRecord `json:"palette"`
	Cells   []CellRecord  `json:"cells"`
	Ticks   []TickRecord  `json:"ticks,omitempty"`
}

// StateRecord состояние блока: имя и отформатированные значения свойств
type StateRecord struct {
	Block string            `json:"block"`
	Props map[string]string `json:"props,omitempty"`
}

// CellRecord ячейка чанка со ссылкой на палитру
type CellRecord struct {
	Pos     vec.Vec3 `json:"pos"`
	Palette int      `json:"p"`
}

// TickRecord ожидающий тик; Delay отсчитывается от времени сохранения
type TickRecord struct {
	Pos      vec.Vec3           `json:"pos"`
	Block    string             `json:"block"`
	Delay    int64              `json:"delay"`
	Priority block.TickPriority `json:"priority"`
}

// NewWorldStorage создает новое хранилище мира
func NewWorldStorage(dataPath string) (*WorldStorage, error) {
	dbPath := filepath.Join(dataPath, "world")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось создать zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось создать zstd decoder: %w", err)
	}

	return &WorldStorage{
		db:      db,
		dbPath:  dbPath,
		isReady: true,
		encoder: encoder,
		decoder: decoder,
		resolve: block.Get,
	}, nil
}

// SetResolver задает поиск блоков по имени при загрузке (по умолчанию глобальный реестр)
func (ws *WorldStorage) SetResolver(resolve func(name string) (block.Block, bool)) {
	ws.mutex.Lock()
	defer ws.mutex.Unlock()
	ws.resolve = resolve
}

// Close закрывает хранилище данных
func (ws *WorldStorage) Close() error {
	ws.mutex.Lock()
	defer ws.mutex.Unlock()

	if !ws.isReady {
		return nil
	}

	ws.isReady = false
	ws.decoder.Close()
	if err := ws.encoder.Close(); err != nil {
		ws.db.Close()
		return err
	}
	return ws.db.Close()
}

// WorldID возвращает постоянный идентификатор мира с именем name,
// создавая его при первом обращении
func (ws *WorldStorage) WorldID(name string) (uuid.UUID, error) {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return uuid.Nil, ErrNotReady
	}

	key := []byte("world:name:" + name)
	var id uuid.UUID
	err := ws.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			id = uuid.New()
			return txn.Set(key, []byte(id.String()))
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			parsed, err := uuid.ParseBytes(val)
			id = parsed
			return err
		})
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("ошибка чтения идентификатора мира %s: %w", name, err)
	}
	return id, nil
}

func chunkKey(worldID uuid.UUID, coords vec.Vec2) []byte {
	return []byte(fmt.Sprintf("world:%s:chunk:%d:%d", worldID, coords.X, coords.Y))
}

// SaveChunk сохраняет снимок чанка и его тиков. now: текущее время мира.
func (ws *WorldStorage) SaveChunk(worldID uuid.UUID, chunk *world.Chunk, pending []block.TickEntry, now int64) error {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return ErrNotReady
	}

	snapshot := Snapshot(chunk, pending, now)

	// Сериализуем снимок в JSON
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("ошибка сериализации снимка: %w", err)
	}
	compressed := ws.encoder.EncodeAll(data, nil)

	// Сохраняем в BadgerDB
	err = ws.db.Update(func(txn *badger.Txn) error {
		return txn.Set(chunkKey(worldID, chunk.Coords), compressed)
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения в BadgerDB: %w", err)
	}

	logging.LogDebug("Чанк %v сохранен: %d ячеек, %d байт", chunk.Coords, len(snapshot.Cells), len(compressed))
	return nil
}

// LoadSnapshot читает снимок чанка; ok == false, если снимка нет
func (ws *WorldStorage) LoadSnapshot(worldID uuid.UUID, coords vec.Vec2) (*ChunkSnapshot, bool, error) {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return nil, false, ErrNotReady
	}

	var data []byte

	// Читаем данные из BadgerDB
	err := ws.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(chunkKey(worldID, coords))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			data = append([]byte{}, val...)
			return nil
		})
	})

	// Если чанк не найден, сообщаем об отсутствии снимка
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}

	raw, err := ws.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, false, fmt.Errorf("ошибка распаковки снимка: %w", err)
	}

	// Десериализуем данные
	var snapshot ChunkSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, false, fmt.Errorf("ошибка десериализации снимка: %w", err)
	}
	return &snapshot, true, nil
}

// LoadChunk восстанавливает чанк и его тики; время тиков отсчитывается от now
func (ws *WorldStorage) LoadChunk(worldID uuid.UUID, coords vec.Vec2, now int64) (*world.Chunk, []block.TickEntry, bool, error) {
	snapshot, ok, err := ws.LoadSnapshot(worldID, coords)
	if err != nil || !ok {
		return nil, nil, ok, err
	}

	ws.mutex.RLock()
	resolve := ws.resolve
	ws.mutex.RUnlock()

	chunk, pending, err := snapshot.Restore(resolve, now)
	if err != nil {
		return nil, nil, false, fmt.Errorf("чанк %v: %w", coords, err)
	}
	return chunk, pending, true, nil
}

// Attach подключает хранилище к миру как источник и приемник чанков
func (ws *WorldStorage) Attach(wm *world.WorldManager) {
	wm.SetStorageFunctions(
		func(coords vec.Vec2) (*world.Chunk, []block.TickEntry, bool, error) {
			return ws.LoadChunk(wm.ID, coords, wm.Time())
		},
		func(chunk *world.Chunk, pending []block.TickEntry) error {
			return ws.SaveChunk(wm.ID, chunk, pending, wm.Time())
		},
	)
}

// Snapshot строит снимок чанка
func Snapshot(chunk *world.Chunk, pending []block.TickEntry, now int64) ChunkSnapshot {
	snapshot := ChunkSnapshot{Coords: chunk.Coords}
	index := make(map[string]int)

	for _, cell := range chunk.Cells() {
		key := cell.State.String()
		i, ok := index[key]
		if !ok {
			i = len(snapshot.Palette)
			index[key] = i
			snapshot.Palette = append(snapshot.Palette, encodeState(cell.State))
		}
		snapshot.Cells = append(snapshot.Cells, CellRecord{Pos: cell.Local, Palette: i})
	}

	for _, e := range pending {
		snapshot.Ticks = append(snapshot.Ticks, TickRecord{
			Pos:      e.Pos,
			Block:    e.Block.Name(),
			Delay:    max(e.Time-now, 0),
			Priority: e.Priority,
		})
	}
	return snapshot
}

// Restore восстанавливает чанк из снимка
func (s *ChunkSnapshot) Restore(resolve func(name string) (block.Block, bool), now int64) (*world.Chunk, []block.TickEntry, error) {
	states := make([]block.State, len(s.Palette))
	for i, rec := range s.Palette {
		st, err := decodeState(rec, resolve)
		if err != nil {
			return nil, nil, err
		}
		states[i] = st
	}

	chunk := world.NewChunk(s.Coords)
	for _, c := range s.Cells {
		if c.Palette < 0 || c.Palette >= len(states) {
			return nil, nil, fmt.Errorf("ячейка %v ссылается на палитру %d из %d", c.Pos, c.Palette, len(states))
		}
		chunk.Set(c.Pos, states[c.Palette])
	}
	chunk.ClearChanges()

	pending := make([]block.TickEntry, 0, len(s.Ticks))
	for _, t := range s.Ticks {
		b, ok := resolve(t.Block)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnknownBlock, t.Block)
		}
		pending = append(pending, block.TickEntry{Pos: t.Pos, Block: b, Time: now + t.Delay, Priority: t.Priority})
	}
	return chunk, pending, nil
}

func encodeState(s block.State) StateRecord {
	rec := StateRecord{Block: s.Block().Name()}
	def := s.Definition()
	if def == nil || def.Len() == 0 {
		return rec
	}
	rec.Props = make(map[string]string, def.Len())
	for _, p := range def.Properties() {
		v, _ := s.Get(p)
		rec.Props[p.Name()] = p.Format(v)
	}
	return rec
}

func decodeState(rec StateRecord, resolve func(name string) (block.Block, bool)) (block.State, error) {
	b, ok := resolve(rec.Block)
	if !ok {
		return block.State{}, fmt.Errorf("%w: %s", ErrUnknownBlock, rec.Block)
	}
	st := b.DefaultState()

	names := make([]string, 0, len(rec.Props))
	for name := range rec.Props {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p, ok := st.Definition().Property(name)
		if !ok {
			// Свойство исчезло из определения блока: оставляем значение по умолчанию
			logging.LogWarn("Блок %s больше не имеет свойства %s", rec.Block, name)
			continue
		}
		v, err := p.Parse(rec.Props[name])
		if err != nil {
			return block.State{}, fmt.Errorf("%s.%s: %w", rec.Block, name, err)
		}
		if st, err = st.TryWith(p, v); err != nil {
			return block.State{}, err
		}
	}
	return st, nil
}
