package world

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/aquilax/go-perlin"

	"github.com/annel0/stone-variants/internal/properties"
	"github.com/annel0/stone-variants/internal/vec"
	"github.com/annel0/stone-variants/internal/world/block"
	"github.com/annel0/stone-variants/internal/world/block/implementations"
	"github.com/annel0/stone-variants/internal/world/variant"
)

// Константы высот для генерации
const (
	BaseHeight   = 40   // Средняя высота поверхности
	HeightSpread = 24   // Разброс высоты от шума
	DirtDepth    = 3    // Толщина слоя земли под поверхностью
	DesertStart  = 0.62 // Выше: песок вместо травы
)

// WorldGenerator генерирует ландшафт и жилы вариантов руд
type WorldGenerator struct {
	Seed       int64   // Сид для генерации шума
	NoiseScale float64 // Масштаб основного шума (высота)
	BiomeScale float64 // Масштаб шума биомов

	height *perlin.Perlin
	biome  *perlin.Perlin

	mu       sync.RWMutex
	variants map[string]*variant.OreVariant // имя варианта -> вариант
	order    []string
}

// NewWorldGenerator создаёт новый генератор мира
func NewWorldGenerator(seed int64) *WorldGenerator {
	return &WorldGenerator{
		Seed:       seed,
		NoiseScale: 0.05, // Настройка сглаженности ландшафта
		BiomeScale: 0.02, // Настройка размера биомов
		height:     newNoise(seed),
		biome:      newNoise(seed + 42),
		variants:   make(map[string]*variant.OreVariant),
	}
}

func newNoise(seed int64) *perlin.Perlin {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав
	return perlin.NewPerlin(alpha, beta, n, seed)
}

// noise2D возвращает значение шума в диапазоне от 0 до 1
func noise2D(p *perlin.Perlin, x, y float64) float64 {
	return (p.Noise2D(x, y) + 1.0) / 2.0
}

// AddVariant добавляет вариант руды в генерацию жил
func (wg *WorldGenerator) AddVariant(v *variant.OreVariant) {
	wg.mu.Lock()
	defer wg.mu.Unlock()
	if _, ok := wg.variants[v.Name()]; !ok {
		wg.order = append(wg.order, v.Name())
		sort.Strings(wg.order)
	}
	wg.variants[v.Name()] = v
}

// Variants возвращает варианты в порядке генерации
func (wg *WorldGenerator) Variants() []*variant.OreVariant {
	wg.mu.RLock()
	defer wg.mu.RUnlock()
	out := make([]*variant.OreVariant, 0, len(wg.order))
	for _, name := range wg.order {
		out = append(out, wg.variants[name])
	}
	return out
}

// SurfaceHeight высота поверхности в колонке
func (wg *WorldGenerator) SurfaceHeight(x, z int) int {
	h := noise2D(wg.height, float64(x)*wg.NoiseScale, float64(z)*wg.NoiseScale)
	return BaseHeight + int(h*HeightSpread) - HeightSpread/2
}

// GenerateChunk генерирует чанк по его координатам
func (wg *WorldGenerator) GenerateChunk(coords vec.Vec2) *Chunk {
	chunk := NewChunk(coords)

	// Для каждого чанка создаем уникальный сид на основе глобального сида и координат
	chunkSeed := wg.Seed + int64(coords.X*31) + int64(coords.Y*17)
	rng := rand.New(rand.NewSource(chunkSeed))

	for z := 0; z < ChunkSize; z++ {
		for x := 0; x < ChunkSize; x++ {
			global := chunk.ToWorld(vec.Vec3{X: x, Z: z})
			wg.fillColumn(chunk, x, z, global.X, global.Z)
		}
	}

	for _, v := range wg.Variants() {
		wg.placeVeins(chunk, v, rng)
	}

	chunk.ClearChanges()
	return chunk
}

// fillColumn заполняет одну колонку: обсидиан, камень, земля и поверхность
func (wg *WorldGenerator) fillColumn(chunk *Chunk, x, z, gx, gz int) {
	surface := wg.SurfaceHeight(gx, gz)
	biome := noise2D(wg.biome, float64(gx)*wg.BiomeScale, float64(gz)*wg.BiomeScale)

	chunk.Set(vec.Vec3{X: x, Y: MinY, Z: z}, implementations.Obsidian.DefaultState())
	for y := MinY + 1; y <= surface; y++ {
		var s block.State
		switch {
		case y == surface && biome > DesertStart:
			s = implementations.Sand.DefaultState()
		case y == surface:
			s = implementations.Grass.DefaultState()
		case y > surface-DirtDepth && biome > DesertStart:
			s = implementations.Sand.DefaultState()
		case y > surface-DirtDepth:
			s = implementations.Dirt.DefaultState()
		default:
			s = implementations.Stone.DefaultState()
		}
		chunk.Set(vec.Vec3{X: x, Y: y, Z: z}, s)
	}
}

// placeVeins размещает жилы варианта согласно параметрам генерации пресета
func (wg *WorldGenerator) placeVeins(chunk *Chunk, v *variant.OreVariant, rng *rand.Rand) {
	preset := v.Preset()
	if preset == nil || len(preset.Gen) == 0 {
		return
	}
	bgMap := v.BackgroundMap()

	for _, gen := range preset.Gen {
		for i := 0; i < gen.Count; i++ {
			if gen.Chance > 0 && rng.Float64() >= gen.Chance {
				continue
			}
			center := vec.Vec3{
				X: rng.Intn(ChunkSize),
				Y: gen.Height.Rand(rng),
				Z: rng.Intn(ChunkSize),
			}
			wg.placeVein(chunk, v, gen, bgMap, center, rng)
		}
	}
}

// placeVein случайным блужданием заменяет до gen.Size подходящих ячеек
func (wg *WorldGenerator) placeVein(chunk *Chunk, v *variant.OreVariant, gen properties.GenProperties,
	bgMap map[string]block.State, pos vec.Vec3, rng *rand.Rand) {
	dense := v.Preset().DenseAllowed() && gen.DenseRatio > 0

	for n := 0; n < gen.Size; n++ {
		if InBounds(pos) {
			if cur, ok := chunk.Get(pos); ok {
				if next, ok := wg.replacement(v, gen, bgMap, cur); ok {
					if dense && rng.Float64() < gen.DenseRatio {
						next = next.With(variant.Dense, true)
					}
					chunk.Set(pos, next)
				}
			}
		}
		pos = pos.Offset(vec.Directions[rng.Intn(len(vec.Directions))])
	}
}

// replacement подбирает состояние варианта для текущей ячейки.
// Без контейнеров заменяется фон варианта, иначе только руды из контейнеров.
func (wg *WorldGenerator) replacement(v *variant.OreVariant, gen properties.GenProperties,
	bgMap map[string]block.State, cur block.State) (block.State, bool) {
	if len(gen.Containers) == 0 {
		next, ok := bgMap[cur.String()]
		return next, ok
	}

	host, ok := cur.Block().(*variant.OreVariant)
	if !ok || !contains(gen.Containers, host.Preset().Name) {
		return block.State{}, false
	}
	// Ищем вариант этой руды поверх того же фона
	wg.mu.RLock()
	target, ok := wg.variants[properties.Pair{Preset: v.Preset(), Background: host.BackgroundBlock().Name()}.Name()]
	wg.mu.RUnlock()
	if !ok {
		return block.State{}, false
	}
	bg := block.Project(cur, host.BackgroundBlock())
	next, ok := target.BackgroundMap()[bg.String()]
	return next, ok
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
