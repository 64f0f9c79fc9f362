package variant

import (
	"fmt"
	"math/rand"

	"github.com/annel0/stone-variants/internal/config"
	"github.com/annel0/stone-variants/internal/item"
	"github.com/annel0/stone-variants/internal/loot"
	"github.com/annel0/stone-variants/internal/properties"
	"github.com/annel0/stone-variants/internal/vec"
	"github.com/annel0/stone-variants/internal/world/block"
)

// Dense маркер плотного варианта руды
var Dense = block.NewBool("dense")

// OreVariantConfig все, что нужно для построения варианта руды
type OreVariantConfig struct {
	// Name имя блока; по умолчанию "<пресет>_<фон>"
	Name       string
	Preset     *properties.OreProperties
	Ore        block.Block
	Background block.Block
	Options    config.VariantsConfig
	Items      *item.Registry
}

// OreVariant руда, встроенная в фоновый блок, с плотным вариантом
type OreVariant struct {
	SharedState

	preset  *properties.OreProperties
	bgBlock block.Block
	opts    config.VariantsConfig
	items   *item.Registry

	normalItem lazyItem
	denseItem  lazyItem
}

// NewOreVariant создает вариант руды. При выключенной имитации фона фоном
// служит простой блок с настройками руды, а настройки не объединяются.
func NewOreVariant(cfg OreVariantConfig) (*OreVariant, error) {
	if cfg.Preset == nil || cfg.Ore == nil || cfg.Background == nil {
		return nil, fmt.Errorf("вариант руды %s: неполная конфигурация", cfg.Name)
	}
	name := cfg.Name
	if name == "" {
		name = cfg.Preset.Name + "_" + cfg.Background.Name()
	}

	settings := cfg.Preset.Settings()
	background := cfg.Background
	if cfg.Options.BgImitation {
		settings = block.Merge(settings, cfg.Background.Settings())
	} else {
		plain, err := block.NewPlain(cfg.Preset.Name+"_base", settings)
		if err != nil {
			return nil, fmt.Errorf("вариант руды %s: %w", name, err)
		}
		background = plain
	}

	v := &OreVariant{
		preset:  cfg.Preset,
		bgBlock: cfg.Background,
		opts:    cfg.Options,
		items:   cfg.Items,
	}
	err := v.InitShared(v, SharedStateConfig{
		Name:       name,
		Background: background,
		Foreground: cfg.Ore,
		Markers:    []block.Property{Dense},
		Settings:   settings,
	})
	if err != nil {
		return nil, err
	}
	v.SetDefaultState(v.DefaultState().With(Dense, false))
	return v, nil
}

// Preset пресет руды
func (v *OreVariant) Preset() *properties.OreProperties { return v.preset }

// BackgroundBlock настоящий фоновый блок, даже если имитация выключена
func (v *OreVariant) BackgroundBlock() block.Block { return v.bgBlock }

// BackgroundMap сопоставляет состояниям настоящего фона состояния варианта.
// Используется генератором мира для замены фона рудой.
func (v *OreVariant) BackgroundMap() map[string]block.State {
	out := make(map[string]block.State)
	for _, st := range v.bgBlock.Definition().ValidStates(v.bgBlock) {
		out[st.String()] = block.Imitate(v.DefaultState(), st)
	}
	return out
}

// DisplayName ключ перевода из пресета или имя руды
func (v *OreVariant) DisplayName() string {
	if v.preset.Block.TranslationKey != "" {
		return v.preset.Block.TranslationKey
	}
	return v.Foreground().Name()
}

// NormalItem предмет обычного варианта
func (v *OreVariant) NormalItem() item.Item {
	return v.normalItem.get(func() (item.Item, error) { return v.findItem(false) })
}

// DenseItem предмет плотного варианта
func (v *OreVariant) DenseItem() item.Item {
	return v.denseItem.get(func() (item.Item, error) { return v.findItem(true) })
}

func (v *OreVariant) findItem(dense bool) (item.Item, error) {
	if v.items == nil || !v.items.Frozen() {
		return nil, fmt.Errorf("%w: %s: регистрация предметов не завершена", ErrItemNotRegistered, v.Name())
	}
	it, ok := v.items.Find(func(it item.Item) bool {
		bi, ok := it.(item.BlockItem)
		return ok && bi.BlockName() == v.Name() && item.IsDense(it) == dense
	})
	if !ok {
		return nil, fmt.Errorf("%w: %s (dense=%v)", ErrItemNotRegistered, v.Name(), dense)
	}
	return it, nil
}

// stack стопка предмета, соответствующего состоянию
func (v *OreVariant) stack(st block.State, count int) item.Stack {
	if st.Bool(Dense) {
		return item.NewStack(v.DenseItem(), count)
	}
	return item.NewStack(v.NormalItem(), count)
}

// OreStack стопка с исходным блоком руды
func (v *OreVariant) OreStack() item.Stack {
	return item.NewStack(v.Foreground().AsItem(), 1)
}

func (v *OreVariant) AsItem() item.Item {
	return v.NormalItem()
}

// StateForPlacement установка плотным предметом дает плотный вариант
func (v *OreVariant) StateForPlacement(ctx block.PlaceContext) block.State {
	st := v.SharedState.StateForPlacement(ctx)
	if !ctx.Item.IsEmpty() && item.IsDense(ctx.Item.Item) {
		st = st.With(Dense, true)
	}
	return st
}

// CanHarvest для мягкого фона добываемость определяет фон
func (v *OreVariant) CanHarvest(st block.State, w block.World, pos vec.Vec3, p block.Player) bool {
	if v.opts.BgImitation && v.bgBlock.Settings().Material != block.MaterialRock {
		return delegateTo(&v.SharedState, Background, "can_harvest", w, pos, func(id Identity, view block.World) bool {
			return id.Block.CanHarvest(id.imitate(st), view, pos, p)
		})
	}
	return v.SharedState.CanHarvest(st, w, pos, p)
}

// PickBlock творческий режим или наличие варианта дает вариант; если у
// игрока есть только исходная руда, возвращается она
func (v *OreVariant) PickBlock(st block.State, w block.World, pos vec.Vec3, p block.Player) item.Stack {
	actual := v.stack(st, 1)
	if p == nil || p.Creative() || p.HasItem(actual) {
		return actual
	}
	if ore := v.OreStack(); p.HasItem(ore) {
		return ore
	}
	return actual
}

// OverlayLayer слой отрисовки текстуры руды
func (v *OreVariant) OverlayLayer() block.RenderLayer {
	if v.opts.TranslucentTextures {
		return block.LayerTranslucent
	}
	return block.LayerCutoutMipped
}

// CanRenderInLayer вариант рисуется в слое фона и в слое руды
func (v *OreVariant) CanRenderInLayer(layer block.RenderLayer) bool {
	return layer == v.bgBlock.RenderLayer() || layer == v.OverlayLayer()
}

// Drops базовая добыча, умноженная для плотного варианта, с заменой исходной
// руды на предмет варианта
func (v *OreVariant) Drops(st block.State, ctx loot.Context) []item.Stack {
	items := v.baseDrops(st, ctx)
	if st.Bool(Dense) {
		items = v.handleDense(items, st, ctx)
	}
	return v.handleSelfDrops(items, st, ctx.SilkTouch)
}

// baseDrops таблица добычи пресета или добыча руды
func (v *OreVariant) baseDrops(st block.State, ctx loot.Context) []item.Stack {
	if v.preset.Loot != nil {
		return v.preset.Loot.Generate(ctx, v.resolveItem)
	}
	return v.SharedState.Drops(st, ctx)
}

func (v *OreVariant) resolveItem(name string) (item.Item, bool) {
	if v.items == nil {
		return nil, false
	}
	return v.items.Get(name)
}

// DenseCount сколько раз повторяется базовая добыча плотного варианта
func (v *OreVariant) DenseCount(rnd *rand.Rand) int {
	count := v.opts.DenseDropMultiplier
	if v.opts.RandomDropCount {
		if rnd != nil {
			count = rnd.Intn(count + 1)
		} else {
			count = rand.Intn(count + 1)
		}
	}
	if count < v.opts.DenseDropMultiplierMin {
		count = v.opts.DenseDropMultiplierMin
	}
	return count
}

// handleDense доводит число копий базовой добычи до DenseCount
func (v *OreVariant) handleDense(items []item.Stack, st block.State, ctx loot.Context) []item.Stack {
	for i := 1; i < v.DenseCount(ctx.Rand); i++ {
		items = append(items, v.baseDrops(st, ctx)...)
	}
	return items
}

// handleSelfDrops заменяет исходную руду предметом варианта и оставляет не
// более одной плотной стопки
func (v *OreVariant) handleSelfDrops(items []item.Stack, st block.State, silkTouch bool) []item.Stack {
	if v.opts.VariantsDrop || (silkTouch && v.opts.VariantsSilkTouch) {
		ore := v.OreStack()
		for i, s := range items {
			if s.SameItem(ore) {
				items[i] = v.stack(st, s.Count)
			}
		}
	}
	if st.Bool(Dense) {
		return removeDuplicateDense(items)
	}
	return items
}

// removeDuplicateDense оставляет первую плотную стопку и отбрасывает остальные
func removeDuplicateDense(items []item.Stack) []item.Stack {
	out := make([]item.Stack, 0, len(items))
	found := false
	for _, s := range items {
		dense := !s.IsEmpty() && item.IsDense(s.Item)
		if dense && found {
			continue
		}
		found = found || dense
		out = append(out, s)
	}
	return out
}

// ExpDrop опыт из пресета или от руды, умноженный для плотного варианта
func (v *OreVariant) ExpDrop(st block.State, w block.World, pos vec.Vec3, fortune, silkTouch int) int {
	var xp int
	if r := v.preset.Block.XP; r != nil {
		xp = r.Rand(rand.New(rand.NewSource(w.Time() ^ int64(pos.X*31+pos.Y*17+pos.Z))))
	} else {
		xp = v.SharedState.ExpDrop(st, w, pos, fortune, silkTouch)
	}
	if st.Bool(Dense) && v.opts.DenseXPMultiplier > 0 {
		xp *= v.opts.DenseXPMultiplier
	}
	return xp
}
