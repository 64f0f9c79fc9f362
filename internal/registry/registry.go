// Package registry собирает варианты руд: пресеты, записи блоков, блоки,
// предметы и заморозка реестра предметов
package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/annel0/stone-variants/internal/config"
	"github.com/annel0/stone-variants/internal/item"
	"github.com/annel0/stone-variants/internal/logging"
	"github.com/annel0/stone-variants/internal/metrics"
	"github.com/annel0/stone-variants/internal/properties"
	"github.com/annel0/stone-variants/internal/world/block"
	"github.com/annel0/stone-variants/internal/world/variant"
)

// ErrUnknownBlock запись ссылается на незарегистрированный блок
var ErrUnknownBlock = errors.New("неизвестный блок")

// Options реестры, в которые идет регистрация
type Options struct {
	// Blocks реестр блоков; по умолчанию глобальный block.Default()
	Blocks *block.Registry
	// Items реестр предметов; по умолчанию новый
	Items *item.Registry
	// Presets уже загруженные пресеты; если nil, читаются из cfg.Presets
	Presets map[string]*properties.OreProperties
	// IgnoreMissingBlocks пропускать записи с неизвестным фоном или рудой
	IgnoreMissingBlocks bool
}

// Result итог регистрации
type Result struct {
	Variants []*variant.OreVariant
	Items    *item.Registry
	Blocks   *block.Registry
	Presets  map[string]*properties.OreProperties
}

// Variant ищет вариант по имени
func (r *Result) Variant(name string) (*variant.OreVariant, bool) {
	for _, v := range r.Variants {
		if v.Name() == name {
			return v, true
		}
	}
	return nil, false
}

// Setup выполняет регистрацию: пресеты, записи, блоки вариантов, предметы
// хоста и вариантов, заморозка предметов
func Setup(cfg *config.Config, opts Options) (*Result, error) {
	blocks := opts.Blocks
	if blocks == nil {
		blocks = block.Default()
	}
	items := opts.Items
	if items == nil {
		items = item.NewRegistry()
	}

	presets := opts.Presets
	if presets == nil {
		loaded, err := properties.LoadPresets(cfg.Presets)
		if err != nil {
			return nil, fmt.Errorf("загрузка пресетов: %w", err)
		}
		presets = loaded
	}
	logging.LogInfo("Загружено пресетов: %d", len(presets))

	pairs, err := properties.ExpandEntries(cfg.Blocks, presets)
	if err != nil {
		return nil, fmt.Errorf("разбор записей блоков: %w", err)
	}

	// Предметы обычных блоков регистрируются до появления вариантов
	if err := registerHostItems(items, blocks); err != nil {
		return nil, err
	}

	res := &Result{Items: items, Blocks: blocks, Presets: presets}
	for _, pair := range pairs {
		v, err := buildVariant(pair, blocks, items, cfg.Variants)
		if err != nil {
			if opts.IgnoreMissingBlocks && errors.Is(err, ErrUnknownBlock) {
				logging.LogWarn("Пропускаем %s: %v", pair.Name(), err)
				continue
			}
			return nil, err
		}
		if err := blocks.Register(v); err != nil {
			return nil, fmt.Errorf("регистрация %s: %w", v.Name(), err)
		}
		res.Variants = append(res.Variants, v)
		logging.LogDebug("Зарегистрирован вариант %s", v.Name())
	}

	for _, v := range res.Variants {
		if err := registerVariantItems(items, v); err != nil {
			return nil, err
		}
	}
	if err := registerLootItems(items, presets); err != nil {
		return nil, err
	}
	items.Freeze()

	metrics.VariantsRegistered.Set(float64(len(res.Variants)))
	logging.LogInfo("Зарегистрировано вариантов руд: %d, предметов: %d", len(res.Variants), items.Len())
	return res, nil
}

func buildVariant(pair properties.Pair, blocks *block.Registry, items *item.Registry, opts config.VariantsConfig) (*variant.OreVariant, error) {
	ore, ok := blocks.Get(pair.Preset.Block.Location)
	if !ok {
		return nil, fmt.Errorf("%w: руда %s пресета %s", ErrUnknownBlock, pair.Preset.Block.Location, pair.Preset.Name)
	}
	bg, ok := blocks.Get(pair.Background)
	if !ok {
		return nil, fmt.Errorf("%w: фон %s для %s", ErrUnknownBlock, pair.Background, pair.Preset.Name)
	}
	return variant.NewOreVariant(variant.OreVariantConfig{
		Name:       pair.Name(),
		Preset:     pair.Preset,
		Ore:        ore,
		Background: bg,
		Options:    opts,
		Items:      items,
	})
}

func registerHostItems(items *item.Registry, blocks *block.Registry) error {
	for _, b := range blocks.All() {
		if _, ok := b.(*variant.OreVariant); ok {
			continue
		}
		if _, ok := items.Get(b.Name()); ok {
			continue
		}
		if err := items.Register(b.AsItem()); err != nil {
			return fmt.Errorf("предмет блока %s: %w", b.Name(), err)
		}
	}
	return nil
}

func registerVariantItems(items *item.Registry, v *variant.OreVariant) error {
	for _, it := range []item.Item{item.NewVariantItem(v.Name()), item.NewDenseVariantItem(v.Name())} {
		if err := items.Register(it); err != nil {
			return fmt.Errorf("предмет варианта %s: %w", v.Name(), err)
		}
	}
	return nil
}

// registerLootItems регистрирует предметы, упомянутые в таблицах добычи
func registerLootItems(items *item.Registry, presets map[string]*properties.OreProperties) error {
	names := make([]string, 0)
	for _, p := range presets {
		if p.Loot == nil {
			continue
		}
		for _, e := range p.Loot.Entries {
			names = append(names, e.Item)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := items.Get(name); ok {
			continue
		}
		if err := items.Register(item.Of(name)); err != nil {
			return fmt.Errorf("предмет добычи %s: %w", name, err)
		}
	}
	return nil
}
