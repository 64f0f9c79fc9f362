package loot

import (
	"fmt"
	"math/rand"

	"github.com/annel0/stone-variants/internal/item"
)

// Range целочисленный диапазон [Min, Max]
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Rand выбирает значение из диапазона
func (r Range) Rand(rnd *rand.Rand) int {
	if r.Max <= r.Min || rnd == nil {
		return r.Min
	}
	return r.Min + rnd.Intn(r.Max-r.Min+1)
}

// Validate проверяет корректность диапазона
func (r Range) Validate() error {
	if r.Min < 0 || r.Max < r.Min {
		return fmt.Errorf("некорректный диапазон [%d, %d]", r.Min, r.Max)
	}
	return nil
}

// Context параметры разрушения блока
type Context struct {
	Tool      item.Stack
	SilkTouch bool
	Fortune   int
	Explosion bool
	Rand      *rand.Rand
}

// Entry одна строка таблицы добычи
type Entry struct {
	Item   string  `yaml:"item"`
	Count  Range   `yaml:"count"`
	Chance float64 `yaml:"chance"` // 0 означает "всегда"
	// Fortune увеличивает верхнюю границу на уровень удачи
	Fortune bool `yaml:"fortune"`
}

// Table таблица добычи
type Table struct {
	Entries []Entry `yaml:"entries"`
}

// Validate проверяет таблицу
func (t *Table) Validate() error {
	for i, e := range t.Entries {
		if e.Item == "" {
			return fmt.Errorf("запись %d: не указан предмет", i)
		}
		if err := e.Count.Validate(); err != nil {
			return fmt.Errorf("запись %d (%s): %w", i, e.Item, err)
		}
	}
	return nil
}

// Generate вычисляет добычу. resolve переводит имя в предмет; неизвестные имена
// превращаются в предметы-по-имени.
func (t *Table) Generate(ctx Context, resolve func(name string) (item.Item, bool)) []item.Stack {
	var out []item.Stack
	for _, e := range t.Entries {
		if e.Chance > 0 && ctx.Rand != nil && ctx.Rand.Float64() >= e.Chance {
			continue
		}
		count := e.Count
		if e.Fortune && ctx.Fortune > 0 {
			count.Max += ctx.Fortune
		}
		n := count.Rand(ctx.Rand)
		if n <= 0 {
			continue
		}
		var it item.Item
		if resolve != nil {
			it, _ = resolve(e.Item)
		}
		if it == nil {
			it = item.Of(e.Item)
		}
		out = append(out, item.NewStack(it, n))
	}
	return out
}
