// Package intercept реализует подмену представления мира на время делегирования
// вызова обернутому блоку. Перехватчик создается на каждый вызов и закрывается
// перед возвратом управления; после Close он пропускает все обращения как есть.
package intercept

import (
	"github.com/annel0/stone-variants/internal/item"
	"github.com/annel0/stone-variants/internal/logging"
	"github.com/annel0/stone-variants/internal/metrics"
	"github.com/annel0/stone-variants/internal/vec"
	"github.com/annel0/stone-variants/internal/world/block"
)

// Translate переводит состояние из одного пространства в другое.
// actual: текущее состояние мира в позиции (может быть нулевым).
type Translate func(s, actual block.State) block.State

// Interceptor представление мира, в котором обернутый блок видит себя
// вместо составного блока. Реализует block.World.
type Interceptor struct {
	world block.World

	// original блок, чей код выполняется; substitute: составной блок,
	// которому на самом деле принадлежат состояния в мире
	original   block.Block
	substitute block.Block

	pos        vec.Vec3
	restricted bool

	out Translate
	in  Translate

	ticks *TickInterceptor
}

// Open начинает новую область перехвата поверх w. Без Redirect перехватчик
// ничего не меняет.
func Open(w block.World) *Interceptor {
	i := &Interceptor{world: w}
	i.ticks = &TickInterceptor{parent: i}
	return i
}

// Redirect регистрирует подмену: обращения блока original к состояниям
// substitute переводятся в его собственное пространство состояний, а его
// записи и тики переписываются на substitute.
func (i *Interceptor) Redirect(substitute, original block.Block) *Interceptor {
	i.substitute = substitute
	i.original = original
	if i.out == nil {
		i.out = projectOut(original)
	}
	if i.in == nil {
		i.in = absorbIn(substitute)
	}
	return i
}

// RestrictTo сужает подмену до одной позиции
func (i *Interceptor) RestrictTo(pos vec.Vec3) *Interceptor {
	i.pos = pos
	i.restricted = true
	return i
}

// WithTranslation заменяет функции перевода состояний
func (i *Interceptor) WithTranslation(out, in Translate) *Interceptor {
	if out != nil {
		i.out = out
	}
	if in != nil {
		i.in = in
	}
	return i
}

// Close снимает подмену. Повторный вызов безопасен.
func (i *Interceptor) Close() {
	i.original = nil
	i.substitute = nil
	i.out = nil
	i.in = nil
	i.restricted = false
}

// Active сообщает, действует ли подмена
func (i *Interceptor) Active() bool {
	return i.original != nil && i.substitute != nil
}

// Unwrap возвращает исходный мир
func (i *Interceptor) Unwrap() block.World {
	return i.world
}

// inScope проверяет, что позиция попадает в область подмены
func (i *Interceptor) inScope(pos vec.Vec3) bool {
	if !i.Active() {
		return false
	}
	return !i.restricted || pos == i.pos
}

// BlockState возвращает состояние в позиции. Состояние составного блока в
// области подмены переводится в пространство обернутого блока.
func (i *Interceptor) BlockState(pos vec.Vec3) block.State {
	s := i.world.BlockState(pos)
	if s.IsZero() || !i.inScope(pos) || !s.Is(i.substitute) {
		return s
	}
	metrics.Redirects.WithLabelValues("read").Inc()
	return i.out(s, s)
}

// SetBlockState записывает состояние. Состояние обернутого блока в области
// подмены переводится обратно в состояние составного блока.
func (i *Interceptor) SetBlockState(pos vec.Vec3, s block.State, flags block.UpdateFlags) bool {
	if s.IsZero() || !i.inScope(pos) || !s.Is(i.original) {
		return i.world.SetBlockState(pos, s, flags)
	}
	actual := i.world.BlockState(pos)
	translated := i.in(s, actual)
	logging.LogTrace("перехват записи %s: %s -> %s", pos, s, translated)
	metrics.Redirects.WithLabelValues("write").Inc()
	return i.world.SetBlockState(pos, translated, flags)
}

// Ticks возвращает очередь тиков с подменой блока
func (i *Interceptor) Ticks() block.TickList {
	return i.ticks
}

// NotifyNeighbors оповещает соседей от имени составного блока
func (i *Interceptor) NotifyNeighbors(pos vec.Vec3, from block.Block) {
	i.world.NotifyNeighbors(pos, i.rewrite(pos, from, "notify"))
}

func (i *Interceptor) SpawnItem(pos vec.Vec3, stack item.Stack) {
	i.world.SpawnItem(pos, stack)
}

func (i *Interceptor) IsClient() bool { return i.world.IsClient() }

func (i *Interceptor) Time() int64 { return i.world.Time() }

// rewrite заменяет original на substitute в области подмены
func (i *Interceptor) rewrite(pos vec.Vec3, b block.Block, kind string) block.Block {
	if b == nil || !i.inScope(pos) || b != i.original {
		return b
	}
	logging.LogTrace("перехват %s %s: %s -> %s", kind, pos, b.Name(), i.substitute.Name())
	metrics.Redirects.WithLabelValues(kind).Inc()
	return i.substitute
}

// projectOut переводит состояние составного блока в пространство target
func projectOut(target block.Block) Translate {
	return func(s, _ block.State) block.State {
		return block.Project(s, target)
	}
}

// absorbIn переносит значения обернутого блока в текущее состояние
// составного; если в позиции уже не составной блок, берется его состояние
// по умолчанию
func absorbIn(composite block.Block) Translate {
	return func(s, actual block.State) block.State {
		base := actual
		if !base.Is(composite) {
			base = composite.DefaultState()
		}
		return block.Absorb(s, base)
	}
}
