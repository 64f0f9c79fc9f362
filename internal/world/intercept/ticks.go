package intercept

import (
	"github.com/annel0/stone-variants/internal/vec"
	"github.com/annel0/stone-variants/internal/world/block"
)

// TickInterceptor очередь тиков, видимая обернутому блоку. Проверки и
// планирование тиков для исходного блока переписываются на составной;
// массовые операции (перечисление, копирование области) идут в реальную
// очередь без изменений.
type TickInterceptor struct {
	parent *Interceptor
}

func (t *TickInterceptor) real() block.TickList {
	return t.parent.world.Ticks()
}

func (t *TickInterceptor) IsTickPending(pos vec.Vec3, b block.Block) bool {
	return t.real().IsTickPending(pos, t.parent.rewrite(pos, b, "tick"))
}

func (t *TickInterceptor) IsTickScheduled(pos vec.Vec3, b block.Block) bool {
	return t.real().IsTickScheduled(pos, t.parent.rewrite(pos, b, "tick"))
}

func (t *TickInterceptor) ScheduleTick(pos vec.Vec3, b block.Block, delay int64, priority block.TickPriority) {
	t.real().ScheduleTick(pos, t.parent.rewrite(pos, b, "tick"), delay, priority)
}

func (t *TickInterceptor) Pending(area vec.Box, remove bool) []block.TickEntry {
	return t.real().Pending(area, remove)
}

func (t *TickInterceptor) CopyTicks(area vec.Box, offset vec.Vec3) {
	t.real().CopyTicks(area, offset)
}

func (t *TickInterceptor) Len() int {
	return t.real().Len()
}
