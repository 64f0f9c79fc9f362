package variant

import (
	"github.com/annel0/stone-variants/internal/metrics"
	"github.com/annel0/stone-variants/internal/vec"
	"github.com/annel0/stone-variants/internal/world/block"
	"github.com/annel0/stone-variants/internal/world/intercept"
)

// Role роль обернутого блока внутри составного
type Role int

const (
	Background Role = iota
	Foreground
)

func (r Role) String() string {
	if r == Background {
		return "background"
	}
	return "foreground"
}

// Identity обернутый блок и его роль
type Identity struct {
	Role  Role
	Block block.Block
}

// imitate переводит общее состояние в пространство этого блока
func (id Identity) imitate(s block.State) block.State {
	if s.IsZero() {
		return s
	}
	return block.Project(s, id.Block)
}

// open создает перехватчик для делегирования в id. Фон видит себя только в
// pos, чтобы распространяющиеся блоки не размножали руду; руда видит себя везде.
func (id Identity) open(self block.Block, w block.World, pos vec.Vec3) *intercept.Interceptor {
	view := intercept.Open(w).Redirect(self, id.Block)
	if id.Role == Background {
		view.RestrictTo(pos)
	}
	return view
}

// delegateEach вызывает fn для каждого обернутого блока по порядку, каждый раз
// в собственной области перехвата. Область закрывается до перехода к следующему
// блоку, в том числе при панике. fn возвращает false, чтобы остановить обход.
func delegateEach[T any](s *SharedState, hook string, w block.World, pos vec.Vec3, fn func(id Identity, view block.World) (T, bool)) []T {
	out := make([]T, 0, len(s.identities))
	for _, id := range s.identities {
		v, next := delegate(s, id, hook, w, pos, fn)
		out = append(out, v)
		if !next {
			break
		}
	}
	return out
}

func delegate[T any](s *SharedState, id Identity, hook string, w block.World, pos vec.Vec3, fn func(id Identity, view block.World) (T, bool)) (T, bool) {
	metrics.Delegations.WithLabelValues(hook, id.Role.String()).Inc()
	if w == nil {
		return fn(id, nil)
	}
	view := id.open(s.Self(), w, pos)
	defer view.Close()
	return fn(id, view)
}

// delegateTo вызывает fn только для блока с ролью role
func delegateTo[T any](s *SharedState, role Role, hook string, w block.World, pos vec.Vec3, fn func(id Identity, view block.World) T) T {
	v, _ := delegate(s, s.identities[role], hook, w, pos, func(id Identity, view block.World) (T, bool) {
		return fn(id, view), true
	})
	return v
}
