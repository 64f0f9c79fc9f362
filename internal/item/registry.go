package item

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrFrozen регистрация после заморозки реестра
	ErrFrozen = errors.New("реестр предметов заморожен")
	// ErrDuplicate предмет с таким именем уже есть
	ErrDuplicate = errors.New("предмет уже зарегистрирован")
)

// Registry реестр предметов. Регистрация идет после регистрации блоков;
// Freeze отмечает ее завершение, после чего обратный поиск становится допустимым.
type Registry struct {
	mu     sync.RWMutex
	items  map[string]Item
	order  []string
	frozen bool
}

// NewRegistry создает пустой реестр
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]Item)}
}

// Register добавляет предмет
func (r *Registry) Register(it Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("%w: %s", ErrFrozen, it.Name())
	}
	if _, exists := r.items[it.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, it.Name())
	}
	r.items[it.Name()] = it
	r.order = append(r.order, it.Name())
	return nil
}

// Freeze завершает регистрацию
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Frozen сообщает, завершена ли регистрация
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Get возвращает предмет по имени
func (r *Registry) Get(name string) (Item, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[name]
	return it, ok
}

// Find возвращает первый в порядке регистрации предмет, удовлетворяющий pred
func (r *Registry) Find(pred func(Item) bool) (Item, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range r.order {
		if it := r.items[name]; pred(it) {
			return it, true
		}
	}
	return nil, false
}

// All возвращает все предметы в порядке регистрации
func (r *Registry) All() []Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Item, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.items[name])
	}
	return out
}

// Len количество предметов
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
