package block

import (
	"fmt"
	"sync"
)

// Registry реестр типов блоков по имени
type Registry struct {
	mu     sync.RWMutex
	blocks map[string]Block
	order  []string
}

// NewRegistry создает пустой реестр
func NewRegistry() *Registry {
	return &Registry{blocks: make(map[string]Block)}
}

// Register добавляет блок в реестр
func (r *Registry) Register(b Block) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.blocks[b.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateBlock, b.Name())
	}
	r.blocks[b.Name()] = b
	r.order = append(r.order, b.Name())
	return nil
}

// Get возвращает блок по имени
func (r *Registry) Get(name string) (Block, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, exists := r.blocks[name]
	return b, exists
}

// All возвращает блоки в порядке регистрации
func (r *Registry) All() []Block {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Block, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.blocks[name])
	}
	return out
}

var registry = NewRegistry()

// Default возвращает глобальный реестр, в который регистрируются стандартные блоки
func Default() *Registry {
	return registry
}

// Register добавляет поведение блока в глобальный регистр; повтор имени: ошибка программиста
func Register(b Block) {
	if err := registry.Register(b); err != nil {
		panic(err)
	}
}

// Get возвращает блок из глобального регистра
func Get(name string) (Block, bool) {
	return registry.Get(name)
}

// IsValidBlock проверяет, зарегистрирован ли блок с таким именем
func IsValidBlock(name string) bool {
	_, exists := registry.Get(name)
	return exists
}
