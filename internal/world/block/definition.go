package block

import "fmt"

// Definition упорядоченный набор свойств блока. Неизменяем после Build.
type Definition struct {
	props []Property
	index map[string]int
}

// DefinitionBuilder собирает Definition, отбрасывая истинные дубликаты
type DefinitionBuilder struct {
	props []Property
	index map[string]int
}

// NewDefinitionBuilder создает пустой builder
func NewDefinitionBuilder() *DefinitionBuilder {
	return &DefinitionBuilder{index: make(map[string]int)}
}

// Add добавляет свойства. Свойство, равное уже добавленному, пропускается;
// другое свойство с тем же именем: ошибка ErrPropertyConflict.
func (b *DefinitionBuilder) Add(props ...Property) error {
	for _, p := range props {
		if i, exists := b.index[p.Name()]; exists {
			if b.props[i].Equal(p) {
				continue
			}
			return fmt.Errorf("%w: %q объявлено с разными значениями (%v и %v)",
				ErrPropertyConflict, p.Name(), b.props[i].Values(), p.Values())
		}
		b.index[p.Name()] = len(b.props)
		b.props = append(b.props, p)
	}
	return nil
}

// Build возвращает готовое определение
func (b *DefinitionBuilder) Build() *Definition {
	d := &Definition{
		props: append([]Property(nil), b.props...),
		index: make(map[string]int, len(b.props)),
	}
	for k, v := range b.index {
		d.index[k] = v
	}
	return d
}

// NewDefinition строит определение из списка свойств
func NewDefinition(props ...Property) (*Definition, error) {
	b := NewDefinitionBuilder()
	if err := b.Add(props...); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// MustDefinition как NewDefinition, но паникует при конфликте
func MustDefinition(props ...Property) *Definition {
	d, err := NewDefinition(props...)
	if err != nil {
		panic(err)
	}
	return d
}

// Properties возвращает копию списка свойств в порядке объявления
func (d *Definition) Properties() []Property {
	return append([]Property(nil), d.props...)
}

// Len количество свойств
func (d *Definition) Len() int {
	return len(d.props)
}

// Property ищет свойство по имени
func (d *Definition) Property(name string) (Property, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.props[i], true
}

// Has проверяет наличие именно этого свойства (по Equal, не только по имени)
func (d *Definition) Has(p Property) bool {
	return d.indexOf(p) >= 0
}

func (d *Definition) indexOf(p Property) int {
	i, ok := d.index[p.Name()]
	if !ok || !d.props[i].Equal(p) {
		return -1
	}
	return i
}

// ValidStates перечисляет все допустимые состояния owner в лексикографическом порядке свойств
func (d *Definition) ValidStates(owner Block) []State {
	states := []State{newDefaultState(owner, d)}
	for i, p := range d.props {
		values := p.Values()
		next := make([]State, 0, len(states)*len(values))
		for _, s := range states {
			for _, v := range values {
				next = append(next, s.withIndex(i, v))
			}
		}
		states = next
	}
	return states
}
