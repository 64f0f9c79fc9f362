package block

import "fmt"

// Union строит общее множество свойств композитного блока.
// Сначала идут собственные свойства композита (own), затем свойства
// каждого определения в порядке передачи. Истинные дубликаты включаются один раз,
// одноименные свойства разного типа приводят к ErrPropertyConflict.
func Union(own []Property, defs ...*Definition) (*Definition, error) {
	b := NewDefinitionBuilder()
	if err := b.Add(own...); err != nil {
		return nil, err
	}
	for i, d := range defs {
		if d == nil {
			continue
		}
		if err := b.Add(d.props...); err != nil {
			return nil, fmt.Errorf("объединение свойств, источник %d: %w", i, err)
		}
	}
	return b.Build(), nil
}
