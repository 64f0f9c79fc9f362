package block

// Imitate копирует в base значения всех свойств из copies, которые есть у base.
// Свойства, которых у base нет, игнорируются; нулевые состояния пропускаются.
// Более поздние копии перекрывают более ранние.
func Imitate(base State, copies ...State) State {
	if base.IsZero() {
		return base
	}
	var values []any
	for _, c := range copies {
		if c.IsZero() || c.def == nil {
			continue
		}
		for j, p := range c.def.props {
			i := base.def.indexOf(p)
			if i < 0 {
				continue
			}
			current := base.values[i]
			if values != nil {
				current = values[i]
			}
			if current == c.values[j] {
				continue
			}
			if values == nil {
				values = append([]any(nil), base.values...)
			}
			values[i] = c.values[j]
		}
	}
	if values == nil {
		return base
	}
	return State{owner: base.owner, def: base.def, values: values}
}

// Project переводит общее состояние композита в пространство состояний target:
// старт с состояния target по умолчанию и копирование общих свойств.
func Project(combined State, target Block) State {
	return Imitate(target.DefaultState(), combined)
}

// Absorb возвращает into, в котором общие с identity свойства взяты из identity
func Absorb(identity State, into State) State {
	return Imitate(into, identity)
}
