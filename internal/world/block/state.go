package block

import (
	"fmt"
	"strings"
)

// State конкретное назначение значений всем свойствам блока.
// Значение неизменяемо: With возвращает новое состояние.
// Нулевое значение State означает "состояния нет".
type State struct {
	owner  Block
	def    *Definition
	values []any
}

// NewDefaultState создает состояние, в котором каждое свойство имеет первое допустимое значение
func NewDefaultState(owner Block, def *Definition) State {
	return newDefaultState(owner, def)
}

func newDefaultState(owner Block, def *Definition) State {
	values := make([]any, len(def.props))
	for i, p := range def.props {
		values[i] = p.Values()[0]
	}
	return State{owner: owner, def: def, values: values}
}

// Block возвращает владельца состояния
func (s State) Block() Block {
	return s.owner
}

// Definition возвращает определение свойств владельца
func (s State) Definition() *Definition {
	return s.def
}

// IsZero сообщает, что состояние отсутствует
func (s State) IsZero() bool {
	return s.owner == nil
}

// Is проверяет, что состояние принадлежит именно блоку b
func (s State) Is(b Block) bool {
	return s.owner != nil && b != nil && s.owner == b
}

// Has проверяет, есть ли свойство в состоянии
func (s State) Has(p Property) bool {
	return s.def != nil && s.def.Has(p)
}

// Get возвращает значение свойства
func (s State) Get(p Property) (any, bool) {
	if s.def == nil {
		return nil, false
	}
	i := s.def.indexOf(p)
	if i < 0 {
		return nil, false
	}
	return s.values[i], true
}

// Bool возвращает значение логического свойства (false, если его нет)
func (s State) Bool(p *BoolProperty) bool {
	v, _ := s.Get(p)
	b, _ := v.(bool)
	return b
}

// Int возвращает значение целочисленного свойства (0, если его нет)
func (s State) Int(p *IntProperty) int {
	v, _ := s.Get(p)
	i, _ := v.(int)
	return i
}

// Enum возвращает значение перечислимого свойства ("" если его нет)
func (s State) Enum(p *EnumProperty) string {
	v, _ := s.Get(p)
	str, _ := v.(string)
	return str
}

// With возвращает копию состояния с новым значением свойства.
// Паникует, если свойства нет или значение недопустимо.
func (s State) With(p Property, v any) State {
	next, err := s.TryWith(p, v)
	if err != nil {
		panic(err)
	}
	return next
}

// TryWith как With, но возвращает ошибку
func (s State) TryWith(p Property, v any) (State, error) {
	if s.def == nil {
		return s, ErrStateAbsent
	}
	i := s.def.indexOf(p)
	if i < 0 {
		return s, fmt.Errorf("%w: %s у %s", ErrUnknownProperty, p.Name(), s.name())
	}
	if !p.Valid(v) {
		return s, fmt.Errorf("%w: %s=%v", ErrInvalidValue, p.Name(), v)
	}
	return s.withIndex(i, v), nil
}

func (s State) withIndex(i int, v any) State {
	if s.values[i] == v {
		return s
	}
	values := append([]any(nil), s.values...)
	values[i] = v
	return State{owner: s.owner, def: s.def, values: values}
}

// Values возвращает значения свойств по именам
func (s State) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	if s.def == nil {
		return out
	}
	for i, p := range s.def.props {
		out[p.Name()] = s.values[i]
	}
	return out
}

// Equal сравнивает владельца и все значения
func (s State) Equal(o State) bool {
	if s.owner != o.owner || len(s.values) != len(o.values) {
		return false
	}
	for i := range s.values {
		if s.values[i] != o.values[i] {
			return false
		}
	}
	return true
}

func (s State) name() string {
	if s.owner == nil {
		return "<none>"
	}
	return s.owner.Name()
}

// String форматирует состояние как name[a=1,b=true]
func (s State) String() string {
	if s.def == nil || len(s.values) == 0 {
		return s.name()
	}
	parts := make([]string, len(s.values))
	for i, p := range s.def.props {
		parts[i] = p.Name() + "=" + p.Format(s.values[i])
	}
	return s.name() + "[" + strings.Join(parts, ",") + "]"
}
