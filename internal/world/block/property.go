package block

import (
	"fmt"
	"strconv"
)

// Property ось состояния блока: имя и конечное множество значений.
// Значения хранятся как bool, int или string в зависимости от типа свойства.
type Property interface {
	Name() string
	Values() []any
	Valid(v any) bool
	// Equal сравнивает свойства по сути (тип, имя, допустимые значения), а не по указателю
	Equal(other Property) bool
	Format(v any) string
	Parse(s string) (any, error)
}

// BoolProperty логическое свойство (false, true)
type BoolProperty struct {
	name string
}

// NewBool создает логическое свойство
func NewBool(name string) *BoolProperty {
	return &BoolProperty{name: name}
}

func (p *BoolProperty) Name() string  { return p.name }
func (p *BoolProperty) Values() []any { return []any{false, true} }

func (p *BoolProperty) Valid(v any) bool {
	_, ok := v.(bool)
	return ok
}

func (p *BoolProperty) Equal(other Property) bool {
	o, ok := other.(*BoolProperty)
	return ok && o.name == p.name
}

func (p *BoolProperty) Format(v any) string {
	return strconv.FormatBool(v.(bool))
}

func (p *BoolProperty) Parse(s string) (any, error) {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidValue, p.name, s)
	}
	return v, nil
}

// IntProperty целочисленное свойство в диапазоне [Min, Max]
type IntProperty struct {
	name     string
	min, max int
}

// NewInt создает целочисленное свойство
func NewInt(name string, min, max int) *IntProperty {
	if min > max {
		min, max = max, min
	}
	return &IntProperty{name: name, min: min, max: max}
}

func (p *IntProperty) Name() string { return p.name }
func (p *IntProperty) Min() int     { return p.min }
func (p *IntProperty) Max() int     { return p.max }

func (p *IntProperty) Values() []any {
	out := make([]any, 0, p.max-p.min+1)
	for i := p.min; i <= p.max; i++ {
		out = append(out, i)
	}
	return out
}

func (p *IntProperty) Valid(v any) bool {
	i, ok := v.(int)
	return ok && i >= p.min && i <= p.max
}

func (p *IntProperty) Equal(other Property) bool {
	o, ok := other.(*IntProperty)
	return ok && o.name == p.name && o.min == p.min && o.max == p.max
}

func (p *IntProperty) Format(v any) string {
	return strconv.Itoa(v.(int))
}

func (p *IntProperty) Parse(s string) (any, error) {
	v, err := strconv.Atoi(s)
	if err != nil || !p.Valid(v) {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidValue, p.name, s)
	}
	return v, nil
}

// EnumProperty свойство с фиксированным списком строковых значений
type EnumProperty struct {
	name   string
	values []string
}

// NewEnum создает перечислимое свойство; первое значение: значение по умолчанию
func NewEnum(name string, values ...string) *EnumProperty {
	return &EnumProperty{name: name, values: append([]string(nil), values...)}
}

func (p *EnumProperty) Name() string { return p.name }

func (p *EnumProperty) Values() []any {
	out := make([]any, len(p.values))
	for i, v := range p.values {
		out[i] = v
	}
	return out
}

func (p *EnumProperty) Valid(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	for _, allowed := range p.values {
		if allowed == s {
			return true
		}
	}
	return false
}

func (p *EnumProperty) Equal(other Property) bool {
	o, ok := other.(*EnumProperty)
	if !ok || o.name != p.name || len(o.values) != len(p.values) {
		return false
	}
	for i := range p.values {
		if p.values[i] != o.values[i] {
			return false
		}
	}
	return true
}

func (p *EnumProperty) Format(v any) string {
	return v.(string)
}

func (p *EnumProperty) Parse(s string) (any, error) {
	if !p.Valid(s) {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidValue, p.name, s)
	}
	return s, nil
}
