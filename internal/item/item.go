package item

import "fmt"

// Item предмет инвентаря
type Item interface {
	Name() string
}

// BlockItem предмет, который ставит блок
type BlockItem interface {
	Item
	BlockName() string
}

// simpleItem предмет, определяемый только именем
type simpleItem struct {
	name string
}

func (i simpleItem) Name() string      { return i.name }
func (i simpleItem) BlockName() string { return i.name }

// Of возвращает предмет с указанным именем, который ставит одноименный блок
func Of(name string) Item {
	return simpleItem{name: name}
}

// VariantItem предмет варианта руды (обычный или плотный)
type VariantItem struct {
	name  string
	block string
	dense bool
}

// NewVariantItem создает обычный предмет варианта
func NewVariantItem(blockName string) *VariantItem {
	return &VariantItem{name: blockName, block: blockName}
}

// NewDenseVariantItem создает плотный предмет варианта
func NewDenseVariantItem(blockName string) *VariantItem {
	return &VariantItem{name: "dense_" + blockName, block: blockName, dense: true}
}

func (i *VariantItem) Name() string      { return i.name }
func (i *VariantItem) BlockName() string { return i.block }

// Dense сообщает, что предмет ставит плотный вариант
func (i *VariantItem) Dense() bool { return i.dense }

// IsDense проверяет, является ли предмет плотным вариантом
func IsDense(it Item) bool {
	v, ok := it.(*VariantItem)
	return ok && v.dense
}

// Stack стопка предметов
type Stack struct {
	Item  Item
	Count int
}

// NewStack создает стопку
func NewStack(it Item, count int) Stack {
	return Stack{Item: it, Count: count}
}

// Empty пустая стопка
var Empty = Stack{}

// IsEmpty проверяет, пуста ли стопка
func (s Stack) IsEmpty() bool {
	return s.Item == nil || s.Count <= 0
}

// SameItem сравнивает предметы стопок по имени
func (s Stack) SameItem(o Stack) bool {
	if s.Item == nil || o.Item == nil {
		return s.Item == nil && o.Item == nil
	}
	return s.Item.Name() == o.Item.Name()
}

// Total суммирует количество предметов во всех стопках
func Total(stacks []Stack) int {
	n := 0
	for _, s := range stacks {
		n += s.Count
	}
	return n
}

func (s Stack) String() string {
	if s.IsEmpty() {
		return "empty"
	}
	return fmt.Sprintf("%dx%s", s.Count, s.Item.Name())
}
