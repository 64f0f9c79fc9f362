package variant

import (
	"sync"

	"github.com/annel0/stone-variants/internal/item"
)

// lazyItem предмет, который ищется один раз при первом обращении
type lazyItem struct {
	once sync.Once
	it   item.Item
	err  error
}

// get возвращает найденный предмет; ошибка поиска фатальна и повторяется
// при каждом следующем обращении
func (l *lazyItem) get(find func() (item.Item, error)) item.Item {
	l.once.Do(func() {
		l.it, l.err = find()
	})
	if l.err != nil {
		panic(l.err)
	}
	return l.it
}
