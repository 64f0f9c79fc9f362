package loot

import (
	"math/rand"
	"testing"

	"github.com/annel0/stone-variants/internal/item"
	"github.com/stretchr/testify/assert"
)

func TestRange_Rand(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	r := Range{Min: 2, Max: 4}
	for i := 0; i < 50; i++ {
		v := r.Rand(rnd)
		assert.GreaterOrEqual(t, v, 2)
		assert.LessOrEqual(t, v, 4)
	}
	assert.Equal(t, 3, Range{Min: 3, Max: 3}.Rand(rnd))
	assert.Equal(t, 1, Range{Min: 1, Max: 5}.Rand(nil))
	assert.Error(t, Range{Min: 3, Max: 1}.Validate())
}

func TestTable_Generate(t *testing.T) {
	table := &Table{Entries: []Entry{
		{Item: "coal", Count: Range{Min: 1, Max: 1}},
		{Item: "nothing", Count: Range{Min: 0, Max: 0}},
	}}
	known := item.Of("coal")
	drops := table.Generate(Context{}, func(name string) (item.Item, bool) {
		if name == "coal" {
			return known, true
		}
		return nil, false
	})

	assert.Len(t, drops, 1)
	assert.Equal(t, "coal", drops[0].Item.Name())
	assert.Equal(t, 1, drops[0].Count)
}

func TestTable_Validate(t *testing.T) {
	assert.Error(t, (&Table{Entries: []Entry{{Count: Range{Min: 1, Max: 1}}}}).Validate())
	assert.NoError(t, (&Table{Entries: []Entry{{Item: "coal", Count: Range{Min: 1, Max: 2}}}}).Validate())
}
