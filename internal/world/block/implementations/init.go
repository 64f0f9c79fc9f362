package implementations

import "github.com/annel0/stone-variants/internal/world/block"

// Стандартные блоки хоста. Создаются при импорте пакета.
var (
	Air         = NewAir()
	Stone       = NewStone()
	Dirt        = NewDirt()
	Grass       = NewGrass()
	Sand        = NewSand()
	Obsidian    = NewObsidian()
	SnowBlock   = newSimple("snow_block", block.Settings{Material: block.MaterialEarth, Hardness: 0.2, Opacity: 15})
	CoalOre     = NewOre("coal_ore", "coal", oreSettings(0), rangeOf(1, 1), rangeOf(0, 2))
	IronOre     = NewOre("iron_ore", "iron_ore", oreSettings(1), rangeOf(1, 1), rangeOf(0, 0))
	RedstoneOre = NewRedstoneOre()
)

// Регистрируем все типы блоков при импорте пакета
func init() {
	// Базовые блоки
	block.Register(Air)
	block.Register(Stone)
	block.Register(Dirt)
	block.Register(Grass)
	block.Register(Sand)
	block.Register(Obsidian)
	block.Register(SnowBlock)

	// Руды
	block.Register(CoalOre)
	block.Register(IronOre)
	block.Register(RedstoneOre)
}

func newSimple(name string, settings block.Settings) *block.Plain {
	p, err := block.NewPlain(name, settings)
	if err != nil {
		panic(err)
	}
	return p
}
