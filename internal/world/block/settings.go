package block

// Settings физические свойства блока, не зависящие от состояния
type Settings struct {
	Material        Material     `yaml:"-"`
	MaterialName    string       `yaml:"material"`
	Hardness        float64      `yaml:"hardness"`
	Resistance      float64      `yaml:"resistance"`
	HarvestLevel    int          `yaml:"harvest_level"`
	RequiresTool    bool         `yaml:"requires_tool"`
	LightLevel      int          `yaml:"light_level"`
	Opacity         int          `yaml:"opacity"`
	Flammability    int          `yaml:"flammability"`
	FireSpreadSpeed int          `yaml:"fire_spread_speed"`
	Sticky          bool         `yaml:"sticky"`
	Ladder          bool         `yaml:"ladder"`
	PushReaction    PushReaction `yaml:"-"`
	RenderLayer     RenderLayer  `yaml:"-"`
}

// ParseMaterial переводит имя материала из пресета
func ParseMaterial(name string) (Material, bool) {
	switch name {
	case "air":
		return MaterialAir, true
	case "rock", "stone", "":
		return MaterialRock, true
	case "earth", "dirt":
		return MaterialEarth, true
	case "sand":
		return MaterialSand, true
	case "organic", "grass":
		return MaterialOrganic, true
	case "wood":
		return MaterialWood, true
	}
	return MaterialRock, false
}

// Merge совмещает настройки руды и фонового блока: материал, звук и отрисовка
// берутся у фона, прочность: максимум из двух, требования к инструменту: у руды.
func Merge(ore, bg Settings) Settings {
	out := ore
	out.Material = bg.Material
	out.MaterialName = bg.MaterialName
	out.Hardness = max(ore.Hardness, bg.Hardness)
	out.Resistance = max(ore.Resistance, bg.Resistance)
	out.HarvestLevel = max(ore.HarvestLevel, bg.HarvestLevel)
	out.RequiresTool = ore.RequiresTool || bg.RequiresTool
	out.LightLevel = max(ore.LightLevel, bg.LightLevel)
	out.Opacity = bg.Opacity
	out.Flammability = bg.Flammability
	out.FireSpreadSpeed = bg.FireSpreadSpeed
	out.Sticky = bg.Sticky
	out.Ladder = bg.Ladder
	out.PushReaction = bg.PushReaction
	out.RenderLayer = bg.RenderLayer
	return out
}
