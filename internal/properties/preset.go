package properties

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/annel0/stone-variants/internal/loot"
	"github.com/annel0/stone-variants/internal/world/block"
)

// OreProperties пресет руды: какой блок оборачивать, с какими настройками,
// добычей, опытом и параметрами генерации
type OreProperties struct {
	Name  string          `yaml:"name"`
	Mod   string          `yaml:"mod"`
	Block BlockProperties `yaml:"block"`
	Loot  *loot.Table     `yaml:"loot"`
	Gen   []GenProperties `yaml:"gen"`
}

// BlockProperties блочная часть пресета
type BlockProperties struct {
	// Location имя оборачиваемого блока руды
	Location       string      `yaml:"location"`
	TranslationKey string      `yaml:"translation_key"`
	XP             *loot.Range `yaml:"xp"`
	CanBeDense     *bool       `yaml:"can_be_dense"`

	block.Settings `yaml:",inline"`
}

// GenProperties параметры одной жилы при генерации мира
type GenProperties struct {
	Size       int        `yaml:"size"`
	Count      int        `yaml:"count"`
	Chance     float64    `yaml:"chance"`
	Height     loot.Range `yaml:"height"`
	DenseRatio float64    `yaml:"dense_ratio"`
	// Containers имена пресетов, жилы которых генерируются внутри этой
	Containers []string `yaml:"containers"`
}

// DenseAllowed может ли руда появляться в плотном варианте
func (p *OreProperties) DenseAllowed() bool {
	return p.Block.CanBeDense == nil || *p.Block.CanBeDense
}

// Settings возвращает настройки блока с разобранным материалом
func (p *OreProperties) Settings() block.Settings {
	return p.Block.Settings
}

// Validate проверяет пресет и заполняет производные поля
func (p *OreProperties) Validate() error {
	if p.Name == "" {
		return ErrMissingName
	}
	if p.Block.Location == "" {
		p.Block.Location = "air"
	}
	material, ok := block.ParseMaterial(p.Block.MaterialName)
	if !ok {
		return fmt.Errorf("%s: неизвестный материал %q", p.Name, p.Block.MaterialName)
	}
	p.Block.Material = material
	if p.Block.XP != nil {
		if err := p.Block.XP.Validate(); err != nil {
			return fmt.Errorf("%s: xp: %w", p.Name, err)
		}
	}
	if p.Loot != nil {
		if err := p.Loot.Validate(); err != nil {
			return fmt.Errorf("%s: loot: %w", p.Name, err)
		}
	}
	for i, g := range p.Gen {
		if err := g.Height.Validate(); err != nil {
			return fmt.Errorf("%s: gen[%d]: %w", p.Name, i, err)
		}
		for _, c := range g.Containers {
			if c == p.Name {
				return fmt.Errorf("%s: gen[%d]: %w", p.Name, i, ErrSelfReference)
			}
		}
	}
	return nil
}

// Parse разбирает пресет из YAML. Неизвестные поля считаются ошибкой.
// fallbackName используется, если в файле нет имени.
func Parse(data []byte, fallbackName string) (*OreProperties, error) {
	p := &OreProperties{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil {
		return nil, fmt.Errorf("ошибка разбора пресета: %w", err)
	}
	if p.Name == "" {
		p.Name = fallbackName
	}
	p.Name = strings.ToLower(p.Name)
	if p.Mod == "" {
		p.Mod = "custom"
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// ReadFile читает пресет из файла; имя по умолчанию: имя файла без расширения
func ReadFile(path string) (*OreProperties, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	base := filepath.Base(path)
	return Parse(data, strings.TrimSuffix(base, filepath.Ext(base)))
}
