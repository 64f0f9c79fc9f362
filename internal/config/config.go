package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации.
type Config struct {
	Variants VariantsConfig `yaml:"variants"`
	Presets  PresetsConfig  `yaml:"presets"`
	Blocks   BlocksConfig   `yaml:"blocks"`
	World    WorldConfig    `yaml:"world"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	LogLevel string         `yaml:"log_level"`
}

// VariantsConfig управляет поведением вариантов руд
type VariantsConfig struct {
	BgImitation            bool `yaml:"bg_imitation"`
	DenseDropMultiplier    int  `yaml:"dense_drop_multiplier"`
	DenseDropMultiplierMin int  `yaml:"dense_drop_multiplier_min"`
	DenseXPMultiplier      int  `yaml:"dense_xp_multiplier"`
	RandomDropCount        bool `yaml:"random_drop_count"`
	VariantsDrop           bool `yaml:"variants_drop"`
	VariantsSilkTouch      bool `yaml:"variants_silk_touch"`
	TranslucentTextures    bool `yaml:"translucent_textures"`
}

// PresetsConfig описывает, откуда и какие пресеты руд загружать
type PresetsConfig struct {
	Dir           string   `yaml:"dir"`
	IgnoreInvalid bool     `yaml:"ignore_invalid"`
	Enabled       []string `yaml:"enabled"`  // если пусто, разрешены все
	Disabled      []string `yaml:"disabled"` // имеет приоритет над Enabled
}

// BlocksConfig список записей "руды блоки" и группы для них
type BlocksConfig struct {
	Entries           []string            `yaml:"entries"`
	TestForDuplicates bool                `yaml:"test_for_duplicates"`
	PropertyGroups    map[string][]string `yaml:"property_groups"`
	BlockGroups       map[string][]string `yaml:"block_groups"`
}

// WorldConfig параметры хост-мира
type WorldConfig struct {
	Seed            int64  `yaml:"seed"`
	RandomTickSpeed int    `yaml:"random_tick_speed"`
	DataDir         string `yaml:"data_dir"`
	Radius          int    `yaml:"radius_chunks"`
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Port int `yaml:"port"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Variants: VariantsConfig{
			BgImitation:            true,
			DenseDropMultiplier:    2,
			DenseDropMultiplierMin: 1,
			DenseXPMultiplier:      2,
			VariantsSilkTouch:      true,
		},
		Presets: PresetsConfig{
			Dir: "assets/presets",
		},
		Blocks: BlocksConfig{
			Entries:           []string{"default default"},
			TestForDuplicates: true,
			PropertyGroups: map[string][]string{
				"default": {"coal_ore", "iron_ore", "redstone_ore"},
			},
			BlockGroups: map[string][]string{
				"default": {"stone", "dirt", "sand"},
			},
		},
		World: WorldConfig{
			Seed:            12345,
			RandomTickSpeed: 3,
			DataDir:         "data",
			Radius:          1,
		},
		LogLevel: "info",
	}
}

// OreEnabled проверяет, разрешен ли пресет с указанным именем
func (p *PresetsConfig) OreEnabled(name string) bool {
	for _, n := range p.Disabled {
		if n == name {
			return false
		}
	}
	if len(p.Enabled) == 0 {
		return true
	}
	for _, n := range p.Enabled {
		if n == name {
			return true
		}
	}
	return false
}

// Validate проверяет значения, которые нельзя исправить молча
func (c *Config) Validate() error {
	if c.Variants.DenseDropMultiplier < 0 {
		return fmt.Errorf("dense_drop_multiplier не может быть отрицательным: %d", c.Variants.DenseDropMultiplier)
	}
	if c.Variants.DenseDropMultiplierMin < 0 {
		return fmt.Errorf("dense_drop_multiplier_min не может быть отрицательным: %d", c.Variants.DenseDropMultiplierMin)
	}
	if c.World.RandomTickSpeed < 0 {
		return fmt.Errorf("random_tick_speed не может быть отрицательным: %d", c.World.RandomTickSpeed)
	}
	return nil
}

// GetMetricsPort возвращает порт метрик с поддержкой fallback значений
func (m *MetricsConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(m.Port, "OSV_METRICS_PORT", 2112)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	// Если порт задан в конфиге и больше 0, используем его
	if configPort > 0 {
		return configPort
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	// Используем дефолтное значение
	return defaultPort
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV OSV_CONFIG или возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("OSV_CONFIG")
		if path == "" {
			return cfg, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
