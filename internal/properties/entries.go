package properties

import (
	"fmt"
	"sort"
	"strings"

	"github.com/annel0/stone-variants/internal/config"
	"github.com/annel0/stone-variants/internal/logging"
)

// Entry запись "<группа пресетов> <группа блоков>"
type Entry struct {
	Properties string
	Blocks     string
}

func (e Entry) String() string {
	return fmt.Sprintf("%s -> %s", e.Properties, e.Blocks)
}

// ParseEntry разбирает запись, разделенную запятой или пробелами
func ParseEntry(s string) (Entry, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(fields) != 2 {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidEntry, s)
	}
	return Entry{Properties: fields[0], Blocks: fields[1]}, nil
}

// Pair пресет и фоновый блок, из которых строится один вариант
type Pair struct {
	Preset     *OreProperties
	Background string
}

// Name имя варианта руды
func (p Pair) Name() string {
	return p.Preset.Name + "_" + p.Background
}

// ExpandEntries раскрывает группы всех записей в пары. Пресеты, которых нет в
// presets (отключенные или не найденные), пропускаются.
func ExpandEntries(cfg config.BlocksConfig, presets map[string]*OreProperties) ([]Pair, error) {
	type key struct{ preset, block string }
	owner := make(map[key]int)
	var out []Pair

	for i, raw := range cfg.Entries {
		entry, err := ParseEntry(raw)
		if err != nil {
			return nil, err
		}
		logging.LogInfo("%s корректна. Загружаем...", entry)

		for _, bg := range expandBlocks(cfg, entry.Blocks) {
			for _, name := range expandProperties(cfg, entry.Properties, presets) {
				p, ok := presets[name]
				if !ok {
					logging.LogWarn("Пресет %s из записи %q не загружен", name, raw)
					continue
				}
				k := key{name, bg}
				if prev, seen := owner[k]; seen {
					if prev != i && cfg.TestForDuplicates {
						return nil, fmt.Errorf("%w: %s в %s (записи %d и %d)", ErrDuplicateEntry, name, bg, prev, i)
					}
					continue
				}
				owner[k] = i
				out = append(out, Pair{Preset: p, Background: bg})
			}
		}
	}
	return out, nil
}

func expandProperties(cfg config.BlocksConfig, group string, presets map[string]*OreProperties) []string {
	if group == "all" {
		names := make([]string, 0, len(presets))
		for name := range presets {
			names = append(names, name)
		}
		sort.Strings(names)
		return names
	}
	if names, ok := cfg.PropertyGroups[group]; ok {
		return names
	}
	return []string{group}
}

func expandBlocks(cfg config.BlocksConfig, group string) []string {
	if group == "all" {
		seen := make(map[string]bool)
		var names []string
		for _, members := range cfg.BlockGroups {
			for _, m := range members {
				if !seen[m] {
					seen[m] = true
					names = append(names, m)
				}
			}
		}
		sort.Strings(names)
		return names
	}
	if names, ok := cfg.BlockGroups[group]; ok {
		return names
	}
	return []string{group}
}
