package properties

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/annel0/stone-variants/internal/config"
	"github.com/annel0/stone-variants/internal/logging"
)

// TutorialName файл с описанием формата, который никогда не загружается
const TutorialName = "TUTORIAL.yaml"

// validExtensions расширения файлов пресетов
var validExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
}

// Collect обходит dir рекурсивно и читает каждый подходящий файл через read.
// read возвращает false, если файл корректен, но должен быть пропущен.
// Ошибка чтения файла пропускается с записью в лог при ignoreInvalid и
// прерывает обход иначе.
func Collect[V any](dir string, ignoreInvalid bool, read func(path string) (V, bool, error), key func(V) string) (map[string]V, error) {
	out := make(map[string]V)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !validPreset(d.Name()) {
			return nil
		}
		v, ok, err := read(path)
		if err != nil {
			if ignoreInvalid {
				logging.LogError("Пропускаем %s из-за ошибки: %v", d.Name(), err)
				return nil
			}
			return fmt.Errorf("ошибка чтения %s: %w", d.Name(), err)
		}
		if ok {
			out[key(v)] = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func validPreset(name string) bool {
	if name == TutorialName {
		return false
	}
	return validExtensions[strings.ToLower(filepath.Ext(name))]
}

// LoadPresets загружает все разрешенные конфигурацией пресеты руд
func LoadPresets(cfg config.PresetsConfig) (map[string]*OreProperties, error) {
	read := func(path string) (*OreProperties, bool, error) {
		logging.LogInfo("Проверяем: %s", filepath.Base(path))
		p, err := ReadFile(path)
		if err != nil {
			return nil, false, err
		}
		if !cfg.OreEnabled(p.Name) {
			logging.LogInfo("Пропускаем %s: пресет отключен", p.Name)
			return nil, false, nil
		}
		logging.LogInfo("Загружен пресет руды: %s", p.Name)
		return p, true, nil
	}
	return Collect(cfg.Dir, cfg.IgnoreInvalid, read, func(p *OreProperties) string { return p.Name })
}
