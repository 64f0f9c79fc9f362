package properties

import "errors"

var (
	// ErrMissingName пресет без имени
	ErrMissingName = errors.New("не указано имя пресета")
	// ErrSelfReference пресет генерирует сам себя внутри своих жил
	ErrSelfReference = errors.New("пресет ссылается сам на себя")
	// ErrDuplicateEntry одна и та же пара (пресет, блок) в нескольких записях
	ErrDuplicateEntry = errors.New("повторяющаяся запись блоков")
	// ErrInvalidEntry запись блоков не в формате "<руды> <блоки>"
	ErrInvalidEntry = errors.New("некорректная запись блоков")
)
