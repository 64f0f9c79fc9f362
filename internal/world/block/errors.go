package block

import "errors"

var (
	// ErrPropertyConflict два разных свойства с одинаковым именем
	ErrPropertyConflict = errors.New("конфликт свойств блока")
	// ErrUnknownProperty свойство отсутствует в определении состояния
	ErrUnknownProperty = errors.New("неизвестное свойство")
	// ErrInvalidValue значение не входит в допустимые значения свойства
	ErrInvalidValue = errors.New("недопустимое значение свойства")
	// ErrStateAbsent в позиции нет состояния блока (чанк выгружен или удален)
	ErrStateAbsent = errors.New("состояние блока отсутствует")
	// ErrDuplicateBlock блок с таким именем уже зарегистрирован
	ErrDuplicateBlock = errors.New("блок уже зарегистрирован")
)
