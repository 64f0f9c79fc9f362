package world

import "errors"

var (
	// ErrChunkNotLoaded позиция лежит в невыгруженном чанке
	ErrChunkNotLoaded = errors.New("чанк не загружен")
	// ErrNothingToBreak в позиции нет блока, который можно сломать
	ErrNothingToBreak = errors.New("нечего ломать")
)
