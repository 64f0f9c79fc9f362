package vec

// Direction одна из шести граней блока
type Direction uint8

const (
	Down Direction = iota
	Up
	North
	South
	West
	East
)

// Directions все направления в порядке обхода соседей
var Directions = [6]Direction{Down, Up, North, South, West, East}

// Vec возвращает единичный сдвиг для направления
func (d Direction) Vec() Vec3 {
	switch d {
	case Down:
		return Vec3{Y: -1}
	case Up:
		return Vec3{Y: 1}
	case North:
		return Vec3{Z: -1}
	case South:
		return Vec3{Z: 1}
	case West:
		return Vec3{X: -1}
	case East:
		return Vec3{X: 1}
	}
	return Vec3{}
}

// Opposite возвращает противоположное направление
func (d Direction) Opposite() Direction {
	switch d {
	case Down:
		return Up
	case Up:
		return Down
	case North:
		return South
	case South:
		return North
	case West:
		return East
	default:
		return West
	}
}

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Up:
		return "up"
	case North:
		return "north"
	case South:
		return "south"
	case West:
		return "west"
	case East:
		return "east"
	}
	return "unknown"
}
