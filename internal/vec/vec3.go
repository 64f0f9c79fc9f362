package vec

import "fmt"

// Vec3 представляет позицию блока в мире (Y: высота)
type Vec3 struct {
	X int
	Y int
	Z int
}

// Zero нулевая позиция
var Zero = Vec3{}

// ToVec2 возвращает колонку (X, Z), в которой лежит позиция
func (v Vec3) ToVec2() Vec2 {
	return Vec2{X: v.X, Y: v.Z}
}

// ToChunkCoords возвращает координаты чанка-колонки 16x16
func (v Vec3) ToChunkCoords() Vec2 {
	return v.ToVec2().ToChunkCoords()
}

// LocalInChunk возвращает позицию внутри чанка (X и Z по модулю 16, Y без изменений)
func (v Vec3) LocalInChunk() Vec3 {
	return Vec3{X: v.X & 0xF, Y: v.Y, Z: v.Z & 0xF}
}

// DistanceTo возвращает квадрат расстояния до другого вектора
func (v Vec3) DistanceTo(other Vec3) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return float64(dx*dx + dy*dy + dz*dz)
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Offset сдвигает позицию на один блок в направлении d
func (v Vec3) Offset(d Direction) Vec3 {
	return v.Add(d.Vec())
}

// Neighbors возвращает шесть соседних позиций в порядке Directions
func (v Vec3) Neighbors() [6]Vec3 {
	var out [6]Vec3
	for i, d := range Directions {
		out[i] = v.Offset(d)
	}
	return out
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}
