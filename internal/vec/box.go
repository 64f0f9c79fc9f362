package vec

// Box ограничивающий параллелепипед, обе границы включительно
type Box struct {
	Min Vec3
	Max Vec3
}

// NewBox строит Box по двум углам в любом порядке
func NewBox(a, b Vec3) Box {
	return Box{
		Min: Vec3{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)},
		Max: Vec3{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)},
	}
}

// Contains проверяет, лежит ли позиция внутри Box
func (b Box) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ChunkBox возвращает Box колонки чанка между minY и maxY
func ChunkBox(coords Vec2, minY, maxY int) Box {
	x, z := coords.X<<4, coords.Y<<4
	return Box{
		Min: Vec3{X: x, Y: minY, Z: z},
		Max: Vec3{X: x + 15, Y: maxY, Z: z + 15},
	}
}
