package vec

import "math"

// Vec3 представляет трехмерный вектор с целочисленными координатами блока.
// Координаты не ограничены: мир практически бесконечен во все стороны.
type Vec3 struct {
	X int
	Y int
	Z int
}

// Vec3Float представляет трехмерный вектор с плавающими координатами
// (позиции сущностей в мире).
type Vec3Float struct {
	X float64
	Y float64
	Z float64
}

// ToChunkCoords преобразует координаты блока в координаты чанка.
// Арифметический сдвиг вправо корректно работает и для отрицательных
// координат: блок -1 принадлежит чанку -1, а не чанку 0.
func (v Vec3) ToChunkCoords() Vec3 {
	return Vec3{X: v.X >> 4, Y: v.Y >> 4, Z: v.Z >> 4} // Деление на 16 с округлением вниз
}

// ToRegionCoords преобразует координаты чанка в координаты региона
// (регион — куб 16x16x16 чанков).
func (v Vec3) ToRegionCoords() Vec3 {
	return Vec3{X: v.X >> 4, Y: v.Y >> 4, Z: v.Z >> 4}
}

// ToBlockCoords преобразует координаты чанка в координаты его первого блока.
func (v Vec3) ToBlockCoords() Vec3 {
	return Vec3{X: v.X << 4, Y: v.Y << 4, Z: v.Z << 4}
}

// LocalInChunk возвращает локальные координаты внутри чанка (диапазон [0,16)).
func (v Vec3) LocalInChunk() Vec3 {
	return Vec3{X: v.X & 0xF, Y: v.Y & 0xF, Z: v.Z & 0xF}
}

// CubeIndex возвращает линейный индекс внутри куба со стороной 16.
// Координаты должны быть уже локальными (замаскированными в [0,16)).
// Единое соглашение для хранилища, трекера состояний и мешера.
func (v Vec3) CubeIndex() int {
	return v.X*256 + v.Y*16 + v.Z
}

// Add складывает два вектора.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub вычитает другой вектор.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// AddScalar прибавляет скаляр ко всем компонентам.
func (v Vec3) AddScalar(n int) Vec3 {
	return Vec3{X: v.X + n, Y: v.Y + n, Z: v.Z + n}
}

// SubScalar вычитает скаляр из всех компонент.
func (v Vec3) SubScalar(n int) Vec3 {
	return Vec3{X: v.X - n, Y: v.Y - n, Z: v.Z - n}
}

// Equals проверяет равенство векторов.
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Less задает лексикографический порядок (X, затем Y, затем Z).
// Используется для детерминированных обходов разреженных структур.
func (v Vec3) Less(other Vec3) bool {
	if v.X != other.X {
		return v.X < other.X
	}
	if v.Y != other.Y {
		return v.Y < other.Y
	}
	return v.Z < other.Z
}

// ToVec3 округляет плавающие координаты вниз до координат блока.
// math.Floor обязателен: позиция -4.7 находится в блоке -5.
func (v Vec3Float) ToVec3() Vec3 {
	return Vec3{
		X: int(math.Floor(v.X)),
		Y: int(math.Floor(v.Y)),
		Z: int(math.Floor(v.Z)),
	}
}

// DistanceTo вычисляет евклидово расстояние до другой точки.
func (v Vec3Float) DistanceTo(other Vec3Float) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
