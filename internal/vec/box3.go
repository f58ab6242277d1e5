package vec

// Box3 представляет осевой кубоид с включающими углами Min и Max.
// Создавать экземпляры следует через конструкторы, которые нормализуют углы.
type Box3 struct {
	Min Vec3
	Max Vec3
}

// Box3FromPoints создает кубоид по двум противоположным углам.
// Углы могут быть переданы в любом порядке.
func Box3FromPoints(a, b Vec3) Box3 {
	return Box3{
		Min: Vec3{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)},
		Max: Vec3{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)},
	}
}

// Box3FromSize создает кубоид по минимальному углу и размеру вдоль каждой оси.
// Размер должен быть положительным.
func Box3FromSize(minCorner Vec3, size Vec3) Box3 {
	return Box3{
		Min: minCorner,
		Max: Vec3{X: minCorner.X + size.X - 1, Y: minCorner.Y + size.Y - 1, Z: minCorner.Z + size.Z - 1},
	}
}

// Box3Cube создает куб с центром в center и радиусом r чанков/блоков вдоль
// каждой оси (метрика Чебышёва). Радиус 0 дает куб из одной точки.
func Box3Cube(center Vec3, r int) Box3 {
	return Box3{Min: center.SubScalar(r), Max: center.AddScalar(r)}
}

// Size возвращает размер кубоида вдоль каждой оси.
func (b Box3) Size() Vec3 {
	return Vec3{X: b.Max.X - b.Min.X + 1, Y: b.Max.Y - b.Min.Y + 1, Z: b.Max.Z - b.Min.Z + 1}
}

// Count возвращает количество точек в кубоиде.
func (b Box3) Count() int {
	s := b.Size()
	return s.X * s.Y * s.Z
}

// Contains проверяет принадлежность точки кубоиду (границы включаются).
func (b Box3) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// PointToIndex возвращает линейный индекс точки внутри кубоида.
// Порядок построчный относительно Min: x*sizeY*sizeZ + y*sizeZ + z.
// Для точки вне кубоида возвращается false.
func (b Box3) PointToIndex(p Vec3) (int, bool) {
	if !b.Contains(p) {
		return 0, false
	}
	s := b.Size()
	rel := p.Sub(b.Min)
	return rel.X*s.Y*s.Z + rel.Y*s.Z + rel.Z, true
}

// IndexToPoint обратное преобразование линейного индекса в точку кубоида.
func (b Box3) IndexToPoint(index int) Vec3 {
	s := b.Size()
	x := index / (s.Y * s.Z)
	y := (index / s.Z) % s.Y
	z := index % s.Z
	return b.Min.Add(Vec3{X: x, Y: y, Z: z})
}

// ForEach обходит все точки кубоида в фиксированном порядке вложенных осей:
// X внешний цикл, Y средний, Z внутренний. На этот порядок полагаются
// потребители событий стриминга.
func (b Box3) ForEach(fn func(Vec3)) {
	for x := b.Min.X; x <= b.Max.X; x++ {
		for y := b.Min.Y; y <= b.Max.Y; y++ {
			for z := b.Min.Z; z <= b.Max.Z; z++ {
				fn(Vec3{X: x, Y: y, Z: z})
			}
		}
	}
}

// Intersect возвращает пересечение двух кубоидов.
// Если пересечение пусто, возвращается false.
func (b Box3) Intersect(other Box3) (Box3, bool) {
	res := Box3{
		Min: Vec3{X: max(b.Min.X, other.Min.X), Y: max(b.Min.Y, other.Min.Y), Z: max(b.Min.Z, other.Min.Z)},
		Max: Vec3{X: min(b.Max.X, other.Max.X), Y: min(b.Max.Y, other.Max.Y), Z: min(b.Max.Z, other.Max.Z)},
	}
	if res.Min.X > res.Max.X || res.Min.Y > res.Max.Y || res.Min.Z > res.Max.Z {
		return Box3{}, false
	}
	return res, true
}
