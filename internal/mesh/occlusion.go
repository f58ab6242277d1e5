package mesh

// BlockOcclusion — битовые флаги перекрытия граней блока.
// Установленный флаг означает, что соответствующая грань скрыта.
type BlockOcclusion uint8

const (
	// OcclusionInner — внутренность самого блока: блок скрывает сам себя
	// (например, пустой блок не имеет видимых граней).
	OcclusionInner BlockOcclusion = 1 << iota

	// OcclusionPosX — грань блока на положительной оси X.
	OcclusionPosX

	// OcclusionNegX — грань блока на отрицательной оси X.
	OcclusionNegX

	// OcclusionPosY — грань блока на положительной оси Y.
	OcclusionPosY

	// OcclusionNegY — грань блока на отрицательной оси Y.
	OcclusionNegY

	// OcclusionPosZ — грань блока на положительной оси Z.
	OcclusionPosZ

	// OcclusionNegZ — грань блока на отрицательной оси Z.
	OcclusionNegZ
)

// OcclusionAllFaces — все шесть направленных граней без внутренности.
const OcclusionAllFaces = OcclusionPosX | OcclusionNegX |
	OcclusionPosY | OcclusionNegY |
	OcclusionPosZ | OcclusionNegZ

// Contains проверяет, установлены ли все флаги из flag.
func (o BlockOcclusion) Contains(flag BlockOcclusion) bool {
	return o&flag == flag
}

// OppositeFace возвращает зеркальное значение перекрытия: положительное
// направление каждой оси меняется с отрицательным, внутренность остается
// без изменений. Преобразование симметрично по битам: двойное применение
// возвращает исходное значение.
func (o BlockOcclusion) OppositeFace() BlockOcclusion {
	result := o & OcclusionInner

	if o.Contains(OcclusionPosX) {
		result |= OcclusionNegX
	}
	if o.Contains(OcclusionNegX) {
		result |= OcclusionPosX
	}
	if o.Contains(OcclusionPosY) {
		result |= OcclusionNegY
	}
	if o.Contains(OcclusionNegY) {
		result |= OcclusionPosY
	}
	if o.Contains(OcclusionPosZ) {
		result |= OcclusionNegZ
	}
	if o.Contains(OcclusionNegZ) {
		result |= OcclusionPosZ
	}

	return result
}
