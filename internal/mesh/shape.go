package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BlockShape — классификация формы блока для генерации меша чанка.
// Нулевое значение — пустой блок, что согласуется с семантикой значений
// по умолчанию разреженного хранилища.
type BlockShape uint8

const (
	// ShapeEmpty — пустой блок без визуальной геометрии.
	ShapeEmpty BlockShape = iota

	// ShapeCube — сплошной куб размером один метр.
	ShapeCube

	// ShapeCustom — блок с внешней моделью: геометрия рендерится отдельной
	// сущностью и в меш чанка не попадает.
	ShapeCustom
)

// Occlusion возвращает флаги перекрытия, создаваемые этой формой.
// Установленный флаг означает, что форма скрывает соответствующую грань
// соседа (или саму себя для OcclusionInner).
func (s BlockShape) Occlusion() BlockOcclusion {
	switch s {
	case ShapeCube:
		return OcclusionAllFaces
	case ShapeCustom:
		return 0
	default: // ShapeEmpty
		return OcclusionInner
	}
}

// AppendToMesh добавляет геометрию формы в меш с учетом перекрытых граней.
// pos — локальное смещение блока внутри чанка.
func (s BlockShape) AppendToMesh(m *ChunkMesh, occlusion BlockOcclusion, pos mgl32.Vec3) {
	switch s {
	case ShapeEmpty, ShapeCustom:
		// Пустые блоки не имеют геометрии; внешние модели рендерит
		// отдельный коллаборатор
	case ShapeCube:
		appendCube(m, occlusion, pos)
	}
}

// cubeVerts — таблица вершин единичного куба.
var cubeVerts = [8]mgl32.Vec3{
	{0, 0, 0},
	{0, 0, 1},
	{0, 1, 0},
	{0, 1, 1},
	{1, 0, 0},
	{1, 0, 1},
	{1, 1, 0},
	{1, 1, 1},
}

// cubeFaces — фиксированные четверки индексов вершин на каждую грань куба
// (обход против часовой стрелки при взгляде снаружи) вместе с флагом
// перекрытия и внешней нормалью.
var cubeFaces = [6]struct {
	flag   BlockOcclusion
	verts  [4]int
	normal mgl32.Vec3
}{
	{OcclusionNegX, [4]int{0, 1, 3, 2}, mgl32.Vec3{-1, 0, 0}},
	{OcclusionPosX, [4]int{4, 6, 7, 5}, mgl32.Vec3{1, 0, 0}},
	{OcclusionNegY, [4]int{0, 4, 5, 1}, mgl32.Vec3{0, -1, 0}},
	{OcclusionPosY, [4]int{2, 3, 7, 6}, mgl32.Vec3{0, 1, 0}},
	{OcclusionNegZ, [4]int{0, 2, 6, 4}, mgl32.Vec3{0, 0, -1}},
	{OcclusionPosZ, [4]int{1, 5, 7, 3}, mgl32.Vec3{0, 0, 1}},
}

// appendCube добавляет в меш по одному кваду на каждую неперекрытую грань.
func appendCube(m *ChunkMesh, occlusion BlockOcclusion, pos mgl32.Vec3) {
	for _, face := range cubeFaces {
		if occlusion.Contains(face.flag) {
			continue
		}
		m.AppendQuad(
			pos.Add(cubeVerts[face.verts[0]]),
			pos.Add(cubeVerts[face.verts[1]]),
			pos.Add(cubeVerts[face.verts[2]]),
			pos.Add(cubeVerts[face.verts[3]]),
			face.normal,
		)
	}
}
