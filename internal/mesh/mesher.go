package mesh

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/voxel-engine/internal/metrics"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
)

// ChunkMesh — треугольный меш одного чанка: параллельные массивы вершин,
// нормалей и UV-координат плюс индексный массив (triangle list). Меш
// принадлежит запросившему генерацию вызывающему и ядром не удерживается.
type ChunkMesh struct {
	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	UVs      []mgl32.Vec2
	Indices  []uint16
}

// quadUVs — углы UV-развертки квада.
var quadUVs = [4]mgl32.Vec2{
	{0, 0},
	{0, 1},
	{1, 1},
	{1, 0},
}

// AppendQuad добавляет квад из двух треугольников: четыре вершины с общей
// нормалью и шесть индексов v,v+1,v+2,v,v+2,v+3 от текущего количества
// вершин на момент добавления.
func (m *ChunkMesh) AppendQuad(v0, v1, v2, v3 mgl32.Vec3, normal mgl32.Vec3) {
	base := uint16(len(m.Vertices))
	m.Indices = append(m.Indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)

	m.Vertices = append(m.Vertices, v0, v1, v2, v3)
	m.Normals = append(m.Normals, normal, normal, normal, normal)
	m.UVs = append(m.UVs, quadUVs[0], quadUVs[1], quadUVs[2], quadUVs[3])

	metrics.MeshQuads.Inc()
}

// QuadCount возвращает количество квадов в меше.
func (m *ChunkMesh) QuadCount() int {
	return len(m.Vertices) / 4
}

// haloSize — сторона кубоида формы с ореолом в один блок вокруг чанка.
const haloSize = 18

// neighborChecks — шесть направлений осмотра соседей и флаг грани,
// перекрываемой с этой стороны.
var neighborChecks = [6]struct {
	offset vec.Vec3
	flag   BlockOcclusion
}{
	{vec.Vec3{X: -1}, OcclusionNegX},
	{vec.Vec3{X: 1}, OcclusionPosX},
	{vec.Vec3{Y: -1}, OcclusionNegY},
	{vec.Vec3{Y: 1}, OcclusionPosY},
	{vec.Vec3{Z: -1}, OcclusionNegZ},
	{vec.Vec3{Z: 1}, OcclusionPosZ},
}

// GenerateChunkMesh строит меш чанка по данным форм блоков из мира shapes.
//
// Формы читаются одним пакетным запросом кубоида 18x18x18 — чанк плюс ореол
// в один блок во все стороны, чтобы решения о перекрытии на границах чанка
// видели содержимое соседних чанков. Грань блока перекрыта, если сосед с
// этой стороны перекрывает зеркальную грань (его +X скрывает наш -X и т.д.).
//
// Позиции вершин задаются в локальных координатах чанка; трансляцию к
// мировым координатам выполняет рендерер. Частичных обновлений нет: любое
// изменение блока требует перегенерации меша всего чанка.
func GenerateChunkMesh(chunkCoords vec.Vec3, shapes *world.VoxelWorld[BlockShape]) *ChunkMesh {
	origin := chunkCoords.ToBlockCoords()
	halo := vec.Box3FromSize(origin.SubScalar(1), vec.Vec3{X: haloSize, Y: haloSize, Z: haloSize})
	shapeData := shapes.GetRegion(halo)

	return generateFromHalo(origin, halo, shapeData)
}

// GenerateChunkMeshFromView строит меш чанка из заранее отфильтрованного
// рабочего набора чанков. Если в наборе нет самого чанка или любого из его
// соседей, перекрываемых ореолом, возвращается world.ErrChunkNotPresent.
func GenerateChunkMeshFromView(chunkCoords vec.Vec3, view *world.ChunkView[BlockShape]) (*ChunkMesh, error) {
	origin := chunkCoords.ToBlockCoords()
	halo := vec.Box3FromSize(origin.SubScalar(1), vec.Vec3{X: haloSize, Y: haloSize, Z: haloSize})
	shapeData, err := view.GetRegion(halo)
	if err != nil {
		return nil, err
	}

	return generateFromHalo(origin, halo, shapeData), nil
}

func generateFromHalo(origin vec.Vec3, halo vec.Box3, shapeData []BlockShape) *ChunkMesh {
	start := time.Now()
	m := &ChunkMesh{}

	chunkBox := vec.Box3FromSize(origin, vec.Vec3{X: 16, Y: 16, Z: 16})
	chunkBox.ForEach(func(pos vec.Vec3) {
		blockIndex, _ := halo.PointToIndex(pos)
		shape := shapeData[blockIndex]

		if shape.Occlusion().Contains(OcclusionInner) {
			// Полностью самоперекрытый блок (пустой) пропускается целиком
			return
		}

		var occlusion BlockOcclusion
		for _, check := range neighborChecks {
			neighborIndex, _ := halo.PointToIndex(pos.Add(check.offset))
			neighbor := shapeData[neighborIndex]
			if neighbor.Occlusion().Contains(check.flag.OppositeFace()) {
				occlusion |= check.flag
			}
		}

		local := pos.Sub(origin)
		shape.AppendToMesh(m, occlusion, mgl32.Vec3{float32(local.X), float32(local.Y), float32(local.Z)})
	})

	metrics.MeshBuildDuration.Observe(time.Since(start).Seconds())
	return m
}
