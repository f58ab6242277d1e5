package gen

import (
	"github.com/aquilax/go-perlin"

	"github.com/annel0/voxel-engine/internal/mesh"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
)

// BlockID — идентификатор типа блока в мире данных.
// Нулевое значение — воздух: согласуется с семантикой значений по умолчанию.
type BlockID uint16

const (
	AirBlockID BlockID = iota
	StoneBlockID
	DirtBlockID
	GrassBlockID
)

// TerrainGenerator детерминированно заполняет чанки ландшафтом по сиду.
// Высота поверхности берется из двумерного шума Перлина по колонке (X, Z).
type TerrainGenerator struct {
	seed       int64
	noise      *perlin.Perlin
	noiseScale float64 // Масштаб шума: меньше — более пологий ландшафт
	baseHeight float64 // Средняя высота поверхности в блоках
	amplitude  float64 // Размах высот вокруг средней
}

// NewTerrainGenerator создает генератор ландшафта с указанным сидом.
func NewTerrainGenerator(seed int64) *TerrainGenerator {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав

	return &TerrainGenerator{
		seed:       seed,
		noise:      perlin.NewPerlin(alpha, beta, n, seed),
		noiseScale: 0.03,
		baseHeight: 8.0,
		amplitude:  12.0,
	}
}

// SurfaceHeight возвращает высоту поверхности для колонки (x, z).
func (g *TerrainGenerator) SurfaceHeight(x, z int) int {
	// Noise2D возвращает значение в диапазоне [-1, 1]
	noise := g.noise.Noise2D(float64(x)*g.noiseScale, float64(z)*g.noiseScale)
	return int(g.baseHeight + noise*g.amplitude)
}

// PopulateChunk заполняет чанк ландшафтом: формы пишутся в shapes, типы
// блоков — в ids. Блоки ниже поверхности — камень, верхние два слоя —
// земля с травой сверху. Чанки целиком выше поверхности остаются пустыми
// и не выделяют память.
func (g *TerrainGenerator) PopulateChunk(chunkCoords vec.Vec3, shapes *world.VoxelWorld[mesh.BlockShape], ids *world.VoxelWorld[BlockID]) {
	origin := chunkCoords.ToBlockCoords()

	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			surface := g.SurfaceHeight(origin.X+x, origin.Z+z)

			for y := 0; y < 16; y++ {
				worldY := origin.Y + y
				if worldY >= surface {
					continue
				}

				pos := vec.Vec3{X: origin.X + x, Y: worldY, Z: origin.Z + z}
				shapes.Set(pos, mesh.ShapeCube)

				switch {
				case worldY == surface-1:
					ids.Set(pos, GrassBlockID)
				case worldY >= surface-3:
					ids.Set(pos, DirtBlockID)
				default:
					ids.Set(pos, StoneBlockID)
				}
			}
		}
	}
}
