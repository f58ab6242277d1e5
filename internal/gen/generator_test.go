package gen

import (
	"testing"

	"github.com/annel0/voxel-engine/internal/mesh"
	"github.com/annel0/voxel-engine/internal/streaming"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerrainGenerator_Deterministic(t *testing.T) {
	a := NewTerrainGenerator(12345)
	b := NewTerrainGenerator(12345)

	for _, col := range [][2]int{{0, 0}, {100, -50}, {-1000, 7}} {
		assert.Equal(t, a.SurfaceHeight(col[0], col[1]), b.SurfaceHeight(col[0], col[1]),
			"Одинаковый сид должен давать одинаковую высоту в колонке %v", col)
	}
}

func TestTerrainGenerator_PopulateChunk(t *testing.T) {
	g := NewTerrainGenerator(42)
	shapes := world.NewVoxelWorld[mesh.BlockShape]()
	ids := world.NewVoxelWorld[BlockID]()

	chunkCoords := vec.Vec3{X: 0, Y: 0, Z: 0}
	g.PopulateChunk(chunkCoords, shapes, ids)

	// Содержимое согласовано с высотами поверхности
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			surface := g.SurfaceHeight(x, z)
			for y := 0; y < 16; y++ {
				pos := vec.Vec3{X: x, Y: y, Z: z}
				if y < surface {
					require.Equal(t, mesh.ShapeCube, shapes.Get(pos), "Блок %v ниже поверхности", pos)
					require.NotEqual(t, AirBlockID, ids.Get(pos))
				} else {
					require.Equal(t, mesh.ShapeEmpty, shapes.Get(pos), "Блок %v выше поверхности", pos)
				}
			}
			if surface >= 1 && surface <= 16 {
				assert.Equal(t, GrassBlockID, ids.Get(vec.Vec3{X: x, Y: surface - 1, Z: z}),
					"Верхний слой колонки (%d,%d) — трава", x, z)
			}
		}
	}
}

func TestTerrainGenerator_SkyChunkStaysEmpty(t *testing.T) {
	g := NewTerrainGenerator(42)
	shapes := world.NewVoxelWorld[mesh.BlockShape]()
	ids := world.NewVoxelWorld[BlockID]()

	// Чанк на высоте 64+ заведомо выше любого ландшафта
	g.PopulateChunk(vec.Vec3{X: 0, Y: 4, Z: 0}, shapes, ids)

	assert.Equal(t, 0, shapes.ChunkCount(), "Небесный чанк не должен выделять память")
	assert.Equal(t, 0, ids.ChunkCount())
}

func TestPopulator_LoadUnloadCycle(t *testing.T) {
	const worldID streaming.WorldID = 1

	g := NewTerrainGenerator(7)
	shapes := world.NewVoxelWorld[mesh.BlockShape]()
	ids := world.NewVoxelWorld[BlockID]()
	states := world.NewChunkStates()
	sink := streaming.NewChannelSink(64)

	p := NewPopulator(worldID, g, shapes, ids, states, sink)

	chunkCoords := vec.Vec3{X: 0, Y: 0, Z: 0}
	states.SetState(chunkCoords, world.ChunkLoading)
	sink.HandleLoadChunk(streaming.LoadChunkEvent{ChunkCoords: chunkCoords, World: worldID})
	p.DrainOnce()

	assert.Equal(t, world.ChunkLoaded, states.GetState(chunkCoords))
	assert.Greater(t, shapes.Len(), 0, "Наземный чанк должен быть заполнен")

	states.SetState(chunkCoords, world.ChunkUnloading)
	sink.HandleUnloadChunk(streaming.UnloadChunkEvent{ChunkCoords: chunkCoords, World: worldID})
	p.DrainOnce()

	assert.Equal(t, world.ChunkUnloaded, states.GetState(chunkCoords))
	assert.Equal(t, 0, shapes.ChunkCount(), "Данные выгруженного чанка должны быть удалены")
	assert.Equal(t, 0, ids.ChunkCount())
}

func TestPopulator_IgnoresForeignWorld(t *testing.T) {
	g := NewTerrainGenerator(7)
	shapes := world.NewVoxelWorld[mesh.BlockShape]()
	ids := world.NewVoxelWorld[BlockID]()
	states := world.NewChunkStates()
	sink := streaming.NewChannelSink(8)

	p := NewPopulator(1, g, shapes, ids, states, sink)

	sink.HandleLoadChunk(streaming.LoadChunkEvent{ChunkCoords: vec.Vec3{}, World: 2})
	p.DrainOnce()

	assert.Equal(t, world.ChunkUnloaded, states.GetState(vec.Vec3{}))
	assert.Equal(t, 0, shapes.ChunkCount())
}
