package gen

import (
	"context"

	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/mesh"
	"github.com/annel0/voxel-engine/internal/metrics"
	"github.com/annel0/voxel-engine/internal/streaming"
	"github.com/annel0/voxel-engine/internal/world"
)

// Populator — потребитель событий стриминга для одного мира: на запрос
// загрузки генерирует чанк и помечает его Loaded, на запрос выгрузки
// очищает данные чанка и снимает его с отслеживания.
type Populator struct {
	worldID   streaming.WorldID
	generator *TerrainGenerator
	shapes    *world.VoxelWorld[mesh.BlockShape]
	ids       *world.VoxelWorld[BlockID]
	states    *world.ChunkStates
	sink      *streaming.ChannelSink
}

// NewPopulator создает популятор мира worldID, читающий события из sink.
func NewPopulator(
	worldID streaming.WorldID,
	generator *TerrainGenerator,
	shapes *world.VoxelWorld[mesh.BlockShape],
	ids *world.VoxelWorld[BlockID],
	states *world.ChunkStates,
	sink *streaming.ChannelSink,
) *Populator {
	return &Populator{
		worldID:   worldID,
		generator: generator,
		shapes:    shapes,
		ids:       ids,
		states:    states,
		sink:      sink,
	}
}

// Run обрабатывает события до отмены контекста. Запускается отдельной
// горутиной; генерация идет вне тика планировщика, поэтому долгие загрузки
// растягиваются на несколько тиков, не блокируя его.
func (p *Populator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-p.sink.LoadCh:
			p.handleLoad(ev)
		case ev := <-p.sink.UnloadCh:
			p.handleUnload(ev)
		}
	}
}

func (p *Populator) handleLoad(ev streaming.LoadChunkEvent) {
	if ev.World != p.worldID {
		return
	}

	p.generator.PopulateChunk(ev.ChunkCoords, p.shapes, p.ids)
	p.states.SetState(ev.ChunkCoords, world.ChunkLoaded)
	metrics.GeneratedChunks.Inc()
	logging.Trace("Чанк %v сгенерирован и загружен", ev.ChunkCoords)
}

func (p *Populator) handleUnload(ev streaming.UnloadChunkEvent) {
	if ev.World != p.worldID {
		return
	}

	p.shapes.ClearChunk(ev.ChunkCoords)
	p.ids.ClearChunk(ev.ChunkCoords)
	p.states.SetState(ev.ChunkCoords, world.ChunkUnloaded)
	logging.Trace("Чанк %v выгружен", ev.ChunkCoords)
}

// DrainOnce синхронно обрабатывает все события, накопленные в каналах к
// текущему моменту. Удобно в тестах и в однопоточном цикле симуляции.
func (p *Populator) DrainOnce() {
	for {
		select {
		case ev := <-p.sink.LoadCh:
			p.handleLoad(ev)
		case ev := <-p.sink.UnloadCh:
			p.handleUnload(ev)
		default:
			return
		}
	}
}
