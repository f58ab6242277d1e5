package world

import (
	"errors"
	"fmt"

	"github.com/annel0/voxel-engine/internal/vec"
)

// ErrChunkNotPresent возвращается при обращении к чанку, отсутствующему в
// рабочем наборе представления. В отличие от чтения разреженного хранилища
// (отсутствие — не ошибка), здесь отсутствие чанка означает нарушение
// контракта вызывающей стороной и не должно тихо подменяться значением по
// умолчанию.
var ErrChunkNotPresent = errors.New("chunk is not present in the working set")

// ChunkView — заранее отфильтрованное представление мира: набор снимков
// чанков, переданный коллаборатору, который работает не с полным миром,
// а с частичным рабочим набором.
type ChunkView[T comparable] struct {
	chunks map[vec.Vec3]*[4096]T
}

// NewChunkView создает пустое представление.
func NewChunkView[T comparable]() *ChunkView[T] {
	return &ChunkView[T]{chunks: make(map[vec.Vec3]*[4096]T)}
}

// AddChunk добавляет снимок чанка в рабочий набор.
func (v *ChunkView[T]) AddChunk(chunkCoords vec.Vec3, blocks [4096]T) {
	v.chunks[chunkCoords] = &blocks
}

// AddFromWorld копирует из мира все чанки, перекрывающие кубоид chunkBox
// (в координатах чанков). Невыделенные чанки добавляются нулевыми снимками:
// рабочий набор фиксирует объем, а не только занятые чанки.
func (v *ChunkView[T]) AddFromWorld(w *VoxelWorld[T], chunkBox vec.Box3) {
	chunkBox.ForEach(func(chunkCoords vec.Vec3) {
		blocks, _ := w.SnapshotChunk(chunkCoords)
		v.chunks[chunkCoords] = &blocks
	})
}

// GetBlock возвращает значение блока из рабочего набора.
// Если чанк блока не входит в набор, возвращается ErrChunkNotPresent.
func (v *ChunkView[T]) GetBlock(pos vec.Vec3) (T, error) {
	chunk, ok := v.chunks[pos.ToChunkCoords()]
	if !ok {
		var zero T
		return zero, fmt.Errorf("block %v: %w", pos, ErrChunkNotPresent)
	}
	return chunk[pos.LocalInChunk().CubeIndex()], nil
}

// GetRegion выполняет пакетное чтение кубоида из рабочего набора в том же
// построчном порядке, что и VoxelWorld.GetRegion. Если какой-либо чанк,
// перекрывающий кубоид, отсутствует в наборе, возвращается
// ErrChunkNotPresent.
func (v *ChunkView[T]) GetRegion(volume vec.Box3) ([]T, error) {
	data := make([]T, volume.Count())

	chunkBox := vec.Box3FromPoints(
		volume.Min.ToChunkCoords(),
		volume.Max.ToChunkCoords(),
	)

	var missing error
	chunkBox.ForEach(func(chunkCoords vec.Vec3) {
		if missing != nil {
			return
		}
		chunk, ok := v.chunks[chunkCoords]
		if !ok {
			missing = fmt.Errorf("chunk %v: %w", chunkCoords, ErrChunkNotPresent)
			return
		}

		chunkVolume := vec.Box3FromSize(chunkCoords.ToBlockCoords(), vec.Vec3{X: 16, Y: 16, Z: 16})
		overlap, ok := chunkVolume.Intersect(volume)
		if !ok {
			return
		}
		overlap.ForEach(func(block vec.Vec3) {
			dataIndex, _ := volume.PointToIndex(block)
			data[dataIndex] = chunk[block.LocalInChunk().CubeIndex()]
		})
	})

	if missing != nil {
		return nil, missing
	}
	return data, nil
}

// Len возвращает количество чанков в рабочем наборе.
func (v *ChunkView[T]) Len() int {
	return len(v.chunks)
}
