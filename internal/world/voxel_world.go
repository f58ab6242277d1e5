package world

import (
	"sort"
	"sync"

	"github.com/annel0/voxel-engine/internal/vec"
)

// voxelChunk хранит плотный массив значений для куба 16x16x16 блоков.
// Счетчик filled отслеживает количество ячеек с незначением по умолчанию,
// чтобы опустевший чанк можно было удалить за O(1).
type voxelChunk[T comparable] struct {
	blocks [4096]T
	filled int
}

// voxelRegion владеет до 4096 опциональными чанками (куб 16x16x16 чанков).
// Регион существует в разреженном индексе только пока владеет хотя бы
// одним чанком.
type voxelRegion[T comparable] struct {
	chunks    [4096]*voxelChunk[T]
	allocated int
}

// VoxelWorld — разреженное двухуровневое хранилище значений типа T по
// целочисленным 3D-координатам. Чтение несуществующего блока возвращает
// нулевое значение T; запись всегда возможна и лениво выделяет чанк и регион.
//
// Регионы индексируются хеш-картой по координатам региона. Один писатель,
// читатели могут работать конкурентно (sync.RWMutex).
type VoxelWorld[T comparable] struct {
	mu      sync.RWMutex
	regions map[vec.Vec3]*voxelRegion[T]
}

// NewVoxelWorld создает пустой мир.
func NewVoxelWorld[T comparable]() *VoxelWorld[T] {
	return &VoxelWorld[T]{
		regions: make(map[vec.Vec3]*voxelRegion[T]),
	}
}

// Get возвращает значение блока по мировым координатам.
// Для блока в невыделенном чанке или регионе возвращается нулевое значение T.
func (w *VoxelWorld[T]) Get(pos vec.Vec3) T {
	chunkCoords := pos.ToChunkCoords()
	chunkIndex := chunkCoords.LocalInChunk().CubeIndex()
	blockIndex := pos.LocalInChunk().CubeIndex()

	w.mu.RLock()
	defer w.mu.RUnlock()

	region, ok := w.regions[chunkCoords.ToRegionCoords()]
	if !ok {
		var zero T
		return zero
	}
	chunk := region.chunks[chunkIndex]
	if chunk == nil {
		var zero T
		return zero
	}
	return chunk.blocks[blockIndex]
}

// Set записывает значение блока по мировым координатам.
// Отсутствующие регион и чанк выделяются лениво; запись нулевого значения в
// невыделенный чанк не выделяет его. Чанк, вернувшийся к полностью нулевому
// состоянию, удаляется, а опустевший регион — вместе с ним.
func (w *VoxelWorld[T]) Set(pos vec.Vec3, value T) {
	var zero T
	chunkCoords := pos.ToChunkCoords()
	regionCoords := chunkCoords.ToRegionCoords()
	chunkIndex := chunkCoords.LocalInChunk().CubeIndex()
	blockIndex := pos.LocalInChunk().CubeIndex()

	w.mu.Lock()
	defer w.mu.Unlock()

	region, ok := w.regions[regionCoords]
	if !ok {
		if value == zero {
			return
		}
		region = &voxelRegion[T]{}
		w.regions[regionCoords] = region
	}

	chunk := region.chunks[chunkIndex]
	if chunk == nil {
		if value == zero {
			return
		}
		chunk = &voxelChunk[T]{}
		region.chunks[chunkIndex] = chunk
		region.allocated++
	}

	old := chunk.blocks[blockIndex]
	chunk.blocks[blockIndex] = value

	switch {
	case old == zero && value != zero:
		chunk.filled++
	case old != zero && value == zero:
		chunk.filled--
		if chunk.filled == 0 {
			region.chunks[chunkIndex] = nil
			region.allocated--
			if region.allocated == 0 {
				delete(w.regions, regionCoords)
			}
		}
	}
}

// GetRegion выполняет пакетное чтение включающего кубоида блоков.
// Результат возвращается построчно относительно минимального угла кубоида:
// индекс блока равен x*sizeY*sizeZ + y*sizeZ + z.
//
// Внешний цикл идет по чанкам, перекрывающим кубоид: каждый чанк ищется в
// индексе ровно один раз, после чего копируется только пересечение его
// объема с кубоидом. Блоки невыделенных чанков остаются нулевыми.
func (w *VoxelWorld[T]) GetRegion(volume vec.Box3) []T {
	data := make([]T, volume.Count())

	chunkBox := vec.Box3FromPoints(
		volume.Min.ToChunkCoords(),
		volume.Max.ToChunkCoords(),
	)

	w.mu.RLock()
	defer w.mu.RUnlock()

	chunkBox.ForEach(func(chunkCoords vec.Vec3) {
		var chunk *voxelChunk[T]
		if region, ok := w.regions[chunkCoords.ToRegionCoords()]; ok {
			chunk = region.chunks[chunkCoords.LocalInChunk().CubeIndex()]
		}
		if chunk == nil {
			// Нулевые значения уже на месте
			return
		}

		chunkVolume := vec.Box3FromSize(chunkCoords.ToBlockCoords(), vec.Vec3{X: 16, Y: 16, Z: 16})
		overlap, ok := chunkVolume.Intersect(volume)
		if !ok {
			return
		}

		overlap.ForEach(func(block vec.Vec3) {
			dataIndex, _ := volume.PointToIndex(block)
			data[dataIndex] = chunk.blocks[block.LocalInChunk().CubeIndex()]
		})
	})

	return data
}

// ForEach обходит все блоки с ненулевыми значениями в детерминированном
// порядке: регионы по возрастанию координат, внутри региона — по линейному
// индексу чанка и блока.
func (w *VoxelWorld[T]) ForEach(fn func(pos vec.Vec3, value T)) {
	var zero T

	w.mu.RLock()
	defer w.mu.RUnlock()

	keys := make([]vec.Vec3, 0, len(w.regions))
	for coords := range w.regions {
		keys = append(keys, coords)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	for _, regionCoords := range keys {
		region := w.regions[regionCoords]
		for chunkIndex, chunk := range region.chunks {
			if chunk == nil {
				continue
			}
			chunkCoords := regionCoords.ToBlockCoords().Add(cubePoint(chunkIndex))
			origin := chunkCoords.ToBlockCoords()
			for blockIndex := range chunk.blocks {
				if chunk.blocks[blockIndex] == zero {
					continue
				}
				fn(origin.Add(cubePoint(blockIndex)), chunk.blocks[blockIndex])
			}
		}
	}
}

// ClearChunk удаляет чанк целиком, возвращая его объем к значениям по
// умолчанию. Опустевший регион удаляется. Используется при выгрузке чанка.
func (w *VoxelWorld[T]) ClearChunk(chunkCoords vec.Vec3) {
	regionCoords := chunkCoords.ToRegionCoords()
	chunkIndex := chunkCoords.LocalInChunk().CubeIndex()

	w.mu.Lock()
	defer w.mu.Unlock()

	region, ok := w.regions[regionCoords]
	if !ok || region.chunks[chunkIndex] == nil {
		return
	}
	region.chunks[chunkIndex] = nil
	region.allocated--
	if region.allocated == 0 {
		delete(w.regions, regionCoords)
	}
}

// RegionCount возвращает количество выделенных регионов.
func (w *VoxelWorld[T]) RegionCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.regions)
}

// ChunkCount возвращает количество выделенных чанков во всех регионах.
func (w *VoxelWorld[T]) ChunkCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	total := 0
	for _, region := range w.regions {
		total += region.allocated
	}
	return total
}

// Len возвращает количество блоков с ненулевыми значениями.
func (w *VoxelWorld[T]) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	total := 0
	for _, region := range w.regions {
		for _, chunk := range region.chunks {
			if chunk != nil {
				total += chunk.filled
			}
		}
	}
	return total
}

// SnapshotChunk копирует содержимое чанка по его координатам.
// Возвращает false, если чанк не выделен.
func (w *VoxelWorld[T]) SnapshotChunk(chunkCoords vec.Vec3) ([4096]T, bool) {
	chunkIndex := chunkCoords.LocalInChunk().CubeIndex()

	w.mu.RLock()
	defer w.mu.RUnlock()

	region, ok := w.regions[chunkCoords.ToRegionCoords()]
	if !ok {
		var empty [4096]T
		return empty, false
	}
	chunk := region.chunks[chunkIndex]
	if chunk == nil {
		var empty [4096]T
		return empty, false
	}
	return chunk.blocks, true
}

// cubePoint обратен Vec3.CubeIndex: восстанавливает локальные координаты
// из линейного индекса внутри куба со стороной 16.
func cubePoint(index int) vec.Vec3 {
	return vec.Vec3{X: index >> 8, Y: (index >> 4) & 0xF, Z: index & 0xF}
}
