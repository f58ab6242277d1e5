package world

import (
	"github.com/annel0/voxel-engine/internal/vec"
)

// ChunkState описывает состояние загрузки чанка.
type ChunkState uint8

const (
	// ChunkUnloaded — чанк не загружен. Начальное и конечное состояние;
	// записи с этим состоянием не хранятся в трекере.
	ChunkUnloaded ChunkState = iota

	// ChunkLoading — чанк загружается или генерируется в фоновой задаче.
	ChunkLoading

	// ChunkLoaded — чанк загружен и готов к использованию.
	ChunkLoaded

	// ChunkUnloading — чанк выгружается.
	ChunkUnloading
)

// String возвращает строковое представление состояния.
func (s ChunkState) String() string {
	switch s {
	case ChunkUnloaded:
		return "Unloaded"
	case ChunkLoading:
		return "Loading"
	case ChunkLoaded:
		return "Loaded"
	case ChunkUnloading:
		return "Unloading"
	default:
		return "Unknown"
	}
}

// ChunkStates отслеживает состояния загрузки чанков одного мира.
// Структурно повторяет иерархию регион/чанк хранилища VoxelWorld, но вместо
// данных блоков хранит ChunkState на каждый чанк: координата чанка играет
// роль "блока" в разреженном индексе. Отсутствующая запись означает
// ChunkUnloaded; запись ChunkUnloaded немедленно вытесняется, а полностью
// выгруженный регион удаляется (то же правило, что и для пустых чанков
// данных).
type ChunkStates struct {
	index *VoxelWorld[ChunkState]
}

// NewChunkStates создает пустой трекер состояний.
func NewChunkStates() *ChunkStates {
	return &ChunkStates{index: NewVoxelWorld[ChunkState]()}
}

// GetState возвращает состояние чанка по его координатам.
// Для неотслеживаемого чанка возвращается ChunkUnloaded.
func (cs *ChunkStates) GetState(chunkCoords vec.Vec3) ChunkState {
	return cs.index.Get(chunkCoords)
}

// SetState изменяет состояние чанка. Любое состояние может быть установлено
// из любого другого: осмысленность переходов обеспечивает планировщик
// стриминга, а не трекер.
func (cs *ChunkStates) SetState(chunkCoords vec.Vec3, state ChunkState) {
	cs.index.Set(chunkCoords, state)
}

// ForEach обходит все отслеживаемые чанки (состояние != ChunkUnloaded)
// в детерминированном порядке.
func (cs *ChunkStates) ForEach(fn func(chunkCoords vec.Vec3, state ChunkState)) {
	cs.index.ForEach(fn)
}

// TrackedCount возвращает количество отслеживаемых чанков.
func (cs *ChunkStates) TrackedCount() int {
	return cs.index.Len()
}

// RegionCount возвращает количество выделенных регионов трекера.
func (cs *ChunkStates) RegionCount() int {
	return cs.index.RegionCount()
}
