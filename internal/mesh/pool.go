package mesh

import (
	"runtime"
	"sync"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
)

// BuildPool распределяет генерацию мешей нескольких чанков по фиксированному
// числу воркеров. Каждый чанк обрабатывается независимо; воркеры только
// читают мир, поэтому могут работать конкурентно друг с другом, но не
// должны перекрываться с записью в те же чанки.
type BuildPool struct {
	workers int
}

// NewBuildPool создает пул. При workers <= 0 используется число CPU.
func NewBuildPool(workers int) *BuildPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &BuildPool{workers: workers}
}

// BuildMeshes строит меши для перечисленных чанков. Результат i-й позиции
// соответствует coords[i], поэтому порядок детерминирован независимо от
// порядка завершения воркеров.
func (p *BuildPool) BuildMeshes(shapes *world.VoxelWorld[BlockShape], coords []vec.Vec3) []*ChunkMesh {
	results := make([]*ChunkMesh, len(coords))
	if len(coords) == 0 {
		return results
	}

	workers := p.workers
	if workers > len(coords) {
		workers = len(coords)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = GenerateChunkMesh(coords[idx], shapes)
			}
		}()
	}

	for idx := range coords {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	return results
}
