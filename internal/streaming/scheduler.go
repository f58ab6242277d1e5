package streaming

import (
	"sort"
	"sync"
	"time"

	"github.com/annel0/voxel-engine/internal/metrics"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
)

// Scheduler управляет стримингом чанков: раз в тик симуляции переводит чанки
// вокруг якорей из Unloaded в Loading, а чанки вне зоны действия всех
// якорей — из Loaded в Unloading, эмитируя соответствующие события.
type Scheduler struct {
	mu     sync.Mutex
	worlds map[WorldID]*world.ChunkStates
	sink   EventSink
}

// NewScheduler создает планировщик с указанным приемником событий.
func NewScheduler(sink EventSink) *Scheduler {
	return &Scheduler{
		worlds: make(map[WorldID]*world.ChunkStates),
		sink:   sink,
	}
}

// RegisterWorld регистрирует трекер состояний мира под идентификатором id.
func (s *Scheduler) RegisterWorld(id WorldID, states *world.ChunkStates) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.worlds[id] = states
}

// States возвращает трекер состояний зарегистрированного мира.
func (s *Scheduler) States(id WorldID) (*world.ChunkStates, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	states, ok := s.worlds[id]
	return states, ok
}

// Tick выполняет один проход стриминга по всем якорям.
//
// Фаза загрузки: для каждого якоря в порядке перечисления обходится
// включающий куб чанков радиусом Radius (X внешняя ось, Y средняя,
// Z внутренняя); каждый чанк в состоянии Unloaded переводится в Loading с
// эмиссией ровно одного LoadChunkEvent. Проверка и установка состояния
// выполняются под общим мьютексом планировщика, поэтому перекрывающиеся
// якоря не могут эмитировать событие для одного чанка дважды.
//
// Фаза выгрузки: чанк в состоянии Loaded, не попадающий в куб MaxRadius ни
// одного якоря своего мира, переводится в Unloading с эмиссией
// UnloadChunkEvent. Кандидаты обходятся в детерминированном порядке трекера.
func (s *Scheduler) Tick(anchors []AnchorPoint) {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadPass(anchors)
	s.unloadPass(anchors)

	tracked := 0
	for _, states := range s.worlds {
		tracked += states.TrackedCount()
	}
	metrics.TrackedChunks.Set(float64(tracked))
	metrics.SchedulerTickDuration.Observe(time.Since(start).Seconds())
}

func (s *Scheduler) loadPass(anchors []AnchorPoint) {
	for _, point := range anchors {
		states, ok := s.worlds[point.Anchor.World]
		if !ok {
			continue
		}

		cube := vec.Box3Cube(point.ChunkCoords(), int(point.Anchor.Radius))
		cube.ForEach(func(chunkCoords vec.Vec3) {
			if states.GetState(chunkCoords) != world.ChunkUnloaded {
				return
			}
			states.SetState(chunkCoords, world.ChunkLoading)
			s.sink.HandleLoadChunk(LoadChunkEvent{
				ChunkCoords: chunkCoords,
				World:       point.Anchor.World,
			})
			metrics.ChunkLoadRequests.Inc()
		})
	}
}

func (s *Scheduler) unloadPass(anchors []AnchorPoint) {
	// Зоны удержания по мирам: куб MaxRadius каждого якоря
	keep := make(map[WorldID][]vec.Box3)
	for _, point := range anchors {
		keep[point.Anchor.World] = append(keep[point.Anchor.World],
			vec.Box3Cube(point.ChunkCoords(), int(point.Anchor.MaxRadius)))
	}

	ids := make([]WorldID, 0, len(s.worlds))
	for id := range s.worlds {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		states := s.worlds[id]
		zones := keep[id]

		// Сначала собираем кандидатов, затем меняем состояния: трекер
		// нельзя мутировать во время обхода
		var evict []vec.Vec3
		states.ForEach(func(chunkCoords vec.Vec3, state world.ChunkState) {
			if state != world.ChunkLoaded {
				return
			}
			for _, zone := range zones {
				if zone.Contains(chunkCoords) {
					// Чанк остается загруженным, пока в зоне хотя бы
					// одного якоря
					return
				}
			}
			evict = append(evict, chunkCoords)
		})

		for _, chunkCoords := range evict {
			states.SetState(chunkCoords, world.ChunkUnloading)
			s.sink.HandleUnloadChunk(UnloadChunkEvent{
				ChunkCoords: chunkCoords,
				World:       id,
			})
			metrics.ChunkUnloadRequests.Inc()
		}
	}
}
