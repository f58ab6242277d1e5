package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Метрики ядра воксельного мира. Регистрируются в дефолтном регистре
// Prometheus при инициализации пакета.
var (
	// ChunkLoadRequests — количество событий запроса загрузки чанка.
	ChunkLoadRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "voxel",
		Name:      "chunk_load_requests_total",
		Help:      "Общее число запросов на загрузку чанков.",
	})

	// ChunkUnloadRequests — количество событий запроса выгрузки чанка.
	ChunkUnloadRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "voxel",
		Name:      "chunk_unload_requests_total",
		Help:      "Общее число запросов на выгрузку чанков.",
	})

	// TrackedChunks — текущее число чанков, отслеживаемых трекером состояний.
	TrackedChunks = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "voxel",
		Name:      "tracked_chunks",
		Help:      "Текущее количество чанков в состояниях Loading/Loaded/Unloading.",
	})

	// SchedulerTickDuration — длительность одного прохода планировщика.
	SchedulerTickDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "voxel",
		Name:      "scheduler_tick_duration_seconds",
		Help:      "Длительность тика планировщика стриминга.",
		Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	})

	// MeshBuildDuration — длительность генерации меша одного чанка.
	MeshBuildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "voxel",
		Name:      "mesh_build_duration_seconds",
		Help:      "Длительность построения меша одного чанка.",
		Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	})

	// MeshQuads — количество квадов в сгенерированных мешах.
	MeshQuads = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "voxel",
		Name:      "mesh_quads_total",
		Help:      "Общее число квадов, добавленных в меши чанков.",
	})

	// GeneratedChunks — количество чанков, заполненных генератором ландшафта.
	GeneratedChunks = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "voxel",
		Name:      "generated_chunks_total",
		Help:      "Общее число сгенерированных чанков.",
	})
)

func init() {
	prometheus.MustRegister(
		ChunkLoadRequests,
		ChunkUnloadRequests,
		TrackedChunks,
		SchedulerTickDuration,
		MeshBuildDuration,
		MeshQuads,
		GeneratedChunks,
	)
}

// Handler возвращает HTTP-обработчик для маршрута /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
