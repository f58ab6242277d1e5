package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/voxel-engine/internal/config"
	"github.com/annel0/voxel-engine/internal/entity"
	"github.com/annel0/voxel-engine/internal/eventbus"
	"github.com/annel0/voxel-engine/internal/gen"
	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/mesh"
	"github.com/annel0/voxel-engine/internal/metrics"
	"github.com/annel0/voxel-engine/internal/streaming"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
)

const overworldID streaming.WorldID = 1

func main() {
	configPath := flag.String("config", "config.yml", "путь к файлу конфигурации")
	flag.Parse()

	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("engine"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	logging.Info("🧊 Запуск воксельного движка...")

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка загрузки конфигурации: %v", err)
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	tickRate := cfg.Simulation.GetTickRate()
	metricsPort := cfg.Metrics.GetMetricsPort()
	logging.Info("📡 Конфигурация: тики=%d/с, метрики=:%d, seed=%d",
		tickRate, metricsPort, cfg.Generator.Seed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === МЕТРИКИ ===
	metricsSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", metricsPort),
		Handler: metrics.Handler(),
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("Сервер метрик: %v", err)
		}
	}()
	metrics.StartRuntimeProbe(ctx, 10*time.Second)

	// === МИР ===
	shapes := world.NewVoxelWorld[mesh.BlockShape]()
	ids := world.NewVoxelWorld[gen.BlockID]()
	states := world.NewChunkStates()

	// === СТРИМИНГ ===
	chanSink := streaming.NewChannelSink(cfg.Streaming.GetEventBuffer())
	sink := streaming.EventSink(chanSink)

	// При наличии NATS дублируем события чанков в JetStream
	var jsBus *eventbus.JetStreamBus
	if cfg.EventBus.URL != "" {
		jsBus, err = eventbus.NewJetStreamBus(
			cfg.EventBus.URL,
			cfg.EventBus.Stream,
			time.Duration(cfg.EventBus.Retention)*time.Hour,
		)
		if err != nil {
			logging.Warn("JetStream недоступен (%v), события только локально", err)
			jsBus = nil
		} else {
			sink = streaming.MultiSink{chanSink, streaming.NewBusSink(jsBus, "engine")}
			logging.Info("✅ События чанков публикуются в JetStream (%s)", cfg.EventBus.URL)
		}
	}

	sched := streaming.NewScheduler(sink)
	sched.RegisterWorld(overworldID, states)

	// === ГЕНЕРАЦИЯ ===
	generator := gen.NewTerrainGenerator(cfg.Generator.Seed)
	populator := gen.NewPopulator(overworldID, generator, shapes, ids, states, chanSink)
	go populator.Run(ctx)

	// === СУЩНОСТИ ===
	entities := entity.NewManager()
	observerID := entities.Spawn(vec.Vec3Float{X: 0, Y: 24, Z: 0})
	entities.AttachAnchor(observerID, streaming.NewChunkAnchor(
		overworldID,
		uint16(cfg.Streaming.GetDefaultRadius()),
		uint16(cfg.Streaming.GetDefaultMaxRadius()),
	))
	logging.Info("👁️  Наблюдатель %d закреплен в начале координат", observerID)

	// === МЕШЕР ===
	meshPool := mesh.NewBuildPool(cfg.Mesh.Workers)

	logging.Info("✅ Движок запущен, симуляция идет")

	// Канал для получения сигналов ОС
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	var tick uint64
	running := true
	for running {
		select {
		case <-ticker.C:
			tick++
			sched.Tick(entities.CollectAnchors())

			// Раз в секунду перестраиваем меши готовых чанков
			if tick%uint64(tickRate) == 0 {
				rebuildLoadedMeshes(meshPool, shapes, states)
			}

		case sig := <-sigCh:
			logging.Info("📡 Получен сигнал %v, завершение работы...", sig)
			running = false
		}
	}

	// === GRACEFUL SHUTDOWN ===
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Остановка сервера метрик: %v", err)
	}
	if jsBus != nil {
		jsBus.Close()
	}

	logging.Info("👋 Движок остановлен: %d чанков, %d регионов в памяти",
		shapes.ChunkCount(), shapes.RegionCount())
}

// rebuildLoadedMeshes собирает меши всех загруженных чанков через пул воркеров.
func rebuildLoadedMeshes(pool *mesh.BuildPool, shapes *world.VoxelWorld[mesh.BlockShape], states *world.ChunkStates) {
	var coords []vec.Vec3
	states.ForEach(func(chunk vec.Vec3, st world.ChunkState) {
		if st == world.ChunkLoaded {
			coords = append(coords, chunk)
		}
	})
	if len(coords) == 0 {
		return
	}

	meshes := pool.BuildMeshes(shapes, coords)

	var quads int
	for _, m := range meshes {
		quads += m.QuadCount()
	}
	logging.Trace("Перестроено мешей: %d, квадов: %d", len(meshes), quads)
}
