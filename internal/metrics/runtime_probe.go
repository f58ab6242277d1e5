package metrics

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/process"
)

// Гейджи потребления ресурсов процессом сервера.
var (
	processCPUPercent = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "voxel",
		Name:      "process_cpu_percent",
		Help:      "Использование CPU процессом сервера, проценты.",
	})

	processMemoryMB = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "voxel",
		Name:      "process_memory_mb",
		Help:      "Объем выделенной кучи Go, мегабайты.",
	})
)

func init() {
	prometheus.MustRegister(processCPUPercent, processMemoryMB)
}

// StartRuntimeProbe запускает фоновую горутину, периодически обновляющую
// гейджи потребления ресурсов до отмены контекста. Возвращает управление
// сразу после запуска.
func StartRuntimeProbe(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Second
	}

	proc, procErr := process.NewProcess(int32(os.Getpid()))

	go runProbeLoop(ctx, interval, proc, procErr)
}

func runProbeLoop(ctx context.Context, interval time.Duration, proc *process.Process, procErr error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			processMemoryMB.Set(float64(m.Alloc) / 1024 / 1024)

			if procErr == nil {
				if cpuPercent, err := proc.CPUPercent(); err == nil {
					processCPUPercent.Set(cpuPercent)
				}
			}
		}
	}
}
