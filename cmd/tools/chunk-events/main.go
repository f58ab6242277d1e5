package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/annel0/voxel-engine/internal/eventbus"
	"github.com/annel0/voxel-engine/internal/streaming"
)

const timeFormat = "15:04:05.000"

// chunk-events — утилита для наблюдения за событиями стриминга чанков
// в JetStream. Аналог tail -f для потока загрузок/выгрузок.
func main() {
	var (
		natsURL   = flag.String("nats", "nats://localhost:4222", "адрес NATS-сервера")
		stream    = flag.String("stream", "CHUNKS", "имя JetStream-потока")
		types     = flag.String("types", "", "фильтр типов событий (через запятую)")
		sources   = flag.String("sources", "", "фильтр источников (через запятую)")
		statsOnly = flag.Bool("stats", false, "печатать только счетчики шины раз в секунду")
	)
	flag.Parse()

	bus, err := eventbus.NewJetStreamBus(*natsURL, *stream, 24*time.Hour)
	if err != nil {
		log.Fatalf("❌ Подключение к JetStream: %v", err)
	}
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *statsOnly {
		runStats(ctx, bus)
		return
	}

	filter := eventbus.Filter{
		Types:   parseStringList(*types),
		Sources: parseStringList(*sources),
	}

	sub, err := bus.Subscribe(ctx, filter, printEvent)
	if err != nil {
		log.Fatalf("❌ Подписка: %v", err)
	}
	defer sub.Unsubscribe()

	fmt.Printf("📡 Слушаем %s / %s (Ctrl+C для выхода)\n", *natsURL, *stream)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
}

func printEvent(_ context.Context, ev *eventbus.Envelope) {
	var payload streaming.ChunkEventPayload
	if err := json.Unmarshal(ev.Payload, &payload); err != nil {
		fmt.Printf("%s  %-22s  <нечитаемое тело: %v>\n",
			ev.Timestamp.Format(timeFormat), ev.EventType, err)
		return
	}

	var marker string
	switch ev.EventType {
	case streaming.EventTypeLoadChunk:
		marker = "⬇"
	case streaming.EventTypeUnloadChunk:
		marker = "⬆"
	default:
		marker = "·"
	}

	fmt.Printf("%s %s %-22s мир=%d чанк=(%d,%d,%d) от %s\n",
		ev.Timestamp.Format(timeFormat), marker, ev.EventType,
		payload.World,
		payload.ChunkCoords.X, payload.ChunkCoords.Y, payload.ChunkCoords.Z,
		ev.Source)
}

func runStats(ctx context.Context, bus eventbus.EventBus) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s := bus.Metrics()
			fmt.Printf("published=%d consumed=%d dropped=%d in_flight=%d\n",
				s.Published, s.Consumed, s.Dropped, s.InFlight)
		case <-sigCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func parseStringList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
