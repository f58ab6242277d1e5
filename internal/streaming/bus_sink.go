package streaming

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/annel0/voxel-engine/internal/eventbus"
	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/vec"
)

// Типы событий шины для стриминга чанков.
const (
	EventTypeLoadChunk   = "LoadChunkRequested"
	EventTypeUnloadChunk = "UnloadChunkRequested"
)

// ChunkEventPayload — JSON-тело события стриминга в конверте шины.
type ChunkEventPayload struct {
	ChunkCoords vec.Vec3 `json:"chunk_coords"`
	World       WorldID  `json:"world"`
}

// BusSink публикует события стриминга в шину событий. Используется, когда
// загрузкой чанков занимается внешний потребитель (например, отдельный
// процесс-генератор, подписанный через JetStream).
type BusSink struct {
	bus    eventbus.EventBus
	source string
}

// NewBusSink создает приемник, публикующий в указанную шину от имени source.
func NewBusSink(bus eventbus.EventBus, source string) *BusSink {
	if source == "" {
		source = "streaming"
	}
	return &BusSink{bus: bus, source: source}
}

// HandleLoadChunk реализует EventSink.
func (b *BusSink) HandleLoadChunk(ev LoadChunkEvent) {
	b.publish(EventTypeLoadChunk, ChunkEventPayload{ChunkCoords: ev.ChunkCoords, World: ev.World})
}

// HandleUnloadChunk реализует EventSink.
func (b *BusSink) HandleUnloadChunk(ev UnloadChunkEvent) {
	b.publish(EventTypeUnloadChunk, ChunkEventPayload{ChunkCoords: ev.ChunkCoords, World: ev.World})
}

func (b *BusSink) publish(eventType string, payload ChunkEventPayload) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Сериализация события %s: %v", eventType, err)
		return
	}

	env := &eventbus.Envelope{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Source:    b.source,
		EventType: eventType,
		Version:   1,
		Payload:   data,
	}
	if err := b.bus.Publish(context.Background(), env); err != nil {
		logging.Error("Публикация события %s для чанка %v: %v", eventType, payload.ChunkCoords, err)
	}
}
