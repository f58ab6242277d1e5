package streaming

import (
	"github.com/annel0/voxel-engine/internal/vec"
)

// LoadChunkEvent — запрос на загрузку (или генерацию) чанка.
// Эмитится планировщиком не более одного раза на чанк за тик.
type LoadChunkEvent struct {
	ChunkCoords vec.Vec3 // Координаты чанка
	World       WorldID  // Мир, в котором нужно загрузить чанк
}

// UnloadChunkEvent — запрос на выгрузку чанка.
type UnloadChunkEvent struct {
	ChunkCoords vec.Vec3 // Координаты чанка
	World       WorldID  // Мир, из которого нужно выгрузить чанк
}

// EventSink принимает события стриминга. Вызовы происходят синхронно из
// Tick в детерминированном порядке; медленный приемник задерживает тик.
type EventSink interface {
	HandleLoadChunk(ev LoadChunkEvent)
	HandleUnloadChunk(ev UnloadChunkEvent)
}

// CollectorSink накапливает события в слайсы. Используется в тестах и для
// поштучной обработки после тика.
type CollectorSink struct {
	Loads   []LoadChunkEvent
	Unloads []UnloadChunkEvent
}

// HandleLoadChunk реализует EventSink.
func (c *CollectorSink) HandleLoadChunk(ev LoadChunkEvent) {
	c.Loads = append(c.Loads, ev)
}

// HandleUnloadChunk реализует EventSink.
func (c *CollectorSink) HandleUnloadChunk(ev UnloadChunkEvent) {
	c.Unloads = append(c.Unloads, ev)
}

// Reset очищает накопленные события перед следующим тиком.
func (c *CollectorSink) Reset() {
	c.Loads = c.Loads[:0]
	c.Unloads = c.Unloads[:0]
}

// ChannelSink отправляет события в каналы. Каналы должны иметь достаточный
// буфер: отправка блокирующая, чтобы не терять запросы.
type ChannelSink struct {
	LoadCh   chan LoadChunkEvent
	UnloadCh chan UnloadChunkEvent
}

// NewChannelSink создает приемник с буферизованными каналами.
func NewChannelSink(capacity int) *ChannelSink {
	return &ChannelSink{
		LoadCh:   make(chan LoadChunkEvent, capacity),
		UnloadCh: make(chan UnloadChunkEvent, capacity),
	}
}

// HandleLoadChunk реализует EventSink.
func (s *ChannelSink) HandleLoadChunk(ev LoadChunkEvent) {
	s.LoadCh <- ev
}

// HandleUnloadChunk реализует EventSink.
func (s *ChannelSink) HandleUnloadChunk(ev UnloadChunkEvent) {
	s.UnloadCh <- ev
}

// MultiSink дублирует события в несколько приемников в порядке перечисления.
type MultiSink []EventSink

// HandleLoadChunk реализует EventSink.
func (m MultiSink) HandleLoadChunk(ev LoadChunkEvent) {
	for _, sink := range m {
		sink.HandleLoadChunk(ev)
	}
}

// HandleUnloadChunk реализует EventSink.
func (m MultiSink) HandleUnloadChunk(ev UnloadChunkEvent) {
	for _, sink := range m {
		sink.HandleUnloadChunk(ev)
	}
}
