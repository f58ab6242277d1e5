package entity

import (
	"sort"
	"sync"

	"github.com/annel0/voxel-engine/internal/streaming"
	"github.com/annel0/voxel-engine/internal/vec"
)

// Entity — сущность мира с позицией и опциональным якорем стриминга.
// Идентификатор служит явным хэндлом: системные проходы получают снимки
// сущностей, а не обращаются к неявному глобальному реестру.
type Entity struct {
	ID       uint64
	Position vec.Vec3Float
	Anchor   *streaming.ChunkAnchor // nil, если сущность не удерживает чанки
}

// Manager управляет всеми сущностями. Доступ потокобезопасен: один
// писатель, конкурентные читатели.
type Manager struct {
	mu       sync.RWMutex
	entities map[uint64]*Entity
	nextID   uint64
}

// NewManager создает пустой менеджер сущностей.
func NewManager() *Manager {
	return &Manager{
		entities: make(map[uint64]*Entity),
		nextID:   1,
	}
}

// Spawn создает сущность в указанной позиции и возвращает ее хэндл.
func (m *Manager) Spawn(pos vec.Vec3Float) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.entities[id] = &Entity{ID: id, Position: pos}
	return id
}

// Despawn удаляет сущность вместе с ее якорем.
func (m *Manager) Despawn(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entities, id)
}

// SetPosition перемещает сущность.
func (m *Manager) SetPosition(id uint64, pos vec.Vec3Float) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entities[id]
	if !ok {
		return false
	}
	e.Position = pos
	return true
}

// Position возвращает текущую позицию сущности.
func (m *Manager) Position(id uint64) (vec.Vec3Float, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entities[id]
	if !ok {
		return vec.Vec3Float{}, false
	}
	return e.Position, true
}

// AttachAnchor прикрепляет якорь стриминга к сущности.
func (m *Manager) AttachAnchor(id uint64, anchor streaming.ChunkAnchor) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entities[id]
	if !ok {
		return false
	}
	e.Anchor = &anchor
	return true
}

// DetachAnchor снимает якорь с сущности.
func (m *Manager) DetachAnchor(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entities[id]; ok {
		e.Anchor = nil
	}
}

// CollectAnchors возвращает снимок всех якорей с позициями их носителей
// для одного прохода планировщика. Порядок детерминирован (по хэндлу).
func (m *Manager) CollectAnchors() []streaming.AnchorPoint {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]uint64, 0, len(m.entities))
	for id, e := range m.entities {
		if e.Anchor != nil {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	points := make([]streaming.AnchorPoint, 0, len(ids))
	for _, id := range ids {
		e := m.entities[id]
		points = append(points, streaming.AnchorPoint{
			Anchor:   *e.Anchor,
			Position: e.Position,
		})
	}
	return points
}

// Len возвращает количество сущностей.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entities)
}
