package streaming

import (
	"github.com/annel0/voxel-engine/internal/vec"
)

// WorldID идентифицирует зарегистрированный в планировщике мир.
type WorldID uint64

// ChunkAnchor — якорь, удерживающий загруженными чанки вокруг себя.
// Привязывается к сущности с позицией; сам по себе хранилище не изменяет,
// а лишь потребляется планировщиком на каждом тике.
type ChunkAnchor struct {
	// World — мир, к которому прикреплен якорь.
	World WorldID

	// Radius — радиус в чанках, в котором чанки гарантированно загружаются.
	// Значение 0 удерживает только собственный чанк якоря.
	Radius uint16

	// MaxRadius — радиус в чанках, в котором чанки еще считаются "в зоне
	// действия" якоря и не подлежат выгрузке. Всегда >= Radius.
	MaxRadius uint16
}

// NewChunkAnchor создает якорь. MaxRadius меньше Radius поднимается до
// Radius, чтобы зона выгрузки никогда не была уже зоны загрузки.
func NewChunkAnchor(world WorldID, radius, maxRadius uint16) ChunkAnchor {
	if maxRadius < radius {
		maxRadius = radius
	}
	return ChunkAnchor{
		World:     world,
		Radius:    radius,
		MaxRadius: maxRadius,
	}
}

// AnchorPoint — снимок якоря вместе с текущей позицией его носителя,
// передаваемый планировщику на один тик.
type AnchorPoint struct {
	Anchor   ChunkAnchor
	Position vec.Vec3Float
}

// ChunkCoords возвращает координаты чанка, в котором находится якорь.
func (p AnchorPoint) ChunkCoords() vec.Vec3 {
	return p.Position.ToVec3().ToChunkCoords()
}
