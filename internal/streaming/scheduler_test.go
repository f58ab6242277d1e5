package streaming

import (
	"testing"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_LoadNearby(t *testing.T) {
	// Один якорь в позиции (44.0, 2.1, -4.7) — чанк (2, 0, -1),
	// радиус загрузки 1, максимальный радиус 2
	sink := &CollectorSink{}
	sched := NewScheduler(sink)

	const worldID WorldID = 1
	states := world.NewChunkStates()
	sched.RegisterWorld(worldID, states)

	sched.Tick([]AnchorPoint{{
		Anchor:   NewChunkAnchor(worldID, 1, 2),
		Position: vec.Vec3Float{X: 44.0, Y: 2.1, Z: -4.7},
	}})

	// Ровно по одному событию на каждый из 27 чанков куба
	// от (1,-1,-2) до (3,1,0), в порядке X внешний, Y средний, Z внутренний
	cube := vec.Box3FromPoints(vec.Vec3{X: 1, Y: -1, Z: -2}, vec.Vec3{X: 3, Y: 1, Z: 0})
	require.Len(t, sink.Loads, 27)

	i := 0
	cube.ForEach(func(chunkCoords vec.Vec3) {
		assert.Equal(t, LoadChunkEvent{ChunkCoords: chunkCoords, World: worldID}, sink.Loads[i],
			"Неверное событие на позиции %d", i)
		i++
	})

	// Все чанки куба переведены в Loading
	cube.ForEach(func(chunkCoords vec.Vec3) {
		assert.Equal(t, world.ChunkLoading, states.GetState(chunkCoords))
	})
	assert.Empty(t, sink.Unloads)
}

func TestScheduler_NoReemitNextTick(t *testing.T) {
	sink := &CollectorSink{}
	sched := NewScheduler(sink)
	states := world.NewChunkStates()
	sched.RegisterWorld(1, states)

	anchors := []AnchorPoint{{
		Anchor:   NewChunkAnchor(1, 1, 2),
		Position: vec.Vec3Float{X: 0, Y: 0, Z: 0},
	}}

	sched.Tick(anchors)
	require.Len(t, sink.Loads, 27)

	// То, что стало Loading в этом тике, не эмитится на следующем
	sink.Reset()
	sched.Tick(anchors)
	assert.Empty(t, sink.Loads, "Чанки в состоянии Loading не должны запрашиваться повторно")
}

func TestScheduler_OverlappingAnchorsNoDuplicates(t *testing.T) {
	sink := &CollectorSink{}
	sched := NewScheduler(sink)
	states := world.NewChunkStates()
	sched.RegisterWorld(1, states)

	// Два якоря с сильно перекрывающимися зонами
	sched.Tick([]AnchorPoint{
		{Anchor: NewChunkAnchor(1, 1, 2), Position: vec.Vec3Float{X: 0, Y: 0, Z: 0}},
		{Anchor: NewChunkAnchor(1, 1, 2), Position: vec.Vec3Float{X: 16, Y: 0, Z: 0}},
	})

	seen := map[vec.Vec3]int{}
	for _, ev := range sink.Loads {
		seen[ev.ChunkCoords]++
	}
	for chunkCoords, count := range seen {
		if count != 1 {
			t.Errorf("Чанк %v запрошен %d раз за один тик", chunkCoords, count)
		}
	}

	// Куб 3x3x3 плюс смещенный на один чанк по X: 27 + 9 уникальных
	assert.Len(t, sink.Loads, 36)
}

func TestScheduler_AnchorRadiusZero(t *testing.T) {
	sink := &CollectorSink{}
	sched := NewScheduler(sink)
	states := world.NewChunkStates()
	sched.RegisterWorld(1, states)

	sched.Tick([]AnchorPoint{{
		Anchor:   NewChunkAnchor(1, 0, 0),
		Position: vec.Vec3Float{X: -0.5, Y: 0, Z: 0},
	}})

	// Радиус 0 — только собственный чанк якоря; позиция -0.5 в чанке -1
	require.Len(t, sink.Loads, 1)
	assert.Equal(t, vec.Vec3{X: -1, Y: 0, Z: 0}, sink.Loads[0].ChunkCoords)
}

func TestScheduler_UnloadOutsideMaxRadius(t *testing.T) {
	sink := &CollectorSink{}
	sched := NewScheduler(sink)
	states := world.NewChunkStates()
	sched.RegisterWorld(1, states)

	// Чанк, загруженный далеко от якоря
	far := vec.Vec3{X: 10, Y: 0, Z: 0}
	states.SetState(far, world.ChunkLoaded)
	// Чанк в пределах MaxRadius (но вне Radius)
	near := vec.Vec3{X: 2, Y: 0, Z: 0}
	states.SetState(near, world.ChunkLoaded)

	sched.Tick([]AnchorPoint{{
		Anchor:   NewChunkAnchor(1, 1, 2),
		Position: vec.Vec3Float{X: 0, Y: 0, Z: 0},
	}})

	require.Len(t, sink.Unloads, 1)
	assert.Equal(t, UnloadChunkEvent{ChunkCoords: far, World: 1}, sink.Unloads[0])
	assert.Equal(t, world.ChunkUnloading, states.GetState(far))
	assert.Equal(t, world.ChunkLoaded, states.GetState(near),
		"Чанк в пределах MaxRadius не должен выгружаться")
}

func TestScheduler_ChunkKeptByAnyAnchor(t *testing.T) {
	sink := &CollectorSink{}
	sched := NewScheduler(sink)
	states := world.NewChunkStates()
	sched.RegisterWorld(1, states)

	// Чанк вне зоны первого якоря, но в зоне второго
	chunk := vec.Vec3{X: 6, Y: 0, Z: 0}
	states.SetState(chunk, world.ChunkLoaded)

	sched.Tick([]AnchorPoint{
		{Anchor: NewChunkAnchor(1, 0, 1), Position: vec.Vec3Float{X: 0, Y: 0, Z: 0}},
		{Anchor: NewChunkAnchor(1, 0, 1), Position: vec.Vec3Float{X: 96, Y: 0, Z: 0}}, // чанк (6,0,0)
	})

	assert.Empty(t, sink.Unloads, "Чанк удерживается, пока находится в зоне хотя бы одного якоря")
	assert.Equal(t, world.ChunkLoaded, states.GetState(chunk))
}

func TestScheduler_OnlyLoadedChunksEvicted(t *testing.T) {
	sink := &CollectorSink{}
	sched := NewScheduler(sink)
	states := world.NewChunkStates()
	sched.RegisterWorld(1, states)

	// Loading и Unloading вне всех зон не трогаются фазой выгрузки
	states.SetState(vec.Vec3{X: 20, Y: 0, Z: 0}, world.ChunkLoading)
	states.SetState(vec.Vec3{X: 21, Y: 0, Z: 0}, world.ChunkUnloading)

	sched.Tick(nil)

	assert.Empty(t, sink.Unloads)
	assert.Equal(t, world.ChunkLoading, states.GetState(vec.Vec3{X: 20, Y: 0, Z: 0}))
	assert.Equal(t, world.ChunkUnloading, states.GetState(vec.Vec3{X: 21, Y: 0, Z: 0}))
}

func TestScheduler_UnknownWorldIgnored(t *testing.T) {
	sink := &CollectorSink{}
	sched := NewScheduler(sink)

	// Якорь, ссылающийся на незарегистрированный мир, пропускается
	sched.Tick([]AnchorPoint{{
		Anchor:   NewChunkAnchor(99, 1, 2),
		Position: vec.Vec3Float{X: 0, Y: 0, Z: 0},
	}})

	assert.Empty(t, sink.Loads)
	assert.Empty(t, sink.Unloads)
}
