package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBox3FromPoints_Normalization(t *testing.T) {
	box := Box3FromPoints(Vec3{X: 3, Y: -1, Z: 5}, Vec3{X: -2, Y: 4, Z: 5})

	assert.Equal(t, Vec3{X: -2, Y: -1, Z: 5}, box.Min)
	assert.Equal(t, Vec3{X: 3, Y: 4, Z: 5}, box.Max)
	assert.Equal(t, 6*6*1, box.Count())
}

func TestBox3_PointToIndex(t *testing.T) {
	box := Box3FromSize(Vec3{X: -1, Y: -1, Z: -1}, Vec3{X: 18, Y: 18, Z: 18})

	idx, ok := box.PointToIndex(Vec3{X: -1, Y: -1, Z: -1})
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = box.PointToIndex(Vec3{X: 0, Y: 0, Z: 0})
	require.True(t, ok)
	assert.Equal(t, 1*18*18+1*18+1, idx)

	_, ok = box.PointToIndex(Vec3{X: 17, Y: 0, Z: 0})
	assert.False(t, ok, "Точка вне кубоида не должна иметь индекса")
}

func TestBox3_IndexRoundTrip(t *testing.T) {
	box := Box3FromPoints(Vec3{X: -3, Y: 10, Z: 2}, Vec3{X: 0, Y: 12, Z: 5})

	for i := 0; i < box.Count(); i++ {
		p := box.IndexToPoint(i)
		idx, ok := box.PointToIndex(p)
		require.True(t, ok, "Точка %v должна принадлежать кубоиду", p)
		assert.Equal(t, i, idx)
	}
}

func TestBox3_ForEachOrder(t *testing.T) {
	// Порядок обхода: X внешний, Y средний, Z внутренний —
	// совпадает с построчной линейной индексацией
	box := Box3FromPoints(Vec3{X: 1, Y: -1, Z: -2}, Vec3{X: 3, Y: 1, Z: 0})

	i := 0
	box.ForEach(func(p Vec3) {
		idx, ok := box.PointToIndex(p)
		require.True(t, ok)
		assert.Equal(t, i, idx, "Нарушен порядок обхода в точке %v", p)
		i++
	})
	assert.Equal(t, 27, i)
}

func TestBox3_Intersect(t *testing.T) {
	a := Box3FromPoints(Vec3{}, Vec3{X: 15, Y: 15, Z: 15})
	b := Box3FromPoints(Vec3{X: 10, Y: -5, Z: 12}, Vec3{X: 20, Y: 5, Z: 30})

	got, ok := a.Intersect(b)
	require.True(t, ok)
	assert.Equal(t, Box3FromPoints(Vec3{X: 10, Y: 0, Z: 12}, Vec3{X: 15, Y: 5, Z: 15}), got)

	_, ok = a.Intersect(Box3FromPoints(Vec3{X: 100, Y: 0, Z: 0}, Vec3{X: 120, Y: 5, Z: 5}))
	assert.False(t, ok, "Непересекающиеся кубоиды не должны давать пересечения")
}
