package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockOcclusion_OppositeFace(t *testing.T) {
	assert.Equal(t, OcclusionNegX, OcclusionPosX.OppositeFace())
	assert.Equal(t, OcclusionPosX, OcclusionNegX.OppositeFace())
	assert.Equal(t, OcclusionNegY, OcclusionPosY.OppositeFace())
	assert.Equal(t, OcclusionPosY, OcclusionNegY.OppositeFace())
	assert.Equal(t, OcclusionNegZ, OcclusionPosZ.OppositeFace())
	assert.Equal(t, OcclusionPosZ, OcclusionNegZ.OppositeFace())

	// Внутренность не меняется
	assert.Equal(t, OcclusionInner, OcclusionInner.OppositeFace())

	// Оси обрабатываются независимо
	combo := OcclusionPosX | OcclusionNegY | OcclusionPosZ
	assert.Equal(t, OcclusionNegX|OcclusionPosY|OcclusionNegZ, combo.OppositeFace())
}

func TestBlockOcclusion_OppositeFaceInvolution(t *testing.T) {
	// Для любой комбинации флагов двойное отражение возвращает исходное
	for f := BlockOcclusion(0); f < 1<<7; f++ {
		if got := f.OppositeFace().OppositeFace(); got != f {
			t.Fatalf("opposite(opposite(%07b)) = %07b", f, got)
		}
	}
}

func TestBlockShape_Occlusion(t *testing.T) {
	assert.Equal(t, OcclusionInner, ShapeEmpty.Occlusion())
	assert.Equal(t, OcclusionAllFaces, ShapeCube.Occlusion())
	assert.Equal(t, BlockOcclusion(0), ShapeCustom.Occlusion())
}
