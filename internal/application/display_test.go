package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/domain"
)

func TestBuildDisplay_HonoursCollapseSet(t *testing.T) {
	root := sampleTree()
	store := NewCollapseStore(nil, nil)
	store.Collapse(2)
	store.Collapse(6)

	rows := BuildDisplay(root, store, nil)
	assert.Equal(t, []int{1, 2, 5, 6, 9, 10, 11, 12}, rowIDs(rows))
	assert.True(t, rows[1].Collapsed)
	assert.Equal(t, 2, rows[3].Depth)
}

func TestBuildDisplay_NilRoot(t *testing.T) {
	assert.Nil(t, BuildDisplay(nil, NewCollapseStore(nil, nil), nil))
}

func TestBuildDisplay_ClipsAnimatingFolders(t *testing.T) {
	root := sampleTree()
	folderB, _ := domain.FindWithPath(root, 5)
	store := NewCollapseStore(nil, nil)
	store.Collapse(5)
	anim := NewAnimator(store, 4)

	assert.Equal(t, 6, NaturalHeight(folderB, store, anim))

	tr, ok := anim.Toggle(folderB, NaturalHeight(folderB, store, anim))
	require.True(t, ok)

	// expansion starts with no child rows visible
	rows := BuildDisplay(root, store, anim)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 12}, rowIDs(rows))
	assert.True(t, rows[4].Animating)

	anim.Advance(5, tr.Token)
	h, _ := anim.Height(5)
	rows = BuildDisplay(root, store, anim)
	assert.Len(t, rows, 6+h)

	for anim.Advance(5, tr.Token) == StepRunning {
	}
	rows = BuildDisplay(root, store, anim)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, rowIDs(rows))
}

func TestNaturalHeight_NestedCollapse(t *testing.T) {
	root := sampleTree()
	folderB, _ := domain.FindWithPath(root, 5)
	store := NewCollapseStore(nil, nil)
	store.Collapse(9)

	assert.Equal(t, 4, NaturalHeight(folderB, store, nil))

	file, _ := domain.FindWithPath(root, 3)
	assert.Zero(t, NaturalHeight(file, store, nil))
}
