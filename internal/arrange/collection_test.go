package arrange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePrompter struct {
	answer  string
	cancel  bool
	offered string
}

func (f *fakePrompter) Prompt(value string, done func(string)) {
	f.offered = value
	if f.cancel {
		done(value)
		return
	}
	done(f.answer)
}

func TestLoadResetsState(t *testing.T) {
	c := newLoaded(t, 4)
	c.Page(1).SelectOn()
	c.MoveNext()
	c.SetDropTarget(c.Page(3), DropAfter)
	old := c.Page(1)

	c.Load("other.pdf", 2)
	assert.Equal(t, []int{1, 2}, order(c))
	assert.Equal(t, 0, c.SelectedCount())
	assert.Nil(t, c.Cursor())
	assert.Nil(t, c.DropTarget())
	assert.Equal(t, "other.pdf", c.Source())
	assert.False(t, old.Selected())

	c.Load("broken.pdf", 0)
	assert.Equal(t, 0, c.Len())
}

func TestSelectAllModes(t *testing.T) {
	c := newLoaded(t, 5)
	c.Page(4).Remove()

	assert.Equal(t, 4, c.SelectAll(SelectAllOn))
	assert.Equal(t, 4, c.SelectedCount())
	assert.False(t, c.Page(4).Selected())

	assert.Equal(t, 4, c.SelectAll(SelectAllOff))
	assert.Equal(t, 0, c.SelectedCount())
	require.NoError(t, c.CheckInvariants())
}

func TestSelectAllInverseSkipsRemovedPages(t *testing.T) {
	c := newLoaded(t, 5)
	c.Page(0).SelectOn()
	c.Page(2).Remove()

	c.SelectAll(SelectAllInverse)

	assert.False(t, c.Page(0).Selected())
	assert.True(t, c.Page(1).Selected())
	assert.True(t, c.Page(2).Removed(), "removed page is not revived")
	assert.False(t, c.Page(2).Selected())
	assert.True(t, c.Page(3).Selected())
	assert.True(t, c.Page(4).Selected())
	require.NoError(t, c.CheckInvariants())
}

func TestSelectedSortedFollowsSequence(t *testing.T) {
	c := newLoaded(t, 6)
	c.Page(5).SelectOn()
	c.Page(0).SelectOn()
	c.Page(3).SelectOn()

	got := []int{}
	for _, p := range c.SelectedSorted() {
		got = append(got, p.Index)
	}
	assert.Equal(t, []int{1, 4, 6}, got)
}

func TestMoveSelectionBeforeTarget(t *testing.T) {
	c := newLoaded(t, 8)
	c.Page(6).SelectOn()
	c.Page(3).SelectOn()

	require.True(t, c.MoveBefore(c.Page(2)))
	assert.Equal(t, []int{1, 2, 4, 7, 3, 5, 6, 8}, order(c))
	require.NoError(t, c.CheckInvariants())
}

func TestMoveSelectionAfterTarget(t *testing.T) {
	c := newLoaded(t, 8)
	c.Page(0).SelectOn()
	c.Page(1).SelectOn()

	require.True(t, c.MoveAfter(c.Page(7)))
	assert.Equal(t, []int{3, 4, 5, 6, 7, 8, 1, 2}, order(c))
}

func TestMoveRejectsSelectedTarget(t *testing.T) {
	c := newLoaded(t, 4)
	c.Page(1).SelectOn()
	c.Page(2).SelectOn()

	assert.False(t, c.MoveBefore(c.Page(2)))
	assert.False(t, c.MoveAfter(c.Page(1)))
	assert.Equal(t, []int{1, 2, 3, 4}, order(c))

	c.SelectAll(SelectAllOff)
	assert.False(t, c.MoveBefore(c.Page(0)), "empty selection")
}

func TestToggleModeIsExclusive(t *testing.T) {
	c := NewCollection()
	c.ToggleMode(ModeMagnify)
	assert.Equal(t, ModeMagnify, c.Mode())
	c.ToggleMode(ModeRemove)
	assert.Equal(t, ModeRemove, c.Mode())
	c.ToggleMode(ModeRemove)
	assert.Equal(t, ModeNone, c.Mode())
}

func TestEmptySelectionArmsModeAndClickConsumesIt(t *testing.T) {
	c := newLoaded(t, 4)

	assert.Equal(t, 0, c.Remove())
	assert.Equal(t, ModeRemove, c.Mode())

	c.Page(2).Click(false)
	assert.True(t, c.Page(2).Removed())
	assert.Equal(t, 1, c.RemovedCount())
	assert.Equal(t, ModeNone, c.Mode())
	assert.Same(t, c.Page(2), c.Cursor())
	require.NoError(t, c.CheckInvariants())
}

func TestArmedToolModes(t *testing.T) {
	c := newLoaded(t, 3)

	c.RotateRight()
	c.Page(0).Click(false)
	assert.Equal(t, 90, c.Page(0).Rotation())

	c.RotateLeft()
	c.Page(1).Click(false)
	assert.Equal(t, 270, c.Page(1).Rotation())

	c.SplitBefore()
	c.Page(2).Click(false)
	assert.True(t, c.Page(2).SplitBefore())

	c.ToggleMode(ModeMagnify)
	c.Page(1).Click(false)
	assert.True(t, c.Page(1).Magnified())
	assert.Equal(t, ModeNone, c.Mode())
	assert.Equal(t, 0, c.SelectedCount(), "tool clicks do not select")
}

func TestBulkActionsOnSelection(t *testing.T) {
	c := newLoaded(t, 4)
	c.Page(1).SelectOn()
	c.Page(2).SelectOn()

	assert.Equal(t, 2, c.RotateRight())
	assert.Equal(t, 90, c.Page(1).Rotation())
	assert.Equal(t, 90, c.Page(2).Rotation())
	assert.Equal(t, ModeNone, c.Mode())

	assert.Equal(t, 2, c.SplitBefore())
	assert.Equal(t, 2, c.SplitCount())
	assert.Equal(t, 0, c.SelectedCount())

	c.Page(0).SelectOn()
	c.Page(3).SelectOn()
	assert.Equal(t, 2, c.Remove())
	assert.Equal(t, 2, c.RemovedCount())
	require.NoError(t, c.CheckInvariants())
}

func TestPlainClickReplacesSelection(t *testing.T) {
	c := newLoaded(t, 4)
	c.Page(0).SelectOn()
	c.Page(1).SelectOn()

	c.Page(2).Click(false)
	assert.Equal(t, 1, c.SelectedCount())
	assert.True(t, c.Page(2).Selected())
	assert.Same(t, c.Page(2), c.Cursor())

	c.Page(3).Click(true)
	assert.Equal(t, 2, c.SelectedCount())

	c.Page(3).Click(true)
	assert.False(t, c.Page(3).Selected())
}

func TestSelectModeClickAccumulates(t *testing.T) {
	c := newLoaded(t, 4)
	c.ToggleMode(ModeSelect)

	c.Page(0).Click(false)
	c.Page(2).Click(false)
	assert.Equal(t, 2, c.SelectedCount())
	assert.Equal(t, ModeSelect, c.Mode(), "select mode is not single-shot")
}

func TestDragAndDrop(t *testing.T) {
	c := newLoaded(t, 5)
	c.Page(0).SelectOn()

	dragged := c.Page(3)
	require.True(t, dragged.DragStart())
	assert.True(t, dragged.Selected())
	assert.True(t, c.Page(0).Dragged())
	assert.True(t, dragged.Dragged())

	target := c.Page(1)
	assert.Equal(t, DropAfter, target.DragOver(8, 10))
	assert.Same(t, target, c.DropTarget())
	assert.Equal(t, DropBefore, target.DragOver(2, 10))
	assert.Equal(t, DropBefore, target.DropSide())

	require.True(t, target.Drop(2, 10))
	assert.Equal(t, []int{1, 4, 2, 3, 5}, order(c))
	assert.Nil(t, c.DropTarget())

	dragged.DragEnd()
	for _, p := range c.Pages() {
		assert.False(t, p.Dragged())
	}
}

func TestDragOverNewTargetClearsOldSide(t *testing.T) {
	c := newLoaded(t, 3)
	c.Page(0).DragOver(0, 10)
	c.Page(1).DragOver(9, 10)

	assert.Equal(t, DropNone, c.Page(0).DropSide())
	assert.Equal(t, DropAfter, c.Page(1).DropSide())

	c.Page(1).DragLeave()
	assert.Nil(t, c.DropTarget())
}

func TestRemovedPageCannotBeDragged(t *testing.T) {
	c := newLoaded(t, 2)
	c.Page(0).Remove()
	assert.False(t, c.Page(0).DragStart())
	assert.True(t, c.Page(0).Removed())
}

func TestCommitDropFromKeyboard(t *testing.T) {
	c := newLoaded(t, 4)
	c.Page(3).SelectOn()

	c.SetDropTarget(c.Page(0), DropBefore)
	require.True(t, c.CommitDrop())
	assert.Equal(t, []int{4, 1, 2, 3}, order(c))
	assert.Nil(t, c.DropTarget())
	assert.False(t, c.CommitDrop())

	c.SelectAll(SelectAllOff)
	c.SetDropTarget(c.Page(1), DropAfter)
	assert.False(t, c.CommitDrop(), "nothing selected")
	assert.Nil(t, c.DropTarget())
}

func TestEditComment(t *testing.T) {
	c := newLoaded(t, 2)
	prompter := &fakePrompter{answer: "needs signature"}
	assert.False(t, c.EditComment(prompter), "no cursor")

	c.MoveNext()
	require.True(t, c.EditComment(prompter))
	assert.Equal(t, "needs signature", c.Page(0).Comment())

	cancel := &fakePrompter{cancel: true, answer: "ignored"}
	c.EditComment(cancel)
	assert.Equal(t, "needs signature", cancel.offered)
	assert.Equal(t, "needs signature", c.Page(0).Comment())
}

func TestDocumentNumber(t *testing.T) {
	c := newLoaded(t, 5)
	c.Page(0).ToggleSplitBefore()
	c.Page(2).ToggleSplitBefore()
	c.Page(3).Remove()

	assert.Equal(t, 1, c.DocumentNumber(0))
	assert.Equal(t, 1, c.DocumentNumber(1))
	assert.Equal(t, 2, c.DocumentNumber(2))
	assert.Equal(t, 0, c.DocumentNumber(3))
	assert.Equal(t, 2, c.DocumentNumber(4))
}

func TestSetCursorUnmagnifiesPrevious(t *testing.T) {
	c := newLoaded(t, 3)
	c.MoveNext()
	first := c.Cursor()
	first.Magnify()

	c.MoveNext()
	assert.False(t, first.Magnified())
	assert.True(t, c.CursorMoved())

	c.SetCursor(c.Cursor())
	assert.True(t, c.CursorMoved(), "same cursor is a no-op")
}
