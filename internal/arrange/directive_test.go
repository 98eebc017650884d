package arrange

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pagesOf(d Directive) [][]int {
	out := make([][]int, len(d.Docs))
	for i, doc := range d.Docs {
		out[i] = []int{}
		for _, e := range doc {
			out[i] = append(out[i], e.Page)
		}
	}
	return out
}

func TestProcessWithoutSplitsYieldsOneDocument(t *testing.T) {
	c := newLoaded(t, 5)
	d := c.Process()
	assert.Equal(t, []string{"test.pdf"}, d.Src)
	assert.Equal(t, [][]int{{1, 2, 3, 4, 5}}, pagesOf(d))
	assert.Equal(t, 5, d.PageCount())
}

func TestProcessSplitGrouping(t *testing.T) {
	c := newLoaded(t, 8)
	c.Page(2).ToggleSplitBefore()
	c.Page(5).ToggleSplitBefore()

	d := c.Process()
	assert.Equal(t, [][]int{{1, 2}, {3, 4, 5}, {6, 7, 8}}, pagesOf(d))
}

func TestProcessExcludesRemovedPages(t *testing.T) {
	c := newLoaded(t, 8)
	c.Page(2).Remove()
	c.Page(5).Remove()

	d := c.Process()
	assert.Equal(t, [][]int{{1, 2, 4, 5, 7, 8}}, pagesOf(d))
}

func TestProcessLeadingSplitAddsNoEmptyDocument(t *testing.T) {
	c := newLoaded(t, 3)
	c.Page(0).ToggleSplitBefore()
	c.Page(1).Remove()
	c.Page(2).ToggleSplitBefore()

	d := c.Process()
	assert.Equal(t, [][]int{{1}, {3}}, pagesOf(d))

	// A split on a page following only removed pages also starts nothing new.
	c = newLoaded(t, 3)
	c.Page(0).Remove()
	c.Page(1).ToggleSplitBefore()
	assert.Equal(t, [][]int{{2, 3}}, pagesOf(c.Process()))
}

func TestProcessAllRemovedYieldsOneEmptyDocument(t *testing.T) {
	c := newLoaded(t, 2)
	c.SelectAll(SelectAllOn)
	c.Remove()

	d := c.Process()
	require.Len(t, d.Docs, 1)
	assert.Empty(t, d.Docs[0])

	empty := NewCollection()
	assert.Len(t, empty.Process().Docs, 1)
}

func TestProcessFollowsSequenceOrderAndAttributes(t *testing.T) {
	c := newLoaded(t, 4)
	c.Page(3).SelectOn()
	c.MoveBefore(c.Page(0))
	c.SelectAll(SelectAllOff)
	c.Page(0).RotateLeft()
	c.Page(2).SetComment("blank")

	var notified []Directive
	c.OnProcess(func(d Directive) { notified = append(notified, d) })

	d := c.Process()
	require.Len(t, d.Docs, 1)
	assert.Equal(t, []Entry{
		{Page: 4, Rotation: 270},
		{Page: 1},
		{Page: 2, Comment: "blank"},
		{Page: 3},
	}, d.Docs[0])
	require.Len(t, notified, 1)
	assert.Equal(t, d, notified[0])
	assert.Equal(t, "4@270,1,2,3", d.Compact())
}

func TestDirectiveJSONShape(t *testing.T) {
	d := Directive{
		Src: []string{"scan.pdf"},
		Docs: [][]Entry{
			{{Page: 1}, {Page: 2, Rotation: 90}},
			{{Page: 3, Comment: "sign here"}},
		},
	}
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"src":["scan.pdf"],"docs":[["1","2@90"],[{"page":3,"comment":"sign here"}]]}`, string(data))

	var decoded Directive
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, d, decoded)
}

func TestParseEntry(t *testing.T) {
	e, err := ParseEntry("7@-90")
	require.NoError(t, err)
	assert.Equal(t, Entry{Page: 7, Rotation: 270}, e)

	_, err = ParseEntry("x@90")
	assert.Error(t, err)
	_, err = ParseEntry("0")
	assert.Error(t, err)
	_, err = ParseEntry("3@a")
	assert.Error(t, err)
}
