// Package arrange holds the page arrangement model: the pages of a loaded
// document, their selection, cursor, drop target and tool mode, and the
// flattening of that state into a Directive.
package arrange

import (
	"fmt"
	"sort"
)

// Mode is the single armed tool. At most one mode is active at a time.
type Mode string

const (
	ModeNone        Mode = ""
	ModeSelect      Mode = "select"
	ModeMagnify     Mode = "magnify"
	ModeSplitBefore Mode = "split-before"
	ModeRotateLeft  Mode = "rotate-left"
	ModeRotateRight Mode = "rotate-right"
	ModeRemove      Mode = "remove"
)

// SelectAllMode picks the behaviour of Collection.SelectAll.
type SelectAllMode int

const (
	SelectAllOn SelectAllMode = iota
	SelectAllOff
	SelectAllInverse
)

// Prompter asks the user for a comment. done must be called exactly once, with
// the edited text on confirm or the original value on cancel.
type Prompter interface {
	Prompt(value string, done func(string))
}

// Collection is the ordered sequence of pages plus the interaction state shared
// between them.
type Collection struct {
	source     string
	sequence   []*Page
	selection  map[*Page]struct{}
	cursor     *Page
	moved      bool
	dropTarget *Page
	mode       Mode
	placement  Placement
	splitCount int

	processListeners []func(Directive)
}

// NewCollection creates an empty collection with a single-column placement.
func NewCollection() *Collection {
	return &Collection{
		selection: make(map[*Page]struct{}),
		placement: GridPlacement{Columns: 1},
	}
}

// ===== LIFECYCLE =====

// Clear tears down all page state: selection and cursor first, then pages.
func (c *Collection) Clear(source string) {
	c.SelectAll(SelectAllOff)
	c.SetCursor(nil)
	c.moved = false
	c.ClearDropTarget()
	c.sequence = nil
	c.selection = make(map[*Page]struct{})
	c.splitCount = 0
	c.source = source
}

// Load rebuilds the sequence with numPages fresh pages in natural order.
func (c *Collection) Load(source string, numPages int) {
	c.Clear(source)
	if numPages <= 0 {
		return
	}
	c.sequence = make([]*Page, numPages)
	for i := range c.sequence {
		c.sequence[i] = NewPage(i+1, c)
	}
}

func (c *Collection) Source() string { return c.source }
func (c *Collection) Len() int       { return len(c.sequence) }

// Pages returns a copy of the current sequence.
func (c *Collection) Pages() []*Page {
	out := make([]*Page, len(c.sequence))
	copy(out, c.sequence)
	return out
}

// Page returns the page at a sequence position, or nil.
func (c *Collection) Page(pos int) *Page {
	if pos < 0 || pos >= len(c.sequence) {
		return nil
	}
	return c.sequence[pos]
}

// Position returns the sequence position of p, or -1.
func (c *Collection) Position(p *Page) int {
	if p == nil {
		return -1
	}
	for i, candidate := range c.sequence {
		if candidate == p {
			return i
		}
	}
	return -1
}

// OnProcess registers a listener notified by every Process call.
func (c *Collection) OnProcess(fn func(Directive)) {
	if fn != nil {
		c.processListeners = append(c.processListeners, fn)
	}
}

// ===== SELECTION =====

func (c *Collection) addSelect(p *Page) {
	c.selection[p] = struct{}{}
}

func (c *Collection) delSelect(p *Page) {
	delete(c.selection, p)
}

func (c *Collection) SelectedCount() int { return len(c.selection) }

// IsSelected reports set membership, independent of the page flag.
func (c *Collection) IsSelected(p *Page) bool {
	_, ok := c.selection[p]
	return ok
}

// SelectedSorted returns the selected pages in sequence order.
func (c *Collection) SelectedSorted() []*Page {
	out := make([]*Page, 0, len(c.selection))
	for p := range c.selection {
		out = append(out, p)
	}
	if len(out) < 2 {
		return out
	}
	positions := make(map[*Page]int, len(c.sequence))
	for i, p := range c.sequence {
		positions[p] = i
	}
	sort.Slice(out, func(i, j int) bool {
		return positions[out[i]] < positions[out[j]]
	})
	return out
}

// SelectAll selects, deselects or inverts every page and returns how many
// pages it touched. Removed pages are skipped by SelectAllOn and
// SelectAllInverse alike.
func (c *Collection) SelectAll(mode SelectAllMode) int {
	n := 0
	switch mode {
	case SelectAllOn:
		for _, p := range c.sequence {
			if p.removed {
				continue
			}
			p.SelectOn()
			n++
		}
	case SelectAllOff:
		for _, p := range c.SelectedSorted() {
			p.SelectOff()
			n++
		}
	case SelectAllInverse:
		for _, p := range c.sequence {
			if p.removed {
				continue
			}
			p.SelectToggle()
			n++
		}
	}
	return n
}

// DeselectAllExceptFor clears every selected page other than keep.
func (c *Collection) DeselectAllExceptFor(keep *Page) {
	for _, p := range c.SelectedSorted() {
		if p != keep {
			p.SelectOff()
		}
	}
}

// ===== CURSOR =====

func (c *Collection) Cursor() *Page { return c.cursor }

// CursorMoved reports whether the cursor arrived by keyboard navigation and
// should be highlighted and scrolled into view.
func (c *Collection) CursorMoved() bool { return c.moved && c.cursor != nil }

// SetCursor moves keyboard focus. The old cursor loses its highlight and is
// unmagnified.
func (c *Collection) SetCursor(p *Page) {
	if c.cursor == p {
		return
	}
	if c.cursor != nil {
		c.moved = false
		c.cursor.Unmagnify()
	}
	c.cursor = p
}

// ===== DROP TARGET =====

func (c *Collection) DropTarget() *Page { return c.dropTarget }

// SetDropTarget marks p as the pending drop target on the given side.
func (c *Collection) SetDropTarget(p *Page, side DropSide) {
	if c.dropTarget != nil && c.dropTarget != p {
		c.dropTarget.dropSide = DropNone
	}
	c.dropTarget = p
	if p != nil {
		p.dropSide = side
	}
}

func (c *Collection) ClearDropTarget() {
	if c.dropTarget != nil {
		c.dropTarget.dropSide = DropNone
	}
	c.dropTarget = nil
}

// CommitDrop moves the selection to the pending drop target.
func (c *Collection) CommitDrop() bool {
	target := c.dropTarget
	if target == nil {
		return false
	}
	side := target.dropSide
	c.ClearDropTarget()
	if len(c.selection) == 0 {
		return false
	}
	if side == DropBefore {
		return c.MoveBefore(target)
	}
	return c.MoveAfter(target)
}

// ===== MOVING =====

// MoveBefore reinserts the selection, in sequence order, right before target.
// A target that is itself selected is rejected.
func (c *Collection) MoveBefore(target *Page) bool {
	return c.moveSelection(target, 0)
}

// MoveAfter reinserts the selection, in sequence order, right after target.
func (c *Collection) MoveAfter(target *Page) bool {
	return c.moveSelection(target, 1)
}

func (c *Collection) moveSelection(target *Page, offset int) bool {
	if target == nil || len(c.selection) == 0 || c.IsSelected(target) {
		return false
	}
	if c.Position(target) < 0 {
		return false
	}

	moving := c.SelectedSorted()
	rest := make([]*Page, 0, len(c.sequence))
	for _, p := range c.sequence {
		if !c.IsSelected(p) {
			rest = append(rest, p)
		}
	}

	at := -1
	for i, p := range rest {
		if p == target {
			at = i + offset
			break
		}
	}

	sequence := make([]*Page, 0, len(c.sequence))
	sequence = append(sequence, rest[:at]...)
	sequence = append(sequence, moving...)
	sequence = append(sequence, rest[at:]...)
	c.sequence = sequence
	return true
}

// ===== MODES =====

func (c *Collection) Mode() Mode { return c.mode }

// ToggleMode activates m, or clears it when m is already active.
func (c *Collection) ToggleMode(m Mode) {
	if c.mode == m {
		c.mode = ModeNone
		return
	}
	c.mode = m
}

// ===== BULK ACTIONS =====

// Remove removes every selected page. With nothing selected it toggles the
// single-shot remove mode instead and returns 0.
func (c *Collection) Remove() int {
	return c.forEachSelectedOrArm(ModeRemove, (*Page).Remove)
}

func (c *Collection) RotateLeft() int {
	return c.forEachSelectedOrArm(ModeRotateLeft, (*Page).RotateLeft)
}

func (c *Collection) RotateRight() int {
	return c.forEachSelectedOrArm(ModeRotateRight, (*Page).RotateRight)
}

// SplitBefore toggles the split marker on every selected page and returns
// how many markers ended up set.
func (c *Collection) SplitBefore() int {
	return c.forEachSelectedOrArm(ModeSplitBefore, (*Page).ToggleSplitBefore)
}

func (c *Collection) forEachSelectedOrArm(m Mode, fn func(*Page) bool) int {
	if len(c.selection) == 0 {
		c.ToggleMode(m)
		return 0
	}
	n := 0
	for _, p := range c.SelectedSorted() {
		if fn(p) {
			n++
		}
	}
	return n
}

// ===== COUNTERS =====

func (c *Collection) calcSplitCount() {
	n := 0
	for _, p := range c.sequence {
		if p.splitBefore {
			n++
		}
	}
	c.splitCount = n
}

func (c *Collection) SplitCount() int { return c.splitCount }

func (c *Collection) RemovedCount() int {
	n := 0
	for _, p := range c.sequence {
		if p.removed {
			n++
		}
	}
	return n
}

// DocumentNumber returns the 1-based output document the page at pos falls
// into, or 0 for removed pages.
func (c *Collection) DocumentNumber(pos int) int {
	doc := 0
	started := false
	for i, p := range c.sequence {
		if !p.removed {
			if !started {
				doc = 1
				started = true
			} else if p.splitBefore {
				doc++
			}
		}
		if i == pos {
			if p.removed {
				return 0
			}
			return doc
		}
	}
	return 0
}

// ===== COMMENTS =====

// EditComment prompts for the cursor page's comment and stores the answer on
// that same page.
func (c *Collection) EditComment(prompter Prompter) bool {
	target := c.cursor
	if target == nil || prompter == nil {
		return false
	}
	prompter.Prompt(target.comment, func(text string) {
		target.SetComment(text)
	})
	return true
}

// CheckInvariants verifies the selection mirror and removal rules.
func (c *Collection) CheckInvariants() error {
	inSequence := make(map[*Page]bool, len(c.sequence))
	for _, p := range c.sequence {
		inSequence[p] = true
		if p.selected != c.IsSelected(p) {
			return fmt.Errorf("page %d: selected flag %v disagrees with selection set", p.Index, p.selected)
		}
		if p.removed && (p.selected || p.splitBefore) {
			return fmt.Errorf("page %d: removed page is selected or split-marked", p.Index)
		}
	}
	for p := range c.selection {
		if !inSequence[p] {
			return fmt.Errorf("page %d: selected but not in sequence", p.Index)
		}
	}
	return nil
}
