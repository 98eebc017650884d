package arrange

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DropSide tells on which side of a drop target the moving pages will land.
type DropSide int

const (
	DropNone DropSide = iota
	DropBefore
	DropAfter
)

// Page is one source page in the arrangement. Its position is its place in the
// owning Collection's sequence; Index only identifies it in the output.
type Page struct {
	Index int

	removed     bool
	selected    bool
	splitBefore bool
	magnified   bool
	dragged     bool
	rotation    int
	comment     string
	dropSide    DropSide

	scrollX int
	scrollY int

	handle    any
	requested bool

	owner *Collection
}

// NewPage creates a page for the 1-based source page index. owner may be nil.
func NewPage(index int, owner *Collection) *Page {
	return &Page{Index: index, owner: owner}
}

func (p *Page) Removed() bool      { return p.removed }
func (p *Page) Selected() bool     { return p.selected }
func (p *Page) SplitBefore() bool  { return p.splitBefore }
func (p *Page) Magnified() bool    { return p.magnified }
func (p *Page) Dragged() bool      { return p.dragged }
func (p *Page) DropSide() DropSide { return p.dropSide }
func (p *Page) Comment() string    { return p.comment }
func (p *Page) RawRotation() int   { return p.rotation }

// Rotation returns the accumulated rotation normalized into [0,360).
func (p *Page) Rotation() int {
	return NormalizeRotation(p.rotation)
}

// NormalizeRotation maps any multiple of 90 into {0, 90, 180, 270}.
func NormalizeRotation(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

// ===== REMOVAL =====

// Remove marks the page as excluded from the output.
func (p *Page) Remove() bool {
	if p.removed {
		return false
	}
	p.Unmagnify()
	p.removed = true
	p.splitBefore = false
	p.SelectOff()
	if p.owner != nil {
		p.owner.calcSplitCount()
	}
	return true
}

// Unremove revives a removed page. Selection stays off.
func (p *Page) Unremove() bool {
	if !p.removed {
		return false
	}
	p.removed = false
	p.SelectOff()
	return true
}

// ===== SELECTION =====

// SelectOn adds the page to the selection. On a removed page it revives the
// page instead.
func (p *Page) SelectOn() bool {
	if p.removed {
		return p.Unremove()
	}
	if p.selected {
		return false
	}
	p.selected = true
	if p.owner != nil {
		p.owner.addSelect(p)
	}
	return true
}

// SelectOff drops the page from the selection.
func (p *Page) SelectOff() bool {
	if !p.selected {
		return false
	}
	p.selected = false
	p.dragged = false
	if p.owner != nil {
		p.owner.delSelect(p)
	}
	return true
}

func (p *Page) SelectToggle() bool {
	if p.selected {
		return p.SelectOff()
	}
	return p.SelectOn()
}

// ===== SPLIT & ROTATION =====

// ToggleSplitBefore flips the split marker and returns its new value. Split
// marking always leaves the page deselected.
func (p *Page) ToggleSplitBefore() bool {
	if p.removed {
		return false
	}
	p.splitBefore = !p.splitBefore
	if p.owner != nil {
		p.owner.calcSplitCount()
	}
	p.SelectOff()
	return p.splitBefore
}

func (p *Page) RotateLeft() bool {
	if p.removed {
		return false
	}
	p.rotation -= 90
	return true
}

func (p *Page) RotateRight() bool {
	if p.removed {
		return false
	}
	p.rotation += 90
	return true
}

// ===== MAGNIFIER =====

func (p *Page) Magnify() bool {
	if p.removed {
		return false
	}
	p.magnified = true
	p.scrollX = 0
	p.scrollY = 0
	return true
}

func (p *Page) Unmagnify() bool {
	if !p.magnified {
		return false
	}
	p.magnified = false
	return true
}

// Scroll returns the pan offset of a magnified page.
func (p *Page) Scroll() (int, int) {
	return p.scrollX, p.scrollY
}

// ScrollTo pans the magnified view, clamping into [0,maxX]x[0,maxY].
func (p *Page) ScrollTo(x, y, maxX, maxY int) bool {
	if !p.magnified {
		return false
	}
	p.scrollX = clamp(x, 0, maxX)
	p.scrollY = clamp(y, 0, maxY)
	return true
}

// ScrollBy pans the magnified view relative to its current offset.
func (p *Page) ScrollBy(dx, dy, maxX, maxY int) bool {
	return p.ScrollTo(p.scrollX+dx, p.scrollY+dy, maxX, maxY)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ===== COMMENT =====

func (p *Page) SetComment(text string) {
	p.comment = norm.NFC.String(strings.TrimSpace(text))
}

// ===== RENDER HANDLE =====

// MarkRequested reports true only the first time it is called, so a render
// fetch is issued at most once per page.
func (p *Page) MarkRequested() bool {
	if p.requested || p.handle != nil {
		return false
	}
	p.requested = true
	return true
}

// AttachHandle stores the render handle unless one is already set.
func (p *Page) AttachHandle(h any) bool {
	if p.handle != nil || h == nil {
		return false
	}
	p.handle = h
	p.requested = true
	return true
}

func (p *Page) Handle() any { return p.handle }

// ===== POINTER INTERACTION =====

// Click applies a pointer click. Without ctrl and without an armed mode the
// click replaces the selection. An armed tool mode is consumed by the click.
func (p *Page) Click(ctrl bool) {
	c := p.owner
	if c != nil && !ctrl && c.mode == ModeNone {
		c.DeselectAllExceptFor(p)
	}

	if c != nil {
		c.SetCursor(p)
		c.moved = false

		if !p.removed {
			switch c.mode {
			case ModeMagnify:
				p.Magnify()
				c.ToggleMode(ModeMagnify)
				return
			case ModeSplitBefore:
				p.ToggleSplitBefore()
				c.ToggleMode(ModeSplitBefore)
				return
			case ModeRotateLeft:
				p.RotateLeft()
				c.ToggleMode(ModeRotateLeft)
				return
			case ModeRotateRight:
				p.RotateRight()
				c.ToggleMode(ModeRotateRight)
				return
			case ModeRemove:
				p.Remove()
				c.ToggleMode(ModeRemove)
				return
			}
		}
	}

	p.SelectToggle()
}

// PointerBefore reports whether x (relative to the tile's left edge) lies in
// the left half of a tile of the given width.
func PointerBefore(x, width int) bool {
	return x*2 < width
}

// DragStart selects the page and marks every selected page as dragged.
// Removed pages cannot be dragged.
func (p *Page) DragStart() bool {
	if p.removed {
		return false
	}
	p.SelectOn()
	if p.owner == nil {
		p.dragged = true
		return true
	}
	for _, sel := range p.owner.SelectedSorted() {
		sel.dragged = true
	}
	return true
}

// DragOver makes the page the pending drop target on the side under the pointer.
func (p *Page) DragOver(x, width int) DropSide {
	side := DropAfter
	if PointerBefore(x, width) {
		side = DropBefore
	}
	if p.owner != nil {
		p.owner.SetDropTarget(p, side)
	} else {
		p.dropSide = side
	}
	return side
}

func (p *Page) DragLeave() {
	if p.owner != nil && p.owner.dropTarget == p {
		p.owner.ClearDropTarget()
	}
	p.dropSide = DropNone
}

// Drop moves the selection next to this page.
func (p *Page) Drop(x, width int) bool {
	p.DragLeave()
	if p.owner == nil {
		return false
	}
	if PointerBefore(x, width) {
		return p.owner.MoveBefore(p)
	}
	return p.owner.MoveAfter(p)
}

// DragEnd clears the dragged marks and any pending drop target.
func (p *Page) DragEnd() {
	if p.owner == nil {
		p.dragged = false
		return
	}
	for _, sel := range p.owner.sequence {
		sel.dragged = false
	}
	p.owner.ClearDropTarget()
}
