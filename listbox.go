package rampart

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ListItem is one entry in a ListBox. Lines is the item's height in text
// lines; multi-line items simply occupy more vertical space.
type ListItem struct {
	Text  string
	Lines int
	Tag   any
}

// Key-repeat timing, in seconds.
const (
	listRepeatDelay    = 0.45
	listRepeatInterval = 0.05
)

// ListBox is a scrollable, variable-row-height item list. It consumes wheel
// scrolling and left clicks through the ordinary routing contract, and moves
// its selection with the arrow keys while it holds input focus
// (Manager.Select), with key repeat after a short delay.
type ListBox struct {
	ControlBase

	items    []ListItem
	topIndex int
	selected int

	// LineHeight is the height of one text line in back-buffer pixels.
	LineHeight float64

	SelectedColor Color
	TextOnly      bool

	// OnSelect fires whenever the selected index changes, by click or key.
	OnSelect func(index int)

	repeatKey ebiten.Key
	repeatAcc float64
}

// NewListBox creates an empty list box with the given name.
func NewListBox(name string) *ListBox {
	lb := &ListBox{
		LineHeight:    16,
		selected:      -1,
		SelectedColor: Color{R: 0.25, G: 0.4, B: 0.6, A: 1},
	}
	lb.init(name)
	lb.Consumes = ConsumeScroll | ConsumeLeft
	lb.OnScroll = func(ev *InputEvent) {
		lb.scrollBy(int(-ev.ScrollY))
	}
	lb.OnLeftDown = func(ev *InputEvent) {
		if i := lb.indexAt(ev.Y); i >= 0 {
			lb.SetSelected(i)
		}
	}
	return lb
}

// AddItem appends a one-line item.
func (lb *ListBox) AddItem(text string) {
	lb.items = append(lb.items, ListItem{Text: text, Lines: 1})
}

// AddListItem appends an item with explicit line count and tag. Lines below
// 1 are treated as 1.
func (lb *ListBox) AddListItem(item ListItem) {
	if item.Lines < 1 {
		item.Lines = 1
	}
	lb.items = append(lb.items, item)
}

// Clear removes all items and resets scrolling and selection.
func (lb *ListBox) Clear() {
	lb.items = lb.items[:0]
	lb.topIndex = 0
	lb.selected = -1
}

// Items returns the item list. The returned slice MUST NOT be mutated.
func (lb *ListBox) Items() []ListItem { return lb.items }

// Selected returns the selected index, or -1 when nothing is selected.
func (lb *ListBox) Selected() int { return lb.selected }

// SelectedItem returns the selected item, or nil.
func (lb *ListBox) SelectedItem() *ListItem {
	if lb.selected < 0 || lb.selected >= len(lb.items) {
		return nil
	}
	return &lb.items[lb.selected]
}

// SetSelected changes the selection, scrolls the minimal amount needed to
// keep the item fully visible, and fires OnSelect if the index changed.
func (lb *ListBox) SetSelected(index int) {
	if index < -1 || index >= len(lb.items) {
		return
	}
	changed := index != lb.selected
	lb.selected = index
	if index >= 0 {
		lb.scrollToSelection()
	}
	if changed && lb.OnSelect != nil {
		lb.OnSelect(index)
	}
}

// TopIndex returns the index of the first visible item.
func (lb *ListBox) TopIndex() int { return lb.topIndex }

// itemHeight returns the height of item i in back-buffer pixels.
func (lb *ListBox) itemHeight(i int) float64 {
	lines := lb.items[i].Lines
	if lines < 1 {
		lines = 1
	}
	return float64(lines) * lb.LineHeight
}

// itemTop returns item i's offset from the top of the full item run.
func (lb *ListBox) itemTop(i int) float64 {
	var y float64
	for j := 0; j < i; j++ {
		y += lb.itemHeight(j)
	}
	return y
}

// scrollToSelection raises or lowers topIndex just enough that the selected
// item is fully inside the viewport. A selection above the viewport becomes
// the top item; a selection below scrolls the minimal number of rows so its
// bottom edge no longer exceeds the viewport. Never more, never less.
func (lb *ListBox) scrollToSelection() {
	if lb.selected < lb.topIndex {
		lb.topIndex = lb.selected
		return
	}
	bottom := lb.itemTop(lb.selected) + lb.itemHeight(lb.selected)
	for lb.topIndex < lb.selected && bottom-lb.itemTop(lb.topIndex) > lb.Height {
		lb.topIndex++
	}
}

// scrollBy moves the top index by delta rows. The upper clamp is the last
// top index whose remaining items still fill the viewport, so wheel
// scrolling cannot park the view with a mostly empty page.
func (lb *ListBox) scrollBy(delta int) {
	lb.topIndex += delta
	if max := lb.maxTopIndex(); lb.topIndex > max {
		lb.topIndex = max
	}
	if lb.topIndex < 0 {
		lb.topIndex = 0
	}
}

// maxTopIndex returns the smallest top index from which the run of items to
// the end fits inside the viewport. Zero when everything fits.
func (lb *ListBox) maxTopIndex() int {
	if len(lb.items) == 0 {
		return 0
	}
	top := len(lb.items) - 1
	var run float64
	for i := len(lb.items) - 1; i >= 0; i-- {
		run += lb.itemHeight(i)
		if run > lb.Height {
			break
		}
		top = i
	}
	return top
}

// indexAt maps a back-buffer y coordinate to the item under it, or -1.
func (lb *ListBox) indexAt(y float64) int {
	r := lb.WindowRect()
	s := lb.drawScale()
	local := (y - r.Y) / s
	offset := lb.itemTop(lb.topIndex)
	for i := lb.topIndex; i < len(lb.items); i++ {
		top := lb.itemTop(i) - offset
		if top > lb.Height {
			break
		}
		if local >= top && local < top+lb.itemHeight(i) {
			return i
		}
	}
	return -1
}

func (lb *ListBox) drawScale() float64 {
	if lb.parent == nil {
		return 1
	}
	return lb.parent.UI().cumulativeScale()
}

// Update implements Control. Arrow-key selection movement runs only while
// the list box holds input focus, with repeat driven by elapsed-time
// accumulators rather than OS key repeat.
func (lb *ListBox) Update(m *Manager) {
	lb.ControlBase.Update(m)

	sel := m.Selected()
	if sel == nil || sel.UI() != lb.UI() {
		lb.repeatKey = ebiten.Key(-1)
		lb.repeatAcc = 0
		return
	}

	dt := 1.0 / float64(ebiten.TPS())
	lb.stepKey(m, ebiten.KeyArrowUp, -1, dt)
	lb.stepKey(m, ebiten.KeyArrowDown, +1, dt)
}

func (lb *ListBox) stepKey(m *Manager, k ebiten.Key, dir int, dt float64) {
	if m.KeyJustPressed(k) {
		lb.repeatKey = k
		lb.repeatAcc = 0
		lb.moveSelection(dir)
		return
	}
	if !m.KeyDown(k) {
		if lb.repeatKey == k {
			lb.repeatKey = ebiten.Key(-1)
			lb.repeatAcc = 0
		}
		return
	}
	if lb.repeatKey != k {
		return
	}
	lb.repeatAcc += dt
	for lb.repeatAcc >= listRepeatDelay+listRepeatInterval {
		lb.repeatAcc -= listRepeatInterval
		lb.moveSelection(dir)
	}
}

func (lb *ListBox) moveSelection(dir int) {
	if len(lb.items) == 0 {
		return
	}
	next := lb.selected + dir
	if lb.selected < 0 {
		next = 0
	}
	if next < 0 || next >= len(lb.items) {
		return
	}
	lb.SetSelected(next)
}

// Draw implements Control. Items are clipped to the list's window rectangle
// via a sub-image so partial rows at the bottom cannot bleed past the edge.
func (lb *ListBox) Draw(dst *ebiten.Image) {
	lb.ControlBase.Draw(dst)

	r := lb.WindowRect()
	clipRect := image.Rect(int(r.X), int(r.Y), int(r.Right()), int(r.Bottom()))
	clip, ok := dst.SubImage(clipRect).(*ebiten.Image)
	if !ok {
		return
	}

	s := lb.drawScale()
	offset := lb.itemTop(lb.topIndex)
	for i := lb.topIndex; i < len(lb.items); i++ {
		top := lb.itemTop(i) - offset
		if top > lb.Height {
			break
		}
		y := r.Y + top*s
		h := lb.itemHeight(i) * s
		if i == lb.selected && !lb.TextOnly {
			c := lb.SelectedColor
			c.A *= lb.Alpha
			vector.DrawFilledRect(clip, float32(r.X), float32(y),
				float32(r.Width), float32(h), c.toRGBA(), false)
		}
		ebitenutil.DebugPrintAt(clip, lb.items[i].Text, int(r.X)+2, int(y))
	}
}
