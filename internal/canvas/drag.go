package canvas

import (
	"math"

	"github.com/deckforge/deckforge/internal/model"
)

// Minimum element edge after an interactive resize, in logical units.
const minResizeEdge = 20.0

// BeginDrag starts dragging the element with the given id. The element must
// already be selected; anything else is a silent no-op.
func (c *Controller) BeginDrag(id string) {
	for _, s := range c.state.Selected {
		if s == id {
			if c.doc.Find(id) >= 0 {
				c.drag = &dragState{id: id}
			}
			return
		}
	}
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool {
	return c.drag != nil
}

// DragBy moves the dragged element by a screen-space delta. The delta
// converts to logical units through the zoom factor, and the position clamps
// so the element stays fully inside the canvas. Drag movement is free-form;
// grid snapping happens only on drop.
func (c *Controller) DragBy(screenDX, screenDY float64) {
	if c.drag == nil {
		return
	}
	i := c.doc.Find(c.drag.id)
	if i < 0 {
		// Deleted mid-drag; drop the drag rather than erroring.
		c.drag = nil
		return
	}
	el := c.doc.Elements[i]
	_, _, w, h := c.Bounds(el)

	nx := el.Position.X + screenDX/c.state.Zoom
	ny := el.Position.Y + screenDY/c.state.Zoom
	pos := clampToCanvas(nx, ny, w, h)
	c.doc.UpdateElement(el.ID, model.ElementPatch{Position: &pos})
}

// EndDrag commits the drag. When snapping is enabled the dropped position
// rounds to the nearest grid multiple, then clamps again so snapping cannot
// push the element off-canvas.
func (c *Controller) EndDrag() {
	if c.drag == nil {
		return
	}
	id := c.drag.id
	c.drag = nil

	i := c.doc.Find(id)
	if i < 0 {
		return
	}
	if !c.state.Grid.Snap || c.state.Grid.Size <= 0 {
		return
	}
	el := c.doc.Elements[i]
	_, _, w, h := c.Bounds(el)
	step := c.state.Grid.Size
	pos := clampToCanvas(
		math.Round(el.Position.X/step)*step,
		math.Round(el.Position.Y/step)*step,
		w, h,
	)
	c.doc.UpdateElement(id, model.ElementPatch{Position: &pos})
}

// Handle names a resize handle.
type Handle int

const (
	HandleN Handle = iota
	HandleS
	HandleE
	HandleW
	HandleNE
	HandleNW
	HandleSE
	HandleSW
)

// Resize adjusts the selected element's size, moving its origin for the
// handles that drag the top or left edge. Screen deltas convert through the
// zoom factor and round to the nearest integer logical unit, so fractional
// zoom levels cannot accumulate sub-unit drift. Resize always writes plain
// numbers: an auto-sized element becomes fixed at its measured size first.
func (c *Controller) Resize(handle Handle, screenDX, screenDY float64) {
	el, ok := c.SelectedElement()
	if !ok {
		return
	}
	_, _, w, h := c.Bounds(el)

	dx := math.Round(screenDX / c.state.Zoom)
	dy := math.Round(screenDY / c.state.Zoom)

	x, y := el.Position.X, el.Position.Y
	switch handle {
	case HandleE:
		w += dx
	case HandleW:
		x += dx
		w -= dx
	case HandleS:
		h += dy
	case HandleN:
		y += dy
		h -= dy
	case HandleSE:
		w += dx
		h += dy
	case HandleNE:
		w += dx
		y += dy
		h -= dy
	case HandleSW:
		x += dx
		w -= dx
		h += dy
	case HandleNW:
		x += dx
		w -= dx
		y += dy
		h -= dy
	}

	if w < minResizeEdge {
		w = minResizeEdge
	}
	if h < minResizeEdge {
		h = minResizeEdge
	}
	pos := clampToCanvas(x, y, w, h)
	width := model.Units(w)
	height := model.Units(h)
	c.doc.UpdateElement(el.ID, model.ElementPatch{Position: &pos, Width: &width, Height: &height})
}

// Definition is a palette entry: a prototype element created by dropping it
// onto the canvas.
type Definition struct {
	Name      string
	Prototype model.Element
}

// DropCreate creates a new element from a palette definition dropped at a
// screen-space point relative to the canvas origin. The spawn position
// centers the definition's default size on the drop point (converted by the
// zoom factor), clamped to non-negative coordinates. The new element renders
// on top.
func (c *Controller) DropCreate(def Definition, screenX, screenY float64) (model.Element, error) {
	proto := def.Prototype.Clone()
	proto.ID = ""

	w := proto.Size.Width.Value
	h := proto.Size.Height.Value

	lx := screenX/c.state.Zoom - w/2
	ly := screenY/c.state.Zoom - h/2
	if lx < 0 {
		lx = 0
	}
	if ly < 0 {
		ly = 0
	}
	proto.Position = model.Position{X: lx, Y: ly}
	proto.ZIndex = c.doc.MaxZIndex() + 1

	created, err := c.doc.CreateElement(proto)
	if err != nil {
		return model.Element{}, err
	}
	c.state.Selected = []string{created.ID}
	return created, nil
}

// clampToCanvas keeps an element of size w×h fully inside the logical
// canvas. Oversized elements pin to the origin.
func clampToCanvas(x, y, w, h float64) model.Position {
	maxX := model.CanvasWidth - w
	maxY := model.CanvasHeight - h
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x > maxX {
		x = maxX
	}
	if y > maxY {
		y = maxY
	}
	return model.Position{X: x, Y: y}
}
