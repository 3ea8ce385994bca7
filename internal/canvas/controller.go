// Package canvas maintains the ephemeral editing state of one slide:
// selection, hover, drag, resize, zoom, and grid snapping. The state lives
// for a single editing session and is never persisted. Every operation is a
// total function over the current state; operations referencing a missing
// element id are silent no-ops so UI races never crash the session.
package canvas

import (
	"github.com/deckforge/deckforge/internal/model"
	"github.com/deckforge/deckforge/internal/resolver"
)

// GridSettings controls the editing grid overlay and commit-time snapping.
type GridSettings struct {
	Visible bool
	Snap    bool
	Size    float64
}

// State is the ephemeral interaction state of an editing session.
type State struct {
	Selected      []string
	Hovered       string
	Zoom          float64
	Grid          GridSettings
	GuidesVisible bool
}

// Controller drives the interaction state machine over a document. It
// mutates the document only through the model's operations.
type Controller struct {
	doc     *model.Document
	ctx     resolver.Context
	state   State
	zoomIdx int
	drag    *dragState
}

type dragState struct {
	id string
}

const defaultGridSize = 20.0

// NewController creates a controller over doc with zoom 1.0 and the grid
// visible but not snapping.
func NewController(doc *model.Document) *Controller {
	return &Controller{
		doc:     doc,
		zoomIdx: fitZoomIndex,
		state: State{
			Zoom: zoomLevels[fitZoomIndex],
			Grid: GridSettings{Visible: true, Size: defaultGridSize},
		},
	}
}

// SetResolveContext supplies the ambient resolution inputs used to compute
// rendered bounds for auto-sized elements. Hit testing uses the same
// resolver as the renderers, so pointer bounds always match drawn bounds.
func (c *Controller) SetResolveContext(ctx resolver.Context) {
	c.ctx = ctx
}

// ResolveContext returns the ambient resolution inputs.
func (c *Controller) ResolveContext() resolver.Context {
	return c.ctx
}

// Document returns the document under edit.
func (c *Controller) Document() *model.Document {
	return c.doc
}

// State returns a copy of the current interaction state.
func (c *Controller) State() State {
	s := c.state
	s.Selected = append([]string(nil), c.state.Selected...)
	return s
}

// Bounds returns the rendered bounds of an element: stored position plus
// resolved size (auto sizes measured).
func (c *Controller) Bounds(el model.Element) (x, y, w, h float64) {
	res := resolver.Resolve(el, c.ctx)
	return el.Position.X, el.Position.Y, res.Width, res.Height
}

// elementAt returns the top element under the logical point, by descending
// z-order (stable ties resolve to the later-inserted element).
func (c *Controller) elementAt(lx, ly float64) (model.Element, bool) {
	ordered := c.doc.RenderOrder()
	for i := len(ordered) - 1; i >= 0; i-- {
		x, y, w, h := c.Bounds(ordered[i])
		if lx >= x && lx <= x+w && ly >= y && ly <= y+h {
			return ordered[i], true
		}
	}
	return model.Element{}, false
}

// HoverAt sets the hovered element to the top element under the logical
// point, or clears it over empty canvas. Hover never changes selection.
func (c *Controller) HoverAt(lx, ly float64) {
	if el, ok := c.elementAt(lx, ly); ok {
		c.state.Hovered = el.ID
		return
	}
	c.state.Hovered = ""
}

// ClearHover clears the hovered element (pointer exit).
func (c *Controller) ClearHover() {
	c.state.Hovered = ""
}

// SelectAt selects the top element under the logical point, or clears the
// selection when the point is over empty canvas.
func (c *Controller) SelectAt(lx, ly float64) {
	if el, ok := c.elementAt(lx, ly); ok {
		c.state.Selected = []string{el.ID}
		return
	}
	c.DeselectAll()
}

// Select replaces the selection with the given id. No-op for missing ids.
func (c *Controller) Select(id string) {
	if c.doc.Find(id) < 0 {
		return
	}
	c.state.Selected = []string{id}
}

// AddToSelection appends an id for bulk operations. Property editing still
// requires exactly one selected element.
func (c *Controller) AddToSelection(id string) {
	if c.doc.Find(id) < 0 {
		return
	}
	for _, s := range c.state.Selected {
		if s == id {
			return
		}
	}
	c.state.Selected = append(c.state.Selected, id)
}

// DeselectAll clears the selection.
func (c *Controller) DeselectAll() {
	c.state.Selected = nil
	c.drag = nil
}

// SelectedElement returns the single selected element. It reports false
// when the selection is empty or holds more than one id, since only a
// single element is editable in the properties surface at a time.
func (c *Controller) SelectedElement() (model.Element, bool) {
	if len(c.state.Selected) != 1 {
		return model.Element{}, false
	}
	i := c.doc.Find(c.state.Selected[0])
	if i < 0 {
		return model.Element{}, false
	}
	return c.doc.Elements[i], true
}

// DeleteSelected removes every selected element (bulk operation) and clears
// the selection. Missing ids are skipped silently.
func (c *Controller) DeleteSelected() {
	for _, id := range c.state.Selected {
		c.doc.DeleteElement(id)
		if c.state.Hovered == id {
			c.state.Hovered = ""
		}
	}
	c.DeselectAll()
}

// DuplicateSelected duplicates every selected element (bulk operation) and
// moves the selection to the duplicates.
func (c *Controller) DuplicateSelected() {
	var dups []string
	for _, id := range c.state.Selected {
		if dup, ok := c.doc.DuplicateElement(id); ok {
			dups = append(dups, dup.ID)
		}
	}
	c.state.Selected = dups
	c.drag = nil
}

// ToggleGrid flips grid visibility.
func (c *Controller) ToggleGrid() {
	c.state.Grid.Visible = !c.state.Grid.Visible
}

// ToggleSnap flips commit-time grid snapping.
func (c *Controller) ToggleSnap() {
	c.state.Grid.Snap = !c.state.Grid.Snap
}

// ToggleGuides flips guide visibility.
func (c *Controller) ToggleGuides() {
	c.state.GuidesVisible = !c.state.GuidesVisible
}
