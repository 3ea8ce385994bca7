package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckforge/deckforge/internal/model"
)

func newDoc(els ...model.Element) *model.Document {
	return &model.Document{ID: "slide-1", Elements: els}
}

func shape(id string, x, y, w, h float64, z int) model.Element {
	return model.Element{
		ID:       id,
		Variant:  model.VariantShape,
		Position: model.Position{X: x, Y: y},
		Size:     model.Size{Width: model.Units(w), Height: model.Units(h)},
		ZIndex:   z,
		Shape:    &model.ShapeSpec{Config: model.ShapeConfig{Kind: model.ShapeRectangle}},
	}
}

func TestHoverTopZOrderWins(t *testing.T) {
	// Two overlapping shapes; the higher z-index wins the pointer.
	c := NewController(newDoc(
		shape("below", 100, 100, 200, 200, 1),
		shape("above", 150, 150, 200, 200, 5),
	))

	c.HoverAt(200, 200)
	assert.Equal(t, "above", c.State().Hovered)

	c.HoverAt(110, 110) // only "below" covers this point
	assert.Equal(t, "below", c.State().Hovered)

	c.HoverAt(1800, 900) // empty canvas
	assert.Equal(t, "", c.State().Hovered)
}

func TestHoverNeverChangesSelection(t *testing.T) {
	c := NewController(newDoc(shape("a", 0, 0, 100, 100, 1), shape("b", 500, 500, 100, 100, 2)))
	c.Select("a")
	c.HoverAt(550, 550)
	st := c.State()
	assert.Equal(t, "b", st.Hovered)
	require.Len(t, st.Selected, 1)
	assert.Equal(t, "a", st.Selected[0])
}

func TestSelectAtAndDeselect(t *testing.T) {
	c := NewController(newDoc(shape("a", 100, 100, 200, 200, 1)))

	c.SelectAt(150, 150)
	require.Equal(t, []string{"a"}, c.State().Selected)

	// Click on empty canvas clears the selection.
	c.SelectAt(1500, 900)
	assert.Empty(t, c.State().Selected)
}

func TestSelectedElementRequiresExactlyOne(t *testing.T) {
	c := NewController(newDoc(shape("a", 0, 0, 50, 50, 1), shape("b", 100, 100, 50, 50, 2)))
	c.Select("a")
	c.AddToSelection("b")

	_, ok := c.SelectedElement()
	assert.False(t, ok, "multi-select must not expose a property-editing target")

	c.Select("b")
	el, ok := c.SelectedElement()
	require.True(t, ok)
	assert.Equal(t, "b", el.ID)
}

func TestDragClampsToCanvas(t *testing.T) {
	c := NewController(newDoc(shape("a", 100, 100, 200, 150, 1)))
	c.Select("a")
	c.BeginDrag("a")

	// A huge negative delta must clamp to the origin, never below zero.
	c.DragBy(-1e6, -1e6)
	el := c.Document().Elements[0]
	assert.Equal(t, 0.0, el.Position.X)
	assert.Equal(t, 0.0, el.Position.Y)

	// A huge positive delta must clamp so the element stays inside.
	c.DragBy(1e6, 1e6)
	el = c.Document().Elements[0]
	assert.Equal(t, model.CanvasWidth-200, el.Position.X)
	assert.Equal(t, model.CanvasHeight-150, el.Position.Y)
}

func TestDragIsFreeFormSnapOnDropOnly(t *testing.T) {
	c := NewController(newDoc(shape("a", 100, 100, 50, 50, 1)))
	c.ToggleSnap()
	c.Select("a")
	c.BeginDrag("a")

	c.DragBy(7, 13) // zoom 1.0, so logical (7,13)
	el := c.Document().Elements[0]
	assert.Equal(t, 107.0, el.Position.X, "drag itself must stay free-form")
	assert.Equal(t, 113.0, el.Position.Y)

	c.EndDrag()
	el = c.Document().Elements[0]
	assert.Equal(t, 100.0, el.Position.X, "drop must snap to the nearest grid multiple")
	assert.Equal(t, 120.0, el.Position.Y)
}

func TestDragRespectsZoom(t *testing.T) {
	c := NewController(newDoc(shape("a", 100, 100, 50, 50, 1)))
	c.ZoomIn() // 1.25
	c.Select("a")
	c.BeginDrag("a")
	c.DragBy(125, 0) // screen delta / zoom = 100 logical units
	assert.Equal(t, 200.0, c.Document().Elements[0].Position.X)
}

func TestDragOfDeletedElementIsNoOp(t *testing.T) {
	c := NewController(newDoc(shape("a", 100, 100, 50, 50, 1)))
	c.Select("a")
	c.BeginDrag("a")
	c.Document().DeleteElement("a")

	// Delete-then-drag must not panic or resurrect the element.
	c.DragBy(10, 10)
	c.EndDrag()
	assert.Empty(t, c.Document().Elements)
}

func TestResizeMovesOriginForTopLeftHandles(t *testing.T) {
	c := NewController(newDoc(shape("a", 100, 100, 200, 200, 1)))
	c.Select("a")

	c.Resize(HandleNW, -50, -30)
	el := c.Document().Elements[0]
	assert.Equal(t, 50.0, el.Position.X)
	assert.Equal(t, 70.0, el.Position.Y)
	assert.Equal(t, 250.0, el.Size.Width.Value)
	assert.Equal(t, 230.0, el.Size.Height.Value)
}

func TestResizeRoundsUnderFractionalZoom(t *testing.T) {
	c := NewController(newDoc(shape("a", 100, 100, 200, 200, 1)))
	c.ZoomOut() // 0.75
	c.Select("a")

	// 100 screen units at 0.75 zoom = 133.33 logical, rounds to 133.
	c.Resize(HandleE, 100, 0)
	el := c.Document().Elements[0]
	assert.Equal(t, 333.0, el.Size.Width.Value)
}

func TestResizeEnforcesMinimumEdge(t *testing.T) {
	c := NewController(newDoc(shape("a", 100, 100, 200, 200, 1)))
	c.Select("a")
	c.Resize(HandleSE, -1000, -1000)
	el := c.Document().Elements[0]
	assert.Equal(t, minResizeEdge, el.Size.Width.Value)
	assert.Equal(t, minResizeEdge, el.Size.Height.Value)
}

func TestResizeWritesNumbersNeverAuto(t *testing.T) {
	doc := newDoc(model.Element{
		ID:       "t",
		Variant:  model.VariantText,
		Position: model.Position{X: 10, Y: 10},
		Size:     model.Size{Width: model.Auto, Height: model.Auto},
		ZIndex:   1,
		Text:     &model.TextSpec{Config: model.TextConfig{DefaultValue: "hello"}},
	})
	c := NewController(doc)
	c.Select("t")
	c.Resize(HandleE, 50, 0)

	el := doc.Elements[0]
	assert.False(t, el.Size.Width.Auto, "resize must replace the auto sentinel")
	assert.False(t, el.Size.Height.Auto)
	assert.Greater(t, el.Size.Width.Value, 0.0)
}

func TestDropCreateCentersOnDropPoint(t *testing.T) {
	c := NewController(newDoc())
	c.ZoomIn()
	c.ZoomIn()
	c.ZoomIn() // 2.0
	require.Equal(t, 2.0, c.Zoom())

	def := Definition{Name: "Rect", Prototype: shape("", 0, 0, 200, 100, 0)}
	created, err := c.DropCreate(def, 400, 200)
	require.NoError(t, err)

	// screenDelta/zoom - size/2: 400/2 - 100 = 100, 200/2 - 50 = 50.
	assert.Equal(t, 100.0, created.Position.X)
	assert.Equal(t, 50.0, created.Position.Y)
}

func TestDropCreateClampsToOrigin(t *testing.T) {
	c := NewController(newDoc())
	def := Definition{Name: "Rect", Prototype: shape("", 0, 0, 400, 400, 0)}
	created, err := c.DropCreate(def, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, 0.0, created.Position.X)
	assert.Equal(t, 0.0, created.Position.Y)
}

func TestDropCreateSpawnsOnTop(t *testing.T) {
	c := NewController(newDoc(shape("a", 0, 0, 50, 50, 7)))
	def := Definition{Name: "Rect", Prototype: shape("", 0, 0, 100, 100, 0)}
	created, err := c.DropCreate(def, 900, 500)
	require.NoError(t, err)
	assert.Equal(t, 8, created.ZIndex)
	assert.Equal(t, []string{created.ID}, c.State().Selected)
}

func TestZoomStepsThroughOrderedLevels(t *testing.T) {
	c := NewController(newDoc())
	require.Equal(t, 1.0, c.Zoom())

	c.ZoomOut()
	assert.Equal(t, 0.75, c.Zoom())
	c.ZoomOut()
	c.ZoomOut()
	assert.Equal(t, 0.25, c.Zoom())
	c.ZoomOut() // already at the bottom
	assert.Equal(t, 0.25, c.Zoom())

	c.ZoomFit()
	assert.Equal(t, 1.0, c.Zoom())

	for i := 0; i < 10; i++ {
		c.ZoomIn()
	}
	assert.Equal(t, 2.0, c.Zoom())
}

func TestZoomNeverTouchesStoredCoordinates(t *testing.T) {
	c := NewController(newDoc(shape("a", 123, 456, 50, 50, 1)))
	c.ZoomIn()
	c.ZoomOut()
	c.ZoomOut()
	el := c.Document().Elements[0]
	assert.Equal(t, 123.0, el.Position.X)
	assert.Equal(t, 456.0, el.Position.Y)
}

func TestBulkDeleteAndDuplicate(t *testing.T) {
	c := NewController(newDoc(
		shape("a", 0, 0, 50, 50, 1),
		shape("b", 100, 0, 50, 50, 2),
		shape("c", 200, 0, 50, 50, 3),
	))
	c.Select("a")
	c.AddToSelection("b")

	c.DuplicateSelected()
	assert.Len(t, c.Document().Elements, 5)
	st := c.State()
	require.Len(t, st.Selected, 2)
	assert.NotContains(t, st.Selected, "a")

	c.DeleteSelected()
	assert.Len(t, c.Document().Elements, 3)
	assert.Empty(t, c.State().Selected)
}

func TestControllerOpsOnMissingIDsAreSilent(t *testing.T) {
	c := NewController(newDoc(shape("a", 0, 0, 50, 50, 1)))
	c.Select("ghost")
	assert.Empty(t, c.State().Selected)
	c.AddToSelection("ghost")
	assert.Empty(t, c.State().Selected)
	c.BeginDrag("ghost")
	assert.False(t, c.Dragging())
	c.DragBy(10, 10)
	c.EndDrag()
	c.Resize(HandleE, 10, 0)
	assert.Equal(t, 50.0, c.Document().Elements[0].Size.Width.Value)
}
