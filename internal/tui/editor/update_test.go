package editor

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckforge/deckforge/internal/model"
	"github.com/deckforge/deckforge/internal/resolver"
)

type recordingSaver struct {
	deckID string
	doc    model.Document
	err    error
	calls  int
}

func (r *recordingSaver) SaveSlide(_ context.Context, deckID string, doc model.Document) error {
	r.calls++
	r.deckID = deckID
	r.doc = doc
	return r.err
}

func testSlide() *model.Document {
	return &model.Document{
		ID:   "s1",
		Name: "Intro",
		Elements: []model.Element{
			{
				ID:       "title",
				Variant:  model.VariantText,
				Position: model.Position{X: 100, Y: 100},
				Size:     model.Size{Width: model.Units(400), Height: model.Units(60)},
				ZIndex:   1,
				Text:     &model.TextSpec{Config: model.TextConfig{DefaultValue: "Hello"}},
			},
			{
				ID:       "box",
				Variant:  model.VariantShape,
				Position: model.Position{X: 600, Y: 300},
				Size:     model.Size{Width: model.Units(200), Height: model.Units(200)},
				ZIndex:   2,
				Shape:    &model.ShapeSpec{Config: model.ShapeConfig{Kind: model.ShapeRectangle}},
			},
		},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	m := NewModel(testSlide(), resolver.Context{}, "d1", nil)

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	em, ok := newModel.(Model)
	require.True(t, ok)

	assert.Equal(t, 120, em.width)
	assert.Equal(t, 40, em.height)
}

func TestUpdate_TabCyclesSelection(t *testing.T) {
	m := NewModel(testSlide(), resolver.Context{}, "d1", nil)

	newModel, _ := m.Update(keyMsg("tab"))
	em := newModel.(Model)
	state := em.Controller().State()
	require.Equal(t, []string{"title"}, state.Selected)

	newModel, _ = em.Update(keyMsg("tab"))
	em = newModel.(Model)
	assert.Equal(t, []string{"box"}, em.Controller().State().Selected)

	newModel, _ = em.Update(keyMsg("tab"))
	em = newModel.(Model)
	assert.Equal(t, []string{"title"}, em.Controller().State().Selected, "selection wraps")
}

func TestUpdate_ArrowMovesSelectedElement(t *testing.T) {
	doc := testSlide()
	m := NewModel(doc, resolver.Context{}, "d1", nil)
	m.Controller().Select("title")

	newModel, _ := m.Update(keyMsg("right"))
	em := newModel.(Model)

	idx := doc.Find("title")
	require.GreaterOrEqual(t, idx, 0)
	assert.InDelta(t, 120.0, doc.Elements[idx].Position.X, 0.001)
	assert.True(t, em.Dirty())
}

func TestUpdate_ArrowWithoutSelectionIsNoop(t *testing.T) {
	doc := testSlide()
	m := NewModel(doc, resolver.Context{}, "d1", nil)

	newModel, _ := m.Update(keyMsg("down"))
	em := newModel.(Model)

	assert.InDelta(t, 100.0, doc.Elements[0].Position.Y, 0.001)
	assert.False(t, em.Dirty())
}

func TestUpdate_ShiftArrowResizes(t *testing.T) {
	doc := testSlide()
	m := NewModel(doc, resolver.Context{}, "d1", nil)
	m.Controller().Select("box")

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	em := newModel.(Model)

	idx := doc.Find("box")
	assert.InDelta(t, 220.0, doc.Elements[idx].Size.Width.Value, 0.001)
	assert.True(t, em.Dirty())
}

func TestUpdate_DeleteRequiresConfirmation(t *testing.T) {
	doc := testSlide()
	m := NewModel(doc, resolver.Context{}, "d1", nil)
	m.Controller().Select("box")

	newModel, _ := m.Update(keyMsg("backspace"))
	em := newModel.(Model)
	require.Equal(t, ViewConfirmDelete, em.viewMode)
	assert.Len(t, doc.Elements, 2, "nothing deleted before confirmation")

	newModel, _ = em.Update(keyMsg("y"))
	em = newModel.(Model)
	assert.Equal(t, ViewCanvas, em.viewMode)
	assert.Len(t, doc.Elements, 1)
	assert.Empty(t, em.Controller().State().Selected)
}

func TestUpdate_DeleteDeclined(t *testing.T) {
	doc := testSlide()
	m := NewModel(doc, resolver.Context{}, "d1", nil)
	m.Controller().Select("box")

	newModel, _ := m.Update(keyMsg("backspace"))
	em := newModel.(Model)
	newModel, _ = em.Update(keyMsg("n"))
	em = newModel.(Model)

	assert.Equal(t, ViewCanvas, em.viewMode)
	assert.Len(t, doc.Elements, 2)
}

func TestUpdate_PaletteDropCreatesElement(t *testing.T) {
	doc := testSlide()
	m := NewModel(doc, resolver.Context{}, "d1", nil)

	newModel, _ := m.Update(keyMsg("p"))
	em := newModel.(Model)
	require.Equal(t, ViewPalette, em.viewMode)

	newModel, _ = em.Update(tea.KeyMsg{Type: tea.KeyEnter})
	em = newModel.(Model)

	assert.Equal(t, ViewCanvas, em.viewMode)
	assert.Len(t, doc.Elements, 3)
	assert.Len(t, em.Controller().State().Selected, 1, "created element is selected")
	assert.True(t, em.Dirty())
}

func TestUpdate_SaveCommandPersistsSlide(t *testing.T) {
	doc := testSlide()
	saver := &recordingSaver{}
	m := NewModel(doc, resolver.Context{}, "d1", saver)

	newModel, cmd := m.Update(keyMsg("ctrl+s"))
	em := newModel.(Model)
	require.NotNil(t, cmd)
	assert.True(t, em.saving)

	msg := cmd()
	saved, ok := msg.(SlideSavedMsg)
	require.True(t, ok)
	assert.Equal(t, "s1", saved.SlideID)
	assert.Equal(t, 1, saver.calls)
	assert.Equal(t, "d1", saver.deckID)

	newModel, _ = em.Update(saved)
	em = newModel.(Model)
	assert.False(t, em.saving)
	assert.False(t, em.Dirty())
}

func TestUpdate_MouseSelectAndDrag(t *testing.T) {
	doc := testSlide()
	m := NewModel(doc, resolver.Context{}, "d1", nil)
	m.width = 100
	m.height = 40

	// The shape spans logical x 600..800, y 300..500. At zoom 1 with 96
	// columns the cell at canvas position (35, 13) lands inside it.
	press := tea.MouseMsg{
		X: 35 + frameOriginX, Y: 13 + frameOriginY,
		Action: tea.MouseActionPress, Button: tea.MouseButtonLeft,
	}
	newModel, _ := m.Update(press)
	em := newModel.(Model)
	require.Equal(t, []string{"box"}, em.Controller().State().Selected)
	require.True(t, em.Controller().Dragging())

	move := tea.MouseMsg{
		X: 40 + frameOriginX, Y: 13 + frameOriginY,
		Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft,
	}
	newModel, _ = em.Update(move)
	em = newModel.(Model)

	release := tea.MouseMsg{
		X: 40 + frameOriginX, Y: 13 + frameOriginY,
		Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft,
	}
	newModel, _ = em.Update(release)
	em = newModel.(Model)

	idx := doc.Find("box")
	assert.Greater(t, doc.Elements[idx].Position.X, 600.0, "drag moved the element right")
	assert.False(t, em.Controller().Dragging())
	assert.True(t, em.Dirty())
}

func TestUpdate_MouseHoverDoesNotSelect(t *testing.T) {
	doc := testSlide()
	m := NewModel(doc, resolver.Context{}, "d1", nil)
	m.width = 100
	m.height = 40

	move := tea.MouseMsg{
		X: 35 + frameOriginX, Y: 13 + frameOriginY,
		Action: tea.MouseActionMotion,
	}
	newModel, _ := m.Update(move)
	em := newModel.(Model)

	state := em.Controller().State()
	assert.Equal(t, "box", state.Hovered)
	assert.Empty(t, state.Selected)
}

func TestUpdate_EscDeselects(t *testing.T) {
	doc := testSlide()
	m := NewModel(doc, resolver.Context{}, "d1", nil)
	m.Controller().Select("title")

	newModel, _ := m.Update(keyMsg("esc"))
	em := newModel.(Model)
	assert.Empty(t, em.Controller().State().Selected)
}

func TestUpdate_ZoomKeysStepLevels(t *testing.T) {
	m := NewModel(testSlide(), resolver.Context{}, "d1", nil)

	newModel, _ := m.Update(keyMsg("+"))
	em := newModel.(Model)
	assert.InDelta(t, 1.25, em.Controller().Zoom(), 0.001)

	newModel, _ = em.Update(keyMsg("0"))
	em = newModel.(Model)
	assert.InDelta(t, 1.0, em.Controller().Zoom(), 0.001)
}

func TestUpdate_EnterOpensTextEditAndCommits(t *testing.T) {
	doc := testSlide()
	m := NewModel(doc, resolver.Context{}, "d1", nil)
	m.Controller().Select("title")

	newModel, _ := m.Update(keyMsg("enter"))
	em := newModel.(Model)
	require.Equal(t, ViewEditText, em.viewMode)
	assert.Equal(t, "Hello", em.textInput.Value())

	newModel, _ = em.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" Investors")})
	em = newModel.(Model)
	newModel, _ = em.Update(keyMsg("enter"))
	em = newModel.(Model)

	assert.Equal(t, ViewCanvas, em.viewMode)
	idx := doc.Find("title")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "Hello Investors", doc.Elements[idx].Text.Config.DefaultValue)
	assert.True(t, em.Dirty())
}

func TestUpdate_EscCancelsTextEdit(t *testing.T) {
	doc := testSlide()
	m := NewModel(doc, resolver.Context{}, "d1", nil)
	m.Controller().Select("title")

	newModel, _ := m.Update(keyMsg("enter"))
	em := newModel.(Model)
	newModel, _ = em.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("zzz")})
	em = newModel.(Model)
	newModel, _ = em.Update(keyMsg("esc"))
	em = newModel.(Model)

	assert.Equal(t, ViewCanvas, em.viewMode)
	idx := doc.Find("title")
	assert.Equal(t, "Hello", doc.Elements[idx].Text.Config.DefaultValue)
	assert.False(t, em.Dirty())
}

func TestUpdate_EnterOnShapeIsNoop(t *testing.T) {
	doc := testSlide()
	m := NewModel(doc, resolver.Context{}, "d1", nil)
	m.Controller().Select("box")

	newModel, _ := m.Update(keyMsg("enter"))
	em := newModel.(Model)
	assert.Equal(t, ViewCanvas, em.viewMode)
}
