// Package editor is the interactive canvas: it drives the shared interaction
// controller from keyboard and mouse input and draws a live projection of the
// slide in the terminal. All geometry and style values come from the same
// resolver the static renderer uses.
package editor

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/deckforge/deckforge/internal/canvas"
	"github.com/deckforge/deckforge/internal/model"
	"github.com/deckforge/deckforge/internal/resolver"
)

// Saver persists edited slides. Implemented by the SQLite store.
type Saver interface {
	SaveSlide(ctx context.Context, deckID string, doc model.Document) error
}

// Model is the main editor model
type Model struct {
	// Core data
	controller *canvas.Controller
	deckID     string
	saver      Saver

	// UI state
	viewMode      ViewMode
	paletteCursor int
	palette       []canvas.Definition
	textInput     textinput.Model
	editingID     string

	// Mouse state
	mouseDown bool
	lastCellX int
	lastCellY int

	// Status state
	dirty     bool
	saving    bool
	statusMsg string
	showError bool
	errorMsg  string

	// Dimensions
	width  int
	height int
}

// NewModel creates an editor over one slide.
func NewModel(doc *model.Document, rctx resolver.Context, deckID string, saver Saver) Model {
	ctrl := canvas.NewController(doc)
	ctrl.SetResolveContext(rctx)

	return Model{
		controller: ctrl,
		deckID:     deckID,
		saver:      saver,
		viewMode:   ViewCanvas,
		palette:    canvas.DefaultPalette(),
		width:      80,
		height:     24,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Controller exposes the interaction controller, mainly for tests.
func (m *Model) Controller() *canvas.Controller {
	return m.controller
}

// Dirty reports whether the slide has unsaved edits.
func (m *Model) Dirty() bool {
	return m.dirty
}

// canvasCols and canvasRows are the interior cell dimensions of the canvas
// frame.
func (m Model) canvasCols() int {
	cols := m.width - 4
	if cols < 8 {
		cols = 8
	}
	return cols
}

func (m Model) canvasRows() int {
	rows := m.height - 7 // title, status, footer, frame
	if rows < 4 {
		rows = 4
	}
	return rows
}

// cellToScreen converts a terminal cell position inside the canvas frame to
// screen-space pixel coordinates. Screen space is logical space scaled by
// the zoom factor, which is what the controller's drag operations expect.
func (m Model) cellToScreen(cx, cy int) (float64, float64) {
	sx := float64(cx) * model.CanvasWidth / float64(m.canvasCols())
	sy := float64(cy) * model.CanvasHeight / float64(m.canvasRows())
	return sx, sy
}

// cellToLogical converts a cell position to logical canvas coordinates for
// hit testing.
func (m Model) cellToLogical(cx, cy int) (float64, float64) {
	sx, sy := m.cellToScreen(cx, cy)
	zoom := m.controller.Zoom()
	return sx / zoom, sy / zoom
}

// cycleSelection moves the selection to the next element in render order,
// wrapping at the end. With nothing selected it picks the bottom element.
func (m *Model) cycleSelection() {
	ordered := m.controller.Document().RenderOrder()
	if len(ordered) == 0 {
		return
	}
	state := m.controller.State()
	if len(state.Selected) != 1 {
		m.controller.Select(ordered[0].ID)
		return
	}
	for i, el := range ordered {
		if el.ID == state.Selected[0] {
			m.controller.Select(ordered[(i+1)%len(ordered)].ID)
			return
		}
	}
	m.controller.Select(ordered[0].ID)
}
