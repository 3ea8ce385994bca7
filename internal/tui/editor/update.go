package editor

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/deckforge/deckforge/internal/canvas"
	"github.com/deckforge/deckforge/internal/model"
)

// Canvas frame offsets: the title row plus the frame border sit above the
// drawable cells, one border column sits to the left.
const (
	frameOriginX = 1
	frameOriginY = 2
)

// nudgeStep is the logical distance one arrow keypress moves an element.
const nudgeStep = 20.0

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case SlideSavedMsg:
		m.saving = false
		m.dirty = false
		m.statusMsg = "saved"
		return m, nil

	case SaveErrorMsg:
		m.saving = false
		m.showError = true
		m.errorMsg = "Save failed: " + msg.Error.Error()
		return m, nil

	case ErrorMsg:
		m.showError = true
		m.errorMsg = msg.Message
		return m, nil

	case ClearErrorMsg:
		m.showError = false
		m.errorMsg = ""
		return m, nil
	}

	// Cursor blink and other component messages while the text input is up.
	if m.viewMode == ViewEditText {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKeyPress handles keyboard input based on current view mode
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewMode {
	case ViewCanvas:
		return m.handleCanvasKeys(msg)
	case ViewPalette:
		return m.handlePaletteKeys(msg)
	case ViewHelp:
		return m.handleHelpKeys(msg)
	case ViewConfirmDelete:
		return m.handleConfirmKeys(msg)
	case ViewEditText:
		return m.handleEditTextKeys(msg)
	default:
		return m, nil
	}
}

// handleCanvasKeys handles keys while editing on the canvas
func (m Model) handleCanvasKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	zoom := m.controller.Zoom()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "ctrl+s":
		if m.saving {
			return m, nil
		}
		m.saving = true
		m.statusMsg = "saving..."
		return m, saveSlideCmd(m.saver, m.deckID, *m.controller.Document())

	// Selection
	case "tab":
		m.cycleSelection()
		return m, nil

	case "enter":
		return m, m.beginTextEdit()

	case "esc":
		if m.showError {
			m.showError = false
			m.errorMsg = ""
			return m, nil
		}
		m.controller.DeselectAll()
		return m, nil

	case "x":
		if m.showError {
			m.showError = false
			m.errorMsg = ""
		}
		return m, nil

	// Move selected element; snapping applies on release, so each keypress
	// is a complete drag gesture.
	case "up":
		m.nudge(0, -nudgeStep*zoom)
		return m, nil
	case "down":
		m.nudge(0, nudgeStep*zoom)
		return m, nil
	case "left":
		m.nudge(-nudgeStep*zoom, 0)
		return m, nil
	case "right":
		m.nudge(nudgeStep*zoom, 0)
		return m, nil

	// Resize from the bottom-right handle
	case "shift+up":
		m.resize(0, -nudgeStep*zoom)
		return m, nil
	case "shift+down":
		m.resize(0, nudgeStep*zoom)
		return m, nil
	case "shift+left":
		m.resize(-nudgeStep*zoom, 0)
		return m, nil
	case "shift+right":
		m.resize(nudgeStep*zoom, 0)
		return m, nil

	// Element operations
	case "d":
		m.controller.DuplicateSelected()
		m.markDirty()
		return m, nil

	case "backspace", "delete":
		if _, ok := m.controller.SelectedElement(); ok {
			m.viewMode = ViewConfirmDelete
		}
		return m, nil

	// Canvas toggles
	case "g":
		m.controller.ToggleGrid()
		return m, nil
	case "s":
		m.controller.ToggleSnap()
		return m, nil
	case "u":
		m.controller.ToggleGuides()
		return m, nil

	// Zoom
	case "+", "=":
		m.controller.ZoomIn()
		return m, nil
	case "-":
		m.controller.ZoomOut()
		return m, nil
	case "0":
		m.controller.ZoomFit()
		return m, nil

	// Palette
	case "p":
		m.viewMode = ViewPalette
		return m, nil

	// Help
	case "?":
		m.viewMode = ViewHelp
		return m, nil
	}

	return m, nil
}

// nudge moves the selected element by a screen-space delta as one complete
// drag gesture.
func (m *Model) nudge(sdx, sdy float64) {
	el, ok := m.controller.SelectedElement()
	if !ok {
		return
	}
	m.controller.BeginDrag(el.ID)
	m.controller.DragBy(sdx, sdy)
	m.controller.EndDrag()
	m.markDirty()
}

// resize grows or shrinks the selected element from its bottom-right handle.
func (m *Model) resize(sdx, sdy float64) {
	if _, ok := m.controller.SelectedElement(); !ok {
		return
	}
	m.controller.Resize(canvas.HandleSE, sdx, sdy)
	m.markDirty()
}

// beginTextEdit opens the inline text input over the selected text element.
// Non-text selections are a silent no-op.
func (m *Model) beginTextEdit() tea.Cmd {
	el, ok := m.controller.SelectedElement()
	if !ok || el.Variant != model.VariantText {
		return nil
	}

	ti := textinput.New()
	ti.Placeholder = el.Text.Config.Placeholder
	ti.SetValue(el.Text.Config.DefaultValue)
	ti.CharLimit = el.Text.Config.MaxLength
	ti.Width = 48
	cmd := ti.Focus()

	m.textInput = ti
	m.editingID = el.ID
	m.viewMode = ViewEditText
	return cmd
}

// commitTextEdit writes the input's value back into the element's content
// config. Appearance is untouched.
func (m *Model) commitTextEdit() {
	el, ok := m.controller.SelectedElement()
	if !ok || el.ID != m.editingID || el.Variant != model.VariantText {
		return
	}
	cfg := el.Text.Config
	cfg.DefaultValue = m.textInput.Value()
	m.controller.Document().UpdateElement(el.ID, model.ElementPatch{Text: &cfg})
	m.markDirty()
}

// handleEditTextKeys handles keys while the inline text input is open
func (m Model) handleEditTextKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.commitTextEdit()
		m.viewMode = ViewCanvas
		m.editingID = ""
		return m, nil

	case "esc":
		m.viewMode = ViewCanvas
		m.editingID = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *Model) markDirty() {
	m.dirty = true
	m.statusMsg = ""
}

// handleMouse maps terminal mouse events onto the controller's pointer
// operations.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.viewMode != ViewCanvas {
		return m, nil
	}

	cx := msg.X - frameOriginX
	cy := msg.Y - frameOriginY
	if cx < 0 || cy < 0 || cx >= m.canvasCols() || cy >= m.canvasRows() {
		if msg.Action == tea.MouseActionMotion && !m.mouseDown {
			m.controller.ClearHover()
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.mouseDown && m.controller.Dragging() {
			psx, psy := m.cellToScreen(m.lastCellX, m.lastCellY)
			sx, sy := m.cellToScreen(cx, cy)
			m.controller.DragBy(sx-psx, sy-psy)
			m.lastCellX, m.lastCellY = cx, cy
			m.markDirty()
			return m, nil
		}
		lx, ly := m.cellToLogical(cx, cy)
		m.controller.HoverAt(lx, ly)
		return m, nil

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		lx, ly := m.cellToLogical(cx, cy)
		m.controller.SelectAt(lx, ly)
		if el, ok := m.controller.SelectedElement(); ok {
			m.controller.BeginDrag(el.ID)
		}
		m.mouseDown = true
		m.lastCellX, m.lastCellY = cx, cy
		return m, nil

	case tea.MouseActionRelease:
		if m.controller.Dragging() {
			m.controller.EndDrag()
			m.markDirty()
		}
		m.mouseDown = false
		return m, nil
	}

	return m, nil
}

// handlePaletteKeys handles keys in the element palette
func (m Model) handlePaletteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.paletteCursor > 0 {
			m.paletteCursor--
		}
		return m, nil

	case "down", "j":
		if m.paletteCursor < len(m.palette)-1 {
			m.paletteCursor++
		}
		return m, nil

	case "enter", " ":
		def := m.palette[m.paletteCursor]
		// Drop at the canvas center.
		zoom := m.controller.Zoom()
		_, err := m.controller.DropCreate(def, model.CanvasWidth/2*zoom, model.CanvasHeight/2*zoom)
		if err != nil {
			m.showError = true
			m.errorMsg = err.Error()
		} else {
			m.markDirty()
		}
		m.viewMode = ViewCanvas
		return m, nil

	case "esc", "p", "q":
		m.viewMode = ViewCanvas
		return m, nil
	}
	return m, nil
}

// handleHelpKeys handles keys in help view
func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		m.viewMode = ViewCanvas
		return m, nil
	}
	return m, nil
}

// handleConfirmKeys handles keys in the delete confirmation dialog
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.controller.DeleteSelected()
		m.markDirty()
		m.viewMode = ViewCanvas
		return m, nil

	case "n", "N", "esc":
		m.viewMode = ViewCanvas
		return m, nil
	}
	return m, nil
}
