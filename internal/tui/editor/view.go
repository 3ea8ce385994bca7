package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/deckforge/deckforge/internal/model"
	"github.com/deckforge/deckforge/internal/resolver"
)

// View renders the current model state
func (m Model) View() string {
	switch m.viewMode {
	case ViewCanvas:
		return m.renderCanvasView()
	case ViewPalette:
		return m.renderPaletteView()
	case ViewHelp:
		return m.renderHelpView()
	case ViewConfirmDelete:
		return m.renderConfirmView()
	case ViewEditText:
		return m.renderEditTextView()
	default:
		return m.renderCanvasView()
	}
}

func (m Model) renderCanvasView() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var content strings.Builder

	doc := m.controller.Document()
	content.WriteString(titleStyle.Render("▦ " + doc.Name))
	content.WriteString("\n")

	if m.showError {
		content.WriteString(errorBannerStyle.Render(m.errorMsg))
		content.WriteString("\n")
	}

	content.WriteString(canvasStyle.Render(m.renderCanvas()))
	content.WriteString("\n")
	content.WriteString(m.renderStatusBar())
	content.WriteString("\n")
	content.WriteString(m.renderFooter())

	return content.String()
}

// cell is one drawable character of the canvas projection.
type cell struct {
	ch    rune
	style lipgloss.Style
}

// renderCanvas projects the slide onto a character grid. Elements are drawn
// in render order so higher z-index elements overdraw lower ones, exactly
// like the real renderers.
func (m Model) renderCanvas() string {
	cols := m.canvasCols()
	rows := m.canvasRows()
	zoom := m.controller.Zoom()
	state := m.controller.State()

	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, cols)
		for x := range grid[y] {
			grid[y][x] = cell{ch: ' '}
		}
	}

	// Grid dots at logical grid-step intervals.
	if state.Grid.Visible && state.Grid.Size > 0 {
		stepX := state.Grid.Size * zoom * float64(cols) / model.CanvasWidth
		stepY := state.Grid.Size * zoom * float64(rows) / model.CanvasHeight
		if stepX >= 1 && stepY >= 1 {
			for gy := 0.0; gy < float64(rows); gy += stepY {
				for gx := 0.0; gx < float64(cols); gx += stepX {
					grid[int(gy)][int(gx)] = cell{ch: '·', style: gridDotStyle}
				}
			}
		}
	}

	selected := make(map[string]bool, len(state.Selected))
	for _, id := range state.Selected {
		selected[id] = true
	}

	doc := m.controller.Document()
	for _, el := range resolver.ResolveAll(*doc, m.controller.ResolveContext()) {
		style := variantStyle(string(el.Variant))
		if el.ID == state.Hovered {
			style = hoveredElementStyle
		}
		if selected[el.ID] {
			style = selectedElementStyle
		}
		m.drawElement(grid, el, style, zoom, cols, rows)
	}

	var b strings.Builder
	for y, row := range grid {
		if y > 0 {
			b.WriteString("\n")
		}
		for _, c := range row {
			b.WriteString(c.style.Render(string(c.ch)))
		}
	}
	return b.String()
}

// drawElement paints one resolved element's box onto the grid, with its
// content across the interior for text-bearing variants.
func (m Model) drawElement(grid [][]cell, el resolver.ResolvedElement, style lipgloss.Style, zoom float64, cols, rows int) {
	x0 := int(el.Position.X * zoom * float64(cols) / model.CanvasWidth)
	y0 := int(el.Position.Y * zoom * float64(rows) / model.CanvasHeight)
	x1 := int((el.Position.X + el.Width) * zoom * float64(cols) / model.CanvasWidth)
	y1 := int((el.Position.Y + el.Height) * zoom * float64(rows) / model.CanvasHeight)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	fill := elementFill(el)
	for y := y0; y < y1 && y < rows; y++ {
		if y < 0 {
			continue
		}
		for x := x0; x < x1 && x < cols; x++ {
			if x < 0 {
				continue
			}
			ch := fill
			switch {
			case y == y0 && x == x0:
				ch = '┌'
			case y == y0 && x == x1-1:
				ch = '┐'
			case y == y1-1 && x == x0:
				ch = '└'
			case y == y1-1 && x == x1-1:
				ch = '┘'
			case y == y0 || y == y1-1:
				ch = '─'
			case x == x0 || x == x1-1:
				ch = '│'
			}
			grid[y][x] = cell{ch: ch, style: style}
		}
	}

	// Text and data elements show their resolved content inside the box.
	// Boxes too short for an interior row draw the content over the border.
	if el.Content != "" {
		y := y0 + 1
		startX, endX := x0+1, x1-1
		if y >= y1-1 {
			y = y0
			startX, endX = x0, x1
		}
		label := []rune(el.Content)
		for i := 0; i < len(label) && startX+i < endX && startX+i < cols; i++ {
			if y >= 0 && y < rows && startX+i >= 0 {
				grid[y][startX+i] = cell{ch: label[i], style: style}
			}
		}
	}
}

func elementFill(el resolver.ResolvedElement) rune {
	switch el.Variant {
	case model.VariantImage:
		return '▒'
	case model.VariantShape:
		if el.Shape == model.ShapeLine {
			return '━'
		}
		return '░'
	default:
		return ' '
	}
}

func (m Model) renderStatusBar() string {
	state := m.controller.State()
	doc := m.controller.Document()

	parts := []string{
		fmt.Sprintf("zoom %d%%", int(state.Zoom*100+0.5)),
		fmt.Sprintf("%d elements", len(doc.Elements)),
	}
	if len(state.Selected) == 1 {
		if el, ok := m.controller.SelectedElement(); ok {
			x, y, w, h := m.controller.Bounds(el)
			parts = append(parts, fmt.Sprintf("%s @ %.0f,%.0f %.0f×%.0f", el.Variant, x, y, w, h))
		}
	} else if len(state.Selected) > 1 {
		parts = append(parts, fmt.Sprintf("%d selected", len(state.Selected)))
	}
	if state.Grid.Snap {
		parts = append(parts, "snap")
	}
	if state.GuidesVisible {
		parts = append(parts, "guides")
	}

	line := statusStyle.Render(strings.Join(parts, "  "))
	switch {
	case m.saving:
		line += statusStyle.Render("  saving...")
	case m.dirty:
		line += statusDirtyStyle.Render("  ● modified")
	case m.statusMsg != "":
		line += statusSavedStyle.Render("  " + m.statusMsg)
	}
	return line
}

func (m Model) renderFooter() string {
	hints := []string{
		"↑/↓/←/→: move",
		"shift+arrows: resize",
		"tab: select",
		"enter: edit text",
		"p: palette",
		"d: duplicate",
		"ctrl+s: save",
		"?: help",
	}
	if m.showError {
		hints = append(hints, "x: dismiss error")
	}
	hints = append(hints, "q: quit")
	return footerStyle.Width(m.width - 2).Render(strings.Join(hints, "  •  "))
}

func (m Model) renderPaletteView() string {
	var items []string
	items = append(items, helpTitleStyle.Render("Add element"))
	for i, def := range m.palette {
		label := fmt.Sprintf("%s  (%s×%s)", def.Name,
			def.Prototype.Size.Width, def.Prototype.Size.Height)
		if i == m.paletteCursor {
			items = append(items, paletteSelectedStyle.Render("> "+label))
		} else {
			items = append(items, paletteItemStyle.Render("  "+label))
		}
	}
	items = append(items, "", statusStyle.Render("enter: add  •  esc: cancel"))

	box := paletteBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, items...))
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(box)
}

func (m Model) renderHelpView() string {
	title := titleStyle.Render("▦ Editor Help")

	helpContent := `
Canvas:
  ↑/↓/←/→       Move selected element (snaps on release)
  Shift+arrows  Resize from the bottom-right corner
  Tab           Cycle selection through elements
  Enter         Edit the selected text element's content
  Mouse         Hover, click to select, drag to move
  d             Duplicate selected element
  Del           Delete selected element (with confirmation)
  Esc           Deselect

Canvas toggles:
  g             Toggle grid overlay
  s             Toggle snap-to-grid
  u             Toggle alignment guides
  +/-           Zoom in / out
  0             Reset zoom to 100%

Other:
  p             Open the element palette
  Ctrl+S        Save slide
  q, Ctrl+C     Quit
`

	helpText := lipgloss.NewStyle().
		Padding(1, 2).
		Render(helpContent)

	footer := footerStyle.Render("Press ? or Esc to close")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		helpText,
		footer,
	)
}

func (m Model) renderEditTextView() string {
	box := paletteBoxStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			helpTitleStyle.Render("Edit text"),
			m.textInput.View(),
			"",
			statusStyle.Render("enter: apply  •  esc: cancel"),
		),
	)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(box)
}

func (m Model) renderConfirmView() string {
	name := "element"
	if el, ok := m.controller.SelectedElement(); ok {
		name = string(el.Variant) + " element"
	}

	dialog := confirmBoxStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Center,
			fmt.Sprintf("Delete %s?", name),
			"",
			statusStyle.Render("y = Yes    n = No    Esc = Cancel"),
		),
	)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(dialog)
}
