package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/recera/cutpath/pkg/api"
	"github.com/recera/cutpath/pkg/editor"
	"github.com/recera/cutpath/pkg/geometry"
)

func deletePrompt(id string) string {
	return fmt.Sprintf("Delete point %q?\nAll of its connections will be removed.", id)
}

// ask opens a confirmation overlay.
func (m *Model) ask(message string, onYes func(m *Model) tea.Cmd) {
	m.confirm = &confirmation{message: message, onYes: onYes}
}

// handleKeys handles keyboard input on the canvas
func (m *Model) handleKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.state.Animation.Stop()
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil

	case key.Matches(msg, m.keys.Mode):
		m.state.ToggleMode()
		m.statusMessage = ""
		return nil

	case key.Matches(msg, m.keys.Vertex):
		return m.openPrompt(promptVertex, "point> ", "name x y  or  x y", "")

	case key.Matches(msg, m.keys.Edge):
		return m.openPrompt(promptEdge, "edge> ", "from to", "")

	case key.Matches(msg, m.keys.Machine):
		current := fmt.Sprintf("%g %g", m.params.Speed, m.params.SetupTime)
		return m.openPrompt(promptMachine, "speed setup> ", "mm/min min/stop", current)

	case key.Matches(msg, m.keys.Optimize):
		m.statusMessage = "Optimizing..."
		return m.track(m.optimizeCmd())

	case key.Matches(msg, m.keys.Play):
		if !m.state.CanPlay() {
			m.errorMessage = "No optimized path yet. Optimize first!"
			return nil
		}
		m.state.Animation.Toggle()
		return nil

	case key.Matches(msg, m.keys.Program):
		if m.state.Result != nil {
			m.showProgram = !m.showProgram
		}
		return nil

	case key.Matches(msg, m.keys.Reload):
		return m.track(m.reloadCmd())

	case key.Matches(msg, m.keys.Example1):
		return m.loadExample(api.ExampleRectangle)
	case key.Matches(msg, m.keys.Example2):
		return m.loadExample(api.ExampleStar)
	case key.Matches(msg, m.keys.Example3):
		return m.loadExample(api.ExampleGrid)

	case key.Matches(msg, m.keys.Clear):
		m.ask("Clear the whole project?", func(m *Model) tea.Cmd {
			m.state.Animation.Stop()
			return m.track(m.clearCmd())
		})
		return nil

	case key.Matches(msg, m.keys.Delete):
		return m.intentCmd(m.state.DeleteKey())

	case key.Matches(msg, m.keys.Back):
		m.state.Interaction.Selected = ""
		m.errorMessage = ""
		return nil
	}
	return nil
}

func (m *Model) loadExample(kind string) tea.Cmd {
	m.state.Animation.Stop()
	m.statusMessage = "Loading example..."
	return m.track(m.exampleCmd(kind))
}

// handleConfirmKeys handles the yes/no overlay
func (m *Model) handleConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Yes):
		c := m.confirm
		m.confirm = nil
		return c.onYes(m)
	case key.Matches(msg, m.keys.No):
		m.confirm = nil
	}
	return nil
}

func (m *Model) openPrompt(kind promptKind, label, placeholder, value string) tea.Cmd {
	m.prompt = kind
	m.input.Prompt = label
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.errorMessage = ""
	return m.input.Focus()
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.input.Blur()
	m.input.SetValue("")
}

// handlePromptKeys handles the input line
func (m *Model) handlePromptKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return nil
	case tea.KeyCtrlC:
		m.quitting = true
		return tea.Quit
	case tea.KeyEnter:
		return m.submitPrompt(strings.TrimSpace(m.input.Value()))
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) submitPrompt(value string) tea.Cmd {
	kind := m.prompt
	switch kind {
	case promptVertex:
		cv, err := editor.ParseVertex(value)
		if err != nil {
			m.errorMessage = err.Error()
			return nil
		}
		m.closePrompt()
		return m.track(m.intentCmd(cv))

	case promptEdge:
		ce, err := editor.ParseEdge(value)
		if err != nil {
			m.errorMessage = err.Error()
			return nil
		}
		m.closePrompt()
		return m.track(m.intentCmd(ce))

	case promptMachine:
		m.params = editor.ParseMachine(value, m.params)
		m.statusMessage = fmt.Sprintf("Machine: %g mm/min, %g min per stop", m.params.Speed, m.params.SetupTime)
		m.closePrompt()
	}
	return nil
}

// handleMouse translates terminal mouse events into canvas events
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	p, onCanvas := m.cellToCanvas(msg.X, msg.Y)
	if m.pressed && !onCanvas {
		// a drag leaving the canvas stays pinned to its edge
		p, _ = m.cellToCanvas(m.clampCell(msg.X, msg.Y))
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if onCanvas || m.pressed {
			m.state.MouseMove(p)
		}
		return nil

	case tea.MouseActionPress:
		if !onCanvas {
			return nil
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			if m.moving && m.state.Interaction.Mode == editor.Place {
				// the server is still rebuilding the last moved point
				m.statusMessage = "Still saving the last move..."
				return nil
			}
			m.pressed = true
			m.state.MouseDown(p)
		case tea.MouseButtonRight:
			return m.intentCmd(m.state.RightClick(p))
		}
		return nil

	case tea.MouseActionRelease:
		if !m.pressed {
			return nil
		}
		m.pressed = false
		var cmds []tea.Cmd
		if in := m.state.MouseUp(p); in != nil {
			cmds = append(cmds, m.track(m.intentCmd(in)))
		}
		if in := m.state.Click(p); in != nil {
			cmds = append(cmds, m.track(m.intentCmd(in)))
		}
		return tea.Batch(cmds...)
	}
	return nil
}

// cellToCanvas maps a terminal cell to the center of its canvas pixel box.
func (m Model) cellToCanvas(x, y int) (geometry.Point, bool) {
	cols, rows := m.canvasSize()
	row := y - canvasTop
	p := geometry.Pt(
		float64(x*m.opts.CellWidth)+float64(m.opts.CellWidth)/2,
		float64(row*m.opts.CellHeight)+float64(m.opts.CellHeight)/2,
	)
	return p, x >= 0 && x < cols && row >= 0 && row < rows
}

// clampCell pulls a terminal cell onto the nearest canvas cell.
func (m Model) clampCell(x, y int) (int, int) {
	cols, rows := m.canvasSize()
	x = max(0, min(x, cols-1))
	y = max(canvasTop, min(y, canvasTop+rows-1))
	return x, y
}
