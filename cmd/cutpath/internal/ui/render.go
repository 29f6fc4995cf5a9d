package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/recera/cutpath/pkg/editor"
	"github.com/recera/cutpath/pkg/render"
)

// Style definitions
var (
	// Colors
	primaryColor   = lipgloss.Color("#3b82f6")
	secondaryColor = lipgloss.Color("#64748b")
	successColor   = lipgloss.Color("#10b981")
	warningColor   = lipgloss.Color("#f59e0b")
	errorColor     = lipgloss.Color("#ef4444")
	mutedColor     = lipgloss.Color("#94a3b8")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	modeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(primaryColor).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(secondaryColor).
			PaddingLeft(1)
)

const (
	canvasTop  = 1
	panelWidth = 34
)

// canvasSize returns the canvas area in cells.
func (m Model) canvasSize() (cols, rows int) {
	cols = m.width
	if m.state.Result != nil {
		cols -= panelWidth
	}
	rows = m.height - canvasTop - m.footerHeight()
	return max(cols, 1), max(rows, 1)
}

func (m Model) footerHeight() int {
	if m.help.ShowAll && m.prompt == promptNone {
		return 1 + len(m.keys.FullHelp()[2])
	}
	return 2
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	cols, rows := m.canvasSize()
	body := m.renderCanvas(cols, rows)
	if m.confirm != nil {
		box := boxStyle.Render(m.confirm.message + "\n\n" + mutedStyle.Render("y confirm · n cancel"))
		body = lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, box)
	}
	if m.state.Result != nil {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderPanel(rows))
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderStatus(), m.renderFooter())
}

func (m Model) renderCanvas(cols, rows int) string {
	r := newRaster(cols, rows, m.opts.CellWidth, m.opts.CellHeight)
	r.paint(render.Build(m.state))
	return r.String()
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("✂ cutpath"))
	b.WriteString(" ")
	b.WriteString(modeStyle.Render(strings.ToUpper(m.state.Interaction.Mode.String())))
	b.WriteString(" ")
	b.WriteString(mutedStyle.Render(modeHint(m.state)))
	return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
}

func modeHint(s *editor.State) string {
	if s.Interaction.Mode == editor.Place {
		switch s.CursorShape() {
		case editor.CursorMove:
			return "drag to move · right-click to delete"
		default:
			return "click to add a point"
		}
	}
	if sel := s.Interaction.Selected; sel != "" {
		return fmt.Sprintf("%s selected · click another point to connect", sel)
	}
	if s.CursorShape() == editor.CursorPointer {
		return "click to select"
	}
	return "click a point to start an edge"
}

func (m Model) renderStatus() string {
	var parts []string
	if m.pending > 0 {
		parts = append(parts, m.spinner.View())
	}

	st := m.state.Graph.Status()
	switch {
	case !st.Known:
		parts = append(parts, mutedStyle.Render("Waiting..."))
	case st.Ready:
		parts = append(parts, successStyle.Render("✓ Ready to optimize"))
	default:
		parts = append(parts, warningStyle.Render("⚠ "+st.Message))
	}
	parts = append(parts, mutedStyle.Render(fmt.Sprintf("%d points · %d edges", m.state.Graph.Len(), m.state.Graph.EdgeCount())))

	if f := m.state.Animation.Frame(); f.Playing {
		parts = append(parts, selectedStyle.Render(fmt.Sprintf("▶ step %d/%d", f.Step, f.Segments)))
	}
	switch {
	case m.errorMessage != "":
		parts = append(parts, errorStyle.Render(m.errorMessage))
	case m.statusMessage != "":
		parts = append(parts, m.statusMessage)
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderFooter() string {
	if m.prompt != promptNone {
		return m.input.View()
	}
	keys := m.keys
	keys.Play.SetEnabled(m.state.CanPlay())
	keys.Program.SetEnabled(m.state.Result != nil)
	return m.help.View(keys)
}

func (m Model) renderPanel(rows int) string {
	res := m.state.Result
	var b strings.Builder
	if m.showProgram {
		b.WriteString(titleStyle.Render("Machine program"))
		b.WriteString("\n\n")
		lines := strings.Split(res.Program, "\n")
		if len(lines) > rows-3 {
			lines = append(lines[:max(rows-4, 0)], mutedStyle.Render("…"))
		}
		b.WriteString(strings.Join(lines, "\n"))
	} else {
		b.WriteString(titleStyle.Render("Optimized path"))
		b.WriteString("\n\n")
		row := func(label, value string) {
			fmt.Fprintf(&b, "%s %s\n", mutedStyle.Render(fmt.Sprintf("%-16s", label)), value)
		}
		row("Total distance", formatNumber(res.Distance)+" mm")
		row("Cut time", formatNumber(res.CutTime)+" min")
		row("Setup time", formatNumber(res.SetupTime)+" min")
		row("Total time", formatNumber(res.TotalTime)+" min")
		row("Segments", humanize.Comma(int64(res.Stats.SegmentsTraversed)))
		row("Points visited", humanize.Comma(int64(res.Stats.VerticesVisited)))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(strings.Join(res.Cycle, " → ")))
	}
	return panelStyle.Width(panelWidth - 2).Height(rows).MaxHeight(rows).Render(b.String())
}

func formatNumber(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}
