package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/recera/cutpath/pkg/api"
	"github.com/recera/cutpath/pkg/editor"
	"github.com/recera/cutpath/pkg/geometry"
	"github.com/recera/cutpath/pkg/reconcile"
)

// outcomeKind tells Update how to install a synchronized snapshot.
type outcomeKind int

const (
	outcomeMutate outcomeKind = iota
	outcomeDelete
	outcomeReplace
	outcomeReload
	outcomeMove
)

// Messages
type outcomeMsg struct {
	kind outcomeKind
	op   string
	id   string
	out  reconcile.Outcome
}

type optimizedMsg struct {
	res *api.Result
	err error
}

type clearedMsg struct{ err error }

func (m Model) reloadCmd() tea.Cmd {
	s := m.sync
	return func() tea.Msg {
		return outcomeMsg{kind: outcomeReload, op: "reload", out: s.Reload(context.Background())}
	}
}

// intentCmd runs a request produced by the editor.
func (m *Model) intentCmd(in editor.Intent) tea.Cmd {
	s := m.sync
	switch in := in.(type) {
	case editor.CreateVertex:
		return func() tea.Msg {
			return outcomeMsg{op: "add point", id: in.ID, out: s.CreateVertex(context.Background(), in.ID, in.At)}
		}
	case editor.CreateEdge:
		return func() tea.Msg {
			return outcomeMsg{op: "connect", out: s.CreateEdge(context.Background(), in.From, in.To)}
		}
	case editor.CommitMove:
		m.moving = true
		return func() tea.Msg {
			return outcomeMsg{kind: outcomeMove, op: "move " + in.ID, id: in.ID, out: s.MoveVertex(context.Background(), in.ID, in.To, in.Incident)}
		}
	case editor.ConfirmDelete:
		m.ask(deletePrompt(in.ID), func(m *Model) tea.Cmd {
			return m.track(m.deleteCmd(in.ID))
		})
		return nil
	}
	return nil
}

func (m Model) deleteCmd(id string) tea.Cmd {
	s := m.sync
	return func() tea.Msg {
		return outcomeMsg{kind: outcomeDelete, op: "delete " + id, id: id, out: s.DeleteVertex(context.Background(), id)}
	}
}

func (m Model) optimizeCmd() tea.Cmd {
	s, p := m.sync, m.params
	return func() tea.Msg {
		res, err := s.Optimize(context.Background(), p)
		return optimizedMsg{res: res, err: err}
	}
}

func (m Model) clearCmd() tea.Cmd {
	s := m.sync
	return func() tea.Msg {
		return clearedMsg{err: s.Clear(context.Background())}
	}
}

func (m Model) exampleCmd(kind string) tea.Cmd {
	s, center := m.sync, m.canvasCenter()
	return func() tea.Msg {
		return outcomeMsg{kind: outcomeReplace, op: "load example " + kind, out: s.LoadExample(context.Background(), kind, center)}
	}
}

// canvasCenter is the middle of the visible canvas in pixel space.
func (m Model) canvasCenter() geometry.Point {
	cols, rows := m.canvasSize()
	return geometry.Pt(float64(cols*m.opts.CellWidth)/2, float64(rows*m.opts.CellHeight)/2)
}
