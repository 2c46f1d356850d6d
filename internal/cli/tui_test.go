package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/archflow/pkg/diagram"
	"github.com/matzehuels/archflow/pkg/presenter"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m diagramModel, msgs ...tea.Msg) diagramModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(diagramModel)
	}
	return m
}

func readyModel(t *testing.T, mode diagram.Mode) diagramModel {
	t.Helper()
	return send(t, newDiagramModel(mode), tea.WindowSizeMsg{Width: 120, Height: 40})
}

func TestDiagramModelPlaceholderUntilSized(t *testing.T) {
	m := newDiagramModel(diagram.Simple)
	if !strings.Contains(m.View(), presenter.Placeholder) {
		t.Errorf("View() before sizing = %q, want placeholder", m.View())
	}

	// Keys other than quit are ignored while loading.
	m = send(t, m, keyMsg("m"))
	if got := m.presenter.Mode(); got != diagram.Simple {
		t.Errorf("mode changed to %s before ready", got)
	}

	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	view := m.View()
	if strings.Contains(view, presenter.Placeholder) {
		t.Error("View() after sizing still shows placeholder")
	}
	if !strings.Contains(view, "Submit Image") {
		t.Error("View() after sizing does not list nodes")
	}
	if m.Height != 40-chromeLines {
		t.Errorf("Height = %d, want %d", m.Height, 40-chromeLines)
	}
}

func TestDiagramModelCursor(t *testing.T) {
	m := readyModel(t, diagram.Simple)
	m = send(t, m, keyMsg("up"))
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d after up at top, want 0", m.Cursor)
	}
	m = send(t, m, keyMsg("down"), keyMsg("j"), keyMsg("k"))
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}
	for range 20 {
		m = send(t, m, keyMsg("down"))
	}
	if m.Cursor != 9 {
		t.Errorf("Cursor = %d, want last node 9", m.Cursor)
	}
}

func TestDiagramModelConnect(t *testing.T) {
	m := readyModel(t, diagram.Simple)

	// submit -> analyze is not a catalog edge.
	m = send(t, m, keyMsg("down"), keyMsg("s"), keyMsg("down"), keyMsg("t"))
	state := m.presenter.Snapshot()
	if state.UserEdges != 1 {
		t.Fatalf("UserEdges = %d, want 1 (status %q)", state.UserEdges, m.Status)
	}
	last := state.Edges[len(state.Edges)-1]
	if last.Source != "submit" || last.Target != "analyze" || last.Animated {
		t.Errorf("drawn edge = %+v", last)
	}
	if m.Source != "" {
		t.Errorf("Source = %q after connect, want cleared", m.Source)
	}

	// Drawing it again adds nothing.
	m = send(t, m, keyMsg("up"), keyMsg("s"), keyMsg("down"), keyMsg("t"))
	if got := m.presenter.Snapshot().UserEdges; got != 1 {
		t.Errorf("UserEdges = %d after duplicate, want 1", got)
	}
	if !strings.HasPrefix(m.Status, "Already connected") {
		t.Errorf("Status = %q", m.Status)
	}
}

func TestDiagramModelTargetWithoutSource(t *testing.T) {
	m := readyModel(t, diagram.Simple)
	m = send(t, m, keyMsg("t"))
	if got := m.presenter.Snapshot().UserEdges; got != 0 {
		t.Errorf("UserEdges = %d, want 0", got)
	}
	if m.Status == "" {
		t.Error("expected a hint in the status line")
	}

	m = send(t, m, keyMsg("s"), keyMsg("esc"))
	if m.Source != "" {
		t.Errorf("Source = %q after esc", m.Source)
	}
}

func TestDiagramModelToggleDiscardsUserEdges(t *testing.T) {
	m := readyModel(t, diagram.Simple)
	m = send(t, m, keyMsg("down"), keyMsg("s"), keyMsg("down"), keyMsg("t"))

	m = send(t, m, keyMsg("m"))
	state := m.presenter.Snapshot()
	if state.Mode != diagram.Detailed || len(state.Nodes) != 19 || state.UserEdges != 0 {
		t.Errorf("after toggle: mode=%s nodes=%d userEdges=%d", state.Mode, len(state.Nodes), state.UserEdges)
	}
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d after toggle, want 0", m.Cursor)
	}

	m = send(t, m, keyMsg("m"))
	state = m.presenter.Snapshot()
	if state.Mode != diagram.Simple || len(state.Edges) != 11 {
		t.Errorf("back to simple: mode=%s edges=%d", state.Mode, len(state.Edges))
	}
}

func TestDiagramModelQuit(t *testing.T) {
	for _, key := range []tea.KeyMsg{keyMsg("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := newDiagramModel(diagram.Simple).Update(key)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: command did not quit", key)
		}
	}
}

func TestDiagramModelScroll(t *testing.T) {
	m := send(t, newDiagramModel(diagram.Detailed), tea.WindowSizeMsg{Width: 120, Height: chromeLines + 5})
	for range 7 {
		m = send(t, m, keyMsg("down"))
	}
	if m.Offset != 3 {
		t.Errorf("Offset = %d, want 3", m.Offset)
	}
	if !strings.Contains(m.nodePane(m.presenter.Snapshot()), "▸") {
		t.Error("cursor not visible in node pane")
	}
}
