package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archflow/pkg/diagram"
	"github.com/matzehuels/archflow/pkg/errors"
	"github.com/matzehuels/archflow/pkg/presenter"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listSourceStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	userEdgeStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	paneStyle         = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// chromeLines is the number of lines around the panes: title, help, status
// and pane borders.
const chromeLines = 8

func (c *CLI) tuiCommand() *cobra.Command {
	var modeStr string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the diagram and draw connections in the terminal",
		Long: `Browse the diagram in the terminal.

Keys:
  m        toggle simple/detailed view (drawn connections are discarded)
  ↑/↓ j/k  move the cursor
  s        mark the node under the cursor as source
  t        connect the marked source to the node under the cursor
  esc      clear the marked source
  q        quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode := c.defaultMode()
			if modeStr != "" {
				m, err := diagram.ParseMode(modeStr)
				if err != nil {
					return err
				}
				mode = m
			}
			loggerFromContext(cmd.Context()).Debug("starting tui", "mode", mode)

			p := tea.NewProgram(newDiagramModel(mode), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err := p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&modeStr, "mode", "m", "", "initial view mode (default from config)")

	return cmd
}

// =============================================================================
// diagramModel - Interactive diagram presenter
// =============================================================================

// diagramModel is the bubbletea model around a presenter. It paints the
// placeholder spinner until the terminal reports its size.
type diagramModel struct {
	presenter *presenter.Presenter
	spinner   spinner.Model

	Cursor int
	Offset int
	Height int
	Width  int
	Source string // ID of the marked source node
	Status string
}

func newDiagramModel(mode diagram.Mode) diagramModel {
	return diagramModel{
		presenter: presenter.New(mode),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styleIconSpinner),
		),
		Height: 15,
	}
}

func (m diagramModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m diagramModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = max(msg.Height-chromeLines, 5)
		m.presenter.MarkReady()
		m.scroll()
		return m, nil

	case spinner.TickMsg:
		if m.presenter.Ready() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		key := msg.String()
		if key == "q" || key == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.presenter.Ready() {
			return m, nil
		}
		return m.handleKey(key), nil
	}
	return m, nil
}

func (m diagramModel) handleKey(key string) diagramModel {
	nodes := m.presenter.Snapshot().Nodes

	switch key {
	case "m":
		mode := m.presenter.Toggle()
		m.Cursor, m.Offset, m.Source = 0, 0, ""
		m.Status = fmt.Sprintf("Switched to %s view", mode)
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(nodes)-1 {
			m.Cursor++
		}
	case "s":
		m.Source = nodes[m.Cursor].ID
		m.Status = fmt.Sprintf("Source: %s (move and press t to connect)", m.Source)
	case "t":
		m.Status = m.connect(nodes[m.Cursor].ID)
	case "esc":
		m.Source = ""
		m.Status = ""
	}
	m.scroll()
	return m
}

// connect draws an edge from the marked source to target and returns the
// status line describing the outcome.
func (m *diagramModel) connect(target string) string {
	if m.Source == "" {
		return "Mark a source with s first"
	}
	source := m.Source
	m.Source = ""

	e, added, err := m.presenter.Connect(presenter.Connection{Source: source, Target: target})
	switch {
	case err != nil:
		return "Cannot connect: " + errors.UserMessage(err)
	case !added:
		return fmt.Sprintf("Already connected (%s)", e.ID)
	}
	return fmt.Sprintf("Connected %s %s %s", source, iconArrow, target)
}

// scroll keeps the cursor inside the visible window.
func (m *diagramModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m diagramModel) View() string {
	state := m.presenter.Snapshot()
	if !state.Ready {
		return m.spinner.View() + " " + StyleDim.Render(presenter.Placeholder)
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Architecture · %s view", state.Mode)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  s source  t connect  m toggle view  q quit"))
	b.WriteString("\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(m.nodePane(state)),
		paneStyle.Render(m.edgePane(state)),
	))
	b.WriteString("\n")
	if m.Status != "" {
		b.WriteString(listDimStyle.Render(m.Status))
	}
	return b.String()
}

func (m diagramModel) nodePane(state presenter.State) string {
	lines := []string{StyleHighlight.Render(fmt.Sprintf("Nodes (%d)", len(state.Nodes)))}
	end := min(m.Offset+m.Height, len(state.Nodes))
	for i := m.Offset; i < end; i++ {
		n := state.Nodes[i]
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		if n.ID == m.Source {
			style = listSourceStyle
		}
		lines = append(lines, cursor+diagram.ResolveIcon(n).Glyph()+" "+style.Render(n.Label)+" "+listDimStyle.Render(n.ID))
	}
	return strings.Join(lines, "\n")
}

// edgePane lists the tail of the edge collection so that drawn connections,
// which are appended last, stay visible.
func (m diagramModel) edgePane(state presenter.State) string {
	title := fmt.Sprintf("Edges (%d", len(state.Edges))
	if state.UserEdges > 0 {
		title += fmt.Sprintf(", %d drawn", state.UserEdges)
	}
	lines := []string{StyleHighlight.Render(title + ")")}

	start := max(len(state.Edges)-m.Height, 0)
	firstUser := len(state.Edges) - state.UserEdges
	for i := start; i < len(state.Edges); i++ {
		e := state.Edges[i]
		line := e.Source + " " + iconArrow + " " + e.Target
		if e.Label != "" {
			line += " " + listDimStyle.Render(e.Label)
		}
		if i >= firstUser {
			line = userEdgeStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
