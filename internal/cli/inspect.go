package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archflow/pkg/diagram"
)

func (c *CLI) inspectCommand() *cobra.Command {
	var modeStr string
	var edgesOnly, nodesOnly bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List the nodes and edges of a view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if modeStr == "" {
				modeStr = c.defaultMode().String()
			}
			mode, err := diagram.ParseMode(modeStr)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()

			d, err := runner.Build(cmd.Context(), mode)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, StyleTitle.Render(fmt.Sprintf("Architecture · %s view", mode)))
			if !edgesOnly {
				fmt.Fprintln(out, nodeTable(d).Render())
			}
			if !nodesOnly {
				fmt.Fprintln(out, edgeTable(d).Render())
			}
			fmt.Fprintln(out, StyleDim.Render(fmt.Sprintf("%d nodes · %d edges", len(d.Nodes), len(d.Edges))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&modeStr, "mode", "m", "", "view mode: simple, detailed (default from config)")
	cmd.Flags().BoolVar(&nodesOnly, "nodes", false, "list nodes only")
	cmd.Flags().BoolVar(&edgesOnly, "edges", false, "list edges only")
	cmd.MarkFlagsMutuallyExclusive("nodes", "edges")

	return cmd
}

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		})
}

func nodeTable(d diagram.Diagram) *table.Table {
	return newTable("ID", "", "Label", "Kind", "Position").Rows(nodeRows(d)...)
}

func edgeTable(d diagram.Diagram) *table.Table {
	return newTable("ID", "Source", "Target", "Label", "Style").Rows(edgeRows(d)...)
}

func nodeRows(d diagram.Diagram) [][]string {
	rows := make([][]string, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		rows = append(rows, []string{
			n.ID,
			diagram.ResolveIcon(n).Glyph(),
			n.Label,
			string(n.Kind),
			fmt.Sprintf("%g,%g", n.Position.X, n.Position.Y),
		})
	}
	return rows
}

func edgeRows(d diagram.Diagram) [][]string {
	rows := make([][]string, 0, len(d.Edges))
	for _, e := range d.Edges {
		rows = append(rows, []string{e.ID, endpoint(e.Source, e.SourceHandle), endpoint(e.Target, e.TargetHandle), e.Label, edgeStyle(e)})
	}
	return rows
}

// endpoint formats a node ID with its optional handle, e.g. "vision-api:b".
func endpoint(id, handle string) string {
	if handle == "" {
		return id
	}
	return id + ":" + handle
}

// edgeStyle summarises how an edge is drawn, e.g. "animated smoothstep".
func edgeStyle(e diagram.Edge) string {
	var parts []string
	if e.Animated {
		parts = append(parts, "animated")
	}
	if e.Routing != "" && e.Routing != diagram.RoutingDefault {
		parts = append(parts, string(e.Routing))
	}
	if e.Marker != diagram.MarkerNone {
		parts = append(parts, string(e.Marker))
	}
	if e.Stroke != "" {
		parts = append(parts, e.Stroke)
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, " ")
}
