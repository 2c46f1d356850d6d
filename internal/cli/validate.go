package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archflow/pkg/diagram"
	"github.com/matzehuels/archflow/pkg/errors"
)

func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Build both views and check their integrity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			out := newPrinter(cmd.OutOrStdout())

			if err := diagram.ValidateAll(); err != nil {
				out.failure("%s", errors.UserMessage(err))
				return err
			}

			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()

			for _, mode := range diagram.Modes {
				d, err := runner.Build(ctx, mode)
				if err != nil {
					return fmt.Errorf("%s: %w", mode, err)
				}
				logger.Debug("validated view", "mode", mode, "kinds", d.Counts())
				out.success("%s: %d nodes, %d edges", mode, len(d.Nodes), len(d.Edges))
				out.detail("%s", kindSummary(d))
			}
			return nil
		},
	}
}

// kindSummary lists node counts per kind in catalog order, e.g.
// "1 user · 2 action · 4 service".
func kindSummary(d diagram.Diagram) string {
	counts := d.Counts()
	var parts []string
	for _, k := range diagram.Kinds {
		if n := counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, k))
		}
	}
	return strings.Join(parts, " · ")
}
