package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/archflow/pkg/diagram"
	"github.com/matzehuels/archflow/pkg/render/flow"
	"github.com/matzehuels/archflow/pkg/render/nodelink"
)

// Render produces the artifact bytes of d in format without caching.
func Render(ctx context.Context, d diagram.Diagram, format string, scale float64) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	switch format {
	case FormatDOT, FormatSVG, FormatPNG, FormatPDF:
		dot := nodelink.ToDOT(d, nodelink.Options{Descriptions: d.Mode == diagram.Detailed})
		return nodelink.Render(ctx, dot, format, scale)
	case FormatJSON:
		return flow.RenderJSON(flow.Export(d))
	case FormatYAML:
		return flow.RenderYAML(flow.Export(d))
	case FormatHTML:
		return flow.RenderHTML(flow.PageOptions{
			Mode:      d.Mode,
			Toggle:    true,
			Documents: map[diagram.Mode]flow.Document{d.Mode: flow.Export(d)},
		})
	}
	return nil, fmt.Errorf("unhandled format %q", format)
}
