// Package pipeline builds the architecture diagram and renders it to files.
//
// A [Runner] is shared by the CLI and the HTTP server. It builds the diagram
// for a view mode, validates it, and renders it to any of the supported
// formats. Rendered artifacts are cached under a key derived from the hash
// of the built diagram, so any change to the catalog produces new keys.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Mode:    diagram.Detailed,
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatJSON},
//	})
//	svg := res.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/archflow/pkg/diagram"
	"github.com/matzehuels/archflow/pkg/errors"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatHTML = "html"
)

// Formats lists every supported format in a stable order.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatDOT, FormatJSON, FormatYAML, FormatHTML}

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// ContentType returns the MIME type served for format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatHTML:
		return "text/html; charset=utf-8"
	}
	return "application/octet-stream"
}

// ValidateFormat reports whether format is supported. Formats are
// case-sensitive.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want one of %s)",
			format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats validates every entry of formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated list, trimming blanks and
// dropping duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// Options configures [Runner.Execute].
type Options struct {
	Mode    diagram.Mode
	Formats []string
	// Scale is the PNG scale factor. Zero means DefaultScale.
	Scale float64
	// NoCache bypasses cache reads. Fresh artifacts are still written.
	NoCache bool
}

// ValidateAndSetDefaults checks formats and fills zero values.
func (o *Options) ValidateAndSetDefaults() error {
	mode, err := diagram.ParseMode(string(o.Mode))
	if err != nil {
		return err
	}
	o.Mode = mode
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	return ValidateFormats(o.Formats)
}

// Result is the output of [Runner.Execute].
type Result struct {
	Diagram   diagram.Diagram
	Hash      string
	Artifacts map[string][]byte
	CacheHits map[string]bool
	Stats     Stats
}

// Stats holds timing and size information.
type Stats struct {
	Nodes      int
	Edges      int
	BuildTime  time.Duration
	RenderTime time.Duration
}
