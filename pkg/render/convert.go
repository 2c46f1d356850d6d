package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// converter is the librsvg command-line tool used for raster and PDF output.
const converter = "rsvg-convert"

// ErrNoConverter is returned when rsvg-convert is not installed.
var ErrNoConverter = errors.New("rsvg-convert not found (macOS: brew install librsvg, Linux: apt install librsvg2-bin)")

// ConvertOptions tunes [Convert].
type ConvertOptions struct {
	// Scale multiplies the output size. Zero keeps the SVG's size.
	Scale float64
	// Background fills transparent areas, e.g. "white". Empty keeps them
	// transparent.
	Background string
}

// Convert turns SVG bytes into format ("pdf" or "png") with rsvg-convert.
func Convert(ctx context.Context, svg []byte, format string, opts ConvertOptions) ([]byte, error) {
	if format != "pdf" && format != "png" {
		return nil, fmt.Errorf("convert: unsupported format %q", format)
	}
	if _, err := exec.LookPath(converter); err != nil {
		return nil, fmt.Errorf("%s export: %w", format, ErrNoConverter)
	}

	cmd := exec.CommandContext(ctx, converter, convertArgs(format, opts)...)
	cmd.Stdin = bytes.NewReader(svg)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", converter, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out.Bytes(), nil
}

func convertArgs(format string, opts ConvertOptions) []string {
	args := []string{"-f", format}
	if opts.Scale > 0 && opts.Scale != 1 {
		args = append(args, "-z", strconv.FormatFloat(opts.Scale, 'f', 2, 64))
	}
	if opts.Background != "" {
		args = append(args, "-b", opts.Background)
	}
	return args
}
