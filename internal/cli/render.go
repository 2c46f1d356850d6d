package cli

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archflow/pkg/diagram"
	"github.com/matzehuels/archflow/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	mode    string
	formats []string
	output  string // file path, base path for several formats, or "-" for stdout
	noCache bool
	scale   float64
}

func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the architecture diagram to files",
		Long: `Render the architecture diagram in the simple or detailed view.

Several formats can be requested at once; each is written to <base>.<format>,
where <base> defaults to architecture-<mode>.`,
		Example: `  archflow render
  archflow render -m detailed -f svg,png,html
  archflow render -f dot -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.formats = pipeline.ParseFormats(formatsStr)
			if opts.mode == "" {
				opts.mode = c.defaultMode().String()
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "view mode: simple, detailed (default from config)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): "+strings.Join(pipeline.Formats, ", ")+" (comma-separated, default svg)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file or base path ("-" for stdout)`)
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "ignore cached artifacts")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, stdout io.Writer, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	mode, err := diagram.ParseMode(opts.mode)
	if err != nil {
		return err
	}
	if len(opts.formats) == 0 {
		opts.formats = []string{pipeline.FormatSVG}
	}
	if err := pipeline.ValidateFormats(opts.formats); err != nil {
		return err
	}
	if opts.output == "-" && len(opts.formats) > 1 {
		return fmt.Errorf("stdout output takes a single format, got %d", len(opts.formats))
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s view...", mode))
	spinner.Start()
	res, err := runner.Execute(ctx, pipeline.Options{
		Mode:    mode,
		Formats: opts.formats,
		Scale:   opts.scale,
		NoCache: opts.noCache,
	})
	spinner.Stop()
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err := stdout.Write(res.Artifacts[opts.formats[0]])
		return err
	}

	formats := slices.Sorted(maps.Keys(res.Artifacts))

	cached := true
	var paths []string
	for _, format := range formats {
		path := outputPath(opts.output, mode, format, len(formats))
		if err := writeOutput(path, res.Artifacts[format]); err != nil {
			return err
		}
		logger.Debug("wrote artifact", "path", path, "bytes", len(res.Artifacts[format]), "cached", res.CacheHits[format])
		cached = cached && res.CacheHits[format]
		paths = append(paths, path)
	}

	prog.done(fmt.Sprintf("Rendered %d file(s)", len(paths)))
	out := newPrinter(stdout)
	out.success("Rendered %s view", mode)
	for _, p := range paths {
		out.file(p)
	}
	out.stats(res.Stats.Nodes, res.Stats.Edges, cached)
	if !slices.Contains(formats, pipeline.FormatHTML) {
		out.nextStep("Explore it interactively", appName+" serve")
	}
	return nil
}

// outputPath returns where the artifact for format is written. A single
// format honours output as given; several formats treat output as a base
// path. A known format extension on output is stripped first.
func outputPath(output string, mode diagram.Mode, format string, count int) string {
	if output != "" && count == 1 {
		return output
	}
	return basePath(output, mode) + "." + format
}

func basePath(output string, mode diagram.Mode) string {
	if output == "" {
		return "architecture-" + mode.String()
	}
	ext := filepath.Ext(output)
	if slices.Contains(pipeline.Formats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
