package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/archflow/pkg/cache"
	"github.com/matzehuels/archflow/pkg/diagram"
	"github.com/matzehuels/archflow/pkg/errors"
	"github.com/matzehuels/archflow/pkg/observability"
)

// Runner builds and renders diagrams with caching. It holds no per-call
// state and is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses the default keyer and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Build builds the diagram for mode and checks its integrity.
func (r *Runner) Build(ctx context.Context, mode diagram.Mode) (diagram.Diagram, error) {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, mode.String())
	start := time.Now()

	d := diagram.Build(mode)
	err := diagram.Validate(d)
	hooks.OnBuildComplete(ctx, mode.String(), len(d.Nodes), len(d.Edges), time.Since(start), err)
	if err != nil {
		return diagram.Diagram{}, err
	}

	r.Logger.Debug("built diagram", "mode", d.Mode, "nodes", len(d.Nodes), "edges", len(d.Edges))
	return d, nil
}

// Hash returns the content hash of d used in artifact keys.
func Hash(d diagram.Diagram) (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "serialize diagram")
	}
	return cache.Hash(data), nil
}

// Render renders d in format, consulting the cache first.
func (r *Runner) Render(ctx context.Context, d diagram.Diagram, format string) ([]byte, error) {
	data, _, err := r.RenderWithCacheInfo(ctx, d, format, DefaultScale, false)
	return data, err
}

// RenderWithCacheInfo renders d in format and reports whether the bytes
// came from the cache. With noCache set the cache is not read, but the
// fresh artifact is still stored.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d diagram.Diagram, format string, scale float64, noCache bool) ([]byte, bool, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, false, err
	}
	hash, err := Hash(d)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.ArtifactKey(hash, cache.ArtifactKeyOpts{
		Mode:   d.Mode.String(),
		Format: format,
		Scale:  scaleFor(format, scale),
	})

	cacheHooks := observability.Cache()
	if !noCache {
		data, ok, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			r.Logger.Warn("cache read failed", "format", format, "err", err)
		case ok:
			cacheHooks.OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
		cacheHooks.OnCacheMiss(ctx, "artifact")
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()
	data, err := Render(ctx, d, format, scale)
	hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeRender, err, "render %s", format)
	}

	if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
		r.Logger.Warn("cache write failed", "format", format, "err", err)
	} else {
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

// Execute builds the diagram once and renders every requested format
// concurrently. The first render error cancels the rest.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	buildStart := time.Now()
	d, err := r.Build(ctx, opts.Mode)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	hash, err := Hash(d)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Diagram:   d,
		Hash:      hash,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		CacheHits: make(map[string]bool, len(opts.Formats)),
		Stats: Stats{
			Nodes:     len(d.Nodes),
			Edges:     len(d.Edges),
			BuildTime: time.Since(buildStart),
		},
	}

	renderStart := time.Now()
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, hit, err := r.RenderWithCacheInfo(gctx, d, format, opts.Scale, opts.NoCache)
			if err != nil {
				return err
			}
			mu.Lock()
			res.Artifacts[format] = data
			res.CacheHits[format] = hit
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	res.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered diagram",
		"mode", d.Mode,
		"formats", opts.Formats,
		"duration", res.Stats.RenderTime)
	return res, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// scaleFor drops the scale from keys of formats it does not affect.
func scaleFor(format string, scale float64) float64 {
	if format == FormatPNG {
		return scale
	}
	return 0
}
