// Package observability provides hooks for metrics and tracing.
//
// Libraries emit events through the registered hooks; main decides what
// receives them. The defaults are no-ops, so packages like pipeline and
// server never depend on a metrics backend. [Collector] is the Prometheus
// implementation used by the HTTP server.
//
// Register hooks at startup:
//
//	c := observability.NewCollector("archflow")
//	observability.SetPipelineHooks(c)
//	observability.SetCacheHooks(c)
//	observability.SetSessionHooks(c)
//
// and emit events where the work happens:
//
//	observability.Pipeline().OnBuildStart(ctx, mode)
//	d := diagram.Build(mode)
//	observability.Pipeline().OnBuildComplete(ctx, mode, len(d.Nodes), len(d.Edges), time.Since(start), nil)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from diagram building and rendering.
type PipelineHooks interface {
	OnBuildStart(ctx context.Context, mode string)
	OnBuildComplete(ctx context.Context, mode string, nodes, edges int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// CacheHooks receives events from cache lookups.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// SessionHooks receives events from interactive sessions.
type SessionHooks interface {
	OnSessionCreated(ctx context.Context, id, mode string)
	OnModeChange(ctx context.Context, id, from, to string)
	// OnConnect reports a user connection. added is false for a duplicate.
	OnConnect(ctx context.Context, id, edgeID string, added bool)
	OnSessionsExpired(ctx context.Context, n int)
}

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, string) {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnRenderStart(context.Context, string) {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {
}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopSessionHooks ignores every event.
type NoopSessionHooks struct{}

func (NoopSessionHooks) OnSessionCreated(context.Context, string, string)     {}
func (NoopSessionHooks) OnModeChange(context.Context, string, string, string) {}
func (NoopSessionHooks) OnConnect(context.Context, string, string, bool)      {}
func (NoopSessionHooks) OnSessionsExpired(context.Context, int)               {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	sessionHooks  SessionHooks  = NoopSessionHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetSessionHooks registers session hooks. nil is ignored.
func SetSessionHooks(h SessionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sessionHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Session returns the registered session hooks.
func Session() SessionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sessionHooks
}

// Reset restores the no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	sessionHooks = NoopSessionHooks{}
}
