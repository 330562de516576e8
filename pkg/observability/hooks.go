// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about view composition, placement-store
// operations, and exports.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetComposerHooks(&myComposerHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Composer().OnViewLoadStart(ctx, view)
//	// ... compose the scene ...
//	observability.Composer().OnViewLoadComplete(ctx, view, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Composer Hooks
// =============================================================================

// ComposerHooks receives events from the view composer.
type ComposerHooks interface {
	// View transition events
	OnViewLoadStart(ctx context.Context, view string)
	OnViewLoadComplete(ctx context.Context, view string, duration time.Duration, err error)

	// OnStaleRunDiscarded records a composition run superseded mid-flight.
	// Not an error: a normal cancellation outcome.
	OnStaleRunDiscarded(ctx context.Context, view string)

	// OnAutoCenter records an application of the auto-center heuristic.
	OnAutoCenter(ctx context.Context, view string)

	// OnAssetLoadError records a template or logo fetch/decode failure.
	OnAssetLoadError(ctx context.Context, source string, err error)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from placement-store operations.
type StoreHooks interface {
	// OnHit records a placement-blob read that found a record.
	OnHit(ctx context.Context, key string)

	// OnMiss records a clean miss.
	OnMiss(ctx context.Context, key string)

	// OnReadError records a failed or corrupt read.
	OnReadError(ctx context.Context, key string, err error)

	// OnWriteError records a failed write.
	OnWriteError(ctx context.Context, key string, err error)
}

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from the export engine.
type ExportHooks interface {
	// OnExportStart records the beginning of a raster export.
	OnExportStart(ctx context.Context, view, format string, multiplier float64)

	// OnExportComplete records a finished export with the raster size.
	OnExportComplete(ctx context.Context, view, format string, width, height int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopComposerHooks is a no-op implementation of ComposerHooks.
type NoopComposerHooks struct{}

func (NoopComposerHooks) OnViewLoadStart(context.Context, string)                            {}
func (NoopComposerHooks) OnViewLoadComplete(context.Context, string, time.Duration, error)   {}
func (NoopComposerHooks) OnStaleRunDiscarded(context.Context, string)                        {}
func (NoopComposerHooks) OnAutoCenter(context.Context, string)                               {}
func (NoopComposerHooks) OnAssetLoadError(context.Context, string, error)                    {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnHit(context.Context, string)               {}
func (NoopStoreHooks) OnMiss(context.Context, string)              {}
func (NoopStoreHooks) OnReadError(context.Context, string, error)  {}
func (NoopStoreHooks) OnWriteError(context.Context, string, error) {}

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context, string, string, float64) {}
func (NoopExportHooks) OnExportComplete(context.Context, string, string, int, int, time.Duration, error) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	composerHooks ComposerHooks = NoopComposerHooks{}
	storeHooks    StoreHooks    = NoopStoreHooks{}
	exportHooks   ExportHooks   = NoopExportHooks{}
	hooksMu       sync.RWMutex
)

// SetComposerHooks registers custom composer hooks.
// This should be called once at application startup before any composition.
func SetComposerHooks(h ComposerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		composerHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetExportHooks registers custom export hooks.
// This should be called once at application startup before any exports.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// Composer returns the registered composer hooks.
func Composer() ComposerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return composerHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	composerHooks = NoopComposerHooks{}
	storeHooks = NoopStoreHooks{}
	exportHooks = NoopExportHooks{}
}
