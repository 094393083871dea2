// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about declaration scans, synchronization passes, and
// external command execution.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by library packages, which keeps the
// library packages free of any particular metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSyncHooks(&mySyncHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Sync().OnPassStart(ctx, pass)
//	// ... clone and pull ...
//	observability.Sync().OnPassComplete(ctx, pass, cloned, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Scan Hooks
// =============================================================================

// ScanHooks receives events from declaration file discovery.
type ScanHooks interface {
	// OnLocate records a completed scan of a library root.
	OnLocate(ctx context.Context, root string, files int, duration time.Duration, err error)

	// OnDeclarationParsed records one declaration file read into records.
	OnDeclarationParsed(ctx context.Context, path string, records int, err error)
}

// =============================================================================
// Sync Hooks
// =============================================================================

// SyncHooks receives events from the synchronization driver.
type SyncHooks interface {
	// OnPassStart records the start of a resolution pass (1-based).
	OnPassStart(ctx context.Context, pass int)

	// OnPassComplete records the end of a pass and how many libraries it cloned.
	OnPassComplete(ctx context.Context, pass int, cloned int, duration time.Duration)

	// OnOperation records a single clone, pull, or reset of a library.
	OnOperation(ctx context.Context, op, library string, duration time.Duration, err error)
}

// =============================================================================
// Command Hooks
// =============================================================================

// CommandHooks receives events from external command execution.
type CommandHooks interface {
	// OnCommand records an executed command and its exit status.
	OnCommand(ctx context.Context, name string, args []string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopScanHooks is a no-op implementation of ScanHooks.
type NoopScanHooks struct{}

func (NoopScanHooks) OnLocate(context.Context, string, int, time.Duration, error) {}
func (NoopScanHooks) OnDeclarationParsed(context.Context, string, int, error)     {}

// NoopSyncHooks is a no-op implementation of SyncHooks.
type NoopSyncHooks struct{}

func (NoopSyncHooks) OnPassStart(context.Context, int)                                  {}
func (NoopSyncHooks) OnPassComplete(context.Context, int, int, time.Duration)           {}
func (NoopSyncHooks) OnOperation(context.Context, string, string, time.Duration, error) {}

// NoopCommandHooks is a no-op implementation of CommandHooks.
type NoopCommandHooks struct{}

func (NoopCommandHooks) OnCommand(context.Context, string, []string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	scanHooks    ScanHooks    = NoopScanHooks{}
	syncHooks    SyncHooks    = NoopSyncHooks{}
	commandHooks CommandHooks = NoopCommandHooks{}
	hooksMu      sync.RWMutex
)

// SetScanHooks registers custom scan hooks.
// This should be called once at application startup before any scan.
func SetScanHooks(h ScanHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scanHooks = h
	}
}

// SetSyncHooks registers custom sync hooks.
// This should be called once at application startup before any sync run.
func SetSyncHooks(h SyncHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		syncHooks = h
	}
}

// SetCommandHooks registers custom command hooks.
// This should be called once at application startup before any command runs.
func SetCommandHooks(h CommandHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		commandHooks = h
	}
}

// Scan returns the registered scan hooks.
func Scan() ScanHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scanHooks
}

// Sync returns the registered sync hooks.
func Sync() SyncHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return syncHooks
}

// Command returns the registered command hooks.
func Command() CommandHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return commandHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	scanHooks = NoopScanHooks{}
	syncHooks = NoopSyncHooks{}
	commandHooks = NoopCommandHooks{}
}
