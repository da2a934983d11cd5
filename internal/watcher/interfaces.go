package watcher

import "context"

// FileWatcher reports debounced batches of changed source files.
type FileWatcher interface {
	// Start begins watching, calling callback with each batch of changed files.
	// The callback runs on the watcher goroutine; batches never overlap.
	Start(ctx context.Context, callback func(files []string)) error

	// Stop stops the watcher and releases its resources. It is idempotent.
	Stop() error
}
