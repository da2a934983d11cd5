package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"

	"github.com/mvp-joe/symextract/internal/logging"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 300 * time.Millisecond

// Options configures a file watcher.
type Options struct {
	// Extensions to monitor, such as ".go" or ".py". Matched case-sensitively.
	// Empty means every file.
	Extensions []string

	// Ignore holds glob patterns matched against paths relative to the
	// watched directory. Ignored directories are not watched at all.
	Ignore []string

	// Debounce is the quiet period before a batch is delivered.
	Debounce time.Duration

	Logger *slog.Logger
}

type fileWatcher struct {
	watcher    *fsnotify.Watcher
	roots      []string
	extensions map[string]bool
	ignore     []glob.Glob
	debounce   time.Duration
	logger     *slog.Logger

	callback func(files []string)
	cancel   context.CancelFunc

	pending   map[string]bool // changed files awaiting delivery
	pendingMu sync.Mutex

	timer   *time.Timer
	timerMu sync.Mutex

	stopOnce sync.Once
	doneCh   chan struct{}
}

// NewFileWatcher watches dirs recursively for changes to files with the
// configured extensions.
func NewFileWatcher(dirs []string, opts Options) (FileWatcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	fw := &fileWatcher{
		extensions: make(map[string]bool, len(opts.Extensions)),
		debounce:   opts.Debounce,
		logger:     opts.Logger,
		pending:    make(map[string]bool),
		doneCh:     make(chan struct{}),
	}
	for _, ext := range opts.Extensions {
		fw.extensions[ext] = true
	}
	for _, pattern := range opts.Ignore {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		fw.ignore = append(fw.ignore, g)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	fw.watcher = w

	for _, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			w.Close()
			return nil, err
		}
		fw.roots = append(fw.roots, abs)
		if err := fw.addTree(abs); err != nil {
			w.Close()
			return nil, err
		}
	}

	return fw, nil
}

func (fw *fileWatcher) Start(ctx context.Context, callback func(files []string)) error {
	if callback == nil {
		return fmt.Errorf("watcher callback must not be nil")
	}

	fw.callback = callback
	ctx, fw.cancel = context.WithCancel(ctx)

	go fw.loop(ctx)
	return nil
}

func (fw *fileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		if fw.cancel != nil {
			fw.cancel()
			<-fw.doneCh
		} else {
			close(fw.doneCh)
		}
		err = fw.watcher.Close()
	})
	return err
}

func (fw *fileWatcher) loop(ctx context.Context) {
	defer close(fw.doneCh)

	flushCh := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			fw.stopTimer()
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !fw.ignored(event.Name) {
					if err := fw.addTree(event.Name); err != nil {
						fw.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
				}
			}

			if !fw.relevant(event) {
				continue
			}

			fw.pendingMu.Lock()
			fw.pending[event.Name] = true
			fw.pendingMu.Unlock()

			fw.resetTimer(flushCh)

		case <-flushCh:
			fw.flush()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("file watcher error", "error", err)
		}
	}
}

// flush delivers the pending batch, sorted, if there is one.
func (fw *fileWatcher) flush() {
	fw.pendingMu.Lock()
	if len(fw.pending) == 0 {
		fw.pendingMu.Unlock()
		return
	}
	files := make([]string, 0, len(fw.pending))
	for file := range fw.pending {
		files = append(files, file)
	}
	fw.pending = make(map[string]bool)
	fw.pendingMu.Unlock()

	sort.Strings(files)
	fw.logger.Debug("delivering changed files", "count", len(files))
	fw.callback(files)
}

func (fw *fileWatcher) resetTimer(flushCh chan struct{}) {
	fw.timerMu.Lock()
	defer fw.timerMu.Unlock()

	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.debounce, func() {
		select {
		case flushCh <- struct{}{}:
		default:
		}
	})
}

func (fw *fileWatcher) stopTimer() {
	fw.timerMu.Lock()
	defer fw.timerMu.Unlock()

	if fw.timer != nil {
		fw.timer.Stop()
		fw.timer = nil
	}
}

// relevant reports whether event is a write or create of a monitored file.
// Removals are dropped since there is nothing left to extract.
func (fw *fileWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	if len(fw.extensions) > 0 && !fw.extensions[filepath.Ext(event.Name)] {
		return false
	}
	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		return false
	}
	return !fw.ignored(event.Name)
}

// ignored matches path, relative to the root containing it, against the
// ignore patterns.
func (fw *fileWatcher) ignored(path string) bool {
	if len(fw.ignore) == 0 {
		return false
	}
	for _, root := range fw.roots {
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		rel = filepath.ToSlash(rel)
		for _, g := range fw.ignore {
			if g.Match(rel) || g.Match(rel+"/**") {
				return true
			}
		}
	}
	return false
}

// addTree adds root and every non-ignored directory beneath it.
func (fw *fileWatcher) addTree(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			fw.logger.Warn("error accessing path", "path", path, "error", err)
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && fw.ignored(path) {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			fw.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}
