package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/fsnotify/fsnotify"
)

// Extensions lists the file types recognised as tree definitions, in lookup order.
var Extensions = []string{".yaml", ".yml", ".json"}

// DefaultDebounce coalesces bursts of filesystem events (editors often write twice).
const DefaultDebounce = 100 * time.Millisecond

// Loader implements ports.TreeLoader over a directory of YAML/JSON files.
// The tree name is the file name without extension.
type Loader struct {
	dir      string
	logger   *slog.Logger
	debounce time.Duration
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used by Watch.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(l *Loader) {
		l.debounce = d
	}
}

// New creates a loader reading from dir.
func New(dir string, opts ...Option) *Loader {
	l := &Loader{
		dir:      dir,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dir returns the directory the loader reads from.
func (l *Loader) Dir() string {
	return l.dir
}

// GetTree reads the definition named name. A name carrying its extension is read as is.
func (l *Loader) GetTree(name string) ([]byte, error) {
	if isTreeFile(name) {
		data, err := os.ReadFile(filepath.Join(l.dir, name))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read tree %s: %w", name, err)
		}
	}
	for _, ext := range Extensions {
		data, err := os.ReadFile(filepath.Join(l.dir, name+ext))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read tree %s: %w", name, err)
		}
	}
	return nil, fmt.Errorf("%w: %s in %s", domain.ErrTreeNotFound, name, l.dir)
}

// ListTrees returns the names of every definition file in the directory.
func (l *Loader) ListTrees() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list trees: %w", err)
	}
	seen := make(map[string]bool)
	var names []string
	for _, e := range entries {
		if e.IsDir() || !isTreeFile(e.Name()) {
			continue
		}
		name := treeName(e.Name())
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Watch reports the name of every tree whose file is written, created, renamed or removed.
// The channel is closed when ctx is done.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(l.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", l.dir, err)
	}

	out := make(chan string)
	go l.processEvents(ctx, watcher, out)
	l.logger.Info("watching tree definitions", "dir", l.dir)
	return out, nil
}

func (l *Loader) processEvents(ctx context.Context, watcher *fsnotify.Watcher, out chan<- string) {
	defer close(out)
	defer watcher.Close()

	pending := make(map[string]bool)
	timer := time.NewTimer(l.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isTreeFile(event.Name) || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			l.logger.Debug("tree file changed", "file", event.Name, "op", event.Op.String())
			pending[treeName(filepath.Base(event.Name))] = true
			timer.Reset(l.debounce)

		case <-timer.C:
			names := make([]string, 0, len(pending))
			for name := range pending {
				names = append(names, name)
			}
			sort.Strings(names)
			clear(pending)
			for _, name := range names {
				select {
				case out <- name:
				case <-ctx.Done():
					return
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			l.logger.Error("watcher error", "err", err)
		}
	}
}

func isTreeFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func treeName(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file))
}
