package server

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// CorpusWatcher monitors the configured corpus files and triggers an
// asynchronous index rebuild when one of them changes. Events are
// debounced so a burst of writes (editors, rsync) causes one rebuild.
type CorpusWatcher struct {
	server  *Server
	watcher *fsnotify.Watcher
	watched map[string]bool
	done    chan struct{}
}

const corpusDebounce = 500 * time.Millisecond

// NewCorpusWatcher watches the directories containing the sequence and
// taxonomy files. fsnotify watches directories rather than files so
// atomic replace-by-rename is still observed.
func NewCorpusWatcher(s *Server, cfg CorpusConfig) (*CorpusWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	cw := &CorpusWatcher{
		server:  s,
		watcher: w,
		watched: make(map[string]bool),
		done:    make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, path := range []string{cfg.Sequences, cfg.Taxonomy} {
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			w.Close()
			return nil, err
		}
		cw.watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, err
		}
	}

	return cw, nil
}

// Start launches the event loop.
func (cw *CorpusWatcher) Start() {
	go cw.loop()
}

// Stop shuts the watcher down.
func (cw *CorpusWatcher) Stop() {
	close(cw.done)
	cw.watcher.Close()
}

func (cw *CorpusWatcher) loop() {
	var debounce *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-cw.done:
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !cw.watched[abs] {
				continue
			}

			slog.Info("Corpus file changed, scheduling index rebuild", "file", event.Name)
			if debounce == nil {
				debounce = time.NewTimer(corpusDebounce)
			} else {
				debounce.Reset(corpusDebounce)
			}
			pending = debounce.C

		case <-pending:
			pending = nil
			if err := cw.server.ReloadCorpus(); err != nil {
				slog.Error("Corpus reload failed", "error", err)
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Corpus watcher error", "error", err)
		}
	}
}
