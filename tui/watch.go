// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tui

import (
	"path/filepath"
	"sync"
	"time"

	tui "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// Debounce is the time waited after a change of a watched file
// before the file is reloaded.
const Debounce = 250 * time.Millisecond

// A Watcher reports the changes of a tree file.
type Watcher struct {
	path string
	fsw  *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer

	changed   chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// NewWatcher starts watching a file.
// The directory of the file is watched
// so files replaced by editors are still reported.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    abs,
		fsw:     fsw,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.watch()
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Changed returns a channel that receives
// when the file changes.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changed
}

// Close stops watching the file.
// It is safe to call Close more than once,
// and from several goroutines.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()

		close(w.done)
		w.closeErr = w.fsw.Close()
	})
	return w.closeErr
}

func (w *Watcher) watch() {
	target := filepath.Base(w.path)
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.trigger()
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// trigger notifies a change
// after the debounce time without new events.
func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(Debounce, func() {
		select {
		case w.changed <- struct{}{}:
		default:
		}
	})
}

// fileChanged is sent when the watched file changes.
type fileChanged struct {
	name string
}

// watchFile returns a command that waits
// for a change of the watched file.
func watchFile(w *Watcher, name string) tui.Cmd {
	return func() tui.Msg {
		select {
		case <-w.Changed():
			return fileChanged{name: name}
		case <-w.done:
			return nil
		}
	}
}
