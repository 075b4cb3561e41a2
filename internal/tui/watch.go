package tui

import (
	"log/slog"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// settle groups the create/rename burst of one atomic save into a single refresh.
const settle = 150 * time.Millisecond

type storeChangedMsg struct{}

type watchErrMsg struct{ err error }

// watchFile blocks until path changes, then reports it. The directory is
// watched rather than the file because saves replace the file by rename.
// Update re-arms the command after each change.
func watchFile(path string, log *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return watchErrMsg{err}
		}
		defer w.Close()
		if err := w.Add(filepath.Dir(path)); err != nil {
			return watchErrMsg{err}
		}
		name := filepath.Clean(path)
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != name || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				log.Debug("store file event", "op", ev.Op.String())
				drain(w, settle)
				return storeChangedMsg{}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err}
			}
		}
	}
}

// drain swallows further events until the directory has been quiet for d.
func drain(w *fsnotify.Watcher, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return
			}
			if !t.Stop() {
				<-t.C
			}
			t.Reset(d)
		case <-t.C:
			return
		}
	}
}
