package glf

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ShaderWatcher relinks a program when its source files change on disk.
// Events are only collected by fsnotify's goroutine; Poll drains them and
// relinks on the calling thread, which must own the GL context.
//
// A relink that fails leaves the previous program in place, so a typo in a
// shader being edited never blanks the screen.
type ShaderWatcher struct {
	builder  *Builder
	vertPath string
	fragPath string
	watcher  *fsnotify.Watcher
	program  *Program
}

// NewShaderWatcher links the program from vertPath and fragPath and starts
// watching both files. The directories are watched rather than the files so
// that editors which save by rename are still seen.
//
// Like LinkProgram, a permissive builder yields a watcher even when the first
// build fails; the build error is returned with it and the next change on
// disk retries.
func NewShaderWatcher(b *Builder, vertPath, fragPath string) (*ShaderWatcher, error) {
	prog, err := b.LinkProgram(vertPath, fragPath)
	if prog == nil {
		return nil, err
	}

	w, werr := fsnotify.NewWatcher()
	if werr != nil {
		prog.Delete()
		return nil, fmt.Errorf("glf: shader watcher: %w", werr)
	}
	sw := &ShaderWatcher{
		builder:  b,
		vertPath: filepath.Clean(vertPath),
		fragPath: filepath.Clean(fragPath),
		watcher:  w,
		program:  prog,
	}
	dirs := map[string]bool{filepath.Dir(sw.vertPath): true, filepath.Dir(sw.fragPath): true}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			prog.Delete()
			return nil, fmt.Errorf("glf: watch %s: %w", dir, err)
		}
	}
	return sw, err
}

// Program returns the current program.
func (sw *ShaderWatcher) Program() *Program { return sw.program }

// Poll drains pending file events without blocking and relinks once if
// either source changed. It reports whether the program was replaced.
func (sw *ShaderWatcher) Poll() (bool, error) {
	changed := false
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return false, nil
			}
			if sw.relevant(event) {
				changed = true
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return false, nil
			}
			Logger().Error("glf: shader watcher error", "err", err)
		default:
			if !changed {
				return false, nil
			}
			return sw.Reload()
		}
	}
}

func (sw *ShaderWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(event.Name)
	return name == sw.vertPath || name == sw.fragPath
}

// Reload relinks from the source files now. On success the old program is
// deleted and replaced; on failure the new one is discarded and the error
// returned.
func (sw *ShaderWatcher) Reload() (bool, error) {
	prog, err := sw.builder.LinkProgram(sw.vertPath, sw.fragPath)
	if err != nil || prog == nil || !prog.Linked() {
		if prog != nil {
			prog.Delete()
		}
		Logger().Warn("glf: shader reload failed, keeping previous program", "err", err)
		return false, err
	}
	if sw.program != nil {
		sw.program.Delete()
	}
	sw.program = prog
	Logger().Info("glf: shaders reloaded", "vertex", sw.vertPath, "fragment", sw.fragPath)
	return true, nil
}

// Close stops watching. The current program stays valid and is owned by
// the caller.
func (sw *ShaderWatcher) Close() error {
	return sw.watcher.Close()
}
