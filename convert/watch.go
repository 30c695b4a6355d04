package convert

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"oklchify/state"
)

// watch re-runs the transform whenever one of the input files is written.
// Both transformers are idempotent, so events triggered by our own rewrite
// settle into no-ops. Returns when the context is cancelled.
func watch(ctx context.Context, env *state.LocalEnv, log *zap.Logger, paths []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch parent directories - editors commonly replace files on save,
	// which drops a watch installed on the file itself.
	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		watched[p] = true
		dirs[filepath.Dir(p)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return err
		}
	}

	log.Info("Watching for changes", zap.Int("files", len(paths)))

	for {
		select {
		case <-ctx.Done():
			log.Info("Watch stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !watched[ev.Name] || !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			log.Debug("Change detected", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
			processAll(env, log, []string{ev.Name})

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("Watcher error", zap.Error(err))
		}
	}
}
