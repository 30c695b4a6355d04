package convert

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"oklchify/state"
)

// Run is the cli action behind the convert command. Every argument is an
// input document; each one is processed independently and a failure of one
// never stops the rest.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	if cmd.Args().Len() == 0 {
		return errors.New("no input files have been specified")
	}

	env.Backup = env.Backup || cmd.Bool("backup")
	env.Watch = cmd.Bool("watch")

	paths := make([]string, 0, cmd.Args().Len())
	for _, arg := range cmd.Args().Slice() {
		p, err := filepath.Abs(arg)
		if err != nil {
			return err
		}
		paths = append(paths, p)
	}

	log.Info("Processing starting", zap.Int("files", len(paths)))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	processAll(env, log, paths)

	if env.Watch {
		return watch(ctx, env, log, paths)
	}
	return nil
}

// processAll handles each file in turn, printing one status line per file.
func processAll(env *state.LocalEnv, log *zap.Logger, paths []string) {
	for _, path := range paths {
		status, err := ProcessFile(env, log, path)
		switch status {
		case StatusConverted:
			log.Info("Converted", zap.String("file", path))
		case StatusAlreadyProcessed, StatusNothingToDo, StatusSkipped:
			log.Info("Unchanged", zap.String("file", path), zap.Stringer("reason", status))
		default:
			log.Error("Failed", zap.String("file", path), zap.Error(err))
		}
	}
}
