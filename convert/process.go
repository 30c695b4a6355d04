// Package convert drives per-file processing: it dispatches every input
// document to the matching transformer and rewrites the file in place.
package convert

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"oklchify/config"
	"oklchify/css"
	"oklchify/oklch"
	"oklchify/state"
	"oklchify/tokens"
)

// Status describes the outcome of processing a single file. Every outcome
// except StatusFailed leaves the overall run successful - failures are local
// to one file.
type Status int

const (
	StatusFailed           Status = iota // file left unmodified, error reported
	StatusConverted                      // file rewritten
	StatusAlreadyProcessed               // idempotence guard triggered, no-op
	StatusNothingToDo                    // no eligible colors found, no-op
	StatusSkipped                        // extension not routed to any transformer
)

func (s Status) String() string {
	switch s {
	case StatusConverted:
		return "converted"
	case StatusAlreadyProcessed:
		return "already processed"
	case StatusNothingToDo:
		return "nothing to do"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// ProcessFile reads, transforms and rewrites one document. The original
// bytes are stored in the debug report (when one is active) before anything
// else happens, the transformed bytes after.
func ProcessFile(env *state.LocalEnv, log *zap.Logger, path string) (Status, error) {
	ext := strings.ToLower(filepath.Ext(path))

	structural := ext == ".css"
	if !structural && !env.Cfg.Conversion.IsTokenExtension(ext) {
		return StatusSkipped, nil
	}

	// snapshot the document as it sits on disk before touching it
	name := config.CleanFileName(filepath.Base(path))
	if err := env.Rpt.StoreCopy("before/"+name, path); err != nil {
		log.Warn("Unable to snapshot original for debug report", zap.String("file", path), zap.Error(err))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return StatusFailed, fmt.Errorf("unable to read %q: %w", path, err)
	}

	var out []byte
	if structural {
		out, err = transformStylesheet(data, path, log)
	} else {
		out, err = tokens.Transform(data, oklch.ConvertValue, log)
	}
	switch {
	case errors.Is(err, css.ErrAlreadyProcessed) || errors.Is(err, tokens.ErrAlreadyProcessed):
		return StatusAlreadyProcessed, nil
	case errors.Is(err, tokens.ErrNothingToDo) || errors.Is(err, errNothingToDo):
		return StatusNothingToDo, nil
	case err != nil:
		return StatusFailed, err
	}

	if env.Backup || env.Cfg.Conversion.BackupOriginals {
		if err := os.WriteFile(path+".orig", data, 0644); err != nil {
			return StatusFailed, fmt.Errorf("unable to write backup for %q: %w", path, err)
		}
	}

	if err := os.WriteFile(path, out, fileMode(path)); err != nil {
		return StatusFailed, fmt.Errorf("unable to write %q: %w", path, err)
	}
	env.Rpt.StoreData("after/"+name, out)
	return StatusConverted, nil
}

// errNothingToDo aligns the structural no-op outcome with the textual one.
var errNothingToDo = errors.New("no hex color declarations found")

func transformStylesheet(data []byte, source string, log *zap.Logger) ([]byte, error) {
	sheet, err := css.NewParser(log).Parse(data, source)
	if err != nil {
		return nil, err
	}
	converted, err := css.NewTransformer(oklch.ConvertValue, log).Transform(sheet)
	if err != nil {
		return nil, err
	}
	if converted == 0 {
		return nil, errNothingToDo
	}
	return []byte(sheet.String()), nil
}

// fileMode keeps the rewritten file's permissions.
func fileMode(path string) fs.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0644
}
