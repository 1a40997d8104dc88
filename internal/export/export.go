// Package export drives one render of a session through an engine.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ZacxDev/video-overlay/internal/editor"
	"github.com/ZacxDev/video-overlay/internal/engine"
	"github.com/ZacxDev/video-overlay/pkg/types"
)

// Exporter renders a session's operations with an engine
type Exporter struct {
	session *editor.Session
	engine  engine.Engine
	logger  zerolog.Logger
}

// New creates an exporter for session
func New(session *editor.Session, eng engine.Engine, logger zerolog.Logger) *Exporter {
	return &Exporter{
		session: session,
		engine:  eng,
		logger:  logger.With().Str("session", session.ID).Logger(),
	}
}

// Export hands the session's current operations to the engine and blocks
// until the render finishes. A missing input fails before the engine runs.
func (x *Exporter) Export(outputPath string) error {
	if _, err := os.Stat(x.session.InputPath); err != nil {
		if os.IsNotExist(err) {
			return types.NewEditError(types.ErrorKindInputNotFound,
				fmt.Sprintf("input %s does not exist", x.session.InputPath), nil)
		}
		return types.NewEditError(types.ErrorKindInputNotFound,
			fmt.Sprintf("cannot read input %s", x.session.InputPath), err)
	}

	if err := ensureDir(outputPath); err != nil {
		return err
	}

	ops := x.session.Operations()
	if err := x.engine.ApplyOperations(ops); err != nil {
		return errors.Wrap(err, "failed to configure engine")
	}

	x.logger.Info().
		Str("input", x.session.InputPath).
		Str("output", outputPath).
		Int("overlays", len(ops)).
		Msg("exporting video")

	started := time.Now()
	if err := x.engine.Export(outputPath); err != nil {
		return err
	}

	x.logger.Info().
		Str("output", outputPath).
		Dur("elapsed", time.Since(started)).
		Msg("video exported")
	return nil
}

// EnsureOutputPath creates the parent directory of path and forces its
// extension to match format.
func EnsureOutputPath(path, format string) (string, error) {
	if err := ensureDir(path); err != nil {
		return "", err
	}
	if format == "" {
		return path, nil
	}
	ext := "." + strings.ToLower(format)
	if !strings.HasSuffix(strings.ToLower(path), ext) {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + ext
	}
	return path, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}
	return nil
}
