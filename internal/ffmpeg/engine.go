package ffmpeg

import (
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/ZacxDev/video-overlay/internal/engine"
	"github.com/ZacxDev/video-overlay/internal/filter"
	"github.com/ZacxDev/video-overlay/internal/overlay"
	"github.com/ZacxDev/video-overlay/internal/platform"
	"github.com/ZacxDev/video-overlay/pkg/types"
)

const (
	EngineName       = "ffmpeg"
	DryRunEngineName = "ffmpeg-dryrun"
)

func init() {
	engine.Register(EngineName, func(inputPath string, opts engine.Options) (engine.Engine, error) {
		return NewEngine(inputPath, opts), nil
	})
	engine.Register(DryRunEngineName, func(inputPath string, opts engine.Options) (engine.Engine, error) {
		e := NewEngine(inputPath, opts)
		e.run = e.logOnly
		return e, nil
	})
}

// Engine renders overlays by running the ffmpeg binary
type Engine struct {
	inputPath string
	opts      engine.Options
	logger    zerolog.Logger

	state  engine.State
	stages []filter.Stage
	run    func(cmd *exec.Cmd) error
}

// NewEngine creates an idle ffmpeg engine for one input
func NewEngine(inputPath string, opts engine.Options) *Engine {
	if opts.Platform == nil {
		opts.Platform, _ = platform.Get("")
	}
	return &Engine{
		inputPath: inputPath,
		opts:      opts,
		logger:    opts.Logger.With().Str("engine", EngineName).Str("input", inputPath).Logger(),
		state:     engine.StateIdle,
		run:       (*exec.Cmd).Run,
	}
}

// State reports the engine lifecycle state
func (e *Engine) State() engine.State {
	return e.state
}

// Stages returns a copy of the configured filter stages
func (e *Engine) Stages() []filter.Stage {
	out := make([]filter.Stage, len(e.stages))
	copy(out, e.stages)
	return out
}

// ApplyOperations compiles ops into drawtext stages, replacing any previous
// configuration
func (e *Engine) ApplyOperations(ops []overlay.Operation) error {
	if !e.state.CanConfigure() {
		return errors.Errorf("cannot apply operations while engine is %s", e.state)
	}
	e.stages = filter.Compile(ops, filter.Options{MediaDuration: e.opts.MediaDuration})
	e.state = engine.StateConfigured

	for _, stage := range e.stages {
		e.logger.Debug().Str("operation", stage.OperationID).Str("filter", stage.String()).Msg("adding text overlay")
	}
	return nil
}

// Export runs ffmpeg and blocks until it exits. A non-zero exit is reported
// as an encoding failure carrying ffmpeg's stderr tail.
func (e *Engine) Export(outputPath string) error {
	if !e.state.CanExport() {
		return errors.Errorf("cannot export while engine is %s", e.state)
	}
	e.state = engine.StateRunning

	cmd := e.command(outputPath)
	capture := newStderrCapture(e.logger, e.opts.MediaDuration, e.opts.OnProgress)
	cmd.Stderr = capture

	e.logger.Debug().Str("command", strings.Join(cmd.Args, " ")).Msg("ffmpeg process starting")

	err := e.run(cmd)
	capture.Flush()
	if err != nil {
		e.state = engine.StateFailed
		diagnostic := capture.Diagnostic()
		if diagnostic == "" {
			diagnostic = err.Error()
		}
		e.logger.Error().Err(err).Str("stderr", diagnostic).Msg("ffmpeg failed")
		return types.NewEditError(types.ErrorKindEncodingFailure, "ffmpeg failed: "+diagnostic, err)
	}

	e.state = engine.StateSucceeded
	event := e.logger.Info().Str("output", outputPath)
	if info, statErr := os.Stat(outputPath); statErr == nil {
		event = event.Int64("bytes", info.Size())
	}
	event.Msg("ffmpeg processing finished")
	return nil
}

// Args returns the ffmpeg arguments an export to outputPath would use
func (e *Engine) Args(outputPath string) []string {
	return e.stream(outputPath).GetArgs()
}

func (e *Engine) stream(outputPath string) *ffmpeg.Stream {
	inputKwargs := ffmpeg.KwArgs{
		"err_detect": "ignore_err",
	}

	outputKwargs := ffmpeg.KwArgs{}
	for k, v := range platform.OutputArgs(e.opts.Platform) {
		outputKwargs[k] = v
	}
	if len(e.stages) > 0 {
		outputKwargs["vf"] = filter.Graph(e.stages)
	}

	return ffmpeg.Input(e.inputPath, inputKwargs).
		Output(outputPath, outputKwargs).
		OverWriteOutput()
}

func (e *Engine) command(outputPath string) *exec.Cmd {
	cmd := e.stream(outputPath).Compile()
	if e.opts.BinaryPath != "" {
		cmd.Path = e.opts.BinaryPath
		cmd.Err = nil
	}
	return cmd
}

func (e *Engine) logOnly(cmd *exec.Cmd) error {
	e.logger.Info().Str("command", strings.Join(cmd.Args, " ")).Msg("dry run, ffmpeg not started")
	return nil
}
