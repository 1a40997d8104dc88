package videoprocessor

import (
	"context"
	"encoding/json"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/ZacxDev/video-overlay/internal/config"
	"github.com/ZacxDev/video-overlay/internal/editor"
	"github.com/ZacxDev/video-overlay/internal/engine"
	"github.com/ZacxDev/video-overlay/internal/export"
	"github.com/ZacxDev/video-overlay/internal/ffmpeg"
	"github.com/ZacxDev/video-overlay/internal/filter"
	"github.com/ZacxDev/video-overlay/internal/logging"
	"github.com/ZacxDev/video-overlay/internal/platform"
	"github.com/ZacxDev/video-overlay/internal/server"
	"github.com/ZacxDev/video-overlay/internal/storage"
	"github.com/ZacxDev/video-overlay/pkg/types"
)

type (
	RenderOptions = config.RenderOptions
	ServeOptions  = config.ServeOptions
)

// probeDuration looks up the input length; unknown lengths are reported as 0
var probeDuration = func(p *ffmpeg.Processor, path string) (float64, error) {
	md, err := p.GetVideoMetadata(path)
	if err != nil {
		return 0, err
	}
	return md.Duration, nil
}

// GetSupportedPlatforms returns the output profile names
func GetSupportedPlatforms() []string {
	return platform.GetSupportedPlatforms()
}

// GetSupportedEngines returns the render engine names
func GetSupportedEngines() []string {
	return engine.Names()
}

// ReadOverlays loads an overlay file. The file has the same shape as the
// edit request body; its videoId is ignored.
func ReadOverlays(path string) (*types.EditVideoRequest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read overlays %s", path)
	}
	var req types.EditVideoRequest
	if err := json.Unmarshal(b, &req); err != nil {
		return nil, errors.Wrapf(err, "failed to parse overlays %s", path)
	}
	return &req, nil
}

func newSession(inputPath, overlaysPath string) (*editor.Session, error) {
	session := editor.NewSession(inputPath)
	if overlaysPath == "" {
		return session, nil
	}
	req, err := ReadOverlays(overlaysPath)
	if err != nil {
		return nil, err
	}
	for _, o := range req.TextOverlays {
		session.AddText(o.Operation(config.DefaultOverlayDuration))
	}
	return session, nil
}

// CompileFilters returns the drawtext filter graph for an overlay file and
// each stage on its own.
func CompileFilters(overlaysPath string, mediaDuration float64) (string, []string, error) {
	session, err := newSession("", overlaysPath)
	if err != nil {
		return "", nil, err
	}
	stages := filter.Compile(session.Operations(), filter.Options{MediaDuration: mediaDuration})
	lines := make([]string, 0, len(stages))
	for _, stage := range stages {
		lines = append(lines, stage.String())
	}
	return filter.Graph(stages), lines, nil
}

// Render burns the overlays from opts.OverlaysPath into the input video and
// returns the path written.
func Render(opts *RenderOptions) (string, error) {
	logger := logging.New(logging.Options{Verbose: opts.Verbose})

	if opts.InputPath == "" || opts.OutputPath == "" {
		return "", errors.New("input path and output path are required")
	}

	session, err := newSession(opts.InputPath, opts.OverlaysPath)
	if err != nil {
		return "", err
	}

	p, err := platform.Get(opts.Profile)
	if err != nil {
		return "", err
	}
	outputPath, err := export.EnsureOutputPath(opts.OutputPath, p.GetOutputFormat())
	if err != nil {
		return "", err
	}

	duration, err := probeDuration(ffmpeg.NewProcessor(logging.WithComponent(logger, "probe")), opts.InputPath)
	if err != nil {
		logger.Warn().Err(err).Msg("could not probe input, overlays will not be clamped to its length")
	}

	name := opts.Engine
	if name == "" {
		name = config.DefaultEngine
	}
	eng, err := engine.New(name, opts.InputPath, engine.Options{
		Platform:      p,
		Logger:        logging.WithComponent(logger, "engine"),
		MediaDuration: duration,
		BinaryPath:    opts.FFmpegPath,
		OnProgress: func(pr engine.Progress) {
			if pr.Percent > 0 {
				logger.Info().Float64("percent", pr.Percent).Str("speed", pr.Speed).Msg("rendering")
			}
		},
	})
	if err != nil {
		return "", err
	}

	if err := export.New(session, eng, logging.WithComponent(logger, "export")).Export(outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}

// Serve runs the HTTP editor service until ctx is cancelled
func Serve(ctx context.Context, opts *ServeOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Bind != "" {
		cfg.Server.Bind = opts.Bind
	}
	if opts.Verbose {
		cfg.Logging.Verbose = true
	}

	logger := logging.New(logging.Options{Verbose: cfg.Logging.Verbose, Format: cfg.Logging.Format})
	if cfg.Logging.Verbose {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := storage.New(cfg.Paths.UploadDir, cfg.Paths.OutputDir)
	if err != nil {
		return err
	}
	return server.New(cfg, store, logging.WithComponent(logger, "server")).Run(ctx)
}
