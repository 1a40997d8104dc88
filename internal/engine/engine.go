// Package engine defines the rendering back end capability and the registry
// implementations register themselves with.
package engine

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/ZacxDev/video-overlay/internal/overlay"
	"github.com/ZacxDev/video-overlay/internal/platform"
)

// Engine renders overlay operations onto an input video.
//
// Implementations are not safe for concurrent use: callers must let one
// Export settle before issuing the next.
type Engine interface {
	// ApplyOperations derives the filter configuration from ops, replacing
	// whatever a previous call configured.
	ApplyOperations(ops []overlay.Operation) error

	// Export runs the render and blocks until it finishes.
	Export(outputPath string) error

	// State reports where the engine is in its lifecycle.
	State() State
}

// Progress is an observational report from a running export.
type Progress struct {
	Processed float64 // seconds of media encoded so far
	Percent   float64 // 0-100, zero when the media duration is unknown
	Speed     string
}

// Options configures a new engine.
type Options struct {
	Platform      platform.Platform
	Logger        zerolog.Logger
	MediaDuration float64
	BinaryPath    string
	OnProgress    func(Progress)
}

// Factory builds an engine for one input.
type Factory func(inputPath string, opts Options) (Engine, error)

var factories = make(map[string]Factory)

// Register makes a factory available under name.
func Register(name string, f Factory) {
	factories[name] = f
}

// New builds the engine registered under name.
func New(name, inputPath string, opts Options) (Engine, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unsupported engine: %s", name)
	}
	if opts.Platform == nil {
		p, err := platform.Get("")
		if err != nil {
			return nil, err
		}
		opts.Platform = p
	}
	return f(inputPath, opts)
}

// Names returns the registered engine names in sorted order.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
