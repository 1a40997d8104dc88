package platform

import (
	"fmt"
	"sort"
)

// DefaultName is the profile used when none is configured.
const DefaultName = "web"

// Platform describes the output encoding parameters for one delivery target.
type Platform interface {
	// GetName returns the platform name
	GetName() string

	// GetDescription returns a one-line summary for help output
	GetDescription() string

	// GetVideoCodec returns the video encoder
	GetVideoCodec() string

	// GetAudioCodec returns the audio encoder, "copy" passes audio through
	GetAudioCodec() string

	// GetPixelFormat returns the output pixel format
	GetPixelFormat() string

	// GetOutputFormat returns the container extension (e.g., "mp4", "webm")
	GetOutputFormat() string

	// GetEncoderOptions returns extra encoder flags keyed by ffmpeg option name
	GetEncoderOptions() map[string]string
}

var platforms = make(map[string]Platform)

// Register adds a platform to the registry
func Register(p Platform) {
	platforms[p.GetName()] = p
}

// Get returns a platform by name. An empty name selects DefaultName.
func Get(name string) (Platform, error) {
	if name == "" {
		name = DefaultName
	}
	p, ok := platforms[name]
	if !ok {
		return nil, fmt.Errorf("unsupported platform: %s", name)
	}
	return p, nil
}

// GetSupportedPlatforms returns the registered platform names in sorted order
func GetSupportedPlatforms() []string {
	names := make([]string, 0, len(platforms))
	for name := range platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OutputArgs flattens a platform into ffmpeg output arguments.
func OutputArgs(p Platform) map[string]string {
	args := map[string]string{
		"c:v":     p.GetVideoCodec(),
		"c:a":     p.GetAudioCodec(),
		"pix_fmt": p.GetPixelFormat(),
	}
	for k, v := range p.GetEncoderOptions() {
		args[k] = v
	}
	return args
}
