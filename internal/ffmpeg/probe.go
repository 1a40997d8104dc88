package ffmpeg

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// VideoMetadata contains metadata about a video file
type VideoMetadata struct {
	Duration float64
	Width    int
	Height   int
	Codec    string
	HasAudio bool
}

// Processor probes input media ahead of an export
type Processor struct {
	logger zerolog.Logger
	probe  func(path string) (string, error)
}

// NewProcessor creates a new FFmpeg processor
func NewProcessor(logger zerolog.Logger) *Processor {
	return &Processor{
		logger: logger,
		probe: func(path string) (string, error) {
			return ffmpeg.Probe(path)
		},
	}
}

type probeStream struct {
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Duration   string `json:"duration"`
	NbFrames   string `json:"nb_frames"`
	RFrameRate string `json:"r_frame_rate"`
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// GetVideoMetadata retrieves metadata about a video file
func (p *Processor) GetVideoMetadata(inputPath string) (*VideoMetadata, error) {
	out, err := p.probe(inputPath)
	if err != nil {
		return nil, errors.Wrapf(err, "error probing video %s", inputPath)
	}
	metadata, err := parseProbe(out)
	if err != nil {
		return nil, err
	}
	p.logger.Debug().
		Str("input", inputPath).
		Float64("duration", metadata.Duration).
		Int("width", metadata.Width).
		Int("height", metadata.Height).
		Str("codec", metadata.Codec).
		Msg("probed input")
	return metadata, nil
}

func parseProbe(raw string) (*VideoMetadata, error) {
	var data probeOutput
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, errors.WithStack(err)
	}
	if len(data.Streams) == 0 {
		return nil, errors.New("no streams found in video")
	}

	var video *probeStream
	hasAudio := false
	for i := range data.Streams {
		switch data.Streams[i].CodecType {
		case "video":
			if video == nil {
				video = &data.Streams[i]
			}
		case "audio":
			hasAudio = true
		}
	}
	if video == nil {
		return nil, errors.New("no video stream found")
	}

	// Stream duration first, then container duration, then frames / rate
	duration := parseSeconds(video.Duration)
	if duration == 0 {
		duration = parseSeconds(data.Format.Duration)
	}
	if duration == 0 {
		frames := parseSeconds(video.NbFrames)
		if rate := parseFrameRate(video.RFrameRate); frames > 0 && rate > 0 {
			duration = frames / rate
		}
	}
	if duration == 0 {
		return nil, errors.New("could not determine video duration")
	}

	return &VideoMetadata{
		Duration: duration,
		Width:    video.Width,
		Height:   video.Height,
		Codec:    video.CodecName,
		HasAudio: hasAudio,
	}, nil
}

func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseFrameRate(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return parseSeconds(s)
	}
	n, d := parseSeconds(num), parseSeconds(den)
	if d == 0 {
		return 0
	}
	return n / d
}
