package ffmpeg

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProbeStreamDuration(t *testing.T) {
	raw := `{
		"streams": [
			{"codec_type": "audio", "codec_name": "aac"},
			{"codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080, "duration": "12.480000"}
		],
		"format": {"duration": "12.500000"}
	}`
	md, err := parseProbe(raw)
	require.NoError(t, err)
	assert.InDelta(t, 12.48, md.Duration, 1e-9)
	assert.Equal(t, 1920, md.Width)
	assert.Equal(t, 1080, md.Height)
	assert.Equal(t, "h264", md.Codec)
	assert.True(t, md.HasAudio)
}

func TestParseProbeFallsBackToFormatThenFrames(t *testing.T) {
	md, err := parseProbe(`{"streams":[{"codec_type":"video","width":640,"height":360}],"format":{"duration":"7.0"}}`)
	require.NoError(t, err)
	assert.Equal(t, 7.0, md.Duration)
	assert.False(t, md.HasAudio)

	md, err = parseProbe(`{"streams":[{"codec_type":"video","nb_frames":"300","r_frame_rate":"30000/1001"}],"format":{}}`)
	require.NoError(t, err)
	assert.InDelta(t, 10.01, md.Duration, 1e-9)
}

func TestParseProbeErrors(t *testing.T) {
	_, err := parseProbe(`{"streams":[]}`)
	assert.EqualError(t, err, "no streams found in video")

	_, err = parseProbe(`{"streams":[{"codec_type":"audio"}]}`)
	assert.EqualError(t, err, "no video stream found")

	_, err = parseProbe(`{"streams":[{"codec_type":"video"}],"format":{}}`)
	assert.EqualError(t, err, "could not determine video duration")

	_, err = parseProbe(`not json`)
	assert.Error(t, err)
}

func TestGetVideoMetadataWrapsProbeError(t *testing.T) {
	p := NewProcessor(zerolog.Nop())
	p.probe = func(string) (string, error) { return "", errors.New("exit status 1") }

	_, err := p.GetVideoMetadata("missing.mp4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error probing video missing.mp4")
}
