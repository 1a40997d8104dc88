package platform

type Archive struct{}

func init() {
	Register(&Archive{})
}

func (p *Archive) GetName() string {
	return "archive"
}

func (p *Archive) GetDescription() string {
	return "High quality H.264 MP4 (slow preset, crf 18), audio passed through"
}

func (p *Archive) GetVideoCodec() string {
	return "libx264"
}

func (p *Archive) GetAudioCodec() string {
	return "copy"
}

func (p *Archive) GetPixelFormat() string {
	return "yuv420p"
}

func (p *Archive) GetOutputFormat() string {
	return "mp4"
}

func (p *Archive) GetEncoderOptions() map[string]string {
	return map[string]string{
		"crf":                   "18",
		"preset":                "slower",
		"profile:v":             "high",
		"movflags":              "+faststart",
		"x264opts":              "no-scenecut",
		"max_muxing_queue_size": "1024",
	}
}
