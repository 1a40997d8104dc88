package platform

type Web struct{}

func init() {
	Register(&Web{})
}

func (p *Web) GetName() string {
	return "web"
}

func (p *Web) GetDescription() string {
	return "H.264 MP4 for browser playback, audio passed through"
}

func (p *Web) GetVideoCodec() string {
	return "libx264"
}

func (p *Web) GetAudioCodec() string {
	return "copy"
}

func (p *Web) GetPixelFormat() string {
	return "yuv420p"
}

func (p *Web) GetOutputFormat() string {
	return "mp4"
}

func (p *Web) GetEncoderOptions() map[string]string {
	return map[string]string{
		"crf":                   "23",
		"preset":                "medium",
		"profile:v":             "main",
		"movflags":              "+faststart",
		"max_muxing_queue_size": "1024",
	}
}
