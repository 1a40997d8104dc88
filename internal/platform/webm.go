package platform

type WebM struct{}

func init() {
	Register(&WebM{})
}

func (p *WebM) GetName() string {
	return "webm"
}

func (p *WebM) GetDescription() string {
	return "VP9 WebM; audio re-encoded to Opus since WebM cannot carry AAC"
}

func (p *WebM) GetVideoCodec() string {
	return "libvpx-vp9"
}

func (p *WebM) GetAudioCodec() string {
	return "libopus"
}

func (p *WebM) GetPixelFormat() string {
	return "yuv420p"
}

func (p *WebM) GetOutputFormat() string {
	return "webm"
}

func (p *WebM) GetEncoderOptions() map[string]string {
	return map[string]string{
		"crf":                   "31",
		"b:v":                   "0",
		"deadline":              "good",
		"cpu-used":              "2",
		"row-mt":                "1",
		"max_muxing_queue_size": "1024",
	}
}
