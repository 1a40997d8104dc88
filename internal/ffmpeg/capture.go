package ffmpeg

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ZacxDev/video-overlay/internal/engine"
)

const diagnosticLines = 20

var (
	progressTime  = regexp.MustCompile(`time=(\d+):(\d{2}):(\d{2}(?:\.\d+)?)`)
	progressSpeed = regexp.MustCompile(`speed=\s*(\S+)`)
)

// stderrCapture splits ffmpeg's stderr into lines, reports progress lines and
// keeps the tail of everything else as the failure diagnostic.
type stderrCapture struct {
	logger     zerolog.Logger
	duration   float64
	onProgress func(engine.Progress)

	mu      sync.Mutex
	partial []byte
	tail    []string
}

func newStderrCapture(logger zerolog.Logger, duration float64, onProgress func(engine.Progress)) *stderrCapture {
	return &stderrCapture{
		logger:     logger,
		duration:   duration,
		onProgress: onProgress,
	}
}

func (c *stderrCapture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range p {
		// ffmpeg rewrites its progress line with \r
		if b == '\n' || b == '\r' {
			c.line(string(c.partial))
			c.partial = c.partial[:0]
			continue
		}
		c.partial = append(c.partial, b)
	}
	return len(p), nil
}

// Flush handles a final line that was not newline terminated.
func (c *stderrCapture) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.partial) > 0 {
		c.line(string(c.partial))
		c.partial = c.partial[:0]
	}
}

// Diagnostic returns the last non-progress stderr lines.
func (c *stderrCapture) Diagnostic() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.tail, "\n")
}

func (c *stderrCapture) line(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}
	if progress, ok := parseProgress(line, c.duration); ok {
		c.logger.Debug().
			Float64("processed", progress.Processed).
			Float64("percent", progress.Percent).
			Str("speed", progress.Speed).
			Msg("ffmpeg progress")
		if c.onProgress != nil {
			c.onProgress(progress)
		}
		return
	}
	c.logger.Debug().Str("line", line).Msg("ffmpeg")
	c.tail = append(c.tail, line)
	if len(c.tail) > diagnosticLines {
		c.tail = c.tail[len(c.tail)-diagnosticLines:]
	}
}

func parseProgress(line string, duration float64) (engine.Progress, bool) {
	m := progressTime.FindStringSubmatch(line)
	if m == nil {
		return engine.Progress{}, false
	}
	hours, _ := strconv.ParseFloat(m[1], 64)
	minutes, _ := strconv.ParseFloat(m[2], 64)
	seconds, _ := strconv.ParseFloat(m[3], 64)

	progress := engine.Progress{
		Processed: hours*3600 + minutes*60 + seconds,
	}
	if duration > 0 {
		progress.Percent = min(100, progress.Processed/duration*100)
	}
	if s := progressSpeed.FindStringSubmatch(line); s != nil {
		progress.Speed = s[1]
	}
	return progress, true
}
