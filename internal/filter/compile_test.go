package filter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZacxDev/video-overlay/internal/overlay"
)

func hiOverlay() overlay.TextOperation {
	return overlay.TextOperation{
		ID:       "hi",
		Text:     "Hi",
		Position: overlay.Position{X: 10, Y: 10},
		Style:    overlay.DefaultStyle(),
		Start:    2,
		Duration: 5,
	}
}

func TestCompileHiScenario(t *testing.T) {
	stages := CompileText([]overlay.TextOperation{hiOverlay()}, Options{})
	require.Len(t, stages, 1)
	stage := stages[0]

	assert.Equal(t, "drawtext", stage.Name)
	assert.Equal(t, "hi", stage.OperationID)

	for _, tt := range []struct {
		t      float64
		active bool
	}{
		{1.999, false},
		{2, true},
		{4.5, true},
		{6.999, true},
		{7, false},
	} {
		assert.Equal(t, tt.active, stage.Window.Active(tt.t), "t=%g", tt.t)
	}

	enable, ok := stage.Get("enable")
	require.True(t, ok)
	assert.Equal(t, "gte(t,2)*lt(t,7)", enable)

	x, y := stage.Placement.Resolve(1920, 1080, 100, 40)
	assert.InDelta(t, 10+0.1*(1920-100-20), x, 1e-9)
	assert.InDelta(t, 10+0.1*(1080-40-20), y, 1e-9)
	assert.Greater(t, x, 10.0)
	assert.Greater(t, y, 10.0)
}

func TestCompileRendersDrawtextString(t *testing.T) {
	stage := CompileText([]overlay.TextOperation{hiOverlay()}, Options{})[0]

	want := "drawtext=fontfile=" + overlay.DefaultFontFamily +
		":text=Hi" +
		":expansion=none" +
		":x=10+0.1*(w-tw-10*2)" +
		":y=10+0.1*(h-th-10*2)" +
		":fontsize=32" +
		":fontcolor=0xFFFFFF" +
		":borderw=2" +
		":bordercolor=0x000000" +
		":box=1" +
		":boxcolor=0x000000@0.5" +
		":boxborderw=10" +
		`:enable=gte(t\,2)*lt(t\,7)`
	assert.Equal(t, want, stage.String())
}

func TestCompileIsDeterministic(t *testing.T) {
	second := hiOverlay()
	second.ID = "second"
	second.Text = "it's here"
	second.Position = overlay.Position{X: 250, Y: -3}
	second.Style = second.Style.WithFontColor("yellow").WithBackground("not-a-color", 0.25)
	ops := []overlay.TextOperation{hiOverlay(), second}

	first := Graph(CompileText(ops, Options{MediaDuration: 30}))
	again := Graph(CompileText(ops, Options{MediaDuration: 30}))
	assert.Equal(t, first, again)
	assert.Equal(t, CompileText(ops, Options{}), CompileText(ops, Options{}))
}

func TestPlacementStaysInsidePaddedFrame(t *testing.T) {
	const (
		frameW = 1280.0
		frameH = 720.0
		textW  = 200.0
		textH  = 48.0
	)
	for _, padding := range []int{0, 10, 25} {
		for x := -20.0; x <= 120; x += 7.5 {
			for y := -20.0; y <= 120; y += 7.5 {
				op := hiOverlay()
				op.Position = overlay.Position{X: x, Y: y}
				op.Style = op.Style.WithPadding(padding)

				stage := CompileText([]overlay.TextOperation{op}, Options{})[0]
				px, py := stage.Placement.Resolve(frameW, frameH, textW, textH)

				pad := float64(padding)
				assert.GreaterOrEqual(t, px, pad)
				assert.LessOrEqual(t, px, frameW-pad)
				assert.LessOrEqual(t, px+textW, frameW-pad+1e-9)
				assert.GreaterOrEqual(t, py, pad)
				assert.LessOrEqual(t, py+textH, frameH-pad+1e-9)
			}
		}
	}
}

func TestCompileClampsToMediaDuration(t *testing.T) {
	op := hiOverlay()
	op.Start = 8
	op.Duration = 5

	stage := CompileText([]overlay.TextOperation{op}, Options{MediaDuration: 10})[0]
	assert.Equal(t, Window{Start: 8, End: 10}, stage.Window)

	late := hiOverlay()
	late.Start = 12
	stage = CompileText([]overlay.TextOperation{late}, Options{MediaDuration: 10})[0]
	assert.False(t, stage.Window.Active(10))
	assert.False(t, stage.Window.Active(11))
}

func TestCompileKeepsOrderOnePerOverlay(t *testing.T) {
	ops := make([]overlay.TextOperation, 0, 4)
	for _, id := range []string{"d", "a", "c", "b"} {
		op := hiOverlay()
		op.ID = id
		ops = append(ops, op)
	}
	stages := CompileText(ops, Options{})
	require.Len(t, stages, 4)
	for i, id := range []string{"d", "a", "c", "b"} {
		assert.Equal(t, id, stages[i].OperationID)
	}
	assert.Equal(t, 3, strings.Count(Graph(stages), ",drawtext="))
}

// nextToken follows ffmpeg's av_get_token: backslash escapes one character,
// single quotes protect a run, unescaped edge whitespace is dropped.
func nextToken(s, term string) (token, rest string) {
	s = strings.TrimLeft(s, " \n\t\r")
	var out []byte
	end, i := 0, 0
	for i < len(s) && strings.IndexByte(term, s[i]) < 0 {
		c := s[i]
		i++
		switch {
		case c == '\\' && i < len(s):
			out = append(out, s[i])
			i++
			end = len(out)
		case c == '\'':
			for i < len(s) && s[i] != '\'' {
				out = append(out, s[i])
				i++
			}
			if i < len(s) {
				i++
				end = len(out)
			}
		default:
			out = append(out, c)
		}
	}
	for len(out) > end && strings.IndexByte(" \n\t\r", out[len(out)-1]) >= 0 {
		out = out[:len(out)-1]
	}
	return string(out), s[i:]
}

// parseGraph decodes a filter chain the way ffmpeg does: the filtergraph
// parser first, then each filter's key=value option parser.
func parseGraph(t *testing.T, graph string) []map[string]string {
	t.Helper()
	var filters []map[string]string
	for graph != "" {
		name, rest := nextToken(graph, "=,;[")
		require.Equal(t, "drawtext", name)
		require.True(t, strings.HasPrefix(rest, "="), "missing arguments in %q", graph)

		args, rest := nextToken(rest[1:], "[],;")
		opts := make(map[string]string)
		for args != "" {
			k := strings.IndexByte(args, '=')
			require.Positive(t, k, "option without key in %q", args)
			key := args[:k]
			value, more := nextToken(args[k+1:], ":")
			_, dup := opts[key]
			require.False(t, dup, "option %q set twice", key)
			opts[key] = value
			args = strings.TrimPrefix(more, ":")
		}
		filters = append(filters, opts)
		graph = strings.TrimPrefix(rest, ",")
	}
	return filters
}

func TestCompiledGraphSurvivesFfmpegParsing(t *testing.T) {
	for _, text := range []string{
		"Hi",
		"it's",
		"Score: 3",
		"50% off",
		`C:\path\to`,
		"[a];b,c",
		"'quoted'",
		" padded ",
		"multi\nline",
		"héllo: wörld",
	} {
		op := hiOverlay()
		op.Text = text
		stage := CompileText([]overlay.TextOperation{op}, Options{})[0]

		parsed := parseGraph(t, stage.String())
		require.Len(t, parsed, 1, text)
		assert.Equal(t, stage.Args(), parsed[0], text)
		assert.Equal(t, text, parsed[0]["text"])
		assert.Equal(t, "gte(t,2)*lt(t,7)", parsed[0]["enable"], text)
	}
}

func TestCompiledGraphKeepsFontPathWithColon(t *testing.T) {
	op := hiOverlay()
	op.Style.FontFamily = "C:/Windows/Fonts/arial.ttf"
	second := hiOverlay()
	second.ID = "second"
	second.Text = "a, b; c"

	stages := CompileText([]overlay.TextOperation{op, second}, Options{})
	parsed := parseGraph(t, Graph(stages))
	require.Len(t, parsed, 2)
	assert.Equal(t, "C:/Windows/Fonts/arial.ttf", parsed[0]["fontfile"])
	assert.Equal(t, "a, b; c", parsed[1]["text"])
	assert.Equal(t, stages[1].Args(), parsed[1])
}

func TestCompileEscapesTextForBothParsers(t *testing.T) {
	op := hiOverlay()
	op.Text = "it's 5:00"
	stage := CompileText([]overlay.TextOperation{op}, Options{})[0]
	assert.Contains(t, stage.String(), `:text=it\\\'s 5\\:00:`)

	raw, _ := stage.Get("text")
	assert.Equal(t, "it's 5:00", raw)
	none, _ := stage.Get("expansion")
	assert.Equal(t, "none", none)
}

func TestColor(t *testing.T) {
	assert.Equal(t, "0xFF8800", Color("#FF8800"))
	assert.Equal(t, "white", Color("white"))
	assert.Equal(t, "0xzz", Color("#zz"))
	assert.Equal(t, "", Color(""))
	assert.Equal(t, "black@0.75", ColorWithAlpha("black", 0.75))
}
