package filter

import (
	"strconv"
	"strings"
)

// Option is one key=value argument of a filter stage.
type Option struct {
	Key   string
	Value string
}

// Stage is one self-contained filter instruction drawing a single overlay.
type Stage struct {
	Name        string
	OperationID string
	Options     []Option
	Window      Window
	Placement   Placement
}

// Get returns the value of the named option.
func (s Stage) Get(key string) (string, bool) {
	for _, opt := range s.Options {
		if opt.Key == key {
			return opt.Value, true
		}
	}
	return "", false
}

// Args returns the options as a map, for builders that take keyword arguments.
func (s Stage) Args() map[string]string {
	args := make(map[string]string, len(s.Options))
	for _, opt := range s.Options {
		args[opt.Key] = opt.Value
	}
	return args
}

// String renders the stage in ffmpeg -vf syntax. Values are escaped for
// the filter's option parser first and the whole argument list is then
// escaped for the filtergraph parser.
func (s Stage) String() string {
	var args strings.Builder
	for i, opt := range s.Options {
		if i > 0 {
			args.WriteByte(':')
		}
		args.WriteString(opt.Key)
		args.WriteByte('=')
		args.WriteString(escapeOption(opt.Value))
	}
	if args.Len() == 0 {
		return s.Name
	}
	return s.Name + "=" + graphEscaper.Replace(args.String())
}

// Graph joins stages into a single filter chain.
func Graph(stages []Stage) string {
	parts := make([]string, len(stages))
	for i, s := range stages {
		parts[i] = s.String()
	}
	return strings.Join(parts, ",")
}

// Window is the half-open interval [Start, End) during which a stage draws.
type Window struct {
	Start float64
	End   float64
}

// Active reports whether media time t falls inside the window.
func (w Window) Active(t float64) bool {
	return t >= w.Start && t < w.End
}

// Expression renders the window as a drawtext enable expression.
func (w Window) Expression() string {
	return "gte(t," + formatFloat(w.Start) + ")*lt(t," + formatFloat(w.End) + ")"
}

// Placement captures the anchoring arithmetic of a stage so it can be checked
// without running ffmpeg.
type Placement struct {
	XNorm   float64
	YNorm   float64
	Padding int
}

// XExpression is the drawtext x expression.
func (p Placement) XExpression() string {
	return axisExpression(p.Padding, p.XNorm, "w", "tw")
}

// YExpression is the drawtext y expression.
func (p Placement) YExpression() string {
	return axisExpression(p.Padding, p.YNorm, "h", "th")
}

// Resolve evaluates the placement for a concrete frame and text box size.
func (p Placement) Resolve(frameWidth, frameHeight, textWidth, textHeight float64) (x, y float64) {
	pad := float64(p.Padding)
	x = pad + p.XNorm*(frameWidth-textWidth-2*pad)
	y = pad + p.YNorm*(frameHeight-textHeight-2*pad)
	return x, y
}

func axisExpression(padding int, norm float64, frame, text string) string {
	pad := strconv.Itoa(padding)
	return pad + "+" + formatFloat(norm) + "*(" + frame + "-" + text + "-" + pad + "*2)"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var graphEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`,`, `\,`,
	`;`, `\;`,
	`[`, `\[`,
	`]`, `\]`,
)

// escapeOption backslash-escapes the option parser's metacharacters. The
// parser trims unescaped whitespace at both ends of a value, so an edge
// space is escaped too.
func escapeOption(value string) string {
	var sb strings.Builder
	last := len(value) - 1
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == '\\' || c == '\'' || c == ':':
			sb.WriteByte('\\')
		case (i == 0 || i == last) && isSpace(c):
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
