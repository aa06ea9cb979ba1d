// Package output provides the logger and formatted output used by the CLI.
//
// Diagnostics go to stderr through zerolog so the build tool's stdout is
// never interleaved with rsbuild's own messages.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mitchellh/colorstring"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

func init() {
	zerolog.ErrorMarshalFunc = func(err error) interface{} {
		return eris.ToString(err, false)
	}
}

// NewLogger creates a logger writing human-readable lines to w.
// Debug messages are only emitted when debug is true.
func NewLogger(w io.Writer, color, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(NewConsoleWriter(w, color)).Level(level)
}

// ConsoleWriter renders zerolog JSON events as coloured single-line messages.
type ConsoleWriter struct {
	out      io.Writer
	colorize colorstring.Colorize
	buffer   strings.Builder
	lock     sync.Mutex
}

// NewConsoleWriter creates a ConsoleWriter. Colour codes are stripped when
// color is false.
func NewConsoleWriter(out io.Writer, color bool) *ConsoleWriter {
	return &ConsoleWriter{
		out: out,
		colorize: colorstring.Colorize{
			Colors:  colorstring.DefaultColors,
			Disable: !color,
			Reset:   false,
		},
	}
}

func (w *ConsoleWriter) Write(p []byte) (n int, err error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	var evt map[string]interface{}
	d := json.NewDecoder(bytes.NewReader(p))
	d.UseNumber()
	if err := d.Decode(&evt); err != nil {
		return 0, eris.Wrapf(err, "cannot decode event: %s", p)
	}

	w.buffer.Reset()
	level, _ := evt["level"].(string)
	code := "[reset]"
	switch level {
	case "fatal", "error":
		code = "[red]"
		w.buffer.WriteString("error: ")
	case "warn":
		code = "[yellow]"
		w.buffer.WriteString("warning: ")
	case "debug", "trace":
		code = "[blue]"
	}

	msg, _ := evt[zerolog.MessageFieldName].(string)
	w.buffer.WriteString(msg)

	for _, key := range []string{"tool", "args", "signal"} {
		if v, ok := evt[key]; ok {
			fmt.Fprintf(&w.buffer, " %s=%v", key, v)
		}
	}

	if details, ok := evt[zerolog.ErrorFieldName].(string); ok && level == "debug" {
		w.buffer.WriteString(": ")
		w.buffer.WriteString(details)
	}

	// Message text is written outside Color so brackets in it are kept as-is.
	line := w.colorize.Color(code) + w.buffer.String() + w.colorize.Color("[reset]") + "\n"
	if _, err := io.WriteString(w.out, line); err != nil {
		return 0, err
	}
	return len(p), nil
}

// IsTerminal returns true if w is a character device such as a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if fi, _ := f.Stat(); fi != nil {
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// UseColor decides whether diagnostics written to w should be coloured.
// NO_COLOR in env disables colour regardless of the terminal.
func UseColor(w io.Writer, env map[string]string) bool {
	if _, ok := env["NO_COLOR"]; ok {
		return false
	}
	return IsTerminal(w)
}
