package snapio

import (
	"bytes"
	"strings"
	"testing"
)

func newTestLogger() (*Logger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	m := New().WithOut(&out).WithErr(&errOut).NoColor()
	return NewLogger(m), &out, &errOut
}

func TestLogger_LevelFilter(t *testing.T) {
	l, out, _ := newTestLogger()
	l.WithFormat(LogFormatTagged)

	l.Debug("hidden")
	if out.Len() != 0 {
		t.Errorf("debug written at default level: %q", out.String())
	}

	l.WithLevel(LevelDebug)
	l.Debug("token %d", 3)
	if got := out.String(); got != "[DEBUG] token 3\n" {
		t.Errorf("debug output = %q", got)
	}
}

func TestLogger_ErrorsToStderr(t *testing.T) {
	l, out, errOut := newTestLogger()
	l.WithFormat(LogFormatPlain)

	l.Error("bad %s", "thing")
	l.Warning("careful")
	l.Info("fine")

	if got := errOut.String(); got != "bad thing\ncareful\n" {
		t.Errorf("stderr = %q", got)
	}
	if got := out.String(); got != "fine\n" {
		t.Errorf("stdout = %q", got)
	}

	out.Reset()
	errOut.Reset()
	l.ErrorsToStderr(false)
	l.Error("now stdout")
	if out.String() != "now stdout\n" || errOut.Len() != 0 {
		t.Errorf("ErrorsToStderr(false) routed to stdout=%q stderr=%q", out.String(), errOut.String())
	}
}

func TestLogger_Symbols(t *testing.T) {
	l, out, _ := newTestLogger()
	l.Success("done")
	if got := out.String(); got != "✓ done\n" {
		t.Errorf("symbol output = %q", got)
	}
}

func TestLogger_Timestamp(t *testing.T) {
	l, out, _ := newTestLogger()
	l.WithFormat(LogFormatTagged).WithTimestamp(true).WithTimeFormat("2006")
	l.Info("stamped")
	fields := strings.Fields(out.String())
	if len(fields) != 3 || fields[0] != "[INFO]" || len(fields[1]) != 4 || fields[2] != "stamped" {
		t.Errorf("timestamped output = %q", out.String())
	}
}

func TestLogger_NilSafe(t *testing.T) {
	var l *Logger
	if l.Enabled(LevelError) {
		t.Error("nil logger reported enabled")
	}
	l.Error("ignored")
}

func TestLogLevel_String(t *testing.T) {
	if LevelWarning.String() != "WARN" || LogLevel(99).String() != "UNKNOWN" {
		t.Error("unexpected level names")
	}
}
