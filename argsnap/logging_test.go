package argsnap

import (
	"bytes"
	"strings"
	"testing"

	snapio "github.com/dzonerzy/go-argsnap/io"
)

func TestDebugTrace(t *testing.T) {
	var buf bytes.Buffer
	m := snapio.New().WithOut(&buf).WithErr(&buf).NoColor()
	p := New("prog", "").Logger(snapio.NewLogger(m).WithFormat(snapio.LogFormatTagged).WithLevel(snapio.LevelDebug))
	p.AddArgument("-v")
	p.AddArgument("--files").Action(ActionInfinite)

	parse(t, p, "-v", "--files", "a", "b")

	for _, want := range []string{
		`[DEBUG] token 1 "-v": short option`,
		`[DEBUG] --files: infinite took 2 token(s)`,
		`[DEBUG] validating`,
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("trace missing %q:\n%s", want, buf.String())
		}
	}
}

func TestNoLoggerNoOutput(t *testing.T) {
	p := New("prog", "")
	p.AddArgument("-v")
	parse(t, p, "-v")
	p.AddArgument("-v")
	if p.Err() == nil {
		t.Fatal("duplicate declaration not recorded")
	}
}
