package argsnap

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func parse(t *testing.T, p *Parser, args ...string) *Result {
	t.Helper()
	res, err := p.Parse(append([]string{"prog"}, args...))
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", args, err)
	}
	return res
}

func parseErr(t *testing.T, p *Parser, want *ParseError, args ...string) *ParseError {
	t.Helper()
	_, err := p.Parse(append([]string{"prog"}, args...))
	if err == nil {
		t.Fatalf("Parse(%q) succeeded, want %s error", args, want.Type)
	}
	if !errors.Is(err, want) {
		t.Fatalf("Parse(%q) error = %v, want type %s", args, err, want.Type)
	}
	var pe *ParseError
	errors.As(err, &pe)
	return pe
}

func view(t *testing.T, res *Result, name string) *ArgumentView {
	t.Helper()
	v, err := res.GetArgument(name)
	if err != nil {
		t.Fatalf("GetArgument(%q): %v", name, err)
	}
	return v
}

func TestScenarioRequiredPositional(t *testing.T) {
	p := New("prog", "")
	p.AddArgument("file").Required(true)

	res := parse(t, p, "a.txt")
	if got := view(t, res, "file").String(); got != "a.txt" {
		t.Errorf("file = %q, want a.txt", got)
	}
	if extra := res.AdditionalArguments(); len(extra) != 0 {
		t.Errorf("additional = %q, want none", extra)
	}
}

func TestScenarioFlagAndNumber(t *testing.T) {
	p := New("prog", "")
	p.AddArgument("-v", "--verbose")
	p.AddArgument("-n", "--count").Nargs(2)

	res := parse(t, p, "-v", "--count", "3", "4")
	if !view(t, res, "--verbose").Exists() {
		t.Error("verbose should exist")
	}
	if diff := cmp.Diff([]string{"3", "4"}, view(t, res, "-n").Strings()); diff != "" {
		t.Errorf("count mismatch (-want +got):\n%s", diff)
	}
}

func TestScenarioEndOfOptions(t *testing.T) {
	p := New("prog", "")
	p.AddArgument("--tags").Action(ActionExtend)

	res := parse(t, p, "--tags", "a", "b", "--", "c")
	if diff := cmp.Diff([]string{"a", "b"}, view(t, res, "--tags").Strings()); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"c"}, res.AdditionalArguments()); diff != "" {
		t.Errorf("additional mismatch (-want +got):\n%s", diff)
	}
}

func TestScenarioUnknownOption(t *testing.T) {
	p := New("prog", "")
	pe := parseErr(t, p, ErrUnknownOption, "--nope")
	if pe.Flag != "nope" {
		t.Errorf("Flag = %q, want nope", pe.Flag)
	}
	if pe.Error() != "invalid option -- 'nope'" {
		t.Errorf("Error() = %q", pe.Error())
	}
}

func TestShortClusterEquivalence(t *testing.T) {
	build := func() *Parser {
		p := New("prog", "")
		p.AddArgument("-a").Action(ActionStoreTrue)
		p.AddArgument("-b").Action(ActionStoreTrue)
		p.AddArgument("-c").Action(ActionStoreTrue)
		p.AddArgument("-d").Action(ActionStoreTrue)
		return p
	}
	state := func(res *Result) []bool {
		var out []bool
		for _, n := range []string{"-a", "-b", "-c", "-d"} {
			out = append(out, view(t, res, n).Bool())
		}
		return out
	}

	clustered := state(parse(t, build(), "-abc"))
	separate := state(parse(t, build(), "-a", "-b", "-c"))
	if diff := cmp.Diff(separate, clustered); diff != "" {
		t.Errorf("cluster differs from separate flags (-separate +cluster):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{true, true, true, false}, clustered); diff != "" {
		t.Errorf("unexpected flag state (-want +got):\n%s", diff)
	}
}

func TestSimpleInlineForms(t *testing.T) {
	forms := [][]string{
		{"--output=val"},
		{"--output", "val"},
		{"-o", "val"},
		{"-oval"},
		{"-o=val"},
	}
	for _, args := range forms {
		p := New("prog", "")
		p.AddArgument("-o", "--output").Nargs(1)
		res := parse(t, p, args...)
		if got := view(t, res, "-o").String(); got != "val" {
			t.Errorf("%q: output = %q, want val", args, got)
		}
	}
}

func TestRepeatedFlagCount(t *testing.T) {
	p := New("prog", "")
	p.AddArgument("-v").Action(ActionStoreTrue)

	res := parse(t, p, "-vvv", "-v")
	if got := view(t, res, "-v").Count(); got != 4 {
		t.Errorf("Count = %d, want 4", got)
	}
}

func TestClusterWithValue(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		output string
	}{
		{name: "rest of cluster is value", args: []string{"-vofile"}, output: "file"},
		{name: "value option first", args: []string{"-ov"}, output: "v"},
		{name: "value option last", args: []string{"-vo", "file"}, output: "file"},
		{name: "value option last inline", args: []string{"-vo=file"}, output: "file"},
		{name: "inline value keeps later equals", args: []string{"-vo=a=b"}, output: "a=b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New("prog", "")
			p.AddArgument("-v").Action(ActionStoreTrue)
			p.AddArgument("-o").Nargs(1)
			res := parse(t, p, tt.args...)
			if got := view(t, res, "-o").String(); got != tt.output {
				t.Errorf("output = %q, want %q", got, tt.output)
			}
		})
	}
}

func TestClusterErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want *ParseError
		flag string
	}{
		{name: "unknown in cluster", args: []string{"-vz"}, want: ErrUnknownOption, flag: "z"},
		{name: "unknown first", args: []string{"-zv"}, want: ErrUnknownOption, flag: "z"},
		{name: "value before inline value", args: []string{"-ov=1"}, want: ErrArityMismatch, flag: "o"},
		{name: "number with rest of cluster", args: []string{"-nx"}, want: ErrArityMismatch, flag: "n"},
		{name: "multi-byte unknown", args: []string{"-é"}, want: ErrUnknownOption, flag: "é"},
		{name: "multi-byte after flag", args: []string{"-vév"}, want: ErrUnknownOption, flag: "é"},
		{name: "multi-byte last", args: []string{"-v€"}, want: ErrUnknownOption, flag: "€"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New("prog", "")
			p.AddArgument("-v").Action(ActionStoreTrue)
			p.AddArgument("-o").Nargs(1)
			p.AddArgument("-n").Nargs(2)
			pe := parseErr(t, p, tt.want, tt.args...)
			if pe.Flag != tt.flag {
				t.Errorf("Flag = %q, want %q", pe.Flag, tt.flag)
			}
		})
	}
}

func TestArityErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		reason string
	}{
		{name: "simple at end", args: []string{"--output"}, reason: "bad number of argument"},
		{name: "simple before marker", args: []string{"--output", "--", "x"}, reason: "bad number of argument"},
		{name: "number short", args: []string{"--count", "1"}, reason: "bad number of argument"},
		{name: "number inline", args: []string{"--count=1"}, reason: "option cannot use with only 1 argument"},
		{name: "flag inline", args: []string{"--verbose=1"}, reason: "option cannot use with argument"},
		{name: "multi at end", args: []string{"--inc"}, reason: "bad number of argument"},
		{name: "partial group", args: []string{"--pt", "1", "2", "3"}, reason: "bad number of argument"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New("prog", "")
			p.AddArgument("--verbose").Action(ActionStoreTrue)
			p.AddArgument("--output").Nargs(1)
			p.AddArgument("--count").Nargs(2)
			p.AddArgument("--inc").Action(ActionAppend)
			p.AddArgument("--pt").Action(ActionExtend).Nargs(2)
			pe := parseErr(t, p, ErrArityMismatch, tt.args...)
			if pe.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", pe.Reason, tt.reason)
			}
		})
	}
}

func TestSimpleTakesOptionLikeValue(t *testing.T) {
	p := New("prog", "")
	p.AddArgument("--output").Nargs(1)
	p.AddArgument("-v").Action(ActionStoreTrue)

	res := parse(t, p, "--output", "-v")
	if got := view(t, res, "--output").String(); got != "-v" {
		t.Errorf("output = %q, want -v", got)
	}
	if view(t, res, "-v").Exists() {
		t.Error("-v was consumed as a value and must not exist")
	}
}

func TestMultiNumberGroups(t *testing.T) {
	p := New("prog", "")
	p.AddArgument("--pt").Action(ActionExtend).Nargs(2)

	res := parse(t, p, "--pt", "1", "2", "3", "4")
	want := [][]string{{"1", "2"}, {"3", "4"}}
	if diff := cmp.Diff(want, view(t, res, "--pt").Groups()); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}

	parseErr(t, p, ErrArityMismatch, "--pt", "1", "2", "3")
}

func TestAppendAcrossOccurrences(t *testing.T) {
	p := New("prog", "")
	p.AddArgument("--inc").Action(ActionAppend).Defaults("default")
	p.AddArgument("--pair").Action(ActionAppend).Nargs(2)

	res := parse(t, p, "--inc", "a", "--pair", "1", "2", "--inc=b", "--pair", "3", "4")
	inc := view(t, res, "--inc")
	if diff := cmp.Diff([]string{"a", "b"}, inc.Strings()); diff != "" {
		t.Errorf("inc mismatch (-want +got):\n%s", diff)
	}
	if inc.Count() != 2 {
		t.Errorf("inc Count = %d, want 2", inc.Count())
	}
	if diff := cmp.Diff([][]string{{"1", "2"}, {"3", "4"}}, view(t, res, "--pair").Groups()); diff != "" {
		t.Errorf("pair mismatch (-want +got):\n%s", diff)
	}

	res = parse(t, p)
	if diff := cmp.Diff([]string{"default"}, view(t, res, "--inc").Strings()); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestInfiniteLookahead(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		files      []string
		verbose    bool
		additional []string
	}{
		{name: "stops at declared short", args: []string{"--files", "a", "b", "-v", "c"}, files: []string{"a", "b"}, verbose: true, additional: []string{"c"}},
		{name: "stops at declared long", args: []string{"--files", "a", "--verbose"}, files: []string{"a"}, verbose: true},
		{name: "stops at declared cluster", args: []string{"--files", "a", "-vv"}, files: []string{"a"}, verbose: true},
		{name: "unknown short taken as value", args: []string{"--files", "a", "-x", "b"}, files: []string{"a", "-x", "b"}},
		{name: "unknown long taken as value", args: []string{"--files", "a", "--zzz"}, files: []string{"a", "--zzz"}},
		{name: "stops at marker", args: []string{"--files", "a", "--", "-v"}, files: []string{"a"}, additional: []string{"-v"}},
		{name: "inline resets", args: []string{"--files=a", "b"}, files: []string{"a"}, additional: []string{"b"}},
		{name: "empty run", args: []string{"--files", "-v"}, verbose: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New("prog", "")
			p.AddArgument("--files").Action(ActionInfinite)
			p.AddArgument("-v", "--verbose").Action(ActionStoreTrue)
			res := parse(t, p, tt.args...)

			if diff := cmp.Diff(tt.files, view(t, res, "--files").Strings()); diff != "" {
				t.Errorf("files mismatch (-want +got):\n%s", diff)
			}
			if got := view(t, res, "-v").Exists(); got != tt.verbose {
				t.Errorf("verbose = %v, want %v", got, tt.verbose)
			}
			if diff := cmp.Diff(tt.additional, res.AdditionalArguments()); diff != "" {
				t.Errorf("additional mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAlternativeMode(t *testing.T) {
	p := New("prog", "")
	p.AddArgument("--verbose").Action(ActionStoreTrue)
	p.AddArgument("--files").Action(ActionInfinite)

	pe := parseErr(t, p, ErrUnknownOption, "-verbose")
	if pe.Flag != "v" {
		t.Errorf("Flag = %q, want v", pe.Flag)
	}

	res, err := p.ParseArguments([]string{"prog", "-files", "a", "-verbose"}, true, false)
	if err != nil {
		t.Fatalf("ParseArguments failed: %v", err)
	}
	if !view(t, res, "--verbose").Exists() {
		t.Error("-verbose should match --verbose in alternative mode")
	}
	if diff := cmp.Diff([]string{"a"}, view(t, res, "--files").Strings()); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestPositionals(t *testing.T) {
	p := New("prog", "")
	p.AddArgument("-v").Action(ActionStoreTrue)
	p.AddArgument("src")
	p.AddArgument("pair").Nargs(2)
	p.AddArgument("rest").Action(ActionInfinite)

	res := parse(t, p, "s", "x", "y", "r1", "r2", "-v", "late")
	if got := view(t, res, "src").String(); got != "s" {
		t.Errorf("src = %q", got)
	}
	if diff := cmp.Diff([]string{"x", "y"}, view(t, res, "pair").Strings()); diff != "" {
		t.Errorf("pair mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"r1", "r2"}, view(t, res, "rest").Strings()); diff != "" {
		t.Errorf("rest mismatch (-want +got):\n%s", diff)
	}
	if !view(t, res, "-v").Exists() {
		t.Error("-v should end the infinite positional")
	}
	if diff := cmp.Diff([]string{"late"}, res.AdditionalArguments()); diff != "" {
		t.Errorf("additional mismatch (-want +got):\n%s", diff)
	}

	parseErr(t, p, ErrArityMismatch, "s", "x")
}

func TestPositionalGroupsAfterMarker(t *testing.T) {
	p := New("prog", "")
	p.AddArgument("-v").Action(ActionStoreTrue)
	p.AddArgument("pts").Action(ActionExtend).Nargs(2)

	res := parse(t, p, "--", "1", "-v", "3", "4")
	want := [][]string{{"1", "-v"}, {"3", "4"}}
	if diff := cmp.Diff(want, view(t, res, "pts").Groups()); diff != "" {
		t.Errorf("pts mismatch (-want +got):\n%s", diff)
	}
	if view(t, res, "-v").Exists() {
		t.Error("-v after the marker is a value")
	}

	parseErr(t, p, ErrArityMismatch, "--", "1", "2", "3")
}

func TestAdditionalArguments(t *testing.T) {
	p := New("prog", "")
	p.AddArgument("first")

	res := parse(t, p, "a", "b", "c")
	if diff := cmp.Diff([]string{"b", "c"}, res.AdditionalArguments()); diff != "" {
		t.Errorf("additional mismatch (-want +got):\n%s", diff)
	}

	p.Strict(true)
	pe := parseErr(t, p, ErrAdditionalArgument, "a", "b", "c")
	if pe.Flag != "b" {
		t.Errorf("Flag = %q, want b", pe.Flag)
	}
}

func TestRequiredMissing(t *testing.T) {
	p := New("prog", "")
	p.AddArgument("-v").Action(ActionStoreTrue)
	p.AddArgument("--name").Nargs(1).Required(true)
	p.AddArgument("file").Required(true)

	pe := parseErr(t, p, ErrMissingRequired, "-v", "f")
	if pe.Error() != "option is required -- '--name'" {
		t.Errorf("Error() = %q", pe.Error())
	}

	pe = parseErr(t, p, ErrMissingRequired, "--name", "x")
	if pe.Reason != "argument is required" || pe.Flag != "file" {
		t.Errorf("got %q/%q, want argument is required/file", pe.Reason, pe.Flag)
	}
}

func TestHelpAndVersionShortCircuit(t *testing.T) {
	p := New("prog", "").Version("prog 1.0")
	p.AddArgument("file").Required(true)

	res := parse(t, p, "-h")
	if !res.HelpRequested() {
		t.Error("HelpRequested should be true")
	}

	res = parse(t, p, "--version")
	if !res.VersionRequested() {
		t.Error("VersionRequested should be true")
	}
	if got := p.VersionText(); got != "prog 1.0\n" {
		t.Errorf("VersionText = %q", got)
	}

	p.HelpException(true)
	res, err := p.Parse([]string{"prog", "--help"})
	if !errors.Is(err, ErrHelpShown) || res == nil {
		t.Errorf("Parse(--help) = %v, %v; want result and ErrHelpShown", res, err)
	}
	_, err = p.Parse([]string{"prog", "--version"})
	if !errors.Is(err, ErrVersionShown) {
		t.Errorf("Parse(--version) error = %v, want ErrVersionShown", err)
	}
}

func TestParseResetsState(t *testing.T) {
	p := New("prog", "")
	p.AddArgument("-v").Action(ActionStoreTrue)
	p.AddArgument("--level").Defaults("3")

	first := parse(t, p, "-v", "--level", "5", "extra")
	second := parse(t, p)

	if view(t, second, "-v").Exists() {
		t.Error("-v leaked into the second parse")
	}
	if got := view(t, second, "--level").String(); got != "3" {
		t.Errorf("level = %q, want default 3", got)
	}
	if len(second.AdditionalArguments()) != 0 {
		t.Errorf("additional leaked: %q", second.AdditionalArguments())
	}
	if got := view(t, first, "--level").String(); got != "5" {
		t.Errorf("first result changed: level = %q", got)
	}
}

func TestDeclarationErrorFailsParse(t *testing.T) {
	p := New("prog", "")
	p.AddArgument("-v")
	p.AddArgument("-v")

	parseErr(t, p, ErrDeclaration, "-v")
	if p.State() != StateError {
		t.Errorf("State = %s, want error", p.State())
	}
	// still pending until read
	parseErr(t, p, ErrDeclaration, "-v")

	if err := p.Err(); !errors.Is(err, ErrDeclaration) {
		t.Fatalf("Err() = %v, want declaration error", err)
	}
	if err := p.Err(); err != nil {
		t.Errorf("second Err() = %v, want nil", err)
	}
	res := parse(t, p, "-v")
	if !view(t, res, "-v").Exists() {
		t.Error("-v not parsed after the error was read")
	}
}

func TestEmptyArgv(t *testing.T) {
	p := New("prog", "")
	res, err := p.Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) failed: %v", err)
	}
	if res.BinaryName() != "" || p.State() != StateComplete {
		t.Errorf("BinaryName = %q, State = %s", res.BinaryName(), p.State())
	}
}

func TestParseString(t *testing.T) {
	p := New("prog", "")
	p.AddArgument("--msg").Nargs(1)

	res, err := p.ParseString(`/usr/bin/prog --msg "hello world"`)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	if got := view(t, res, "--msg").String(); got != "hello world" {
		t.Errorf("msg = %q", got)
	}
	if res.BinaryName() != "/usr/bin/prog" {
		t.Errorf("BinaryName = %q", res.BinaryName())
	}
}
