package argsnap

import (
	"errors"
	"slices"
	"unicode/utf8"

	"github.com/ef-ds/deque"

	snapio "github.com/dzonerzy/go-argsnap/io"
)

// ParseState represents the current state of the parser state machine
type ParseState int

const (
	StateInit ParseState = iota
	StateOptions
	StateEndOfOptions
	StateComplete
	StateError
)

func (s ParseState) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateOptions:
		return "options"
	case StateEndOfOptions:
		return "end-of-options"
	case StateComplete:
		return "complete"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Parser declares arguments and parses argument vectors against them.
//
// A Parser is not safe for concurrent use. Parse from several goroutines by
// giving each its own Parser.
type Parser struct {
	name        string
	description string
	epilog      string
	usage       string
	widths      usageWidths
	fitTerminal bool

	alternative   bool
	strict        bool
	helpException bool

	reg       *registry
	helpID    declID
	versionID declID
	declErrs  []error

	// parse state
	state      ParseState
	binaryName string
	args       []string
	position   int
	end        int
	pending    *deque.Deque
	additional []string

	io         *snapio.IOManager
	theme      snapio.Theme
	logger     *snapio.Logger
	exitCodes  *ExitCodeManager
	errHandler *ErrorHandler
	exit       func(int)
}

// New creates a parser with the automatic -h/--help option.
func New(name, description string) *Parser {
	p := &Parser{
		name:        name,
		description: description,
		widths:      defaultUsageWidths(),
		reg:         newRegistry(),
		io:          snapio.New(),
		theme:       snapio.DefaultTheme(),
		exitCodes:   newExitCodeManager(),
		errHandler:  NewErrorHandler(),
		exit:        osExit,
	}
	help := p.AddArgument("-h", "--help").Action(ActionHelp).Help("show this help message and exit")
	p.helpID = help.id
	return p
}

// DisableHelp removes the automatic help option.
func (p *Parser) DisableHelp() *Parser {
	if d, ok := p.reg.get(p.helpID); ok {
		p.reg.remove(d.primary())
	}
	p.helpID = 0
	return p
}

// Version adds a --version option printing text. Calling it again replaces
// the text.
func (p *Parser) Version(text string) *Parser {
	if _, ok := p.reg.get(p.versionID); ok {
		(&Argument{p: p, id: p.versionID}).Defaults(text)
		return p
	}
	v := p.AddArgument("--version").Action(ActionVersion).Defaults(text).Help("show version information and exit")
	p.versionID = v.id
	return p
}

// Alternative lets long flags be written with a single dash (-verbose).
func (p *Parser) Alternative(enabled bool) *Parser {
	p.alternative = enabled
	return p
}

// Strict rejects tokens left over once every positional is filled.
func (p *Parser) Strict(enabled bool) *Parser {
	p.strict = enabled
	return p
}

// HelpException makes Parse return ErrHelpShown or ErrVersionShown when
// help or version was requested.
func (p *Parser) HelpException(enabled bool) *Parser {
	p.helpException = enabled
	return p
}

// Description sets the text printed below the usage line.
func (p *Parser) Description(text string) *Parser {
	p.description = text
	return p
}

// Epilog sets the text printed after the argument sections.
func (p *Parser) Epilog(text string) *Parser {
	p.epilog = text
	return p
}

// CustomUsage replaces the generated usage text.
func (p *Parser) CustomUsage(text string) *Parser {
	p.usage = text
	return p
}

// IO sets the IOManager used by the shell helpers.
func (p *Parser) IO(m *snapio.IOManager) *Parser {
	if m != nil {
		p.io = m
	}
	return p
}

// Theme sets the styles used for usage headers and printed errors.
func (p *Parser) Theme(t snapio.Theme) *Parser {
	p.theme = t
	return p
}

// Logger enables debug tracing of the parse.
func (p *Parser) Logger(l *snapio.Logger) *Parser {
	p.logger = l
	return p
}

// ExitFunc replaces os.Exit in ParseOrExit.
func (p *Parser) ExitFunc(fn func(int)) *Parser {
	if fn != nil {
		p.exit = fn
	}
	return p
}

// ExitCodes returns the exit code manager for configuration.
func (p *Parser) ExitCodes() *ExitCodeManager { return p.exitCodes }

// ErrorHandler returns the error handler for configuration.
func (p *Parser) ErrorHandler() *ErrorHandler { return p.errHandler }

// State returns the state reached by the last parse.
func (p *Parser) State() ParseState { return p.state }

// Err returns the first declaration error recorded since the last call to Err
// or Clear, and forgets every pending one. Until then Parse fails with that
// error.
func (p *Parser) Err() error {
	if len(p.declErrs) == 0 {
		return nil
	}
	err := p.declErrs[0]
	p.declErrs = nil
	return err
}

func (p *Parser) record(err error) {
	p.declErrs = append(p.declErrs, err)
	p.logger.Debug("declaration error: %v", err)
}

// forget drops pending declaration errors raised for any of names.
func (p *Parser) forget(names ...string) {
	p.declErrs = slices.DeleteFunc(p.declErrs, func(err error) bool {
		var pe *ParseError
		return errors.As(err, &pe) && slices.Contains(names, pe.Flag)
	})
}

// AddArgument declares a positional argument (a single bare name) or an
// option (one or more flags).
func (p *Parser) AddArgument(namesOrFlags ...string) *Argument {
	d, err := newDeclaration(namesOrFlags)
	if err == nil {
		err = p.reg.insert(d)
	}
	if err != nil {
		p.record(err)
		return &Argument{p: p}
	}
	return &Argument{p: p, id: d.id}
}

// UpdateArgument returns a handle to an existing declaration.
func (p *Parser) UpdateArgument(nameOrFlag string) *Argument {
	d, ok := p.reg.lookup(nameOrFlag)
	if !ok {
		p.record(NewParseError(ErrorTypeNotFound, nameOrFlag, "argument not found"))
		return &Argument{p: p}
	}
	return &Argument{p: p, id: d.id}
}

// RemoveArguments removes the declarations owning each name or flag. Handles
// to them become stale, and pending declaration errors raised for any of
// their names are dropped.
func (p *Parser) RemoveArguments(namesOrFlags ...string) error {
	for _, n := range namesOrFlags {
		d, ok := p.reg.lookup(n)
		if !ok {
			return NewParseError(ErrorTypeNotFound, n, "argument not found")
		}
		p.reg.remove(n)
		p.forget(d.names...)
	}
	return nil
}

// Clear removes every declaration, including help and version, and drops
// pending declaration errors.
func (p *Parser) Clear() *Parser {
	p.reg.clear()
	p.declErrs = nil
	p.helpID, p.versionID = 0, 0
	p.additional = nil
	return p
}

// ArgumentExists reports whether nameOrFlag is declared.
func (p *Parser) ArgumentExists(nameOrFlag string) bool {
	_, ok := p.reg.lookup(nameOrFlag)
	return ok
}

// Declarations returns views of the declarations in display order.
func (p *Parser) Declarations() []*ArgumentView {
	ordered := p.reg.ordered()
	out := make([]*ArgumentView, len(ordered))
	for i, d := range ordered {
		out[i] = newArgumentView(d)
	}
	return out
}

func (p *Parser) flagNames() []string { return p.reg.flagNames() }

// ParseArguments sets the alternative and strict modes, then parses argv.
func (p *Parser) ParseArguments(argv []string, alternative, strict bool) (*Result, error) {
	p.alternative, p.strict = alternative, strict
	return p.Parse(argv)
}

// Parse walks argv and fills the declared arguments. argv[0] is the binary
// name. Help and version requests are not errors: check
// Result.HelpRequested and Result.VersionRequested.
func (p *Parser) Parse(argv []string) (*Result, error) {
	if len(p.declErrs) > 0 {
		p.state = StateError
		return nil, p.declErrs[0]
	}
	p.begin(argv)
	if err := p.walk(); err != nil {
		return nil, p.fail(err)
	}
	return p.finish()
}

func (p *Parser) fail(err error) error {
	p.state = StateError
	p.logger.Debug("parse failed: %v", err)
	return err
}

func (p *Parser) begin(argv []string) {
	p.state = StateInit
	p.binaryName = ""
	if len(argv) > 0 {
		p.binaryName = argv[0]
	}
	p.args = argv
	p.end = endOfOptionsIndex(argv)
	p.additional = nil
	p.pending = deque.New()
	p.reg.each(func(d *declaration) bool {
		d.reset()
		if d.positional {
			p.pending.PushBack(d)
		}
		return true
	})
	p.logger.Debug("parsing %d token(s), end of options at %d", len(argv), p.end)
}

func (p *Parser) walk() error {
	p.state = StateOptions
	for p.position = 1; p.position < len(p.args); p.position++ {
		tok := Classify(p.args[p.position])
		var err error
		switch tok.Kind {
		case TokenShort:
			p.logger.Debug("token %d %q: short option", p.position, tok.Raw)
			err = p.parseShortOption(tok)
		case TokenLong:
			p.logger.Debug("token %d %q: long option", p.position, tok.Raw)
			err = p.parseLongOption(tok)
		case TokenEndOfOptions:
			p.logger.Debug("token %d: end of options", p.position)
			p.state = StateEndOfOptions
			for p.position++; p.position < len(p.args); p.position++ {
				if err := p.parsePositional(len(p.args), true); err != nil {
					return err
				}
			}
			return nil
		default:
			p.logger.Debug("token %d %q: value", p.position, tok.Raw)
			err = p.parsePositional(p.end, false)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) parseShortOption(tok Token) error {
	inline, hasInline := tok.Inline, tok.HasInline
	cluster := tok.Cluster()
	if p.alternative {
		if d, ok := p.reg.lookup("-" + tok.Name); ok {
			return p.consume(d, cluster, inline, hasInline)
		}
	}

	if cluster == "" {
		return NewParseError(ErrorTypeUnknownOption, tok.Raw, "invalid option")
	}
	for i := 0; i < len(cluster)-1; i++ {
		d, ok := p.reg.lookupShort(cluster[i])
		switch {
		case !ok:
			return NewParseError(ErrorTypeUnknownOption, clusterChar(cluster, i), "invalid option")
		case d.class.ZeroArity():
			d.exists = true
			d.count++
		case !hasInline:
			// the rest of the cluster is this option's value
			return p.consume(d, cluster[i:i+1], cluster[i+1:], true)
		default:
			return NewParseError(ErrorTypeArityMismatch, cluster[i:i+1], "only last option can take an argument")
		}
	}

	last := len(cluster) - 1
	d, ok := p.reg.lookupShort(cluster[last])
	if !ok {
		return NewParseError(ErrorTypeUnknownOption, clusterChar(cluster, last), "invalid option")
	}
	return p.consume(d, cluster[last:], inline, hasInline)
}

// clusterChar returns the character of cluster starting at byte i, decoding
// multi-byte runes so errors never show half a character.
func clusterChar(cluster string, i int) string {
	_, size := utf8.DecodeRuneInString(cluster[i:])
	return cluster[i : i+size]
}

func (p *Parser) parseLongOption(tok Token) error {
	name, inline, hasInline := tok.Name, tok.Inline, tok.HasInline
	d, ok := p.reg.lookup(name)
	if !ok {
		return NewParseError(ErrorTypeUnknownOption, name[2:], "invalid option")
	}
	return p.consume(d, name[2:], inline, hasInline)
}

// consume fills d from the inline value or from the tokens following the
// cursor, advancing the cursor past what it takes.
func (p *Parser) consume(d *declaration, flag, inline string, hasInline bool) error {
	start := p.position
	if hasInline {
		switch d.class {
		case ClassSimple, ClassInfinite:
			d.values = []Element{scalar(inline)}
		case ClassMulti, ClassMultiInfinite:
			if !d.exists {
				d.values = nil
			}
			d.values = append(d.values, scalar(inline))
		case ClassNumber, ClassMultiNumber, ClassMultiNumberInfinite:
			return NewParseError(ErrorTypeArityMismatch, flag, "option cannot use with only 1 argument")
		default:
			return NewParseError(ErrorTypeArityMismatch, flag, "option cannot use with argument")
		}
	} else {
		switch d.class {
		case ClassSimple:
			if p.position+1 >= p.end {
				return NewParseError(ErrorTypeArityMismatch, flag, "bad number of argument")
			}
			p.position++
			d.values = []Element{scalar(p.args[p.position])}
		case ClassNumber:
			if p.position+d.width >= p.end {
				return NewParseError(ErrorTypeArityMismatch, flag, "bad number of argument")
			}
			d.values = scalars(p.args[p.position+1 : p.position+1+d.width])
			p.position += d.width
		case ClassInfinite:
			d.values = scalars(p.takeUntilOption())
		case ClassMulti:
			if !d.exists {
				d.values = nil
			}
			if p.position+1 >= p.end {
				return NewParseError(ErrorTypeArityMismatch, flag, "bad number of argument")
			}
			p.position++
			d.values = append(d.values, scalar(p.args[p.position]))
		case ClassMultiInfinite:
			if !d.exists {
				d.values = nil
			}
			d.values = append(d.values, scalars(p.takeUntilOption())...)
		case ClassMultiNumber:
			if !d.exists {
				d.values = nil
			}
			if p.position+d.width >= p.end {
				return NewParseError(ErrorTypeArityMismatch, flag, "bad number of argument")
			}
			d.values = append(d.values, groupOf(p.args[p.position+1:p.position+1+d.width]))
			p.position += d.width
		case ClassMultiNumberInfinite:
			if !d.exists {
				d.values = nil
			}
			i := p.position + 1
			for i < p.end && !p.startsOption(p.args[i]) {
				if i+d.width > p.end {
					return NewParseError(ErrorTypeArityMismatch, flag, "bad number of argument")
				}
				d.values = append(d.values, groupOf(p.args[i:i+d.width]))
				i += d.width
			}
			p.position = i - 1
		}
	}
	d.exists = true
	d.count++
	p.logger.Debug("%s: %s took %d token(s)", d.primary(), d.class, p.position-start)
	return nil
}

// takeUntilOption returns the tokens after the cursor up to the end of
// options or the first token that starts a new option, and moves the cursor
// onto the last one taken.
func (p *Parser) takeUntilOption() []string {
	i := p.position + 1
	for i < p.end && !p.startsOption(p.args[i]) {
		i++
	}
	taken := p.args[p.position+1 : i]
	p.position = i - 1
	return taken
}

// startsOption reports whether tok ends an infinite run of values. Only
// declared options do; unknown ones are taken as values.
func (p *Parser) startsOption(raw string) bool {
	tok := Classify(raw)
	switch tok.Kind {
	case TokenShort:
		if p.alternative {
			if _, ok := p.reg.lookup("-" + tok.Name); ok {
				return true
			}
		}
		cluster := tok.Cluster()
		if cluster == "" {
			return false
		}
		for i := 0; i < len(cluster)-1; i++ {
			d, ok := p.reg.lookupShort(cluster[i])
			if !ok {
				return false
			}
			if d.class.ZeroArity() || !tok.HasInline {
				return true
			}
		}
		_, ok := p.reg.lookupShort(cluster[len(cluster)-1])
		return ok
	case TokenLong:
		_, ok := p.reg.lookup(tok.Name)
		return ok
	default:
		return false
	}
}

// nextPositional returns the first positional not yet filled.
func (p *Parser) nextPositional() *declaration {
	for p.pending.Len() > 0 {
		v, _ := p.pending.Front()
		d := v.(*declaration)
		if !d.exists {
			return d
		}
		p.pending.PopFront()
	}
	return nil
}

// parsePositional hands the token at the cursor, and as many following
// tokens as its class needs below limit, to the next unfilled positional.
func (p *Parser) parsePositional(limit int, afterEnd bool) error {
	tok := p.args[p.position]
	d := p.nextPositional()
	if d == nil {
		if p.strict {
			return NewParseError(ErrorTypeAdditionalArgument, tok, "invalid additional argument")
		}
		p.additional = append(p.additional, tok)
		return nil
	}

	switch d.class {
	case ClassPositional:
		d.values = []Element{scalar(tok)}
	case ClassPositionalNumber:
		if p.position+d.width > limit {
			return NewParseError(ErrorTypeArityMismatch, d.primary(), "bad number of argument")
		}
		d.values = scalars(p.args[p.position : p.position+d.width])
		p.position += d.width - 1
	case ClassPositionalInfinite:
		i := p.position + 1
		for i < limit && (afterEnd || !p.startsOption(p.args[i])) {
			i++
		}
		d.values = scalars(p.args[p.position:i])
		p.position = i - 1
	case ClassPositionalInfiniteNumber:
		d.values = nil
		i := p.position
		for i < limit {
			if i > p.position && !afterEnd && p.startsOption(p.args[i]) {
				break
			}
			if i+d.width > limit {
				return NewParseError(ErrorTypeArityMismatch, d.primary(), "bad number of argument")
			}
			d.values = append(d.values, groupOf(p.args[i:i+d.width]))
			i += d.width
		}
		p.position = i - 1
	}
	d.exists = true
	d.count++
	p.logger.Debug("%s: filled with %d value(s)", d.primary(), len(d.values))
	return nil
}

// finish runs the post-walk phases: help and version short-circuit,
// required check, validation, numeric coercion and dest binding.
func (p *Parser) finish() (*Result, error) {
	if p.requested(ClassHelp) {
		p.state = StateComplete
		res := newResult(p)
		res.help = true
		if p.helpException {
			return res, ErrHelpShown
		}
		return res, nil
	}
	if p.requested(ClassVersion) {
		p.state = StateComplete
		res := newResult(p)
		res.version = true
		if p.helpException {
			return res, ErrVersionShown
		}
		return res, nil
	}

	if err := p.checkRequired(); err != nil {
		return nil, p.fail(err)
	}
	p.logger.Debug("validating")
	if err := p.validate(); err != nil {
		return nil, p.fail(err)
	}
	p.coerce()
	if err := p.bind(); err != nil {
		return nil, p.fail(err)
	}
	p.state = StateComplete
	return newResult(p), nil
}

func (p *Parser) requested(class ArityClass) bool {
	found := false
	p.reg.each(func(d *declaration) bool {
		found = d.class == class && d.exists
		return !found
	})
	return found
}

func (p *Parser) checkRequired() error {
	var err error
	p.reg.each(func(d *declaration) bool {
		if !d.required || d.exists {
			return true
		}
		reason := "option is required"
		if d.positional {
			reason = "argument is required"
		}
		err = NewParseError(ErrorTypeMissingRequired, d.primary(), reason)
		return false
	})
	return err
}

func (p *Parser) coerce() {
	p.reg.each(func(d *declaration) bool {
		for i := range d.values {
			d.values[i].coerce()
		}
		return true
	})
}
