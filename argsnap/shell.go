package argsnap

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/shlex"
)

var osExit = os.Exit

// ParseString splits cmdline with shell quoting rules and parses the words.
// The first word is the binary name.
func (p *Parser) ParseString(cmdline string) (*Result, error) {
	argv, err := shlex.Split(cmdline)
	if err != nil {
		return nil, NewParseError(ErrorTypeInternal, "", "cannot split command line").WithCause(err)
	}
	return p.Parse(argv)
}

// ParseOrExit parses argv and handles the outcomes a CLI handles the same
// way every time: usage or version is printed and the process exits 0, and
// errors are printed to stderr before exiting with the mapped code. It
// returns nil on error when the exit function returns.
func (p *Parser) ParseOrExit(argv []string) *Result {
	res, err := p.Parse(argv)
	switch {
	case errors.Is(err, ErrHelpShown) || err == nil && res.HelpRequested():
		p.PrintUsage()
		p.exit(p.exitCodes.Resolve(nil))
	case errors.Is(err, ErrVersionShown) || err == nil && res.VersionRequested():
		fmt.Fprint(p.io.Out(), p.VersionText())
		p.exit(p.exitCodes.Resolve(nil))
	case err != nil:
		msg := p.errHandler.Format(err, p)
		fmt.Fprintln(p.io.Err(), p.io.Paint(p.theme.Error, msg))
		if p.errHandler.showUsageOnError {
			fmt.Fprint(p.io.Err(), p.renderUsage(p.header))
		}
		p.exit(p.exitCodes.Resolve(err))
	}
	return res
}

// RunAndExit is ParseOrExit(os.Args).
func (p *Parser) RunAndExit() *Result {
	return p.ParseOrExit(os.Args)
}

// PrintUsage writes the usage text to the IOManager output, with colored
// section headers when supported.
func (p *Parser) PrintUsage() {
	fmt.Fprint(p.io.Out(), p.renderUsage(p.header))
}

func (p *Parser) header(s string) string {
	return p.io.Paint(p.theme.Header, s)
}
