package argsnap

import (
	"path/filepath"
	"strings"
)

type usageWidths struct {
	pad, args, sep, help int
}

func defaultUsageWidths() usageWidths {
	return usageWidths{pad: 2, args: 20, sep: 2, help: 56}
}

// UsageWidths sets the column widths of the usage text: left padding, the
// argument column, the gap after it and the help column.
func (p *Parser) UsageWidths(pad, args, sep, help int) *Parser {
	p.widths = usageWidths{pad: pad, args: args, sep: sep, help: help}
	return p
}

// FitUsageToTerminal sizes the help column to the IOManager width.
func (p *Parser) FitUsageToTerminal(enabled bool) *Parser {
	p.fitTerminal = enabled
	return p
}

func (p *Parser) effectiveWidths() usageWidths {
	w := p.widths
	if p.fitTerminal {
		if help := p.io.Width() - w.pad - w.args - w.sep; help >= 20 {
			w.help = help
		}
	}
	return w
}

func (p *Parser) baseName() string {
	name := p.binaryName
	if name == "" {
		name = p.name
	}
	if name == "" {
		return ""
	}
	return filepath.Base(name)
}

// Usage renders the usage text.
func (p *Parser) Usage() string {
	return p.renderUsage(func(s string) string { return s })
}

// VersionText renders the version text, or "" without a version option.
func (p *Parser) VersionText() string {
	var text string
	p.reg.each(func(d *declaration) bool {
		if d.class != ClassVersion {
			return true
		}
		text = strings.Join(d.defaults, ", ") + "\n"
		return false
	})
	return text
}

func (p *Parser) renderUsage(header func(string) string) string {
	if p.usage != "" {
		return p.usage
	}
	w := p.effectiveWidths()
	ordered := p.reg.ordered()

	var b strings.Builder
	usageLine := "usage: " + p.baseName()
	b.WriteString(header("usage:"))
	b.WriteString(usageLine[len("usage:"):])
	binaryPad := len(usageLine)
	index := binaryPad
	indexMax := w.pad + w.args + w.sep + w.help
	multiLine := false

	place := func(arg string) {
		if index+len(arg) >= indexMax {
			multiLine = true
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(" ", binaryPad+1))
			b.WriteString(arg)
			index = binaryPad + len(arg) + 1
			return
		}
		b.WriteByte(' ')
		b.WriteString(arg)
		index += len(arg) + 1
	}

	hasOption, hasPositional := false, false
	for _, d := range ordered {
		if d.positional {
			hasPositional = true
			continue
		}
		hasOption = true
		arg := d.primary()
		if !d.class.ZeroArity() {
			arg += " " + d.displayMetavar()
		}
		place(bracket(arg, d.required))
	}
	if hasOption && hasPositional {
		if multiLine || index+3 >= indexMax {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(" ", binaryPad+1))
			b.WriteString("--\n")
			b.WriteString(strings.Repeat(" ", binaryPad))
			index = binaryPad
		} else {
			b.WriteString(" --")
			index += 3
		}
	}
	for _, d := range ordered {
		if d.positional {
			place(bracket(positionalForm(d), d.required))
		}
	}
	b.WriteByte('\n')

	if p.description != "" {
		b.WriteByte('\n')
		for _, line := range multilineWrap(p.description, indexMax) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	var positionals, options [][2]string
	for _, d := range ordered {
		entry := [2]string{strings.Join(d.names, ", "), d.help}
		if !d.positional && !d.class.ZeroArity() {
			entry[0] += " " + d.displayMetavar()
		}
		switch {
		case d.required:
			entry[1] += " (required)"
		case len(d.defaults) > 0 && d.class != ClassVersion:
			entry[1] += " (default: " + strings.Join(d.defaults, ", ") + ")"
		}
		if d.positional {
			positionals = append(positionals, entry)
		} else {
			options = append(options, entry)
		}
	}
	writeSection := func(title string, entries [][2]string) {
		if len(entries) == 0 {
			return
		}
		b.WriteByte('\n')
		b.WriteString(header(title))
		b.WriteByte('\n')
		indent := strings.Repeat(" ", w.pad+w.args+w.sep)
		for _, e := range entries {
			b.WriteString(strings.Repeat(" ", w.pad))
			if len(e[0]) > w.args {
				b.WriteString(e[0])
				b.WriteByte('\n')
				b.WriteString(indent)
			} else {
				b.WriteString(e[0])
				b.WriteString(strings.Repeat(" ", w.args+w.sep-len(e[0])))
			}
			lines := multilineWrap(e[1], w.help)
			for i, line := range lines {
				b.WriteString(line)
				b.WriteByte('\n')
				if i+1 < len(lines) {
					b.WriteString(indent)
				}
			}
		}
	}
	writeSection("positional arguments:", positionals)
	writeSection("optional arguments:", options)

	if p.epilog != "" {
		b.WriteByte('\n')
		b.WriteString(p.epilog)
		b.WriteByte('\n')
	}
	return b.String()
}

func bracket(s string, required bool) string {
	if required {
		return s
	}
	return "[" + s + "]"
}

func positionalForm(d *declaration) string {
	name := d.primary()
	repeat := func() string {
		parts := make([]string, d.width)
		for i := range parts {
			parts[i] = name
		}
		return strings.Join(parts, " ")
	}
	switch d.class {
	case ClassPositionalNumber:
		return repeat()
	case ClassPositionalInfinite:
		return name + " {" + name + "}..."
	case ClassPositionalInfiniteNumber:
		return "{" + repeat() + "}..."
	default:
		return name
	}
}

// multilineWrap splits s into lines, then breaks lines of width or more
// characters at the last space within width. A line with no such space is
// kept whole.
func multilineWrap(s string, width int) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSuffix(s, "\n"), "\n") {
		for len(line) >= width {
			end := min(width+1, len(line))
			sp := strings.LastIndexByte(line[:end], ' ')
			if sp < 0 {
				break
			}
			lines = append(lines, line[:sp])
			for sp < len(line) && line[sp] == ' ' {
				sp++
			}
			line = line[sp:]
		}
		lines = append(lines, line)
	}
	return lines
}
