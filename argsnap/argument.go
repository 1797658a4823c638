package argsnap

import (
	"fmt"
	"strings"
)

// declaration is one declared argument together with its parse state.
type declaration struct {
	id         declID
	names      []string // names[0] is the primary name
	positional bool

	class  ArityClass
	width  int // group size for fixed-count classes
	nargs  int
	action Action

	required  bool
	help      string
	metavar   string
	defaults  []string
	validator Validator
	dest      binder

	values []Element
	exists bool
	count  int
}

func (d *declaration) primary() string { return d.names[0] }

// reclassify re-derives the arity class after a shape-affecting change.
func (d *declaration) reclassify() error {
	class, width, err := deriveClass(d.positional, d.nargs, d.action, len(d.defaults))
	if err != nil {
		return err
	}
	if err := checkDefaults(class, width, len(d.defaults)); err != nil {
		return err
	}
	d.class, d.width = class, width
	return nil
}

func checkDefaults(class ArityClass, width, n int) error {
	switch {
	case n == 0, class == ClassVersion:
		return nil
	case class.Scalar():
		if n > 1 {
			return errDefaultsCount
		}
	case class == ClassNumber, class == ClassPositionalNumber:
		if n != width {
			return errDefaultsCount
		}
	case class.Grouped():
		if n%width != 0 {
			return errDefaultsCount
		}
	case class.ZeroArity():
		return errDefaultsCount
	}
	return nil
}

// defaultValues materializes the defaults in the shape of the class.
func (d *declaration) defaultValues() []Element {
	if len(d.defaults) == 0 || d.class.ZeroArity() {
		return nil
	}
	if d.class.Grouped() {
		out := make([]Element, 0, len(d.defaults)/d.width)
		for i := 0; i+d.width <= len(d.defaults); i += d.width {
			out = append(out, groupOf(d.defaults[i:i+d.width]))
		}
		return out
	}
	return scalars(d.defaults)
}

func (d *declaration) reset() {
	d.values = d.defaultValues()
	d.exists = false
	d.count = 0
}

func (d *declaration) defaultMetavar() string {
	longest := d.names[0]
	for _, n := range d.names[1:] {
		if len(n) > len(longest) {
			longest = n
		}
	}
	name := strings.ToUpper(strings.ReplaceAll(strings.TrimLeft(longest, "-"), "-", "_"))
	repeat := func(n int) string {
		parts := make([]string, n)
		for i := range parts {
			parts[i] = name
		}
		return strings.Join(parts, " ")
	}
	switch d.class {
	case ClassNumber, ClassMultiNumber:
		return repeat(d.width)
	case ClassInfinite, ClassMultiInfinite:
		return "[" + name + "...]"
	case ClassMultiNumberInfinite:
		return "{" + repeat(d.width) + "}..."
	default:
		return name
	}
}

func (d *declaration) displayMetavar() string {
	if d.metavar != "" {
		return d.metavar
	}
	return d.defaultMetavar()
}

// validFlag reports whether f is "-x" or "--name" with an identifier-like
// name.
func validFlag(f string) bool {
	switch {
	case len(f) == 2 && f[0] == '-':
		c := f[1]
		return c > ' ' && c < 0x7f && c != '-' && c != '='
	case len(f) > 2 && f[0] == '-' && f[1] == '-':
		for i := 2; i < len(f); i++ {
			c := f[i]
			alnum := c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
			if !alnum && (i == 2 || (c != '-' && c != '_' && c != '.')) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// newDeclaration builds a declaration from the names passed to AddArgument.
func newDeclaration(namesOrFlags []string) (*declaration, error) {
	if len(namesOrFlags) == 0 {
		return nil, NewParseError(ErrorTypeDeclaration, "", "invalid empty flag")
	}
	if len(namesOrFlags) == 1 && !strings.HasPrefix(namesOrFlags[0], "-") {
		name := namesOrFlags[0]
		if name == "" || strings.ContainsAny(name, " \t=") {
			return nil, NewParseError(ErrorTypeDeclaration, name, "bad name argument")
		}
		d := &declaration{names: []string{name}, positional: true, nargs: 1}
		d.class, d.width = ClassPositional, 1
		return d, nil
	}

	flags := make([]string, 0, len(namesOrFlags))
	for _, f := range namesOrFlags {
		if !validFlag(f) {
			return nil, NewParseError(ErrorTypeDeclaration, f, "invalid flag format")
		}
		if !containsString(flags, f) {
			flags = append(flags, f)
		}
	}
	sortFlags(flags)
	return &declaration{names: flags, class: ClassFlag}, nil
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// Argument is a handle to a declaration owned by a Parser. Setters return the
// handle for chaining. Errors are recorded on the parser and reported by
// Parser.Err and Parser.Parse; a handle whose declaration was removed records
// a not-found error.
type Argument struct {
	p  *Parser
	id declID
}

// with runs fn against the live declaration and records any error it returns.
func (a *Argument) with(fn func(d *declaration) error) *Argument {
	if a == nil || a.p == nil || a.id == 0 {
		return a
	}
	d, ok := a.p.reg.get(a.id)
	if !ok {
		a.p.record(NewParseError(ErrorTypeNotFound, "", "argument not found"))
		return a
	}
	if err := fn(d); err != nil {
		a.p.record(declError(d, err))
	}
	return a
}

func declError(d *declaration, err error) error {
	if pe, ok := err.(*ParseError); ok {
		return pe
	}
	return NewParseError(ErrorTypeDeclaration, d.primary(), err.Error()).WithCause(err)
}

// Stale reports whether the handle no longer refers to a declaration.
func (a *Argument) Stale() bool {
	if a == nil || a.p == nil || a.id == 0 {
		return true
	}
	_, ok := a.p.reg.get(a.id)
	return !ok
}

// Help sets the help text shown in usage output.
func (a *Argument) Help(text string) *Argument {
	return a.with(func(d *declaration) error {
		d.help = text
		return nil
	})
}

// Required marks the argument as mandatory.
func (a *Argument) Required(required bool) *Argument {
	return a.with(func(d *declaration) error {
		d.required = required
		return nil
	})
}

// Metavar sets the value placeholder shown in usage output.
func (a *Argument) Metavar(text string) *Argument {
	return a.with(func(d *declaration) error {
		d.metavar = text
		return nil
	})
}

// Nargs sets the number of values taken per occurrence.
func (a *Argument) Nargs(n int) *Argument {
	return a.with(func(d *declaration) error {
		prev := d.nargs
		d.nargs = n
		if err := d.reclassify(); err != nil {
			d.nargs = prev
			return err
		}
		return nil
	})
}

// Defaults sets the values used when the argument is not supplied.
func (a *Argument) Defaults(values ...string) *Argument {
	return a.with(func(d *declaration) error {
		prev := d.defaults
		d.defaults = append([]string(nil), values...)
		if err := d.reclassify(); err != nil {
			d.defaults = prev
			return err
		}
		d.values = d.defaultValues()
		return nil
	})
}

// Action sets how the argument reacts to being matched.
func (a *Argument) Action(action Action) *Argument {
	return a.with(func(d *declaration) error {
		prev := d.action
		d.action = action
		if err := d.reclassify(); err != nil {
			d.action = prev
			return err
		}
		d.values = d.defaultValues()
		return nil
	})
}

// Valid attaches a validator run after parsing when the argument was
// supplied.
func (a *Argument) Valid(v Validator) *Argument {
	return a.with(func(d *declaration) error {
		d.validator = v
		return nil
	})
}

// Flag adds an alias flag.
func (a *Argument) Flag(flag string) *Argument {
	return a.with(func(d *declaration) error {
		if d.positional {
			return fmt.Errorf("positional argument cannot have flag %q", flag)
		}
		if !validFlag(flag) {
			return NewParseError(ErrorTypeDeclaration, flag, "invalid flag format")
		}
		if containsString(d.names, flag) {
			return nil
		}
		return a.p.reg.alias(d, flag)
	})
}
