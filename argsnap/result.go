package argsnap

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Result is a read-only snapshot of a parse. Later parses do not change it.
type Result struct {
	binaryName string
	byName     *orderedmap.OrderedMap[string, *ArgumentView]
	views      []*ArgumentView
	additional []string
	help       bool
	version    bool
}

func newResult(p *Parser) *Result {
	r := &Result{
		binaryName: p.binaryName,
		byName:     orderedmap.New[string, *ArgumentView](),
		additional: append([]string(nil), p.additional...),
	}
	p.reg.each(func(d *declaration) bool {
		v := newArgumentView(d)
		r.views = append(r.views, v)
		for _, n := range d.names {
			r.byName.Set(n, v)
		}
		return true
	})
	return r
}

// BinaryName returns argv[0] as passed to Parse.
func (r *Result) BinaryName() string { return r.binaryName }

// HelpRequested reports whether a help option was given.
func (r *Result) HelpRequested() bool { return r.help }

// VersionRequested reports whether a version option was given.
func (r *Result) VersionRequested() bool { return r.version }

// AdditionalArguments returns the tokens no positional took, in order.
func (r *Result) AdditionalArguments() []string {
	return append([]string(nil), r.additional...)
}

// ArgumentExists reports whether nameOrFlag was declared.
func (r *Result) ArgumentExists(nameOrFlag string) bool {
	_, ok := r.byName.Get(nameOrFlag)
	return ok
}

// Lookup returns the view for nameOrFlag.
func (r *Result) Lookup(nameOrFlag string) (*ArgumentView, bool) {
	return r.byName.Get(nameOrFlag)
}

// GetArgument returns the view for nameOrFlag, or a not-found error.
func (r *Result) GetArgument(nameOrFlag string) (*ArgumentView, error) {
	v, ok := r.byName.Get(nameOrFlag)
	if !ok {
		return nil, NewParseError(ErrorTypeNotFound, nameOrFlag, "argument not found")
	}
	return v, nil
}

// Arguments returns every view in declaration order.
func (r *Result) Arguments() []*ArgumentView {
	return append([]*ArgumentView(nil), r.views...)
}

// ArgumentView is the read-only state of one argument.
type ArgumentView struct {
	names    []string
	class    ArityClass
	action   Action
	nargs    int
	required bool
	help     string
	metavar  string
	defaults []string

	exists bool
	count  int
	values []Element
}

func newArgumentView(d *declaration) *ArgumentView {
	return &ArgumentView{
		names:    append([]string(nil), d.names...),
		class:    d.class,
		action:   d.action,
		nargs:    d.width,
		required: d.required,
		help:     d.help,
		metavar:  d.displayMetavar(),
		defaults: append([]string(nil), d.defaults...),
		exists:   d.exists,
		count:    d.count,
		values:   cloneElements(d.values),
	}
}

// Name returns the primary name or flag.
func (v *ArgumentView) Name() string { return v.names[0] }

// Names returns every name and flag, short flags first.
func (v *ArgumentView) Names() []string { return append([]string(nil), v.names...) }

// Class returns the arity class.
func (v *ArgumentView) Class() ArityClass { return v.class }

// Action returns the configured action.
func (v *ArgumentView) Action() Action { return v.action }

// Nargs returns the number of values per occurrence or group.
func (v *ArgumentView) Nargs() int { return v.nargs }

// IsPositional reports whether the argument is positional.
func (v *ArgumentView) IsPositional() bool { return v.class.IsPositional() }

// IsRequired reports whether the argument is mandatory.
func (v *ArgumentView) IsRequired() bool { return v.required }

// Help returns the help text.
func (v *ArgumentView) Help() string { return v.help }

// Metavar returns the value placeholder used in usage text.
func (v *ArgumentView) Metavar() string { return v.metavar }

// Defaults returns the default values.
func (v *ArgumentView) Defaults() []string { return append([]string(nil), v.defaults...) }

// Exists reports whether the argument appeared on the command line.
func (v *ArgumentView) Exists() bool { return v.exists }

// Count returns how many times the argument appeared.
func (v *ArgumentView) Count() int { return v.count }

// Bool returns the flag state: presence, inverted for store-false flags.
func (v *ArgumentView) Bool() bool { return boolOf(v.class, v.exists) }

// String renders the value: "true"/"false" for flags, the token for
// scalars, "a, b" for lists and "(a, b), (c, d)" for groups.
func (v *ArgumentView) String() string { return renderString(v.class, v.exists, v.values) }

// Strings returns every value token flattened in order.
func (v *ArgumentView) Strings() []string { return flatten(nil, v.values) }

// Groups returns the values as groups. Ungrouped values are one-member
// groups.
func (v *ArgumentView) Groups() [][]string { return groupStrings(v.values) }

// Len returns the number of stored elements.
func (v *ArgumentView) Len() int { return len(v.values) }

// At returns the i-th element. It panics if i is out of range.
func (v *ArgumentView) At(i int) Element { return v.values[i] }

// IsNumber reports whether the first value is numeric.
func (v *ArgumentView) IsNumber() bool {
	return len(v.values) > 0 && v.values[0].IsNumber()
}

// Number returns the first value as a number.
func (v *ArgumentView) Number() (float64, bool) {
	if len(v.values) == 0 {
		return 0, false
	}
	return v.values[0].Number()
}

func boolOf(class ArityClass, exists bool) bool {
	if class == ClassReverseFlag {
		return !exists
	}
	return exists
}

func renderString(class ArityClass, exists bool, values []Element) string {
	if class.ZeroArity() {
		if boolOf(class, exists) {
			return "true"
		}
		return "false"
	}
	parts := make([]string, len(values))
	for i, e := range values {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func groupStrings(values []Element) [][]string {
	out := make([][]string, len(values))
	for i, e := range values {
		out[i] = e.Strings()
	}
	return out
}
