package argsnap

import (
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dzonerzy/go-argsnap/internal/intern"
)

type declID uint64

// registry owns every declaration. Handles refer to declarations by id, so
// removing a declaration invalidates its handles instead of leaving them
// dangling.
type registry struct {
	decls  *orderedmap.OrderedMap[declID, *declaration]
	names  *orderedmap.OrderedMap[string, declID]
	nextID declID

	// display is the options-first view used by usage text; nil when a
	// mutation made it stale.
	display []*declaration
}

func newRegistry() *registry {
	return &registry{
		decls: orderedmap.New[declID, *declaration](),
		names: orderedmap.New[string, declID](),
	}
}

func (r *registry) insert(d *declaration) error {
	for _, n := range d.names {
		if _, taken := r.names.Get(n); taken {
			return NewParseError(ErrorTypeDeclaration, n, "name or flag already exists")
		}
	}
	r.nextID++
	d.id = r.nextID
	r.decls.Set(d.id, d)
	for i, n := range d.names {
		n = intern.Intern(n)
		d.names[i] = n
		r.names.Set(n, d.id)
	}
	r.display = nil
	return nil
}

// alias indexes an extra flag for an existing declaration.
func (r *registry) alias(d *declaration, flag string) error {
	if _, taken := r.names.Get(flag); taken {
		return NewParseError(ErrorTypeDeclaration, flag, "name or flag already exists")
	}
	flag = intern.Intern(flag)
	d.names = append(d.names, flag)
	sortFlags(d.names)
	r.names.Set(flag, d.id)
	r.display = nil
	return nil
}

func (r *registry) get(id declID) (*declaration, bool) {
	return r.decls.Get(id)
}

func (r *registry) lookup(name string) (*declaration, bool) {
	id, ok := r.names.Get(name)
	if !ok {
		return nil, false
	}
	return r.decls.Get(id)
}

func (r *registry) lookupShort(c byte) (*declaration, bool) {
	return r.lookup(intern.ShortFlag(c))
}

func (r *registry) remove(name string) bool {
	d, ok := r.lookup(name)
	if !ok {
		return false
	}
	for _, n := range d.names {
		r.names.Delete(n)
	}
	r.decls.Delete(d.id)
	r.display = nil
	return true
}

func (r *registry) clear() {
	r.decls = orderedmap.New[declID, *declaration]()
	r.names = orderedmap.New[string, declID]()
	r.display = nil
}

func (r *registry) len() int { return r.decls.Len() }

// each visits declarations in insertion order.
func (r *registry) each(fn func(*declaration) bool) {
	for pair := r.decls.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Value) {
			return
		}
	}
}

func (r *registry) positionals() []*declaration {
	var out []*declaration
	r.each(func(d *declaration) bool {
		if d.positional {
			out = append(out, d)
		}
		return true
	})
	return out
}

// flagNames returns every option flag in index order.
func (r *registry) flagNames() []string {
	out := make([]string, 0, r.names.Len())
	for pair := r.names.Oldest(); pair != nil; pair = pair.Next() {
		if len(pair.Key) > 0 && pair.Key[0] == '-' {
			out = append(out, pair.Key)
		}
	}
	return out
}

// ordered returns the display view: options before positionals, otherwise
// insertion order. It is computed once per set of mutations.
func (r *registry) ordered() []*declaration {
	if r.display != nil {
		return r.display
	}
	view := make([]*declaration, 0, r.decls.Len())
	r.each(func(d *declaration) bool {
		view = append(view, d)
		return true
	})
	slices.SortStableFunc(view, func(a, b *declaration) int {
		switch {
		case !a.positional && b.positional:
			return -1
		case a.positional && !b.positional:
			return 1
		default:
			return 0
		}
	})
	r.display = view
	return view
}

// sortFlags puts single-character flags first, keeping the declared order
// within each group.
func sortFlags(flags []string) {
	slices.SortStableFunc(flags, func(a, b string) int {
		sa, sb := IsShortOption(a), IsShortOption(b)
		switch {
		case sa && !sb:
			return -1
		case !sa && sb:
			return 1
		default:
			return 0
		}
	})
}
