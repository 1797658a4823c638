package argsnap

import (
	"errors"
	"fmt"
	"strconv"
)

// binder writes a declaration's final values into a caller variable.
type binder func(d *declaration) error

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type float interface{ ~float32 | ~float64 }

func parseSigned[T signed](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		n, err := strconv.ParseInt(s, 0, bits)
		return T(n), err
	}
}

func parseUnsigned[T unsigned](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		n, err := strconv.ParseUint(s, 0, bits)
		return T(n), err
	}
}

func parseFloat[T float](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		n, err := strconv.ParseFloat(s, bits)
		return T(n), err
	}
}

func parseString(s string) (string, error) { return s, nil }

// Dest binds the argument to ptr after a successful parse. Supported targets
// are *bool, *string, signed and unsigned integers, floats, and slices or
// slices of slices of those. Integer targets of a flag receive its
// occurrence count. An argument neither supplied nor defaulted leaves the
// target untouched, except *bool which always receives the flag state.
func (a *Argument) Dest(ptr any) *Argument {
	return a.with(func(d *declaration) error {
		b, err := binderFor(ptr)
		if err != nil {
			return err
		}
		d.dest = b
		return nil
	})
}

// DestFunc calls fn after a successful parse with the presence and string
// rendering of the argument.
func (a *Argument) DestFunc(fn func(exists bool, value string) error) *Argument {
	return a.with(func(d *declaration) error {
		d.dest = func(d *declaration) error {
			return fn(d.exists, renderString(d.class, d.exists, d.values))
		}
		return nil
	})
}

// DestSliceFunc calls fn after a successful parse with every value
// flattened in order.
func (a *Argument) DestSliceFunc(fn func(exists bool, values []string) error) *Argument {
	return a.with(func(d *declaration) error {
		d.dest = func(d *declaration) error {
			return fn(d.exists, flatten(nil, d.values))
		}
		return nil
	})
}

// DestGroupsFunc calls fn after a successful parse with the values as
// groups. Ungrouped values arrive as one-member groups.
func (a *Argument) DestGroupsFunc(fn func(exists bool, groups [][]string) error) *Argument {
	return a.with(func(d *declaration) error {
		d.dest = func(d *declaration) error {
			return fn(d.exists, groupStrings(d.values))
		}
		return nil
	})
}

func binderFor(ptr any) (binder, error) {
	switch t := ptr.(type) {
	case *bool:
		return bindBool(t), nil
	case *string:
		return bindScalar(t, parseString, false), nil
	case *int:
		return bindScalar(t, parseSigned[int](strconv.IntSize), true), nil
	case *int8:
		return bindScalar(t, parseSigned[int8](8), true), nil
	case *int16:
		return bindScalar(t, parseSigned[int16](16), true), nil
	case *int32:
		return bindScalar(t, parseSigned[int32](32), true), nil
	case *int64:
		return bindScalar(t, parseSigned[int64](64), true), nil
	case *uint:
		return bindScalar(t, parseUnsigned[uint](strconv.IntSize), true), nil
	case *uint8:
		return bindScalar(t, parseUnsigned[uint8](8), true), nil
	case *uint16:
		return bindScalar(t, parseUnsigned[uint16](16), true), nil
	case *uint32:
		return bindScalar(t, parseUnsigned[uint32](32), true), nil
	case *uint64:
		return bindScalar(t, parseUnsigned[uint64](64), true), nil
	case *float32:
		return bindScalar(t, parseFloat[float32](32), true), nil
	case *float64:
		return bindScalar(t, parseFloat[float64](64), true), nil
	case *[]string:
		return bindSlice(t, parseString), nil
	case *[]int:
		return bindSlice(t, parseSigned[int](strconv.IntSize)), nil
	case *[]int64:
		return bindSlice(t, parseSigned[int64](64)), nil
	case *[]uint:
		return bindSlice(t, parseUnsigned[uint](strconv.IntSize)), nil
	case *[]uint64:
		return bindSlice(t, parseUnsigned[uint64](64)), nil
	case *[]float64:
		return bindSlice(t, parseFloat[float64](64)), nil
	case *[]bool:
		return bindSlice(t, strconv.ParseBool), nil
	case *[][]string:
		return bindGroups(t, parseString), nil
	case *[][]int:
		return bindGroups(t, parseSigned[int](strconv.IntSize)), nil
	case *[][]int64:
		return bindGroups(t, parseSigned[int64](64)), nil
	case *[][]float64:
		return bindGroups(t, parseFloat[float64](64)), nil
	case nil:
		return nil, errors.New("dest must not be nil")
	default:
		return nil, fmt.Errorf("unsupported dest type %T", ptr)
	}
}

func invalidValue(d *declaration, s string, err error) error {
	return NewParseError(ErrorTypeInvalidValue, d.primary(), fmt.Sprintf("invalid value %q", s)).WithCause(err)
}

func bindBool(ptr *bool) binder {
	return func(d *declaration) error {
		if d.class.ZeroArity() {
			*ptr = boolOf(d.class, d.exists)
			return nil
		}
		if len(d.values) == 0 {
			return nil
		}
		s := d.values[0].String()
		v, err := strconv.ParseBool(s)
		if err != nil {
			return invalidValue(d, s, err)
		}
		*ptr = v
		return nil
	}
}

// bindScalar converts the single value of d. counted targets of flags get
// the occurrence count, other targets the "true"/"false" rendering.
func bindScalar[T any](ptr *T, conv func(string) (T, error), counted bool) binder {
	return func(d *declaration) error {
		var s string
		switch {
		case d.class.ZeroArity() && !d.exists:
			return nil
		case d.class.ZeroArity() && counted:
			s = strconv.Itoa(d.count)
		case len(d.values) == 0:
			return nil
		default:
			s = renderString(d.class, d.exists, d.values)
		}
		v, err := conv(s)
		if err != nil {
			return invalidValue(d, s, err)
		}
		*ptr = v
		return nil
	}
}

func bindSlice[T any](ptr *[]T, conv func(string) (T, error)) binder {
	return func(d *declaration) error {
		if d.class.ZeroArity() || len(d.values) == 0 {
			return nil
		}
		tokens := flatten(nil, d.values)
		out := make([]T, len(tokens))
		for i, s := range tokens {
			v, err := conv(s)
			if err != nil {
				return invalidValue(d, s, err)
			}
			out[i] = v
		}
		*ptr = out
		return nil
	}
}

func bindGroups[T any](ptr *[][]T, conv func(string) (T, error)) binder {
	return func(d *declaration) error {
		if d.class.ZeroArity() || len(d.values) == 0 {
			return nil
		}
		groups := groupStrings(d.values)
		out := make([][]T, len(groups))
		for i, g := range groups {
			out[i] = make([]T, len(g))
			for j, s := range g {
				v, err := conv(s)
				if err != nil {
					return invalidValue(d, s, err)
				}
				out[i][j] = v
			}
		}
		*ptr = out
		return nil
	}
}

func (p *Parser) bind() error {
	var err error
	p.reg.each(func(d *declaration) bool {
		if d.dest == nil {
			return true
		}
		if e := d.dest(d); e != nil {
			var pe *ParseError
			if errors.As(e, &pe) {
				err = e
			} else {
				err = NewParseError(ErrorTypeInvalidValue, d.primary(), e.Error()).WithCause(e)
			}
			return false
		}
		return true
	})
	return err
}
