package argsnap

// Action selects how an argument reacts to being matched.
type Action int

const (
	ActionNone Action = iota
	ActionHelp
	ActionVersion
	ActionStoreTrue
	ActionStoreFalse
	ActionAppend
	ActionExtend
	ActionInfinite
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionHelp:
		return "help"
	case ActionVersion:
		return "version"
	case ActionStoreTrue:
		return "store_true"
	case ActionStoreFalse:
		return "store_false"
	case ActionAppend:
		return "append"
	case ActionExtend:
		return "extend"
	case ActionInfinite:
		return "infinite"
	default:
		return "unknown"
	}
}

// ParseAction maps the names returned by Action.String back to actions.
func ParseAction(s string) (Action, bool) {
	for a := ActionNone; a <= ActionInfinite; a++ {
		if a.String() == s {
			return a, true
		}
	}
	return ActionNone, false
}

// ArityClass is how many tokens an argument consumes and in which shape
// they are stored.
type ArityClass int

const (
	ClassFlag ArityClass = iota
	ClassReverseFlag
	ClassHelp
	ClassVersion
	ClassSimple
	ClassNumber
	ClassInfinite
	ClassMulti
	ClassMultiInfinite
	ClassMultiNumber
	ClassMultiNumberInfinite
	ClassPositional
	ClassPositionalNumber
	ClassPositionalInfinite
	ClassPositionalInfiniteNumber
)

var classNames = [...]string{
	ClassFlag:                     "flag",
	ClassReverseFlag:              "reverse_flag",
	ClassHelp:                     "help",
	ClassVersion:                  "version",
	ClassSimple:                   "simple",
	ClassNumber:                   "number",
	ClassInfinite:                 "infinite",
	ClassMulti:                    "multi",
	ClassMultiInfinite:            "multi_infinite",
	ClassMultiNumber:              "multi_number",
	ClassMultiNumberInfinite:      "multi_number_infinite",
	ClassPositional:               "positional",
	ClassPositionalNumber:         "positional_number",
	ClassPositionalInfinite:       "positional_infinite",
	ClassPositionalInfiniteNumber: "positional_infinite_number",
}

func (c ArityClass) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return "unknown"
	}
	return classNames[c]
}

// IsPositional reports whether the class belongs to a positional argument.
func (c ArityClass) IsPositional() bool {
	return c >= ClassPositional
}

// ZeroArity reports whether the class never consumes a token.
func (c ArityClass) ZeroArity() bool {
	switch c {
	case ClassFlag, ClassReverseFlag, ClassHelp, ClassVersion:
		return true
	default:
		return false
	}
}

// Grouped reports whether values are stored as fixed-size groups.
func (c ArityClass) Grouped() bool {
	switch c {
	case ClassMultiNumber, ClassMultiNumberInfinite, ClassPositionalInfiniteNumber:
		return true
	default:
		return false
	}
}

// Scalar reports whether the class stores at most one value.
func (c ArityClass) Scalar() bool {
	return c == ClassSimple || c == ClassPositional
}

// deriveClass computes the arity class of an argument from its shape. It is a
// pure function: the same inputs always give the same class, whatever order
// the setters producing them were called in. width is the group size used by
// fixed-count classes.
func deriveClass(positional bool, nargs int, action Action, ndefaults int) (class ArityClass, width int, err error) {
	if nargs < 0 {
		return 0, 0, errInvalidNargs
	}
	if positional {
		switch action {
		case ActionNone, ActionAppend:
			if nargs > 1 {
				return ClassPositionalNumber, nargs, nil
			}
			return ClassPositional, 1, nil
		case ActionInfinite, ActionExtend:
			if nargs > 1 {
				return ClassPositionalInfiniteNumber, nargs, nil
			}
			return ClassPositionalInfinite, 1, nil
		default:
			return 0, 0, errPositionalAction
		}
	}

	switch action {
	case ActionHelp:
		return ClassHelp, 0, nil
	case ActionVersion:
		return ClassVersion, 0, nil
	case ActionStoreTrue:
		return ClassFlag, 0, nil
	case ActionStoreFalse:
		return ClassReverseFlag, 0, nil
	case ActionInfinite:
		return ClassInfinite, 1, nil
	case ActionAppend:
		if nargs > 1 {
			return ClassMultiNumber, nargs, nil
		}
		return ClassMulti, 1, nil
	case ActionExtend:
		if nargs > 1 {
			return ClassMultiNumberInfinite, nargs, nil
		}
		return ClassMultiInfinite, 1, nil
	case ActionNone:
		switch {
		case nargs == 1:
			return ClassSimple, 1, nil
		case nargs > 1:
			return ClassNumber, nargs, nil
		case ndefaults == 1:
			return ClassSimple, 1, nil
		case ndefaults > 1:
			return ClassNumber, ndefaults, nil
		default:
			return ClassFlag, 0, nil
		}
	default:
		return 0, 0, errUnknownAction
	}
}
