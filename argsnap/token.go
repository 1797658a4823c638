package argsnap

import "strings"

// TokenKind classifies a raw command-line token.
type TokenKind int

const (
	TokenValue TokenKind = iota
	TokenShort
	TokenLong
	TokenEndOfOptions
)

func (k TokenKind) String() string {
	switch k {
	case TokenShort:
		return "short"
	case TokenLong:
		return "long"
	case TokenEndOfOptions:
		return "end-of-options"
	default:
		return "value"
	}
}

// Token is a classified command-line token.
//
// For option tokens Name holds everything before the first '=' (dashes
// included) and Inline everything after it.
type Token struct {
	Kind      TokenKind
	Raw       string
	Name      string
	Inline    string
	HasInline bool
}

// Cluster returns the characters of a short option token after its dash,
// e.g. "abc" for "-abc=1".
func (t Token) Cluster() string {
	if t.Kind != TokenShort {
		return ""
	}
	return t.Name[1:]
}

// Classify splits a raw token into its kind, option name and inline value.
func Classify(tok string) Token {
	t := Token{Raw: tok, Name: tok}
	switch {
	case IsEndOfOptions(tok):
		t.Kind = TokenEndOfOptions
		return t
	case IsLongOption(tok):
		t.Kind = TokenLong
	case IsShortOption(tok):
		t.Kind = TokenShort
	default:
		return t
	}
	t.Name, t.Inline, t.HasInline = splitAssign(tok)
	return t
}

// IsShortOption reports whether tok is a single dash followed by at least
// one character that is not a dash.
func IsShortOption(tok string) bool {
	return len(tok) >= 2 && tok[0] == '-' && tok[1] != '-'
}

// IsLongOption reports whether tok is a double dash followed by at least one
// character.
func IsLongOption(tok string) bool {
	return len(tok) >= 3 && tok[0] == '-' && tok[1] == '-'
}

// IsEndOfOptions reports whether tok is the "--" marker.
func IsEndOfOptions(tok string) bool {
	return tok == "--"
}

// SplitInline separates an option token into name and inline value.
//
// Long options split at the first '='. Short options split after their
// first character: "-ofile" yields ("-o", "file", true). Whether that
// remainder is a value or more clustered flags is decided by the parser.
// Tokens that are not options are returned unchanged as the name.
//
// The parser itself reads tokens through Classify, which splits short
// options at the first '=' instead: "-ab=c" is the cluster "ab" with the
// inline value "c", while SplitInline returns ("-a", "b=c", true).
func SplitInline(tok string) (name, inline string, hasInline bool) {
	switch {
	case IsLongOption(tok):
		return splitAssign(tok)
	case IsShortOption(tok):
		if len(tok) == 2 {
			return tok, "", false
		}
		rest := tok[2:]
		rest = strings.TrimPrefix(rest, "=")
		return tok[:2], rest, true
	default:
		return tok, "", false
	}
}

func splitAssign(tok string) (name, value string, ok bool) {
	if i := strings.IndexByte(tok, '='); i >= 0 {
		return tok[:i], tok[i+1:], true
	}
	return tok, "", false
}

// endOfOptionsIndex returns the index of the first "--" in args, or
// len(args) when there is none.
func endOfOptionsIndex(args []string) int {
	for i := 1; i < len(args); i++ {
		if IsEndOfOptions(args[i]) {
			return i
		}
	}
	return len(args)
}
