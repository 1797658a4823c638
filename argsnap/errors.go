package argsnap

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dzonerzy/go-argsnap/internal/fuzzy"
)

// ErrorType represents error categories for declaration and parse failures.
// These categories drive suggestion logic and exit-code mapping (via ExitCodeManager).
type ErrorType string

const (
	ErrorTypeDeclaration        ErrorType = "declaration"
	ErrorTypeUnknownOption      ErrorType = "unknown_option"
	ErrorTypeArityMismatch      ErrorType = "arity_mismatch"
	ErrorTypeMissingRequired    ErrorType = "missing_required"
	ErrorTypeValidation         ErrorType = "validation"
	ErrorTypeAdditionalArgument ErrorType = "additional_argument"
	ErrorTypeNotFound           ErrorType = "not_found"
	ErrorTypeInvalidValue       ErrorType = "invalid_value"
	ErrorTypeInternal           ErrorType = "internal_error"
)

// Sentinels for errors.Is matching by category.
var (
	ErrDeclaration        = &ParseError{Type: ErrorTypeDeclaration}
	ErrUnknownOption      = &ParseError{Type: ErrorTypeUnknownOption}
	ErrArityMismatch      = &ParseError{Type: ErrorTypeArityMismatch}
	ErrMissingRequired    = &ParseError{Type: ErrorTypeMissingRequired}
	ErrValidation         = &ParseError{Type: ErrorTypeValidation}
	ErrAdditionalArgument = &ParseError{Type: ErrorTypeAdditionalArgument}
	ErrNotFound           = &ParseError{Type: ErrorTypeNotFound}
	ErrInvalidValue       = &ParseError{Type: ErrorTypeInvalidValue}
)

// ErrHelpShown and ErrVersionShown are returned with the result when the
// parser runs with HelpException enabled and help or version was requested.
var (
	ErrHelpShown    = errors.New("help requested")
	ErrVersionShown = errors.New("version requested")
)

// Reasons that are not tied to a single flag at creation time.
var (
	errInvalidNargs     = errors.New("invalid nargs")
	errPositionalAction = errors.New("invalid action for positional argument")
	errUnknownAction    = errors.New("invalid action")
	errDefaultsCount    = errors.New("invalid number of default")
)

// ParseError is returned for every declaration, parse and lookup failure.
type ParseError struct {
	Type       ErrorType
	Flag       string // offending name, flag or token
	Reason     string
	Message    string
	Suggestion string
	Cause      error
}

func (e *ParseError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is matches any ParseError of the same category.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Type == e.Type
}

// NewParseError creates a ParseError whose message reads "reason -- 'flag'".
func NewParseError(typ ErrorType, flag, reason string) *ParseError {
	msg := reason
	if flag != "" {
		msg = fmt.Sprintf("%s -- '%s'", reason, flag)
	}
	return &ParseError{Type: typ, Flag: flag, Reason: reason, Message: msg}
}

// WithCause sets the underlying cause and returns the error for chaining.
func (e *ParseError) WithCause(cause error) *ParseError {
	e.Cause = cause
	return e
}

// WithSuggestion sets a "did you mean" hint and returns the error for chaining.
func (e *ParseError) WithSuggestion(s string) *ParseError {
	e.Suggestion = s
	return e
}

// ErrorHandler formats parse errors for the terminal and attaches fuzzy
// suggestions for unknown options.
type ErrorHandler struct {
	suggestFlags     bool
	maxDistance      int
	maxSuggestions   int
	showUsageOnError bool
	customHandlers   map[ErrorType]func(*ParseError) *ParseError
}

// NewErrorHandler creates a new error handler with defaults
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{
		suggestFlags:   true,
		maxDistance:    2,
		maxSuggestions: 1,
		customHandlers: make(map[ErrorType]func(*ParseError) *ParseError),
	}
}

// SuggestFlags enables/disables flag suggestions
func (eh *ErrorHandler) SuggestFlags(enabled bool) *ErrorHandler {
	eh.suggestFlags = enabled
	return eh
}

// MaxDistance sets the maximum edit distance for suggestions
func (eh *ErrorHandler) MaxDistance(distance int) *ErrorHandler {
	eh.maxDistance = distance
	return eh
}

// MaxSuggestions sets how many close flags an unknown-option error lists.
// Values below 1 are treated as 1.
func (eh *ErrorHandler) MaxSuggestions(n int) *ErrorHandler {
	eh.maxSuggestions = max(n, 1)
	return eh
}

// ShowUsageOnError controls whether the usage text follows the error
// message when printed by ParseOrExit.
func (eh *ErrorHandler) ShowUsageOnError(enabled bool) *ErrorHandler {
	eh.showUsageOnError = enabled
	return eh
}

// Handle registers a custom handler for a specific error type
func (eh *ErrorHandler) Handle(typ ErrorType, handler func(*ParseError) *ParseError) *ErrorHandler {
	eh.customHandlers[typ] = handler
	return eh
}

// Process applies custom handlers and suggestions to err.
func (eh *ErrorHandler) Process(err *ParseError, p *Parser) *ParseError {
	if handler, ok := eh.customHandlers[err.Type]; ok {
		err = handler(err)
	}
	if err.Type == ErrorTypeUnknownOption && eh.suggestFlags && err.Suggestion == "" {
		switch matches := eh.findFlagMatches(err.Flag, p); len(matches) {
		case 0:
		case 1:
			err.Suggestion = fmt.Sprintf("Did you mean '%s'?", matches[0])
		default:
			err.Suggestion = fmt.Sprintf("Did you mean one of '%s'?", strings.Join(matches, "', '"))
		}
	}
	return err
}

func (eh *ErrorHandler) findFlagMatches(flag string, p *Parser) []string {
	if p == nil || flag == "" {
		return nil
	}
	input := "--" + flag
	if utf8.RuneCountInString(flag) == 1 {
		input = "-" + flag
	}
	if eh.maxSuggestions <= 1 {
		if best := fuzzy.SuggestFlag(input, p.flagNames(), eh.maxDistance); best != "" {
			return []string{best}
		}
		return nil
	}
	return fuzzy.Suggestions(input, p.flagNames(), eh.maxDistance, eh.maxSuggestions)
}

// Format renders err as "prog: message" followed by an indented suggestion.
func (eh *ErrorHandler) Format(err error, p *Parser) string {
	var b strings.Builder
	if p != nil {
		b.WriteString(p.baseName())
		b.WriteString(": ")
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		b.WriteString(err.Error())
		return b.String()
	}
	pe = eh.Process(pe, p)
	b.WriteString(pe.Message)
	if pe.Suggestion != "" {
		b.WriteString("\n  ")
		b.WriteString(pe.Suggestion)
	}
	return b.String()
}
