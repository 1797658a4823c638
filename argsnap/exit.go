package argsnap

import "errors"

// ExitError requests a specific exit code. Validators and dest converters may
// return one; ParseOrExit then exits with Code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit"
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCodeDefaults holds common default codes.
type ExitCodeDefaults struct {
	Success         int // default: 0
	GeneralError    int // default: 1
	MisusageError   int // default: 2
	ValidationError int // default: 3
}

func defaultExitDefaults() ExitCodeDefaults {
	return ExitCodeDefaults{Success: 0, GeneralError: 1, MisusageError: 2, ValidationError: 3}
}

type errorCode struct {
	target error
	code   int
}

// ExitCodeManager maps errors and categories to process exit codes.
type ExitCodeManager struct {
	codesByName  map[string]int
	codesByType  map[ErrorType]int
	codesByError []errorCode
	defaults     ExitCodeDefaults
}

func newExitCodeManager() *ExitCodeManager {
	m := &ExitCodeManager{
		codesByName: make(map[string]int),
		codesByType: make(map[ErrorType]int),
		defaults:    defaultExitDefaults(),
	}
	m.prewire()
	return m
}

func (e *ExitCodeManager) prewire() {
	for _, t := range []ErrorType{
		ErrorTypeDeclaration, ErrorTypeUnknownOption, ErrorTypeArityMismatch,
		ErrorTypeMissingRequired, ErrorTypeAdditionalArgument, ErrorTypeNotFound,
	} {
		e.codesByType[t] = e.defaults.MisusageError
	}
	e.codesByType[ErrorTypeValidation] = e.defaults.ValidationError
	e.codesByType[ErrorTypeInvalidValue] = e.defaults.ValidationError
	e.codesByType[ErrorTypeInternal] = e.defaults.GeneralError
}

// Define registers a named exit code for documentation or lookup via Code.
// It does not affect resolution.
func (e *ExitCodeManager) Define(name string, code int) *ExitCodeManager {
	e.codesByName[name] = code
	return e
}

// Code returns a code registered with Define.
func (e *ExitCodeManager) Code(name string) (int, bool) {
	c, ok := e.codesByName[name]
	return c, ok
}

// DefineType overrides the exit code used for a parse error category.
func (e *ExitCodeManager) DefineType(typ ErrorType, code int) *ExitCodeManager {
	e.codesByType[typ] = code
	return e
}

// DefineError maps errors matching target (errors.Is) to code. A matching
// target takes precedence over category codes.
func (e *ExitCodeManager) DefineError(target error, code int) *ExitCodeManager {
	if target == nil {
		return e
	}
	e.codesByError = append(e.codesByError, errorCode{target: target, code: code})
	return e
}

// Default replaces the manager's default codes and re-derives the category
// mappings from them.
func (e *ExitCodeManager) Default(d ExitCodeDefaults) *ExitCodeManager {
	e.defaults = d
	e.prewire()
	return e
}

// Resolve converts an error to an exit code according to registered mappings.
// Precedence:
//  1. ExitError (requested code)
//  2. DefineError targets
//  3. ParseError category mapping
//  4. GeneralError
func (e *ExitCodeManager) Resolve(err error) int {
	if err == nil || errors.Is(err, ErrHelpShown) || errors.Is(err, ErrVersionShown) {
		return e.defaults.Success
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	for _, ec := range e.codesByError {
		if errors.Is(err, ec.target) {
			return ec.code
		}
	}

	var pe *ParseError
	if errors.As(err, &pe) {
		if code, ok := e.codesByType[pe.Type]; ok {
			return code
		}
	}
	return e.defaults.GeneralError
}
