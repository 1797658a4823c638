package argsnap

import (
	"errors"
	"fmt"

	"github.com/dzonerzy/go-argsnap/internal/pool"
)

// Validator checks the final values of an argument. Validate receives every
// value flattened in order and may rewrite entries in place; rewritten
// values are stored back into the argument.
type Validator interface {
	Validate(values []string) error
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(values []string) error

// Validate calls f(values).
func (f ValidatorFunc) Validate(values []string) error { return f(values) }

var errValidateZeroArity = errors.New("invalid type option for use valid")

func (p *Parser) validate() error {
	var err error
	p.reg.each(func(d *declaration) bool {
		if !d.exists || d.validator == nil {
			return true
		}
		err = runValidator(d)
		return err == nil
	})
	return err
}

func runValidator(d *declaration) error {
	if d.class.ZeroArity() {
		return NewParseError(ErrorTypeValidation, d.primary(), errValidateZeroArity.Error()).WithCause(errValidateZeroArity)
	}

	buf := pool.GetStringSlice()
	defer pool.PutStringSlice(buf)
	*buf = flatten((*buf)[:0], d.values)

	if err := callValidator(d.validator, *buf); err != nil {
		return NewParseError(ErrorTypeValidation, d.primary(), err.Error()).WithCause(err)
	}
	unflatten(d.values, *buf)
	return nil
}

func callValidator(v Validator, values []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("validator panicked: %v", r)
		}
	}()
	return v.Validate(values)
}
